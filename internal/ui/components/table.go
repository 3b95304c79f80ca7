package components

import (
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/x/ansi"

	"github.com/j-veylop/bikeshare-explorer/internal/models"
	"github.com/j-veylop/bikeshare-explorer/internal/ui/styles"
)

// maxColumnWidth caps a column so long station names don't wrap the terminal.
const maxColumnWidth = 32

// RenderTrips renders trips as a table. Optional columns appear only when
// schema carries them.
func RenderTrips(trips []models.Trip, schema models.Schema) string {
	if len(trips) == 0 {
		return styles.HelpStyle.Render("No more rows.")
	}

	headers := []string{"Start Time", "Start Station", "End Station", "Trip Duration", "User Type"}
	if schema.HasGender {
		headers = append(headers, "Gender")
	}
	if schema.HasBirthYear {
		headers = append(headers, "Birth Year")
	}
	headers = append(headers, "Month", "Day of Week")

	rows := make([]table.Row, 0, len(trips))
	for _, trip := range trips {
		row := table.Row{
			trip.StartTime.Format("2006-01-02 15:04:05"),
			trip.StartStation,
			trip.EndStation,
			strconv.FormatFloat(trip.Duration, 'f', -1, 64),
			trip.UserType,
		}
		if schema.HasGender {
			row = append(row, trip.Gender)
		}
		if schema.HasBirthYear {
			row = append(row, birthYear(trip.BirthYear))
		}
		row = append(row, strconv.Itoa(trip.Month()), trip.DayOfWeek())
		rows = append(rows, row)
	}

	columns := make([]table.Column, len(headers))
	totalWidth := 0
	for i, header := range headers {
		width := ansi.StringWidth(header)
		for _, row := range rows {
			width = max(width, ansi.StringWidth(row[i]))
		}
		width = min(width, maxColumnWidth)
		columns[i] = table.Column{Title: header, Width: width}
		totalWidth += width + styles.TableCellStyle.GetHorizontalFrameSize()
	}

	s := table.DefaultStyles()
	s.Header = styles.TableHeaderStyle
	s.Cell = styles.TableCellStyle
	s.Selected = s.Selected.UnsetForeground().UnsetBold()

	t := table.New(
		table.WithStyles(s),
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithWidth(totalWidth),
		table.WithHeight(len(rows)+1), // header line plus one line per row
		table.WithFocused(false),
	)
	return t.View()
}

func birthYear(year int) string {
	if year == 0 {
		return ""
	}
	return strconv.Itoa(year)
}
