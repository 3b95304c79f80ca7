// Package dataset loads city trip tables and restricts them to a month/day selection.
package dataset

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"slices"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/j-veylop/bikeshare-explorer/internal/logger"
	"github.com/j-veylop/bikeshare-explorer/internal/models"
)

// Source column names.
const (
	ColStartTime    = "Start Time"
	ColStartStation = "Start Station"
	ColEndStation   = "End Station"
	ColTripDuration = "Trip Duration"
	ColUserType     = "User Type"
	ColGender       = "Gender"
	ColBirthYear    = "Birth Year"
)

// Derived column names.
const (
	colMonth     = "month"
	colDayOfWeek = "day_of_week"
	colHour      = "hour"
)

const startTimeLayout = "2006-01-02 15:04:05"

var requiredColumns = []string{
	ColStartTime,
	ColStartStation,
	ColEndStation,
	ColTripDuration,
	ColUserType,
}

var (
	// ErrUnknownCity is returned for a city without a data file.
	ErrUnknownCity = errors.New("unknown city")
	// ErrMissingColumn is returned when a required column is absent.
	ErrMissingColumn = errors.New("missing column")
)

// PathResolver maps a city to the path of its data file.
type PathResolver interface {
	CityPath(city string) (string, bool)
}

// Loader reads city tables from disk.
type Loader struct {
	paths PathResolver
}

// NewLoader creates a loader that resolves city files through paths.
func NewLoader(paths PathResolver) *Loader {
	return &Loader{paths: paths}
}

// Load reads the table for filter.City and applies the month and day filters.
func (l *Loader) Load(filter models.Filter) (*Table, error) {
	path, ok := l.paths.CityPath(filter.City)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCity, filter.City)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open city data: %w", err)
	}
	defer func() { _ = f.Close() }()

	table, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	logger.Debug("loaded city table", "city", filter.City, "path", path, "rows", table.Len())

	filtered, err := table.Filter(filter)
	if err != nil {
		return nil, err
	}
	logger.Debug("filtered city table", "filter", filter.String(), "rows", filtered.Len())

	return filtered, nil
}

// Read parses CSV trip records and adds the derived calendar columns.
func Read(r io.Reader) (*Table, error) {
	df := dataframe.ReadCSV(r,
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.WithTypes(map[string]series.Type{
			ColTripDuration: series.Float,
			ColBirthYear:    series.Float,
		}),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("failed to read trip records: %w", df.Err)
	}

	names := df.Names()
	for _, col := range requiredColumns {
		if !slices.Contains(names, col) {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, col)
		}
	}

	df, err := derive(df)
	if err != nil {
		return nil, err
	}

	return &Table{
		frame: df,
		schema: models.Schema{
			HasGender:    slices.Contains(names, ColGender),
			HasBirthYear: slices.Contains(names, ColBirthYear),
		},
	}, nil
}

// derive parses the start time column and appends month, weekday and hour.
func derive(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	raw := df.Col(ColStartTime).Records()
	months := make([]int, len(raw))
	days := make([]string, len(raw))
	hours := make([]int, len(raw))

	for i, value := range raw {
		ts, err := time.Parse(startTimeLayout, value)
		if err != nil {
			return df, fmt.Errorf("row %d: invalid start time %q: %w", i+1, value, err)
		}
		months[i] = int(ts.Month())
		days[i] = ts.Weekday().String()
		hours[i] = ts.Hour()
	}

	df = df.
		Mutate(series.New(months, series.Int, colMonth)).
		Mutate(series.New(days, series.String, colDayOfWeek)).
		Mutate(series.New(hours, series.Int, colHour))
	if df.Err != nil {
		return df, fmt.Errorf("failed to derive calendar columns: %w", df.Err)
	}
	return df, nil
}

// Table is a city table, possibly restricted to a month/day selection.
type Table struct {
	frame  dataframe.DataFrame
	schema models.Schema
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return t.frame.Nrow()
}

// Schema reports which optional columns the source carried.
func (t *Table) Schema() models.Schema {
	return t.schema
}

// Filter keeps rows whose month number and weekday name match the selection.
// "all" leaves the corresponding dimension unfiltered.
func (t *Table) Filter(filter models.Filter) (*Table, error) {
	df := t.frame

	if month := filter.MonthNumber(); month != 0 {
		df = df.Filter(dataframe.F{Colname: colMonth, Comparator: series.Eq, Comparando: month})
	}
	if day := filter.Weekday(); day != "" {
		df = df.Filter(dataframe.F{Colname: colDayOfWeek, Comparator: series.Eq, Comparando: day})
	}
	if df.Err != nil {
		return nil, fmt.Errorf("failed to filter trips by %s: %w", filter, df.Err)
	}

	return &Table{frame: df, schema: t.schema}, nil
}

// Months returns the derived month number of every row.
func (t *Table) Months() []int {
	months, _ := t.frame.Col(colMonth).Int()
	return months
}

// Weekdays returns the derived weekday name of every row.
func (t *Table) Weekdays() []string {
	return t.frame.Col(colDayOfWeek).Records()
}

// Trips converts the rows to trip records. Missing optional values are left
// at their zero value.
func (t *Table) Trips() ([]models.Trip, error) {
	n := t.Len()
	if n == 0 {
		return nil, nil
	}

	startTimes := t.frame.Col(ColStartTime).Records()
	startStations := t.frame.Col(ColStartStation).Records()
	endStations := t.frame.Col(ColEndStation).Records()
	durations := t.frame.Col(ColTripDuration).Float()
	userTypes := t.frame.Col(ColUserType).Records()

	var genders []string
	if t.schema.HasGender {
		genders = t.frame.Col(ColGender).Records()
	}
	var birthYears []float64
	if t.schema.HasBirthYear {
		birthYears = t.frame.Col(ColBirthYear).Float()
	}

	trips := make([]models.Trip, n)
	for i := range n {
		ts, err := time.Parse(startTimeLayout, startTimes[i])
		if err != nil {
			return nil, fmt.Errorf("invalid start time %q: %w", startTimes[i], err)
		}

		trip := models.Trip{
			StartTime:    ts,
			StartStation: startStations[i],
			EndStation:   endStations[i],
			Duration:     finite(durations[i]),
			UserType:     present(userTypes[i]),
		}
		if genders != nil {
			trip.Gender = present(genders[i])
		}
		if birthYears != nil {
			trip.BirthYear = int(finite(birthYears[i]))
		}
		trips[i] = trip
	}

	return trips, nil
}

// present maps gota's rendering of missing strings to "".
func present(s string) string {
	if s == "NaN" {
		return ""
	}
	return s
}

func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
