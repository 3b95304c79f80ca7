package app

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/j-veylop/bikeshare-explorer/internal/models"
	"github.com/j-veylop/bikeshare-explorer/internal/services/stats"
	"github.com/j-veylop/bikeshare-explorer/internal/ui/components"
	"github.com/j-veylop/bikeshare-explorer/internal/ui/styles"
)

const (
	chartWidth  = 48
	chartHeight = 8
)

// report prints the four statistics sections in order.
func (s *Session) report(svc *stats.Service, schema models.Schema) error {
	if err := s.reportTime(svc); err != nil {
		return err
	}
	if err := s.reportStations(svc); err != nil {
		return err
	}
	if err := s.reportDurations(svc); err != nil {
		return err
	}
	return s.reportUsers(svc, schema)
}

func (s *Session) reportTime(svc *stats.Service) error {
	start := s.section("Calculating The Most Frequent Times of Travel...")

	ts, err := svc.Time()
	if err != nil {
		return err
	}

	s.println(styles.Field("Most common month", fmt.Sprintf("%d (%s)", ts.Month, ts.MonthName())))
	s.println(styles.Field("Most common day of week", ts.Weekday))
	s.println(styles.Field("Most popular start hour", strconv.Itoa(ts.Hour)))
	if s.cfg.ShowCharts {
		s.println()
		s.println(components.RenderLineChart(ts.ByHour, chartWidth, chartHeight, "Trips by start hour (0-23)"))
	}

	s.done(start)
	return nil
}

func (s *Session) reportStations(svc *stats.Service) error {
	start := s.section("Calculating The Most Popular Stations and Trip...")

	st, err := svc.Stations()
	if err != nil {
		return err
	}

	s.println(styles.Field("Most commonly used start station", st.StartStation))
	s.println(styles.Field("Most commonly used end station", st.EndStation))
	s.println(styles.Field("Most frequent combination of start station and end station trip", st.Route))

	s.done(start)
	return nil
}

func (s *Session) reportDurations(svc *stats.Service) error {
	start := s.section("Calculating Trip Duration...")

	ds, err := svc.Durations()
	if err != nil {
		return err
	}

	s.println(styles.Field("Total travel time", FormatHours(ds.TotalHours())+" hours"))
	s.println(styles.Field("Mean travel time", FormatSeconds(ds.Mean)+" sec"))

	s.done(start)
	return nil
}

func (s *Session) reportUsers(svc *stats.Service, schema models.Schema) error {
	start := s.section("Calculating User Stats...")

	us, err := svc.Users(schema)
	if err != nil {
		return err
	}

	for _, c := range us.UserTypes {
		s.println(styles.Field("Number of "+c.Value, humanize.Comma(int64(c.Count))))
	}
	for _, c := range us.Genders {
		s.println(styles.Field("Number of "+c.Value, humanize.Comma(int64(c.Count))))
	}
	if by := us.BirthYears; by != nil {
		s.println(styles.Field("Earliest year of birth", strconv.Itoa(by.Earliest)))
		s.println(styles.Field("Most recent year of birth", strconv.Itoa(by.Latest)))
		s.println(styles.Field("Most common year of birth", strconv.Itoa(by.MostCommon)))
	}

	s.done(start)
	return nil
}

// section prints a report heading and returns the time it started.
func (s *Session) section(title string) time.Time {
	s.println()
	s.println(styles.SubTitleStyle.Render(title))
	s.println()
	return time.Now()
}

// done prints the elapsed time since start and a separator.
func (s *Session) done(start time.Time) {
	s.println()
	s.println(styles.HelpStyle.Render(fmt.Sprintf("This took %s seconds.", strconv.FormatFloat(time.Since(start).Seconds(), 'f', 6, 64))))
	s.println(styles.Separator())
}

// FormatHours formats hours with thousands separators and two decimals.
func FormatHours(hours float64) string {
	return humanize.FormatFloat("#,###.##", hours)
}

// FormatSeconds formats seconds rounded to a whole number.
func FormatSeconds(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', 0, 64)
}
