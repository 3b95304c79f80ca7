// Package stats computes the descriptive statistics reported for a filtered table.
package stats

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/j-veylop/bikeshare-explorer/internal/db"
	"github.com/j-veylop/bikeshare-explorer/internal/models"
)

// ErrNoTrips is returned when the filtered table has no rows to describe.
var ErrNoTrips = errors.New("no trips match the selected filters")

// Service computes statistics over the trips held in a store.
type Service struct {
	db *db.DB
}

// New creates a statistics service backed by database.
func New(database *db.DB) *Service {
	return &Service{db: database}
}

// Time returns the most common month, weekday and start hour.
func (s *Service) Time() (*models.TimeStats, error) {
	if err := s.ensureTrips(); err != nil {
		return nil, err
	}

	month, err := s.modeInt(db.ColumnMonth)
	if err != nil {
		return nil, err
	}
	dow, err := s.modeInt(db.ColumnDayOfWeek)
	if err != nil {
		return nil, err
	}
	hour, err := s.modeInt(db.ColumnHour)
	if err != nil {
		return nil, err
	}
	byHour, err := s.db.HourlyCounts()
	if err != nil {
		return nil, err
	}

	return &models.TimeStats{
		Month:   month,
		Weekday: time.Weekday(dow).String(),
		Hour:    hour,
		ByHour:  byHour,
	}, nil
}

// Stations returns the most common start station, end station and route.
func (s *Service) Stations() (*models.StationStats, error) {
	if err := s.ensureTrips(); err != nil {
		return nil, err
	}

	start, err := s.db.Mode(db.ColumnStartStation)
	if err != nil {
		return nil, err
	}
	end, err := s.db.Mode(db.ColumnEndStation)
	if err != nil {
		return nil, err
	}
	route, err := s.db.Mode(db.ColumnRoute)
	if err != nil {
		return nil, err
	}

	return &models.StationStats{StartStation: start, EndStation: end, Route: route}, nil
}

// Durations returns the total and mean trip duration.
func (s *Service) Durations() (*models.DurationStats, error) {
	if err := s.ensureTrips(); err != nil {
		return nil, err
	}
	return s.db.DurationTotals()
}

// Users returns user type counts and, when schema carries them, gender counts
// and birth year statistics.
func (s *Service) Users(schema models.Schema) (*models.UserStats, error) {
	if err := s.ensureTrips(); err != nil {
		return nil, err
	}

	userTypes, err := s.db.ValueCounts(db.ColumnUserType)
	if err != nil {
		return nil, err
	}
	stats := &models.UserStats{UserTypes: userTypes}

	if schema.HasGender {
		genders, err := s.db.ValueCounts(db.ColumnGender)
		if err != nil {
			return nil, err
		}
		stats.Genders = nonNil(genders)
	}

	if schema.HasBirthYear {
		years, err := s.birthYears()
		if err != nil {
			return nil, err
		}
		stats.BirthYears = years
	}

	return stats, nil
}

// birthYears returns nil when the column exists but holds no values.
func (s *Service) birthYears() (*models.BirthYearStats, error) {
	earliest, latest, err := s.db.BirthYearRange()
	if errors.Is(err, db.ErrNoValues) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	mostCommon, err := s.modeInt(db.ColumnBirthYear)
	if err != nil {
		return nil, err
	}

	return &models.BirthYearStats{Earliest: earliest, Latest: latest, MostCommon: mostCommon}, nil
}

func (s *Service) ensureTrips() error {
	n, err := s.db.CountTrips()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNoTrips
	}
	return nil
}

func (s *Service) modeInt(column string) (int, error) {
	value, err := s.db.Mode(column)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("mode of %s is not an integer: %w", column, err)
	}
	return n, nil
}

// nonNil keeps an empty gender breakdown distinguishable from an absent column.
func nonNil(counts []models.Count) []models.Count {
	if counts == nil {
		return []models.Count{}
	}
	return counts
}
