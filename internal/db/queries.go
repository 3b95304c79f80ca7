package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/j-veylop/bikeshare-explorer/internal/models"
)

// ErrNoValues is returned when a column holds no non-empty value to aggregate.
var ErrNoValues = errors.New("no values to aggregate")

// ReplaceTrips empties the trips table and inserts trips in a single transaction.
func (db *DB) ReplaceTrips(trips []models.Trip) error {
	ctx := context.Background()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM trips"); err != nil {
		return fmt.Errorf("failed to clear trips: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO trips (
			start_time, start_station, end_station, trip_duration,
			user_type, gender, birth_year
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare trip insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, trip := range trips {
		_, err := stmt.ExecContext(ctx,
			trip.StartTime.Format(timeLayout),
			trip.StartStation,
			trip.EndStation,
			trip.Duration,
			nullString(trip.UserType),
			nullString(trip.Gender),
			nullInt(trip.BirthYear),
		)
		if err != nil {
			return fmt.Errorf("failed to insert trip: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit trips: %w", err)
	}
	return nil
}

// CountTrips returns the number of rows in the trips table.
func (db *DB) CountTrips() (int, error) {
	var n int
	err := db.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM trips").Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count trips: %w", err)
	}
	return n, nil
}

// Page returns up to limit trips in load order, skipping the first offset.
// An offset past the end yields an empty slice.
func (db *DB) Page(offset, limit int) ([]models.Trip, error) {
	query := `
		SELECT start_time, start_station, end_station, trip_duration,
			   user_type, gender, birth_year
		FROM trips
		ORDER BY id
		LIMIT ? OFFSET ?
	`

	rows, err := db.QueryContext(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query trips page: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var trips []models.Trip
	for rows.Next() {
		var trip models.Trip
		var startTime string
		var userType, gender sql.NullString
		var birthYear sql.NullInt64

		err := rows.Scan(
			&startTime,
			&trip.StartStation,
			&trip.EndStation,
			&trip.Duration,
			&userType,
			&gender,
			&birthYear,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trip: %w", err)
		}

		trip.StartTime, err = time.Parse(timeLayout, startTime)
		if err != nil {
			return nil, fmt.Errorf("failed to parse start time %q: %w", startTime, err)
		}
		trip.UserType = userType.String
		trip.Gender = gender.String
		trip.BirthYear = int(birthYear.Int64)
		trips = append(trips, trip)
	}

	return trips, rows.Err()
}

// Mode returns the most frequent non-empty value of column.
// Ties go to the smallest value.
func (db *DB) Mode(column string) (string, error) {
	if !aggregateColumns[column] {
		return "", fmt.Errorf("unsupported column %q", column)
	}

	query := fmt.Sprintf(`
		SELECT CAST(%[1]s AS TEXT), COUNT(*) AS n
		FROM trips
		WHERE %[1]s IS NOT NULL AND %[1]s <> ''
		GROUP BY %[1]s
		ORDER BY n DESC, %[1]s ASC
		LIMIT 1
	`, column)

	var value string
	var n int
	err := db.QueryRowContext(context.Background(), query).Scan(&value, &n)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("mode of %s: %w", column, ErrNoValues)
	}
	if err != nil {
		return "", fmt.Errorf("failed to query mode of %s: %w", column, err)
	}
	return value, nil
}

// ValueCounts returns the number of trips per non-empty value of column,
// most frequent first.
func (db *DB) ValueCounts(column string) ([]models.Count, error) {
	if !aggregateColumns[column] {
		return nil, fmt.Errorf("unsupported column %q", column)
	}

	query := fmt.Sprintf(`
		SELECT CAST(%[1]s AS TEXT), COUNT(*) AS n
		FROM trips
		WHERE %[1]s IS NOT NULL AND %[1]s <> ''
		GROUP BY %[1]s
		ORDER BY n DESC, %[1]s ASC
	`, column)

	rows, err := db.QueryContext(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("failed to query value counts of %s: %w", column, err)
	}
	defer func() { _ = rows.Close() }()

	var counts []models.Count
	for rows.Next() {
		var c models.Count
		if err := rows.Scan(&c.Value, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan value count: %w", err)
		}
		counts = append(counts, c)
	}

	return counts, rows.Err()
}

// DurationTotals returns the summed and mean trip duration in seconds.
func (db *DB) DurationTotals() (*models.DurationStats, error) {
	query := `
		SELECT COALESCE(SUM(trip_duration), 0), COALESCE(AVG(trip_duration), 0)
		FROM trips
	`

	var stats models.DurationStats
	err := db.QueryRowContext(context.Background(), query).Scan(&stats.Total, &stats.Mean)
	if err != nil {
		return nil, fmt.Errorf("failed to query duration totals: %w", err)
	}
	return &stats, nil
}

// BirthYearRange returns the earliest and latest recorded birth year.
// It returns ErrNoValues when no trip has a birth year.
func (db *DB) BirthYearRange() (earliest, latest int, err error) {
	query := `SELECT MIN(birth_year), MAX(birth_year) FROM trips WHERE birth_year IS NOT NULL`

	var minYear, maxYear sql.NullInt64
	if err := db.QueryRowContext(context.Background(), query).Scan(&minYear, &maxYear); err != nil {
		return 0, 0, fmt.Errorf("failed to query birth year range: %w", err)
	}
	if !minYear.Valid || !maxYear.Valid {
		return 0, 0, fmt.Errorf("birth year range: %w", ErrNoValues)
	}
	return int(minYear.Int64), int(maxYear.Int64), nil
}

// HourlyCounts returns the number of trips per start hour, indexed 0-23.
func (db *DB) HourlyCounts() ([]float64, error) {
	query := `
		SELECT hour, COUNT(*)
		FROM trips
		GROUP BY hour
		ORDER BY hour
	`

	rows, err := db.QueryContext(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("failed to query hourly counts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	counts := make([]float64, 24)
	for rows.Next() {
		var hour, n int
		if err := rows.Scan(&hour, &n); err != nil {
			return nil, fmt.Errorf("failed to scan hourly count: %w", err)
		}
		if hour >= 0 && hour < len(counts) {
			counts[hour] = float64(n)
		}
	}

	return counts, rows.Err()
}

// nullString converts an empty string to SQL NULL.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// nullInt converts a zero value to SQL NULL.
func nullInt(n int) sql.NullInt64 {
	if n == 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(n), Valid: true}
}
