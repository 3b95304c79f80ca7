// Package db manages the in-memory trip table used for aggregation.
package db

import (
	"context"
	"database/sql"
	"fmt"

	// Import modernc.org/sqlite as a blank import to register the driver
	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// DB wraps the SQL database connection with application-specific methods.
type DB struct {
	*sql.DB
	path string
}

// New creates a new database connection and initializes the schema.
func New(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Every connection to :memory: gets its own database, so keep exactly one.
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.PingContext(context.Background()); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db := &DB{
		DB:   sqlDB,
		path: path,
	}

	if err := db.configure(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to configure database: %w", err)
	}

	if err := db.createSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return db, nil
}

// Path returns the database path.
func (db *DB) Path() string {
	return db.path
}

// configure sets up database pragmas for a throwaway table.
func (db *DB) configure() error {
	pragmas := []string{
		"PRAGMA journal_mode=MEMORY",
		"PRAGMA synchronous=OFF",
		"PRAGMA cache_size=-64000", // 64MB cache
		"PRAGMA temp_store=MEMORY",
	}

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(context.Background(), pragma); err != nil {
			return fmt.Errorf("failed to execute %s: %w", pragma, err)
		}
	}

	return nil
}

func (db *DB) createSchema() error {
	return db.createTripsTable()
}

// createTripsTable creates the trips table. Calendar fields and the route
// label are generated from the stored columns.
func (db *DB) createTripsTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS trips (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		start_time TEXT NOT NULL,
		start_station TEXT NOT NULL,
		end_station TEXT NOT NULL,
		trip_duration REAL NOT NULL DEFAULT 0,
		user_type TEXT,
		gender TEXT,
		birth_year INTEGER,
		month INTEGER GENERATED ALWAYS AS (CAST(strftime('%m', start_time) AS INTEGER)) STORED,
		day_of_week INTEGER GENERATED ALWAYS AS (CAST(strftime('%w', start_time) AS INTEGER)) STORED,
		hour INTEGER GENERATED ALWAYS AS (CAST(strftime('%H', start_time) AS INTEGER)) STORED,
		route TEXT GENERATED ALWAYS AS ('(' || start_station || ') - (' || end_station || ')') STORED
	);
	CREATE INDEX IF NOT EXISTS idx_trips_month ON trips(month);
	CREATE INDEX IF NOT EXISTS idx_trips_dow_hour ON trips(day_of_week, hour);
	`
	_, err := db.ExecContext(context.Background(), query)
	return err
}

// Close closes the database connection, discarding the table.
func (db *DB) Close() error {
	return db.DB.Close()
}
