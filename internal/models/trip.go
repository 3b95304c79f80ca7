package models

import (
	"fmt"
	"time"
)

// Trip represents one recorded bike rental.
type Trip struct {
	StartTime    time.Time
	StartStation string
	EndStation   string
	Duration     float64 // seconds
	UserType     string
	Gender       string // empty when unknown or not recorded
	BirthYear    int    // 0 when unknown or not recorded
}

// Month returns the calendar month number of the start time.
func (t Trip) Month() int {
	return int(t.StartTime.Month())
}

// DayOfWeek returns the weekday name of the start time.
func (t Trip) DayOfWeek() string {
	return t.StartTime.Weekday().String()
}

// Hour returns the hour of day of the start time.
func (t Trip) Hour() int {
	return t.StartTime.Hour()
}

// Route returns the start/end station pair label.
func (t Trip) Route() string {
	return RouteLabel(t.StartStation, t.EndStation)
}

// RouteLabel formats a start/end station pair as "(start) - (end)".
func RouteLabel(start, end string) string {
	return fmt.Sprintf("(%s) - (%s)", start, end)
}

// Schema records which optional columns a city table carries.
type Schema struct {
	HasGender    bool
	HasBirthYear bool
}
