package models

import "time"

// Count is the number of trips sharing one value of a column.
type Count struct {
	Value string
	Count int
}

// TimeStats holds the most frequent times of travel.
type TimeStats struct {
	Month   int
	Weekday string
	Hour    int
	// ByHour holds the number of trips per start hour, indexed 0-23.
	ByHour []float64
}

// MonthName returns the English name of the most common month.
func (s TimeStats) MonthName() string {
	if s.Month < 1 || s.Month > 12 {
		return ""
	}
	return time.Month(s.Month).String()
}

// StationStats holds the most popular stations and route.
type StationStats struct {
	StartStation string
	EndStation   string
	Route        string
}

// DurationStats holds trip duration aggregates in seconds.
type DurationStats struct {
	Total float64
	Mean  float64
}

// TotalHours returns the summed duration in hours.
func (s DurationStats) TotalHours() float64 {
	return s.Total / 3600
}

// BirthYearStats holds the earliest, latest and most common birth year.
type BirthYearStats struct {
	Earliest   int
	Latest     int
	MostCommon int
}

// UserStats holds user demographics.
// Genders is nil and BirthYears is nil when the source has no such column.
type UserStats struct {
	UserTypes  []Count
	Genders    []Count
	BirthYears *BirthYearStats
}
