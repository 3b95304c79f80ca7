// Package models defines data structures and domain types.
package models

import (
	"fmt"
	"strings"
)

// All is the selection that disables a month or day filter.
const All = "all"

// Cities lists the supported cities in prompt order.
var Cities = []string{"chicago", "new york city", "washington"}

// Months lists the months covered by the trip data, january first.
var Months = []string{"january", "february", "march", "april", "may", "june"}

// Days lists the weekdays accepted as a day filter, monday first.
var Days = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// Filter is a validated city, month and day selection.
// Month and Day hold either All or a lower-case entry of Months or Days.
type Filter struct {
	City  string
	Month string
	Day   string
}

// MonthNumber returns the calendar number of the selected month (january = 1),
// or 0 when no month filter applies.
func (f Filter) MonthNumber() int {
	for i, m := range Months {
		if m == f.Month {
			return i + 1
		}
	}
	return 0
}

// Weekday returns the selected day as a title-cased weekday name ("Sunday"),
// or "" when no day filter applies.
func (f Filter) Weekday() string {
	if f.Day == "" || f.Day == All {
		return ""
	}
	return strings.ToUpper(f.Day[:1]) + f.Day[1:]
}

// String returns a short description of the selection.
func (f Filter) String() string {
	return fmt.Sprintf("city=%s month=%s day=%s", f.City, f.Month, f.Day)
}
