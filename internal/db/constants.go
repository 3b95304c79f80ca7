package db

// timeLayout is the text format start times are stored in; strftime
// understands it, which the generated calendar columns rely on.
const timeLayout = "2006-01-02 15:04:05"

// Column names a mode or value count can be computed over.
const (
	ColumnMonth        = "month"
	ColumnDayOfWeek    = "day_of_week"
	ColumnHour         = "hour"
	ColumnStartStation = "start_station"
	ColumnEndStation   = "end_station"
	ColumnRoute        = "route"
	ColumnUserType     = "user_type"
	ColumnGender       = "gender"
	ColumnBirthYear    = "birth_year"
)

var aggregateColumns = map[string]bool{
	ColumnMonth:        true,
	ColumnDayOfWeek:    true,
	ColumnHour:         true,
	ColumnStartStation: true,
	ColumnEndStation:   true,
	ColumnRoute:        true,
	ColumnUserType:     true,
	ColumnGender:       true,
	ColumnBirthYear:    true,
}
