package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/j-veylop/bikeshare-explorer/internal/config"
	"github.com/j-veylop/bikeshare-explorer/internal/models"
)

// 2017-06-04 and 2017-06-11 are Sundays, 2017-01-01 is a Sunday in January.
const chicagoCSV = `,Start Time,End Time,Trip Duration,Start Station,End Station,User Type,Gender,Birth Year
1,2017-06-04 09:07:57,2017-06-04 09:20:53,776,Canal St & Adams St,Clark St & Lake St,Subscriber,Male,1980.0
2,2017-06-11 17:30:00,2017-06-11 17:45:00,900,Canal St & Adams St,Wells St & Elm St,Customer,,
3,2017-06-05 08:00:00,2017-06-05 08:10:00,600,State St & Harrison St,Clark St & Lake St,Subscriber,Female,1990.0
4,2017-01-01 00:07:57,2017-01-01 00:20:53,300,Canal St & Adams St,Clark St & Lake St,Subscriber,Female,1980.0
5,2017-03-15 12:00:00,2017-03-15 12:30:00,1800,Wells St & Elm St,State St & Harrison St,Subscriber,Male,1975.0
`

const washingtonCSV = `,Start Time,End Time,Trip Duration,Start Station,End Station,User Type
1,2017-06-21 08:36:34,2017-06-21 08:44:43,489.066,14th & Belmont St NW,15th & K St NW,Subscriber
2,2017-03-11 10:40:00,2017-03-11 10:46:00,402.549,Yuma St & Tenley Circle NW,Connecticut Ave & Yuma St NW,Customer
`

func writeFixtures(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"chicago.csv":    chicagoCSV,
		"washington.csv": washingtonCSV,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
			t.Fatalf("WriteFile(%s) failed: %v", name, err)
		}
	}
	return &config.Config{DataDir: dir}
}

type recordingResolver struct {
	cfg  *config.Config
	seen []string
}

func (r *recordingResolver) CityPath(city string) (string, bool) {
	path, ok := r.cfg.CityPath(city)
	r.seen = append(r.seen, path)
	return path, ok
}

func TestRead(t *testing.T) {
	table, err := Read(strings.NewReader(chicagoCSV))
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}

	if table.Len() != 5 {
		t.Errorf("Len() = %d, want 5", table.Len())
	}
	if !table.Schema().HasGender || !table.Schema().HasBirthYear {
		t.Errorf("Schema() = %+v, want both optional columns", table.Schema())
	}

	wantMonths := []int{6, 6, 6, 1, 3}
	months := table.Months()
	for i, want := range wantMonths {
		if months[i] != want {
			t.Errorf("month[%d] = %d, want %d", i, months[i], want)
		}
	}

	wantDays := []string{"Sunday", "Sunday", "Monday", "Sunday", "Wednesday"}
	days := table.Weekdays()
	for i, want := range wantDays {
		if days[i] != want {
			t.Errorf("day_of_week[%d] = %q, want %q", i, days[i], want)
		}
	}
}

func TestRead_OptionalColumnsAbsent(t *testing.T) {
	table, err := Read(strings.NewReader(washingtonCSV))
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}

	if table.Schema().HasGender || table.Schema().HasBirthYear {
		t.Errorf("Schema() = %+v, want no optional columns", table.Schema())
	}
}

func TestRead_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name:    "MissingColumn",
			content: "Start Time,Start Station,End Station,User Type\n2017-06-04 09:07:57,A,B,Subscriber\n",
			wantErr: ErrMissingColumn,
		},
		{
			name:    "BadStartTime",
			content: "Start Time,Start Station,End Station,Trip Duration,User Type\nyesterday,A,B,10,Subscriber\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.content))
			if err == nil {
				t.Fatal("Read() should fail")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Read() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestTable_Filter(t *testing.T) {
	table, err := Read(strings.NewReader(chicagoCSV))
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}

	tests := []struct {
		name  string
		month string
		day   string
		want  int
	}{
		{"NoFilter", "all", "all", 5},
		{"MonthOnly", "june", "all", 3},
		{"DayOnly", "all", "sunday", 3},
		{"MonthAndDay", "june", "sunday", 2},
		{"NoMatch", "february", "all", 0},
		{"DayWithoutTrips", "all", "friday", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := models.Filter{City: "chicago", Month: tt.month, Day: tt.day}
			filtered, err := table.Filter(filter)
			if err != nil {
				t.Fatalf("Filter() failed: %v", err)
			}
			if filtered.Len() != tt.want {
				t.Fatalf("Filter(%s) kept %d rows, want %d", filter, filtered.Len(), tt.want)
			}

			for _, m := range filtered.Months() {
				if n := filter.MonthNumber(); n != 0 && m != n {
					t.Errorf("row with month %d survived month filter %d", m, n)
				}
			}
			for _, d := range filtered.Weekdays() {
				if w := filter.Weekday(); w != "" && d != w {
					t.Errorf("row with weekday %q survived day filter %q", d, w)
				}
			}
		})
	}
}

func TestTable_Trips(t *testing.T) {
	table, err := Read(strings.NewReader(chicagoCSV))
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}

	trips, err := table.Trips()
	if err != nil {
		t.Fatalf("Trips() failed: %v", err)
	}
	if len(trips) != 5 {
		t.Fatalf("len(Trips()) = %d, want 5", len(trips))
	}

	first := trips[0]
	if first.StartStation != "Canal St & Adams St" || first.EndStation != "Clark St & Lake St" {
		t.Errorf("unexpected stations: %+v", first)
	}
	if first.Duration != 776 {
		t.Errorf("Duration = %v, want 776", first.Duration)
	}
	if first.Gender != "Male" || first.BirthYear != 1980 {
		t.Errorf("Gender/BirthYear = %q/%d, want Male/1980", first.Gender, first.BirthYear)
	}

	blank := trips[1]
	if blank.Gender != "" || blank.BirthYear != 0 {
		t.Errorf("missing demographics should be zero values, got %q/%d", blank.Gender, blank.BirthYear)
	}
}

func TestLoader_ResolvesMappedFile(t *testing.T) {
	cfg := writeFixtures(t)

	for _, city := range []string{"chicago", "washington"} {
		t.Run(city, func(t *testing.T) {
			resolver := &recordingResolver{cfg: cfg}
			loader := NewLoader(resolver)

			if _, err := loader.Load(models.Filter{City: city, Month: models.All, Day: models.All}); err != nil {
				t.Fatalf("Load() failed: %v", err)
			}

			want := filepath.Join(cfg.DataDir, config.CityFiles[city])
			if len(resolver.seen) != 1 || resolver.seen[0] != want {
				t.Errorf("loader read %v, want [%s]", resolver.seen, want)
			}
		})
	}
}

func TestLoader_ChicagoJuneSunday(t *testing.T) {
	loader := NewLoader(writeFixtures(t))

	table, err := loader.Load(models.Filter{City: "chicago", Month: "june", Day: "sunday"})
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if table.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", table.Len())
	}
	for _, m := range table.Months() {
		if m != 6 {
			t.Errorf("month = %d, want 6", m)
		}
	}
	for _, d := range table.Weekdays() {
		if d != "Sunday" {
			t.Errorf("day_of_week = %q, want Sunday", d)
		}
	}
}

func TestLoader_Errors(t *testing.T) {
	loader := NewLoader(writeFixtures(t))

	_, err := loader.Load(models.Filter{City: "boston", Month: models.All, Day: models.All})
	if !errors.Is(err, ErrUnknownCity) {
		t.Errorf("Load(boston) error = %v, want ErrUnknownCity", err)
	}

	// new_york_city.csv is not part of the fixtures
	_, err = loader.Load(models.Filter{City: "new york city", Month: models.All, Day: models.All})
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(new york city) error = %v, want os.ErrNotExist", err)
	}
}
