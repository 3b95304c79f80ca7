package config

// CityFiles maps each supported city to the trip data file that holds its records.
var CityFiles = map[string]string{
	"chicago":       "chicago.csv",
	"new york city": "new_york_city.csv",
	"washington":    "washington.csv",
}
