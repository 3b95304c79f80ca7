// Package main is the entry point for the bikeshare explorer.
// It loads configuration and runs the interactive session on stdin/stdout.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/j-veylop/bikeshare-explorer/internal/app"
	"github.com/j-veylop/bikeshare-explorer/internal/config"
	"github.com/j-veylop/bikeshare-explorer/internal/logger"
	"github.com/j-veylop/bikeshare-explorer/internal/version"
)

func main() {
	// Handle version flag
	if len(os.Args) > 1 && (os.Args[1] == "-v" || os.Args[1] == "--version") {
		fmt.Println(version.Info())
		os.Exit(0)
	}

	// Handle help flag
	if len(os.Args) > 1 && (os.Args[1] == "-h" || os.Args[1] == "--help") {
		printUsage(os.Stdout)
		os.Exit(0)
	}

	if err := run(os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run contains the main application logic, separated for cleaner error handling.
func run(in io.Reader, out io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := logger.SetLevel(cfg.LogLevel); err != nil {
		logger.Warn("ignoring log level", "error", err)
	}
	logger.Debug("configuration loaded", "data_dir", cfg.DataDir, "charts", cfg.ShowCharts)

	return app.NewSession(cfg, in, out).Run()
}

// printUsage prints the command-line usage information.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, `Bikeshare Explorer - interactive statistics for US bike-share trips

Usage:
  bikeshare [flags]

Flags:
  -h, --help      Show this help message
  -v, --version   Show version information

The program asks for a city (chicago, new york city, washington), a month
(all, january ... june) and a day of week (all, monday ... sunday), then prints
popular travel times, stations, trip durations and user statistics.

Environment Variables:
  BIKESHARE_DATA_DIR      Directory holding chicago.csv, new_york_city.csv
                          and washington.csv (default: current directory)
  BIKESHARE_LOG_LEVEL     debug, info, warn or error (default: warn)
  BIKESHARE_SHOW_CHARTS   Show the trips-by-hour chart (default: true)

Configuration:
  The application looks for .env files in the following locations:
  - Current directory
  - ~/.config/bikeshare/.env
  - ~/.bikeshare/.env`)
}
