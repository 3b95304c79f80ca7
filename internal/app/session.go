// Package app runs the interactive exploration session.
package app

import (
	"errors"
	"fmt"
	"io"

	"github.com/j-veylop/bikeshare-explorer/internal/config"
	"github.com/j-veylop/bikeshare-explorer/internal/db"
	"github.com/j-veylop/bikeshare-explorer/internal/logger"
	"github.com/j-veylop/bikeshare-explorer/internal/models"
	"github.com/j-veylop/bikeshare-explorer/internal/services/dataset"
	"github.com/j-veylop/bikeshare-explorer/internal/services/stats"
	"github.com/j-veylop/bikeshare-explorer/internal/ui/components"
	"github.com/j-veylop/bikeshare-explorer/internal/ui/prompt"
	"github.com/j-veylop/bikeshare-explorer/internal/ui/styles"
)

// PageSize is the number of raw rows shown per chunk.
const PageSize = 5

const (
	greeting = "Hello! Let's explore some US bikeshare data!"

	cityQuestion    = "What is the city name, please choose one of the following (chicago, new york city, washington):"
	monthQuestion   = "What is the required month, please choose one of the following (all, january, february, ... , june):"
	dayQuestion     = "What is the required day, please choose one of the following (all, monday, tuesday, ... sunday):"
	browseQuestion  = "Would you like to check the row data?"
	moreQuestion    = "Would you like to check more row data?"
	restartQuestion = "Would you like to restart? Enter yes or no."
)

// Session drives the collect, load, browse and report cycle.
type Session struct {
	cfg      *config.Config
	loader   *dataset.Loader
	prompter *prompt.Prompter
	out      io.Writer
}

// NewSession creates a session reading answers from in and writing to out.
func NewSession(cfg *config.Config, in io.Reader, out io.Writer) *Session {
	return &Session{
		cfg:      cfg,
		loader:   dataset.NewLoader(cfg),
		prompter: prompt.New(in, out),
		out:      out,
	}
}

// Run repeats the exploration cycle until the user declines a restart or
// input ends. Load and reporting failures end the session with an error.
func (s *Session) Run() error {
	for {
		again, err := s.runOnce()
		if errors.Is(err, io.EOF) {
			logger.Debug("input closed, ending session")
			return nil
		}
		if err != nil {
			return err
		}
		if !again {
			return nil
		}
	}
}

// runOnce performs one cycle and reports whether the user asked to restart.
func (s *Session) runOnce() (bool, error) {
	filter, err := s.collectFilters()
	if err != nil {
		return false, err
	}

	table, err := s.loader.Load(filter)
	if err != nil {
		return false, err
	}

	trips, err := table.Trips()
	if err != nil {
		return false, err
	}

	store, err := db.New(db.MemoryPath)
	if err != nil {
		return false, err
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			logger.Warn("failed to close trip store", "error", closeErr)
		}
	}()

	if err := store.ReplaceTrips(trips); err != nil {
		return false, err
	}

	schema := table.Schema()
	if err := s.browse(store, schema); err != nil {
		return false, err
	}

	svc := stats.New(store)
	if err := s.report(svc, schema); err != nil {
		return false, fmt.Errorf("%s: %w", filter, err)
	}

	s.println()
	return s.prompter.Confirm(restartQuestion)
}

// collectFilters asks for city, month and day.
func (s *Session) collectFilters() (models.Filter, error) {
	s.println(styles.TitleStyle.Render(greeting))

	city, err := s.prompter.Choose(cityQuestion, models.Cities)
	if err != nil {
		return models.Filter{}, err
	}
	month, err := s.prompter.Choose(monthQuestion, withAll(models.Months))
	if err != nil {
		return models.Filter{}, err
	}
	day, err := s.prompter.Choose(dayQuestion, withAll(models.Days))
	if err != nil {
		return models.Filter{}, err
	}

	s.println(styles.Separator())
	return models.Filter{City: city, Month: month, Day: day}, nil
}

// browse pages through the table PageSize rows at a time while the user asks
// for more. Paging past the end shows an empty chunk.
func (s *Session) browse(store *db.DB, schema models.Schema) error {
	ok, err := s.prompter.Confirm(browseQuestion)
	if err != nil || !ok {
		return err
	}

	for offset := 0; ; offset += PageSize {
		trips, err := store.Page(offset, PageSize)
		if err != nil {
			return err
		}
		s.println(components.RenderTrips(trips, schema))

		more, err := s.prompter.Confirm(moreQuestion)
		if err != nil || !more {
			return err
		}
	}
}

func (s *Session) println(a ...any) {
	_, _ = fmt.Fprintln(s.out, a...)
}

func withAll(options []string) []string {
	return append([]string{models.All}, options...)
}
