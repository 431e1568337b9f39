// Package tracker turns user intents (complete a slot, log a test, review a day) into update
// passes for a session: an updater that edits the candidate state and the event context the
// achievement evaluator sees.
package tracker

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cppla/prepmeter/gamification"
	"github.com/cppla/prepmeter/models"
	"github.com/cppla/prepmeter/session"
)

var (
	// ErrNotFound means the addressed plan, slot or record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalid means the input failed validation.
	ErrInvalid = errors.New("invalid input")
	// ErrConflict means the request contradicts the current state, e.g. reviewing a day twice.
	ErrConflict = errors.New("conflict")
)

// Action is one update pass. Event is filled in by Update while it runs, so it must only be
// read after Update returned.
type Action struct {
	Update session.Updater
	Event  *models.Event
}

// Run applies the action on s.
func (a Action) Run(s *session.Session) (models.UserState, []models.Achievement, error) {
	return s.Apply(a.Update, a.Event)
}

func plain(update session.Updater) Action {
	return Action{Update: update}
}

func newID() string {
	return uuid.NewString()
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

func notFound(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

func checkDate(date string) error {
	if _, err := time.Parse(gamification.DateLayout, date); err != nil {
		return invalid("date %q is not YYYY-MM-DD", date)
	}
	return nil
}

func checkClock(hhmm string) error {
	if _, err := time.Parse("15:04", hhmm); err != nil {
		return invalid("time %q is not HH:MM", hhmm)
	}
	return nil
}

func checkSubject(s models.SubjectName) error {
	for _, known := range models.Subjects {
		if s == known {
			return nil
		}
	}
	return invalid("unknown subject %q", s)
}

func nextDay(date string) string {
	d, _ := time.Parse(gamification.DateLayout, date)
	return d.AddDate(0, 0, 1).Format(gamification.DateLayout)
}
