package session

import (
	"time"

	"github.com/cppla/prepmeter/gamification"
	"github.com/cppla/prepmeter/models"
)

// Updater mutates the candidate copy of a user's state. Returning an error aborts the pass and
// leaves the prior state authoritative.
type Updater func(state *models.UserState) error

// Chain runs updaters in order, stopping at the first error.
func Chain(updaters ...Updater) Updater {
	return func(s *models.UserState) error {
		for _, u := range updaters {
			if u == nil {
				continue
			}
			if err := u(s); err != nil {
				return err
			}
		}
		return nil
	}
}

// Patch is a partial-field update. Nil fields are left untouched.
type Patch struct {
	DisplayName   *string                 `json:"displayName"`
	Notes         *string                 `json:"notes"`
	PrepStartDate *time.Time              `json:"prepStartDate"`
	ExamDate      *time.Time              `json:"examDate"`
	Teachers      *[]models.Teacher       `json:"teachers"`
	UpcomingTests *[]models.UpcomingTest  `json:"upcomingTests"`
	Lectures      *[]models.Lecture       `json:"lectures"`
	Events        *[]models.CalendarEvent `json:"events"`
}

// Merge returns an updater that copies the set fields of p onto the state.
func Merge(p Patch) Updater {
	return func(s *models.UserState) error {
		if p.DisplayName != nil {
			s.DisplayName = *p.DisplayName
		}
		if p.Notes != nil {
			s.Notes = *p.Notes
		}
		if p.PrepStartDate != nil {
			d := *p.PrepStartDate
			s.PrepStartDate = &d
		}
		if p.ExamDate != nil {
			d := *p.ExamDate
			s.ExamDate = &d
		}
		if p.Teachers != nil {
			s.Teachers = append([]models.Teacher{}, (*p.Teachers)...)
		}
		if p.UpcomingTests != nil {
			s.UpcomingTests = append([]models.UpcomingTest{}, (*p.UpcomingTests)...)
		}
		if p.Lectures != nil {
			s.Lectures = append([]models.Lecture{}, (*p.Lectures)...)
		}
		if p.Events != nil {
			s.Events = append([]models.CalendarEvent{}, (*p.Events)...)
		}
		return nil
	}
}

// Engine runs one update pass: updater, achievements, challenges, rank.
type Engine struct {
	Rank gamification.RankPolicy
}

// DefaultEngine uses the default rank refresh window.
var DefaultEngine = Engine{Rank: gamification.DefaultRankPolicy}

// Apply computes the next state from prior without touching it. The updater sees a deep copy;
// every later step reads only that copy. It returns the candidate and the achievements the pass
// unlocked, which are already appended to candidate.Achievements.
func (e Engine) Apply(prior *models.UserState, update Updater, event *models.Event, now time.Time) (models.UserState, []models.Achievement, error) {
	candidate := prior.Clone()
	if update != nil {
		if err := update(&candidate); err != nil {
			return models.UserState{}, nil, err
		}
	}

	unlocked := gamification.Evaluate(&candidate, event, now)
	candidate.Achievements = append(candidate.Achievements, unlocked...)

	gamification.EvaluateChallenges(candidate.Challenges, now)
	e.Rank.Refresh(&candidate, now)

	return candidate, unlocked, nil
}

// Apply runs DefaultEngine.
func Apply(prior *models.UserState, update Updater, event *models.Event, now time.Time) (models.UserState, []models.Achievement, error) {
	return DefaultEngine.Apply(prior, update, event, now)
}
