package gamification

import (
	"time"

	"github.com/cppla/prepmeter/models"
)

// EvaluateChallenge advances one challenge's status for an update pass at now.
//
//	active    -> completed  current >= goal, current clamped to goal
//	active    -> failed     now after endDate and goal not met
//	completed -> active     current < goal and now not after endDate
//
// failed is terminal. A completed challenge that regresses after its end date stays completed.
func EvaluateChallenge(c *models.Challenge, now time.Time) {
	switch c.Status {
	case models.ChallengeActive:
		if c.Current >= c.Goal {
			c.Status = models.ChallengeCompleted
			c.Current = c.Goal
		} else if now.After(c.EndDate) {
			c.Status = models.ChallengeFailed
		}
	case models.ChallengeCompleted:
		if c.Current < c.Goal && !now.After(c.EndDate) {
			c.Status = models.ChallengeActive
		}
	}
}

// EvaluateChallenges runs EvaluateChallenge over every challenge in place.
func EvaluateChallenges(challenges []models.Challenge, now time.Time) {
	for i := range challenges {
		EvaluateChallenge(&challenges[i], now)
	}
}

// Accrue adds delta to the progress of every challenge of type t that has started by now and
// has not failed. Completed challenges only take negative deltas, which is how an undone task
// pulls a challenge back below its goal. Progress never drops below zero.
func Accrue(challenges []models.Challenge, t models.ChallengeType, delta float64, now time.Time) {
	if delta == 0 {
		return
	}
	for i := range challenges {
		c := &challenges[i]
		if c.Type != t || c.Status == models.ChallengeFailed || now.Before(c.StartDate) {
			continue
		}
		if c.Status == models.ChallengeCompleted && delta > 0 {
			continue
		}
		if c.Status == models.ChallengeActive && now.After(c.EndDate) {
			continue
		}
		c.Current += delta
		if c.Current < 0 {
			c.Current = 0
		}
	}
}

// NewChallenge builds an active challenge starting at start and lasting durationDays.
func NewChallenge(id, title string, t models.ChallengeType, goal float64, durationDays int, start time.Time) models.Challenge {
	return models.Challenge{
		ID:           id,
		Title:        title,
		Type:         t,
		Goal:         goal,
		Unit:         t.Unit(),
		DurationDays: durationDays,
		StartDate:    start,
		EndDate:      start.AddDate(0, 0, durationDays),
		Status:       models.ChallengeActive,
	}
}
