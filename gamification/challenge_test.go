package gamification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cppla/prepmeter/models"
)

func challenge(current float64, status models.ChallengeStatus, end time.Time) models.Challenge {
	return models.Challenge{
		ID:        "c1",
		Type:      models.ChallengeStudyHours,
		Goal:      10,
		Current:   current,
		StartDate: end.AddDate(0, 0, -7),
		EndDate:   end,
		Status:    status,
	}
}

func TestEvaluateChallenge(t *testing.T) {
	future := now.Add(48 * time.Hour)
	past := now.Add(-48 * time.Hour)

	cases := []struct {
		name        string
		in          models.Challenge
		wantStatus  models.ChallengeStatus
		wantCurrent float64
	}{
		{"active reaches goal", challenge(10, models.ChallengeActive, future), models.ChallengeCompleted, 10},
		{"active overshoot clamps", challenge(13.5, models.ChallengeActive, future), models.ChallengeCompleted, 10},
		{"completion beats expiry", challenge(11, models.ChallengeActive, past), models.ChallengeCompleted, 10},
		{"active expired", challenge(4, models.ChallengeActive, past), models.ChallengeFailed, 4},
		{"active in progress", challenge(4, models.ChallengeActive, future), models.ChallengeActive, 4},
		{"active ends exactly now", challenge(4, models.ChallengeActive, now), models.ChallengeActive, 4},
		{"completed reverted in window", challenge(8, models.ChallengeCompleted, future), models.ChallengeActive, 8},
		{"completed reverted after end", challenge(8, models.ChallengeCompleted, past), models.ChallengeCompleted, 8},
		{"completed stays", challenge(10, models.ChallengeCompleted, past), models.ChallengeCompleted, 10},
		{"failed is terminal", challenge(12, models.ChallengeFailed, future), models.ChallengeFailed, 12},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := tc.in
			EvaluateChallenge(&c, now)
			assert.Equal(t, tc.wantStatus, c.Status)
			assert.Equal(t, tc.wantCurrent, c.Current)
		})
	}
}

func TestEvaluateChallenges_RevertScenario(t *testing.T) {
	cs := []models.Challenge{challenge(10, models.ChallengeActive, now.Add(24*time.Hour))}

	EvaluateChallenges(cs, now)
	assert.Equal(t, models.ChallengeCompleted, cs[0].Status)

	cs[0].Current = 8
	EvaluateChallenges(cs, now.Add(time.Hour))
	assert.Equal(t, models.ChallengeActive, cs[0].Status)
	assert.Equal(t, 8.0, cs[0].Current)
}

func TestAccrue(t *testing.T) {
	future := now.Add(48 * time.Hour)
	cs := []models.Challenge{
		challenge(2, models.ChallengeActive, future),
		challenge(10, models.ChallengeCompleted, future),
		challenge(3, models.ChallengeFailed, future),
		{ID: "topics", Type: models.ChallengeCompletedTopics, Goal: 5, StartDate: now.Add(-time.Hour), EndDate: future, Status: models.ChallengeActive},
		{ID: "later", Type: models.ChallengeStudyHours, Goal: 5, StartDate: now.Add(time.Hour), EndDate: future, Status: models.ChallengeActive},
	}

	Accrue(cs, models.ChallengeStudyHours, 1.5, now)
	assert.Equal(t, 3.5, cs[0].Current)
	assert.Equal(t, 10.0, cs[1].Current, "completed ignores positive progress")
	assert.Equal(t, 3.0, cs[2].Current, "failed ignores progress")
	assert.Equal(t, 0.0, cs[3].Current, "other type untouched")
	assert.Equal(t, 0.0, cs[4].Current, "not started yet")

	Accrue(cs, models.ChallengeStudyHours, -4, now)
	assert.Equal(t, 0.0, cs[0].Current)
	assert.Equal(t, 6.0, cs[1].Current)
}

func TestNewChallenge(t *testing.T) {
	c := NewChallenge("id", "Grind", models.ChallengeQuestionsSolved, 300, 7, now)
	assert.Equal(t, models.ChallengeActive, c.Status)
	assert.Equal(t, "questions", c.Unit)
	assert.Equal(t, now.AddDate(0, 0, 7), c.EndDate)
	assert.Zero(t, c.Current)
}

func TestRefreshRank(t *testing.T) {
	s := newState()
	s.LastRankUpdate = now.AddDate(0, 0, -3)
	assert.False(t, RefreshRank(&s, now), "exactly three days is not past the window")

	s.LastRankUpdate = now.AddDate(0, 0, -3).Add(-time.Minute)
	assert.True(t, RefreshRank(&s, now))
	assert.Equal(t, now, s.LastRankUpdate)

	assert.False(t, RefreshRank(&s, now.Add(time.Hour)))

	weekly := RankPolicy{Days: 7}
	s.LastRankUpdate = now.AddDate(0, 0, -5)
	assert.False(t, weekly.Refresh(&s, now))
}
