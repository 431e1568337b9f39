package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cppla/prepmeter/gamification"
	"github.com/cppla/prepmeter/models"
)

var t0 = time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

func baseState() models.UserState {
	return models.NewUserState(models.Identity{UserID: 1, DisplayName: "Meera"}, t0)
}

func TestApply_DoesNotTouchPrior(t *testing.T) {
	prior := baseState()
	prior.StudyStreak = 3

	next, unlocked, err := Apply(&prior, func(s *models.UserState) error {
		s.Notes = "changed"
		s.Topics.Physics.Chapters[0].Status = models.TopicCompleted
		return nil
	}, nil, t0)
	require.NoError(t, err)

	assert.Equal(t, "", prior.Notes)
	assert.Empty(t, prior.Achievements)
	assert.Equal(t, models.TopicNotStarted, prior.Topics.Physics.Chapters[0].Status)

	assert.Equal(t, "changed", next.Notes)
	assert.Equal(t, []string{"streak-3", "first-chapter"}, achievementIDs(unlocked))
	assert.Equal(t, []string{"streak-3", "first-chapter"}, achievementIDs(next.Achievements))
}

func TestApply_EvaluatesAfterUpdater(t *testing.T) {
	prior := baseState()
	next, unlocked, err := Apply(&prior, func(s *models.UserState) error {
		s.Tests = append(s.Tests, make([]models.TestResult, 5)...)
		return nil
	}, nil, t0)
	require.NoError(t, err)
	assert.Equal(t, []string{"test-5"}, achievementIDs(unlocked))
	assert.Len(t, next.Tests, 5)
}

func TestApply_UpdaterErrorAborts(t *testing.T) {
	prior := baseState()
	_, unlocked, err := Apply(&prior, func(s *models.UserState) error {
		s.StudyStreak = 50
		return errBoom
	}, nil, t0)
	assert.ErrorIs(t, err, errBoom)
	assert.Nil(t, unlocked)
	assert.Equal(t, 0, prior.StudyStreak)
}

func TestApply_AchievementsOnlyGrow(t *testing.T) {
	state := baseState()
	state.StudyStreak = 7
	seen := 0
	for i := 0; i < 3; i++ {
		next, _, err := Apply(&state, nil, nil, t0.Add(time.Duration(i)*time.Minute))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(next.Achievements), seen)
		for _, a := range state.Achievements {
			assert.True(t, next.HasAchievement(a.ID))
		}
		seen = len(next.Achievements)
		state = next
	}
	assert.Equal(t, []string{"streak-3", "streak-7"}, achievementIDs(state.Achievements))
	assert.Equal(t, t0, state.Achievements[0].UnlockedDate)
}

func TestApply_ChallengesAndRank(t *testing.T) {
	prior := baseState()
	prior.LastRankUpdate = t0.AddDate(0, 0, -4)
	prior.Challenges = []models.Challenge{
		gamification.NewChallenge("c1", "Ten hours", models.ChallengeStudyHours, 10, 7, t0.AddDate(0, 0, -1)),
	}

	next, _, err := Apply(&prior, func(s *models.UserState) error {
		gamification.Accrue(s.Challenges, models.ChallengeStudyHours, 12, t0)
		return nil
	}, nil, t0)
	require.NoError(t, err)

	assert.Equal(t, models.ChallengeCompleted, next.Challenges[0].Status)
	assert.Equal(t, 10.0, next.Challenges[0].Current)
	assert.Equal(t, t0, next.LastRankUpdate)
	assert.Equal(t, models.ChallengeActive, prior.Challenges[0].Status)
}

func TestApply_ContextGated(t *testing.T) {
	prior := baseState()
	ev := &models.Event{Type: models.EventWakeUpUpdate, WakeUpTime: "04:30"}
	next, unlocked, err := Apply(&prior, nil, ev, t0)
	require.NoError(t, err)
	assert.Equal(t, []string{"early-bird"}, achievementIDs(unlocked))

	_, unlocked, err = Apply(&next, nil, ev, t0)
	require.NoError(t, err)
	assert.Empty(t, unlocked)
}

func TestMerge(t *testing.T) {
	s := baseState()
	name := "Meera K"
	exam := time.Date(2027, 1, 22, 0, 0, 0, 0, time.UTC)
	teachers := []models.Teacher{{Name: "NV Sir"}}

	require.NoError(t, Merge(Patch{DisplayName: &name, ExamDate: &exam, Teachers: &teachers})(&s))
	assert.Equal(t, "Meera K", s.DisplayName)
	require.NotNil(t, s.ExamDate)
	assert.Equal(t, exam, *s.ExamDate)
	assert.Equal(t, teachers, s.Teachers)
	assert.Equal(t, "", s.Notes)

	teachers[0].Name = "mutated"
	assert.Equal(t, "NV Sir", s.Teachers[0].Name)
}

func TestChain(t *testing.T) {
	s := baseState()
	calls := 0
	err := Chain(
		func(*models.UserState) error { calls++; return nil },
		nil,
		func(*models.UserState) error { calls++; return errBoom },
		func(*models.UserState) error { calls++; return nil },
	)(&s)
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, 2, calls)
}

func achievementIDs(as []models.Achievement) []string {
	out := []string{}
	for _, a := range as {
		out = append(out, a.ID)
	}
	return out
}
