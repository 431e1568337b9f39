package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)

func TestNewUserState_Defaults(t *testing.T) {
	s := NewUserState(Identity{UserID: 7, Email: "a@b.c", DisplayName: "Asha"}, fixedNow)

	assert.Equal(t, uint(7), s.UID)
	assert.Equal(t, "Asha", s.DisplayName)
	assert.Equal(t, 0, s.StudyStreak)
	assert.Nil(t, s.LastLogin)
	assert.Empty(t, s.Achievements)
	assert.Empty(t, s.Challenges)
	assert.Equal(t, TierBronze, s.Rank.Tier)
	assert.Equal(t, fixedNow, s.LastRankUpdate)

	assert.Len(t, s.Topics.Physics.Chapters, 20)
	assert.Len(t, s.Topics.Chemistry.Sections, 3)
	assert.Len(t, s.Topics.ChaptersOf(SubjectChemistry), 20)
	assert.Len(t, s.Topics.Math.Chapters, 14)
	for _, subject := range Subjects {
		assert.Equal(t, 0, s.Topics.CompletedChapters(subject))
	}
}

func TestParseSyllabus(t *testing.T) {
	topics := ParseSyllabus("alpha, beta; ; gamma.")
	require.Len(t, topics, 2)

	assert.Equal(t, "Part 1", topics[0].Name)
	require.Len(t, topics[0].Subtopics, 2)
	assert.Equal(t, "Alpha", topics[0].Subtopics[0].Name)
	assert.Equal(t, "Beta", topics[0].Subtopics[1].Name)
	assert.Equal(t, TopicNotStarted, topics[0].Subtopics[0].Status)

	assert.Equal(t, "Part 3", topics[1].Name)
	assert.Equal(t, "Gamma.", topics[1].Subtopics[0].Name)

	assert.Empty(t, ParseSyllabus(""))
}

func TestClone_Independent(t *testing.T) {
	orig := NewUserState(Identity{UserID: 1}, fixedNow)
	orig.DailyPlans = append(orig.DailyPlans, NewDailyPlan("2026-03-10"))

	c := orig.Clone()
	require.True(t, SameDocument(orig, c))

	c.Topics.Physics.Chapters[0].Status = TopicCompleted
	c.DailyPlans[0].WakeUpTime = "04:30"
	c.Achievements = append(c.Achievements, Achievement{ID: "streak-3"})

	assert.Equal(t, TopicNotStarted, orig.Topics.Physics.Chapters[0].Status)
	assert.Equal(t, "06:00", orig.DailyPlans[0].WakeUpTime)
	assert.Empty(t, orig.Achievements)
	assert.False(t, SameDocument(orig, c))
}

func TestUserState_Helpers(t *testing.T) {
	s := NewUserState(Identity{UserID: 1}, fixedNow)
	assert.Nil(t, s.PlanByDate("2026-03-10"))

	p := s.EnsurePlan("2026-03-10")
	p.QuestionsSolved = append(p.QuestionsSolved, QuestionsSolvedLog{Count: 30}, QuestionsSolvedLog{Count: 12})
	s.EnsurePlan("2026-03-11").QuestionsSolved = []QuestionsSolvedLog{{Count: 8}}

	assert.Len(t, s.DailyPlans, 2)
	assert.Equal(t, 50, s.TotalQuestionsSolved())

	s.Achievements = []Achievement{{ID: "test-5"}}
	assert.True(t, s.HasAchievement("test-5"))
	assert.False(t, s.HasAchievement("test-20"))
}

func TestTestResult_ScoreAndRatio(t *testing.T) {
	tr := TestResult{
		Marks:         SubjectMarks{Physics: 90, Chemistry: 80, Math: 100},
		NegativeMarks: SubjectMarks{Physics: 4, Chemistry: 2, Math: 4},
		TotalMarks:    300,
	}
	assert.Equal(t, 260.0, tr.Score())
	r, ok := tr.Ratio()
	require.True(t, ok)
	assert.InDelta(t, 0.8667, r, 0.001)

	tr.TotalMarks = 0
	_, ok = tr.Ratio()
	assert.False(t, ok)
}

func TestHourlySlot_Free(t *testing.T) {
	topic := "pt-1"
	phys := SubjectPhysics
	assert.True(t, HourlySlot{}.Free())
	assert.False(t, HourlySlot{PlannedTopicID: &topic}.Free())
	assert.False(t, HourlySlot{Subject: &phys}.Free())
}
