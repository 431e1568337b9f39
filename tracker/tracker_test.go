package tracker

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/cppla/prepmeter/gamification"
	"github.com/cppla/prepmeter/models"
	"github.com/cppla/prepmeter/session"
	"github.com/cppla/prepmeter/store"
)

var now = time.Date(2026, 3, 15, 21, 0, 0, 0, time.UTC)

const today = "2026-03-15"

func fresh() models.UserState {
	s := models.NewUserState(models.Identity{UserID: 1, DisplayName: "Asha"}, now.AddDate(0, 0, -10))
	s.LastRankUpdate = now
	return s
}

func apply(t *testing.T, s models.UserState, a Action) (models.UserState, []models.Achievement) {
	t.Helper()
	next, unlocked, err := session.Apply(&s, a.Update, a.Event, now)
	require.NoError(t, err)
	return next, unlocked
}

func ids(as []models.Achievement) []string {
	out := make([]string, 0, len(as))
	for _, a := range as {
		out = append(out, a.ID)
	}
	return out
}

func physics() *models.SubjectName {
	p := models.SubjectPhysics
	return &p
}

func planWithSlots() models.DailyPlan {
	return models.DailyPlan{
		Date: today,
		Schedule: []models.HourlySlot{
			{ID: "s1", StartTime: "06:00", EndTime: "08:00", Subject: physics()},
			{ID: "s2", StartTime: "23:00", EndTime: "23:59", Subject: physics()},
			{ID: "free", StartTime: "12:00", EndTime: "13:00"},
		},
		Tasks: []models.DailyPlanTask{{ID: "t1", Text: "Revise SHM"}, {ID: "t2", Text: "DPP 4", Status: models.ItemCompleted}},
		SubjectPlans: models.SubjectPlans{
			Physics: []models.PlannedTopic{{ID: "p1", ChapterName: "Oscillations", SubtopicNames: []string{"SHM"}}},
		},
	}
}

func withChallenge(s models.UserState, typ models.ChallengeType, goal float64) models.UserState {
	s.Challenges = append(s.Challenges, gamification.NewChallenge("c-"+string(typ), "goal", typ, goal, 7, now.AddDate(0, 0, -1)))
	return s
}

func TestSavePlan_AssignsIDsAndKeepsProgress(t *testing.T) {
	s, _ := apply(t, fresh(), SavePlan(planWithSlots(), now))
	plan := s.PlanByDate(today)
	require.NotNil(t, plan)
	assert.Len(t, plan.Schedule, 3)
	assert.Equal(t, models.ItemPending, plan.Schedule[0].Status)
	assert.Equal(t, models.SubjectPhysics, plan.SubjectPlans.Physics[0].Subject)
	assert.Equal(t, models.ItemPending, plan.SubjectPlans.Physics[0].Status)

	s, _ = apply(t, s, CompleteSlot(today, "s1", true, now))
	s, _ = apply(t, s, LogQuestions(today, models.QuestionsSolvedLog{Subject: models.SubjectPhysics, Count: 30}, now))

	replanned := planWithSlots()
	replanned.Schedule = append(replanned.Schedule, models.HourlySlot{StartTime: "15:00", EndTime: "16:00"})
	s, _ = apply(t, s, SavePlan(replanned, now))
	plan = s.PlanByDate(today)
	assert.Equal(t, models.ItemCompleted, plan.SlotByID("s1").Status)
	assert.NotEmpty(t, plan.Schedule[3].ID)
	assert.Equal(t, 30, plan.QuestionCount())
	assert.Len(t, s.DailyPlans, 1)
}

func TestSavePlan_DroppedCompletedSlotLeavesChallenge(t *testing.T) {
	s := withChallenge(fresh(), models.ChallengeStudyHours, 10)
	s, _ = apply(t, s, SavePlan(planWithSlots(), now))
	s, _ = apply(t, s, CompleteSlot(today, "s1", true, now))
	assert.Equal(t, 2.0, s.Challenges[0].Current)

	p := planWithSlots()
	p.Schedule = p.Schedule[1:]
	s, _ = apply(t, s, SavePlan(p, now))
	assert.Equal(t, 0.0, s.Challenges[0].Current)
}

func TestSavePlan_Invalid(t *testing.T) {
	s := fresh()
	p := planWithSlots()
	p.Schedule[0].StartTime = "6am"
	_, _, err := session.Apply(&s, SavePlan(p, now).Update, nil, now)
	assert.ErrorIs(t, err, ErrInvalid)

	p = planWithSlots()
	p.Date = "15/03/2026"
	_, _, err = session.Apply(&s, SavePlan(p, now).Update, nil, now)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestSetWakeUp_EarlyBird(t *testing.T) {
	s, unlocked := apply(t, fresh(), SetWakeUp(today, "04:45"))
	assert.Contains(t, ids(unlocked), "early-bird")
	assert.Equal(t, "04:45", s.PlanByDate(today).WakeUpTime)

	_, unlocked = apply(t, fresh(), SetWakeUp(today, "05:00"))
	assert.NotContains(t, ids(unlocked), "early-bird")
}

func TestCompleteSlot(t *testing.T) {
	s := withChallenge(fresh(), models.ChallengeStudyHours, 2)
	s, _ = apply(t, s, SavePlan(planWithSlots(), now))

	s, unlocked := apply(t, s, CompleteSlot(today, "s2", true, now))
	assert.Contains(t, ids(unlocked), "night-owl")

	s, _ = apply(t, s, CompleteSlot(today, "s1", true, now))
	assert.Equal(t, models.ChallengeCompleted, s.Challenges[0].Status)
	assert.Equal(t, 2.0, s.Challenges[0].Current)

	again, _ := apply(t, s, CompleteSlot(today, "s1", true, now))
	assert.Equal(t, 2.0, again.Challenges[0].Current, "repeating a completion accrues nothing")

	s, _ = apply(t, s, CompleteSlot(today, "s1", false, now))
	assert.Equal(t, models.ItemPending, s.PlanByDate(today).SlotByID("s1").Status)
	assert.Equal(t, models.ChallengeActive, s.Challenges[0].Status, "undo pulls the challenge back under its goal")
	assert.Equal(t, 0.0, s.Challenges[0].Current)
}

func TestCompleteSlot_Missing(t *testing.T) {
	s := fresh()
	_, _, err := session.Apply(&s, CompleteSlot(today, "s1", true, now).Update, nil, now)
	assert.ErrorIs(t, err, ErrNotFound)

	s, _ = apply(t, s, SavePlan(planWithSlots(), now))
	_, _, err = session.Apply(&s, CompleteSlot(today, "nope", true, now).Update, nil, now)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLogQuestions(t *testing.T) {
	s := withChallenge(fresh(), models.ChallengeQuestionsSolved, 600)
	s, unlocked := apply(t, s, LogQuestions(today, models.QuestionsSolvedLog{Subject: models.SubjectMath, Count: 520, Type: "Mains"}, now))
	assert.Contains(t, ids(unlocked), "questions-500")
	assert.Equal(t, 520.0, s.Challenges[0].Current)

	logID := s.PlanByDate(today).QuestionsSolved[0].ID
	require.NotEmpty(t, logID)
	s, _ = apply(t, s, RemoveQuestions(today, logID, now))
	assert.Equal(t, 0, s.TotalQuestionsSolved())
	assert.Equal(t, 0.0, s.Challenges[0].Current)
	assert.True(t, s.HasAchievement("questions-500"), "achievements are never revoked")

	_, _, err := session.Apply(&s, LogQuestions(today, models.QuestionsSolvedLog{Subject: models.SubjectMath}, now).Update, nil, now)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestReviewDay(t *testing.T) {
	s := fresh()
	s.PersonalBestStudyHours = 1
	s, _ = apply(t, s, SavePlan(planWithSlots(), now))
	s, _ = apply(t, s, CompleteSlot(today, "s1", true, now))

	s, unlocked := apply(t, s, ReviewDay(today))
	assert.Contains(t, ids(unlocked), "personal-best")
	assert.Equal(t, 2.0, s.PersonalBestStudyHours)

	plan := s.PlanByDate(today)
	assert.True(t, plan.IsReviewed)
	assert.Equal(t, models.ItemIncomplete, plan.SlotByID("s2").Status)
	assert.Equal(t, models.ItemIncomplete, plan.Tasks[0].Status)
	assert.Equal(t, models.ItemCompleted, plan.Tasks[1].Status)

	next := s.PlanByDate("2026-03-16")
	require.NotNil(t, next)
	require.Len(t, next.Tasks, 1)
	assert.Equal(t, "Revise SHM", next.Tasks[0].Text)
	assert.True(t, next.Tasks[0].IsCarriedOver)
	require.Len(t, next.SubjectPlans.Physics, 1)
	assert.Equal(t, models.ItemPending, next.SubjectPlans.Physics[0].Status)
	assert.NotEqual(t, "p1", next.SubjectPlans.Physics[0].ID)

	_, _, err := session.Apply(&s, ReviewDay(today).Update, nil, now)
	assert.ErrorIs(t, err, ErrConflict)
	_, _, err = session.Apply(&s, CompleteSlot(today, "s2", true, now).Update, nil, now)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestReviewDay_PerfectAndMarathon(t *testing.T) {
	p := models.DailyPlan{
		Date: today,
		Schedule: []models.HourlySlot{
			{ID: "a", StartTime: "05:00", EndTime: "10:00", Subject: physics()},
			{ID: "b", StartTime: "11:00", EndTime: "15:30", Subject: physics()},
		},
	}
	s, _ := apply(t, fresh(), SavePlan(p, now))
	s, _ = apply(t, s, CompleteSlot(today, "a", true, now))
	s, _ = apply(t, s, CompleteSlot(today, "b", true, now))

	_, unlocked := apply(t, s, ReviewDay(today))
	got := ids(unlocked)
	assert.Contains(t, got, "perfect-day")
	assert.Contains(t, got, "marathon-studier")
	assert.Contains(t, got, "personal-best")
}

func TestAddTest(t *testing.T) {
	rank := 1
	test := models.TestResult{
		Name: "AITS 5", Date: today, Type: models.TestJEEMains, TotalMarks: 300,
		Marks:     models.SubjectMarks{Physics: 95, Chemistry: 90, Math: 90},
		ClassRank: &rank,
	}
	s, unlocked := apply(t, fresh(), AddTest(test))
	assert.ElementsMatch(t, []string{"score-90-percent", "score-200-mains", "class-topper"}, ids(unlocked))
	require.Len(t, s.Tests, 1)
	id := s.Tests[0].ID
	assert.NotEmpty(t, id)

	s, _ = apply(t, s, UpdateTestAnalysis(id, "rushed chem", "read twice"))
	assert.True(t, s.Tests[0].AnalysisDone)

	s, _ = apply(t, s, DeleteTest(id))
	assert.Empty(t, s.Tests)
	_, _, err := session.Apply(&s, DeleteTest(id).Update, nil, now)
	assert.ErrorIs(t, err, ErrNotFound)

	test.Type = "Olympiad"
	_, _, err = session.Apply(&s, AddTest(test).Update, nil, now)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestUpdateChapter(t *testing.T) {
	s := withChallenge(fresh(), models.ChallengeCompletedTopics, 1)
	chapter := s.Topics.ChaptersOf(models.SubjectPhysics)[0].Name
	done := models.TopicCompleted

	s, unlocked := apply(t, s, UpdateChapter(models.SubjectPhysics, chapter, ChapterUpdate{Status: &done}, now))
	assert.Contains(t, ids(unlocked), "first-chapter")
	assert.Equal(t, models.ChallengeCompleted, s.Challenges[0].Status)

	revise := models.TopicRevise
	s, _ = apply(t, s, UpdateChapter(models.SubjectPhysics, chapter, ChapterUpdate{Status: &revise, Progress: &models.ChapterProgress{Level1: true}}, now))
	assert.Equal(t, models.ChallengeActive, s.Challenges[0].Status)
	assert.True(t, s.Topics.FindChapter(models.SubjectPhysics, chapter).Progress.Level1)

	bogus := models.TopicStatus("Done-ish")
	_, _, err := session.Apply(&s, UpdateChapter(models.SubjectPhysics, chapter, ChapterUpdate{Status: &bogus}, now).Update, nil, now)
	assert.ErrorIs(t, err, ErrInvalid)
	_, _, err = session.Apply(&s, UpdateChapter(models.SubjectPhysics, "Astrology", ChapterUpdate{}, now).Update, nil, now)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetSubtopicStatus(t *testing.T) {
	s := fresh()
	ch := s.Topics.ChaptersOf(models.SubjectMath)[0]
	sub := ch.MajorTopics[0].Subtopics[0].Name

	s, _ = apply(t, s, SetSubtopicStatus(models.SubjectMath, ch.Name, sub, models.TopicInProgress))
	assert.Equal(t, models.TopicInProgress, s.Topics.FindChapter(models.SubjectMath, ch.Name).MajorTopics[0].Subtopics[0].Status)
}

func TestChallenges(t *testing.T) {
	s, _ := apply(t, fresh(), CreateChallenge(ChallengeRequest{Title: "Sprint", Type: models.ChallengeStudyHours, Goal: 20, DurationDays: 7}, now))
	require.Len(t, s.Challenges, 1)
	c := s.Challenges[0]
	assert.Equal(t, "hours", c.Unit)
	assert.Equal(t, now.AddDate(0, 0, 7), c.EndDate)

	for _, bad := range []ChallengeRequest{
		{Type: models.ChallengeStudyHours, Goal: 1, DurationDays: 1},
		{Title: "x", Type: "pushups", Goal: 1, DurationDays: 1},
		{Title: "x", Type: models.ChallengeStudyHours, Goal: 0, DurationDays: 1},
		{Title: "x", Type: models.ChallengeStudyHours, Goal: 1, DurationDays: 0},
	} {
		_, _, err := session.Apply(&s, CreateChallenge(bad, now).Update, nil, now)
		assert.ErrorIs(t, err, ErrInvalid, "%+v", bad)
	}

	s, _ = apply(t, s, DeleteChallenge(c.ID))
	assert.Empty(t, s.Challenges)
}

func TestJournals(t *testing.T) {
	s, _ := apply(t, fresh(), SaveWellness(models.WellnessLog{Date: today, Mood: 4, SleepHours: 7}))
	s, _ = apply(t, s, SaveWellness(models.WellnessLog{Date: today, Mood: 2, SleepHours: 5}))
	require.Len(t, s.WellnessLogs, 1)
	assert.Equal(t, 2, s.WellnessLogs[0].Mood)

	_, _, err := session.Apply(&s, SaveWellness(models.WellnessLog{Date: today, Mood: 9}).Update, nil, now)
	assert.ErrorIs(t, err, ErrInvalid)

	s, _ = apply(t, s, SaveCoachingLog(models.CoachingLog{Date: today, Activities: []models.CoachingActivity{
		{Type: models.CoachingLectureActivity, StartTime: "14:00", EndTime: "16:00", Teacher: "NV Sir", Rating: 4},
	}}))
	require.Len(t, s.CoachingLogs, 1)
	assert.NotEmpty(t, s.CoachingLogs[0].Activities[0].ID)

	s, _ = apply(t, s, AddDoubt(models.Doubt{Subject: models.SubjectChemistry, Date: today, Description: "SN1 vs SN2"}))
	require.Len(t, s.Doubts, 1)
	assert.Equal(t, models.DoubtConfusing, s.Doubts[0].Status)
	s, _ = apply(t, s, SetDoubtStatus(s.Doubts[0].ID, models.DoubtCleared))
	assert.Equal(t, models.DoubtCleared, s.Doubts[0].Status)
}

func TestAction_RunThroughSession(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.StateDocument{}))

	docs := store.NewDocumentStore(db, nil, nil)
	queue := session.NewWriteQueue(docs, nil, session.QueueOptions{MaxTries: 2})
	queue.Start()
	m := session.NewManager(docs, queue, nil, session.WithLocation(time.UTC), session.WithClock(func() time.Time { return now }))

	sess, err := m.Login(context.Background(), models.Identity{UserID: 4, DisplayName: "Asha"})
	require.NoError(t, err)
	state, unlocked, err := SetWakeUp(sess.Today(), "04:30").Run(sess)
	require.NoError(t, err)
	assert.Contains(t, ids(unlocked), "early-bird")
	assert.Equal(t, "04:30", state.PlanByDate(today).WakeUpTime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, queue.Close(ctx))

	stored, err := docs.Read(context.Background(), 4)
	require.NoError(t, err)
	assert.True(t, stored.HasAchievement("early-bird"))
}
