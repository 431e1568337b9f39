package gamification

import (
	"strconv"
	"strings"
	"time"

	"github.com/cppla/prepmeter/models"
)

// Check decides whether an achievement qualifies. event may be nil.
type Check func(state *models.UserState, event *models.Event) bool

// Definition is one catalog entry.
type Definition struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Check       Check
}

// catalog order is significant: evaluation walks it front to back.
var catalog = []Definition{
	// streaks
	{ID: "streak-3", Name: "Triple Threat", Description: "Maintain a 3-day study streak.", Icon: "🥉", Check: streakAtLeast(3)},
	{ID: "streak-7", Name: "Week Warrior", Description: "Maintain a 7-day study streak.", Icon: "🥈", Check: streakAtLeast(7)},
	{ID: "streak-30", Name: "Consistency King", Description: "Maintain a 30-day study streak.", Icon: "👑", Check: streakAtLeast(30)},

	// time of day and daily review
	{ID: "early-bird", Name: "Early Bird", Description: "Wake up before 5 AM to start your day.", Icon: "☀️", Check: earlyBird},
	{ID: "night-owl", Name: "Night Owl", Description: "Complete a study session after 11 PM.", Icon: "🦉", Check: nightOwl},
	{ID: "marathon-studier", Name: "Marathon Studier", Description: "Study for more than 8 hours in a single day.", Icon: "🏃", Check: marathon},
	{ID: "personal-best", Name: "Personal Best!", Description: "Set a new personal record for single-day study hours.", Icon: "📈", Check: personalBest},
	{ID: "perfect-day", Name: "Perfect Day", Description: "Achieve 100% efficiency in a daily plan.", Icon: "✅", Check: perfectDay},

	// chapters
	{ID: "first-chapter", Name: "Off the Blocks", Description: "Complete your first chapter.", Icon: "🎓", Check: firstChapter},
	{ID: "physics-10", Name: "Physics Slayer", Description: "Complete 10 Physics chapters.", Icon: "⚛️", Check: chaptersAtLeast(models.SubjectPhysics, 10)},
	{ID: "chemistry-10", Name: "Chem Catalyst", Description: "Complete 10 Chemistry chapters.", Icon: "🧪", Check: chaptersAtLeast(models.SubjectChemistry, 10)},
	{ID: "math-10", Name: "Math Magician", Description: "Complete 10 Math chapters.", Icon: "➗", Check: chaptersAtLeast(models.SubjectMath, 10)},

	// tests
	{ID: "test-5", Name: "Test Taker", Description: "Complete 5 mock tests.", Icon: "📝", Check: testsAtLeast(5)},
	{ID: "test-20", Name: "Mock Test Beast", Description: "Complete 20 mock tests.", Icon: "🦾", Check: testsAtLeast(20)},
	{ID: "score-90-percent", Name: "High Scorer", Description: "Score over 90% in any test.", Icon: "🎯", Check: scoreRatio},
	{ID: "score-200-mains", Name: "Double Century!", Description: "Score over 200 marks in a JEE Mains test.", Icon: "💯", Check: scoreAbove(models.TestJEEMains, 200)},
	{ID: "score-170-advanced", Name: "Advanced Ace", Description: "Score over 170 marks in a JEE Advanced test.", Icon: "🌟", Check: scoreAbove(models.TestJEEAdvanced, 170)},
	{ID: "class-topper", Name: "Top of the Class", Description: "Achieve Rank 1 in any mock test.", Icon: "🏆", Check: classTopper},

	// questions
	{ID: "questions-500", Name: "Question Quasher", Description: "Solve a total of 500 questions.", Icon: "🔥", Check: questionsAtLeast(500)},
	{ID: "questions-1000", Name: "Question Annihilator", Description: "Solve a total of 1000 questions.", Icon: "💥", Check: questionsAtLeast(1000)},
	{ID: "questions-1500", Name: "Question Conqueror", Description: "Solve a total of 1500 questions.", Icon: "🚀", Check: questionsAtLeast(1500)},
	{ID: "questions-2500", Name: "Question Juggernaut", Description: "Solve a total of 2500 questions.", Icon: "💫", Check: questionsAtLeast(2500)},
}

var catalogIndex = func() map[string]int {
	m := make(map[string]int, len(catalog))
	for i, d := range catalog {
		m[d.ID] = i
	}
	return m
}()

// Catalog returns the ordered achievement definitions. The slice is a copy.
func Catalog() []Definition {
	out := make([]Definition, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds a definition by id.
func Lookup(id string) (Definition, bool) {
	i, ok := catalogIndex[id]
	if !ok {
		return Definition{}, false
	}
	return catalog[i], true
}

// Unlock materializes d as an achievement unlocked at now.
func (d Definition) Unlock(now time.Time) models.Achievement {
	return models.Achievement{
		ID:           d.ID,
		Name:         d.Name,
		Description:  d.Description,
		Icon:         d.Icon,
		UnlockedDate: now,
	}
}

func streakAtLeast(n int) Check {
	return func(s *models.UserState, _ *models.Event) bool {
		return s.StudyStreak >= n
	}
}

func earlyBird(_ *models.UserState, e *models.Event) bool {
	if !e.Is(models.EventWakeUpUpdate) {
		return false
	}
	h, ok := hourOf(e.WakeUpTime)
	return ok && h < 5
}

func nightOwl(_ *models.UserState, e *models.Event) bool {
	if !e.Is(models.EventCompleteSlot) || e.Slot == nil {
		return false
	}
	h, ok := hourOf(e.Slot.StartTime)
	return ok && h >= 23
}

func marathon(_ *models.UserState, e *models.Event) bool {
	return e.Is(models.EventReviewDay) && e.DailyHours > 8
}

func personalBest(_ *models.UserState, e *models.Event) bool {
	return e.Is(models.EventReviewDay) && e.IsNewBest
}

func perfectDay(_ *models.UserState, e *models.Event) bool {
	return e.Is(models.EventReviewDay) && e.Efficiency != nil && *e.Efficiency == 100
}

func firstChapter(s *models.UserState, _ *models.Event) bool {
	total := 0
	for _, subject := range models.Subjects {
		total += s.Topics.CompletedChapters(subject)
	}
	return total >= 1
}

func chaptersAtLeast(subject models.SubjectName, n int) Check {
	return func(s *models.UserState, _ *models.Event) bool {
		return s.Topics.CompletedChapters(subject) >= n
	}
}

func testsAtLeast(n int) Check {
	return func(s *models.UserState, _ *models.Event) bool {
		return len(s.Tests) >= n
	}
}

func scoreRatio(_ *models.UserState, e *models.Event) bool {
	if !e.Is(models.EventAddTest) || e.Test == nil {
		return false
	}
	r, ok := e.Test.Ratio()
	return ok && r >= 0.9
}

func scoreAbove(testType models.TestType, floor float64) Check {
	return func(_ *models.UserState, e *models.Event) bool {
		if !e.Is(models.EventAddTest) || e.Test == nil || e.Test.Type != testType {
			return false
		}
		return e.Test.Score() > floor
	}
}

func classTopper(_ *models.UserState, e *models.Event) bool {
	return e.Is(models.EventAddTest) && e.Test != nil && e.Test.ClassRank != nil && *e.Test.ClassRank == 1
}

func questionsAtLeast(n int) Check {
	return func(s *models.UserState, _ *models.Event) bool {
		return s.TotalQuestionsSolved() >= n
	}
}

// hourOf reads the hour of an "HH:MM" string.
func hourOf(hhmm string) (int, bool) {
	head, _, _ := strings.Cut(strings.TrimSpace(hhmm), ":")
	h, err := strconv.Atoi(head)
	if err != nil {
		return 0, false
	}
	return h, true
}
