package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// UserState is the whole per-user aggregate. It is read once per login and replaced wholesale on
// every write.
type UserState struct {
	UID         uint   `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`

	StudyStreak int        `json:"studyStreak"`
	LastLogin   *time.Time `json:"lastLogin"`

	Topics        Topics          `json:"topics"`
	Tests         []TestResult    `json:"tests"`
	UpcomingTests []UpcomingTest  `json:"upcomingTests"`
	Notes         string          `json:"notes"`
	DailyPlans    []DailyPlan     `json:"dailyPlans"`
	Lectures      []Lecture       `json:"lectures"`
	Events        []CalendarEvent `json:"events"`
	DailyQuote    DailyQuote      `json:"dailyQuote"`
	WellnessLogs  []WellnessLog   `json:"wellnessLogs"`
	Doubts        []Doubt         `json:"doubts"`
	Teachers      []Teacher       `json:"teachers"`
	CoachingLogs  []CoachingLog   `json:"coachingLogs"`
	PrepStartDate *time.Time      `json:"prepStartDate"`
	ExamDate      *time.Time      `json:"examDate"`

	Achievements           []Achievement `json:"achievements"`
	Challenges             []Challenge   `json:"challenges"`
	Rank                   Rank          `json:"rank"`
	LastRankUpdate         time.Time     `json:"lastRankUpdate"`
	PersonalBestStudyHours float64       `json:"personalBestStudyHours"`
}

// Clone returns a deep copy that shares no memory with s.
func (s UserState) Clone() UserState {
	b, err := json.Marshal(s)
	if err != nil {
		// Every field is plain data; marshal cannot fail.
		panic("models: clone user state: " + err.Error())
	}
	var out UserState
	if err := json.Unmarshal(b, &out); err != nil {
		panic("models: clone user state: " + err.Error())
	}
	return out
}

// SameDocument reports whether a and b serialize to the same persisted document.
func SameDocument(a, b UserState) bool {
	ab, errA := json.Marshal(a)
	bb, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		return false
	}
	return bytes.Equal(ab, bb)
}

// HasAchievement reports whether id is already unlocked.
func (s *UserState) HasAchievement(id string) bool {
	for _, a := range s.Achievements {
		if a.ID == id {
			return true
		}
	}
	return false
}

// PlanByDate returns the daily plan for date, or nil.
func (s *UserState) PlanByDate(date string) *DailyPlan {
	for i := range s.DailyPlans {
		if s.DailyPlans[i].Date == date {
			return &s.DailyPlans[i]
		}
	}
	return nil
}

// EnsurePlan returns the plan for date, appending an empty one when missing.
func (s *UserState) EnsurePlan(date string) *DailyPlan {
	if p := s.PlanByDate(date); p != nil {
		return p
	}
	s.DailyPlans = append(s.DailyPlans, NewDailyPlan(date))
	return &s.DailyPlans[len(s.DailyPlans)-1]
}

// TotalQuestionsSolved sums questions logged across every daily plan.
func (s *UserState) TotalQuestionsSolved() int {
	n := 0
	for _, p := range s.DailyPlans {
		n += p.QuestionCount()
	}
	return n
}

// NewDailyPlan returns an empty plan for date with the default wake and sleep times.
func NewDailyPlan(date string) DailyPlan {
	return DailyPlan{
		Date: date,
		SubjectPlans: SubjectPlans{
			Physics:   []PlannedTopic{},
			Chemistry: []PlannedTopic{},
			Math:      []PlannedTopic{},
		},
		Schedule:        []HourlySlot{},
		Tasks:           []DailyPlanTask{},
		WakeUpTime:      "06:00",
		SleepTime:       "23:00",
		QuestionsSolved: []QuestionsSolvedLog{},
	}
}

// NewUserState builds the default aggregate for a freshly created account.
// Streak and quote are left for the login bootstrap to fill in.
func NewUserState(id Identity, now time.Time) UserState {
	return UserState{
		UID:           id.UserID,
		Email:         id.Email,
		DisplayName:   id.DisplayName,
		Topics:        InitialTopics(),
		Tests:         []TestResult{},
		UpcomingTests: []UpcomingTest{},
		DailyPlans:    []DailyPlan{},
		Lectures:      []Lecture{},
		Events:        []CalendarEvent{},
		WellnessLogs:  []WellnessLog{},
		Doubts:        []Doubt{},
		Teachers:      []Teacher{},
		CoachingLogs:  []CoachingLog{},
		Achievements:  []Achievement{},
		Challenges:    []Challenge{},
		Rank: Rank{
			Name:  "Explorer I",
			Level: 1,
			Score: 0,
			Tier:  TierBronze,
		},
		LastRankUpdate: now,
	}
}
