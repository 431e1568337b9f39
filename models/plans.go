package models

// ItemStatus is shared by planned topics, schedule slots and tasks.
type ItemStatus string

const (
	ItemPending    ItemStatus = "Pending"
	ItemCompleted  ItemStatus = "Completed"
	ItemIncomplete ItemStatus = "Incomplete"
)

type PlannedTopic struct {
	ID            string      `json:"id"`
	Subject       SubjectName `json:"subject"`
	ChapterName   string      `json:"chapterName"`
	IsFullChapter bool        `json:"isFullChapter"`
	SubtopicNames []string    `json:"subtopicNames"`
	Note          string      `json:"note"`
	Status        ItemStatus  `json:"status"`
	IsCarriedOver bool        `json:"isCarriedOver,omitempty"`
}

// SubjectPlans groups planned topics per subject.
type SubjectPlans struct {
	Physics   []PlannedTopic `json:"Physics"`
	Chemistry []PlannedTopic `json:"Chemistry"`
	Math      []PlannedTopic `json:"Math"`
}

// All returns the planned topics of every subject.
func (p SubjectPlans) All() []PlannedTopic {
	out := make([]PlannedTopic, 0, len(p.Physics)+len(p.Chemistry)+len(p.Math))
	out = append(out, p.Physics...)
	out = append(out, p.Chemistry...)
	return append(out, p.Math...)
}

// HourlySlot is one block of the day's schedule. StartTime and EndTime are "HH:MM".
type HourlySlot struct {
	ID             string       `json:"id"`
	StartTime      string       `json:"startTime"`
	EndTime        string       `json:"endTime"`
	PlannedTopicID *string      `json:"plannedTopicId"`
	Subject        *SubjectName `json:"subject"`
	Status         ItemStatus   `json:"status"`
}

// Free reports whether nothing was scheduled in the slot.
func (s HourlySlot) Free() bool {
	return (s.PlannedTopicID == nil || *s.PlannedTopicID == "") && s.Subject == nil
}

type DailyPlanTask struct {
	ID            string     `json:"id"`
	Text          string     `json:"text"`
	Status        ItemStatus `json:"status"`
	IsCarriedOver bool       `json:"isCarriedOver,omitempty"`
}

// QuestionsSolvedLog records a batch of practice questions.
type QuestionsSolvedLog struct {
	ID      string      `json:"id"`
	Subject SubjectName `json:"subject"`
	Chapter string      `json:"chapter"`
	Count   int         `json:"count"`
	Type    string      `json:"type"`
	Source  string      `json:"source,omitempty"`
}

// DailyPlan is keyed by Date ("YYYY-MM-DD").
type DailyPlan struct {
	Date            string               `json:"date"`
	SubjectPlans    SubjectPlans         `json:"subjectPlans"`
	Schedule        []HourlySlot         `json:"schedule"`
	Tasks           []DailyPlanTask      `json:"tasks"`
	IsReviewed      bool                 `json:"isReviewed"`
	WakeUpTime      string               `json:"wakeUpTime"`
	SleepTime       string               `json:"sleepTime"`
	DailyMood       *int                 `json:"dailyMood,omitempty"`
	QuestionsSolved []QuestionsSolvedLog `json:"questionsSolved"`
}

// QuestionCount sums the questions logged on the plan.
func (p DailyPlan) QuestionCount() int {
	n := 0
	for _, q := range p.QuestionsSolved {
		n += q.Count
	}
	return n
}

// SlotByID finds a schedule slot.
func (p *DailyPlan) SlotByID(id string) *HourlySlot {
	for i := range p.Schedule {
		if p.Schedule[i].ID == id {
			return &p.Schedule[i]
		}
	}
	return nil
}

type WellnessLog struct {
	Date       string  `json:"date"`
	Mood       int     `json:"mood"`
	SleepHours float64 `json:"sleepHours"`
	Journal    string  `json:"journal,omitempty"`
}

type DoubtStatus string

const (
	DoubtCleared   DoubtStatus = "Cleared"
	DoubtConfusing DoubtStatus = "Still Confusing"
)

type Doubt struct {
	ID          string      `json:"id"`
	Subject     SubjectName `json:"subject"`
	Topic       string      `json:"topic"`
	Description string      `json:"description"`
	Date        string      `json:"date"`
	Status      DoubtStatus `json:"status"`
	Context     string      `json:"context,omitempty"`
}

type Teacher struct {
	Name     string `json:"name"`
	PhotoURL string `json:"photoUrl"`
}
