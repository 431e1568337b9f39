package models

// CoachingActivityType tags the variant carried by a CoachingActivity.
type CoachingActivityType string

const (
	CoachingLectureActivity CoachingActivityType = "lecture"
	CoachingTestActivity    CoachingActivityType = "test"
	CoachingOtherActivity   CoachingActivityType = "other"
)

// CoachingActivity is one entry of a coaching day. Which optional fields are meaningful depends
// on Type: lectures carry subject/teacher/chapter details, tests link to an upcoming test or a
// result, other activities carry a description.
type CoachingActivity struct {
	ID        string               `json:"id"`
	Type      CoachingActivityType `json:"type"`
	StartTime string               `json:"startTime"`
	EndTime   string               `json:"endTime"`

	Subject         SubjectName `json:"subject,omitempty"`
	Teacher         string      `json:"teacher,omitempty"`
	Category        string      `json:"category,omitempty"`
	Chapter         string      `json:"chapter,omitempty"`
	SubtopicsTaught []string    `json:"subtopicsTaught,omitempty"`
	Remarks         string      `json:"remarks,omitempty"`
	Rating          int         `json:"rating,omitempty"`
	Homework        string      `json:"homework,omitempty"`
	Doubts          string      `json:"doubts,omitempty"`

	UpcomingTestID *string `json:"upcomingTestId,omitempty"`
	TestResultID   *string `json:"testResultId,omitempty"`
	TestName       string  `json:"testName,omitempty"`

	Description string `json:"description,omitempty"`
}

// CoachingLog is keyed by Date ("YYYY-MM-DD").
type CoachingLog struct {
	Date       string             `json:"date"`
	Activities []CoachingActivity `json:"activities"`
	Motivation int                `json:"motivation"`
}
