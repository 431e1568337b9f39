package models

import "time"

// TestType is the exam pattern a mock test follows.
type TestType string

const (
	TestJEEMains    TestType = "JEE Mains"
	TestJEEAdvanced TestType = "JEE Advanced"
	TestBoard       TestType = "Board"
)

// Valid reports whether t is a known test type.
func (t TestType) Valid() bool {
	switch t {
	case TestJEEMains, TestJEEAdvanced, TestBoard:
		return true
	}
	return false
}

// SubjectMarks holds one number per subject.
type SubjectMarks struct {
	Physics   float64 `json:"physics"`
	Chemistry float64 `json:"chemistry"`
	Math      float64 `json:"math"`
}

// Sum adds the three subjects.
func (m SubjectMarks) Sum() float64 {
	return m.Physics + m.Chemistry + m.Math
}

// Of returns the value for one subject.
func (m SubjectMarks) Of(subject SubjectName) float64 {
	switch subject {
	case SubjectPhysics:
		return m.Physics
	case SubjectChemistry:
		return m.Chemistry
	case SubjectMath:
		return m.Math
	}
	return 0
}

type TestSyllabusItem struct {
	Subject string `json:"subject"`
	Chapter string `json:"chapter"`
}

// TestResult is one mock test sitting.
type TestResult struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	Date           string             `json:"date"`
	Type           TestType           `json:"type"`
	Marks          SubjectMarks       `json:"marks"`
	NegativeMarks  SubjectMarks       `json:"negativeMarks"`
	TotalMarks     float64            `json:"totalMarks"`
	Syllabus       []TestSyllabusItem `json:"syllabus"`
	CustomSyllabus string             `json:"customSyllabus"`
	AnalysisDone   bool               `json:"analysisDone"`
	Feedback       string             `json:"feedback"`
	Learnings      string             `json:"learnings"`
	ClassRank      *int               `json:"classRank,omitempty"`
	TestScope      string             `json:"testScope,omitempty"`
}

// Score is the net score: summed marks minus summed negative marks.
func (t TestResult) Score() float64 {
	return t.Marks.Sum() - t.NegativeMarks.Sum()
}

// Ratio is Score over TotalMarks. It reports false when TotalMarks is not positive.
func (t TestResult) Ratio() (float64, bool) {
	if t.TotalMarks <= 0 {
		return 0, false
	}
	return t.Score() / t.TotalMarks, true
}

type UpcomingTest struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	Date           string             `json:"date"`
	Time           string             `json:"time"`
	Type           TestType           `json:"type"`
	TotalMarks     float64            `json:"totalMarks"`
	TargetMarks    float64            `json:"targetMarks"`
	Syllabus       []TestSyllabusItem `json:"syllabus"`
	CustomSyllabus string             `json:"customSyllabus"`
	TestScope      string             `json:"testScope,omitempty"`
}

// Lecture is a saved video lecture.
type Lecture struct {
	ID        string      `json:"id"`
	Title     string      `json:"title"`
	URL       string      `json:"url"`
	VideoID   string      `json:"videoId"`
	Subject   SubjectName `json:"subject"`
	Chapter   string      `json:"chapter"`
	Category  string      `json:"category"`
	DateAdded time.Time   `json:"dateAdded"`
}

type CalendarEvent struct {
	ID    string `json:"id"`
	Date  string `json:"date"`
	Title string `json:"title"`
	Time  string `json:"time,omitempty"`
	Type  string `json:"type"`
}
