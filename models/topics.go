package models

// TopicStatus is the study state of a chapter or subtopic.
type TopicStatus string

const (
	TopicNotStarted TopicStatus = "Not Started"
	TopicInProgress TopicStatus = "In Progress"
	TopicCompleted  TopicStatus = "Completed"
	TopicRevise     TopicStatus = "Revise"
)

// Valid reports whether s is one of the known statuses.
func (s TopicStatus) Valid() bool {
	switch s {
	case TopicNotStarted, TopicInProgress, TopicCompleted, TopicRevise:
		return true
	}
	return false
}

// SubjectName names one of the three exam subjects.
type SubjectName string

const (
	SubjectPhysics   SubjectName = "Physics"
	SubjectChemistry SubjectName = "Chemistry"
	SubjectMath      SubjectName = "Math"
)

// Subjects lists the subjects in display order.
var Subjects = []SubjectName{SubjectPhysics, SubjectChemistry, SubjectMath}

type Subtopic struct {
	Name           string      `json:"name"`
	Status         TopicStatus `json:"status"`
	CoachingStatus TopicStatus `json:"coachingStatus"`
}

type MajorTopic struct {
	Name      string     `json:"name"`
	Subtopics []Subtopic `json:"subtopics"`
}

// ChapterProgress tracks the practice levels cleared for a chapter.
type ChapterProgress struct {
	Level1    bool `json:"level1"`
	Level2    bool `json:"level2"`
	Mains     bool `json:"mains"`
	Advanced  bool `json:"advanced"`
	PYQs      bool `json:"pyqs"`
	PYQsCount int  `json:"pyqsCount"`
}

type Chapter struct {
	Name           string          `json:"name"`
	Status         TopicStatus     `json:"status"`
	CoachingStatus TopicStatus     `json:"coachingStatus"`
	Progress       ChapterProgress `json:"progress"`
	MajorTopics    []MajorTopic    `json:"majorTopics"`
}

type ChemistrySection struct {
	Name     string    `json:"name"`
	Chapters []Chapter `json:"chapters"`
}

type PhysicsSubject struct {
	Name     string    `json:"name"`
	Chapters []Chapter `json:"chapters"`
}

type ChemistrySubject struct {
	Name     string             `json:"name"`
	Sections []ChemistrySection `json:"sections"`
}

type MathSubject struct {
	Name     string    `json:"name"`
	Chapters []Chapter `json:"chapters"`
}

// Topics is the syllabus tree of the three subjects.
type Topics struct {
	Physics   PhysicsSubject   `json:"physics"`
	Chemistry ChemistrySubject `json:"chemistry"`
	Math      MathSubject      `json:"math"`
}

// ChaptersOf returns pointers to every chapter of a subject so callers can edit in place.
// Chemistry chapters are flattened across its sections.
func (t *Topics) ChaptersOf(subject SubjectName) []*Chapter {
	var out []*Chapter
	switch subject {
	case SubjectPhysics:
		for i := range t.Physics.Chapters {
			out = append(out, &t.Physics.Chapters[i])
		}
	case SubjectChemistry:
		for s := range t.Chemistry.Sections {
			sec := &t.Chemistry.Sections[s]
			for i := range sec.Chapters {
				out = append(out, &sec.Chapters[i])
			}
		}
	case SubjectMath:
		for i := range t.Math.Chapters {
			out = append(out, &t.Math.Chapters[i])
		}
	}
	return out
}

// FindChapter looks a chapter up by subject and name.
func (t *Topics) FindChapter(subject SubjectName, name string) *Chapter {
	for _, ch := range t.ChaptersOf(subject) {
		if ch.Name == name {
			return ch
		}
	}
	return nil
}

// CompletedChapters counts chapters of a subject whose status is Completed.
func (t *Topics) CompletedChapters(subject SubjectName) int {
	n := 0
	for _, ch := range t.ChaptersOf(subject) {
		if ch.Status == TopicCompleted {
			n++
		}
	}
	return n
}
