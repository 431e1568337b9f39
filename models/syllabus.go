package models

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// InitialTopics returns a fresh syllabus tree with every chapter and subtopic Not Started.
func InitialTopics() Topics {
	return Topics{
		Physics: PhysicsSubject{
			Name:     string(SubjectPhysics),
			Chapters: buildChapters(physicsSyllabus),
		},
		Chemistry: ChemistrySubject{
			Name: string(SubjectChemistry),
			Sections: []ChemistrySection{
				{Name: "Physical Chemistry", Chapters: buildChapters(physicalChemistrySyllabus)},
				{Name: "Inorganic Chemistry", Chapters: buildChapters(inorganicChemistrySyllabus)},
				{Name: "Organic Chemistry", Chapters: buildChapters(organicChemistrySyllabus)},
			},
		},
		Math: MathSubject{
			Name:     string(SubjectMath),
			Chapters: buildChapters(mathSyllabus),
		},
	}
}

func buildChapters(entries []syllabusEntry) []Chapter {
	chapters := make([]Chapter, 0, len(entries))
	for _, e := range entries {
		chapters = append(chapters, Chapter{
			Name:           e.chapter,
			Status:         TopicNotStarted,
			CoachingStatus: TopicNotStarted,
			MajorTopics:    ParseSyllabus(e.syllabus),
		})
	}
	return chapters
}

// ParseSyllabus splits a syllabus string into major topics. Each ";" separated part becomes
// "Part N" (N is the part's position, empty parts are skipped but keep their number) and each ","
// separated phrase inside it becomes a capitalised subtopic.
func ParseSyllabus(syllabus string) []MajorTopic {
	if syllabus == "" {
		return []MajorTopic{}
	}
	parts := strings.Split(syllabus, ";")
	topics := make([]MajorTopic, 0, len(parts))
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		subtopics := []Subtopic{}
		for _, name := range strings.Split(part, ",") {
			name = capitalize(strings.TrimSpace(name))
			if name == "" {
				continue
			}
			subtopics = append(subtopics, Subtopic{
				Name:           name,
				Status:         TopicNotStarted,
				CoachingStatus: TopicNotStarted,
			})
		}
		topics = append(topics, MajorTopic{
			Name:      fmt.Sprintf("Part %d", i+1),
			Subtopics: subtopics,
		})
	}
	return topics
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
