package tracker

import (
	"time"

	"github.com/cppla/prepmeter/gamification"
	"github.com/cppla/prepmeter/models"
)

// ChapterUpdate changes a chapter's self-study status, coaching status or practice progress.
// Nil fields are left as they are.
type ChapterUpdate struct {
	Status         *models.TopicStatus     `json:"status"`
	CoachingStatus *models.TopicStatus     `json:"coachingStatus"`
	Progress       *models.ChapterProgress `json:"progress"`
}

// UpdateChapter applies u to one chapter. Moving into Completed counts one topic toward running
// completed-topic challenges; moving out of Completed takes it back.
func UpdateChapter(subject models.SubjectName, name string, u ChapterUpdate, now time.Time) Action {
	return plain(func(s *models.UserState) error {
		if err := checkSubject(subject); err != nil {
			return err
		}
		for _, st := range []*models.TopicStatus{u.Status, u.CoachingStatus} {
			if st != nil && !st.Valid() {
				return invalid("unknown status %q", *st)
			}
		}
		ch := s.Topics.FindChapter(subject, name)
		if ch == nil {
			return notFound("chapter %s / %s", subject, name)
		}

		if u.Status != nil {
			was := ch.Status == models.TopicCompleted
			ch.Status = *u.Status
			is := ch.Status == models.TopicCompleted
			switch {
			case is && !was:
				gamification.Accrue(s.Challenges, models.ChallengeCompletedTopics, 1, now)
			case was && !is:
				gamification.Accrue(s.Challenges, models.ChallengeCompletedTopics, -1, now)
			}
		}
		if u.CoachingStatus != nil {
			ch.CoachingStatus = *u.CoachingStatus
		}
		if u.Progress != nil {
			ch.Progress = *u.Progress
		}
		return nil
	})
}

// SetSubtopicStatus changes the status of one subtopic of a chapter.
func SetSubtopicStatus(subject models.SubjectName, chapter, subtopic string, status models.TopicStatus) Action {
	return plain(func(s *models.UserState) error {
		if !status.Valid() {
			return invalid("unknown status %q", status)
		}
		ch := s.Topics.FindChapter(subject, chapter)
		if ch == nil {
			return notFound("chapter %s / %s", subject, chapter)
		}
		for i := range ch.MajorTopics {
			for j := range ch.MajorTopics[i].Subtopics {
				st := &ch.MajorTopics[i].Subtopics[j]
				if st.Name == subtopic {
					st.Status = status
					return nil
				}
			}
		}
		return notFound("subtopic %s", subtopic)
	})
}

// ChallengeRequest describes a new challenge.
type ChallengeRequest struct {
	Title        string               `json:"title"`
	Type         models.ChallengeType `json:"type"`
	Goal         float64              `json:"goal"`
	DurationDays int                  `json:"durationDays"`
}

// MaxChallengeDays caps how long a challenge may run.
const MaxChallengeDays = 365

// CreateChallenge starts a challenge at now. Progress starts at zero.
func CreateChallenge(req ChallengeRequest, now time.Time) Action {
	id := newID()
	return plain(func(s *models.UserState) error {
		if req.Title == "" {
			return invalid("title is required")
		}
		if !req.Type.Valid() {
			return invalid("unknown challenge type %q", req.Type)
		}
		if req.Goal <= 0 {
			return invalid("goal must be positive")
		}
		if req.DurationDays < 1 || req.DurationDays > MaxChallengeDays {
			return invalid("duration must be 1-%d days", MaxChallengeDays)
		}
		s.Challenges = append(s.Challenges, gamification.NewChallenge(id, req.Title, req.Type, req.Goal, req.DurationDays, now))
		return nil
	})
}

// DeleteChallenge removes a challenge in any status.
func DeleteChallenge(id string) Action {
	return plain(func(s *models.UserState) error {
		for i := range s.Challenges {
			if s.Challenges[i].ID == id {
				s.Challenges = append(s.Challenges[:i], s.Challenges[i+1:]...)
				return nil
			}
		}
		return notFound("challenge %s", id)
	})
}
