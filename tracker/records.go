package tracker

import (
	"sort"

	"github.com/cppla/prepmeter/models"
)

// AddTest records a mock test result. The evaluator sees it as an ADD_TEST event.
func AddTest(t models.TestResult) Action {
	if t.ID == "" {
		t.ID = newID()
	}
	ev := &models.Event{}
	return Action{
		Event: ev,
		Update: func(s *models.UserState) error {
			if err := checkDate(t.Date); err != nil {
				return err
			}
			if !t.Type.Valid() {
				return invalid("unknown test type %q", t.Type)
			}
			if t.TotalMarks < 0 {
				return invalid("total marks must not be negative")
			}
			s.Tests = append(s.Tests, t)
			added := t
			*ev = models.Event{Type: models.EventAddTest, Test: &added}
			return nil
		},
	}
}

// UpdateTestAnalysis stores the post-test reflection of a result.
func UpdateTestAnalysis(id, feedback, learnings string) Action {
	return plain(func(s *models.UserState) error {
		for i := range s.Tests {
			if s.Tests[i].ID == id {
				s.Tests[i].Feedback = feedback
				s.Tests[i].Learnings = learnings
				s.Tests[i].AnalysisDone = true
				return nil
			}
		}
		return notFound("test %s", id)
	})
}

// DeleteTest removes a test result. Achievements it unlocked stay unlocked.
func DeleteTest(id string) Action {
	return plain(func(s *models.UserState) error {
		for i := range s.Tests {
			if s.Tests[i].ID == id {
				s.Tests = append(s.Tests[:i], s.Tests[i+1:]...)
				return nil
			}
		}
		return notFound("test %s", id)
	})
}

// SaveCoachingLog inserts or replaces the coaching log of log.Date.
func SaveCoachingLog(log models.CoachingLog) Action {
	for i := range log.Activities {
		if log.Activities[i].ID == "" {
			log.Activities[i].ID = newID()
		}
	}
	return plain(func(s *models.UserState) error {
		if err := checkDate(log.Date); err != nil {
			return err
		}
		if log.Motivation < 0 || log.Motivation > 5 {
			return invalid("motivation must be 0-5")
		}
		for _, a := range log.Activities {
			switch a.Type {
			case models.CoachingLectureActivity, models.CoachingTestActivity, models.CoachingOtherActivity:
			default:
				return invalid("unknown activity type %q", a.Type)
			}
			if err := checkClock(a.StartTime); err != nil {
				return err
			}
			if err := checkClock(a.EndTime); err != nil {
				return err
			}
			if a.Rating < 0 || a.Rating > 5 {
				return invalid("rating must be 0-5")
			}
		}
		for i := range s.CoachingLogs {
			if s.CoachingLogs[i].Date == log.Date {
				s.CoachingLogs[i] = log
				return nil
			}
		}
		s.CoachingLogs = append(s.CoachingLogs, log)
		sort.SliceStable(s.CoachingLogs, func(i, j int) bool { return s.CoachingLogs[i].Date < s.CoachingLogs[j].Date })
		return nil
	})
}

// SaveWellness inserts or replaces the wellness entry of w.Date.
func SaveWellness(w models.WellnessLog) Action {
	return plain(func(s *models.UserState) error {
		if err := checkDate(w.Date); err != nil {
			return err
		}
		if w.Mood < 1 || w.Mood > 5 {
			return invalid("mood must be 1-5")
		}
		if w.SleepHours < 0 || w.SleepHours > 24 {
			return invalid("sleep hours must be 0-24")
		}
		for i := range s.WellnessLogs {
			if s.WellnessLogs[i].Date == w.Date {
				s.WellnessLogs[i] = w
				return nil
			}
		}
		s.WellnessLogs = append(s.WellnessLogs, w)
		sort.SliceStable(s.WellnessLogs, func(i, j int) bool { return s.WellnessLogs[i].Date < s.WellnessLogs[j].Date })
		return nil
	})
}

// AddDoubt records an open doubt. New doubts start as still confusing.
func AddDoubt(d models.Doubt) Action {
	if d.ID == "" {
		d.ID = newID()
	}
	if d.Status == "" {
		d.Status = models.DoubtConfusing
	}
	return plain(func(s *models.UserState) error {
		if err := checkDate(d.Date); err != nil {
			return err
		}
		if err := checkSubject(d.Subject); err != nil {
			return err
		}
		if d.Description == "" {
			return invalid("description is required")
		}
		if err := checkDoubtStatus(d.Status); err != nil {
			return err
		}
		s.Doubts = append(s.Doubts, d)
		return nil
	})
}

// SetDoubtStatus moves a doubt between cleared and still confusing.
func SetDoubtStatus(id string, status models.DoubtStatus) Action {
	return plain(func(s *models.UserState) error {
		if err := checkDoubtStatus(status); err != nil {
			return err
		}
		for i := range s.Doubts {
			if s.Doubts[i].ID == id {
				s.Doubts[i].Status = status
				return nil
			}
		}
		return notFound("doubt %s", id)
	})
}

func checkDoubtStatus(st models.DoubtStatus) error {
	if st != models.DoubtCleared && st != models.DoubtConfusing {
		return invalid("unknown doubt status %q", st)
	}
	return nil
}
