package tracker

import (
	"sort"
	"time"

	"github.com/cppla/prepmeter/gamification"
	"github.com/cppla/prepmeter/models"
	"github.com/cppla/prepmeter/report"
)

// SavePlan inserts or replaces the plan for plan.Date. Progress owned by other actions is kept
// from the stored plan: slot statuses (by slot id), logged questions and wake-up time. New slots,
// tasks and planned topics start pending. Completed slots that are dropped or resized move study
// challenges by the difference. A reviewed day cannot be replanned.
func SavePlan(plan models.DailyPlan, now time.Time) Action {
	return plain(func(s *models.UserState) error {
		if err := checkDate(plan.Date); err != nil {
			return err
		}
		for i := range plan.Schedule {
			slot := &plan.Schedule[i]
			if err := checkClock(slot.StartTime); err != nil {
				return err
			}
			if err := checkClock(slot.EndTime); err != nil {
				return err
			}
			if slot.Subject != nil {
				if err := checkSubject(*slot.Subject); err != nil {
					return err
				}
			}
		}
		if plan.SleepTime != "" {
			if err := checkClock(plan.SleepTime); err != nil {
				return err
			}
		}

		next := models.NewDailyPlan(plan.Date)
		prior := s.PlanByDate(plan.Date)
		if prior != nil && prior.IsReviewed {
			return ErrConflict
		}

		next.Schedule = make([]models.HourlySlot, 0, len(plan.Schedule))
		delta := 0.0
		for _, slot := range plan.Schedule {
			if slot.ID == "" {
				slot.ID = newID()
			}
			slot.Status = models.ItemPending
			if prior != nil {
				if old := prior.SlotByID(slot.ID); old != nil {
					slot.Status = old.Status
					if old.Status == models.ItemCompleted {
						delta += report.SlotHours(slot) - report.SlotHours(*old)
					}
				}
			}
			next.Schedule = append(next.Schedule, slot)
		}
		if prior != nil {
			for _, old := range prior.Schedule {
				if old.Status == models.ItemCompleted && next.SlotByID(old.ID) == nil {
					delta -= report.SlotHours(old)
				}
			}
		}
		gamification.Accrue(s.Challenges, models.ChallengeStudyHours, delta, now)
		for _, task := range plan.Tasks {
			if task.ID == "" {
				task.ID = newID()
			}
			if task.Status == "" {
				task.Status = models.ItemPending
			}
			next.Tasks = append(next.Tasks, task)
		}
		next.SubjectPlans = models.SubjectPlans{
			Physics:   withIDs(plan.SubjectPlans.Physics, models.SubjectPhysics),
			Chemistry: withIDs(plan.SubjectPlans.Chemistry, models.SubjectChemistry),
			Math:      withIDs(plan.SubjectPlans.Math, models.SubjectMath),
		}
		if plan.SleepTime != "" {
			next.SleepTime = plan.SleepTime
		}
		next.DailyMood = plan.DailyMood
		if prior != nil {
			next.WakeUpTime = prior.WakeUpTime
			next.QuestionsSolved = prior.QuestionsSolved
			*prior = next
			return nil
		}
		s.DailyPlans = append(s.DailyPlans, next)
		sortPlans(s.DailyPlans)
		return nil
	})
}

func withIDs(topics []models.PlannedTopic, subject models.SubjectName) []models.PlannedTopic {
	out := make([]models.PlannedTopic, 0, len(topics))
	for _, t := range topics {
		if t.ID == "" {
			t.ID = newID()
		}
		if t.Status == "" {
			t.Status = models.ItemPending
		}
		t.Subject = subject
		out = append(out, t)
	}
	return out
}

func sortPlans(plans []models.DailyPlan) {
	sort.SliceStable(plans, func(i, j int) bool { return plans[i].Date < plans[j].Date })
}

// ensurePlan is EnsurePlan followed by date ordering. The returned pointer is only valid until
// the next append to DailyPlans.
func ensurePlan(s *models.UserState, date string) *models.DailyPlan {
	if p := s.PlanByDate(date); p != nil {
		return p
	}
	s.EnsurePlan(date)
	sortPlans(s.DailyPlans)
	return s.PlanByDate(date)
}

// SetWakeUp records the wake-up time of a day.
func SetWakeUp(date, wakeUp string) Action {
	ev := &models.Event{}
	return Action{
		Event: ev,
		Update: func(s *models.UserState) error {
			if err := checkDate(date); err != nil {
				return err
			}
			if err := checkClock(wakeUp); err != nil {
				return err
			}
			ensurePlan(s, date).WakeUpTime = wakeUp
			*ev = models.Event{Type: models.EventWakeUpUpdate, WakeUpTime: wakeUp}
			return nil
		},
	}
}

// CompleteSlot marks a schedule slot done or undone. The slot's hours flow into running study
// challenges, and out of them again on undo. Repeating the current status changes nothing.
func CompleteSlot(date, slotID string, done bool, now time.Time) Action {
	ev := &models.Event{}
	return Action{
		Event: ev,
		Update: func(s *models.UserState) error {
			plan := s.PlanByDate(date)
			if plan == nil {
				return notFound("no plan for %s", date)
			}
			if plan.IsReviewed {
				return ErrConflict
			}
			slot := plan.SlotByID(slotID)
			if slot == nil {
				return notFound("slot %s", slotID)
			}

			hours := report.SlotHours(*slot)
			switch {
			case done && slot.Status != models.ItemCompleted:
				slot.Status = models.ItemCompleted
				gamification.Accrue(s.Challenges, models.ChallengeStudyHours, hours, now)
				completed := *slot
				*ev = models.Event{Type: models.EventCompleteSlot, Slot: &completed}
			case !done && slot.Status == models.ItemCompleted:
				slot.Status = models.ItemPending
				gamification.Accrue(s.Challenges, models.ChallengeStudyHours, -hours, now)
			}
			return nil
		},
	}
}

// LogQuestions adds a batch of solved questions to a day and to running question challenges.
func LogQuestions(date string, entry models.QuestionsSolvedLog, now time.Time) Action {
	if entry.ID == "" {
		entry.ID = newID()
	}
	return plain(func(s *models.UserState) error {
		if err := checkDate(date); err != nil {
			return err
		}
		if err := checkSubject(entry.Subject); err != nil {
			return err
		}
		if entry.Count <= 0 {
			return invalid("count must be positive")
		}
		plan := ensurePlan(s, date)
		plan.QuestionsSolved = append(plan.QuestionsSolved, entry)
		gamification.Accrue(s.Challenges, models.ChallengeQuestionsSolved, float64(entry.Count), now)
		return nil
	})
}

// RemoveQuestions deletes a logged batch and takes its count back out of question challenges.
func RemoveQuestions(date, id string, now time.Time) Action {
	return plain(func(s *models.UserState) error {
		plan := s.PlanByDate(date)
		if plan == nil {
			return notFound("no plan for %s", date)
		}
		for i, q := range plan.QuestionsSolved {
			if q.ID != id {
				continue
			}
			plan.QuestionsSolved = append(plan.QuestionsSolved[:i], plan.QuestionsSolved[i+1:]...)
			gamification.Accrue(s.Challenges, models.ChallengeQuestionsSolved, -float64(q.Count), now)
			return nil
		}
		return notFound("questions log %s", id)
	})
}

// ReviewDay closes a day: anything still pending becomes incomplete, pending tasks and planned
// topics are carried over to the next day, and the study hours are compared against the
// personal best.
func ReviewDay(date string) Action {
	ev := &models.Event{}
	return Action{
		Event: ev,
		Update: func(s *models.UserState) error {
			plan := s.PlanByDate(date)
			if plan == nil {
				return notFound("no plan for %s", date)
			}
			if plan.IsReviewed {
				return ErrConflict
			}

			var tasks []models.DailyPlanTask
			for i := range plan.Tasks {
				t := &plan.Tasks[i]
				if t.Status != models.ItemPending {
					continue
				}
				t.Status = models.ItemIncomplete
				tasks = append(tasks, models.DailyPlanTask{ID: newID(), Text: t.Text, Status: models.ItemPending, IsCarriedOver: true})
			}
			carried := models.SubjectPlans{
				Physics:   closeTopics(plan.SubjectPlans.Physics),
				Chemistry: closeTopics(plan.SubjectPlans.Chemistry),
				Math:      closeTopics(plan.SubjectPlans.Math),
			}
			for i := range plan.Schedule {
				if plan.Schedule[i].Status == models.ItemPending {
					plan.Schedule[i].Status = models.ItemIncomplete
				}
			}
			plan.IsReviewed = true

			hours := report.StudyHours(plan)
			eff := report.Efficiency(plan)
			best := hours > s.PersonalBestStudyHours
			if best {
				s.PersonalBestStudyHours = hours
			}
			*ev = models.Event{Type: models.EventReviewDay, DailyHours: hours, IsNewBest: best, Efficiency: eff}

			if len(tasks) == 0 && len(carried.All()) == 0 {
				return nil
			}
			next := ensurePlan(s, nextDay(date))
			if next.IsReviewed {
				return nil
			}
			next.Tasks = append(next.Tasks, tasks...)
			next.SubjectPlans.Physics = append(next.SubjectPlans.Physics, carried.Physics...)
			next.SubjectPlans.Chemistry = append(next.SubjectPlans.Chemistry, carried.Chemistry...)
			next.SubjectPlans.Math = append(next.SubjectPlans.Math, carried.Math...)
			return nil
		},
	}
}

// closeTopics marks pending topics incomplete in place and returns fresh carried-over copies.
func closeTopics(topics []models.PlannedTopic) []models.PlannedTopic {
	var carried []models.PlannedTopic
	for i := range topics {
		t := &topics[i]
		if t.Status != models.ItemPending {
			continue
		}
		t.Status = models.ItemIncomplete
		c := *t
		c.ID = newID()
		c.Status = models.ItemPending
		c.IsCarriedOver = true
		c.SubtopicNames = append([]string(nil), t.SubtopicNames...)
		carried = append(carried, c)
	}
	return carried
}
