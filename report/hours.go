package report

import (
	"strconv"
	"strings"

	"github.com/cppla/prepmeter/models"
)

// minutesOf parses "HH:MM" into minutes after midnight.
func minutesOf(hhmm string) (int, bool) {
	h, m, ok := strings.Cut(strings.TrimSpace(hhmm), ":")
	if !ok {
		return 0, false
	}
	hours, err := strconv.Atoi(h)
	if err != nil || hours < 0 || hours > 24 {
		return 0, false
	}
	mins, err := strconv.Atoi(m)
	if err != nil || mins < 0 || mins > 59 {
		return 0, false
	}
	return hours*60 + mins, true
}

// Duration returns the hours between two "HH:MM" times. An end before the start wraps past
// midnight. Malformed times count as zero.
func Duration(start, end string) float64 {
	s, ok1 := minutesOf(start)
	e, ok2 := minutesOf(end)
	if !ok1 || !ok2 {
		return 0
	}
	d := e - s
	if d < 0 {
		d += 24 * 60
	}
	return float64(d) / 60
}

// SlotHours is the length of a schedule slot.
func SlotHours(slot models.HourlySlot) float64 {
	return Duration(slot.StartTime, slot.EndTime)
}

// StudyHours sums the completed slots of a plan.
func StudyHours(plan *models.DailyPlan) float64 {
	total := 0.0
	for _, slot := range plan.Schedule {
		if slot.Status == models.ItemCompleted {
			total += SlotHours(slot)
		}
	}
	return total
}

// Efficiency is the percentage of scheduled (non-free) slots that were completed. It is nil
// when nothing was scheduled.
func Efficiency(plan *models.DailyPlan) *float64 {
	scheduled, done := 0, 0
	for _, slot := range plan.Schedule {
		if slot.Free() {
			continue
		}
		scheduled++
		if slot.Status == models.ItemCompleted {
			done++
		}
	}
	if scheduled == 0 {
		return nil
	}
	pct := float64(done) / float64(scheduled) * 100
	return &pct
}

// SlotSubject resolves the subject studied in a slot, directly or through its planned topic.
func SlotSubject(plan *models.DailyPlan, slot models.HourlySlot) (models.SubjectName, bool) {
	if slot.Subject != nil {
		return *slot.Subject, true
	}
	if slot.PlannedTopicID == nil {
		return "", false
	}
	for _, pt := range plan.SubjectPlans.All() {
		if pt.ID == *slot.PlannedTopicID {
			return pt.Subject, true
		}
	}
	return "", false
}

// CoachingHours sums the activity durations of a coaching day.
func CoachingHours(log *models.CoachingLog) float64 {
	total := 0.0
	for _, a := range log.Activities {
		total += Duration(a.StartTime, a.EndTime)
	}
	return total
}
