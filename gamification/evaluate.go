package gamification

import (
	"time"

	"github.com/cppla/prepmeter/models"
)

// Evaluate returns the achievements newly unlocked by state and event, in catalog order.
// Ids already present in state.Achievements are skipped. Every result is stamped with now.
// state is not modified.
func Evaluate(state *models.UserState, event *models.Event, now time.Time) []models.Achievement {
	var unlocked []models.Achievement
	for _, d := range catalog {
		if state.HasAchievement(d.ID) {
			continue
		}
		if d.Check(state, event) {
			unlocked = append(unlocked, d.Unlock(now))
		}
	}
	return unlocked
}
