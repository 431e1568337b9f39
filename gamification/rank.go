package gamification

import (
	"time"

	"github.com/cppla/prepmeter/models"
)

// DefaultRankRefreshDays is the rank refresh window in calendar days.
const DefaultRankRefreshDays = 3

// RankPolicy stamps the rank refresh time at most once per window.
type RankPolicy struct {
	Days int
}

// DefaultRankPolicy refreshes every DefaultRankRefreshDays.
var DefaultRankPolicy = RankPolicy{Days: DefaultRankRefreshDays}

// Due reports whether the window since last has elapsed at now.
func (p RankPolicy) Due(last, now time.Time) bool {
	days := p.Days
	if days <= 0 {
		days = DefaultRankRefreshDays
	}
	return last.Before(now.AddDate(0, 0, -days))
}

// Refresh stamps state.LastRankUpdate with now when the window has elapsed and reports whether
// it did. Rank scoring itself is not computed here.
func (p RankPolicy) Refresh(state *models.UserState, now time.Time) bool {
	if !p.Due(state.LastRankUpdate, now) {
		return false
	}
	state.LastRankUpdate = now
	return true
}

// RefreshRank applies DefaultRankPolicy.
func RefreshRank(state *models.UserState, now time.Time) bool {
	return DefaultRankPolicy.Refresh(state, now)
}
