package gamification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBootstrap_Streak(t *testing.T) {
	cases := []struct {
		name       string
		lastLogin  *time.Time
		streak     int
		wantStreak int
	}{
		{"first login", nil, 0, 1},
		{"yesterday extends", ptr(now.AddDate(0, 0, -1)), 4, 5},
		{"late yesterday extends", ptr(DayStart(now).Add(-time.Minute)), 4, 5},
		{"three days ago resets", ptr(now.AddDate(0, 0, -3)), 4, 1},
		{"two days ago resets", ptr(DayStart(now).AddDate(0, 0, -1).Add(-time.Second)), 9, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newState()
			s.LastLogin = tc.lastLogin
			s.StudyStreak = tc.streak

			assert.True(t, Bootstrap(&s, now))
			assert.Equal(t, tc.wantStreak, s.StudyStreak)
			require.NotNil(t, s.LastLogin)
			assert.Equal(t, now, *s.LastLogin)
		})
	}
}

func TestBootstrap_SameDayIsNoop(t *testing.T) {
	s := newState()
	earlier := DayStart(now).Add(time.Hour)
	s.LastLogin = &earlier
	s.StudyStreak = 4
	s.DailyQuote = QuoteFor(now)

	assert.False(t, Bootstrap(&s, now))
	assert.Equal(t, 4, s.StudyStreak)
	assert.Equal(t, earlier, *s.LastLogin)
}

func TestBootstrap_Quote(t *testing.T) {
	s := newState()
	Bootstrap(&s, now)

	assert.Equal(t, StaticQuotes[5], s.DailyQuote.Quote)
	assert.Equal(t, "2026-03-15", s.DailyQuote.Date)

	s.DailyQuote.Quote = "cached"
	Bootstrap(&s, now.Add(2*time.Hour))
	assert.Equal(t, "cached", s.DailyQuote.Quote)

	Bootstrap(&s, now.AddDate(0, 0, 1))
	assert.Equal(t, StaticQuotes[6], s.DailyQuote.Quote)
	assert.Equal(t, 2, s.StudyStreak)
}

func TestBootstrap_UsesLocationOfNow(t *testing.T) {
	kolkata := time.FixedZone("IST", 5*3600+1800)
	// 20:00 UTC on the 14th is already the 15th in IST.
	last := time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC)
	s := newState()
	s.LastLogin = &last
	s.StudyStreak = 2

	Bootstrap(&s, time.Date(2026, 3, 16, 9, 0, 0, 0, kolkata))
	assert.Equal(t, 3, s.StudyStreak)
}
