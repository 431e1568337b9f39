package gamification

import (
	"time"

	"github.com/cppla/prepmeter/models"
)

// DateLayout keys daily plans, logs and the cached quote.
const DateLayout = "2006-01-02"

// StaticQuotes rotate by day of month.
var StaticQuotes = []string{
	"The secret to getting ahead is getting started.",
	"The expert in anything was once a beginner.",
	"Believe you can and you're halfway there.",
	"Success is the sum of small efforts, repeated day in and day out.",
	"Don't watch the clock; do what it does. Keep going.",
	"The only way to do great work is to love what you do.",
	"It does not matter how slowly you go as long as you do not stop.",
	"The future belongs to those who believe in the beauty of their dreams.",
	"Strive for progress, not perfection.",
	"The harder you work for something, the greater you'll feel when you achieve it.",
}

// DayStart returns midnight of now's calendar day in now's location.
func DayStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// SameDay reports whether a and b fall on the same calendar day in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	a, b = a.In(loc), b.In(loc)
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// QuoteFor returns the quote of now's calendar day.
func QuoteFor(now time.Time) models.DailyQuote {
	return models.DailyQuote{
		Quote: StaticQuotes[now.Day()%len(StaticQuotes)],
		Date:  now.Format(DateLayout),
	}
}

// Bootstrap applies the once-per-day login update to state in place, using now's location as
// the calendar. It reports whether anything changed.
//
// The streak is kept when the last login was today, extended when it was yesterday and reset to
// 1 otherwise. The daily quote is replaced when its date is not today.
func Bootstrap(state *models.UserState, now time.Time) bool {
	changed := false
	loc := now.Location()

	if state.LastLogin == nil || !SameDay(*state.LastLogin, now, loc) {
		yesterday := DayStart(now).AddDate(0, 0, -1)
		if state.LastLogin != nil && SameDay(*state.LastLogin, yesterday, loc) {
			state.StudyStreak++
		} else {
			state.StudyStreak = 1
		}
		stamp := now
		state.LastLogin = &stamp
		changed = true
	}

	if today := now.Format(DateLayout); state.DailyQuote.Date != today {
		state.DailyQuote = QuoteFor(now)
		changed = true
	}
	return changed
}
