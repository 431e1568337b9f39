package models

// EventType discriminates the context passed alongside one state update.
type EventType string

const (
	EventWakeUpUpdate EventType = "WAKE_UP_UPDATE"
	EventCompleteSlot EventType = "COMPLETE_SLOT"
	EventReviewDay    EventType = "REVIEW_DAY"
	EventAddTest      EventType = "ADD_TEST"
)

// Event describes what triggered an update pass. Only the payload fields of its Type are
// meaningful. Events are never persisted.
type Event struct {
	Type EventType `json:"type"`

	// WAKE_UP_UPDATE
	WakeUpTime string `json:"wakeUpTime,omitempty"`

	// COMPLETE_SLOT
	Slot *HourlySlot `json:"slot,omitempty"`

	// REVIEW_DAY
	DailyHours float64  `json:"dailyHours,omitempty"`
	IsNewBest  bool     `json:"isNewBest,omitempty"`
	Efficiency *float64 `json:"efficiency,omitempty"`

	// ADD_TEST
	Test *TestResult `json:"test,omitempty"`
}

// Is reports whether e is non-nil and tagged t.
func (e *Event) Is(t EventType) bool {
	return e != nil && e.Type == t
}
