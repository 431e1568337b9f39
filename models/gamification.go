package models

import "time"

// Achievement is an unlocked catalog entry. Immutable once appended to a user's list.
type Achievement struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Icon         string    `json:"icon"`
	UnlockedDate time.Time `json:"unlockedDate"`
}

type ChallengeType string

const (
	ChallengeStudyHours      ChallengeType = "study_hours"
	ChallengeCompletedTopics ChallengeType = "completed_topics"
	ChallengeQuestionsSolved ChallengeType = "questions_solved"
)

// Valid reports whether t is a known challenge type.
func (t ChallengeType) Valid() bool {
	switch t {
	case ChallengeStudyHours, ChallengeCompletedTopics, ChallengeQuestionsSolved:
		return true
	}
	return false
}

// Unit is the display unit of a challenge type.
func (t ChallengeType) Unit() string {
	switch t {
	case ChallengeStudyHours:
		return "hours"
	case ChallengeCompletedTopics:
		return "topics"
	case ChallengeQuestionsSolved:
		return "questions"
	}
	return ""
}

type ChallengeStatus string

const (
	ChallengeActive    ChallengeStatus = "active"
	ChallengeCompleted ChallengeStatus = "completed"
	ChallengeFailed    ChallengeStatus = "failed"
)

// Challenge is a time-boxed numeric goal.
type Challenge struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Type         ChallengeType   `json:"type"`
	Goal         float64         `json:"goal"`
	Current      float64         `json:"current"`
	Unit         string          `json:"unit"`
	DurationDays int             `json:"durationDays"`
	StartDate    time.Time       `json:"startDate"`
	EndDate      time.Time       `json:"endDate"`
	Status       ChallengeStatus `json:"status"`
}

type RankTier string

const (
	TierBronze   RankTier = "Bronze"
	TierSilver   RankTier = "Silver"
	TierGold     RankTier = "Gold"
	TierPlatinum RankTier = "Platinum"
)

type Rank struct {
	Name  string   `json:"name"`
	Level int      `json:"level"`
	Score float64  `json:"score"`
	Tier  RankTier `json:"tier"`
}

// DailyQuote caches the quote shown for Date ("YYYY-MM-DD").
type DailyQuote struct {
	Quote string `json:"quote"`
	Date  string `json:"date"`
}
