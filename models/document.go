package models

import (
	"time"

	"gorm.io/datatypes"
)

// StateDocument stores one user's whole prep aggregate as a single JSON document.
// Writes replace Body wholesale; there is no partial-field persistence.
type StateDocument struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	Body      datatypes.JSON `gorm:"not null" json:"body"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}
