package controllers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cppla/prepmeter/models"
	"github.com/cppla/prepmeter/session"
	"github.com/cppla/prepmeter/utils"
)

// StatsController reports service-level counters for operators.
type StatsController struct {
	db       *gorm.DB
	sessions *session.Manager
	queue    *session.WriteQueue
}

// NewStatsController creates a new StatsController instance.
func NewStatsController(db *gorm.DB, sessions *session.Manager, queue *session.WriteQueue) *StatsController {
	return &StatsController{db: db, sessions: sessions, queue: queue}
}

// GetStats returns account, session and write-queue counters.
func (s *StatsController) GetStats(ctx *gin.Context) {
	var userCount int64
	if err := s.db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		// Fallback to 0 instead of failing the whole endpoint
		userCount = 0
	}
	var docCount int64
	if err := s.db.Model(&models.StateDocument{}).Count(&docCount).Error; err != nil {
		docCount = 0
	}

	utils.Success(ctx, gin.H{
		"user_count":      userCount,
		"document_count":  docCount,
		"active_sessions": s.sessions.Active(),
		"queue_length":    s.queue.Len(),
		"writes_done":     s.queue.Written(),
		"writes_failed":   s.queue.Failures(),
	})
}
