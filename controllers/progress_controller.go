package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cppla/prepmeter/models"
	"github.com/cppla/prepmeter/session"
	"github.com/cppla/prepmeter/tracker"
	"github.com/cppla/prepmeter/utils"
)

// ProgressController handles syllabus progress and challenges.
type ProgressController struct {
	trackerBase
}

// NewProgressController creates a ProgressController.
func NewProgressController(db *gorm.DB, sessions *session.Manager, queue *session.WriteQueue) *ProgressController {
	return &ProgressController{trackerBase{db: db, sessions: sessions, queue: queue}}
}

// UpdateChapter changes a chapter's statuses or practice progress.
func (c *ProgressController) UpdateChapter(ctx *gin.Context) {
	var u tracker.ChapterUpdate
	if err := ctx.ShouldBindJSON(&u); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40060, "invalid chapter payload")
		return
	}
	subject := models.SubjectName(ctx.Param("subject"))
	c.run(ctx, func(s *session.Session) tracker.Action {
		return tracker.UpdateChapter(subject, ctx.Param("chapter"), u, s.Now())
	})
}

// SetSubtopic changes one subtopic's status.
func (c *ProgressController) SetSubtopic(ctx *gin.Context) {
	var req struct {
		Status models.TopicStatus `json:"status" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40061, "status is required")
		return
	}
	subject := models.SubjectName(ctx.Param("subject"))
	c.run(ctx, func(*session.Session) tracker.Action {
		return tracker.SetSubtopicStatus(subject, ctx.Param("chapter"), ctx.Param("subtopic"), req.Status)
	})
}

// Challenges lists the user's challenges in every status.
func (c *ProgressController) Challenges(ctx *gin.Context) {
	s, ok := c.session(ctx)
	if !ok {
		return
	}
	state := s.State()
	utils.Success(ctx, gin.H{"items": state.Challenges})
}

// CreateChallenge starts a new challenge now.
func (c *ProgressController) CreateChallenge(ctx *gin.Context) {
	var req tracker.ChallengeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40062, "invalid challenge payload")
		return
	}
	req.Title = utils.PlainText(req.Title)
	c.run(ctx, func(s *session.Session) tracker.Action {
		return tracker.CreateChallenge(req, s.Now())
	})
}

// DeleteChallenge removes a challenge.
func (c *ProgressController) DeleteChallenge(ctx *gin.Context) {
	c.run(ctx, func(*session.Session) tracker.Action {
		return tracker.DeleteChallenge(ctx.Param("id"))
	})
}
