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

// RecordController handles dated records: mock tests, coaching logs, wellness entries and doubts.
type RecordController struct {
	trackerBase
}

// NewRecordController creates a RecordController.
func NewRecordController(db *gorm.DB, sessions *session.Manager, queue *session.WriteQueue) *RecordController {
	return &RecordController{trackerBase{db: db, sessions: sessions, queue: queue}}
}

// AddTest records a mock test result.
func (c *RecordController) AddTest(ctx *gin.Context) {
	var t models.TestResult
	if err := ctx.ShouldBindJSON(&t); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40050, "invalid test payload")
		return
	}
	t.ID = ""
	t.Name = utils.PlainText(t.Name)
	c.run(ctx, func(*session.Session) tracker.Action { return tracker.AddTest(t) })
}

// AnalyseTest stores the post-test reflection.
func (c *RecordController) AnalyseTest(ctx *gin.Context) {
	var req struct {
		Feedback  string `json:"feedback"`
		Learnings string `json:"learnings"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40051, "invalid analysis payload")
		return
	}
	feedback, learnings := utils.Sanitize(req.Feedback), utils.Sanitize(req.Learnings)
	c.run(ctx, func(*session.Session) tracker.Action {
		return tracker.UpdateTestAnalysis(ctx.Param("id"), feedback, learnings)
	})
}

// DeleteTest removes a test result.
func (c *RecordController) DeleteTest(ctx *gin.Context) {
	c.run(ctx, func(*session.Session) tracker.Action { return tracker.DeleteTest(ctx.Param("id")) })
}

// SaveCoaching inserts or replaces the coaching log of :date.
func (c *RecordController) SaveCoaching(ctx *gin.Context) {
	var log models.CoachingLog
	if err := ctx.ShouldBindJSON(&log); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40052, "invalid coaching payload")
		return
	}
	c.run(ctx, func(s *session.Session) tracker.Action {
		log.Date = dateParam(ctx, s)
		return tracker.SaveCoachingLog(log)
	})
}

// SaveWellness inserts or replaces the wellness entry of :date.
func (c *RecordController) SaveWellness(ctx *gin.Context) {
	var w models.WellnessLog
	if err := ctx.ShouldBindJSON(&w); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40053, "invalid wellness payload")
		return
	}
	w.Journal = utils.Sanitize(w.Journal)
	c.run(ctx, func(s *session.Session) tracker.Action {
		w.Date = dateParam(ctx, s)
		return tracker.SaveWellness(w)
	})
}

// AddDoubt records a new doubt. The date defaults to today.
func (c *RecordController) AddDoubt(ctx *gin.Context) {
	var d models.Doubt
	if err := ctx.ShouldBindJSON(&d); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40054, "invalid doubt payload")
		return
	}
	d.ID = ""
	d.Topic = utils.PlainText(d.Topic)
	d.Description = utils.PlainText(d.Description)
	d.Context = utils.Sanitize(d.Context)
	c.run(ctx, func(s *session.Session) tracker.Action {
		if d.Date == "" {
			d.Date = s.Today()
		}
		return tracker.AddDoubt(d)
	})
}

// SetDoubtStatus moves a doubt between cleared and still confusing.
func (c *RecordController) SetDoubtStatus(ctx *gin.Context) {
	var req struct {
		Status models.DoubtStatus `json:"status" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40055, "status is required")
		return
	}
	c.run(ctx, func(*session.Session) tracker.Action {
		return tracker.SetDoubtStatus(ctx.Param("id"), req.Status)
	})
}
