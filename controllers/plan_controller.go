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

// PlanController handles daily plans. Every :date accepts "today".
type PlanController struct {
	trackerBase
}

// NewPlanController creates a PlanController.
func NewPlanController(db *gorm.DB, sessions *session.Manager, queue *session.WriteQueue) *PlanController {
	return &PlanController{trackerBase{db: db, sessions: sessions, queue: queue}}
}

// Get returns one day's plan, or an empty plan when nothing was saved yet.
func (c *PlanController) Get(ctx *gin.Context) {
	s, ok := c.session(ctx)
	if !ok {
		return
	}
	date := dateParam(ctx, s)
	state := s.State()
	if p := state.PlanByDate(date); p != nil {
		utils.Success(ctx, p)
		return
	}
	utils.Success(ctx, models.NewDailyPlan(date))
}

// Save replaces the day's schedule, tasks and planned topics.
func (c *PlanController) Save(ctx *gin.Context) {
	var plan models.DailyPlan
	if err := ctx.ShouldBindJSON(&plan); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40040, "invalid plan payload")
		return
	}
	c.run(ctx, func(s *session.Session) tracker.Action {
		plan.Date = dateParam(ctx, s)
		for i := range plan.Tasks {
			plan.Tasks[i].Text = utils.PlainText(plan.Tasks[i].Text)
		}
		return tracker.SavePlan(plan, s.Now())
	})
}

// WakeUp records the day's wake-up time ("HH:MM").
func (c *PlanController) WakeUp(ctx *gin.Context) {
	var req struct {
		WakeUpTime string `json:"wakeUpTime" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40041, "wakeUpTime is required")
		return
	}
	c.run(ctx, func(s *session.Session) tracker.Action {
		return tracker.SetWakeUp(dateParam(ctx, s), req.WakeUpTime)
	})
}

// CompleteSlot marks a schedule slot done.
func (c *PlanController) CompleteSlot(ctx *gin.Context) {
	c.run(ctx, func(s *session.Session) tracker.Action {
		return tracker.CompleteSlot(dateParam(ctx, s), ctx.Param("slot"), true, s.Now())
	})
}

// UncompleteSlot reverts a completed slot to pending.
func (c *PlanController) UncompleteSlot(ctx *gin.Context) {
	c.run(ctx, func(s *session.Session) tracker.Action {
		return tracker.CompleteSlot(dateParam(ctx, s), ctx.Param("slot"), false, s.Now())
	})
}

// LogQuestions adds a batch of solved questions.
func (c *PlanController) LogQuestions(ctx *gin.Context) {
	var entry models.QuestionsSolvedLog
	if err := ctx.ShouldBindJSON(&entry); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40042, "invalid questions payload")
		return
	}
	entry.ID = ""
	c.run(ctx, func(s *session.Session) tracker.Action {
		return tracker.LogQuestions(dateParam(ctx, s), entry, s.Now())
	})
}

// RemoveQuestions deletes a logged batch.
func (c *PlanController) RemoveQuestions(ctx *gin.Context) {
	c.run(ctx, func(s *session.Session) tracker.Action {
		return tracker.RemoveQuestions(dateParam(ctx, s), ctx.Param("id"), s.Now())
	})
}

// Review closes the day.
func (c *PlanController) Review(ctx *gin.Context) {
	c.run(ctx, func(s *session.Session) tracker.Action {
		return tracker.ReviewDay(dateParam(ctx, s))
	})
}
