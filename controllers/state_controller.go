package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cppla/prepmeter/config"
	"github.com/cppla/prepmeter/gamification"
	"github.com/cppla/prepmeter/models"
	"github.com/cppla/prepmeter/report"
	"github.com/cppla/prepmeter/session"
	"github.com/cppla/prepmeter/tracker"
	"github.com/cppla/prepmeter/utils"
)

// StateController serves the prep document as a whole: reading it, patching profile fields,
// achievements, notifications and reports.
type StateController struct {
	trackerBase
}

// NewStateController creates a StateController.
func NewStateController(db *gorm.DB, sessions *session.Manager, queue *session.WriteQueue) *StateController {
	return &StateController{trackerBase{db: db, sessions: sessions, queue: queue}}
}

// Get returns the current state. The first call of a calendar day runs the login bootstrap.
func (c *StateController) Get(ctx *gin.Context) {
	s, ok := c.session(ctx)
	if !ok {
		return
	}
	if _, err := s.Bootstrap(ctx.Request.Context()); err != nil {
		c.fail(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{
		"state":         s.State(),
		"notifications": s.Notifications(),
		"pending":       c.queue.Pending(s.UserID()),
	})
}

// Patch updates profile-level fields. Omitted fields keep their value.
func (c *StateController) Patch(ctx *gin.Context) {
	var p session.Patch
	if err := ctx.ShouldBindJSON(&p); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40030, "invalid request payload")
		return
	}
	if p.DisplayName != nil {
		name := utils.PlainText(*p.DisplayName)
		if name == "" {
			utils.Error(ctx, http.StatusBadRequest, 40031, "display name must not be empty")
			return
		}
		p.DisplayName = &name
	}
	if p.Notes != nil {
		notes := utils.Sanitize(*p.Notes)
		p.Notes = &notes
	}
	c.run(ctx, func(*session.Session) tracker.Action {
		return tracker.Action{Update: session.Merge(p)}
	})
}

// Achievements lists the whole catalog in evaluation order with unlock status.
func (c *StateController) Achievements(ctx *gin.Context) {
	s, ok := c.session(ctx)
	if !ok {
		return
	}
	state := s.State()
	unlocked := make(map[string]time.Time, len(state.Achievements))
	for _, a := range state.Achievements {
		unlocked[a.ID] = a.UnlockedDate
	}

	items := make([]gin.H, 0, len(gamification.Catalog()))
	for _, d := range gamification.Catalog() {
		item := gin.H{
			"id":          d.ID,
			"name":        d.Name,
			"description": d.Description,
			"icon":        d.Icon,
			"unlocked":    false,
		}
		if at, ok := unlocked[d.ID]; ok {
			item["unlocked"] = true
			item["unlockedDate"] = at
		}
		items = append(items, item)
	}
	utils.Success(ctx, gin.H{"items": items, "unlocked": len(unlocked), "total": len(items)})
}

// Notifications lists undismissed unlock notifications, oldest first.
func (c *StateController) Notifications(ctx *gin.Context) {
	s, ok := c.session(ctx)
	if !ok {
		return
	}
	utils.Success(ctx, gin.H{"items": s.Notifications()})
}

// Dismiss removes one notification. The achievement stays unlocked.
func (c *StateController) Dismiss(ctx *gin.Context) {
	s, ok := c.session(ctx)
	if !ok {
		return
	}
	if !s.Dismiss(ctx.Param("id")) {
		utils.Error(ctx, http.StatusNotFound, 40421, "notification not found")
		return
	}
	utils.Success(ctx, gin.H{"items": s.Notifications()})
}

// Report aggregates study data over ?from=&to= (inclusive, YYYY-MM-DD). Both default to the
// last seven days ending today.
func (c *StateController) Report(ctx *gin.Context) {
	s, ok := c.session(ctx)
	if !ok {
		return
	}
	to := ctx.DefaultQuery("to", s.Today())
	from := ctx.Query("from")
	if from == "" {
		end, err := time.ParseInLocation(gamification.DateLayout, to, config.Get().Location())
		if err != nil {
			utils.Error(ctx, http.StatusBadRequest, 40032, "invalid date range")
			return
		}
		from = end.AddDate(0, 0, -6).Format(gamification.DateLayout)
	}
	r, err := report.ParseRange(from, to, config.Get().Location())
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40032, err.Error())
		return
	}
	state := s.State()
	utils.Success(ctx, report.Build(&state, r))
}

// Syllabus returns the chapter catalog of one subject, as seeded into new documents.
func (c *StateController) Syllabus(ctx *gin.Context) {
	subject := models.SubjectName(ctx.Param("subject"))
	topics := models.InitialTopics()
	chapters := topics.ChaptersOf(subject)
	if chapters == nil {
		utils.Error(ctx, http.StatusNotFound, 40422, "unknown subject")
		return
	}
	utils.Success(ctx, gin.H{"subject": subject, "chapters": chapters})
}
