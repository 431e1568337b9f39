package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cppla/prepmeter/middleware"
	"github.com/cppla/prepmeter/models"
	"github.com/cppla/prepmeter/session"
	"github.com/cppla/prepmeter/tracker"
	"github.com/cppla/prepmeter/utils"
)

// trackerBase is embedded by every controller that reads or updates a user's prep state.
type trackerBase struct {
	db       *gorm.DB
	sessions *session.Manager
	queue    *session.WriteQueue
}

// session returns the caller's live session, logging them in again when the server restarted
// since their token was issued. It writes the error response itself.
func (b *trackerBase) session(ctx *gin.Context) (*session.Session, bool) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return nil, false
	}
	if s, err := b.sessions.Get(userID); err == nil {
		return s, true
	}

	var user models.User
	if err := b.db.WithContext(ctx.Request.Context()).First(&user, userID).Error; err != nil {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "account not found")
		return nil, false
	}
	s, err := b.sessions.Login(ctx.Request.Context(), user.Identity())
	if err != nil {
		utils.Sugar.Errorw("session login failed", "user_id", userID, "error", err)
		utils.Error(ctx, http.StatusServiceUnavailable, 50301, "failed to load prep state")
		return nil, false
	}
	return s, true
}

// run applies one action to the caller's session and answers with the new state, the
// achievements it unlocked and whether the write is still waiting to be persisted.
func (b *trackerBase) run(ctx *gin.Context, build func(s *session.Session) tracker.Action) {
	s, ok := b.session(ctx)
	if !ok {
		return
	}
	state, unlocked, err := build(s).Run(s)
	if err != nil {
		b.fail(ctx, err)
		return
	}
	if unlocked == nil {
		unlocked = []models.Achievement{}
	}
	utils.Success(ctx, gin.H{
		"state":    state,
		"unlocked": unlocked,
		"pending":  b.queue.Pending(s.UserID()),
	})
}

func (b *trackerBase) fail(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, tracker.ErrInvalid):
		utils.Error(ctx, http.StatusBadRequest, 40020, err.Error())
	case errors.Is(err, tracker.ErrNotFound):
		utils.Error(ctx, http.StatusNotFound, 40420, err.Error())
	case errors.Is(err, tracker.ErrConflict):
		utils.Error(ctx, http.StatusConflict, 40920, "day already reviewed")
	case errors.Is(err, session.ErrSessionClosed):
		utils.Error(ctx, http.StatusUnauthorized, 40111, "session ended, please log in again")
	default:
		utils.Sugar.Errorw("state update failed", "path", ctx.FullPath(), "error", err)
		utils.Error(ctx, http.StatusInternalServerError, 50020, "failed to update state")
	}
}

// dateParam reads :date, where "today" means the session's current day.
func dateParam(ctx *gin.Context, s *session.Session) string {
	d := strings.TrimSpace(ctx.Param("date"))
	if d == "" || d == "today" {
		return s.Today()
	}
	return d
}
