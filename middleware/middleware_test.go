package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cppla/prepmeter/config"
	"github.com/cppla/prepmeter/utils"
)

func TestMain(m *testing.M) {
	config.Set(config.AppConfig{JWTSecret: "test-secret", RedisDisabled: true, AdminUsernames: []string{" Root "}})
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers = append(handlers, func(ctx *gin.Context) {
		uid, _ := CurrentUserID(ctx)
		utils.Success(ctx, gin.H{"user_id": uid})
	})
	r.GET("/x", handlers...)
	return r
}

func do(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRequired(t *testing.T) {
	r := newEngine(AuthRequired())
	tok, err := utils.GenerateToken(3, "asha", time.Hour)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, do(r, "Bearer "+tok).Code)
	assert.Equal(t, http.StatusOK, do(r, "bearer "+tok).Code)

	for _, h := range []string{"", "Token " + tok, "Bearer ", "Bearer nope"} {
		assert.Equal(t, http.StatusUnauthorized, do(r, h).Code, h)
	}

	utils.BlacklistToken(context.Background(), tok, time.Now().Add(time.Hour))
	w := do(r, "Bearer "+tok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "40104")
}

func TestAdminRequired(t *testing.T) {
	r := newEngine(AuthRequired(), AdminRequired())

	admin, err := utils.GenerateToken(1, "root", time.Hour)
	require.NoError(t, err)
	member, err := utils.GenerateToken(2, "asha", time.Hour)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, do(r, "Bearer "+admin).Code)
	assert.Equal(t, http.StatusForbidden, do(r, "Bearer "+member).Code)
	assert.False(t, IsAdmin("  "))
}

func TestRateLimit_PerUserBuckets(t *testing.T) {
	r := newEngine(AuthRequired(), RateLimit("test-user", 2))
	a, err := utils.GenerateToken(10, "a", time.Hour)
	require.NoError(t, err)
	b, err := utils.GenerateToken(11, "b", time.Hour)
	require.NoError(t, err)

	// perMinute 2 gives a burst of one
	assert.Equal(t, http.StatusOK, do(r, "Bearer "+a).Code)
	w := do(r, "Bearer "+a)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "30", w.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusOK, do(r, "Bearer "+b).Code)
}

func TestRateLimit_ScopesAreIndependent(t *testing.T) {
	r := gin.New()
	r.GET("/a", RateLimit("scope-a", 1), func(ctx *gin.Context) { utils.Success(ctx, nil) })
	r.GET("/b", RateLimit("scope-b", 1), func(ctx *gin.Context) { utils.Success(ctx, nil) })

	call := func(path string) int {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w.Code
	}
	assert.Equal(t, http.StatusOK, call("/a"))
	assert.Equal(t, http.StatusTooManyRequests, call("/a"))
	assert.Equal(t, http.StatusOK, call("/b"))
}
