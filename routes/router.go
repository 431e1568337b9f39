package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cppla/prepmeter/config"
	"github.com/cppla/prepmeter/controllers"
	"github.com/cppla/prepmeter/middleware"
	"github.com/cppla/prepmeter/session"
	"github.com/cppla/prepmeter/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB, sessions *session.Manager, queue *session.WriteQueue) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Request log goes to its own rolling file; fall back to the app logger if that fails
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err != nil {
		utils.Sugar.Warnf("gin logger init failed, using app logger: %v", err)
		gl = utils.Logger
	}
	r.Use(utils.Ginzap(gl, time.RFC3339, true))
	r.Use(utils.RecoveryWithZap(gl, false))

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
		// credentials cannot be combined with a wildcard origin
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok", "queue_length": queue.Len()})
	})

	authController := controllers.NewAuthController(db, sessions)
	stateController := controllers.NewStateController(db, sessions, queue)
	planController := controllers.NewPlanController(db, sessions, queue)
	recordController := controllers.NewRecordController(db, sessions, queue)
	progressController := controllers.NewProgressController(db, sessions, queue)
	statsController := controllers.NewStatsController(db, sessions, queue)

	api := r.Group("/api/v1")
	api.GET("/syllabus/:subject", stateController.Syllabus)

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimit("auth", cfg.AuthRateLimit))
	authGroup.POST("/register", authController.Register)
	authGroup.POST("/login", authController.Login)
	authGroup.GET("/captcha", authController.Captcha)
	authGroup.POST("/captcha/verify", authController.CaptchaVerify)
	authGroup.GET("/oauth/:provider/login", authController.OAuthRedirect)
	authGroup.GET("/oauth/:provider/callback", authController.OAuthCallback)
	authGroup.POST("/logout", middleware.AuthRequired(), authController.Logout)
	authGroup.GET("/me", middleware.AuthRequired(), authController.Me)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired(), middleware.RateLimit("api", cfg.RateLimitPerMinute))

	protected.GET("/state", stateController.Get)
	protected.PATCH("/state/profile", stateController.Patch)
	protected.GET("/achievements", stateController.Achievements)
	protected.GET("/notifications", stateController.Notifications)
	protected.DELETE("/notifications/:id", stateController.Dismiss)
	protected.GET("/reports", stateController.Report)

	protected.GET("/plans/:date", planController.Get)
	protected.PUT("/plans/:date", planController.Save)
	protected.PUT("/plans/:date/wake-up", planController.WakeUp)
	protected.POST("/plans/:date/slots/:slot/complete", planController.CompleteSlot)
	protected.DELETE("/plans/:date/slots/:slot/complete", planController.UncompleteSlot)
	protected.POST("/plans/:date/questions", planController.LogQuestions)
	protected.DELETE("/plans/:date/questions/:id", planController.RemoveQuestions)
	protected.POST("/plans/:date/review", planController.Review)

	protected.POST("/tests", recordController.AddTest)
	protected.PUT("/tests/:id/analysis", recordController.AnalyseTest)
	protected.DELETE("/tests/:id", recordController.DeleteTest)
	protected.PUT("/coaching/:date", recordController.SaveCoaching)
	protected.PUT("/wellness/:date", recordController.SaveWellness)
	protected.POST("/doubts", recordController.AddDoubt)
	protected.PATCH("/doubts/:id", recordController.SetDoubtStatus)

	protected.PATCH("/topics/:subject/:chapter", progressController.UpdateChapter)
	protected.PATCH("/topics/:subject/:chapter/subtopics/:subtopic", progressController.SetSubtopic)
	protected.GET("/challenges", progressController.Challenges)
	protected.POST("/challenges", progressController.CreateChallenge)
	protected.DELETE("/challenges/:id", progressController.DeleteChallenge)

	protected.GET("/admin/stats", middleware.AdminRequired(), statsController.GetStats)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, 40400, "api route not found")
	})

	return r
}
