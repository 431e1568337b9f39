package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/cppla/prepmeter/config"
	"github.com/cppla/prepmeter/gamification"
	"github.com/cppla/prepmeter/models"
	"github.com/cppla/prepmeter/routes"
	"github.com/cppla/prepmeter/session"
	"github.com/cppla/prepmeter/store"
	"github.com/cppla/prepmeter/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}
	defer utils.Logger.Sync() //nolint:errcheck

	db := config.InitDatabase(&models.User{}, &models.StateDocument{})

	docs := store.NewDocumentStore(db, utils.NewRedisCache(utils.GetRedis(), cfg.StateCacheTTL()), utils.Logger)
	queue := session.NewWriteQueue(docs, utils.Logger, session.QueueOptions{
		MaxTries:       uint(max(cfg.WriteQueueMaxTries, 0)),
		InitialBackoff: time.Duration(cfg.WriteQueueBackoffMS) * time.Millisecond,
		WriteTimeout:   time.Duration(cfg.WriteQueueTimeoutSec) * time.Second,
	})
	queue.Start()

	sessions := session.NewManager(docs, queue, utils.Logger,
		session.WithLocation(cfg.Location()),
		session.WithEngine(session.Engine{Rank: gamification.RankPolicy{Days: cfg.RankRefreshDays}}),
	)

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	utils.StartMemorySweeper(sweepCtx, 5*time.Minute)

	r := routes.SetupRouter(db, sessions, queue)

	// Queued state writes are flushed after the listener stops accepting requests
	drain := func(ctx context.Context) error {
		err := queue.Close(ctx)
		utils.Logger.Info("write queue drained",
			zap.Int64("written", queue.Written()),
			zap.Int64("failed", queue.Failures()),
			zap.Int("left", queue.Len()),
			zap.Error(err))
		if cerr := utils.CloseRedis(); cerr != nil {
			utils.Sugar.Warnf("redis close: %v", cerr)
		}
		return err
	}

	utils.Sugar.Infof("Starting server on port %s (graceful, tls=%t)", cfg.AppPort, cfg.TLSCertFile != "")
	err := utils.GraceServe(":"+cfg.AppPort, r, utils.GraceOptions{
		CertFile:        cfg.TLSCertFile,
		KeyFile:         cfg.TLSKeyFile,
		ShutdownTimeout: cfg.ShutdownFlush(),
		Drain:           []func(context.Context) error{drain},
	})
	if err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
