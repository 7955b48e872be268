package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/jtsistemas/agenda-api/internal/cache"
	"github.com/jtsistemas/agenda-api/internal/config"
	dbpkg "github.com/jtsistemas/agenda-api/internal/db"
	"github.com/jtsistemas/agenda-api/internal/logger"
	"github.com/jtsistemas/agenda-api/internal/notifier"
	"github.com/jtsistemas/agenda-api/internal/routes"
)

func main() {

	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New()

	db := dbpkg.NewDB(cfg, log)
	cacheStore := cache.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, log, cacheStore)

	// Worker de e-mail roda até o shutdown.
	notifierCtx, stopNotifier := context.WithCancel(context.Background())
	emailNotifier := notifier.NewEmailNotifier(db, cfg, log)
	go emailNotifier.Run(notifierCtx, time.Minute)

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	stopNotifier()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}

	if err := cacheStore.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close redis")
	}
	if err := dbpkg.Close(db); err != nil {
		log.Error().Err(err).Msg("failed to close database")
	}

	log.Info().Msg("bye")
}
