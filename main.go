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
	log "github.com/sirupsen/logrus"

	"github.com/devteam-creator/hushryd-app-sub001/internal/cache"
	intconfig "github.com/devteam-creator/hushryd-app-sub001/internal/config"
	intdb "github.com/devteam-creator/hushryd-app-sub001/internal/db"
	"github.com/devteam-creator/hushryd-app-sub001/internal/events"
	router "github.com/devteam-creator/hushryd-app-sub001/internal/http"
	"github.com/devteam-creator/hushryd-app-sub001/internal/utils"
)

func main() {
	env, err := intconfig.LoadEnv()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	utils.SetupLogger(env.LogLevel)
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	db, err := intconfig.ConnectDB(env)
	if err != nil {
		log.Fatalf("connect db: %v", err)
	}
	defer intconfig.CloseDB()

	startCtx, cancelStart := context.WithTimeout(context.Background(), 10*time.Second)
	if err := intdb.EnsureSchema(startCtx, db); err != nil {
		cancelStart()
		log.Fatalf("schema: %v", err)
	}

	opts := router.Options{Events: events.NopPublisher{}}

	if env.RedisAddr != "" {
		rdb, err := cache.NewClient(startCtx, cache.Config{Addr: env.RedisAddr})
		if err != nil {
			log.WithError(err).Warn("redis unavailable, Idempotency-Key disabled")
		} else {
			defer rdb.Close()
			opts.Idempotency = cache.NewRedisIdempotency(rdb)
		}
	}
	cancelStart()

	if len(env.KafkaBrokers) > 0 {
		kp := events.NewKafkaPublisher(env.KafkaBrokers, env.KafkaTopic)
		defer func() {
			if err := kp.Close(); err != nil {
				log.WithError(err).Warn("close kafka publisher")
			}
		}()
		opts.Events = kp
	}

	r := router.NewRouter(env, opts)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Infof("server listening on %s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("server shutdown failed: %v", err)
		return
	}

	log.Info("server stopped")
}
