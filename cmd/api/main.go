package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/servitec-peru/go-admin-backend/config"
	"github.com/servitec-peru/go-admin-backend/internal/bootstrap"
	"github.com/servitec-peru/go-admin-backend/internal/messaging"
	"github.com/servitec-peru/go-admin-backend/internal/platform/logger"
)

const serviceName = "go-admin-backend"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	environment := cfg.App.Environment
	if cfg.IsProduction() {
		environment = "production"
	}

	zlog, err := logger.New(environment, cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zlog.Sync()

	bootstrap.SetGinMode(environment)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fb, err := bootstrap.InitFirebase(ctx, &cfg.Firebase)
	if err != nil {
		zlog.Fatal("firebase init failed", zap.Error(err))
	}
	defer fb.Firestore.Close()

	rdb, err := bootstrap.OpenRedis(ctx, &cfg.Redis)
	if err != nil {
		zlog.Fatal("redis connect failed", zap.Error(err))
	}
	defer rdb.Close()

	messages, err := messaging.LoadMessages(cfg.App.MessagesPath)
	if err != nil {
		zlog.Fatal("messages load failed", zap.Error(err))
	}

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: serviceName,
		Version:     cfg.App.Version,
		Logger:      zlog,
		Firestore:   fb.Firestore,
		Redis:       rdb,
		Auth:        fb.Auth,
		Bucket:      fb.Bucket,
		Messages:    messages,
		Cfg:         cfg,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		zlog.Info("server listening",
			zap.String("port", cfg.Server.Port),
			zap.String("environment", environment),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("forced shutdown", zap.Error(err))
	}

	zlog.Info("server stopped")
}
