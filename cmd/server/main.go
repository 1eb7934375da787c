package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/shenlye/tricore-api/config"
	"github.com/shenlye/tricore-api/internal/api/handler"
	"github.com/shenlye/tricore-api/internal/api/router"
	"github.com/shenlye/tricore-api/internal/repository"
	"github.com/shenlye/tricore-api/internal/service"
	"github.com/shenlye/tricore-api/pkg/database"
	"github.com/shenlye/tricore-api/pkg/logger"
	"github.com/shenlye/tricore-api/pkg/tracing"
)

// @title Tricore API
// @version 1.0
// @description 个人博客与数字花园后端
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger.Init(cfg.Log.Level, cfg.Server.Mode == "release")
	defer logger.Sync()

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Sentry.DSN}); err != nil {
			logger.Warn("sentry init failed", zap.Error(err))
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Trace.Endpoint != "" {
		shutdown, err := tracing.Init(ctx, "tricore-api", cfg.Trace.Endpoint)
		if err != nil {
			logger.Warn("tracing init failed", zap.Error(err))
		} else {
			defer shutdown(context.Background())
		}
	}

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Fatal("database init failed", zap.Error(err))
	}

	var cache *redis.Client
	if cfg.Redis.Addr != "" {
		cache = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := cache.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unreachable, external cache and shared rate limit disabled", zap.Error(err))
			cache = nil
		}
	}

	// repositories & services
	postRepo := repository.NewPostRepository(db)
	postLinkRepo := repository.NewPostLinkRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	tagRepo := repository.NewTagRepository(db)
	memoRepo := repository.NewMemoRepository(db)
	friendRepo := repository.NewFriendLinkRepository(db)
	userRepo := repository.NewUserRepository(db)

	postSvc := service.NewPostService(postRepo, categoryRepo, tagRepo)
	linkSvc := service.NewPostLinkService(postRepo, postLinkRepo)
	memoSvc := service.NewMemoService(memoRepo)
	friendSvc := service.NewFriendLinkService(friendRepo)
	authSvc := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expire)
	taxonomySvc := service.NewTaxonomyService(categoryRepo, tagRepo)
	bangumiSvc := service.NewBangumiService(cache, cfg.Bangumi.Username, cfg.Bangumi.CacheTTL)

	if cfg.Admin.Password != "" {
		if err := authSvc.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Email, cfg.Admin.Password); err != nil {
			logger.Fatal("admin bootstrap failed", zap.Error(err))
		}
	}

	h := handler.New(postSvc, linkSvc, memoSvc, friendSvc, authSvc, taxonomySvc, bangumiSvc)
	engine := router.New(cfg, h, cache)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
