package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/medialib/gallerybot/internal/codec"
	"github.com/medialib/gallerybot/internal/config"
	dbRedis "github.com/medialib/gallerybot/internal/db/redis"
	logpkg "github.com/medialib/gallerybot/internal/logger"
	"github.com/medialib/gallerybot/internal/metrics"
	catalogrepo "github.com/medialib/gallerybot/internal/repository/catalog"
	identityrepo "github.com/medialib/gallerybot/internal/repository/identity"
	reprrepo "github.com/medialib/gallerybot/internal/repository/representation"
	"github.com/medialib/gallerybot/internal/transport/ops"
	"github.com/medialib/gallerybot/internal/transport/telegram"
	healthuc "github.com/medialib/gallerybot/internal/usecase/health"
	identityuc "github.com/medialib/gallerybot/internal/usecase/identity"
	pickeruc "github.com/medialib/gallerybot/internal/usecase/picker"
	"github.com/medialib/gallerybot/internal/usecase/policy"
	resolveruc "github.com/medialib/gallerybot/internal/usecase/resolver"
	taginfouc "github.com/medialib/gallerybot/internal/usecase/taginfo"
	uploaderuc "github.com/medialib/gallerybot/internal/usecase/uploader"
	"github.com/medialib/gallerybot/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting gallerybot",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("ops_port", cfg.Ops.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
		zap.String("media_root", cfg.Media.Root),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
		DB:       cfg.Database.DB,
	})
	if err != nil {
		logger.Fatal("Failed to create catalog store", zap.Error(err))
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Catalog store not ready", zap.Error(err))
	}
	logger.Info("Connected to catalog store")

	// Register pipeline metrics explicitly (no init())
	metrics.RegisterCommandMetrics()

	// Repositories
	catalogRepo := catalogrepo.New(store)
	representationRepo := reprrepo.New(store)
	identityRepo := identityrepo.New(store, cfg.DefaultTier())

	// Use case services
	transcoder := codec.NewTranscoder(cfg.Media.ThumbnailMaxEdge, cfg.Media.WebPQuality)
	resolverSvc := resolveruc.New(representationRepo, transcoder, resolveruc.Config{
		MediaRoot:          cfg.Media.Root,
		DescriptionLimit:   cfg.Media.DescriptionLimit,
		OriginURLTemplates: cfg.Media.OriginURLTemplates,
	})
	composer := policy.New(cfg.Policy.BlockedWords, cfg.Policy.OrientationWords)
	pickerSvc := pickeruc.New(composer, catalogRepo, catalogRepo, identityRepo, resolverSvc)
	sessionSvc := identityuc.New(identityRepo)
	tagSvc := taginfouc.New(catalogRepo)
	uploadSvc := uploaderuc.New(identityRepo, catalogRepo, representationRepo, cfg.Media.Root)
	healthSvc := healthuc.New(store, mediaRootChecker(cfg.Media.Root))

	// Telegram transport
	handler := telegram.NewHandler(sessionSvc, pickerSvc, tagSvc, uploadSvc, logger)
	tgBot, err := telegram.NewBot(cfg.Telegram.Token, handler)
	if err != nil {
		logger.Fatal("Failed to create Telegram bot", zap.Error(err))
	}

	// Operational HTTP server
	addr := fmt.Sprintf(":%d", cfg.Ops.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      ops.NewServer(healthSvc, logger).Router(),
		ReadTimeout:  time.Duration(cfg.Ops.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.Ops.WriteTimeoutSec) * time.Second,
	}

	go func() {
		logger.Info("Starting ops HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Ops HTTP server error", zap.Error(err))
		}
	}()

	go func() {
		logger.Info("Starting Telegram long polling")
		tgBot.Start(ctx)
	}()

	<-ctx.Done()
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Ops.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Stopped gracefully")
}

// mediaRootChecker verifies the media tree is mounted and readable.
type mediaRootChecker string

func (m mediaRootChecker) CheckMedia() error {
	info, err := os.Stat(string(m))
	if err != nil {
		return fmt.Errorf("media root: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("media root %s is not a directory", string(m))
	}
	return nil
}
