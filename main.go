package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pskill9/PreclinicalResearch/config"
	"github.com/pskill9/PreclinicalResearch/fragment"
	"github.com/pskill9/PreclinicalResearch/handler"
	"github.com/pskill9/PreclinicalResearch/middleware"
	"github.com/pskill9/PreclinicalResearch/pkg/logger"
	"github.com/pskill9/PreclinicalResearch/service"
)

func main() {
	configPath := "config.yaml"
	if p := os.Getenv("CONTACT_CONFIG"); p != "" {
		configPath = p
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		slog.Error("failed to load config", "path", configPath, "error", err)
		os.Exit(1)
	}

	logger.Init(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	slog.Info("configuration loaded successfully", "path", configPath)

	router, err := newRouter(context.Background(), cfg)
	if err != nil {
		slog.Error("failed to initialize server", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Server.Port, "site_root", cfg.Site.Root)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server exited gracefully")
}

func newRouter(ctx context.Context, cfg *config.Config) (*gin.Engine, error) {
	service.InitRowStore(&cfg.Store)
	rows := service.GetRowStore()

	site := os.DirFS(cfg.Site.Root)
	var fetcher fragment.Fetcher = fragment.FSFetcher{FS: site}
	if cfg.Site.FragmentBaseURL != "" {
		fetcher = fragment.NewHTTPFetcher(cfg.Site.FragmentBaseURL)
	}
	loader := fragment.NewLoader(fetcher, cfg.Site.HeaderURL, cfg.Site.FooterURL)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogger("/health"))
	router.Use(middleware.CORS())
	router.Use(middleware.CacheControl("/api", "/hook"))

	limit := middleware.RateLimit(&cfg.RateLimit)

	router.GET("/health", handler.NewHealthHandler(rows).Check)

	if cfg.Webhook.URL != "" {
		webhook := service.NewWebhookClient(cfg.Webhook.URL, time.Duration(cfg.Webhook.TimeoutSeconds)*time.Second)
		api := router.Group("/api", limit)
		api.POST("/contact", handler.NewContactHandler(webhook).Submit)
	} else {
		slog.Warn("contact proxy disabled: no webhook url configured")
	}

	if cfg.Receiver.Enabled {
		receiver, err := newReceiver(ctx, cfg, rows)
		if err != nil {
			return nil, err
		}
		hook := router.Group("/hook", limit)
		hook.POST("/submissions", receiver.HandleSubmission)
	}

	router.NoRoute(handler.NewPageHandler(site, loader).Serve)

	return router, nil
}

func newReceiver(ctx context.Context, cfg *config.Config, rows *service.RowStore) (*handler.ReceiverHandler, error) {
	var archive service.RowAppender
	if cfg.Minio.Enabled() {
		minioSvc, err := service.NewMinioService(&cfg.Minio)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize minio archive: %w", err)
		}
		if err := minioSvc.EnsureBucket(ctx); err != nil {
			return nil, fmt.Errorf("failed to ensure minio bucket: %w", err)
		}
		archive = minioSvc
		slog.Info("archiving submissions to minio", "bucket", cfg.Minio.Bucket, "prefix", cfg.Minio.Prefix)
	}

	var notifier service.Notifier
	if cfg.Receiver.NotificationEmail != "" {
		notifier = service.NewMailNotifier(cfg.Receiver.NotificationEmail, cfg.Receiver.SMTP)
		slog.Info("submission notifications enabled", "to", cfg.Receiver.NotificationEmail)
	}

	spam := service.NewSpamFilter(cfg.Receiver.SpamTerms)
	return handler.NewReceiverHandler(spam, rows, archive, notifier), nil
}
