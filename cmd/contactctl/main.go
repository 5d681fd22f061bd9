// Command contactctl fills in and sends the contact form from a terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/pskill9/PreclinicalResearch/config"
	"github.com/pskill9/PreclinicalResearch/form"
	"github.com/pskill9/PreclinicalResearch/pkg/logger"
	"github.com/pskill9/PreclinicalResearch/service"
)

const placeholderURL = "YOUR_GOOGLE_APPS_SCRIPT_URL"

func main() {
	configPath := flag.String("config", "config.yaml", "path to the configuration file")
	scriptURL := flag.String("url", "", "webhook URL, overrides form.script_url")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "path", *configPath, "error", err)
		os.Exit(1)
	}

	logger.Init(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stderr,
	})

	target := cfg.Form.ScriptURL
	if *scriptURL != "" {
		target = *scriptURL
	}
	if target == "" || target == placeholderURL {
		slog.Error("no webhook url configured", "hint", "set form.script_url or pass -url")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	client := service.NewWebhookClient(target, time.Duration(cfg.Form.TimeoutSeconds)*time.Second)
	s := newSession(surveyPrompter{}, client, os.Stdout, form.Options{
		BannerDuration: bannerDuration(cfg.Form.BannerDurationMS),
	})

	if err := s.run(ctx); err != nil {
		if errors.Is(err, errAborted) || errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		slog.Error("contact form not sent", "error", err)
		os.Exit(1)
	}
}
