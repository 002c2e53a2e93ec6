package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/csg33k/contact-form/internal/bootstrap"
	"github.com/csg33k/contact-form/internal/handlers"
	"github.com/csg33k/contact-form/internal/templates"
)

func main() {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger := bootstrap.InitLogger(cfg.Log, os.Stdout)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	h := handlers.New(bootstrap.NewRelay(cfg.Contact), handlers.Options{
		Endpoint:  cfg.Contact.Endpoint,
		Hidden:    cfg.Site.Hidden,
		Messages:  cfg.Site.Messages,
		HideAfter: cfg.Contact.HideAfter,
		Page: templates.PageData{
			Title:   cfg.Site.Title,
			Heading: cfg.Site.Heading,
			Intro:   cfg.Site.Intro,
		},
		Logger: logger,
	})

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           h.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("contact form server running", "addr", cfg.HTTP.Addr, "endpoint", cfg.Contact.Endpoint)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown failed", "err", err)
	}
}
