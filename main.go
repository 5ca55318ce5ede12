package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/cristianadrielbraun/beam/internal/api"
	"github.com/cristianadrielbraun/beam/internal/config"
	"github.com/cristianadrielbraun/beam/internal/export"
	"github.com/cristianadrielbraun/beam/internal/handlers"
	"github.com/cristianadrielbraun/beam/internal/logger"
	"github.com/cristianadrielbraun/beam/internal/render"
	"github.com/cristianadrielbraun/beam/internal/session"
	"github.com/cristianadrielbraun/beam/internal/wizard"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(logger.Config{
		Debug:     cfg.Settings.Debug,
		LogToFile: cfg.Settings.LogToFile,
		LogsDir:   cfg.Settings.LogsDir,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	log := logger.Log
	defer func() { _ = log.Sync() }()

	store, err := sessionStore(cfg)
	if err != nil {
		log.Fatalw("session store unavailable", "store", cfg.Session.Store, "error", err)
	}
	sessions := session.NewManager(store,
		session.WithCookie(cfg.Session.Cookie),
		session.WithTTL(cfg.Session.TTL),
		session.WithSecureCookie(cfg.Session.Secure),
		session.WithLogger(logger.Named("session")),
	)

	backend := api.New(cfg.API.BaseURL,
		api.WithTimeout(cfg.API.Timeout),
		api.WithLogger(logger.Named("api")),
		api.WithUnauthorizedHook(sessions.Expire),
	)

	blobs := render.NewBlobStore("/dashboard/blob")
	renderLog := logger.Named("render")
	wizards := wizard.NewRegistry(blobs,
		wizard.WithLogger(renderLog),
		wizard.WithIdleTTL(cfg.Session.TTL),
		wizard.WithPreviewOptions(render.WithSize(cfg.Preview.Size, cfg.Preview.Size)),
		wizard.WithLogoOptions(render.WithFetchTimeout(cfg.Logo.FetchTimeout)),
	)
	exporter := export.New(
		export.WithPadding(cfg.Export.Padding),
		export.WithFooterHeight(cfg.Export.FooterHeight),
		export.WithLogger(logger.Named("export")),
	)

	if !cfg.Settings.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.GinMiddleware(logger.Named("http")))

	h := handlers.New(handlers.Deps{
		Log:         logger.Named("http"),
		Backend:     backend,
		Sessions:    sessions,
		Wizards:     wizards,
		Blobs:       blobs,
		Exporter:    exporter,
		PreviewSize: cfg.Preview.Size,
	})
	h.Register(r)

	log.Infow("beam listening", "addr", cfg.Server.Addr, "api", cfg.API.BaseURL, "sessions", cfg.Session.Store)
	if err := r.Run(cfg.Server.Addr); err != nil {
		log.Fatalw("server stopped", "error", err)
	}
}

func sessionStore(cfg *config.Config) (session.Store, error) {
	if cfg.Session.Store != "redis" {
		return session.NewMemoryStore(cfg.Session.TTL), nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client, err := session.Dial(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, err
	}
	return session.NewRedisStore(client, cfg.Session.TTL), nil
}
