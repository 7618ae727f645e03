package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"callportal_backend/internal/agents"
	"callportal_backend/internal/auth"
	"callportal_backend/internal/calls"
	apphttp "callportal_backend/internal/http"
	"callportal_backend/internal/http/router"
	"callportal_backend/internal/insights"
	"callportal_backend/internal/kb"
	"callportal_backend/internal/live"
	"callportal_backend/internal/numbers"
	"callportal_backend/platform/config"
	"callportal_backend/platform/logger"
	"callportal_backend/platform/validator"
	"callportal_backend/platform/vapi"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	val := validator.New()

	// Per-request upstream clients bound to the caller's API token.
	clientFactory := auth.Factory(func(token string) *vapi.Client {
		return vapi.NewClient(token, vapi.Config{BaseURL: cfg.GetVapiBaseURL()})
	})

	// ========================================================================
	// Domain Modules
	// ========================================================================

	callsModule := calls.NewModule(val, log)
	agentsModule := agents.NewModule(val, log)
	liveModule := live.NewModule(cfg, log)
	numbersModule := numbers.NewModule(log)
	kbModule := kb.NewModule(cfg, log)

	insightsModule, err := insights.NewModule(cfg, log)
	if err != nil {
		log.Error("failed to initialize insights module", "error", err)
		panic("failed to initialize insights module: " + err.Error())
	}

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:        cfg,
		Logger:        log,
		ClientFactory: clientFactory,
		Modules: []apphttp.Module{
			callsModule,
			agentsModule,
			liveModule,
			numbersModule,
			kbModule,
			insightsModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}
