package app

import (
	"sync/atomic"
	"time"

	"speech-feedback-service/internal/config"
	"speech-feedback-service/internal/observability/logging"
	"speech-feedback-service/internal/service/assess"

	"github.com/rs/zerolog"
)

// Application holds process-wide state for the service.
type Application struct {
	StartupTime time.Time
	Logger      zerolog.Logger
	Cfg         *config.Config
	Assessments *assess.Service

	ready atomic.Bool
}

// New constructs a new Application from the provided configuration. Logging
// must already be initialized.
func New(cfg *config.Config, assessments *assess.Service) *Application {
	a := &Application{
		Cfg:         cfg,
		Assessments: assessments,
		Logger: logging.WithComponent("application").
			With().
			Str("service", cfg.Service.Principal).
			Logger(),
	}

	a.Logger.Info().
		Str("sttProvider", cfg.STT.Provider).
		Bool("remoteFeedback", cfg.Feedback.RemoteURL != "").
		Bool("kafka", cfg.Kafka.Enabled).
		Msg("Speech feedback application created")
	return a
}

// Start marks the application ready to serve traffic.
func (a *Application) Start() error {
	a.StartupTime = time.Now().UTC()
	a.ready.Store(true)

	a.Logger.Info().
		Str("method", "Start").
		Time("startupTime", a.StartupTime).
		Msg("Speech feedback service starting")
	return nil
}

// Ready reports whether Start has run and Shutdown has not.
func (a *Application) Ready() bool {
	return a.ready.Load()
}

// Shutdown withdraws readiness so load balancers drain traffic.
func (a *Application) Shutdown() {
	a.ready.Store(false)
	a.Logger.Info().
		Str("method", "Shutdown").
		Dur("uptime", time.Since(a.StartupTime)).
		Msg("Speech feedback service shutting down")
}
