package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"speech-feedback-service/internal/app"
	"speech-feedback-service/internal/config"
	"speech-feedback-service/internal/events"
	"speech-feedback-service/internal/feedback"
	apihttp "speech-feedback-service/internal/http"
	"speech-feedback-service/internal/observability"
	"speech-feedback-service/internal/observability/logging"
	"speech-feedback-service/internal/schema"
	"speech-feedback-service/internal/service/assess"
	"speech-feedback-service/internal/service/stt"
	"speech-feedback-service/internal/service/stt/google"
	"speech-feedback-service/internal/service/stt/mock"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg := config.Load()

	logging.Init(logging.Config{
		Level:  cfg.Observability.LogLevel,
		Format: cfg.Observability.LogFormat,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Create Kafka publisher with separate topics for completed and degraded events
	publisher := events.New(&events.Config{
		Enabled:        cfg.Kafka.Enabled,
		Brokers:        cfg.Kafka.Brokers,
		TopicCompleted: cfg.Kafka.TopicCompleted,
		TopicDegraded:  cfg.Kafka.TopicDegraded,
		Principal:      cfg.Kafka.Principal,
	})
	defer publisher.Close()

	transcriber, err := newTranscriber(ctx, cfg.STT)
	if err != nil {
		log.Fatal().Err(err).Str("provider", cfg.STT.Provider).Msg("Failed to create STT transcriber")
	}
	defer transcriber.Close()

	orchestrator := feedback.NewOrchestrator(
		feedback.DefaultSelector(),
		newRemote(cfg.Feedback),
		cfg.Feedback.FallbackMessage,
	)

	svc := assess.New(
		orchestrator,
		publisher,
		schema.New(schema.Limits{
			MaxTextChars:  cfg.Limits.MaxTextChars,
			MaxAudioBytes: cfg.Limits.MaxAudioBytes,
		}),
		transcriber,
		assess.Config{NearMissThreshold: cfg.NearMiss.Threshold},
	)

	application := app.New(cfg, svc)

	apiServer := &http.Server{
		Addr:              ":" + cfg.Service.HTTPPort,
		Handler:           apihttp.NewRouter(application),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	obsServer := observability.NewServer(cfg.Observability.MetricsAddr, application.Ready)

	grpcServer := grpc.NewServer(
		grpc.UnaryInterceptor(observability.UnaryServerInterceptor()),
		grpc.StreamInterceptor(observability.StreamServerInterceptor()),
	)

	// Register gRPC health check service
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)

	// Enable gRPC reflection for debugging tools like grpcurl
	reflection.Register(grpcServer)

	lis, err := net.Listen("tcp", ":"+cfg.Service.GRPCPort)
	if err != nil {
		log.Fatal().Err(err).Str("port", cfg.Service.GRPCPort).Msg("Failed to listen")
	}

	if err := application.Start(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", apiServer.Addr).Msg("Speech feedback HTTP API started")
		if err := apiServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		log.Info().Str("port", cfg.Service.GRPCPort).Msg("gRPC health server started")
		return grpcServer.Serve(lis)
	})
	g.Go(obsServer.ListenAndServe)

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Shutting down servers")

		application.Shutdown()
		healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_NOT_SERVING)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		grpcServer.GracefulStop()
		if err := apiServer.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("HTTP API shutdown error")
		}
		if err := obsServer.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("Observability server shutdown error")
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Server error")
		os.Exit(1)
	}
	log.Info().Msg("Shutdown complete")
}

func newTranscriber(ctx context.Context, cfg config.STTConfig) (stt.Transcriber, error) {
	switch cfg.Provider {
	case "google":
		adapter, err := google.New(ctx, google.Config{
			LanguageCode:  cfg.LanguageCode,
			SampleRateHz:  cfg.SampleRateHz,
			AudioEncoding: cfg.AudioEncoding,
		})
		if err != nil {
			return nil, err
		}
		return adapter, nil
	case "mock", "":
		return mock.New(), nil
	default:
		log.Warn().Str("provider", cfg.Provider).Msg("Unknown STT provider, using mock")
		return mock.New(), nil
	}
}

// newRemote always returns a client. Without an endpoint every Fetch fails
// with ErrNotConfigured, so unmatched requests still take the remote tier and
// receive the fallback message.
func newRemote(cfg config.FeedbackConfig) *feedback.RemoteClient {
	if cfg.RemoteURL == "" {
		log.Warn().Msg("FEEDBACK_REMOTE_URL not set, unmatched requests will get the fallback message")
	}
	return feedback.NewRemoteClient(feedback.RemoteConfig{
		URL:     cfg.RemoteURL,
		Timeout: cfg.RemoteTimeout,
		Breaker: feedback.BreakerConfig{
			Enabled:     cfg.BreakerEnabled,
			MaxFailures: uint32(cfg.BreakerFailures),
			Cooldown:    cfg.BreakerCooldown,
		},
	})
}
