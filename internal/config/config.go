package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Service       ServiceConfig
	Feedback      FeedbackConfig
	STT           STTConfig
	Limits        LimitsConfig
	Kafka         KafkaConfig
	Observability ObservabilityConfig
	NearMiss      NearMissConfig
}

type ServiceConfig struct {
	Principal string
	HTTPPort  string
	GRPCPort  string
}

type FeedbackConfig struct {
	RemoteURL       string
	RemoteTimeout   time.Duration
	FallbackMessage string
	BreakerEnabled  bool
	BreakerFailures int
	BreakerCooldown time.Duration
}

type STTConfig struct {
	Provider      string // mock, google
	LanguageCode  string
	SampleRateHz  int
	AudioEncoding string
}

type LimitsConfig struct {
	MaxTextChars  int
	MaxAudioBytes int64
}

type KafkaConfig struct {
	Enabled        bool
	Brokers        []string
	TopicCompleted string
	TopicDegraded  string
	Principal      string
}

type ObservabilityConfig struct {
	LogLevel    string
	LogFormat   string
	MetricsAddr string
}

type NearMissConfig struct {
	Threshold float64
}

func Load() *Config {
	principal := envOrDefault("SERVICE_PRINCIPAL", "svc-speech-feedback")

	return &Config{
		Service: ServiceConfig{
			Principal: principal,
			HTTPPort:  envOrDefault("HTTP_PORT", "8080"),
			GRPCPort:  envOrDefault("GRPC_PORT", "50051"),
		},
		Feedback: FeedbackConfig{
			RemoteURL:       envOrDefault("FEEDBACK_REMOTE_URL", ""),
			RemoteTimeout:   envOrDefaultDuration("FEEDBACK_REMOTE_TIMEOUT", 10*time.Second),
			FallbackMessage: envOrDefault("FEEDBACK_FALLBACK_MESSAGE", ""),
			BreakerEnabled:  envOrDefaultBool("FEEDBACK_BREAKER_ENABLED", true),
			BreakerFailures: envOrDefaultPositiveInt("FEEDBACK_BREAKER_FAILURES", 5),
			BreakerCooldown: envOrDefaultDuration("FEEDBACK_BREAKER_COOLDOWN", 30*time.Second),
		},
		STT: STTConfig{
			Provider:      envOrDefault("STT_PROVIDER", "mock"),
			LanguageCode:  envOrDefault("STT_LANGUAGE_CODE", "en-US"),
			SampleRateHz:  envOrDefaultInt("STT_SAMPLE_RATE_HZ", 16000),
			AudioEncoding: envOrDefault("STT_AUDIO_ENCODING", "LINEAR16"),
		},
		Limits: LimitsConfig{
			MaxTextChars:  envOrDefaultInt("LIMIT_MAX_TEXT_CHARS", 1000),
			MaxAudioBytes: envOrDefaultInt64("LIMIT_MAX_AUDIO_BYTES", 5*1024*1024),
		},
		Kafka: KafkaConfig{
			Enabled:        envOrDefaultBool("KAFKA_ENABLED", false),
			Brokers:        envOrDefaultList("KAFKA_BROKERS", nil),
			TopicCompleted: envOrDefault("KAFKA_TOPIC_COMPLETED", "learning.assessment.completed"),
			TopicDegraded:  envOrDefault("KAFKA_TOPIC_DEGRADED", "learning.feedback.degraded"),
			Principal:      envOrDefault("KAFKA_PRINCIPAL", principal),
		},
		Observability: ObservabilityConfig{
			LogLevel:    envOrDefault("LOG_LEVEL", "info"),
			LogFormat:   envOrDefault("LOG_FORMAT", "json"),
			MetricsAddr: envOrDefault("METRICS_ADDR", ":9090"),
		},
		NearMiss: NearMissConfig{
			Threshold: envOrDefaultFloat("NEAR_MISS_THRESHOLD", 0.85),
		},
	}
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// envOrDefaultPositiveInt is envOrDefaultInt that also rejects values below 1.
func envOrDefaultPositiveInt(key string, def int) int {
	if n := envOrDefaultInt(key, def); n > 0 {
		return n
	}
	return def
}

func envOrDefaultInt64(key string, def int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return def
	}
	return n
}

func envOrDefaultFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func envOrDefaultBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func envOrDefaultDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

// envOrDefaultList splits a comma-separated value, dropping blank entries.
func envOrDefaultList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
