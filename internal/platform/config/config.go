package config

import (
	"os"
	"strconv"
	"time"
)

// Config captures everything the server needs from the environment so main stays lean.
type Config struct {
	Addr     string
	LogLevel string

	// HS256 key used to validate inbound identity tokens.
	JWTSigningKey string

	// Postgres holds the user documents, the reference tables, and the audit outbox.
	PostgresDSN string

	Redis RedisConfig

	Kafka KafkaConfig

	// Base URLs of the onboarding-progress service and the risk engine.
	OnboardingURL string
	RiskEngineURL string

	// Per-call timeout applied to the onboarding and risk HTTP clients.
	DownstreamTimeout time.Duration
}

// RedisConfig configures the account block-list store.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig configures the downstream notification dispatcher.
type KafkaConfig struct {
	Brokers []string
	// Topic consumed by the domestic settlement bridge.
	SettlementTopic string
	// Topic consumed by the cross-border custody bridge.
	CustodyTopic string
	// How long a record may sit unacknowledged before the produce fails.
	DeliveryTimeout time.Duration
}

// FromEnv builds a Config from environment variables.
func FromEnv() Config {
	return Config{
		Addr:          envOr("EMEND_ADDR", ":8080"),
		LogLevel:      envOr("EMEND_LOG_LEVEL", "info"),
		JWTSigningKey: envOr("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		PostgresDSN:   envOr("POSTGRES_DSN", "postgres://localhost:5432/emend?sslmode=disable"),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envIntOr("REDIS_POOL_SIZE", 10),
			MinIdleConns: envIntOr("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Kafka: KafkaConfig{
			Brokers:         splitNonEmpty(envOr("KAFKA_BROKERS", "localhost:9092")),
			SettlementTopic: envOr("KAFKA_SETTLEMENT_TOPIC", "registration.settlement-updates"),
			CustodyTopic:    envOr("KAFKA_CUSTODY_TOPIC", "registration.custody-updates"),
			DeliveryTimeout: time.Duration(envIntOr("KAFKA_DELIVERY_TIMEOUT_SECONDS", 30)) * time.Second,
		},
		OnboardingURL:     envOr("ONBOARDING_URL", "http://localhost:8081"),
		RiskEngineURL:     envOr("RISK_ENGINE_URL", "http://localhost:8082"),
		DownstreamTimeout: time.Duration(envIntOr("DOWNSTREAM_TIMEOUT_SECONDS", 10)) * time.Second,
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func splitNonEmpty(s string) []string {
	var out []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ',' {
			if part := s[start:i]; part != "" {
				out = append(out, part)
			}
			start = i + 1
		}
	}
	return out
}
