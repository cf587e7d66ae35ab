package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures process-level configuration. FromEnv keeps main lean; every
// backing service is optional so the workbench runs self-contained with
// in-memory stores and file snapshots by default.
type Config struct {
	Addr          string
	DataDir       string
	JWTSigningKey string
	SessionTTL    time.Duration

	Redis    RedisConfig
	Postgres PostgresConfig
	Kafka    KafkaConfig
}

// RedisConfig configures the optional Redis session store.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// PostgresConfig configures the optional Postgres store variants.
type PostgresConfig struct {
	DSN string
}

// KafkaConfig configures the optional audit-trail Kafka sink.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() Config {
	addr := os.Getenv("WORKBENCH_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	dataDir := os.Getenv("WORKBENCH_DATA_DIR")
	if dataDir == "" {
		dataDir = "./data"
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	sessionTTL := 12 * time.Hour
	if raw := os.Getenv("WORKBENCH_SESSION_TTL"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			sessionTTL = d
		}
	}

	var brokers []string
	if raw := os.Getenv("WORKBENCH_KAFKA_BROKERS"); raw != "" {
		brokers = strings.Split(raw, ",")
	}
	topic := os.Getenv("WORKBENCH_KAFKA_TOPIC")
	if topic == "" {
		topic = "workbench.audit-trail"
	}

	return Config{
		Addr:          addr,
		DataDir:       dataDir,
		JWTSigningKey: jwtSigningKey,
		SessionTTL:    sessionTTL,
		Redis: RedisConfig{
			URL:          os.Getenv("WORKBENCH_REDIS_URL"),
			PoolSize:     envInt("WORKBENCH_REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("WORKBENCH_REDIS_MIN_IDLE", 2),
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Postgres: PostgresConfig{DSN: os.Getenv("WORKBENCH_POSTGRES_DSN")},
		Kafka:    KafkaConfig{Brokers: brokers, Topic: topic},
	}
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
