package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	platformstrings "loanflow/pkg/platform/strings"
)

// Server captures process-level configuration. Policy numbers live here too so
// underwriting thresholds can be tuned without a code change.
type Server struct {
	Addr string

	// PostgresURL selects the durable session/sanction stores. Empty means
	// in-memory stores (dev and tests).
	PostgresURL string

	// RedisURL selects the Redis-backed document store. Empty means in-memory.
	RedisURL string

	// KafkaBrokers enables the Kafka audit sink when non-empty.
	KafkaBrokers []string
	AuditTopic   string

	// Underwriting policy overrides. Zero values fall back to package
	// defaults in internal/underwriting.
	MinScoreFloor       int
	MaxAmountMultiplier float64
	AffordabilityRatio  float64
}

// ShutdownTimeout bounds graceful shutdown on SIGINT.
var ShutdownTimeout = 10 * time.Second

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("LOANFLOW_ADDR")
	if addr == "" {
		addr = ":8000"
	}

	topic := os.Getenv("LOANFLOW_AUDIT_TOPIC")
	if topic == "" {
		topic = "loanflow.audit"
	}

	var brokers []string
	if raw := os.Getenv("LOANFLOW_KAFKA_BROKERS"); raw != "" {
		brokers = platformstrings.DedupeAndTrim(strings.Split(raw, ","))
	}

	return Server{
		Addr:                addr,
		PostgresURL:         os.Getenv("LOANFLOW_POSTGRES_URL"),
		RedisURL:            os.Getenv("LOANFLOW_REDIS_URL"),
		KafkaBrokers:        brokers,
		AuditTopic:          topic,
		MinScoreFloor:       envInt("LOANFLOW_MIN_SCORE_FLOOR"),
		MaxAmountMultiplier: envFloat("LOANFLOW_MAX_AMOUNT_MULTIPLIER"),
		AffordabilityRatio:  envFloat("LOANFLOW_AFFORDABILITY_RATIO"),
	}
}

func envInt(key string) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return 0
	}
	return v
}

func envFloat(key string) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return 0
	}
	return v
}
