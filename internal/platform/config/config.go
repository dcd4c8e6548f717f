package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StoreBackendPostgres = "postgres"
	StoreBackendMemory   = "memory"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	// StoreBackend selects the ledger store: postgres or memory.
	StoreBackend string

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string
	// EnableDevTokens exposes POST /auth/token, which signs a token for any owner id.
	EnableDevTokens bool
	FrontendBaseURL string

	PosthogAPIKey string
	AMQPURL       string
	AMQPExchange  string

	// OperationsRateLimit uses the ulule limiter format, e.g. "30-M".
	OperationsRateLimit string

	StoreCommitMaxRetries     uint64
	StoreCommitInitialBackoff time.Duration
	StoreCommitMaxBackoff     time.Duration

	PendingSweepInterval time.Duration
	PendingMaxAge        time.Duration
}

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("STORE_BACKEND", StoreBackendPostgres)
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_EXPIRY_DURATION", "1h")
	v.SetDefault("JWT_ISSUER", "wallet-ledger-app")
	v.SetDefault("ENABLE_DEV_TOKENS", false)
	v.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("AMQP_URL", "")
	v.SetDefault("AMQP_EXCHANGE", "wallet.operations")
	v.SetDefault("OPERATIONS_RATE_LIMIT", "60-M")
	v.SetDefault("STORE_COMMIT_MAX_RETRIES", 3)
	v.SetDefault("STORE_COMMIT_INITIAL_BACKOFF", "50ms")
	v.SetDefault("STORE_COMMIT_MAX_BACKOFF", "1s")
	v.SetDefault("PENDING_SWEEP_INTERVAL", "1m")
	v.SetDefault("PENDING_MAX_AGE", "5m")

	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:         v.GetString("PGSQL_URL"),
		Port:                v.GetString("PORT"),
		StoreBackend:        strings.ToLower(v.GetString("STORE_BACKEND")),
		IsProduction:        v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:       v.GetBool("ENABLE_DB_CHECK"),
		JWTSecret:           v.GetString("JWT_SECRET"),
		JWTIssuer:           v.GetString("JWT_ISSUER"),
		EnableDevTokens:     v.GetBool("ENABLE_DEV_TOKENS"),
		FrontendBaseURL:     v.GetString("FRONTEND_BASE_URL"),
		PosthogAPIKey:       v.GetString("POSTHOG_API_KEY"),
		AMQPURL:             v.GetString("AMQP_URL"),
		AMQPExchange:        v.GetString("AMQP_EXCHANGE"),
		OperationsRateLimit: v.GetString("OPERATIONS_RATE_LIMIT"),
	}

	switch cfg.StoreBackend {
	case StoreBackendPostgres:
		if cfg.DatabaseURL == "" {
			log.Println("Warning: PGSQL_URL environment variable not set.")
		}
	case StoreBackendMemory:
		log.Println("Warning: STORE_BACKEND=memory, state is lost on restart.")
	default:
		log.Printf("Warning: Invalid value for STORE_BACKEND ('%s'). Defaulting to %s.\n", cfg.StoreBackend, StoreBackendPostgres)
		cfg.StoreBackend = StoreBackendPostgres
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = "wallet-ledger-app"
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", cfg.JWTIssuer)
	}
	if cfg.EnableDevTokens && cfg.IsProduction {
		log.Println("Warning: ENABLE_DEV_TOKENS is ignored in production.")
		cfg.EnableDevTokens = false
	}

	cfg.JWTExpiryDuration = durationOrDefault(v, "JWT_EXPIRY_DURATION", time.Hour)
	cfg.StoreCommitInitialBackoff = durationOrDefault(v, "STORE_COMMIT_INITIAL_BACKOFF", 50*time.Millisecond)
	cfg.StoreCommitMaxBackoff = durationOrDefault(v, "STORE_COMMIT_MAX_BACKOFF", time.Second)
	cfg.PendingSweepInterval = durationOrDefault(v, "PENDING_SWEEP_INTERVAL", time.Minute)
	cfg.PendingMaxAge = durationOrDefault(v, "PENDING_MAX_AGE", 5*time.Minute)

	retries := v.GetInt("STORE_COMMIT_MAX_RETRIES")
	if retries < 0 {
		log.Printf("Warning: Invalid value for STORE_COMMIT_MAX_RETRIES (%d). Defaulting to 3.\n", retries)
		retries = 3
	}
	cfg.StoreCommitMaxRetries = uint64(retries)

	return cfg, nil
}

// durationOrDefault parses key as a duration (e.g. "60m", "1h"), falling back to def.
func durationOrDefault(v *viper.Viper, key string, def time.Duration) time.Duration {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def.String())
		}
		return def
	}
	return d
}
