package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	GinMode     string
	CORSOrigins []string

	// Scheme catalogue
	SchemeDataPath string

	// Query limits
	MinQueryLength int
	MaxQueryLength int

	// Language support
	SupportedLanguages []string
	DefaultLanguage    string

	// Response limits (2G-class links, hard byte ceiling)
	MaxSchemeResults int
	MaxResponseBytes int
	MaxActionSteps   int

	// Session management
	SessionTimeout   time.Duration
	MaxHistoryLength int
	SweepInterval    time.Duration

	// OTP authentication
	OTPCooldown time.Duration
	OTPExpiry   time.Duration

	// Session tokens issued on OTP verification
	TokenSecret    string
	TokenExpiresIn time.Duration

	// Redis Configuration (rate limiting + optional networked stores)
	RedisEnabled  bool
	RedisURL      string
	RedisPassword string
	RedisDB       int

	// Store backend: "memory" (default) or "redis"
	StoreBackend string

	// Rate limiting
	RateLimitReqs   int
	RateLimitWindow int

	// Tracing
	TracingEnabled bool
	OTLPEndpoint   string
}

func LoadConfig() (*Config, error) {
	// Load .env file if exists
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("error loading .env file: %v", err)
		}
	}

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		GinMode:     getEnv("GIN_MODE", "debug"),
		CORSOrigins: strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:8080"), ","),

		SchemeDataPath: getEnv("SCHEME_DATA_PATH", "data/schemes.json"),

		MinQueryLength: getEnvInt("MIN_QUERY_LENGTH", 1),
		MaxQueryLength: getEnvInt("MAX_QUERY_LENGTH", 500),

		// Hindi, Tamil, Telugu, Bengali, Marathi, English
		SupportedLanguages: strings.Split(getEnv("SUPPORTED_LANGUAGES", "hi,ta,te,bn,mr,en"), ","),
		DefaultLanguage:    getEnv("DEFAULT_LANGUAGE", "hi"),

		MaxSchemeResults: getEnvInt("MAX_SCHEME_RESULTS", 3),
		MaxResponseBytes: getEnvInt("MAX_RESPONSE_BYTES", 10240), // 10 KB
		MaxActionSteps:   getEnvInt("MAX_ACTION_STEPS", 5),

		SessionTimeout:   time.Duration(getEnvInt("SESSION_TIMEOUT_MINUTES", 30)) * time.Minute,
		MaxHistoryLength: getEnvInt("MAX_HISTORY_LENGTH", 10),
		SweepInterval:    time.Duration(getEnvInt("SWEEP_INTERVAL_MINUTES", 5)) * time.Minute,

		OTPCooldown: time.Duration(getEnvInt("OTP_COOLDOWN_SECONDS", 30)) * time.Second,
		OTPExpiry:   time.Duration(getEnvInt("OTP_EXPIRY_SECONDS", 300)) * time.Second,

		TokenSecret:    getEnv("TOKEN_SECRET", ""),
		TokenExpiresIn: time.Duration(getEnvInt("TOKEN_EXPIRES_MINUTES", 60)) * time.Minute,

		RedisEnabled:  getEnvBool("REDIS_ENABLED", false),
		RedisURL:      getEnv("REDIS_URL", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		StoreBackend: getEnv("STORE_BACKEND", "memory"),

		RateLimitReqs:   getEnvInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow: getEnvInt("RATE_LIMIT_WINDOW", 60),

		TracingEnabled: getEnvBool("TRACING_ENABLED", false),
		OTLPEndpoint:   getEnv("OTLP_ENDPOINT", "localhost:4317"),
	}

	// Validate required fields
	if cfg.TokenSecret == "" {
		return nil, fmt.Errorf("TOKEN_SECRET is required - set it in .env file")
	}

	if cfg.MaxSchemeResults <= 0 {
		return nil, fmt.Errorf("MAX_SCHEME_RESULTS must be positive")
	}

	if cfg.MaxResponseBytes <= 0 {
		return nil, fmt.Errorf("MAX_RESPONSE_BYTES must be positive")
	}

	if cfg.StoreBackend != "memory" && cfg.StoreBackend != "redis" {
		return nil, fmt.Errorf("STORE_BACKEND must be \"memory\" or \"redis\", got %q", cfg.StoreBackend)
	}

	if cfg.StoreBackend == "redis" && !cfg.RedisEnabled {
		return nil, fmt.Errorf("STORE_BACKEND=redis requires REDIS_ENABLED=true")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
