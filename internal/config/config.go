package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                   string
	DatabaseURL            string
	StoreDriver            string
	Migrate                bool
	JWTSecret              string
	TokenTTL               time.Duration
	SessionLifetime        time.Duration
	LogLevel               string
	RateLimitPerMinute     int
	RateLimitBurst         int
	UserRateLimitPerMinute int
	UserRateLimitBurst     int
	TrustProxy             bool
	ActivityAMQPURL        string
	ActivityExchange       string
}

// Load reads the environment. A .env file in the working directory is loaded
// first when present; variables already set win.
func Load() Config {
	_ = godotenv.Load()

	port := os.Getenv("HR_PORT")
	if port == "" {
		port = "8080"
	}
	driver := strings.ToLower(strings.TrimSpace(os.Getenv("STORE_DRIVER")))
	if driver == "" {
		driver = "postgres"
	}
	exchange := os.Getenv("ACTIVITY_EXCHANGE")
	if exchange == "" {
		exchange = "hr.activity"
	}
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "info"
	}

	return Config{
		Port:                   port,
		DatabaseURL:            os.Getenv("DB_DSN"),
		StoreDriver:            driver,
		Migrate:                readBool("DB_MIGRATE", false),
		JWTSecret:              os.Getenv("JWT_SECRET"),
		TokenTTL:               readDurationSeconds("TOKEN_TTL_SECONDS", 12*60*60),
		SessionLifetime:        readDurationSeconds("SESSION_LIFETIME_SECONDS", 7*24*60*60),
		LogLevel:               level,
		RateLimitPerMinute:     readInt("RATE_LIMIT_PER_MIN", 120),
		RateLimitBurst:         readInt("RATE_LIMIT_BURST", 30),
		UserRateLimitPerMinute: readInt("USER_RATE_LIMIT_PER_MIN", 300),
		UserRateLimitBurst:     readInt("USER_RATE_LIMIT_BURST", 60),
		TrustProxy:             readBool("TRUST_PROXY", false),
		ActivityAMQPURL:        os.Getenv("ACTIVITY_AMQP_URL"),
		ActivityExchange:       exchange,
	}
}

func readDurationSeconds(key string, fallback int) time.Duration {
	value := readInt(key, fallback)
	if value <= 0 {
		return 0
	}
	return time.Duration(value) * time.Second
}

func readInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func readBool(key string, fallback bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return value
}
