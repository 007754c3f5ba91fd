// Package config loads service configuration from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fieldgames/domination/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

type Config struct {
	AppEnv         string
	ServiceName    string
	ServiceVersion string
	LogLevel       logging.Level

	HTTPAddr            string
	HTTPReadTimeout     time.Duration
	HTTPWriteTimeout    time.Duration
	HTTPShutdownTimeout time.Duration
	CORSAllowedOrigins  []string
	AdminToken          string

	// DatabaseURL empty means the service runs on seeded in-memory storage.
	DatabaseURL string

	CaptureBonusPoints  int
	LiveRefreshInterval time.Duration
	LiveRefreshWorkers  int
	ScoreCacheTTL       time.Duration

	FinalScoreWebhookURL     string
	FinalScoreWebhookToken   string
	FinalScoreWebhookTimeout time.Duration

	UptraceEnabled bool
	UptraceDSN     string

	PyroscopeEnabled       bool
	PyroscopeServerAddress string
	PyroscopeAuthToken     string
	PyroscopeAppName       string
}

func Load() Config {
	appEnv := parseAppEnv(getEnv("APP_ENV", EnvDev))
	serviceName := getEnv("SERVICE_NAME", "domination")

	return Config{
		AppEnv:         appEnv,
		ServiceName:    serviceName,
		ServiceVersion: getEnv("SERVICE_VERSION", "dev"),
		LogLevel:       parseLogLevel(getEnv("LOG_LEVEL", "info")),

		HTTPAddr:            getEnv("HTTP_ADDR", ":8080"),
		HTTPReadTimeout:     getEnvAsDuration("HTTP_READ_TIMEOUT", 15*time.Second),
		HTTPWriteTimeout:    getEnvAsDuration("HTTP_WRITE_TIMEOUT", 30*time.Second),
		HTTPShutdownTimeout: getEnvAsDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
		CORSAllowedOrigins:  splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		AdminToken:          getEnv("ADMIN_TOKEN", ""),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		CaptureBonusPoints:  getEnvAsInt("CAPTURE_BONUS_POINTS", 100),
		LiveRefreshInterval: getEnvAsDuration("LIVE_REFRESH_INTERVAL", 10*time.Second),
		LiveRefreshWorkers:  getEnvAsInt("LIVE_REFRESH_WORKERS", 4),
		ScoreCacheTTL:       getEnvAsDuration("SCORE_CACHE_TTL", 2*time.Second),

		FinalScoreWebhookURL:     getEnv("FINAL_SCORE_WEBHOOK_URL", ""),
		FinalScoreWebhookToken:   getEnv("FINAL_SCORE_WEBHOOK_TOKEN", ""),
		FinalScoreWebhookTimeout: getEnvAsDuration("FINAL_SCORE_WEBHOOK_TIMEOUT", 10*time.Second),

		UptraceEnabled: getEnvAsBool("UPTRACE_ENABLED", false),
		UptraceDSN:     getEnv("UPTRACE_DSN", ""),

		PyroscopeEnabled:       getEnvAsBool("PYROSCOPE_ENABLED", false),
		PyroscopeServerAddress: getEnv("PYROSCOPE_SERVER_ADDRESS", ""),
		PyroscopeAuthToken:     getEnv("PYROSCOPE_AUTH_TOKEN", ""),
		PyroscopeAppName:       getEnv("PYROSCOPE_APP_NAME", serviceName),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func getEnvAsBool(key string, fallback bool) bool {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return value
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func splitCSV(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		candidate := strings.TrimSpace(part)
		if candidate == "" {
			continue
		}
		out = append(out, candidate)
	}
	return out
}

func parseAppEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case EnvProd, "production":
		return EnvProd
	case EnvStage, "staging":
		return EnvStage
	default:
		return EnvDev
	}
}

func parseLogLevel(raw string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}
