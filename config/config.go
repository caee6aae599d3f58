package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                string
	Env                 string
	LogLevel            string
	DBPath              string
	AuthBackendURL      string
	AppOrigin           string
	AuthSessionCookie   string
	AuthCallbackTimeout time.Duration
	APIToken            string
	CORSOrigins         string
	ProviderRateLimit   float64
}

var AppConfig *Config

func Load() {
	_ = godotenv.Load()

	AppConfig = &Config{
		Port:                GetEnv("PORT", "8080"),
		Env:                 GetEnv("ENV", "development"),
		LogLevel:            GetEnv("LOG_LEVEL", "info"),
		DBPath:              GetEnv("DB_PATH", "./data/lightningbowl.db"),
		AuthBackendURL:      strings.TrimRight(GetEnv("AUTH_BACKEND_URL", "http://localhost:3000"), "/"),
		AppOrigin:           strings.TrimRight(GetEnv("APP_ORIGIN", "http://localhost:8080"), "/"),
		AuthSessionCookie:   GetEnv("AUTH_SESSION_COOKIE", "session"),
		AuthCallbackTimeout: getDuration("AUTH_CALLBACK_TIMEOUT", 8*time.Second),
		APIToken:            GetEnv("API_TOKEN", ""),
		CORSOrigins:         GetEnv("CORS_ORIGINS", "*"),
		ProviderRateLimit:   getFloat("PROVIDER_RATE_LIMIT", 5),
	}

	if AppConfig.AuthCallbackTimeout <= 0 {
		log.Fatal("AUTH_CALLBACK_TIMEOUT must be positive")
	}
	if AppConfig.ProviderRateLimit <= 0 {
		log.Fatal("PROVIDER_RATE_LIMIT must be positive")
	}
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Fatalf("%s: invalid duration %q", key, value)
	}
	return d
}

func getFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Fatalf("%s: invalid number %q", key, value)
	}
	return f
}
