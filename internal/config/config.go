package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server ServerConfig
	Auth   AuthConfig

	// DSN for the backing store. The default is an in-memory SQLite
	// database, so all state is lost when the process exits.
	DatabaseDSN string

	LogLevel          string
	CORSOrigins       []string
	AllowRegistration bool
}

type ServerConfig struct {
	Addr string
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// Load reads the environment (plus an optional .env file) into a
// Config. Every knob has a sensible local default.
func Load() *Config {
	godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Addr: getEnv("SERVER_ADDR", ":8080"),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", "pharmapos_dev_secret_change_me"),
			TokenTTL:  getEnvDuration("TOKEN_TTL", 24*time.Hour),
		},
		DatabaseDSN:       getEnv("DB_DSN", "file:pharmapos?mode=memory&cache=shared"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		CORSOrigins:       []string{getEnv("CORS_ORIGIN", "http://localhost:5173")},
		AllowRegistration: getEnvBool("ALLOW_REGISTRATION", false),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
