package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the tracker.
type Config struct {
	App     AppConfig
	Storage StorageConfig
	Logger  LoggerConfig
	Auth    AuthConfig
}

// AppConfig controls application level behavior.
type AppConfig struct {
	Name    string
	Env     string
	Version string
}

// StorageConfig holds the local storage location.
type StorageConfig struct {
	Path string
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines mock authentication parameters.
type AuthConfig struct {
	MockDelayMillis int
	BcryptCost      int
	SeedDemoUser    bool
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Name:    getEnv("APP_NAME", "ticket-tracker"),
			Env:     getEnv("APP_ENV", "development"),
			Version: getEnv("APP_VERSION", "dev"),
		},
		Storage: StorageConfig{
			Path: getEnv("STORAGE_PATH", "tickets.db"),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			MockDelayMillis: getEnvAsInt("AUTH_MOCK_DELAY_MS", 500),
			BcryptCost:      getEnvAsInt("AUTH_BCRYPT_COST", 10),
			SeedDemoUser:    getEnvAsBool("AUTH_SEED_DEMO_USER", true),
		},
	}

	return cfg, nil
}

// MockDelay returns the simulated network latency for auth operations.
func (a AuthConfig) MockDelay() time.Duration {
	if a.MockDelayMillis <= 0 {
		return 0
	}
	return time.Duration(a.MockDelayMillis) * time.Millisecond
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
