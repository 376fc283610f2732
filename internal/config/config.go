// Package config loads runtime settings from the environment.
package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort        string
	BackendURL      string
	BackendAnonKey  string
	RedisAddr       string
	DataDir         string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

// Load reads .env when present, then the process environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		BackendURL:      getEnv("BACKEND_URL", "http://localhost:54321"),
		BackendAnonKey:  getEnv("BACKEND_ANON_KEY", ""),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		DataDir:         getEnv("DATA_DIR", "data"),
		RequestTimeout:  getDuration("REQUEST_TIMEOUT", 30*time.Second),
		ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

func getEnv(key, defaultValue string) string {
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
		return defaultValue
	}
	return d
}
