package config

import (
	"os"
	"time"
)

// Config is read once at startup from the environment.
type Config struct {
	APIBaseURL string
	TelegramID string

	// CartPath is the file-backed cart slot. Ignored when RedisAddr is set.
	CartPath  string
	RedisAddr string

	PollInterval   time.Duration
	ClockInterval  time.Duration
	DisplayWindow  time.Duration
	RequestTimeout time.Duration
}

func Load() *Config {
	return &Config{
		APIBaseURL:     getEnv("API_BASE_URL", "http://localhost:8080"),
		TelegramID:     getEnv("TELEGRAM_ID", ""),
		CartPath:       getEnv("CART_PATH", "cart.json"),
		RedisAddr:      getEnv("REDIS_ADDR", ""),
		PollInterval:   getDuration("POLL_INTERVAL", 3*time.Second),
		ClockInterval:  getDuration("CLOCK_INTERVAL", time.Minute),
		DisplayWindow:  getDuration("DISPLAY_WINDOW", 12*time.Hour),
		RequestTimeout: getDuration("REQUEST_TIMEOUT", 10*time.Second),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
