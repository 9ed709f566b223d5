package utils

import (
	"log/slog"
	"os"
	"time"
)

func GetEnvOrSetDefault(key string, defaultVal string) string {
	if os.Getenv(key) == "" {
		os.Setenv(key, defaultVal)
		return defaultVal
	}

	return os.Getenv(key)
}

// GetEnvDuration parses key as a time.Duration ("5s", "1m"), falling back to
// defaultVal when it is unset or malformed.
func GetEnvDuration(key string, defaultVal time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration in environment, using default", "key", key, "value", raw, "default", defaultVal)
		return defaultVal
	}

	return d
}
