package util

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// EnvOrDefault returns the environment variable value or fallback when it is empty.
func EnvOrDefault(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

// EnvDuration parses a Go duration from the environment, using fallback when unset.
func EnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := EnvOrDefault(key, "")
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s: invalid duration %q", key, raw)
	}
	return d, nil
}

// EnvInt parses an integer from the environment, using fallback when unset.
func EnvInt(key string, fallback int) (int, error) {
	raw := EnvOrDefault(key, "")
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q", key, raw)
	}
	return n, nil
}

// EnvBool parses a boolean from the environment, using fallback when unset.
func EnvBool(key string, fallback bool) (bool, error) {
	raw := EnvOrDefault(key, "")
	if raw == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s: invalid boolean %q", key, raw)
	}
	return b, nil
}
