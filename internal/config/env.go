package config

import (
	"os"
	"strconv"
	"strings"
)

// EnvPrefix scopes variables to this service. A prefixed variable wins over
// the bare name, so SHOPDESK_LOG_LEVEL overrides LOG_LEVEL.
const EnvPrefix = "SHOPDESK_"

func lookupEnv(key string) string {
	if v := strings.TrimSpace(os.Getenv(EnvPrefix + key)); v != "" {
		return v
	}
	return strings.TrimSpace(os.Getenv(key))
}

// Env returns the trimmed value of key, or def when unset.
func Env(key, def string) string {
	if v := lookupEnv(key); v != "" {
		return v
	}
	return def
}

// EnvLower is Env folded to lower case, for enum-like settings.
func EnvLower(key, def string) string {
	return strings.ToLower(Env(key, def))
}

func EnvBool(key string, def bool) bool {
	switch strings.ToLower(lookupEnv(key)) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

func EnvInt(key string, def int) int {
	parsed, err := strconv.Atoi(lookupEnv(key))
	if err != nil {
		return def
	}
	return parsed
}

func EnvInt64(key string, def int64) int64 {
	parsed, err := strconv.ParseInt(lookupEnv(key), 10, 64)
	if err != nil {
		return def
	}
	return parsed
}

func EnvFloat(key string, def float64) float64 {
	parsed, err := strconv.ParseFloat(lookupEnv(key), 64)
	if err != nil {
		return def
	}
	return parsed
}
