package utils

import (
	"os"
	"strings"
)

// EnvOrDefault returns the trimmed ENV value or a fallback default.
func EnvOrDefault(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

// EnvBool reads a boolean flag; anything but "true"/"1"/"yes" is false.
func EnvBool(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "true", "1", "yes":
		return true
	}
	return false
}
