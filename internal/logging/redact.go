package logging

import (
	"log/slog"
	"strings"
)

const masked = "********"

var sensitiveKeys = []string{"password", "token"}

// ShouldMask reports whether an attribute key names sensitive data.
func ShouldMask(key string) bool {
	lower := strings.ToLower(key)
	for _, candidate := range sensitiveKeys {
		if strings.Contains(lower, candidate) {
			return true
		}
	}
	return false
}

// Secret builds an attribute whose value is always printed masked. Empty
// values stay empty so logs still show whether anything was entered.
func Secret(key string, value any) slog.Attr {
	if value == nil || value == "" {
		return slog.String(key, "")
	}
	return slog.String(key, masked)
}

func redactAttr(_ []string, a slog.Attr) slog.Attr {
	if ShouldMask(a.Key) {
		return slog.String(a.Key, masked)
	}
	return a
}
