package logging

import (
	"log/slog"
	"strings"
)

// sensitiveKeys are attribute key fragments whose values must never reach a
// log sink. Digests are safe to log and deliberately not listed.
var sensitiveKeys = []string{
	"secret",
	"password",
	"cookie",
	"token",
}

const redactedValue = "***REDACTED***"

// RedactAttr is a slog.HandlerOptions.ReplaceAttr hook that masks non-empty
// string attributes whose key names a secret.
func RedactAttr(_ []string, a slog.Attr) slog.Attr {
	if a.Value.Kind() != slog.KindString || a.Value.String() == "" {
		return a
	}
	key := strings.ToLower(a.Key)
	for _, s := range sensitiveKeys {
		if strings.Contains(key, s) {
			return slog.String(a.Key, redactedValue)
		}
	}
	return a
}
