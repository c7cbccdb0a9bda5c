package logging

import (
	"log/slog"

	"go.uber.org/zap"
)

// Attribute keys shared by server log lines.
const (
	KeySessionKind = "session_kind"
	KeyExpired     = "expired"
	KeyEvicted     = "evicted"
	KeyUsername    = "username"
)

// Session kinds reported by Reclaimed.
const (
	SessionSRP = "srp"
	SessionMFA = "mfa"
)

// Reclaimed describes one sweep-and-evict pass over a session store.
//
//	log.Debug(ctx, "sessions reclaimed", logging.Reclaimed(logging.SessionSRP, expired, evicted)...)
func Reclaimed(kind string, expired, evicted int) []any {
	return []any{
		slog.String(KeySessionKind, kind),
		slog.Int(KeyExpired, expired),
		slog.Int(KeyEvicted, evicted),
	}
}

// Username tags a line with the account it concerns.
func Username(u string) slog.Attr { return slog.String(KeyUsername, u) }

// zapArgs turns slog.Attr values into zap fields so both backends accept the
// same argument lists. Plain key-value pairs pass through.
func zapArgs(args []any) []any {
	var out []any
	for i, a := range args {
		attr, ok := a.(slog.Attr)
		if !ok {
			continue
		}
		if out == nil {
			out = append([]any(nil), args...)
		}
		out[i] = zap.Any(attr.Key, attr.Value.Resolve().Any())
	}
	if out == nil {
		return args
	}
	return out
}
