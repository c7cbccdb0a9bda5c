// Package templates stores client-wrapped biometric template envelopes.
// The server never sees template plaintext: payloads are already sealed
// under the user's master key on the client.
package templates

import (
	"context"
	"encoding/base64"
)

// Repository holds at most one template envelope per username.
type Repository interface {
	// Put stores envelope for username, replacing any previous one.
	Put(ctx context.Context, username, envelope string) error

	// Get returns common.ErrorNotFound when nothing is enrolled.
	Get(ctx context.Context, username string) (string, error)
}

// ObjectKey maps a username onto a flat object key.
func ObjectKey(username string) string {
	return "templates/" + base64.RawURLEncoding.EncodeToString([]byte(username))
}
