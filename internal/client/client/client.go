package client

import "context"

// LoginChallenge is the server's answer to the first SRP message.
type LoginChallenge struct {
	Salt         []byte
	ServerPublic []byte
	SessionID    string
}

// LoginVerification carries the server proof and the second-factor challenge.
type LoginVerification struct {
	ServerProof  []byte
	MFASessionID string
	Challenge    []byte
}

// EnvelopeBundle is what a client needs to unwrap its master key.
type EnvelopeBundle struct {
	Salt             []byte
	WrappedMasterKey string
}

type Client interface {
	Close() error
	Ping(ctx context.Context) error
	Register(ctx context.Context, username, email, password string) error
	LoginStart(ctx context.Context, username string, clientPublic []byte) (*LoginChallenge, error)
	LoginVerify(ctx context.Context, username, sessionID string, clientProof []byte) (*LoginVerification, error)
	// CompleteMFA keeps the issued access token for later template calls.
	CompleteMFA(ctx context.Context, username, mfaSessionID string, proof []byte) error
	GetEnvelopeBundle(ctx context.Context, username string) (*EnvelopeBundle, error)
	ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error
	EnrollTemplate(ctx context.Context, username, envelope string) error
	FetchTemplate(ctx context.Context, username string) (string, error)
	// Logout forgets the access token.
	Logout()
}
