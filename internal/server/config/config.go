// Package config handles configuration for the authentication server,
// including defaults, a viper-backed config file overlay, and command-line
// flags.
package config

import (
	"time"

	"github.com/dmitrijs2005/zkauth/internal/logging"
	"github.com/dmitrijs2005/zkauth/internal/sessions"
)

// Config holds runtime settings for the zkauth server.
//
// Fields:
//   - EndpointAddrGRPC: bind address for the public gRPC endpoint.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty selects the in-memory store.
//   - SecretKey: HMAC secret for signing access tokens (HS256).
//   - SRPSessionTTL / MFASessionTTL: lifetime of pending protocol sessions.
//   - SessionCapacity: upper bound of pending sessions per store.
//   - MaxProofAttempts: failed proofs tolerated per session, 0 for unlimited.
//   - KDFConcurrency: concurrent Argon2id derivations allowed.
//   - S3*: object storage for template envelopes. An empty S3BaseEndpoint
//     keeps templates in memory.
type Config struct {
	EndpointAddrGRPC            string
	DatabaseDSN                 string
	SecretKey                   string
	AccessTokenValidityDuration time.Duration
	SRPSessionTTL               time.Duration
	MFASessionTTL               time.Duration
	SessionCapacity             int
	MaxProofAttempts            int
	KDFConcurrency              int
	MinPasswordLength           int
	LogBackend                  string
	S3RootUser                  string
	S3RootPassword              string
	S3Bucket                    string
	S3Region                    string
	S3BaseEndpoint              string
}

// LoadDefaults populates Config with development defaults.
// NOTE: the secret key must be overridden outside of development.
func (c *Config) LoadDefaults() {
	c.EndpointAddrGRPC = ":50051"
	c.DatabaseDSN = ""
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = 15 * time.Minute
	c.SRPSessionTTL = sessions.DefaultTTL
	c.MFASessionTTL = sessions.DefaultTTL
	c.SessionCapacity = sessions.DefaultCapacity
	c.MaxProofAttempts = 0
	c.KDFConcurrency = 2
	c.MinPasswordLength = 8
	c.LogBackend = logging.BackendSlog
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = "zkauth"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = ""
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional config file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseFlags(cfg)
	return cfg
}
