package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/zkauth/internal/flagx"
)

// parseFlags populates server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   gRPC bind address (e.g., ":50051")
//	-d string   PostgreSQL DSN, empty for in-memory storage
//	-s string   JWT HMAC secret key
//	-t int      access token validity, minutes
//	-l int      SRP and MFA session lifetime, seconds
//	-n int      session store capacity
//	-m int      max failed proofs per session (0 = until expiry)
//	-k int      concurrent key derivations
//	-w int      minimum password length
//	-log string log backend (slog, zap)
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//
// os.Args is filtered through flagx.FilterArgs first so -c / -config do not
// trip the parser.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-l", "-n", "-m", "-k", "-w", "-log", "-u", "-p", "-b", "-g", "-e"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access_token_validity_duration (in minutes)")
	sessionTTL := fs.Int("l", int(config.SRPSessionTTL.Seconds()), "srp and mfa session ttl (in seconds)")

	fs.IntVar(&config.SessionCapacity, "n", config.SessionCapacity, "session store capacity")
	fs.IntVar(&config.MaxProofAttempts, "m", config.MaxProofAttempts, "max failed proofs per session")
	fs.IntVar(&config.KDFConcurrency, "k", config.KDFConcurrency, "concurrent key derivations")
	fs.IntVar(&config.MinPasswordLength, "w", config.MinPasswordLength, "minimum password length")
	fs.StringVar(&config.LogBackend, "log", config.LogBackend, "log backend")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 root bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 root region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute

	// -l only overrides the lifetimes when given, so file values for the
	// two stores can differ.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "l" {
			config.SRPSessionTTL = time.Duration(*sessionTTL) * time.Second
			config.MFASessionTTL = config.SRPSessionTTL
		}
	})
}
