package config

import (
	"os"

	"github.com/dmitrijs2005/zkauth/internal/flagx"
	"github.com/spf13/viper"
)

// Config file keys. Durations accept Go syntax ("90s", "15m").
const (
	keyEndpointAddrGRPC            = "endpoint_addr_grpc"
	keyDatabaseDSN                 = "database_dsn"
	keySecretKey                   = "secret_key"
	keyAccessTokenValidityDuration = "access_token_validity_duration"
	keySRPSessionTTL               = "srp_session_ttl"
	keyMFASessionTTL               = "mfa_session_ttl"
	keySessionCapacity             = "session_capacity"
	keyMaxProofAttempts            = "max_proof_attempts"
	keyKDFConcurrency              = "kdf_concurrency"
	keyMinPasswordLength           = "min_password_length"
	keyLogBackend                  = "log_backend"
	keyS3RootUser                  = "s3_root_user"
	keyS3RootPassword              = "s3_root_password"
	keyS3Bucket                    = "s3_bucket"
	keyS3Region                    = "s3_region"
	keyS3BaseEndpoint              = "s3_base_endpoint"
)

// parseFile overlays values from the file named by -c / -config. The format
// follows the file extension (json, yaml, toml). Keys absent from the file
// leave the current value untouched. An unreadable or malformed file panics.
func parseFile(config *Config) {
	path := flagx.ConfigFileFlag(os.Args[1:])
	if path == "" {
		return
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		panic(err)
	}

	applyString(v, keyEndpointAddrGRPC, &config.EndpointAddrGRPC)
	applyString(v, keyDatabaseDSN, &config.DatabaseDSN)
	applyString(v, keySecretKey, &config.SecretKey)
	applyString(v, keyLogBackend, &config.LogBackend)
	applyString(v, keyS3RootUser, &config.S3RootUser)
	applyString(v, keyS3RootPassword, &config.S3RootPassword)
	applyString(v, keyS3Bucket, &config.S3Bucket)
	applyString(v, keyS3Region, &config.S3Region)
	applyString(v, keyS3BaseEndpoint, &config.S3BaseEndpoint)

	if v.IsSet(keyAccessTokenValidityDuration) {
		config.AccessTokenValidityDuration = v.GetDuration(keyAccessTokenValidityDuration)
	}
	if v.IsSet(keySRPSessionTTL) {
		config.SRPSessionTTL = v.GetDuration(keySRPSessionTTL)
	}
	if v.IsSet(keyMFASessionTTL) {
		config.MFASessionTTL = v.GetDuration(keyMFASessionTTL)
	}

	applyInt(v, keySessionCapacity, &config.SessionCapacity)
	applyInt(v, keyMaxProofAttempts, &config.MaxProofAttempts)
	applyInt(v, keyKDFConcurrency, &config.KDFConcurrency)
	applyInt(v, keyMinPasswordLength, &config.MinPasswordLength)
}

func applyString(v *viper.Viper, key string, dst *string) {
	if v.IsSet(key) {
		*dst = v.GetString(key)
	}
}

func applyInt(v *viper.Viper, key string, dst *int) {
	if v.IsSet(key) {
		*dst = v.GetInt(key)
	}
}
