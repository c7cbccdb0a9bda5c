// Package config loads runtime configuration for the zkauth CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file (see parseFile) selected via flags: -c or -config.
//     Any format viper understands by extension (json, yaml, toml).
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   address:port of the backend gRPC endpoint
//	-i int      online status check interval (seconds)
//	-t int      request timeout (seconds)
//	-o string   directory for fetched templates
//
// # File keys
//
//	server_endpoint_addr: 127.0.0.1:50051
//	online_check_interval: 3s
//	request_timeout: 15s
//	template_dir: templates
package config
