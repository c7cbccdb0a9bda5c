// Package client is the transport layer of the zkauth CLI. GRPCClient wraps
// the generated-style api.AuthServiceClient: it decodes wire base64 into
// bytes, keeps the access token issued after the second factor and attaches
// it to outgoing metadata, and maps gRPC status codes to package errors.
package client
