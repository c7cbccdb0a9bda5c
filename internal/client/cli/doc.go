// Package cli provides the interactive zkauth command-line client.
//
// It wires configuration, the gRPC client, the client-side protocol service
// and a REPL. The password never leaves the process: login runs SRP-6a and
// the HMAC second factor, then unwraps the master key locally.
//
// Commands:
//   - register / login / logout
//   - passwd: change the password, which forces a new login
//   - enroll <file>: seal a template under the master key and upload it
//   - fetch: download and open the template into the template directory
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
package cli
