// Package envelope implements password-based envelope encryption of an
// account's master key.
//
// A random 32-byte master key (DEK) is generated once per account. It is
// wrapped with AES-256-GCM under a wrapping key (KEK) derived from the
// account password with Argon2id. The wrapping key is never stored: it is
// recomputed from the password on every request that needs it, so a stolen
// envelope is useless without the password.
//
// Envelope format (base64, standard alphabet):
//
//	nonce (12 bytes) || ciphertext || GCM tag (16 bytes)
//
// The same format protects arbitrary secondary secrets under an already
// unwrapped master key (WrapArbitrary / UnwrapArbitrary).
package envelope
