// Package api defines the zkauth.AuthService wire contract shared by the
// server and the client: request/response messages, the gRPC service
// descriptor and the JSON codec the messages travel in.
//
// Binary fields are standard base64 strings.
package api

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	Message string `json:"message"`
}

type LoginStartRequest struct {
	Username string `json:"username"`
	A        string `json:"a_b64"`
}

type LoginStartResponse struct {
	Salt      string `json:"salt"`
	B         string `json:"b_b64"`
	SessionID string `json:"session_id"`
}

type LoginVerifyRequest struct {
	Username  string `json:"username"`
	SessionID string `json:"session_id"`
	M         string `json:"m_b64"`
}

type LoginVerifyResponse struct {
	MFARequired  bool   `json:"mfa_required"`
	MFASessionID string `json:"mfa_session_id"`
	Challenge    string `json:"challenge_b64"`
	ServerProof  string `json:"server_proof_b64"`
}

type CompleteMFARequest struct {
	Username     string `json:"username"`
	MFASessionID string `json:"mfa_session_id"`
	Proof        string `json:"proof_b64"`
}

type CompleteMFAResponse struct {
	Authenticated bool   `json:"authenticated"`
	AccessToken   string `json:"access_token"`
}

type EnvelopeBundleRequest struct {
	Username string `json:"username"`
}

type EnvelopeBundleResponse struct {
	Salt             string `json:"salt_b64"`
	WrappedMasterKey string `json:"wrapped_master_key_b64"`
}

type ChangePasswordRequest struct {
	Username    string `json:"username"`
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type ChangePasswordResponse struct {
	Message      string `json:"message"`
	ForceRelogin bool   `json:"force_relogin"`
}

// EnrollTemplateRequest carries a template sealed client-side under the
// master key. The access token travels in metadata.
type EnrollTemplateRequest struct {
	Username string `json:"username"`
	Envelope string `json:"template_enc_b64"`
}

type EnrollTemplateResponse struct {
	Message string `json:"message"`
}

type FetchTemplateRequest struct {
	Username string `json:"username"`
}

type FetchTemplateResponse struct {
	Username string `json:"username"`
	Envelope string `json:"template_enc_b64"`
}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}
