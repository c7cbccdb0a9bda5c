package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// GenericAuthFailureMessage is the only message a caller ever sees for a
// failed login, second-factor or password proof.
const GenericAuthFailureMessage = "invalid credentials"
