package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/encoding"
)

func TestCodec_Registered(t *testing.T) {
	c := encoding.GetCodec(CodecName)
	require.NotNil(t, c)
	assert.Equal(t, CodecName, c.Name())
}

func TestCodec_WireFieldNames(t *testing.T) {
	c := jsonCodec{}
	b, err := c.Marshal(&LoginVerifyResponse{MFARequired: true, MFASessionID: "sid", Challenge: "Y2g=", ServerProof: "cHI="})
	require.NoError(t, err)
	assert.JSONEq(t, `{"mfa_required":true,"mfa_session_id":"sid","challenge_b64":"Y2g=","server_proof_b64":"cHI="}`, string(b))

	var in LoginStartRequest
	require.NoError(t, c.Unmarshal([]byte(`{"username":"alice","a_b64":"QQ=="}`), &in))
	assert.Equal(t, LoginStartRequest{Username: "alice", A: "QQ=="}, in)
}

func TestCodec_EmptyAndInvalid(t *testing.T) {
	c := jsonCodec{}
	var p PingRequest
	assert.NoError(t, c.Unmarshal(nil, &p))
	assert.Error(t, c.Unmarshal([]byte("{"), &p))
}
