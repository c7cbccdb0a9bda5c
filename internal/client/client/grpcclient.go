package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/zkauth/internal/api"
	"github.com/dmitrijs2005/zkauth/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const defaultRequestTimeout = 15 * time.Second

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      api.AuthServiceClient
	timeout     time.Duration

	mu          sync.RWMutex
	accessToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

// accessTokenInterceptor attaches the current access token, if any.
func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if token := s.token(); token != "" {
		ctx = withAccessToken(ctx, token)
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

func NewAuthClient(endpointURL string, timeout time.Duration, opts ...grpc.DialOption) (*GRPCClient, error) {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	c := &GRPCClient{endpointURL: endpointURL, timeout: timeout}
	if err := c.InitGRPCClient(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// InitGRPCClient dials the endpoint. Extra options are appended after the
// defaults so tests can swap the dialer.
func (s *GRPCClient) InitGRPCClient(opts ...grpc.DialOption) error {
	base := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
	}
	conn, err := grpc.NewClient(s.endpointURL, append(base, opts...)...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = api.NewAuthServiceClient(conn)
	return nil
}

func (s *GRPCClient) token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

func (s *GRPCClient) setToken(t string) {
	s.mu.Lock()
	s.accessToken = t
	s.mu.Unlock()
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) Logout() { s.setToken("") }

func (s *GRPCClient) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.client.Ping(ctx, &api.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}

	if resp.Status != "OK" {
		return ErrUnavailable
	}

	return nil
}

func (s *GRPCClient) Register(ctx context.Context, username, email, password string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.client.Register(ctx, &api.RegisterRequest{Username: username, Email: email, Password: password})
	return s.mapError(err)
}

func (s *GRPCClient) LoginStart(ctx context.Context, username string, clientPublic []byte) (*LoginChallenge, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.client.LoginStart(ctx, &api.LoginStartRequest{Username: username, A: common.EncodeBase64(clientPublic)})
	if err != nil {
		return nil, s.mapError(err)
	}

	salt, err := common.DecodeBase64Field(resp.Salt, "salt", 1)
	if err != nil {
		return nil, err
	}
	b, err := common.DecodeBase64Field(resp.B, "B", 1)
	if err != nil {
		return nil, err
	}

	return &LoginChallenge{Salt: salt, ServerPublic: b, SessionID: resp.SessionID}, nil
}

func (s *GRPCClient) LoginVerify(ctx context.Context, username, sessionID string, clientProof []byte) (*LoginVerification, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.client.LoginVerify(ctx, &api.LoginVerifyRequest{Username: username, SessionID: sessionID, M: common.EncodeBase64(clientProof)})
	if err != nil {
		return nil, s.mapError(err)
	}

	proof, err := common.DecodeBase64Field(resp.ServerProof, "server_proof", 1)
	if err != nil {
		return nil, err
	}
	challenge, err := common.DecodeBase64Field(resp.Challenge, "challenge", 1)
	if err != nil {
		return nil, err
	}

	return &LoginVerification{ServerProof: proof, MFASessionID: resp.MFASessionID, Challenge: challenge}, nil
}

func (s *GRPCClient) CompleteMFA(ctx context.Context, username, mfaSessionID string, proof []byte) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.client.CompleteMFA(ctx, &api.CompleteMFARequest{Username: username, MFASessionID: mfaSessionID, Proof: common.EncodeBase64(proof)})
	if err != nil {
		return s.mapError(err)
	}
	if !resp.Authenticated || resp.AccessToken == "" {
		return ErrUnauthorized
	}

	s.setToken(resp.AccessToken)
	return nil
}

func (s *GRPCClient) GetEnvelopeBundle(ctx context.Context, username string) (*EnvelopeBundle, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.client.GetEnvelopeBundle(ctx, &api.EnvelopeBundleRequest{Username: username})
	if err != nil {
		return nil, s.mapError(err)
	}

	salt, err := common.DecodeBase64Field(resp.Salt, "salt", 1)
	if err != nil {
		return nil, err
	}
	return &EnvelopeBundle{Salt: salt, WrappedMasterKey: resp.WrappedMasterKey}, nil
}

func (s *GRPCClient) ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.client.ChangePassword(ctx, &api.ChangePasswordRequest{Username: username, OldPassword: oldPassword, NewPassword: newPassword})
	if err != nil {
		return s.mapError(err)
	}
	if resp.ForceRelogin {
		s.Logout()
	}
	return nil
}

func (s *GRPCClient) EnrollTemplate(ctx context.Context, username, envelope string) error {
	if s.token() == "" {
		return ErrNotLoggedIn
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.client.EnrollTemplate(ctx, &api.EnrollTemplateRequest{Username: username, Envelope: envelope})
	return s.mapError(err)
}

func (s *GRPCClient) FetchTemplate(ctx context.Context, username string) (string, error) {
	if s.token() == "" {
		return "", ErrNotLoggedIn
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.client.FetchTemplate(ctx, &api.FetchTemplateRequest{Username: username})
	if err != nil {
		return "", s.mapError(err)
	}
	return resp.Envelope, nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated:
		return ErrUnauthorized
	case codes.PermissionDenied:
		return ErrForbidden
	case codes.AlreadyExists:
		return fmt.Errorf("%w: %s", ErrAlreadyExists, st.Message())
	case codes.NotFound:
		return ErrNotFound
	case codes.Aborted:
		return ErrConflict
	case codes.InvalidArgument:
		if st.Message() == common.ErrorInvalidSession.Error() {
			return ErrInvalidSession
		}
		return fmt.Errorf("%w: %s", ErrInvalidRequest, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
