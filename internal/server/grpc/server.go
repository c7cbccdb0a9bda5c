// Package grpc exposes the authentication services as zkauth.AuthService
// over gRPC with the JSON codec from internal/api.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/zkauth/internal/api"
	"github.com/dmitrijs2005/zkauth/internal/logging"
	"github.com/dmitrijs2005/zkauth/internal/server/services"
	"google.golang.org/grpc"
)

// AuthService is the protocol-entry surface the handlers call into.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) error
	LoginStart(ctx context.Context, username, clientPublicB64 string) (*services.LoginStartResult, error)
	LoginVerify(ctx context.Context, username, sessionID, clientProofB64 string) (*services.LoginVerifyResult, error)
	CompleteMFA(ctx context.Context, username, mfaSessionID, proofB64 string) (*services.MFAResult, error)
	GetEnvelopeBundle(ctx context.Context, username string) (*services.EnvelopeBundleResult, error)
	ChangePassword(ctx context.Context, username, oldPassword, newPassword string) (*services.ChangePasswordResult, error)
	EnrollTemplate(ctx context.Context, token, username, envelope string) error
	FetchTemplate(ctx context.Context, token, username string) (string, error)
}

type GRPCServer struct {
	api.UnimplementedAuthServiceServer
	address string
	auth    AuthService
	logger  logging.Logger
}

func NewGRPCServer(a string, l logging.Logger, auth AuthService) *GRPCServer {
	return &GRPCServer{
		address: a,
		logger:  l.With("module", "grpc_server"),
		auth:    auth,
	}
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve runs the gRPC server on an existing listener until ctx is done.
func (s *GRPCServer) Serve(ctx context.Context, listen net.Listener) error {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))

	api.RegisterAuthServiceServer(srv, s)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
