package grpc

import (
	"context"

	"github.com/dmitrijs2005/zkauth/internal/api"
)

func (s *GRPCServer) Register(ctx context.Context, req *api.RegisterRequest) (*api.RegisterResponse, error) {

	s.logger.Info(ctx, "Registration request", "username", req.Username)

	if err := s.auth.Register(ctx, req.Username, req.Email, req.Password); err != nil {
		return nil, toStatus(err)
	}

	return &api.RegisterResponse{Message: "user registered successfully"}, nil
}

func (s *GRPCServer) LoginStart(ctx context.Context, req *api.LoginStartRequest) (*api.LoginStartResponse, error) {

	res, err := s.auth.LoginStart(ctx, req.Username, req.A)
	if err != nil {
		return nil, toStatus(err)
	}

	return &api.LoginStartResponse{Salt: res.Salt, B: res.ServerPublic, SessionID: res.SessionID}, nil
}

func (s *GRPCServer) LoginVerify(ctx context.Context, req *api.LoginVerifyRequest) (*api.LoginVerifyResponse, error) {

	res, err := s.auth.LoginVerify(ctx, req.Username, req.SessionID, req.M)
	if err != nil {
		return nil, toStatus(err)
	}

	return &api.LoginVerifyResponse{
		MFARequired:  res.MFARequired,
		MFASessionID: res.MFASessionID,
		Challenge:    res.Challenge,
		ServerProof:  res.ServerProof,
	}, nil
}

func (s *GRPCServer) CompleteMFA(ctx context.Context, req *api.CompleteMFARequest) (*api.CompleteMFAResponse, error) {

	res, err := s.auth.CompleteMFA(ctx, req.Username, req.MFASessionID, req.Proof)
	if err != nil {
		return nil, toStatus(err)
	}

	return &api.CompleteMFAResponse{Authenticated: res.Authenticated, AccessToken: res.AccessToken}, nil
}

func (s *GRPCServer) GetEnvelopeBundle(ctx context.Context, req *api.EnvelopeBundleRequest) (*api.EnvelopeBundleResponse, error) {

	res, err := s.auth.GetEnvelopeBundle(ctx, req.Username)
	if err != nil {
		return nil, toStatus(err)
	}

	return &api.EnvelopeBundleResponse{Salt: res.Salt, WrappedMasterKey: res.WrappedMasterKey}, nil
}

func (s *GRPCServer) ChangePassword(ctx context.Context, req *api.ChangePasswordRequest) (*api.ChangePasswordResponse, error) {

	res, err := s.auth.ChangePassword(ctx, req.Username, req.OldPassword, req.NewPassword)
	if err != nil {
		return nil, toStatus(err)
	}

	return &api.ChangePasswordResponse{Message: res.Message, ForceRelogin: res.ForceRelogin}, nil
}

func (s *GRPCServer) EnrollTemplate(ctx context.Context, req *api.EnrollTemplateRequest) (*api.EnrollTemplateResponse, error) {

	if err := s.auth.EnrollTemplate(ctx, accessTokenFromContext(ctx), req.Username, req.Envelope); err != nil {
		return nil, toStatus(err)
	}

	return &api.EnrollTemplateResponse{Message: "template stored successfully"}, nil
}

func (s *GRPCServer) FetchTemplate(ctx context.Context, req *api.FetchTemplateRequest) (*api.FetchTemplateResponse, error) {

	env, err := s.auth.FetchTemplate(ctx, accessTokenFromContext(ctx), req.Username)
	if err != nil {
		return nil, toStatus(err)
	}

	return &api.FetchTemplateResponse{Username: req.Username, Envelope: env}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, req *api.PingRequest) (*api.PingResponse, error) {

	return &api.PingResponse{Status: "OK"}, nil

}
