package api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "zkauth.AuthService"

const (
	AuthService_Register_FullMethodName          = "/zkauth.AuthService/Register"
	AuthService_LoginStart_FullMethodName        = "/zkauth.AuthService/LoginStart"
	AuthService_LoginVerify_FullMethodName       = "/zkauth.AuthService/LoginVerify"
	AuthService_CompleteMFA_FullMethodName       = "/zkauth.AuthService/CompleteMFA"
	AuthService_GetEnvelopeBundle_FullMethodName = "/zkauth.AuthService/GetEnvelopeBundle"
	AuthService_ChangePassword_FullMethodName    = "/zkauth.AuthService/ChangePassword"
	AuthService_EnrollTemplate_FullMethodName    = "/zkauth.AuthService/EnrollTemplate"
	AuthService_FetchTemplate_FullMethodName     = "/zkauth.AuthService/FetchTemplate"
	AuthService_Ping_FullMethodName              = "/zkauth.AuthService/Ping"
)

// AuthServiceServer is the server API for zkauth.AuthService.
type AuthServiceServer interface {
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	LoginStart(context.Context, *LoginStartRequest) (*LoginStartResponse, error)
	LoginVerify(context.Context, *LoginVerifyRequest) (*LoginVerifyResponse, error)
	CompleteMFA(context.Context, *CompleteMFARequest) (*CompleteMFAResponse, error)
	GetEnvelopeBundle(context.Context, *EnvelopeBundleRequest) (*EnvelopeBundleResponse, error)
	ChangePassword(context.Context, *ChangePasswordRequest) (*ChangePasswordResponse, error)
	EnrollTemplate(context.Context, *EnrollTemplateRequest) (*EnrollTemplateResponse, error)
	FetchTemplate(context.Context, *FetchTemplateRequest) (*FetchTemplateResponse, error)
	Ping(context.Context, *PingRequest) (*PingResponse, error)
}

// UnimplementedAuthServiceServer can be embedded to get forward compatible
// implementations.
type UnimplementedAuthServiceServer struct{}

func (UnimplementedAuthServiceServer) Register(context.Context, *RegisterRequest) (*RegisterResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Register not implemented")
}
func (UnimplementedAuthServiceServer) LoginStart(context.Context, *LoginStartRequest) (*LoginStartResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method LoginStart not implemented")
}
func (UnimplementedAuthServiceServer) LoginVerify(context.Context, *LoginVerifyRequest) (*LoginVerifyResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method LoginVerify not implemented")
}
func (UnimplementedAuthServiceServer) CompleteMFA(context.Context, *CompleteMFARequest) (*CompleteMFAResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CompleteMFA not implemented")
}
func (UnimplementedAuthServiceServer) GetEnvelopeBundle(context.Context, *EnvelopeBundleRequest) (*EnvelopeBundleResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetEnvelopeBundle not implemented")
}
func (UnimplementedAuthServiceServer) ChangePassword(context.Context, *ChangePasswordRequest) (*ChangePasswordResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ChangePassword not implemented")
}
func (UnimplementedAuthServiceServer) EnrollTemplate(context.Context, *EnrollTemplateRequest) (*EnrollTemplateResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method EnrollTemplate not implemented")
}
func (UnimplementedAuthServiceServer) FetchTemplate(context.Context, *FetchTemplateRequest) (*FetchTemplateResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method FetchTemplate not implemented")
}
func (UnimplementedAuthServiceServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}

// unaryHandler adapts one typed method to the grpc.MethodDesc handler shape,
// running the server interceptor chain when one is installed.
func unaryHandler[Req any, Resp any](fullMethod string, call func(AuthServiceServer, context.Context, *Req) (*Resp, error)) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(AuthServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(AuthServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// AuthService_ServiceDesc is the grpc.ServiceDesc for zkauth.AuthService.
var AuthService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AuthServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Register", Handler: unaryHandler(AuthService_Register_FullMethodName, AuthServiceServer.Register)},
		{MethodName: "LoginStart", Handler: unaryHandler(AuthService_LoginStart_FullMethodName, AuthServiceServer.LoginStart)},
		{MethodName: "LoginVerify", Handler: unaryHandler(AuthService_LoginVerify_FullMethodName, AuthServiceServer.LoginVerify)},
		{MethodName: "CompleteMFA", Handler: unaryHandler(AuthService_CompleteMFA_FullMethodName, AuthServiceServer.CompleteMFA)},
		{MethodName: "GetEnvelopeBundle", Handler: unaryHandler(AuthService_GetEnvelopeBundle_FullMethodName, AuthServiceServer.GetEnvelopeBundle)},
		{MethodName: "ChangePassword", Handler: unaryHandler(AuthService_ChangePassword_FullMethodName, AuthServiceServer.ChangePassword)},
		{MethodName: "EnrollTemplate", Handler: unaryHandler(AuthService_EnrollTemplate_FullMethodName, AuthServiceServer.EnrollTemplate)},
		{MethodName: "FetchTemplate", Handler: unaryHandler(AuthService_FetchTemplate_FullMethodName, AuthServiceServer.FetchTemplate)},
		{MethodName: "Ping", Handler: unaryHandler(AuthService_Ping_FullMethodName, AuthServiceServer.Ping)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "zkauth/auth.json",
}

func RegisterAuthServiceServer(s grpc.ServiceRegistrar, srv AuthServiceServer) {
	s.RegisterService(&AuthService_ServiceDesc, srv)
}

// AuthServiceClient is the client API for zkauth.AuthService.
type AuthServiceClient interface {
	Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error)
	LoginStart(ctx context.Context, in *LoginStartRequest, opts ...grpc.CallOption) (*LoginStartResponse, error)
	LoginVerify(ctx context.Context, in *LoginVerifyRequest, opts ...grpc.CallOption) (*LoginVerifyResponse, error)
	CompleteMFA(ctx context.Context, in *CompleteMFARequest, opts ...grpc.CallOption) (*CompleteMFAResponse, error)
	GetEnvelopeBundle(ctx context.Context, in *EnvelopeBundleRequest, opts ...grpc.CallOption) (*EnvelopeBundleResponse, error)
	ChangePassword(ctx context.Context, in *ChangePasswordRequest, opts ...grpc.CallOption) (*ChangePasswordResponse, error)
	EnrollTemplate(ctx context.Context, in *EnrollTemplateRequest, opts ...grpc.CallOption) (*EnrollTemplateResponse, error)
	FetchTemplate(ctx context.Context, in *FetchTemplateRequest, opts ...grpc.CallOption) (*FetchTemplateResponse, error)
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
}

type authServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewAuthServiceClient returns a client that always speaks the JSON codec.
func NewAuthServiceClient(cc grpc.ClientConnInterface) AuthServiceClient {
	return &authServiceClient{cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *authServiceClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error) {
	return invoke[RegisterResponse](ctx, c.cc, AuthService_Register_FullMethodName, in, opts)
}

func (c *authServiceClient) LoginStart(ctx context.Context, in *LoginStartRequest, opts ...grpc.CallOption) (*LoginStartResponse, error) {
	return invoke[LoginStartResponse](ctx, c.cc, AuthService_LoginStart_FullMethodName, in, opts)
}

func (c *authServiceClient) LoginVerify(ctx context.Context, in *LoginVerifyRequest, opts ...grpc.CallOption) (*LoginVerifyResponse, error) {
	return invoke[LoginVerifyResponse](ctx, c.cc, AuthService_LoginVerify_FullMethodName, in, opts)
}

func (c *authServiceClient) CompleteMFA(ctx context.Context, in *CompleteMFARequest, opts ...grpc.CallOption) (*CompleteMFAResponse, error) {
	return invoke[CompleteMFAResponse](ctx, c.cc, AuthService_CompleteMFA_FullMethodName, in, opts)
}

func (c *authServiceClient) GetEnvelopeBundle(ctx context.Context, in *EnvelopeBundleRequest, opts ...grpc.CallOption) (*EnvelopeBundleResponse, error) {
	return invoke[EnvelopeBundleResponse](ctx, c.cc, AuthService_GetEnvelopeBundle_FullMethodName, in, opts)
}

func (c *authServiceClient) ChangePassword(ctx context.Context, in *ChangePasswordRequest, opts ...grpc.CallOption) (*ChangePasswordResponse, error) {
	return invoke[ChangePasswordResponse](ctx, c.cc, AuthService_ChangePassword_FullMethodName, in, opts)
}

func (c *authServiceClient) EnrollTemplate(ctx context.Context, in *EnrollTemplateRequest, opts ...grpc.CallOption) (*EnrollTemplateResponse, error) {
	return invoke[EnrollTemplateResponse](ctx, c.cc, AuthService_EnrollTemplate_FullMethodName, in, opts)
}

func (c *authServiceClient) FetchTemplate(ctx context.Context, in *FetchTemplateRequest, opts ...grpc.CallOption) (*FetchTemplateResponse, error) {
	return invoke[FetchTemplateResponse](ctx, c.cc, AuthService_FetchTemplate_FullMethodName, in, opts)
}

func (c *authServiceClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, AuthService_Ping_FullMethodName, in, opts)
}
