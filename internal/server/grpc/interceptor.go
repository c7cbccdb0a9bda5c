package grpc

import (
	"context"
	"time"

	"github.com/dmitrijs2005/zkauth/internal/api"
	"github.com/dmitrijs2005/zkauth/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const accessTokenKey ctxKey = "accessToken"

// protectedMethods need an access token in metadata.
var protectedMethods = map[string]bool{
	api.AuthService_EnrollTemplate_FullMethodName: true,
	api.AuthService_FetchTemplate_FullMethodName:  true,
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {

	if protectedMethods[info.FullMethod] {

		var accessToken string
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			values := md.Get(common.AccessTokenHeaderName)
			if len(values) > 0 {
				accessToken = values[0]
			}
		}
		if len(accessToken) == 0 {
			return nil, status.Error(codes.Unauthenticated, "missing token")
		}

		ctx = context.WithValue(ctx, accessTokenKey, accessToken)
	}

	return handler(ctx, req)
}

func accessTokenFromContext(ctx context.Context) string {
	v, _ := ctx.Value(accessTokenKey).(string)
	return v
}

// loggingInterceptor records method, outcome code and latency. Request
// bodies are never logged since they carry passwords and proofs.
func (s *GRPCServer) loggingInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()
	resp, err := handler(ctx, req)

	code := status.Code(err)
	args := []any{"method", info.FullMethod, "code", code.String(), "duration", time.Since(start)}
	switch code {
	case codes.OK:
		s.logger.Info(ctx, "request handled", args...)
	case codes.Internal, codes.Unknown:
		s.logger.Error(ctx, "request failed", args...)
	default:
		s.logger.Warn(ctx, "request rejected", args...)
	}
	return resp, err
}
