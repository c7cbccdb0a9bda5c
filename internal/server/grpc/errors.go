package grpc

import (
	"errors"
	"strings"

	"github.com/dmitrijs2005/zkauth/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// toStatus maps service errors onto gRPC codes. Authentication failures
// always carry the same generic message so callers cannot tell which
// factor failed.
func toStatus(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, common.ErrorUnauthorized):
		return status.Error(codes.Unauthenticated, common.GenericAuthFailureMessage)
	case errors.Is(err, common.ErrorValidation):
		return status.Error(codes.InvalidArgument, clientMessage(err, common.ErrorValidation))
	case errors.Is(err, common.ErrorInvalidSession):
		return status.Error(codes.InvalidArgument, common.ErrorInvalidSession.Error())
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, clientMessage(err, common.ErrorNotFound))
	case errors.Is(err, common.ErrorForbidden):
		return status.Error(codes.PermissionDenied, common.ErrorForbidden.Error())
	case errors.Is(err, common.ErrorAlreadyExists):
		return status.Error(codes.AlreadyExists, clientMessage(err, common.ErrorAlreadyExists))
	case errors.Is(err, common.ErrVersionConflict):
		return status.Error(codes.Aborted, common.ErrVersionConflict.Error())
	default:
		return status.Error(codes.Internal, common.ErrorInternal.Error())
	}
}

// clientMessage strips the sentinel prefix from "<sentinel>: detail".
func clientMessage(err, sentinel error) string {
	msg := err.Error()
	if detail, ok := strings.CutPrefix(msg, sentinel.Error()+": "); ok {
		return detail
	}
	return msg
}
