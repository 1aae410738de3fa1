package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/rememberme/internal/common"
	"github.com/dmitrijs2005/rememberme/internal/server/rememberme"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

var _ RememberMeServer = (*GRPCServer)(nil)

func (s *GRPCServer) Issue(ctx context.Context, req *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	t := NewMetadataTransport(ctx)

	res, err := s.ledger.Issue(ctx, t, rememberme.IssueRequest{UserID: req.GetValue()})
	if err != nil {
		if errors.Is(err, common.ErrEmptyUserID) {
			return nil, status.Error(codes.InvalidArgument, "user id is required")
		}
		s.logger.Error(ctx, "issue failed", "error", err)
		return nil, status.Error(codes.Internal, "internal error")
	}
	if err := t.Err(); err != nil {
		s.logger.Error(ctx, "sending credential header failed", "digest", res.Digest, "error", err)
		return nil, status.Error(codes.Internal, "internal error")
	}

	return wrapperspb.String(res.Digest), nil
}

func (s *GRPCServer) Verify(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.StringValue, error) {
	userID, ok := UserIDFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "unauthorized")
	}
	return wrapperspb.String(userID), nil
}

// Revoke always succeeds for the caller; the cleared header goes out even
// when the store fails, and the failure is only logged.
func (s *GRPCServer) Revoke(ctx context.Context, _ *emptypb.Empty) (*emptypb.Empty, error) {
	if err := s.ledger.Revoke(ctx, NewMetadataTransport(ctx)); err != nil {
		s.logger.Error(ctx, "revoke failed, credential header cleared", "error", err)
	}
	return &emptypb.Empty{}, nil
}
