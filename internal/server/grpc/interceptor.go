package grpc

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/rememberme/internal/common"
	"github.com/dmitrijs2005/rememberme/internal/cryptox"
	"github.com/dmitrijs2005/rememberme/internal/server/models"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const credentialKey ctxKey = "credential"

var (
	healthPrefix   = "/" + healthpb.Health_ServiceDesc.ServiceName + "/"
	issuerKeyMDKey = strings.ToLower(common.IssuerKeyHeader)
)

// UserIDFromContext returns the user id verified by the interceptor.
func UserIDFromContext(ctx context.Context) (string, bool) {
	c, ok := CredentialFromContext(ctx)
	if !ok {
		return "", false
	}
	return c.UserID, true
}

func CredentialFromContext(ctx context.Context) (*models.Credential, bool) {
	c, ok := ctx.Value(credentialKey).(*models.Credential)
	return c, ok && c != nil
}

// authenticate checks the issuer key for Issue and the remember-me value in
// the incoming metadata for everything else not public.
func (s *GRPCServer) authenticate(ctx context.Context, method string) (context.Context, error) {
	if method == IssueMethod {
		if !cryptox.KeyMatches(firstMD(ctx, issuerKeyMDKey), s.issuerKey) {
			return nil, status.Error(codes.Unauthenticated, "issuer key required")
		}
		return ctx, nil
	}
	if s.public[method] || strings.HasPrefix(method, healthPrefix) {
		return ctx, nil
	}

	t := NewMetadataTransport(ctx)
	if _, ok := t.Get(s.cookieName); !ok {
		return nil, status.Error(codes.Unauthenticated, "missing credential")
	}

	cred, err := s.ledger.Verify(ctx, t, "")
	if err != nil {
		s.logger.Error(ctx, "credential verification failed", "method", method, "error", err)
		return nil, status.Error(codes.Internal, "internal error")
	}
	if cred == nil {
		return nil, status.Error(codes.Unauthenticated, "invalid credential")
	}

	return context.WithValue(ctx, credentialKey, cred), nil
}

func firstMD(ctx context.Context, key string) string {
	md, _ := metadata.FromIncomingContext(ctx)
	if v := md.Get(key); len(v) > 0 {
		return v[0]
	}
	return ""
}

func (s *GRPCServer) rememberMeInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	ctx, err := s.authenticate(ctx, info.FullMethod)
	if err != nil {
		return nil, err
	}
	return handler(ctx, req)
}

type wrappedStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (w *wrappedStream) Context() context.Context { return w.ctx }

func (s *GRPCServer) rememberMeStreamInterceptor(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
	ctx, err := s.authenticate(ss.Context(), info.FullMethod)
	if err != nil {
		return err
	}
	return handler(srv, &wrappedStream{ServerStream: ss, ctx: ctx})
}
