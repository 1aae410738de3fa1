package grpc

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/rememberme/internal/server/models"
	"github.com/dmitrijs2005/rememberme/internal/server/rememberme"
	"github.com/dmitrijs2005/rememberme/internal/server/repositories/credentials"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type failingStore struct {
	credentials.Repository
}

func (failingStore) FindByHash(context.Context, string) (*models.Credential, error) {
	return nil, errors.New("db down")
}

const testIssuerKey = "login-service-key"

// helper to build server
func newTestServer(t *testing.T, store credentials.Repository) *GRPCServer {
	t.Helper()
	ledger, err := rememberme.NewLedger(store, rememberme.DefaultOptions())
	if err != nil {
		t.Fatalf("NewLedger error: %v", err)
	}
	s, err := NewGRPCServer("127.0.0.1:0", nopLogger{}, ledger, testIssuerKey)
	if err != nil {
		t.Fatalf("NewGRPCServer error: %v", err)
	}
	return s
}

func issueSecret(t *testing.T, s *GRPCServer, userID string) string {
	t.Helper()
	res, err := s.ledger.Issue(context.Background(), nil, rememberme.IssueRequest{UserID: userID})
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	return res.Secret
}

func withCookie(secret string) context.Context {
	md := metadata.Pairs("remembermecookie", secret)
	return metadata.NewIncomingContext(context.Background(), md)
}

func TestInterceptor_PublicMethod_AllowsWithoutCredential(t *testing.T) {
	s := newTestServer(t, credentials.NewInMemoryRepository())

	for _, method := range []string{RevokeMethod, "/grpc.health.v1.Health/Check"} {
		handlerCalled := false
		h := func(ctx context.Context, req interface{}) (interface{}, error) {
			handlerCalled = true
			return "ok", nil
		}

		resp, err := s.rememberMeInterceptor(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: method}, h)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", method, err)
		}
		if !handlerCalled || resp != "ok" {
			t.Fatalf("%s: handler was not called", method)
		}
	}
}

func withIssuerKey(key string) context.Context {
	return metadata.NewIncomingContext(context.Background(), metadata.Pairs("x-issuer-key", key))
}

func TestInterceptor_IssueRequiresIssuerKey(t *testing.T) {
	s := newTestServer(t, credentials.NewInMemoryRepository())

	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		t.Fatal("handler should not be called without the issuer key")
		return nil, nil
	}
	info := &grpc.UnaryServerInfo{FullMethod: IssueMethod}

	for name, ctx := range map[string]context.Context{
		"anonymous":   context.Background(),
		"wrong key":   withIssuerKey("guess"),
		"cookie only": withCookie(issueSecret(t, s, "u1")),
	} {
		_, err := s.rememberMeInterceptor(ctx, nil, info, h)
		if status.Code(err) != codes.Unauthenticated {
			t.Fatalf("%s: expected Unauthenticated, got %v", name, err)
		}
	}
}

func TestInterceptor_IssueWithIssuerKey(t *testing.T) {
	s := newTestServer(t, credentials.NewInMemoryRepository())

	called := false
	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		called = true
		return "ok", nil
	}

	if _, err := s.rememberMeInterceptor(withIssuerKey(testIssuerKey), nil, &grpc.UnaryServerInfo{FullMethod: IssueMethod}, h); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatal("handler was not called")
	}
}

func TestInterceptor_MissingCredential(t *testing.T) {
	s := newTestServer(t, credentials.NewInMemoryRepository())

	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		t.Fatal("handler should not be called when credential missing")
		return nil, nil
	}

	_, err := s.rememberMeInterceptor(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: VerifyMethod}, h)
	if status.Code(err) != codes.Unauthenticated {
		t.Fatalf("expected Unauthenticated, got %v", status.Code(err))
	}
	if status.Convert(err).Message() != "missing credential" {
		t.Fatalf("expected 'missing credential', got %q", status.Convert(err).Message())
	}
}

func TestInterceptor_InvalidCredential(t *testing.T) {
	s := newTestServer(t, credentials.NewInMemoryRepository())

	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		t.Fatal("handler should not be called for invalid credential")
		return nil, nil
	}

	_, err := s.rememberMeInterceptor(withCookie("forged"), nil, &grpc.UnaryServerInfo{FullMethod: VerifyMethod}, h)
	if status.Code(err) != codes.Unauthenticated {
		t.Fatalf("expected Unauthenticated, got %v", status.Code(err))
	}
}

func TestInterceptor_StorageFailure_IsInternal(t *testing.T) {
	s := newTestServer(t, failingStore{credentials.NewInMemoryRepository()})

	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		t.Fatal("handler should not be called on storage failure")
		return nil, nil
	}

	_, err := s.rememberMeInterceptor(withCookie("anything"), nil, &grpc.UnaryServerInfo{FullMethod: VerifyMethod}, h)
	if status.Code(err) != codes.Internal {
		t.Fatalf("expected Internal, got %v", status.Code(err))
	}
}

func TestInterceptor_ValidCredential_SetsUserID(t *testing.T) {
	s := newTestServer(t, credentials.NewInMemoryRepository())
	secret := issueSecret(t, s, "user-123")

	var got string
	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		got, _ = UserIDFromContext(ctx)
		return "ok", nil
	}

	resp, err := s.rememberMeInterceptor(withCookie(secret), nil, &grpc.UnaryServerInfo{FullMethod: VerifyMethod}, h)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp != "ok" {
		t.Fatalf("unexpected handler resp: %v", resp)
	}
	if got != "user-123" {
		t.Fatalf("user id not propagated in context: got %q", got)
	}
}

func TestUserIDFromContext_Empty(t *testing.T) {
	if _, ok := UserIDFromContext(context.Background()); ok {
		t.Fatal("expected no user id in empty context")
	}
}
