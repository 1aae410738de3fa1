package client

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/dmitrijs2005/rememberme/internal/logging"
	gs "github.com/dmitrijs2005/rememberme/internal/server/grpc"
	"github.com/dmitrijs2005/rememberme/internal/server/rememberme"
	"github.com/dmitrijs2005/rememberme/internal/server/repositories/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

const testIssuerKey = "login-service-key"

func newTestClient(t *testing.T) (*GRPCClient, *credentials.InMemoryRepository) {
	t.Helper()

	store := credentials.NewInMemoryRepository()
	ledger, err := rememberme.NewLedger(store, rememberme.DefaultOptions())
	require.NoError(t, err)
	srv, err := gs.NewGRPCServer("bufnet", logging.Nop{}, ledger, testIssuerKey)
	require.NoError(t, err)

	lis := bufconn.Listen(1 << 20)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = srv.Serve(ctx, lis)
	}()

	c, err := NewGRPCClient("passthrough:///bufnet", "RememberMeCookie",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
	)
	require.NoError(t, err)
	c.SetIssuerKey(testIssuerKey)

	t.Cleanup(func() {
		_ = c.Close()
		cancel()
		<-done
	})
	return c, store
}

func TestGRPCClient_Lifecycle(t *testing.T) {
	c, store := newTestClient(t)
	ctx := context.Background()

	_, err := c.Verify(ctx)
	assert.ErrorIs(t, err, ErrUnauthorized)

	digest, err := c.Issue(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, digest, 64)
	assert.Len(t, c.Secret(), 64)
	assert.Equal(t, 1, store.Len())

	userID, err := c.Verify(ctx)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)

	require.NoError(t, c.Revoke(ctx))
	assert.Empty(t, c.Secret())
	assert.Equal(t, 0, store.Len())

	_, err = c.Verify(ctx)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestGRPCClient_RestoredSecret(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	_, err := c.Issue(ctx, "u1")
	require.NoError(t, err)
	saved := c.Secret()

	c.SetSecret("")
	_, err = c.Verify(ctx)
	require.ErrorIs(t, err, ErrUnauthorized)

	c.SetSecret(saved)
	userID, err := c.Verify(ctx)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
}

func TestGRPCClient_IssueEmptyUser(t *testing.T) {
	c, _ := newTestClient(t)

	_, err := c.Issue(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(errors.Unwrap(err)))
}

func TestGRPCClient_IssueWithoutIssuerKey(t *testing.T) {
	c, store := newTestClient(t)
	c.SetIssuerKey("")

	_, err := c.Issue(context.Background(), "u1")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, c.Secret())
	assert.Equal(t, 0, store.Len())
}

func TestMapError(t *testing.T) {
	c := &GRPCClient{}

	assert.NoError(t, c.mapError(nil))
	assert.ErrorIs(t, c.mapError(status.Error(codes.Unauthenticated, "x")), ErrUnauthorized)
	assert.ErrorIs(t, c.mapError(status.Error(codes.PermissionDenied, "x")), ErrUnauthorized)
	assert.ErrorIs(t, c.mapError(status.Error(codes.Unavailable, "x")), ErrUnavailable)
	assert.ErrorIs(t, c.mapError(status.Error(codes.DeadlineExceeded, "x")), ErrUnavailable)

	err := c.mapError(status.Error(codes.Internal, "boom"))
	assert.ErrorContains(t, err, "rpc error")
}
