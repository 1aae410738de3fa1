package client

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/rememberme/internal/common"
	gs "github.com/dmitrijs2005/rememberme/internal/server/grpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type GRPCClient struct {
	endpointURL string
	cookieName  string
	conn        *grpc.ClientConn

	mu        sync.Mutex
	secret    string
	issuerKey string
}

// NewGRPCClient connects to endpointURL. Extra dial options are appended to
// the defaults (insecure transport, secret interceptor).
func NewGRPCClient(endpointURL, cookieName string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, cookieName: strings.ToLower(cookieName)}

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.secretInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(endpointURL, dialOpts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	return c, nil
}

func (c *GRPCClient) Close() error {
	return c.conn.Close()
}

// Secret returns the secret the client currently holds.
func (c *GRPCClient) Secret() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.secret
}

// SetSecret replaces the held secret, e.g. with one restored from disk.
func (c *GRPCClient) SetSecret(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.secret = s
}

// SetIssuerKey sets the key Issue presents; the server refuses issuance
// without it.
func (c *GRPCClient) SetIssuerKey(k string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.issuerKey = k
}

func withSecret(ctx context.Context, name, secret string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(name)
	if secret != "" {
		md.Set(name, secret)
	}
	return metadata.NewOutgoingContext(ctx, md)
}

// secretInterceptor attaches the held secret and applies the response header
// the server uses to set or clear it.
func (c *GRPCClient) secretInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	ctx = withSecret(ctx, c.cookieName, c.Secret())

	var header metadata.MD
	opts = append(opts, grpc.Header(&header))

	err := invoker(ctx, method, req, reply, cc, opts...)

	if values, ok := header[c.cookieName]; ok {
		v := ""
		if len(values) > 0 {
			v = values[0]
		}
		c.SetSecret(v)
	}
	return err
}

// Issue asks the server to issue a credential for userID and keeps the
// returned secret. It returns the digest.
func (c *GRPCClient) Issue(ctx context.Context, userID string) (string, error) {
	c.mu.Lock()
	key := c.issuerKey
	c.mu.Unlock()
	if key != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, strings.ToLower(common.IssuerKeyHeader), key)
	}

	resp := new(wrapperspb.StringValue)
	if err := c.conn.Invoke(ctx, gs.IssueMethod, wrapperspb.String(userID), resp); err != nil {
		return "", c.mapError(err)
	}
	if c.Secret() == "" {
		return "", ErrNoSecret
	}
	return resp.GetValue(), nil
}

// Verify returns the user id bound to the held secret.
func (c *GRPCClient) Verify(ctx context.Context) (string, error) {
	resp := new(wrapperspb.StringValue)
	if err := c.conn.Invoke(ctx, gs.VerifyMethod, &emptypb.Empty{}, resp); err != nil {
		return "", c.mapError(err)
	}
	return resp.GetValue(), nil
}

// Revoke revokes the held secret on the server and forgets it.
func (c *GRPCClient) Revoke(ctx context.Context) error {
	if err := c.conn.Invoke(ctx, gs.RevokeMethod, &emptypb.Empty{}, &emptypb.Empty{}); err != nil {
		return c.mapError(err)
	}
	c.SetSecret("")
	return nil
}

func (c *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
