package grpc

import (
	"context"
	"strings"
	"time"

	"github.com/dmitrijs2005/rememberme/internal/server/rememberme"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// expiresSuffix names the companion header that carries a value's expiry.
const expiresSuffix = "-expires"

// MetadataTransport carries remember-me secrets in gRPC metadata: it reads
// incoming request metadata and answers with response headers. One transport
// serves one call.
type MetadataTransport struct {
	ctx   context.Context
	local map[string]*string
	err   error
}

var _ rememberme.Transport = (*MetadataTransport)(nil)

func NewMetadataTransport(ctx context.Context) *MetadataTransport {
	return &MetadataTransport{ctx: ctx, local: make(map[string]*string)}
}

func (t *MetadataTransport) Get(name string) (string, bool) {
	name = strings.ToLower(name)
	if v, ok := t.local[name]; ok {
		if v == nil {
			return "", false
		}
		return *v, true
	}
	md, ok := metadata.FromIncomingContext(t.ctx)
	if !ok {
		return "", false
	}
	values := md.Get(name)
	if len(values) == 0 || values[0] == "" {
		return "", false
	}
	return values[0], true
}

func (t *MetadataTransport) Set(name, value string, attrs rememberme.CookieAttributes) {
	name = strings.ToLower(name)
	t.local[name] = &value
	t.sendHeader(name, value, attrs.Expires)
}

func (t *MetadataTransport) Clear(name string, _ rememberme.CookieAttributes) {
	name = strings.ToLower(name)
	t.local[name] = nil
	t.sendHeader(name, "", time.Unix(0, 0))
}

// Err reports the first failure to attach a response header, for example when
// the context does not belong to a server call.
func (t *MetadataTransport) Err() error {
	return t.err
}

func (t *MetadataTransport) sendHeader(name, value string, expires time.Time) {
	md := metadata.Pairs(name, value)
	if !expires.IsZero() {
		md.Set(name+expiresSuffix, expires.UTC().Format(time.RFC3339))
	}
	if err := grpc.SetHeader(t.ctx, md); err != nil && t.err == nil {
		t.err = err
	}
}
