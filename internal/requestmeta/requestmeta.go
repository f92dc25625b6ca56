// Package requestmeta carries per-request client information through the context.
package requestmeta

import (
	"context"
	"net"
	"strings"

	"github.com/danielgtaylor/huma/v2"
)

// HeaderRequestID is echoed on every response.
const HeaderRequestID = "X-Request-ID"

// Meta holds HTTP request metadata.
type Meta struct {
	RequestID string
	ClientIP  string
	UserAgent string
	Referrer  string
}

type metaKey struct{}

// WithMeta adds request metadata to ctx.
func WithMeta(ctx context.Context, meta Meta) context.Context {
	return context.WithValue(ctx, metaKey{}, meta)
}

// FromContext extracts request metadata from ctx.
func FromContext(ctx context.Context) Meta {
	if v, ok := ctx.Value(metaKey{}).(Meta); ok {
		return v
	}

	return Meta{}
}

// ClientIP resolves the caller address: the first X-Forwarded-For entry,
// then X-Real-IP, then the connection's remote address.
func ClientIP(ctx huma.Context) string {
	if xff := ctx.Header("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	if xri := strings.TrimSpace(ctx.Header("X-Real-IP")); xri != "" {
		return xri
	}

	addr := ctx.RemoteAddr()

	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}

	return host
}
