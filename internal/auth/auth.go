// Package auth verifies the shared API secret sent by clients.
package auth

import (
	"crypto/subtle"

	"github.com/danielgtaylor/huma/v2"
)

// MetadataKey marks an operation as public when set to true in its metadata.
const MetadataKey = "public"

// Request locations checked for the secret, in order.
const (
	HeaderAPIKey = "X-API-Key"
	QuerySecret  = "secret"
)

// Verifier compares presented keys against the configured secret.
type Verifier struct {
	secret []byte
}

// NewVerifier creates a verifier for secret. An empty secret matches nothing.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify reports whether key equals the configured secret.
func (v *Verifier) Verify(key string) bool {
	if len(v.secret) == 0 || key == "" {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(key), v.secret) == 1
}

// Presented returns the key sent with the request, header first.
func Presented(ctx huma.Context) string {
	if key := ctx.Header(HeaderAPIKey); key != "" {
		return key
	}

	return ctx.Query(QuerySecret)
}

// IsPublic reports whether op skips API key verification.
func IsPublic(op *huma.Operation) bool {
	if op == nil || op.Metadata == nil {
		return false
	}

	public, _ := op.Metadata[MetadataKey].(bool)

	return public
}
