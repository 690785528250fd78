package auth

import (
	"context"
	"errors"

	"github.com/taskdeck/taskdeck/pkg/contextkeys"
)

// ErrTokenRejected indicates the identity provider refused the credential:
// the token is invalid, expired, or belongs to no user. Distinct from
// transport faults, which mean the verifier itself could not do its job.
var ErrTokenRejected = errors.New("token rejected")

// Identity is the authenticated principal associated with a request, as
// resolved by the external identity provider. This service only reads it.
type Identity struct {
	ID       string
	Email    string
	Metadata map[string]interface{}
}

// Verifier validates an opaque bearer credential against the identity
// provider. Implementations must make exactly one provider round trip and
// never partially trust a response: any provider rejection or missing-user
// result is ErrTokenRejected, anything else is a fault.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

// WithIdentity binds the authenticated identity into the context
func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return contextkeys.WithIdentity(ctx, identity)
}

// IdentityFromContext returns the authenticated identity, if any
func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	identity, ok := ctx.Value(contextkeys.IdentityKey).(*Identity)
	if !ok || identity == nil {
		return nil, false
	}
	return identity, true
}
