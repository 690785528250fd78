package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/taskdeck/taskdeck/pkg/supabase"
)

// introspector is the slice of the platform client the verifier needs
type introspector interface {
	GetUser(ctx context.Context, accessToken string) (*supabase.User, error)
}

// SupabaseVerifier validates bearer tokens by asking the platform's
// token-introspection endpoint. Stateless; no caching, no retries.
type SupabaseVerifier struct {
	client introspector
}

// NewSupabaseVerifier creates a verifier backed by the platform client
func NewSupabaseVerifier(client introspector) *SupabaseVerifier {
	return &SupabaseVerifier{client: client}
}

// Verify resolves a token to an Identity. Provider rejections (4xx, missing
// user) map to ErrTokenRejected; transport failures and provider 5xx surface
// as faults so the gate can answer 500 instead of blaming the credential.
func (v *SupabaseVerifier) Verify(ctx context.Context, token string) (*Identity, error) {
	user, err := v.client.GetUser(ctx, token)
	if err != nil {
		var apiErr *supabase.APIError
		if errors.As(err, &apiErr) && apiErr.IsClientError() {
			return nil, ErrTokenRejected
		}
		return nil, fmt.Errorf("token introspection failed: %w", err)
	}

	if user == nil || user.ID == "" {
		return nil, ErrTokenRejected
	}

	return &Identity{
		ID:       user.ID,
		Email:    user.Email,
		Metadata: user.UserMetadata,
	}, nil
}
