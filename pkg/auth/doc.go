// Package auth resolves bearer credentials to identities.
//
// The identity provider is external; this package holds no credential state.
// A Verifier makes one introspection round trip per call and classifies the
// outcome:
//
//	identity, err := verifier.Verify(ctx, token)
//	switch {
//	case err == nil:                          // authenticated
//	case errors.Is(err, auth.ErrTokenRejected): // bad credential -> 401
//	default:                                  // verifier fault -> 500
//	}
//
// The split matters: a rejected credential is the caller's problem, a fault
// means the gate itself malfunctioned. The HTTP mapping lives in
// pkg/middleware.
//
// # Related Packages
//
//   - pkg/middleware: the request-level authentication gate
//   - pkg/supabase: the platform client the verifier delegates to
package auth
