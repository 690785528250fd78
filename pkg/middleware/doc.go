// Package middleware provides the HTTP authentication gate.
//
// Protected routes are wrapped with AuthMiddleware.Handler, which extracts
// the bearer credential, asks the verifier, and binds the resulting identity
// into the request context:
//
//	gate := middleware.NewAuthMiddleware(verifier)
//	protected.Use(gate.Handler)
//
// Handlers downstream recover the identity with RequireIdentity:
//
//	identity, ok := middleware.RequireIdentity(w, r)
//	if !ok {
//		return
//	}
//
// Status mapping: any credential problem is a uniform 401; a verifier fault
// (provider unreachable, unexpected response) is a 500.
package middleware
