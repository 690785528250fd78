// Package httputil provides HTTP utilities for standardized request/response handling.
//
// # Response Helpers
//
//	httputil.WriteSuccess(w, data)
//	httputil.WriteCreated(w, resource)
//	httputil.WriteBadRequest(w, "title is required")
//	httputil.WriteUnauthorized(w, "invalid or expired token")
//	httputil.WriteNotFound(w, "task not found")
//	httputil.WriteInternalError(w, "error creating task")
//
// Error bodies are always `{"error": "<message>"}`.
//
// # Request Parsing
//
//	var req CreateTaskRequest
//	if !httputil.ParseJSONOrError(w, r, &req) {
//		return // error response already written
//	}
//	completed := httputil.ParseQueryBool(r, "completed") // nil when absent
//
// # Middleware
//
//	httputil.Chain(
//		httputil.RequestIDMiddleware,
//		httputil.LoggingMiddleware(logger),
//		httputil.RecoveryMiddleware(logger),
//		httputil.CORSMiddleware([]string{clientURL}),
//		httputil.MaxBytesMiddleware(10*1024*1024),
//	)
//
// # Related Packages
//
//   - pkg/middleware: authentication middleware
package httputil
