// Package api assembles the HTTP surface: routing, the authentication gate
// on protected subtrees, and the outer middleware chain (request id,
// logging, recovery, CORS, metrics, body size cap).
//
// Route map:
//
//	GET  /                      liveness (plaintext, public)
//	POST /api/auth/signup       public
//	POST /api/auth/login        public
//	GET  /api/tasks/health      public
//	*    /api/tasks[...]        bearer auth
//	*    /api/avatar/...        bearer auth
package api
