package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/taskdeck/taskdeck/pkg/accounts"
	"github.com/taskdeck/taskdeck/pkg/auth"
	"github.com/taskdeck/taskdeck/pkg/httputil"
	"github.com/taskdeck/taskdeck/pkg/middleware"
	"github.com/taskdeck/taskdeck/pkg/observability"
	"github.com/taskdeck/taskdeck/pkg/profiles"
	"github.com/taskdeck/taskdeck/pkg/tasks"
)

// Deps are the collaborators the server routes requests to. Everything is
// constructed once in main and injected; the server holds no globals.
type Deps struct {
	Logger    *observability.Logger
	Metrics   *observability.Metrics
	Verifier  auth.Verifier
	TaskStore tasks.Store
	Profiles  *profiles.Service
	Directory accounts.Directory

	// ClientURL is the single allowed cross-origin caller
	ClientURL string

	// MaxUploadBytes caps request bodies (avatar uploads)
	MaxUploadBytes int64
}

// Server is the HTTP API surface
type Server struct {
	handler http.Handler
}

// NewServer wires routes, the authentication gate and the middleware chain
func NewServer(deps Deps) *Server {
	router := mux.NewRouter()

	// Liveness probe, plaintext
	router.HandleFunc("/", handleLiveness).Methods("GET")

	gate := middleware.NewAuthMiddleware(deps.Verifier)

	taskHandlers := tasks.NewHandlers(deps.TaskStore)
	profileHandlers := profiles.NewHandlers(deps.Profiles)
	accountHandlers := accounts.NewHandlers(deps.Directory)

	// Public routes
	router.HandleFunc("/api/tasks/health", taskHandlers.Health).Methods("GET")
	accountHandlers.RegisterRoutes(router.PathPrefix("/api/auth").Subrouter())

	// Protected routes, behind the gate
	taskRouter := router.PathPrefix("/api/tasks").Subrouter()
	taskRouter.Use(gate.Handler)
	taskHandlers.RegisterRoutes(taskRouter)

	avatarRouter := router.PathPrefix("/api/avatar").Subrouter()
	avatarRouter.Use(gate.Handler)
	profileHandlers.RegisterRoutes(avatarRouter)

	middlewares := []func(http.Handler) http.Handler{
		httputil.RequestIDMiddleware,
		httputil.LoggingMiddleware(deps.Logger),
		httputil.RecoveryMiddleware(deps.Logger),
		httputil.CORSMiddleware([]string{deps.ClientURL}),
	}
	if deps.Metrics != nil {
		middlewares = append(middlewares, observability.HTTPMetricsMiddleware(deps.Metrics))
	}
	if deps.MaxUploadBytes > 0 {
		middlewares = append(middlewares, httputil.MaxBytesMiddleware(deps.MaxUploadBytes))
	}

	return &Server{
		handler: httputil.Chain(middlewares...)(router),
	}
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func handleLiveness(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Taskdeck API is running"))
}
