package accounts

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/taskdeck/taskdeck/pkg/httputil"
	"github.com/taskdeck/taskdeck/pkg/observability"
	"github.com/taskdeck/taskdeck/pkg/supabase"
)

// Directory is the slice of the platform client account handlers need:
// administrative user creation and password credential exchange.
type Directory interface {
	AdminCreateUser(ctx context.Context, email, password string) (*supabase.User, error)
	SignInWithPassword(ctx context.Context, email, password string) (*supabase.Session, error)
}

// Handlers provides HTTP handlers for signup and login
type Handlers struct {
	directory Directory
}

// NewHandlers creates new account handlers
func NewHandlers(directory Directory) *Handlers {
	return &Handlers{directory: directory}
}

// RegisterRoutes registers the public account routes on a subrouter mounted
// at /api/auth
func (h *Handlers) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/signup", h.Signup).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup handles POST /api/auth/signup. Account creation is delegated to the
// provider's admin capability with auto-confirm; provider validation errors
// (duplicate email, weak password) pass through as 400 with the provider's
// message.
func (h *Handlers) Signup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		httputil.WriteBadRequest(w, "email and password required")
		return
	}

	user, err := h.directory.AdminCreateUser(r.Context(), req.Email, req.Password)
	if err != nil {
		var apiErr *supabase.APIError
		if errors.As(err, &apiErr) && apiErr.IsClientError() {
			httputil.WriteBadRequest(w, apiErr.Message)
			return
		}
		observability.FromContext(r.Context()).WithError(err).Error("signup failed")
		httputil.WriteInternalError(w, "signup failed")
		return
	}

	httputil.WriteCreated(w, map[string]interface{}{
		"message": "Signup successful",
		"user": map[string]string{
			"id":    user.ID,
			"email": user.Email,
		},
	})
}

// Login handles POST /api/auth/login. On success the provider's tokens are
// returned verbatim and the user object carries the provider's metadata.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		httputil.WriteBadRequest(w, "email and password required")
		return
	}

	session, err := h.directory.SignInWithPassword(r.Context(), req.Email, req.Password)
	if err != nil {
		var apiErr *supabase.APIError
		if errors.As(err, &apiErr) && apiErr.IsClientError() {
			httputil.WriteBadRequest(w, apiErr.Message)
			return
		}
		observability.FromContext(r.Context()).WithError(err).Error("login failed")
		httputil.WriteInternalError(w, "login failed")
		return
	}

	user := map[string]interface{}{}
	for k, v := range session.User.UserMetadata {
		user[k] = v
	}
	user["id"] = session.User.ID
	user["email"] = session.User.Email

	httputil.WriteSuccess(w, map[string]interface{}{
		"message":      "Login successful",
		"user":         user,
		"accessToken":  session.AccessToken,
		"refreshToken": session.RefreshToken,
	})
}
