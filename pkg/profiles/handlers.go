package profiles

import (
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/taskdeck/taskdeck/pkg/httputil"
	"github.com/taskdeck/taskdeck/pkg/middleware"
	"github.com/taskdeck/taskdeck/pkg/observability"
)

// multipartMemoryLimit bounds how much of an upload is buffered in memory
// before spilling to disk. The overall body size cap is enforced by the
// server's MaxBytesMiddleware.
const multipartMemoryLimit = 8 << 20

// Handlers provides HTTP handlers for the profile and avatar API
type Handlers struct {
	service *Service
}

// NewHandlers creates new profile handlers
func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// RegisterRoutes registers the protected profile routes on a subrouter
// mounted at /api/avatar
func (h *Handlers) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/profile", h.GetProfile).Methods("GET")
	r.HandleFunc("/profile", h.UpdateProfile).Methods("PUT")
	r.HandleFunc("/upload", h.UploadAvatar).Methods("POST")
}

// GetProfile handles GET /api/avatar/profile
func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.RequireIdentity(w, r)
	if !ok {
		return
	}

	if err := h.service.EnsureProfile(r.Context(), identity.ID, identity.Email); err != nil {
		observability.FromContext(r.Context()).WithError(err).Error("profile provisioning failed")
		httputil.WriteInternalError(w, "failed to fetch profile")
		return
	}

	profile, err := h.service.GetProfile(r.Context(), identity.ID)
	if err != nil {
		observability.FromContext(r.Context()).WithError(err).Error("profile fetch failed")
		httputil.WriteInternalError(w, "failed to fetch profile")
		return
	}

	httputil.WriteSuccess(w, map[string]interface{}{"profile": profile})
}

// UpdateProfile handles PUT /api/avatar/profile
func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.RequireIdentity(w, r)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}

	if err := h.service.EnsureProfile(r.Context(), identity.ID, identity.Email); err != nil {
		observability.FromContext(r.Context()).WithError(err).Error("profile provisioning failed")
		httputil.WriteInternalError(w, "failed to update profile")
		return
	}

	profile, err := h.service.UpdateProfile(r.Context(), identity.ID, req.Patch())
	if err != nil {
		observability.FromContext(r.Context()).WithError(err).Error("profile update failed")
		httputil.WriteInternalError(w, "failed to update profile")
		return
	}

	httputil.WriteSuccess(w, map[string]interface{}{"profile": profile})
}

// UploadAvatar handles POST /api/avatar/upload (multipart field "avatar")
func (h *Handlers) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.RequireIdentity(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		httputil.WriteBadRequest(w, "no file uploaded")
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		httputil.WriteBadRequest(w, "no file uploaded")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil || len(data) == 0 {
		httputil.WriteBadRequest(w, "no file uploaded")
		return
	}

	if err := h.service.EnsureProfile(r.Context(), identity.ID, identity.Email); err != nil {
		observability.FromContext(r.Context()).WithError(err).Error("profile provisioning failed")
		httputil.WriteInternalError(w, "failed to upload avatar")
		return
	}

	profile, err := h.service.UploadAvatar(r.Context(), identity.ID, data, header.Header.Get("Content-Type"), header.Filename)
	if err != nil {
		observability.FromContext(r.Context()).WithError(err).Error("avatar upload failed")
		httputil.WriteInternalError(w, "failed to upload avatar")
		return
	}

	httputil.WriteSuccess(w, map[string]interface{}{"profile": profile})
}
