package tasks

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/taskdeck/taskdeck/pkg/httputil"
	"github.com/taskdeck/taskdeck/pkg/middleware"
	"github.com/taskdeck/taskdeck/pkg/observability"
)

// Handlers provides HTTP handlers for the task API
type Handlers struct {
	store Store
}

// NewHandlers creates new task handlers
func NewHandlers(store Store) *Handlers {
	return &Handlers{store: store}
}

// RegisterRoutes registers the protected task routes on a subrouter mounted
// at /api/tasks. The public health route is registered separately by the
// server, outside the authentication gate.
func (h *Handlers) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("", h.ListTasks).Methods("GET")
	r.HandleFunc("", h.CreateTask).Methods("POST")
	r.HandleFunc("/{id}", h.GetTask).Methods("GET")
	r.HandleFunc("/{id}", h.UpdateTask).Methods("PUT")
	r.HandleFunc("/{id}", h.DeleteTask).Methods("DELETE")
}

// Health handles GET /api/tasks/health
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	httputil.WriteSuccess(w, map[string]string{
		"status":  "ok",
		"message": "Tasks API running",
	})
}

// CreateTask handles POST /api/tasks
func (h *Handlers) CreateTask(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.RequireIdentity(w, r)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	task, err := h.store.For(identity.ID).Create(r.Context(), &req)
	if err != nil {
		observability.FromContext(r.Context()).WithError(err).Error("error creating task")
		httputil.WriteInternalError(w, "error creating task")
		return
	}

	httputil.WriteCreated(w, task)
}

// ListTasks handles GET /api/tasks
func (h *Handlers) ListTasks(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.RequireIdentity(w, r)
	if !ok {
		return
	}

	filter := ListFilter{
		Completed: httputil.ParseQueryBool(r, "completed"),
		Priority:  httputil.ParseQueryString(r, "priority"),
	}

	tasks, err := h.store.For(identity.ID).List(r.Context(), filter)
	if err != nil {
		observability.FromContext(r.Context()).WithError(err).Error("error fetching tasks")
		httputil.WriteInternalError(w, "error fetching tasks")
		return
	}

	httputil.WriteSuccess(w, tasks)
}

// GetTask handles GET /api/tasks/{id}
func (h *Handlers) GetTask(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.RequireIdentity(w, r)
	if !ok {
		return
	}
	id := mux.Vars(r)["id"]

	task, err := h.store.For(identity.ID).Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httputil.WriteNotFound(w, "task not found")
			return
		}
		observability.FromContext(r.Context()).WithError(err).Error("error fetching task")
		httputil.WriteInternalError(w, "error fetching task")
		return
	}

	httputil.WriteSuccess(w, task)
}

// UpdateTask handles PUT /api/tasks/{id}
func (h *Handlers) UpdateTask(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.RequireIdentity(w, r)
	if !ok {
		return
	}
	id := mux.Vars(r)["id"]

	var req UpdateTaskRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}

	task, err := h.store.For(identity.ID).Update(r.Context(), id, req.Patch())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httputil.WriteNotFound(w, "task not found")
			return
		}
		observability.FromContext(r.Context()).WithError(err).Error("error updating task")
		httputil.WriteInternalError(w, "error updating task")
		return
	}

	httputil.WriteSuccess(w, task)
}

// DeleteTask handles DELETE /api/tasks/{id}
func (h *Handlers) DeleteTask(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.RequireIdentity(w, r)
	if !ok {
		return
	}
	id := mux.Vars(r)["id"]

	if err := h.store.For(identity.ID).Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			httputil.WriteNotFound(w, "task not found")
			return
		}
		observability.FromContext(r.Context()).WithError(err).Error("error deleting task")
		httputil.WriteInternalError(w, "error deleting task")
		return
	}

	httputil.WriteSuccess(w, map[string]string{"message": "Task deleted successfully"})
}
