package tasks

import (
	"strings"
	"time"
)

// DefaultPriority is applied when a task is created without one
const DefaultPriority = "medium"

// Task is one user-owned task record, as stored by the platform
type Task struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	DueDate     *string   `json:"due_date"`
	Priority    string    `json:"priority"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateTaskRequest is the POST /api/tasks body
type CreateTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	DueDate     *string `json:"dueDate"`
	Priority    string  `json:"priority"`
}

// Validate checks required fields and applies defaults
func (r *CreateTaskRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return errTitleRequired
	}
	if r.Priority == "" {
		r.Priority = DefaultPriority
	}
	return nil
}

// UpdateTaskRequest is the PUT /api/tasks/{id} body. Only these fields can
// be modified; anything else in the body is silently dropped by decoding.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
	DueDate     *string `json:"due_date"`
	Priority    *string `json:"priority"`
}

// Patch converts the request into a column patch containing only the fields
// the caller supplied
func (r *UpdateTaskRequest) Patch() map[string]interface{} {
	patch := map[string]interface{}{}
	if r.Title != nil {
		patch["title"] = *r.Title
	}
	if r.Description != nil {
		patch["description"] = *r.Description
	}
	if r.Completed != nil {
		patch["completed"] = *r.Completed
	}
	if r.DueDate != nil {
		patch["due_date"] = *r.DueDate
	}
	if r.Priority != nil {
		patch["priority"] = *r.Priority
	}
	return patch
}

// ListFilter narrows a task listing. Filters combine with AND semantics.
type ListFilter struct {
	Completed *bool
	Priority  string
}
