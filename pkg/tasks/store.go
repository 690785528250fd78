package tasks

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/taskdeck/taskdeck/pkg/supabase"
)

// ErrNotFound covers both a task that does not exist and a task owned by a
// different identity; callers must not be able to tell them apart.
var ErrNotFound = errors.New("task not found")

var errTitleRequired = errors.New("title is required")

// Store hands out per-identity store handles. Task records are only
// reachable through a ScopedStore, so the owner filter is structural rather
// than a per-handler convention.
type Store interface {
	For(userID string) ScopedStore
}

// ScopedStore performs task operations on behalf of exactly one identity.
// Every read and write is conditioned on that identity's id.
type ScopedStore interface {
	Create(ctx context.Context, req *CreateTaskRequest) (*Task, error)
	List(ctx context.Context, filter ListFilter) ([]Task, error)
	Get(ctx context.Context, id string) (*Task, error)
	Update(ctx context.Context, id string, patch map[string]interface{}) (*Task, error)
	Delete(ctx context.Context, id string) error
}

// SupabaseStore stores tasks in the platform's tasks table
type SupabaseStore struct {
	client *supabase.Client
}

// NewSupabaseStore creates a platform-backed task store
func NewSupabaseStore(client *supabase.Client) *SupabaseStore {
	return &SupabaseStore{client: client}
}

// For returns a store handle scoped to one identity
func (s *SupabaseStore) For(userID string) ScopedStore {
	return &scopedStore{client: s.client, userID: userID}
}

type scopedStore struct {
	client *supabase.Client
	userID string
}

// taskInsert is the insert payload; the platform assigns id and timestamps
type taskInsert struct {
	UserID      string  `json:"user_id"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
	Priority    string  `json:"priority"`
}

func (s *scopedStore) Create(ctx context.Context, req *CreateTaskRequest) (*Task, error) {
	record := taskInsert{
		UserID:      s.userID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
	}

	var task Task
	if err := s.client.From("tasks").Insert(ctx, record, &task); err != nil {
		return nil, fmt.Errorf("inserting task: %w", err)
	}
	return &task, nil
}

func (s *scopedStore) List(ctx context.Context, filter ListFilter) ([]Task, error) {
	query := s.client.From("tasks").
		Eq("user_id", s.userID).
		OrderDesc("created_at")

	if filter.Completed != nil {
		query = query.Eq("completed", strconv.FormatBool(*filter.Completed))
	}
	if filter.Priority != "" {
		query = query.Eq("priority", filter.Priority)
	}

	var tasks []Task
	if err := query.Select(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	if tasks == nil {
		tasks = []Task{}
	}
	return tasks, nil
}

func (s *scopedStore) Get(ctx context.Context, id string) (*Task, error) {
	var task Task
	err := s.client.From("tasks").
		Eq("id", id).
		Eq("user_id", s.userID).
		SelectSingle(ctx, &task)
	if err != nil {
		if errors.Is(err, supabase.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fetching task: %w", err)
	}
	return &task, nil
}

func (s *scopedStore) Update(ctx context.Context, id string, patch map[string]interface{}) (*Task, error) {
	stamped := make(map[string]interface{}, len(patch)+1)
	for k, v := range patch {
		stamped[k] = v
	}
	stamped["updated_at"] = time.Now().UTC().Format(time.RFC3339)

	var task Task
	err := s.client.From("tasks").
		Eq("id", id).
		Eq("user_id", s.userID).
		Update(ctx, stamped, &task)
	if err != nil {
		if errors.Is(err, supabase.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("updating task: %w", err)
	}
	return &task, nil
}

func (s *scopedStore) Delete(ctx context.Context, id string) error {
	var deleted []Task
	err := s.client.From("tasks").
		Eq("id", id).
		Eq("user_id", s.userID).
		Delete(ctx, &deleted)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	if len(deleted) == 0 {
		return ErrNotFound
	}
	return nil
}
