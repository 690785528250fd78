package profiles

import (
	"context"
	"errors"
	"fmt"

	"github.com/taskdeck/taskdeck/pkg/supabase"
)

// ErrNotFound indicates the profile row does not exist
var ErrNotFound = errors.New("profile not found")

// Store persists profile rows, keyed by identity id
type Store interface {
	Exists(ctx context.Context, id string) (bool, error)
	Insert(ctx context.Context, id, email string) error
	Get(ctx context.Context, id string) (*Profile, error)
	Update(ctx context.Context, id string, patch map[string]interface{}) error
}

// SupabaseStore stores profiles in the platform's profiles table
type SupabaseStore struct {
	client *supabase.Client
}

// NewSupabaseStore creates a platform-backed profile store
func NewSupabaseStore(client *supabase.Client) *SupabaseStore {
	return &SupabaseStore{client: client}
}

func (s *SupabaseStore) Exists(ctx context.Context, id string) (bool, error) {
	var rows []struct {
		ID string `json:"id"`
	}
	err := s.client.From("profiles").Eq("id", id).Select(ctx, &rows)
	if err != nil {
		return false, fmt.Errorf("checking profile existence: %w", err)
	}
	return len(rows) > 0, nil
}

type profileInsert struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (s *SupabaseStore) Insert(ctx context.Context, id, email string) error {
	if err := s.client.From("profiles").Insert(ctx, profileInsert{ID: id, Email: email}, nil); err != nil {
		return fmt.Errorf("inserting profile: %w", err)
	}
	return nil
}

func (s *SupabaseStore) Get(ctx context.Context, id string) (*Profile, error) {
	var profile Profile
	err := s.client.From("profiles").Eq("id", id).SelectSingle(ctx, &profile)
	if err != nil {
		if errors.Is(err, supabase.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fetching profile: %w", err)
	}
	return &profile, nil
}

func (s *SupabaseStore) Update(ctx context.Context, id string, patch map[string]interface{}) error {
	if len(patch) == 0 {
		return nil
	}
	if err := s.client.From("profiles").Eq("id", id).Update(ctx, patch, nil); err != nil {
		return fmt.Errorf("updating profile: %w", err)
	}
	return nil
}
