package profiles

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/taskdeck/taskdeck/pkg/observability"
)

// BlobStore is the slice of the platform client the avatar flow needs
type BlobStore interface {
	UploadObject(ctx context.Context, bucket, path string, data []byte, contentType string, upsert bool) error
	RemoveObject(ctx context.Context, bucket, path string) error
	PublicURL(bucket, path string) string
}

// Service implements profile provisioning and the avatar upload sequence
type Service struct {
	store  Store
	blobs  BlobStore
	bucket string

	// now is injectable for deterministic cache-buster and filename tests
	now func() time.Time
}

// NewService creates a profile service writing avatars to the given bucket
func NewService(store Store, blobs BlobStore, bucket string) *Service {
	return &Service{
		store:  store,
		blobs:  blobs,
		bucket: bucket,
		now:    time.Now,
	}
}

// EnsureProfile provisions a profile row for the identity if none exists.
// Idempotent via check-then-insert; a concurrent first request may also see
// "absent" and insert, in which case the store's primary-key constraint is
// the arbiter, not this layer.
func (s *Service) EnsureProfile(ctx context.Context, id, email string) error {
	exists, err := s.store.Exists(ctx, id)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return s.store.Insert(ctx, id, email)
}

// GetProfile fetches the profile and cache-busts the avatar URL. The query
// parameter is appended at read time and never persisted, so two sequential
// reads yield textually different URLs and clients cannot serve a stale
// cached image.
func (s *Service) GetProfile(ctx context.Context, id string) (*Profile, error) {
	profile, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if profile.AvatarURL != nil && *profile.AvatarURL != "" {
		busted := fmt.Sprintf("%s?t=%d", *profile.AvatarURL, s.now().UnixMilli())
		profile.AvatarURL = &busted
	}
	return profile, nil
}

// UpdateProfile applies a partial update and returns the fresh profile
func (s *Service) UpdateProfile(ctx context.Context, id string, patch map[string]interface{}) (*Profile, error) {
	if err := s.store.Update(ctx, id, patch); err != nil {
		return nil, err
	}
	return s.GetProfile(ctx, id)
}

// UploadAvatar runs the avatar sequence: store the blob under a path owned
// by the identity, write its public URL onto the profile, and return the
// fresh profile. The sequence is not transactional; if the profile write
// fails after the blob is stored, the blob is removed best-effort so a
// failed upload does not leave an orphaned object behind.
func (s *Service) UploadAvatar(ctx context.Context, id string, data []byte, contentType, originalFilename string) (*Profile, error) {
	fileName := fmt.Sprintf("%d%s", s.now().UnixMilli(), path.Ext(originalFilename))
	objectPath := id + "/" + fileName

	if err := s.blobs.UploadObject(ctx, s.bucket, objectPath, data, contentType, true); err != nil {
		return nil, fmt.Errorf("uploading avatar: %w", err)
	}

	publicURL := s.blobs.PublicURL(s.bucket, objectPath)
	if err := s.store.Update(ctx, id, map[string]interface{}{"avatar_url": publicURL}); err != nil {
		s.removeOrphan(ctx, objectPath)
		return nil, fmt.Errorf("saving avatar URL: %w", err)
	}

	return s.GetProfile(ctx, id)
}

// removeOrphan deletes a stored blob that no profile references. Best
// effort: the upload already failed, cleanup failure only means an orphan.
func (s *Service) removeOrphan(ctx context.Context, objectPath string) {
	if err := s.blobs.RemoveObject(ctx, s.bucket, objectPath); err != nil {
		observability.FromContext(ctx).WithError(err).
			WithField("object_path", objectPath).
			Warn("failed to remove orphaned avatar object")
	}
}
