package profiles

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	profiles  map[string]*Profile
	existsErr error
	updateErr error

	inserted []string
	patches  []map[string]interface{}
}

func newMemStore() *memStore {
	return &memStore{profiles: map[string]*Profile{}}
}

func (m *memStore) Exists(ctx context.Context, id string) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	_, ok := m.profiles[id]
	return ok, nil
}

func (m *memStore) Insert(ctx context.Context, id, email string) error {
	m.inserted = append(m.inserted, id)
	m.profiles[id] = &Profile{ID: id, Email: email}
	return nil
}

func (m *memStore) Get(ctx context.Context, id string) (*Profile, error) {
	p, ok := m.profiles[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (m *memStore) Update(ctx context.Context, id string, patch map[string]interface{}) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.patches = append(m.patches, patch)
	p, ok := m.profiles[id]
	if !ok {
		return ErrNotFound
	}
	if v, ok := patch["avatar_url"].(string); ok {
		p.AvatarURL = &v
	}
	if v, ok := patch["username"].(string); ok {
		p.Username = &v
	}
	return nil
}

type fakeBlobs struct {
	uploads  []string
	removals []string

	uploadErr error
	baseURL   string
}

func (f *fakeBlobs) UploadObject(ctx context.Context, bucket, path string, data []byte, contentType string, upsert bool) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	f.uploads = append(f.uploads, bucket+"/"+path)
	return nil
}

func (f *fakeBlobs) RemoveObject(ctx context.Context, bucket, path string) error {
	f.removals = append(f.removals, bucket+"/"+path)
	return nil
}

func (f *fakeBlobs) PublicURL(bucket, path string) string {
	return f.baseURL + "/" + bucket + "/" + path
}

func newTestService(store Store, blobs BlobStore, at time.Time) *Service {
	svc := NewService(store, blobs, "avatars")
	svc.now = func() time.Time { return at }
	return svc
}

func TestService_EnsureProfile(t *testing.T) {
	t.Run("provisions once", func(t *testing.T) {
		store := newMemStore()
		svc := newTestService(store, &fakeBlobs{}, time.Now())

		require.NoError(t, svc.EnsureProfile(context.Background(), "user-1", "a@x.com"))
		require.NoError(t, svc.EnsureProfile(context.Background(), "user-1", "a@x.com"))

		assert.Equal(t, []string{"user-1"}, store.inserted)
	})

	t.Run("existence check failure propagates", func(t *testing.T) {
		store := newMemStore()
		store.existsErr = errors.New("platform down")
		svc := newTestService(store, &fakeBlobs{}, time.Now())

		assert.Error(t, svc.EnsureProfile(context.Background(), "user-1", "a@x.com"))
	})
}

func TestService_GetProfile(t *testing.T) {
	t.Run("cache-busts a stored avatar URL", func(t *testing.T) {
		store := newMemStore()
		url := "https://cdn.example.com/avatars/user-1/1.png"
		store.profiles["user-1"] = &Profile{ID: "user-1", Email: "a@x.com", AvatarURL: &url}

		svc := newTestService(store, &fakeBlobs{}, time.UnixMilli(1700000000000))

		profile, err := svc.GetProfile(context.Background(), "user-1")
		require.NoError(t, err)
		require.NotNil(t, profile.AvatarURL)
		assert.Equal(t, url+"?t=1700000000000", *profile.AvatarURL)

		// the buster is read-time only; the stored row keeps the bare URL
		assert.Equal(t, url, *store.profiles["user-1"].AvatarURL)
	})

	t.Run("sequential reads yield different URLs", func(t *testing.T) {
		store := newMemStore()
		url := "https://cdn.example.com/a.png"
		store.profiles["user-1"] = &Profile{ID: "user-1", AvatarURL: &url}

		svc := NewService(store, &fakeBlobs{}, "avatars")
		stamps := []int64{1000, 2000}
		svc.now = func() time.Time {
			at := time.UnixMilli(stamps[0])
			stamps = stamps[1:]
			return at
		}

		first, err := svc.GetProfile(context.Background(), "user-1")
		require.NoError(t, err)
		second, err := svc.GetProfile(context.Background(), "user-1")
		require.NoError(t, err)
		assert.NotEqual(t, *first.AvatarURL, *second.AvatarURL)
	})

	t.Run("leaves an absent avatar alone", func(t *testing.T) {
		store := newMemStore()
		store.profiles["user-1"] = &Profile{ID: "user-1"}
		svc := newTestService(store, &fakeBlobs{}, time.Now())

		profile, err := svc.GetProfile(context.Background(), "user-1")
		require.NoError(t, err)
		assert.Nil(t, profile.AvatarURL)
	})
}

func TestService_UploadAvatar(t *testing.T) {
	t.Run("stores the blob under the identity's prefix", func(t *testing.T) {
		store := newMemStore()
		store.profiles["user-1"] = &Profile{ID: "user-1"}
		blobs := &fakeBlobs{baseURL: "https://cdn.example.com"}
		svc := newTestService(store, blobs, time.UnixMilli(1700000000000))

		profile, err := svc.UploadAvatar(context.Background(), "user-1", []byte("png"), "image/png", "me.png")
		require.NoError(t, err)

		require.Len(t, blobs.uploads, 1)
		assert.Equal(t, "avatars/user-1/1700000000000.png", blobs.uploads[0])

		require.NotNil(t, profile.AvatarURL)
		assert.True(t, strings.HasPrefix(*profile.AvatarURL,
			"https://cdn.example.com/avatars/user-1/1700000000000.png"))
	})

	t.Run("removes the blob when the profile write fails", func(t *testing.T) {
		store := newMemStore()
		store.profiles["user-1"] = &Profile{ID: "user-1"}
		store.updateErr = errors.New("write refused")
		blobs := &fakeBlobs{}
		svc := newTestService(store, blobs, time.UnixMilli(42))

		_, err := svc.UploadAvatar(context.Background(), "user-1", []byte("png"), "image/png", "me.png")
		require.Error(t, err)
		assert.Equal(t, []string{"avatars/user-1/42.png"}, blobs.removals)
	})

	t.Run("upload failure never touches the profile", func(t *testing.T) {
		store := newMemStore()
		store.profiles["user-1"] = &Profile{ID: "user-1"}
		blobs := &fakeBlobs{uploadErr: errors.New("bucket gone")}
		svc := newTestService(store, blobs, time.UnixMilli(42))

		_, err := svc.UploadAvatar(context.Background(), "user-1", []byte("png"), "image/png", "me.png")
		require.Error(t, err)
		assert.Empty(t, store.patches)
		assert.Empty(t, blobs.removals)
	})
}

func TestService_UpdateProfile(t *testing.T) {
	store := newMemStore()
	store.profiles["user-1"] = &Profile{ID: "user-1"}
	svc := newTestService(store, &fakeBlobs{}, time.Now())

	profile, err := svc.UpdateProfile(context.Background(), "user-1", map[string]interface{}{"username": "alice"})
	require.NoError(t, err)
	require.NotNil(t, profile.Username)
	assert.Equal(t, "alice", *profile.Username)
}
