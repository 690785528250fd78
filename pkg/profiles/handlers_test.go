package profiles

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck/pkg/auth"
)

func authedRequest(req *http.Request, id, email string) *http.Request {
	identity := &auth.Identity{ID: id, Email: email}
	return req.WithContext(auth.WithIdentity(req.Context(), identity))
}

func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestHandlers_GetProfile(t *testing.T) {
	t.Run("provisions on first fetch", func(t *testing.T) {
		store := newMemStore()
		svc := newTestService(store, &fakeBlobs{}, time.Now())
		h := NewHandlers(svc)

		req := httptest.NewRequest("GET", "/api/avatar/profile", nil)
		w := httptest.NewRecorder()
		h.GetProfile(w, authedRequest(req, "user-1", "a@x.com"))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"user-1"}, store.inserted)

		var body struct {
			Profile Profile `json:"profile"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "user-1", body.Profile.ID)
		assert.Equal(t, "a@x.com", body.Profile.Email)
	})

	t.Run("unauthenticated is a 401", func(t *testing.T) {
		h := NewHandlers(newTestService(newMemStore(), &fakeBlobs{}, time.Now()))

		req := httptest.NewRequest("GET", "/api/avatar/profile", nil)
		w := httptest.NewRecorder()
		h.GetProfile(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestHandlers_UpdateProfile(t *testing.T) {
	t.Run("applies only supplied fields", func(t *testing.T) {
		store := newMemStore()
		svc := newTestService(store, &fakeBlobs{}, time.Now())
		h := NewHandlers(svc)

		req := httptest.NewRequest("PUT", "/api/avatar/profile",
			bytes.NewBufferString(`{"username":"alice","unknown":"ignored"}`))
		w := httptest.NewRecorder()
		h.UpdateProfile(w, authedRequest(req, "user-1", "a@x.com"))

		assert.Equal(t, http.StatusOK, w.Code)
		require.Len(t, store.patches, 1)
		assert.Equal(t, map[string]interface{}{"username": "alice"}, store.patches[0])
	})

	t.Run("store failure is a generic 500", func(t *testing.T) {
		store := newMemStore()
		store.profiles["user-1"] = &Profile{ID: "user-1"}
		store.updateErr = assert.AnError
		h := NewHandlers(newTestService(store, &fakeBlobs{}, time.Now()))

		req := httptest.NewRequest("PUT", "/api/avatar/profile", bytes.NewBufferString(`{"username":"x"}`))
		w := httptest.NewRecorder()
		h.UpdateProfile(w, authedRequest(req, "user-1", "a@x.com"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"failed to update profile"}`, w.Body.String())
	})
}

func TestHandlers_UploadAvatar(t *testing.T) {
	t.Run("uploads and returns the refreshed profile", func(t *testing.T) {
		store := newMemStore()
		blobs := &fakeBlobs{baseURL: "https://cdn.example.com"}
		h := NewHandlers(newTestService(store, blobs, time.UnixMilli(1700000000000)))

		body, contentType := multipartBody(t, "avatar", "me.png", []byte("png-bytes"))
		req := httptest.NewRequest("POST", "/api/avatar/upload", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		h.UploadAvatar(w, authedRequest(req, "user-1", "a@x.com"))

		assert.Equal(t, http.StatusOK, w.Code)
		require.Len(t, blobs.uploads, 1)
		assert.Equal(t, "avatars/user-1/1700000000000.png", blobs.uploads[0])

		var resp struct {
			Profile Profile `json:"profile"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Profile.AvatarURL)
		assert.Contains(t, *resp.Profile.AvatarURL, "?t=")
	})

	t.Run("missing file field is a 400", func(t *testing.T) {
		blobs := &fakeBlobs{}
		h := NewHandlers(newTestService(newMemStore(), blobs, time.Now()))

		body, contentType := multipartBody(t, "wrong-field", "me.png", []byte("png"))
		req := httptest.NewRequest("POST", "/api/avatar/upload", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		h.UploadAvatar(w, authedRequest(req, "user-1", "a@x.com"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"no file uploaded"}`, w.Body.String())
		assert.Empty(t, blobs.uploads)
	})

	t.Run("empty file is a 400", func(t *testing.T) {
		blobs := &fakeBlobs{}
		h := NewHandlers(newTestService(newMemStore(), blobs, time.Now()))

		body, contentType := multipartBody(t, "avatar", "me.png", nil)
		req := httptest.NewRequest("POST", "/api/avatar/upload", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		h.UploadAvatar(w, authedRequest(req, "user-1", "a@x.com"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, blobs.uploads)
	})

	t.Run("non-multipart body is a 400", func(t *testing.T) {
		h := NewHandlers(newTestService(newMemStore(), &fakeBlobs{}, time.Now()))

		req := httptest.NewRequest("POST", "/api/avatar/upload", bytes.NewBufferString("not multipart"))
		w := httptest.NewRecorder()
		h.UploadAvatar(w, authedRequest(req, "user-1", "a@x.com"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
