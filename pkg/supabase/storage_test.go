package supabase

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_UploadObject(t *testing.T) {
	t.Run("uploads with upsert", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/storage/v1/object/avatars/user-1/123.png", r.URL.Path)
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "image/png", r.Header.Get("Content-Type"))
			assert.Equal(t, "true", r.Header.Get("x-upsert"))
			assert.Equal(t, "Bearer service-key", r.Header.Get("Authorization"))

			body, _ := io.ReadAll(r.Body)
			assert.Equal(t, []byte("png-bytes"), body)
			w.WriteHeader(http.StatusOK)
		})

		err := client.UploadObject(context.Background(), "avatars", "user-1/123.png",
			[]byte("png-bytes"), "image/png", true)
		require.NoError(t, err)
	})

	t.Run("storage failure surfaces as APIError", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"message":"bucket not found"}`))
		})

		err := client.UploadObject(context.Background(), "missing", "p", []byte("x"), "image/png", true)
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "bucket not found", apiErr.Message)
	})
}

func TestClient_RemoveObject(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/storage/v1/object/avatars/user-1/123.png", r.URL.Path)
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusOK)
	})

	err := client.RemoveObject(context.Background(), "avatars", "user-1/123.png")
	require.NoError(t, err)
}
