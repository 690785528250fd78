package supabase

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Title  string `json:"title"`
}

func TestQuery_Select(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/tasks", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		q := r.URL.Query()
		assert.Equal(t, "eq.user-1", q.Get("user_id"))
		assert.Equal(t, "eq.true", q.Get("completed"))
		assert.Equal(t, "created_at.desc", q.Get("order"))

		json.NewEncoder(w).Encode([]row{{ID: "t1", UserID: "user-1"}})
	})

	var rows []row
	err := client.From("tasks").
		Eq("user_id", "user-1").
		Eq("completed", "true").
		OrderDesc("created_at").
		Select(context.Background(), &rows)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "t1", rows[0].ID)
}

func TestQuery_SelectSingle(t *testing.T) {
	t.Run("negotiates a single object", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "application/vnd.pgrst.object+json", r.Header.Get("Accept"))
			json.NewEncoder(w).Encode(row{ID: "t1"})
		})

		var got row
		err := client.From("tasks").Eq("id", "t1").SelectSingle(context.Background(), &got)
		require.NoError(t, err)
		assert.Equal(t, "t1", got.ID)
	})

	t.Run("zero rows is ErrNotFound", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotAcceptable)
			w.Write([]byte(`{"code":"PGRST116","message":"JSON object requested, multiple (or no) rows returned"}`))
		})

		var got row
		err := client.From("tasks").Eq("id", "missing").SelectSingle(context.Background(), &got)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestQuery_Insert(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "return=representation", r.Header.Get("Prefer"))

		var body row
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		body.ID = "generated-id"
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(body)
	})

	var created row
	err := client.From("tasks").Insert(context.Background(), row{UserID: "user-1", Title: "buy milk"}, &created)
	require.NoError(t, err)
	assert.Equal(t, "generated-id", created.ID)
	assert.Equal(t, "buy milk", created.Title)
}

func TestQuery_Update(t *testing.T) {
	t.Run("patches matching rows", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPatch, r.Method)
			assert.Equal(t, "eq.t1", r.URL.Query().Get("id"))
			json.NewEncoder(w).Encode(row{ID: "t1", Title: "renamed"})
		})

		var updated row
		err := client.From("tasks").Eq("id", "t1").
			Update(context.Background(), map[string]interface{}{"title": "renamed"}, &updated)
		require.NoError(t, err)
		assert.Equal(t, "renamed", updated.Title)
	})

	t.Run("zero matches is ErrNotFound", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotAcceptable)
			w.Write([]byte(`{"code":"PGRST116","message":"no rows"}`))
		})

		var updated row
		err := client.From("tasks").Eq("id", "missing").
			Update(context.Background(), map[string]interface{}{"title": "x"}, &updated)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestQuery_Delete(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "return=representation", r.Header.Get("Prefer"))
		json.NewEncoder(w).Encode([]row{})
	})

	var deleted []row
	err := client.From("tasks").Eq("id", "missing").Delete(context.Background(), &deleted)
	require.NoError(t, err)
	assert.Empty(t, deleted)
}
