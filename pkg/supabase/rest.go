package supabase

import (
	"context"
	"net/http"
	"net/url"
)

// Query builds a PostgREST request against one table. Filters compose with
// AND semantics, matching PostgREST's query string model.
type Query struct {
	client *Client
	table  string
	params url.Values
}

// From starts a query against a table
func (c *Client) From(table string) *Query {
	return &Query{
		client: c,
		table:  table,
		params: url.Values{},
	}
}

// Eq adds an equality filter on a column
func (q *Query) Eq(column, value string) *Query {
	q.params.Add(column, "eq."+value)
	return q
}

// OrderDesc sorts results by a column, newest first
func (q *Query) OrderDesc(column string) *Query {
	q.params.Set("order", column+".desc")
	return q
}

func (q *Query) path() string {
	return "/rest/v1/" + q.table
}

// Select fetches all matching rows into dest (a slice pointer)
func (q *Query) Select(ctx context.Context, dest interface{}) error {
	return q.client.doJSON(ctx, request{
		method: http.MethodGet,
		path:   q.path(),
		query:  q.params,
	}, dest)
}

// SelectSingle fetches exactly one matching row into dest. Zero matches
// yield ErrNotFound.
func (q *Query) SelectSingle(ctx context.Context, dest interface{}) error {
	return q.client.doJSON(ctx, request{
		method:  http.MethodGet,
		path:    q.path(),
		query:   q.params,
		headers: map[string]string{"Accept": "application/vnd.pgrst.object+json"},
	}, dest)
}

// Insert writes a row and decodes the stored representation into dest when
// dest is non-nil
func (q *Query) Insert(ctx context.Context, record, dest interface{}) error {
	body, err := jsonBody(record)
	if err != nil {
		return err
	}

	headers := map[string]string{"Content-Type": "application/json"}
	if dest != nil {
		headers["Prefer"] = "return=representation"
		headers["Accept"] = "application/vnd.pgrst.object+json"
	}

	return q.client.doJSON(ctx, request{
		method:  http.MethodPost,
		path:    q.path(),
		query:   q.params,
		headers: headers,
		body:    body,
	}, dest)
}

// Update patches all matching rows and decodes the single updated row into
// dest when dest is non-nil. Zero matches yield ErrNotFound when dest is
// non-nil.
func (q *Query) Update(ctx context.Context, patch, dest interface{}) error {
	body, err := jsonBody(patch)
	if err != nil {
		return err
	}

	headers := map[string]string{"Content-Type": "application/json"}
	if dest != nil {
		headers["Prefer"] = "return=representation"
		headers["Accept"] = "application/vnd.pgrst.object+json"
	}

	return q.client.doJSON(ctx, request{
		method:  http.MethodPatch,
		path:    q.path(),
		query:   q.params,
		headers: headers,
		body:    body,
	}, dest)
}

// Delete removes all matching rows and returns the removed representations
// into dest (a slice pointer) so callers can tell a no-op delete apart from a
// real one.
func (q *Query) Delete(ctx context.Context, dest interface{}) error {
	headers := map[string]string{}
	if dest != nil {
		headers["Prefer"] = "return=representation"
	}

	return q.client.doJSON(ctx, request{
		method:  http.MethodDelete,
		path:    q.path(),
		query:   q.params,
		headers: headers,
	}, dest)
}
