package supabase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
)

// UploadObject stores a blob under bucket/path. With upsert set an existing
// object at the same path is overwritten.
func (c *Client) UploadObject(ctx context.Context, bucket, path string, data []byte, contentType string, upsert bool) error {
	headers := map[string]string{
		"Content-Type": contentType,
	}
	if upsert {
		headers["x-upsert"] = "true"
	}

	resp, err := c.do(ctx, request{
		method:  http.MethodPost,
		path:    fmt.Sprintf("/storage/v1/object/%s/%s", bucket, path),
		headers: headers,
		body:    bytes.NewReader(data),
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(resp)
	}
	io.Copy(io.Discard, resp.Body)
	return nil
}

// RemoveObject deletes a stored blob
func (c *Client) RemoveObject(ctx context.Context, bucket, path string) error {
	resp, err := c.do(ctx, request{
		method: http.MethodDelete,
		path:   fmt.Sprintf("/storage/v1/object/%s/%s", bucket, path),
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(resp)
	}
	io.Copy(io.Discard, resp.Body)
	return nil
}

// PublicURL returns the public download URL for an object in a public bucket.
// No round trip is needed; the URL shape is part of the storage API contract.
func (c *Client) PublicURL(bucket, path string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.baseURL, bucket, path)
}
