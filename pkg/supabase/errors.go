package supabase

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrNotFound indicates the requested record does not exist, or exists but is
// filtered out by the query's conditions. The two cases are intentionally
// indistinguishable.
var ErrNotFound = errors.New("record not found")

// pgrstNoRows is PostgREST's error code for a single-object request that
// matched zero rows.
const pgrstNoRows = "PGRST116"

// APIError is a non-2xx response from the platform
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("supabase: %d %s: %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("supabase: %d: %s", e.StatusCode, e.Message)
}

// IsClientError reports whether the platform rejected the request itself
// (4xx), as opposed to failing to serve it.
func (e *APIError) IsClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// errorBody covers the error shapes GoTrue, PostgREST and storage return
type errorBody struct {
	Code             interface{} `json:"code"`
	Message          string      `json:"message"`
	Msg              string      `json:"msg"`
	ErrorField       string      `json:"error"`
	ErrorDescription string      `json:"error_description"`
}

// newAPIError drains the response body into an APIError
func newAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 8192))
	if err == nil && len(data) > 0 {
		var body errorBody
		if json.Unmarshal(data, &body) == nil {
			apiErr.Code = fmt.Sprintf("%v", body.Code)
			if body.Code == nil {
				apiErr.Code = ""
			}
			switch {
			case body.Message != "":
				apiErr.Message = body.Message
			case body.Msg != "":
				apiErr.Message = body.Msg
			case body.ErrorDescription != "":
				apiErr.Message = body.ErrorDescription
			case body.ErrorField != "":
				apiErr.Message = body.ErrorField
			}
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}

	if apiErr.Code == pgrstNoRows || resp.StatusCode == http.StatusNotAcceptable {
		return ErrNotFound
	}
	return apiErr
}
