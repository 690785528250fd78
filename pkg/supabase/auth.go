package supabase

import (
	"context"
	"net/http"
	"net/url"
)

// User is a GoTrue user record
type User struct {
	ID           string                 `json:"id"`
	Email        string                 `json:"email"`
	Role         string                 `json:"role,omitempty"`
	UserMetadata map[string]interface{} `json:"user_metadata,omitempty"`
}

// Session is an issued credential pair plus the authenticated user
type Session struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
	User         User   `json:"user"`
}

// GetUser introspects an access token and returns the user it belongs to.
// One round trip, no retries. The platform answers 401/403 for invalid or
// expired tokens; those surface as *APIError with IsClientError() == true.
func (c *Client) GetUser(ctx context.Context, accessToken string) (*User, error) {
	var user User
	err := c.doJSON(ctx, request{
		method: http.MethodGet,
		path:   "/auth/v1/user",
		bearer: accessToken,
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// adminCreateUserRequest is the admin user-creation payload. email_confirm
// skips the confirmation mail so the account is usable immediately.
type adminCreateUserRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	EmailConfirm bool   `json:"email_confirm"`
}

// AdminCreateUser creates a confirmed user via the admin API (service role)
func (c *Client) AdminCreateUser(ctx context.Context, email, password string) (*User, error) {
	body, err := jsonBody(adminCreateUserRequest{
		Email:        email,
		Password:     password,
		EmailConfirm: true,
	})
	if err != nil {
		return nil, err
	}

	var user User
	err = c.doJSON(ctx, request{
		method:  http.MethodPost,
		path:    "/auth/v1/admin/users",
		headers: map[string]string{"Content-Type": "application/json"},
		body:    body,
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

type passwordGrantRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignInWithPassword exchanges email/password credentials for a session.
// Uses the anon key; credential problems surface as *APIError.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	body, err := jsonBody(passwordGrantRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	var session Session
	err = c.doJSON(ctx, request{
		method:  http.MethodPost,
		path:    "/auth/v1/token",
		query:   url.Values{"grant_type": []string{"password"}},
		headers: map[string]string{"Content-Type": "application/json"},
		body:    body,
		bearer:  c.anonKey,
		apikey:  c.anonKey,
	}, &session)
	if err != nil {
		return nil, err
	}
	return &session, nil
}
