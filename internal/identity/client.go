// Package identity implements the HTTP client for the external identity
// provider. The client is a stateless handle constructed once at process
// start and shared by reference; it holds no per-request state, so
// concurrent use needs no synchronization.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// User is the verified principal returned by the provider.
type User struct {
	// ID is the opaque user identifier.
	ID string `json:"id"`
	// Email is the address the account was registered with.
	Email string `json:"email"`
}

// Session is an issued credential with its owner.
type Session struct {
	// AccessToken is the bearer token for subsequent requests.
	AccessToken string `json:"access_token"`
	// User is the authenticated account.
	User User `json:"user"`
}

// Client talks to the identity provider's REST API.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient builds a provider client. baseURL is the provider root
// (without trailing slash), apiKey the public API key sent with every call.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

// VerifyToken exchanges a bearer token for the principal it identifies.
// The provider is called exactly once; transient failures surface as errors
// and are never retried here.
func (c *Client) VerifyToken(ctx context.Context, token string) (User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return User{}, fmt.Errorf("build verify request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("apikey", c.apiKey)

	res, err := c.http.Do(req)
	if err != nil {
		return User{}, fmt.Errorf("verify token: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return User{}, fmt.Errorf("verify token: provider returned %d", res.StatusCode)
	}

	var user User
	if err := json.NewDecoder(res.Body).Decode(&user); err != nil {
		return User{}, fmt.Errorf("decode user: %w", err)
	}
	if user.ID == "" {
		return User{}, fmt.Errorf("verify token: provider returned empty principal")
	}
	return user, nil
}

// SignUp registers a new account with the provider.
func (c *Client) SignUp(ctx context.Context, email, password string) (User, error) {
	var out struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		User  *User  `json:"user"`
	}
	if err := c.post(ctx, "/auth/v1/signup", map[string]string{
		"email":    email,
		"password": password,
	}, &out); err != nil {
		return User{}, err
	}
	// Some provider versions nest the account under "user".
	if out.User != nil {
		return *out.User, nil
	}
	return User{ID: out.ID, Email: out.Email}, nil
}

// SignIn performs a password grant and returns the issued session.
func (c *Client) SignIn(ctx context.Context, email, password string) (Session, error) {
	var session Session
	if err := c.post(ctx, "/auth/v1/token?grant_type=password", map[string]string{
		"email":    email,
		"password": password,
	}, &session); err != nil {
		return Session{}, err
	}
	if session.AccessToken == "" {
		return Session{}, fmt.Errorf("sign in: provider returned no session")
	}
	return session, nil
}

// post sends a JSON body to the provider and decodes the reply into out.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.apiKey)

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("call provider: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		var provider struct {
			Message string `json:"msg"`
			Error   string `json:"error_description"`
		}
		_ = json.NewDecoder(res.Body).Decode(&provider)
		msg := provider.Message
		if msg == "" {
			msg = provider.Error
		}
		if msg == "" {
			msg = fmt.Sprintf("provider returned %d", res.StatusCode)
		}
		return fmt.Errorf("%s", msg)
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
