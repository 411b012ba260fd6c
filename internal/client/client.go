// Package client implements the HTTP consumer of the authgate API used by
// the interactive CLI. It keeps the current token pair in memory and
// transparently refreshes it when the server reports an expired access token.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)

type credentialsRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	ProjectID string `json:"project_id,omitempty"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenResponse struct {
	Status       string `json:"status"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type statusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type Client struct {
	baseURL      string
	httpClient   *http.Client
	accessToken  string
	refreshToken string
}

// NewClient builds a client for the server at baseURL, e.g.
// "http://127.0.0.1:8080". Requests time out after the given duration.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// LoggedIn reports whether the client currently holds a token pair.
func (c *Client) LoggedIn() bool {
	return c.accessToken != ""
}

// Register creates an account. No tokens are issued; the caller logs in
// afterwards.
func (c *Client) Register(ctx context.Context, username, password, projectID string) error {
	resp, err := c.postJSON(ctx, "/register", credentialsRequest{
		Username: username, Password: password, ProjectID: projectID,
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return c.decodeFailure(resp)
	}
	return nil
}

// Authenticate exchanges credentials for a token pair and stores it.
func (c *Client) Authenticate(ctx context.Context, username, password, projectID string) error {
	resp, err := c.postJSON(ctx, "/authenticate", credentialsRequest{
		Username: username, Password: password, ProjectID: projectID,
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.decodeFailure(resp)
	}
	return c.storeTokens(resp)
}

// Refresh rotates the stored refresh token into a fresh pair.
func (c *Client) Refresh(ctx context.Context) error {
	if c.refreshToken == "" {
		return fmt.Errorf("%w: not logged in", ErrUnauthorized)
	}

	resp, err := c.postJSON(ctx, "/refresh", refreshRequest{RefreshToken: c.refreshToken})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// The presented token was consumed or rejected either way.
		c.clearTokens()
		return c.decodeFailure(resp)
	}
	return c.storeTokens(resp)
}

// Logout retires the stored refresh token on the server and drops the local
// pair. Logging out while not logged in is a no-op.
func (c *Client) Logout(ctx context.Context) error {
	if c.refreshToken == "" {
		return nil
	}

	resp, err := c.postJSON(ctx, "/logout", refreshRequest{RefreshToken: c.refreshToken})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		return c.decodeFailure(resp)
	}

	c.clearTokens()
	return nil
}

// Protected calls the protected endpoint with the stored access token and
// returns the greeting. When the server reports the access token expired,
// the pair is refreshed once and the call retried.
func (c *Client) Protected(ctx context.Context) (string, error) {
	message, err := c.callProtected(ctx)
	if err == nil {
		return message, nil
	}
	if !errors.Is(err, ErrUnauthorized) || c.refreshToken == "" {
		return "", err
	}

	// The access token may have expired; rotate the pair and retry once.
	if err := c.Refresh(ctx); err != nil {
		return "", err
	}
	return c.callProtected(ctx)
}

func (c *Client) callProtected(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/protected", nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", c.decodeFailure(resp)
	}

	var body statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	return body.Message, nil
}

func (c *Client) postJSON(ctx context.Context, path string, body any) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return resp, nil
}

func (c *Client) storeTokens(resp *http.Response) error {
	var body tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	c.accessToken = body.AccessToken
	c.refreshToken = body.RefreshToken
	return nil
}

func (c *Client) clearTokens() {
	c.accessToken = ""
	c.refreshToken = ""
}

// decodeFailure turns a non-success response into an error carrying the
// server's message when one is present.
func (c *Client) decodeFailure(resp *http.Response) error {
	var body statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Message == "" {
		if resp.StatusCode == http.StatusUnauthorized {
			return ErrUnauthorized
		}
		return fmt.Errorf("server returned %s", resp.Status)
	}
	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%w: %s", ErrUnauthorized, body.Message)
	}
	return errors.New(body.Message)
}
