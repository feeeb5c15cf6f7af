package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"time"
)

// User is the authenticated identity returned by the API
type User struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	Username      string `json:"username"`
	DisplayName   string `json:"displayName"`
	Role          string `json:"role"`
	EmailVerified bool   `json:"emailVerified"`
	CreatedAt     int64  `json:"createdAt"`
	LastLogin     int64  `json:"lastLogin"`
}

// SetupStatus reports whether first-run setup is still required
type SetupStatus struct {
	Code       int16 `json:"code"`
	NeedsSetup bool  `json:"needsSetup"`
}

// SessionInfo is the session identity attached to a login response
type SessionInfo struct {
	ID        string `json:"id"`
	ExpiresAt int64  `json:"expiresAt"`
}

// AuthResult is the payload returned by login and token refresh
type AuthResult struct {
	Code         int16       `json:"code"`
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
	TokenType    string      `json:"tokenType"`
	ExpiresIn    int64       `json:"expiresIn"`
	User         User        `json:"user"`
	Session      SessionInfo `json:"session"`
}

// StorageQuota is the user's storage usage and allowance
type StorageQuota struct {
	Code      int16 `json:"code"`
	UsedSpace int64 `json:"usedSpace"`
	MaxSpace  int64 `json:"maxSpace"`
}

// FileItem is a file or folder entry
type FileItem struct {
	ID          string  `json:"id"`
	ParentID    *string `json:"parentId"`
	Name        string  `json:"name"`
	IsFolder    bool    `json:"isFolder"`
	MimeType    string  `json:"mimeType,omitempty"`
	Size        int64   `json:"size"`
	UploadState string  `json:"uploadState"`
	PreviewKind string  `json:"previewKind,omitempty"`
	CreatedAt   int64   `json:"createdAt"`
	ModifiedAt  int64   `json:"modifiedAt"`
}

// APIError is a non-2xx response decoded from the server
type APIError struct {
	HTTPStatus int
	Code       int16  `json:"code"`
	Detail     string `json:"detail"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.HTTPStatus, e.Detail)
}

// IsUnauthorized reports whether the error is an authentication failure
func (e *APIError) IsUnauthorized() bool {
	return e.HTTPStatus == http.StatusUnauthorized
}

// Client is an HTTP client for the CloudVault API.
// Session credentials are carried in cookies managed by the jar, so a
// Client instance represents at most one authenticated session.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client for the given base URL
func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Jar:     jar,
			Timeout: 30 * time.Second,
		},
	}, nil
}

// NewWithHTTPClient creates a client with a caller-supplied HTTP client
func NewWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// do performs a request and decodes the JSON response into out
func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{HTTPStatus: resp.StatusCode}
		if err := json.Unmarshal(data, apiErr); err != nil || apiErr.Detail == "" {
			apiErr.Detail = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// GetSetupStatus reports whether first-run setup is still required
func (c *Client) GetSetupStatus(ctx context.Context) (*SetupStatus, error) {
	var status SetupStatus
	if err := c.do(ctx, http.MethodGet, "/api/v1/setup/status", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// CompleteSetup creates the owner account on a fresh deployment
func (c *Client) CompleteSetup(ctx context.Context, email, username, password string) error {
	body := map[string]string{
		"email":    email,
		"username": username,
		"password": password,
	}
	return c.do(ctx, http.MethodPost, "/api/v1/setup", body, nil)
}

// Signup registers a new user account
func (c *Client) Signup(ctx context.Context, email, username, password string) (*User, error) {
	body := map[string]string{
		"email":    email,
		"username": username,
		"password": password,
	}
	var resp struct {
		Code int16 `json:"code"`
		User User  `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/signup", body, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Login authenticates and establishes the session cookies
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
	}
	var result AuthResult
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Logout invalidates the current session
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/v1/auth/logout", nil, nil)
}

// Me fetches the current authenticated user's profile
func (c *Client) Me(ctx context.Context) (*User, error) {
	var resp struct {
		Code int16 `json:"code"`
		User User  `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/users/me", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// RefreshToken rotates the token pair using the refresh token cookie
func (c *Client) RefreshToken(ctx context.Context) (*AuthResult, error) {
	var result AuthResult
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/refresh", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetStorageQuota fetches the user's storage usage and allowance
func (c *Client) GetStorageQuota(ctx context.Context) (*StorageQuota, error) {
	var quota StorageQuota
	if err := c.do(ctx, http.MethodGet, "/api/v1/users/me/storage", nil, &quota); err != nil {
		return nil, err
	}
	return &quota, nil
}

// ListFiles lists a folder's contents. An empty parentID lists the root.
func (c *Client) ListFiles(ctx context.Context, parentID string) ([]FileItem, error) {
	path := "/api/v1/files"
	if parentID != "" {
		path += "?parentId=" + parentID
	}
	var resp struct {
		Code  int16      `json:"code"`
		Files []FileItem `json:"files"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Files, nil
}
