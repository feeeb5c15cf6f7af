package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSetupStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/setup/status", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{"code": 1000, "needsSetup": true})
	}))
	defer server.Close()

	c, err := New(server.URL)
	require.NoError(t, err)

	status, err := c.GetSetupStatus(context.Background())
	require.NoError(t, err)
	assert.True(t, status.NeedsSetup)
}

func TestLoginDecodesAuthResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/auth/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "owner@example.com", body["email"])

		http.SetCookie(w, &http.Cookie{Name: "sessionID", Value: "session-abc", Path: "/"})
		json.NewEncoder(w).Encode(map[string]any{
			"code":        1010,
			"accessToken": "token-a",
			"expiresIn":   900,
			"user":        map[string]any{"id": "user-1", "email": "owner@example.com", "role": "owner"},
			"session":     map[string]any{"id": "session-abc", "expiresAt": 2000000000},
		})
	}))
	defer server.Close()

	c, err := New(server.URL)
	require.NoError(t, err)

	result, err := c.Login(context.Background(), "owner@example.com", "hunter22!")
	require.NoError(t, err)
	assert.Equal(t, "token-a", result.AccessToken)
	assert.Equal(t, "user-1", result.User.ID)
	assert.Equal(t, "owner", result.User.Role)
	assert.Equal(t, "session-abc", result.Session.ID)
}

func TestSessionCookiePersistsAcrossRequests(t *testing.T) {
	var sawCookie bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/auth/login":
			http.SetCookie(w, &http.Cookie{Name: "sessionID", Value: "session-abc", Path: "/"})
			json.NewEncoder(w).Encode(map[string]any{"code": 1010})
		case "/api/v1/users/me":
			cookie, err := r.Cookie("sessionID")
			sawCookie = err == nil && cookie.Value == "session-abc"
			json.NewEncoder(w).Encode(map[string]any{"code": 1000, "user": map[string]any{"id": "user-1"}})
		}
	}))
	defer server.Close()

	c, err := New(server.URL)
	require.NoError(t, err)

	_, err = c.Login(context.Background(), "a@b.c", "password123")
	require.NoError(t, err)

	me, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "user-1", me.ID)
	assert.True(t, sawCookie, "session cookie should be sent on subsequent requests")
}

func TestAPIErrorDecoding(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{"code": 4011, "detail": "Invalid credentials"})
	}))
	defer server.Close()

	c, err := New(server.URL)
	require.NoError(t, err)

	_, err = c.Login(context.Background(), "a@b.c", "wrong")
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, apiErr.HTTPStatus)
	assert.Equal(t, int16(4011), apiErr.Code)
	assert.Equal(t, "Invalid credentials", apiErr.Detail)
	assert.True(t, apiErr.IsUnauthorized())
}

func TestAPIErrorWithoutJSONBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream died"))
	}))
	defer server.Close()

	c, err := New(server.URL)
	require.NoError(t, err)

	_, err = c.GetSetupStatus(context.Background())
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, apiErr.HTTPStatus)
	assert.Equal(t, "Bad Gateway", apiErr.Detail)
}

func TestListFilesParentQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/files", r.URL.Path)
		assert.Equal(t, "folder-1", r.URL.Query().Get("parentId"))
		json.NewEncoder(w).Encode(map[string]any{
			"code": 1000,
			"files": []map[string]any{
				{"id": "file-1", "name": "notes.txt", "isFolder": false, "previewKind": "text"},
			},
		})
	}))
	defer server.Close()

	c, err := New(server.URL)
	require.NoError(t, err)

	files, err := c.ListFiles(context.Background(), "folder-1")
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "notes.txt", files[0].Name)
	assert.Equal(t, "text", files[0].PreviewKind)
}

func TestGetStorageQuota(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/users/me/storage", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{"code": 1000, "usedSpace": 1024, "maxSpace": 3221225472})
	}))
	defer server.Close()

	c, err := New(server.URL)
	require.NoError(t, err)

	quota, err := c.GetStorageQuota(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1024), quota.UsedSpace)
	assert.Equal(t, int64(3221225472), quota.MaxSpace)
}
