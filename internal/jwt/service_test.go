package jwt

import (
	"path/filepath"
	"testing"
	"time"

	"cloudvault-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, accessExpiry, refreshExpiry time.Duration) *JWTService {
	t.Helper()

	dir := t.TempDir()
	privPath := filepath.Join(dir, "private.pem")
	pubPath := filepath.Join(dir, "public.pem")

	require.NoError(t, GenerateKeyPair(privPath, pubPath))

	svc, err := NewJWTService(privPath, pubPath, "test.cloudvault.io", accessExpiry, refreshExpiry)
	require.NoError(t, err)
	return svc
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestService(t, 15*time.Minute, 24*time.Hour)

	token, err := svc.GenerateToken("user-abc", "a@b.com", "alice", models.RoleUser, GetUserScopes(), "session-xyz", time.Minute, "Bearer", nil)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)

	assert.Equal(t, "user-abc", claims.UserID)
	assert.Equal(t, "a@b.com", claims.Email)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, models.RoleUser, claims.Role)
	assert.Equal(t, "session-xyz", claims.SessionID)
	assert.Nil(t, claims.IsRefreshToken)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	svc := newTestService(t, 15*time.Minute, 24*time.Hour)

	token, err := svc.GenerateToken("user-abc", "a@b.com", "alice", models.RoleUser, nil, "session-xyz", -time.Minute, "Bearer", nil)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := newTestService(t, 15*time.Minute, 24*time.Hour)

	_, err := svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestGenerateTokenPair(t *testing.T) {
	svc := newTestService(t, 15*time.Minute, 24*time.Hour)

	pair, err := svc.GenerateTokenPair("user-abc", "a@b.com", "alice", models.RoleUser, GetUserScopes(), "session-xyz")
	require.NoError(t, err)

	assert.Equal(t, "Bearer", pair.TokenType)
	assert.Equal(t, int64(900), pair.ExpiresIn)

	access, err := svc.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Nil(t, access.IsRefreshToken)

	refresh, err := svc.ValidateToken(pair.RefreshToken)
	require.NoError(t, err)
	require.NotNil(t, refresh.IsRefreshToken)
	assert.True(t, *refresh.IsRefreshToken)
}

func TestRefreshTokenPair(t *testing.T) {
	svc := newTestService(t, 15*time.Minute, 24*time.Hour)

	pair, err := svc.GenerateTokenPair("user-abc", "a@b.com", "alice", models.RoleUser, GetUserScopes(), "session-xyz")
	require.NoError(t, err)

	newPair, err := svc.RefreshTokenPair(pair.RefreshToken)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(newPair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-abc", claims.UserID)
	assert.Equal(t, "session-xyz", claims.SessionID)
	assert.Equal(t, GetUserScopes(), claims.Scopes)
}

func TestRefreshTokenPairRejectsAccessToken(t *testing.T) {
	svc := newTestService(t, 15*time.Minute, 24*time.Hour)

	pair, err := svc.GenerateTokenPair("user-abc", "a@b.com", "alice", models.RoleUser, GetUserScopes(), "session-xyz")
	require.NoError(t, err)

	_, err = svc.RefreshTokenPair(pair.AccessToken)
	assert.Error(t, err)
}

func TestGenerateAuthTokensScopes(t *testing.T) {
	svc := newTestService(t, 15*time.Minute, 24*time.Hour)

	tests := []struct {
		role   string
		scopes []string
	}{
		{models.RoleUser, GetUserScopes()},
		{models.RoleAdmin, GetAdminScopes()},
		{models.RoleOwner, GetAdminScopes()},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			user := models.User{ID: "user-abc", Email: "a@b.com", Username: "alice", Role: tt.role}
			pair, err := svc.GenerateAuthTokens(user, "session-xyz")
			require.NoError(t, err)

			claims, err := svc.ValidateToken(pair.AccessToken)
			require.NoError(t, err)
			assert.Equal(t, tt.scopes, claims.Scopes)
		})
	}
}

func TestClaimsHasScopes(t *testing.T) {
	claims := &Claims{Scopes: []string{ScopeUserRead, ScopeFilesRead}}

	assert.True(t, claims.HasScope(ScopeUserRead))
	assert.False(t, claims.HasScope(ScopeAdmin))
	assert.True(t, claims.HasScopes([]string{ScopeUserRead, ScopeFilesRead}))
	assert.False(t, claims.HasScopes([]string{ScopeUserRead, ScopeAdmin}))
}
