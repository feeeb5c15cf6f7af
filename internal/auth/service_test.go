package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"cloudvault-api/internal/logger"
	"cloudvault-api/internal/models"
	"cloudvault-api/internal/user"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// fakeUserService is an in-memory UserService
type fakeUserService struct {
	mu         sync.Mutex
	users      map[string]*models.User
	seq        int
	countCalls int
}

func newFakeUserService() *fakeUserService {
	return &fakeUserService{users: make(map[string]*models.User)}
}

func (f *fakeUserService) CreateUser(ctx context.Context, email, username, passwordHash, role string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return nil, user.ErrEmailAlreadyExists
		}
		if u.Username == username {
			return nil, user.ErrUsernameAlreadyExists
		}
	}
	f.seq++
	u := &models.User{
		ID:           fmt.Sprintf("user-%d", f.seq),
		Email:        email,
		Username:     username,
		PasswordHash: passwordHash,
		Role:         role,
		Active:       true,
	}
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUserService) GetUserById(ctx context.Context, userID string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (f *fakeUserService) UpdatePasswordHash(ctx context.Context, userID, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return user.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (f *fakeUserService) UpdateLastLogin(ctx context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return user.ErrUserNotFound
	}
	u.LastLogin = time.Now().Unix()
	return nil
}

func (f *fakeUserService) CountUsers(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.countCalls++
	return int64(len(f.users)), nil
}

// fakeCache is an in-memory stand-in for the Redis cache
type fakeCache struct {
	mu    sync.Mutex
	data  map[string]string
	locks map[string]bool
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		data:  make(map[string]string),
		locks: make(map[string]bool),
	}
}

func (c *fakeCache) Ping(ctx context.Context) error { return nil }

func (c *fakeCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.data[key], nil
}

func (c *fakeCache) GetJSON(ctx context.Context, key string, result any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.data[key]
	if !ok {
		return errors.New("not found")
	}
	return json.Unmarshal([]byte(raw), result)
}

func (c *fakeCache) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value.(string)
	return nil
}

func (c *fakeCache) SetJSON(ctx context.Context, key string, value any, expiration time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = string(raw)
	return nil
}

func (c *fakeCache) Delete(ctx context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	delete(c.data, key)
	return ok, nil
}

func (c *fakeCache) DeleteMany(ctx context.Context, keys ...string) (int64, error) {
	var n int64
	for _, key := range keys {
		if ok, _ := c.Delete(ctx, key); ok {
			n++
		}
	}
	return n, nil
}

func (c *fakeCache) Expire(ctx context.Context, key string, expiration time.Duration) (bool, error) {
	return true, nil
}

func (c *fakeCache) SAdd(ctx context.Context, key string, members ...any) (int64, error) {
	return 0, nil
}

func (c *fakeCache) SRem(ctx context.Context, key string, members ...any) (int64, error) {
	return 0, nil
}

func (c *fakeCache) SMembers(ctx context.Context, key string) ([]string, error) {
	return nil, nil
}

func (c *fakeCache) DeleteByPattern(ctx context.Context, pattern string) (int64, error) {
	return 0, nil
}

func (c *fakeCache) GetWithFallback(ctx context.Context, key string, fallback func(ctx context.Context) (any, error), expiration time.Duration) (any, error) {
	var cached any
	if err := c.GetJSON(ctx, key, &cached); err == nil {
		return cached, nil
	}
	data, err := fallback(ctx)
	if err != nil {
		return nil, err
	}
	_ = c.SetJSON(ctx, key, data, expiration)
	return data, nil
}

func (c *fakeCache) AcquireLock(ctx context.Context, lockName string, expiration time.Duration, retryCount int, retryDelay time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.locks[lockName] {
		return false, nil
	}
	c.locks[lockName] = true
	return true, nil
}

func (c *fakeCache) ReleaseLock(ctx context.Context, lockName string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.locks[lockName] {
		return false, nil
	}
	delete(c.locks, lockName)
	return true, nil
}

func newTestService() (*Service, *fakeUserService, *fakeCache) {
	users := newFakeUserService()
	cache := newFakeCache()
	svc := NewService(users, cache, logger.New(logrus.New()))
	return svc, users, cache
}

func setupOwner(t *testing.T, svc *Service) *models.User {
	t.Helper()
	owner, err := svc.CompleteSetup(context.Background(), "owner@example.com", "owner", "hunter22pass")
	require.NoError(t, err)
	return owner
}

func TestSetupStatusFreshInstance(t *testing.T) {
	svc, _, _ := newTestService()

	status, err := svc.GetSetupStatus(context.Background())
	require.NoError(t, err)
	assert.True(t, status.NeedsSetup)
}

func TestCompleteSetupCreatesOwner(t *testing.T) {
	svc, _, _ := newTestService()

	owner := setupOwner(t, svc)
	assert.Equal(t, models.RoleOwner, owner.Role)

	status, err := svc.GetSetupStatus(context.Background())
	require.NoError(t, err)
	assert.False(t, status.NeedsSetup)
}

func TestCompleteSetupOnlyOnce(t *testing.T) {
	svc, _, _ := newTestService()
	setupOwner(t, svc)

	_, err := svc.CompleteSetup(context.Background(), "second@example.com", "second", "hunter22pass")
	assert.ErrorIs(t, err, ErrSetupAlreadyDone)
}

func TestCompleteSetupBlockedByConcurrentSetup(t *testing.T) {
	svc, users, cache := newTestService()

	// Another instance holds the setup lock
	locked, err := cache.AcquireLock(context.Background(), "setup:complete", time.Minute, 1, 0)
	require.NoError(t, err)
	require.True(t, locked)

	_, err = svc.CompleteSetup(context.Background(), "owner@example.com", "owner", "hunter22pass")
	assert.ErrorIs(t, err, ErrSetupAlreadyDone)
	assert.Empty(t, users.users, "losing setup must not create an account")
}

func TestCompleteSetupReleasesLock(t *testing.T) {
	svc, _, cache := newTestService()
	setupOwner(t, svc)

	cache.mu.Lock()
	defer cache.mu.Unlock()
	assert.False(t, cache.locks["setup:complete"])
}

func TestSetupStatusUsesCachedFlag(t *testing.T) {
	svc, users, _ := newTestService()

	for i := 0; i < 3; i++ {
		status, err := svc.GetSetupStatus(context.Background())
		require.NoError(t, err)
		assert.True(t, status.NeedsSetup)
	}

	users.mu.Lock()
	defer users.mu.Unlock()
	assert.Equal(t, 1, users.countCalls, "repeat status checks must hit the cache")
}

func TestSignupRequiresSetup(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Signup(context.Background(), "alice@example.com", "alice", "hunter22pass")
	assert.ErrorIs(t, err, ErrSetupRequired)
}

func TestSignupAfterSetup(t *testing.T) {
	svc, _, _ := newTestService()
	setupOwner(t, svc)

	created, err := svc.Signup(context.Background(), "alice@example.com", "alice", "hunter22pass")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, created.Role)

	// Stored hash must verify against the original password
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("hunter22pass")))
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService()
	setupOwner(t, svc)

	_, err := svc.Signup(context.Background(), "owner@example.com", "alice", "hunter22pass")
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestSignupRejectsWeakPassword(t *testing.T) {
	svc, _, _ := newTestService()
	setupOwner(t, svc)

	_, err := svc.Signup(context.Background(), "alice@example.com", "alice", "pw")
	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestLoginSuccess(t *testing.T) {
	svc, _, _ := newTestService()
	owner := setupOwner(t, svc)

	account, err := svc.Login(context.Background(), "owner@example.com", "hunter22pass")
	require.NoError(t, err)
	assert.Equal(t, owner.ID, account.ID)
	assert.NotZero(t, account.LastLogin)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newTestService()
	setupOwner(t, svc)

	_, err := svc.Login(context.Background(), "owner@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _, _ := newTestService()
	setupOwner(t, svc)

	_, err := svc.Login(context.Background(), "nobody@example.com", "hunter22pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginDeactivatedAccount(t *testing.T) {
	svc, users, _ := newTestService()
	owner := setupOwner(t, svc)

	users.users[owner.ID].Active = false

	_, err := svc.Login(context.Background(), "owner@example.com", "hunter22pass")
	assert.ErrorIs(t, err, ErrAccountDeactivated)
}

func TestChangePassword(t *testing.T) {
	svc, _, _ := newTestService()
	owner := setupOwner(t, svc)

	require.NoError(t, svc.ChangePassword(context.Background(), owner.ID, "hunter22pass", "newpassword9"))

	_, err := svc.Login(context.Background(), "owner@example.com", "hunter22pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "owner@example.com", "newpassword9")
	assert.NoError(t, err)
}

func TestChangePasswordWrongOld(t *testing.T) {
	svc, _, _ := newTestService()
	owner := setupOwner(t, svc)

	err := svc.ChangePassword(context.Background(), owner.ID, "not-the-password", "newpassword9")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
