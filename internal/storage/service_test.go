package storage

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"cloudvault-api/internal/logger"
	"cloudvault-api/internal/models"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo is an in-memory storage repository
type fakeRepo struct {
	mu      sync.Mutex
	storage map[string]*models.UserStorage
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{storage: make(map[string]*models.UserStorage)}
}

func (r *fakeRepo) CreateStorage(storage *models.UserStorage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *storage
	r.storage[storage.UserID] = &copied
	return nil
}

func (r *fakeRepo) GetStorageByUserID(userID string) (*models.UserStorage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	storage, ok := r.storage[userID]
	if !ok {
		return nil, ErrStorageNotFound
	}
	copied := *storage
	return &copied, nil
}

func (r *fakeRepo) UpdateStorage(storage *models.UserStorage) error {
	return r.CreateStorage(storage)
}

func (r *fakeRepo) AdjustUsedSpace(userID string, delta int64) (*models.UserStorage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	storage, ok := r.storage[userID]
	if !ok {
		return nil, ErrStorageNotFound
	}
	storage.UsedSpace += delta
	if storage.UsedSpace < 0 {
		storage.UsedSpace = 0
	}
	copied := *storage
	return &copied, nil
}

// noopCache satisfies redis.Cache without storing anything
type noopCache struct{}

func (noopCache) Ping(ctx context.Context) error                   { return nil }
func (noopCache) Get(ctx context.Context, key string) (string, error) { return "", nil }
func (noopCache) GetJSON(ctx context.Context, key string, result any) error {
	return errors.New("not found")
}
func (noopCache) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	return nil
}
func (noopCache) SetJSON(ctx context.Context, key string, value any, expiration time.Duration) error {
	_, err := json.Marshal(value)
	return err
}
func (noopCache) Delete(ctx context.Context, key string) (bool, error)          { return false, nil }
func (noopCache) DeleteMany(ctx context.Context, keys ...string) (int64, error) { return 0, nil }
func (noopCache) Expire(ctx context.Context, key string, expiration time.Duration) (bool, error) {
	return true, nil
}
func (noopCache) SAdd(ctx context.Context, key string, members ...any) (int64, error) { return 0, nil }
func (noopCache) SRem(ctx context.Context, key string, members ...any) (int64, error) { return 0, nil }
func (noopCache) SMembers(ctx context.Context, key string) ([]string, error)          { return nil, nil }
func (noopCache) DeleteByPattern(ctx context.Context, pattern string) (int64, error)  { return 0, nil }
func (noopCache) GetWithFallback(ctx context.Context, key string, fallback func(ctx context.Context) (any, error), expiration time.Duration) (any, error) {
	return fallback(ctx)
}
func (noopCache) AcquireLock(ctx context.Context, lockName string, expiration time.Duration, retryCount int, retryDelay time.Duration) (bool, error) {
	return true, nil
}
func (noopCache) ReleaseLock(ctx context.Context, lockName string) (bool, error) { return true, nil }

func newTestService(t *testing.T) (*Service, *fakeRepo) {
	t.Helper()
	repo := newFakeRepo()
	svc := NewService(repo, noopCache{}, logger.New(logrus.New()))

	require.NoError(t, repo.CreateStorage(&models.UserStorage{
		ID:       "storage-1",
		UserID:   "user-1",
		MaxSpace: 1000,
	}))

	return svc, repo
}

func TestGetQuota(t *testing.T) {
	svc, _ := newTestService(t)

	quota, err := svc.GetQuota(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), quota.UsedSpace)
	assert.Equal(t, int64(1000), quota.MaxSpace)
}

func TestGetQuotaUnknownUser(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetQuota(context.Background(), "user-unknown")
	assert.ErrorIs(t, err, ErrStorageNotFound)
}

func TestCheckQuota(t *testing.T) {
	svc, _ := newTestService(t)

	assert.NoError(t, svc.CheckQuota(context.Background(), "user-1", 1000))
	assert.ErrorIs(t, svc.CheckQuota(context.Background(), "user-1", 1001), ErrQuotaExceeded)
}

func TestAddUsedSpace(t *testing.T) {
	svc, _ := newTestService(t)

	storage, err := svc.AddUsedSpace(context.Background(), "user-1", 600)
	require.NoError(t, err)
	assert.Equal(t, int64(600), storage.UsedSpace)

	// Second allocation would overshoot and must be rolled back
	_, err = svc.AddUsedSpace(context.Background(), "user-1", 600)
	assert.ErrorIs(t, err, ErrQuotaExceeded)

	quota, err := svc.GetQuota(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(600), quota.UsedSpace)
}

func TestReleaseUsedSpace(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.AddUsedSpace(context.Background(), "user-1", 500)
	require.NoError(t, err)

	storage, err := svc.ReleaseUsedSpace(context.Background(), "user-1", 200)
	require.NoError(t, err)
	assert.Equal(t, int64(300), storage.UsedSpace)

	// Releasing more than used clamps at zero
	storage, err = svc.ReleaseUsedSpace(context.Background(), "user-1", 10000)
	require.NoError(t, err)
	assert.Equal(t, int64(0), storage.UsedSpace)
}

func TestSetMaxSpace(t *testing.T) {
	svc, _ := newTestService(t)

	storage, err := svc.SetMaxSpace(context.Background(), "user-1", 5000)
	require.NoError(t, err)
	assert.Equal(t, int64(5000), storage.MaxSpace)

	_, err = svc.SetMaxSpace(context.Background(), "user-1", -1)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAddUsedSpaceRejectsNegative(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.AddUsedSpace(context.Background(), "user-1", -5)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
