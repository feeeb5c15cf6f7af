package files

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"cloudvault-api/internal/logger"
	"cloudvault-api/internal/models"
	"cloudvault-api/internal/storage"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo is an in-memory file repository
type fakeRepo struct {
	mu    sync.Mutex
	items map[string]*models.FileItem
	seq   int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: make(map[string]*models.FileItem)}
}

func (r *fakeRepo) SaveFile(item *models.FileItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if item.ID == "" {
		r.seq++
		item.ID = fmt.Sprintf("file-%d", r.seq)
	}
	if item.UploadState == "" {
		item.UploadState = models.UploadStatePending
	}
	copied := *item
	r.items[item.ID] = &copied
	return nil
}

func (r *fakeRepo) GetFile(fileID string) (*models.FileItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[fileID]
	if !ok {
		return nil, ErrFileNotFound
	}
	copied := *item
	return &copied, nil
}

func (r *fakeRepo) GetUserFile(userID, fileID string) (*models.FileItem, error) {
	item, err := r.GetFile(fileID)
	if err != nil {
		return nil, err
	}
	if item.UserID != userID {
		return nil, ErrFileNotFound
	}
	return item, nil
}

func (r *fakeRepo) ListChildren(userID string, parentID *string) ([]*models.FileItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var children []*models.FileItem
	for _, item := range r.items {
		if item.UserID != userID || item.UploadState == models.UploadStateDeleted {
			continue
		}
		if parentID == nil && item.ParentID == nil {
			copied := *item
			children = append(children, &copied)
		} else if parentID != nil && item.ParentID != nil && *item.ParentID == *parentID {
			copied := *item
			children = append(children, &copied)
		}
	}
	return children, nil
}

func (r *fakeRepo) CountChildren(userID, folderID string) (int64, error) {
	children, err := r.ListChildren(userID, &folderID)
	return int64(len(children)), err
}

func (r *fakeRepo) UpdateFile(item *models.FileItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[item.ID]; !ok {
		return ErrFileNotFound
	}
	copied := *item
	r.items[item.ID] = &copied
	return nil
}

func (r *fakeRepo) DeleteFile(fileID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, fileID)
	return nil
}

// fakeQuota tracks usage in memory
type fakeQuota struct {
	mu   sync.Mutex
	used int64
	max  int64
}

func (q *fakeQuota) CheckQuota(ctx context.Context, userID string, size int64) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.used+size > q.max {
		return storage.ErrQuotaExceeded
	}
	return nil
}

func (q *fakeQuota) AddUsedSpace(ctx context.Context, userID string, size int64) (*models.UserStorage, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.used+size > q.max {
		return nil, storage.ErrQuotaExceeded
	}
	q.used += size
	return &models.UserStorage{UserID: userID, UsedSpace: q.used, MaxSpace: q.max}, nil
}

func (q *fakeQuota) ReleaseUsedSpace(ctx context.Context, userID string, size int64) (*models.UserStorage, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.used -= size
	if q.used < 0 {
		q.used = 0
	}
	return &models.UserStorage{UserID: userID, UsedSpace: q.used, MaxSpace: q.max}, nil
}

// fakeStore records object operations
type fakeStore struct {
	mu      sync.Mutex
	deleted []string
}

func (s *fakeStore) PrepareFileUpload(userID, fileID, contentType string) (string, error) {
	return fmt.Sprintf("https://s3.test/upload/%s/%s", userID, fileID), nil
}

func (s *fakeStore) GetFileDownloadURL(userID, fileID string) (string, error) {
	return fmt.Sprintf("https://s3.test/download/%s/%s", userID, fileID), nil
}

func (s *fakeStore) DeleteObject(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, key)
	return nil
}

func newTestService() (*Service, *fakeRepo, *fakeQuota, *fakeStore) {
	repo := newFakeRepo()
	quota := &fakeQuota{max: 1000}
	store := &fakeStore{}
	svc := NewService(repo, quota, store, logger.New(logrus.New()))
	return svc, repo, quota, store
}

const testUserID = "user-1"

func uploadActiveFile(t *testing.T, svc *Service, parentID *string, name string, size int64) *models.FileItem {
	t.Helper()
	ticket, err := svc.InitiateUpload(context.Background(), testUserID, parentID, name, "text/plain", size)
	require.NoError(t, err)
	item, err := svc.CompleteUpload(context.Background(), testUserID, ticket.File.ID)
	require.NoError(t, err)
	return item
}

func TestCreateFolder(t *testing.T) {
	svc, _, _, _ := newTestService()

	folder, err := svc.CreateFolder(context.Background(), testUserID, nil, "Documents")
	require.NoError(t, err)
	assert.True(t, folder.IsFolder)
	assert.Equal(t, models.UploadStateActive, folder.UploadState)
}

func TestCreateFolderDuplicateName(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.CreateFolder(context.Background(), testUserID, nil, "Documents")
	require.NoError(t, err)

	_, err = svc.CreateFolder(context.Background(), testUserID, nil, "documents")
	assert.ErrorIs(t, err, ErrNameTaken)
}

func TestCreateFolderBadParent(t *testing.T) {
	svc, _, _, _ := newTestService()

	missing := "file-missing"
	_, err := svc.CreateFolder(context.Background(), testUserID, &missing, "Documents")
	assert.ErrorIs(t, err, ErrFolderNotFound)
}

func TestCreateFolderRejectsBadNames(t *testing.T) {
	svc, _, _, _ := newTestService()

	for _, name := range []string{"", "a/b", "..", "c\\d"} {
		_, err := svc.CreateFolder(context.Background(), testUserID, nil, name)
		assert.ErrorIs(t, err, ErrInvalidName, name)
	}
}

func TestUploadLifecycle(t *testing.T) {
	svc, _, quota, _ := newTestService()

	ticket, err := svc.InitiateUpload(context.Background(), testUserID, nil, "notes.txt", "text/plain", 400)
	require.NoError(t, err)
	assert.Equal(t, models.UploadStatePending, ticket.File.UploadState)
	assert.Contains(t, ticket.UploadURL, ticket.File.ID)
	assert.Zero(t, quota.used, "pending uploads must not consume quota")

	item, err := svc.CompleteUpload(context.Background(), testUserID, ticket.File.ID)
	require.NoError(t, err)
	assert.Equal(t, models.UploadStateActive, item.UploadState)
	assert.Equal(t, int64(400), quota.used)
}

func TestCompleteUploadTwice(t *testing.T) {
	svc, _, _, _ := newTestService()

	item := uploadActiveFile(t, svc, nil, "notes.txt", 100)

	_, err := svc.CompleteUpload(context.Background(), testUserID, item.ID)
	assert.ErrorIs(t, err, ErrUploadNotPending)
}

func TestInitiateUploadQuotaExceeded(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.InitiateUpload(context.Background(), testUserID, nil, "big.bin", "application/octet-stream", 2000)
	assert.ErrorIs(t, err, storage.ErrQuotaExceeded)
}

func TestListFolder(t *testing.T) {
	svc, _, _, _ := newTestService()

	folder, err := svc.CreateFolder(context.Background(), testUserID, nil, "Documents")
	require.NoError(t, err)
	uploadActiveFile(t, svc, &folder.ID, "notes.txt", 10)

	root, err := svc.ListFolder(context.Background(), testUserID, nil)
	require.NoError(t, err)
	assert.Len(t, root, 1)

	children, err := svc.ListFolder(context.Background(), testUserID, &folder.ID)
	require.NoError(t, err)
	assert.Len(t, children, 1)
	assert.Equal(t, "notes.txt", children[0].Name)
}

func TestGetDownloadURL(t *testing.T) {
	svc, _, _, _ := newTestService()

	item := uploadActiveFile(t, svc, nil, "notes.txt", 10)

	url, err := svc.GetDownloadURL(context.Background(), testUserID, item.ID)
	require.NoError(t, err)
	assert.Contains(t, url, item.ID)
}

func TestGetDownloadURLPendingFile(t *testing.T) {
	svc, _, _, _ := newTestService()

	ticket, err := svc.InitiateUpload(context.Background(), testUserID, nil, "notes.txt", "text/plain", 10)
	require.NoError(t, err)

	_, err = svc.GetDownloadURL(context.Background(), testUserID, ticket.File.ID)
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestRename(t *testing.T) {
	svc, _, _, _ := newTestService()

	item := uploadActiveFile(t, svc, nil, "notes.txt", 10)
	uploadActiveFile(t, svc, nil, "other.txt", 10)

	renamed, err := svc.Rename(context.Background(), testUserID, item.ID, "renamed.txt")
	require.NoError(t, err)
	assert.Equal(t, "renamed.txt", renamed.Name)

	_, err = svc.Rename(context.Background(), testUserID, item.ID, "other.txt")
	assert.ErrorIs(t, err, ErrNameTaken)
}

func TestMove(t *testing.T) {
	svc, _, _, _ := newTestService()

	folder, err := svc.CreateFolder(context.Background(), testUserID, nil, "Documents")
	require.NoError(t, err)
	item := uploadActiveFile(t, svc, nil, "notes.txt", 10)

	moved, err := svc.Move(context.Background(), testUserID, item.ID, &folder.ID)
	require.NoError(t, err)
	require.NotNil(t, moved.ParentID)
	assert.Equal(t, folder.ID, *moved.ParentID)
}

func TestMoveFolderIntoItself(t *testing.T) {
	svc, _, _, _ := newTestService()

	folder, err := svc.CreateFolder(context.Background(), testUserID, nil, "Documents")
	require.NoError(t, err)

	_, err = svc.Move(context.Background(), testUserID, folder.ID, &folder.ID)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMoveFolderIntoOwnDescendant(t *testing.T) {
	svc, _, _, _ := newTestService()

	parent, err := svc.CreateFolder(context.Background(), testUserID, nil, "Parent")
	require.NoError(t, err)
	child, err := svc.CreateFolder(context.Background(), testUserID, &parent.ID, "Child")
	require.NoError(t, err)
	grandchild, err := svc.CreateFolder(context.Background(), testUserID, &child.ID, "Grandchild")
	require.NoError(t, err)

	_, err = svc.Move(context.Background(), testUserID, parent.ID, &child.ID)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Move(context.Background(), testUserID, parent.ID, &grandchild.ID)
	assert.ErrorIs(t, err, ErrInvalidInput)

	// The tree is untouched, so the parent still lists from the root
	root, err := svc.ListFolder(context.Background(), testUserID, nil)
	require.NoError(t, err)
	require.Len(t, root, 1)
	assert.Equal(t, parent.ID, root[0].ID)
}

func TestMoveFolderIntoSibling(t *testing.T) {
	svc, _, _, _ := newTestService()

	folderA, err := svc.CreateFolder(context.Background(), testUserID, nil, "A")
	require.NoError(t, err)
	folderB, err := svc.CreateFolder(context.Background(), testUserID, nil, "B")
	require.NoError(t, err)

	moved, err := svc.Move(context.Background(), testUserID, folderA.ID, &folderB.ID)
	require.NoError(t, err)
	require.NotNil(t, moved.ParentID)
	assert.Equal(t, folderB.ID, *moved.ParentID)
}

func TestInitiateUploadRejectsBadMimeType(t *testing.T) {
	svc, _, _, _ := newTestService()

	for _, mimeType := range []string{"", "garbage", "/plain", "text/", "te xt/plain"} {
		_, err := svc.InitiateUpload(context.Background(), testUserID, nil, "notes.txt", mimeType, 10)
		assert.ErrorIs(t, err, ErrInvalidMimeType, mimeType)
	}
}

func TestInitiateUploadAcceptsMimeParameters(t *testing.T) {
	svc, _, _, _ := newTestService()

	ticket, err := svc.InitiateUpload(context.Background(), testUserID, nil, "notes.txt", "text/plain; charset=utf-8", 10)
	require.NoError(t, err)
	assert.Equal(t, "text/plain; charset=utf-8", ticket.File.MimeType)
}

func TestDeleteFileReleasesQuotaAndObject(t *testing.T) {
	svc, _, quota, store := newTestService()

	item := uploadActiveFile(t, svc, nil, "notes.txt", 300)
	require.Equal(t, int64(300), quota.used)

	require.NoError(t, svc.Delete(context.Background(), testUserID, item.ID))

	assert.Zero(t, quota.used)
	assert.Contains(t, store.deleted, item.StorageKey)

	_, err := svc.GetFile(context.Background(), testUserID, item.ID)
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestDeleteNonEmptyFolder(t *testing.T) {
	svc, _, _, _ := newTestService()

	folder, err := svc.CreateFolder(context.Background(), testUserID, nil, "Documents")
	require.NoError(t, err)
	uploadActiveFile(t, svc, &folder.ID, "notes.txt", 10)

	err = svc.Delete(context.Background(), testUserID, folder.ID)
	assert.ErrorIs(t, err, ErrFolderNotEmpty)
}

func TestDeleteEmptyFolder(t *testing.T) {
	svc, _, _, _ := newTestService()

	folder, err := svc.CreateFolder(context.Background(), testUserID, nil, "Documents")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), testUserID, folder.ID))
}

func TestOwnershipIsEnforced(t *testing.T) {
	svc, _, _, _ := newTestService()

	item := uploadActiveFile(t, svc, nil, "notes.txt", 10)

	_, err := svc.GetFile(context.Background(), "user-2", item.ID)
	assert.ErrorIs(t, err, ErrFileNotFound)

	err = svc.Delete(context.Background(), "user-2", item.ID)
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestGetPreviewForPreviewableFile(t *testing.T) {
	svc, _, _, _ := newTestService()

	item := uploadActiveFile(t, svc, nil, "notes.txt", 10)

	preview, err := svc.GetPreview(context.Background(), testUserID, item.ID)
	require.NoError(t, err)
	assert.Equal(t, PreviewText, preview.Kind)
	assert.Contains(t, preview.URL, item.ID)
}

func TestGetPreviewForOpaqueFile(t *testing.T) {
	svc, _, _, _ := newTestService()

	ticket, err := svc.InitiateUpload(context.Background(), testUserID, nil, "data.bin", "application/octet-stream", 10)
	require.NoError(t, err)
	item, err := svc.CompleteUpload(context.Background(), testUserID, ticket.File.ID)
	require.NoError(t, err)

	preview, err := svc.GetPreview(context.Background(), testUserID, item.ID)
	require.NoError(t, err)
	assert.Equal(t, PreviewOther, preview.Kind)
	assert.Empty(t, preview.URL, "no presigned URL for kinds a client cannot render")
}

func TestGetPreviewRejectsFolders(t *testing.T) {
	svc, _, _, _ := newTestService()

	folder, err := svc.CreateFolder(context.Background(), testUserID, nil, "Documents")
	require.NoError(t, err)

	_, err = svc.GetPreview(context.Background(), testUserID, folder.ID)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
