package client

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI is a scripted stand-in for the HTTP API client
type fakeAPI struct {
	mu sync.Mutex

	setupStatus *SetupStatus
	setupErr    error
	setupCalls  int

	meUser  *User
	meErr   error
	meCalls int
}

func (f *fakeAPI) GetSetupStatus(ctx context.Context) (*SetupStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setupCalls++
	if f.setupErr != nil {
		return nil, f.setupErr
	}
	return f.setupStatus, nil
}

func (f *fakeAPI) Me(ctx context.Context) (*User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.meCalls++
	if f.meErr != nil {
		return nil, f.meErr
	}
	return f.meUser, nil
}

// fakeNavigator records route transitions
type fakeNavigator struct {
	mu       sync.Mutex
	path     string
	pushes   []string
	replaces []string
}

func (n *fakeNavigator) Push(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pushes = append(n.pushes, path)
	n.path = path
}

func (n *fakeNavigator) Replace(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.replaces = append(n.replaces, path)
	n.path = path
}

func (n *fakeNavigator) CurrentPath() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.path
}

func newTestController(api SessionAPI, nav Navigator) *SessionController {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewSessionController(api, nav, log)
}

func TestInitialState(t *testing.T) {
	ctrl := newTestController(&fakeAPI{}, &fakeNavigator{path: "/"})

	state := ctrl.Snapshot()
	assert.True(t, state.Loading)
	assert.Nil(t, state.User)
	assert.Nil(t, state.NeedsSetup)
}

func TestBootstrapAuthenticated(t *testing.T) {
	api := &fakeAPI{
		setupStatus: &SetupStatus{NeedsSetup: false},
		meUser:      &User{ID: "user-1", Email: "owner@example.com"},
	}
	ctrl := newTestController(api, &fakeNavigator{path: "/"})

	ctrl.Bootstrap(context.Background())

	state := ctrl.Snapshot()
	assert.False(t, state.Loading)
	require.NotNil(t, state.User)
	assert.Equal(t, "user-1", state.User.ID)
	require.NotNil(t, state.NeedsSetup)
	assert.False(t, *state.NeedsSetup)

	assert.Equal(t, 1, api.setupCalls)
	assert.Equal(t, 1, api.meCalls)
}

func TestBootstrapSetupRequired(t *testing.T) {
	api := &fakeAPI{
		setupStatus: &SetupStatus{NeedsSetup: true},
		meUser:      &User{ID: "user-1"},
	}
	nav := &fakeNavigator{path: "/"}
	ctrl := newTestController(api, nav)

	ctrl.Bootstrap(context.Background())

	state := ctrl.Snapshot()
	assert.False(t, state.Loading)
	require.NotNil(t, state.NeedsSetup)
	assert.True(t, *state.NeedsSetup)

	// Identity endpoint never called when setup is pending
	assert.Equal(t, 0, api.meCalls)

	// Redirect uses replace semantics
	require.Len(t, nav.replaces, 1)
	assert.Equal(t, SetupRoute, nav.replaces[0])
	assert.Empty(t, nav.pushes)
}

func TestBootstrapSetupCheckFails(t *testing.T) {
	api := &fakeAPI{setupErr: errors.New("network down")}
	ctrl := newTestController(api, &fakeNavigator{path: "/"})

	ctrl.Bootstrap(context.Background())

	state := ctrl.Snapshot()
	assert.False(t, state.Loading)
	assert.Nil(t, state.User)
	require.NotNil(t, state.NeedsSetup)
	assert.False(t, *state.NeedsSetup, "setup check failure fails open toward login")

	// Identity fetch is skipped after a failed setup check
	assert.Equal(t, 0, api.meCalls)
}

func TestBootstrapIdentityFetchFails(t *testing.T) {
	api := &fakeAPI{
		setupStatus: &SetupStatus{NeedsSetup: false},
		meErr:       &APIError{HTTPStatus: 401, Detail: "Authentication required"},
	}
	ctrl := newTestController(api, &fakeNavigator{path: "/"})

	ctrl.Bootstrap(context.Background())

	state := ctrl.Snapshot()
	assert.False(t, state.Loading)
	assert.Nil(t, state.User)
}

func TestLoginIsSynchronous(t *testing.T) {
	ctrl := newTestController(&fakeAPI{}, &fakeNavigator{path: "/"})

	ctrl.Login(&User{ID: "user-2", Email: "b@example.com"})

	state := ctrl.Snapshot()
	require.NotNil(t, state.User)
	assert.Equal(t, "user-2", state.User.ID)
	require.NotNil(t, state.NeedsSetup)
	assert.False(t, *state.NeedsSetup)
}

func TestLogout(t *testing.T) {
	api := &fakeAPI{
		setupStatus: &SetupStatus{NeedsSetup: false},
		meUser:      &User{ID: "user-1"},
	}
	nav := &fakeNavigator{path: "/files"}
	ctrl := newTestController(api, nav)
	ctrl.Bootstrap(context.Background())
	meCallsBefore := api.meCalls

	ctrl.Logout()

	state := ctrl.Snapshot()
	assert.Nil(t, state.User)

	// Setup status is preserved across logout
	require.NotNil(t, state.NeedsSetup)
	assert.False(t, *state.NeedsSetup)

	// Push navigation to login, no network calls
	require.Len(t, nav.pushes, 1)
	assert.Equal(t, LoginRoute, nav.pushes[0])
	assert.Equal(t, meCallsBefore, api.meCalls)
}

func TestRefreshUserReplacesIdentity(t *testing.T) {
	api := &fakeAPI{
		setupStatus: &SetupStatus{NeedsSetup: false},
		meUser:      &User{ID: "user-1"},
	}
	ctrl := newTestController(api, &fakeNavigator{path: "/"})
	ctrl.Bootstrap(context.Background())

	api.mu.Lock()
	api.meUser = &User{ID: "user-1", DisplayName: "Renamed"}
	api.mu.Unlock()

	ctrl.RefreshUser(context.Background())

	state := ctrl.Snapshot()
	require.NotNil(t, state.User)
	assert.Equal(t, "Renamed", state.User.DisplayName)
}

func TestRefreshUserSettlesToLoggedOutOnFailure(t *testing.T) {
	api := &fakeAPI{
		setupStatus: &SetupStatus{NeedsSetup: false},
		meUser:      &User{ID: "user-1"},
	}
	ctrl := newTestController(api, &fakeNavigator{path: "/"})
	ctrl.Bootstrap(context.Background())
	require.NotNil(t, ctrl.Snapshot().User)

	api.mu.Lock()
	api.meErr = errors.New("session revoked")
	api.mu.Unlock()

	ctrl.RefreshUser(context.Background())

	assert.Nil(t, ctrl.Snapshot().User)
}

func TestCloseSuppressesLateBootstrapWrites(t *testing.T) {
	block := make(chan struct{})
	api := &blockingAPI{
		inner: &fakeAPI{
			setupStatus: &SetupStatus{NeedsSetup: false},
			meUser:      &User{ID: "user-1"},
		},
		block: block,
	}
	ctrl := newTestController(api, &fakeNavigator{path: "/"})

	done := make(chan struct{})
	go func() {
		ctrl.Bootstrap(context.Background())
		close(done)
	}()

	// Tear down before the setup check resolves
	ctrl.Close()
	close(block)
	<-done

	state := ctrl.Snapshot()
	assert.Nil(t, state.User)
	assert.Nil(t, state.NeedsSetup)
	assert.True(t, state.Loading, "no state written after teardown")
}

func TestCloseSuppressesLateRefreshWrites(t *testing.T) {
	block := make(chan struct{})
	api := &blockingAPI{
		inner: &fakeAPI{
			setupStatus: &SetupStatus{NeedsSetup: false},
			meUser:      &User{ID: "user-9"},
		},
		block: block,
	}
	ctrl := newTestController(api, &fakeNavigator{path: "/"})

	done := make(chan struct{})
	go func() {
		ctrl.RefreshUser(context.Background())
		close(done)
	}()

	ctrl.Close()
	close(block)
	<-done

	assert.Nil(t, ctrl.Snapshot().User)
}

func TestSyncRouteNoopWithoutSetup(t *testing.T) {
	api := &fakeAPI{setupStatus: &SetupStatus{NeedsSetup: false}, meUser: &User{ID: "u"}}
	nav := &fakeNavigator{path: "/files"}
	ctrl := newTestController(api, nav)
	ctrl.Bootstrap(context.Background())

	ctrl.SyncRoute()

	assert.Empty(t, nav.replaces)
	assert.Empty(t, nav.pushes)
}

func TestSyncRouteNoopOnSetupRoute(t *testing.T) {
	api := &fakeAPI{setupStatus: &SetupStatus{NeedsSetup: true}}
	nav := &fakeNavigator{path: SetupRoute}
	ctrl := newTestController(api, nav)
	ctrl.Bootstrap(context.Background())

	// Already on the setup route, nothing to replace
	assert.Empty(t, nav.replaces)
}

// blockingAPI delays every call until the block channel is closed
type blockingAPI struct {
	inner *fakeAPI
	block chan struct{}
}

func (b *blockingAPI) GetSetupStatus(ctx context.Context) (*SetupStatus, error) {
	<-b.block
	return b.inner.GetSetupStatus(ctx)
}

func (b *blockingAPI) Me(ctx context.Context) (*User, error) {
	<-b.block
	return b.inner.Me(ctx)
}
