package client

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

// Default routes the controller navigates to
const (
	SetupRoute = "/setup"
	LoginRoute = "/login"
)

// SessionAPI is the subset of the API client the session controller uses
type SessionAPI interface {
	GetSetupStatus(ctx context.Context) (*SetupStatus, error)
	Me(ctx context.Context) (*User, error)
}

// Navigator drives route transitions for the hosting application
type Navigator interface {
	// Push adds a new entry to the navigation history
	Push(path string)
	// Replace swaps the current history entry
	Replace(path string)
	// CurrentPath returns the active route
	CurrentPath() string
}

// SessionState is a point-in-time snapshot of the session
type SessionState struct {
	User       *User
	Loading    bool
	NeedsSetup *bool
}

// SessionController holds client-side session state. It bootstraps setup
// and identity state once, exposes login/logout/refresh operations, and
// issues redirects based on setup status.
//
// One controller lives for the lifetime of the application shell. All
// state writes after Close are suppressed, including late results from
// an in-flight bootstrap or refresh.
type SessionController struct {
	api    SessionAPI
	nav    Navigator
	logger *logrus.Logger

	mu         sync.Mutex
	user       *User
	loading    bool
	needsSetup *bool
	closed     bool
}

// NewSessionController creates a session controller in its initial state:
// loading with no user and an unknown setup status.
func NewSessionController(api SessionAPI, nav Navigator, log *logrus.Logger) *SessionController {
	if log == nil {
		log = logrus.New()
	}
	return &SessionController{
		api:     api,
		nav:     nav,
		logger:  log,
		loading: true,
	}
}

// store runs fn under the lock unless the controller has been closed
func (c *SessionController) store(fn func()) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	fn()
	return true
}

// Snapshot returns the current session state
func (c *SessionController) Snapshot() SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return SessionState{
		User:       c.user,
		Loading:    c.loading,
		NeedsSetup: c.needsSetup,
	}
}

// Bootstrap resolves setup and identity state. It runs the two checks in
// strict order: the setup check always comes first, and the identity fetch
// is skipped entirely when setup is required. Intended to be run once,
// usually on its own goroutine.
func (c *SessionController) Bootstrap(ctx context.Context) {
	status, err := c.api.GetSetupStatus(ctx)
	if err != nil {
		// Fail open toward the normal login flow
		c.logger.WithError(err).Error("Failed to check setup status")
		c.store(func() {
			needsSetup := false
			c.needsSetup = &needsSetup
			c.loading = false
		})
		return
	}

	if status.NeedsSetup {
		written := c.store(func() {
			needsSetup := true
			c.needsSetup = &needsSetup
			c.loading = false
		})
		if written {
			c.SyncRoute()
		}
		return
	}

	c.store(func() {
		needsSetup := false
		c.needsSetup = &needsSetup
	})

	identity, err := c.api.Me(ctx)
	if err != nil {
		// Expected when no session exists, not a fault
		identity = nil
	}

	c.store(func() {
		c.user = identity
		c.loading = false
	})
}

// SyncRoute redirects to the setup route while setup is required. The
// hosting application calls this on every route change; the redirect uses
// replace semantics so back-navigation cannot return to a pre-setup page.
func (c *SessionController) SyncRoute() {
	c.mu.Lock()
	needsSetup := c.needsSetup != nil && *c.needsSetup
	c.mu.Unlock()

	if needsSetup && c.nav.CurrentPath() != SetupRoute {
		c.nav.Replace(SetupRoute)
	}
}

// Login records an already-authenticated identity. The credential exchange
// itself is the API layer's responsibility; this only updates local state.
func (c *SessionController) Login(user *User) {
	c.store(func() {
		c.user = user
		needsSetup := false
		c.needsSetup = &needsSetup
	})
}

// Logout clears the local identity and navigates to the login route.
// Setup status is left untouched.
func (c *SessionController) Logout() {
	c.store(func() {
		c.user = nil
	})
	c.nav.Push(LoginRoute)
}

// RefreshUser re-fetches the current identity. A failed fetch settles to a
// logged-out state rather than returning an error. Results arriving after
// Close are discarded.
func (c *SessionController) RefreshUser(ctx context.Context) {
	identity, err := c.api.Me(ctx)
	if err != nil {
		identity = nil
	}

	c.store(func() {
		c.user = identity
	})
}

// Close tears the controller down. Any in-flight bootstrap or refresh
// result is discarded; no state is written after Close returns.
func (c *SessionController) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
}
