// internal/session/controller.go
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"gracehub-service/internal/domain/admin"
	xerrors "gracehub-service/internal/pkg/errors"
	"gracehub-service/internal/pkg/tokenstore"

	"go.uber.org/zap"
)

// AuthAPI is the server boundary the controller drives. Satisfied by the
// in-process auth service; a remote HTTP client would satisfy it equally.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*admin.AuthGrant, error)
	VerifyToken(ctx context.Context, accessToken string) (*admin.Profile, error)
	RefreshToken(ctx context.Context, refreshToken string) (*admin.AuthGrant, error)
	Logout(ctx context.Context, refreshToken string) error
	UpdateProfile(ctx context.Context, accessToken string, req *admin.UpdateProfileRequest) (*admin.Profile, error)
	ChangePassword(ctx context.Context, accessToken string, req *admin.ChangePasswordRequest) error
}

// Controller is the session state machine. All transitions funnel through
// it; token state lives in the store, identity state lives here, and the
// two always move together.
type Controller struct {
	api    AuthAPI
	store  *tokenstore.Store
	logger *zap.Logger

	refreshInterval time.Duration

	mu         sync.Mutex
	state      State
	admin      *admin.Profile
	loading    bool
	lastError  string
	generation int64 // bumped on login/logout; stale async results are discarded
	stopCh     chan struct{}

	subMu  sync.Mutex
	nextID int
	subs   map[int]func(Session)
}

func NewController(api AuthAPI, store *tokenstore.Store, refreshInterval time.Duration, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	if refreshInterval <= 0 {
		refreshInterval = 14 * time.Minute
	}
	return &Controller{
		api:             api,
		store:           store,
		logger:          logger,
		refreshInterval: refreshInterval,
		state:           StateUnknown,
		subs:            make(map[int]func(Session)),
	}
}

// Subscribe registers a listener invoked with a snapshot after every
// transition. The returned function cancels the subscription.
func (c *Controller) Subscribe(fn func(Session)) func() {
	c.subMu.Lock()
	id := c.nextID
	c.nextID++
	c.subs[id] = fn
	c.subMu.Unlock()

	return func() {
		c.subMu.Lock()
		delete(c.subs, id)
		c.subMu.Unlock()
	}
}

// Current returns a snapshot of the present session.
func (c *Controller) Current() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// IsAuthenticated is a convenience over Current.
func (c *Controller) IsAuthenticated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == StateAuthenticated
}

// GetToken returns the current access token, or "" when no session.
func (c *Controller) GetToken() string { return c.store.AccessToken() }

// GetRefreshToken returns the current refresh token, or "" when no session.
func (c *Controller) GetRefreshToken() string { return c.store.RefreshToken() }

// Initialize resolves the startup ambiguity: with stored tokens it attempts
// a silent re-login (verify, then refresh as fallback); without them it
// settles on unauthenticated immediately. Until it returns, consumers see
// Verifying and must hold rather than redirect.
func (c *Controller) Initialize(ctx context.Context) {
	c.store.Load(ctx)

	c.mu.Lock()
	gen := c.generation
	pair := c.store.Pair()
	if !pair.Valid() {
		c.state = StateUnauthenticated
		snap := c.snapshotLocked()
		c.mu.Unlock()
		c.notify(snap)
		return
	}
	c.state = StateVerifying
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)

	profile, err := c.api.VerifyToken(ctx, pair.AccessToken)
	if err != nil {
		// Access token stale; one refresh attempt before giving up.
		grant, rerr := c.api.RefreshToken(ctx, pair.RefreshToken)
		if rerr != nil {
			c.logger.Info("silent re-login failed, purging session", zap.Error(rerr))
			c.applyLogout(ctx, gen, "")
			return
		}
		c.applyGrant(ctx, gen, grant)
		return
	}

	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		return
	}
	c.state = StateAuthenticated
	c.admin = profile
	c.lastError = ""
	c.startRefreshLocked()
	snap = c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)
}

// Login authenticates with credentials. On success the token pair is
// stored atomically and the proactive refresh loop starts.
func (c *Controller) Login(ctx context.Context, email, password string) Result {
	c.mu.Lock()
	c.loading = true
	c.lastError = ""
	gen := c.generation
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)

	grant, err := c.api.Login(ctx, email, password)
	if err != nil {
		// A failed attempt converges on the empty shape even if a previous
		// session was live: stale credentials never outlive a rejection.
		msg := xerrors.MessageOrDefault(err, "Login failed. Please try again.")
		c.mu.Lock()
		if gen != c.generation {
			c.mu.Unlock()
			return Result{Success: false, Message: msg}
		}
		c.generation++
		c.stopRefreshLocked()
		c.store.Clear(ctx)
		c.state = StateUnauthenticated
		c.admin = nil
		c.loading = false
		c.lastError = msg
		snap = c.snapshotLocked()
		c.mu.Unlock()
		c.notify(snap)
		return Result{Success: false, Message: msg}
	}

	if !c.applyGrant(ctx, gen, grant) {
		return Result{Success: false, Message: "Session changed during login"}
	}
	return Result{Success: true}
}

// Logout clears the session. Local state is purged synchronously and
// unconditionally; the server revocation is fire-and-forget, so a dead
// server can never trap a user in a logged-in UI.
func (c *Controller) Logout(ctx context.Context, notifyServer bool) {
	refresh := c.store.RefreshToken()

	c.mu.Lock()
	gen := c.generation
	c.mu.Unlock()
	c.applyLogout(ctx, gen, "")

	if notifyServer && refresh != "" {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := c.api.Logout(ctx, refresh); err != nil {
				c.logger.Debug("server-side logout failed", zap.Error(err))
			}
		}()
	}
}

// UpdateProfile applies a profile edit and adopts the server's returned
// copy as the authoritative one.
func (c *Controller) UpdateProfile(ctx context.Context, req *admin.UpdateProfileRequest) Result {
	token := c.store.AccessToken()
	if token == "" {
		return Result{Success: false, Message: "Not authenticated"}
	}

	c.mu.Lock()
	gen := c.generation
	c.mu.Unlock()

	profile, err := c.api.UpdateProfile(ctx, token, req)
	if err != nil {
		return Result{Success: false, Message: xerrors.MessageOrDefault(err, "Profile update failed")}
	}

	c.mu.Lock()
	if gen == c.generation && c.state == StateAuthenticated {
		c.admin = profile
		snap := c.snapshotLocked()
		c.mu.Unlock()
		c.notify(snap)
	} else {
		c.mu.Unlock()
	}
	return Result{Success: true, Message: "Profile updated"}
}

// ChangePassword changes the password and then logs out locally without a
// server call: the server already revoked every refresh token, so a logout
// request would just fail. The caller should route to login.
func (c *Controller) ChangePassword(ctx context.Context, req *admin.ChangePasswordRequest) Result {
	token := c.store.AccessToken()
	if token == "" {
		return Result{Success: false, Message: "Not authenticated"}
	}

	if err := c.api.ChangePassword(ctx, token, req); err != nil {
		if errors.Is(err, xerrors.ErrInvalidCredentials) {
			return Result{Success: false, Message: "Current password is incorrect"}
		}
		return Result{Success: false, Message: xerrors.MessageOrDefault(err, "Password change failed")}
	}

	c.Logout(ctx, false)
	return Result{Success: true, Message: "Password changed. Please log in again."}
}

// refreshNow swaps the token pair ahead of access-token expiry. Any
// failure is terminal for the session: trying again later would race the
// expiry and leave the UI half-authenticated.
func (c *Controller) refreshNow(ctx context.Context, gen int64) {
	refresh := c.store.RefreshToken()
	if refresh == "" {
		return
	}

	grant, err := c.api.RefreshToken(ctx, refresh)

	c.mu.Lock()
	stale := gen != c.generation
	c.mu.Unlock()
	if stale {
		return
	}

	if err != nil {
		c.logger.Warn("proactive refresh failed, ending session", zap.Error(err))
		c.applyLogout(ctx, gen, "Your session has expired. Please log in again.")
		return
	}
	c.applyGrant(ctx, gen, grant)
}

// applyGrant installs a fresh grant if the session hasn't moved on.
func (c *Controller) applyGrant(ctx context.Context, gen int64, grant *admin.AuthGrant) bool {
	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		return false
	}
	c.store.Set(ctx, grant.Pair())
	c.state = StateAuthenticated
	c.admin = grant.Admin
	c.loading = false
	c.lastError = ""
	c.startRefreshLocked()
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)
	return true
}

// applyLogout converges on the empty session shape and bumps the
// generation so in-flight async results die quietly.
func (c *Controller) applyLogout(ctx context.Context, gen int64, errMsg string) {
	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		return
	}
	c.generation++
	c.stopRefreshLocked()
	c.store.Clear(ctx)
	c.state = StateUnauthenticated
	c.admin = nil
	c.loading = false
	c.lastError = errMsg
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)
}

func (c *Controller) startRefreshLocked() {
	c.stopRefreshLocked()
	stop := make(chan struct{})
	c.stopCh = stop
	gen := c.generation

	go func() {
		ticker := time.NewTicker(c.refreshInterval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				c.refreshNow(ctx, gen)
				cancel()
			}
		}
	}()
}

func (c *Controller) stopRefreshLocked() {
	if c.stopCh != nil {
		close(c.stopCh)
		c.stopCh = nil
	}
}

func (c *Controller) snapshotLocked() Session {
	pair := c.store.Pair()
	return Session{
		State:           c.state,
		IsAuthenticated: c.state == StateAuthenticated,
		Admin:           c.admin.Clone(),
		AccessToken:     pair.AccessToken,
		RefreshToken:    pair.RefreshToken,
		Loading:         c.loading,
		Error:           c.lastError,
	}
}

func (c *Controller) notify(snap Session) {
	c.subMu.Lock()
	fns := make([]func(Session), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.subMu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}
