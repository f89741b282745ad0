// Copyright (c) 2026 CodeJourney. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package session implements the Session Manager: the single owner of the
bearer token, the current user, and the derived authentication status.

Lifecycle:

  - A [Manager] starts in [StatusLoading]. [Manager.Initialize] hydrates it
    from the [TokenStore] and always leaves it authenticated or not.
  - Token and user are set together and cleared together. A status of
    [StatusAuthenticated] implies both are present.
  - [Manager.Close] tears the manager down and drops every subscriber.

Operations are serialized: a second call waits for the first to finish.
Calls whose context is cancelled drop the response and leave the session
as it was, except that a cancelled hydration still ends the loading state.
*/
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/taibuivan/codejourney/internal/models"
	"github.com/taibuivan/codejourney/internal/platform/apperr"
	"github.com/taibuivan/codejourney/internal/platform/ctxutil"
	"github.com/taibuivan/codejourney/internal/platform/notify"
	"github.com/taibuivan/codejourney/internal/platform/sec"
	"github.com/taibuivan/codejourney/internal/remote"
)

// Status is the derived authentication state.
type Status string

const (
	StatusLoading         Status = "loading"
	StatusAuthenticated   Status = "authenticated"
	StatusUnauthenticated Status = "unauthenticated"
)

// User-facing notification lines.
const (
	msgLoggedIn       = "Logged in successfully"
	msgLoggedOut      = "Logged out successfully"
	msgRegistered     = "Registration successful"
	msgProfileUpdated = "Profile updated successfully"
	msgSessionExpired = "Session expired"
	msgNotLoggedIn    = "You must be logged in"
	msgEmailTaken     = "Email already registered, please use another"
)

// API is the slice of the remote client the session needs.
type API interface {
	Login(ctx context.Context, email, password string) (*remote.LoginResult, error)
	Register(ctx context.Context, registration models.Registration) (*models.User, error)
	ValidateEmail(ctx context.Context, email string) (bool, error)
	Profile(ctx context.Context, token string) (*models.User, error)
	UpdateUser(ctx context.Context, token, userID string, update models.UserUpdate) (*models.User, error)
}

// Snapshot is what subscribers see on every change. It never carries the token.
type Snapshot struct {
	Status      Status
	User        *models.User
	Initialized bool
}

// Manager owns the session. Create one with [New].
type Manager struct {
	store    TokenStore
	api      API
	notifier notify.Notifier
	logger   *slog.Logger
	now      func() time.Time

	// ops serializes operations; mu guards the fields below.
	ops sync.Mutex
	mu  sync.RWMutex

	status      Status
	token       string
	user        *models.User
	initialized bool
	lastErr     string
	closed      bool

	subscribers map[int]func(Snapshot)
	nextSubID   int
}

// New wires a manager. A nil notifier discards notifications.
func New(store TokenStore, api API, notifier notify.Notifier, logger *slog.Logger) *Manager {
	if notifier == nil {
		notifier = notify.Discard
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Manager{
		store:       store,
		api:         api,
		notifier:    notifier,
		logger:      logger.With(slog.String("component", "session")),
		now:         time.Now,
		status:      StatusLoading,
		subscribers: map[int]func(Snapshot){},
	}
}

// # Operations

// Initialize hydrates the session from the persisted token.
//
// Failures are silent: the token is cleared, the status becomes
// unauthenticated and nothing is shown to the user.
func (manager *Manager) Initialize(ctx context.Context) error {
	manager.ops.Lock()
	defer manager.ops.Unlock()

	ctx = ctxutil.WithOperation(ctx, "session.initialize")

	token, err := manager.store.Get(ctx)
	if err != nil {
		manager.logger.WarnContext(ctx, "token_store_read_failed", slog.Any("error", err))
		token = ""
	}

	if token == "" {
		manager.apply(func() {
			manager.clearLocked()
			manager.initialized = true
		})
		return nil
	}

	return manager.hydrate(ctx, token, true)
}

// Refresh re-runs the profile lookup with the persisted token, typically
// after the token changed outside this process.
func (manager *Manager) Refresh(ctx context.Context) error {
	manager.ops.Lock()
	defer manager.ops.Unlock()

	ctx = ctxutil.WithOperation(ctx, "session.refresh")

	token, err := manager.store.Get(ctx)
	if err != nil {
		manager.logger.WarnContext(ctx, "token_store_read_failed", slog.Any("error", err))
		token = ""
	}

	if token == "" {
		wasAuthenticated := manager.IsAuthenticated()
		manager.apply(func() {
			manager.clearLocked()
			manager.initialized = true
		})
		if wasAuthenticated {
			manager.notifier.Info(msgLoggedOut)
		}
		return nil
	}

	return manager.hydrate(ctx, token, false)
}

// hydrate resolves token into a user. Callers hold ops.
func (manager *Manager) hydrate(ctx context.Context, token string, silent bool) error {
	logger := manager.logger

	// Skip the round trip when the token says it is already dead.
	if info := sec.InspectToken(token); info.IsJWT && info.Expired(manager.now()) {
		logger.InfoContext(ctx, "token_expired_locally", slog.Time("expires_at", info.ExpiresAt))
		return manager.reject(ctx, apperr.Unauthorized(msgSessionExpired), silent)
	}

	user, err := manager.api.Profile(ctx, token)
	if remote.IsCanceled(err) {
		logger.InfoContext(ctx, "profile_fetch_canceled", slog.Any("error", err))
		manager.settle()
		return err
	}
	if err != nil {
		logger.InfoContext(ctx, "profile_fetch_failed", slog.Any("error", err))
		return manager.reject(ctx, err, silent)
	}

	manager.apply(func() {
		manager.token = token
		manager.user = user
		manager.status = StatusAuthenticated
		manager.initialized = true
		manager.lastErr = ""
	})
	return nil
}

// settle ends a hydration that never got an answer. A session that was
// still loading becomes unauthenticated; the persisted token is kept since
// nothing rejected it.
func (manager *Manager) settle() {
	if manager.IsInitialized() {
		return
	}
	manager.apply(func() {
		manager.clearLocked()
		manager.initialized = true
	})
}

// reject clears the persisted and in-memory session after a failed hydration.
func (manager *Manager) reject(ctx context.Context, cause error, silent bool) error {
	if err := manager.store.Delete(ctx); err != nil {
		manager.logger.WarnContext(ctx, "token_store_delete_failed", slog.Any("error", err))
	}

	manager.apply(func() {
		manager.clearLocked()
		manager.initialized = true
		if !silent {
			manager.lastErr = msgSessionExpired
		}
	})

	if silent {
		return nil
	}
	manager.notifier.Error(msgSessionExpired)
	expired := apperr.Unauthorized(msgSessionExpired)
	expired.Cause = cause
	return expired
}

// Login exchanges credentials for a session. On failure the session is
// left exactly as it was.
func (manager *Manager) Login(ctx context.Context, email, password string) error {
	manager.ops.Lock()
	defer manager.ops.Unlock()

	ctx = ctxutil.WithOperation(ctx, "session.login")

	result, err := manager.api.Login(ctx, email, password)
	if remote.IsCanceled(err) {
		return err
	}
	if err != nil {
		return manager.fail(ctx, err)
	}

	if err := manager.store.Set(ctx, result.Token); err != nil {
		manager.logger.ErrorContext(ctx, "token_store_write_failed", slog.Any("error", err))
		return manager.fail(ctx, apperr.Internal(err))
	}

	user := result.User
	manager.apply(func() {
		manager.token = result.Token
		manager.user = &user
		manager.status = StatusAuthenticated
		manager.initialized = true
		manager.lastErr = ""
	})

	manager.logger.InfoContext(ctx, "user_logged_in", slog.String("user_id", user.ID))
	manager.notifier.Success(msgLoggedIn)
	return nil
}

// Register creates an account without authenticating the caller. The email
// is checked for availability first; if that check cannot be made the
// remote API still rejects duplicates on registration.
func (manager *Manager) Register(ctx context.Context, registration models.Registration) (*models.User, error) {
	manager.ops.Lock()
	defer manager.ops.Unlock()

	ctx = ctxutil.WithOperation(ctx, "session.register")

	available, err := manager.api.ValidateEmail(ctx, registration.Email)
	switch {
	case remote.IsCanceled(err):
		return nil, err
	case err != nil:
		manager.logger.WarnContext(ctx, "email_check_failed", slog.Any("error", err))
	case !available:
		return nil, manager.fail(ctx, apperr.Conflict(msgEmailTaken))
	}

	user, err := manager.api.Register(ctx, registration)
	if remote.IsCanceled(err) {
		return nil, err
	}
	if err != nil {
		return nil, manager.fail(ctx, err)
	}

	manager.notifier.Success(msgRegistered)
	return user, nil
}

// UpdateProfile applies a partial update to the current user. The status is
// unchanged on success; on failure the previous user is kept. A rejected
// token ends the session.
func (manager *Manager) UpdateProfile(ctx context.Context, update models.UserUpdate) (*models.User, error) {
	manager.ops.Lock()
	defer manager.ops.Unlock()

	ctx = ctxutil.WithOperation(ctx, "session.update_profile")

	manager.mu.RLock()
	token, current := manager.token, manager.user
	manager.mu.RUnlock()

	if token == "" || current == nil || current.ID == "" {
		return nil, manager.fail(ctx, apperr.Unauthorized(msgSessionExpired))
	}

	user, err := manager.api.UpdateUser(ctx, token, current.ID, update)
	if remote.IsCanceled(err) {
		return nil, err
	}
	if apperr.IsUnauthorized(err) {
		manager.expireLocked(ctx)
		return nil, err
	}
	if err != nil {
		return nil, manager.fail(ctx, err)
	}

	manager.apply(func() {
		manager.user = user
		manager.lastErr = ""
	})
	manager.notifier.Success(msgProfileUpdated)
	return user, nil
}

// Logout forgets the session. No network call is made; the in-memory
// session is cleared even if the store fails.
func (manager *Manager) Logout(ctx context.Context) error {
	manager.ops.Lock()
	defer manager.ops.Unlock()

	err := manager.logoutLocked(ctx)
	manager.notifier.Success(msgLoggedOut)
	return err
}

// Expire ends the session after the remote API rejected the token.
func (manager *Manager) Expire(ctx context.Context) {
	manager.ops.Lock()
	defer manager.ops.Unlock()

	manager.expireLocked(ctx)
}

func (manager *Manager) expireLocked(ctx context.Context) {
	_ = manager.logoutLocked(ctx)
	manager.mu.Lock()
	manager.lastErr = msgSessionExpired
	manager.mu.Unlock()
	manager.notifier.Error(msgSessionExpired)
}

func (manager *Manager) logoutLocked(ctx context.Context) error {
	err := manager.store.Delete(ctx)
	if err != nil {
		manager.logger.WarnContext(ctx, "token_store_delete_failed", slog.Any("error", err))
	}

	manager.apply(func() {
		manager.clearLocked()
		manager.initialized = true
		manager.lastErr = ""
	})
	return err
}

// Close drops every subscriber. The manager keeps answering accessors but
// no longer notifies anyone.
func (manager *Manager) Close() error {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	manager.closed = true
	manager.subscribers = map[int]func(Snapshot){}
	return nil
}

// fail records and announces a failed operation.
func (manager *Manager) fail(ctx context.Context, err error) error {
	message := apperr.Message(err)
	manager.logger.WarnContext(ctx, "session_operation_failed",
		slog.String("operation", ctxutil.GetOperation(ctx)),
		slog.Any("error", err),
	)

	manager.mu.Lock()
	manager.lastErr = message
	manager.mu.Unlock()

	manager.notifier.Error(message)
	return err
}

// # Accessors

// Status returns the current status.
func (manager *Manager) Status() Status {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	return manager.status
}

// User returns a copy of the current user, or nil.
func (manager *Manager) User() *models.User {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	if manager.user == nil {
		return nil
	}
	user := *manager.user
	return &user
}

// Token returns the bearer token of an authenticated session.
func (manager *Manager) Token() string {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	return manager.token
}

func (manager *Manager) IsAuthenticated() bool {
	return manager.Status() == StatusAuthenticated
}

// IsInitialized reports whether hydration has finished.
func (manager *Manager) IsInitialized() bool {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	return manager.initialized
}

// Err returns the message of the last failed operation, or "".
func (manager *Manager) Err() string {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	return manager.lastErr
}

// Snapshot returns the current state as subscribers see it.
func (manager *Manager) Snapshot() Snapshot {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	return manager.snapshotLocked()
}

// # Subscriptions

// Subscribe registers fn for every status or user change and returns a
// function that removes it. After Close it registers nothing.
func (manager *Manager) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	if manager.closed {
		return func() {}
	}

	id := manager.nextSubID
	manager.nextSubID++
	manager.subscribers[id] = fn

	return func() {
		manager.mu.Lock()
		defer manager.mu.Unlock()
		delete(manager.subscribers, id)
	}
}

// apply mutates state under mu and notifies subscribers outside it.
func (manager *Manager) apply(mutate func()) {
	manager.mu.Lock()
	mutate()
	snapshot := manager.snapshotLocked()
	subscribers := make([]func(Snapshot), 0, len(manager.subscribers))
	for _, fn := range manager.subscribers {
		subscribers = append(subscribers, fn)
	}
	manager.mu.Unlock()

	for _, fn := range subscribers {
		fn(snapshot)
	}
}

func (manager *Manager) clearLocked() {
	manager.token = ""
	manager.user = nil
	manager.status = StatusUnauthenticated
}

func (manager *Manager) snapshotLocked() Snapshot {
	snapshot := Snapshot{Status: manager.status, Initialized: manager.initialized}
	if manager.user != nil {
		user := *manager.user
		snapshot.User = &user
	}
	return snapshot
}
