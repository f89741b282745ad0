// Copyright (c) 2026 CodeJourney. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session_test

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/taibuivan/codejourney/internal/models"
	"github.com/taibuivan/codejourney/internal/platform/apperr"
	"github.com/taibuivan/codejourney/internal/remote"
	"github.com/taibuivan/codejourney/internal/session"
)

// stubAPI answers Profile for a single known token.
type stubAPI struct {
	token    string
	user     models.User
	profiles atomic.Int32
}

func (s *stubAPI) Login(context.Context, string, string) (*remote.LoginResult, error) {
	return &remote.LoginResult{Token: s.token, User: s.user}, nil
}

func (s *stubAPI) Register(context.Context, models.Registration) (*models.User, error) {
	return &s.user, nil
}

func (s *stubAPI) ValidateEmail(context.Context, string) (bool, error) { return true, nil }

func (s *stubAPI) Profile(_ context.Context, token string) (*models.User, error) {
	s.profiles.Add(1)
	if token != s.token {
		return nil, apperr.Unauthorized("Session expired")
	}
	user := s.user
	return &user, nil
}

func (s *stubAPI) UpdateUser(context.Context, string, string, models.UserUpdate) (*models.User, error) {
	return &s.user, nil
}

/*
TestWatcher refreshes the session when another process rewrites the token
file, ignores this process's own writes, and leaks no goroutines.
*/
func TestWatcher(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	api := &stubAPI{token: "external-token", user: models.User{ID: "65f1c0ffee65f1c0ffee1234", Name: "Juan"}}

	path := filepath.Join(t.TempDir(), "storage.json")
	store := session.NewFileTokenStore(path)
	manager := session.New(store, api, nil, logger)
	defer manager.Close()
	require.NoError(t, manager.Initialize(ctx))

	watcher, err := session.NewWatcher(manager, store, logger)
	require.NoError(t, err)
	require.NoError(t, watcher.Start(ctx))

	// Another terminal logs in.
	other := session.NewFileTokenStore(path)
	require.NoError(t, other.Set(ctx, "external-token"))

	require.Eventually(t, manager.IsAuthenticated, 5*time.Second, 20*time.Millisecond)
	assert.Equal(t, "Juan", manager.User().Name)
	profiles := api.profiles.Load()

	// A write matching the current state triggers no refresh.
	require.NoError(t, store.Set(ctx, "external-token"))
	time.Sleep(500 * time.Millisecond)
	assert.Equal(t, profiles, api.profiles.Load())

	// Another terminal logs out.
	require.NoError(t, other.Delete(ctx))
	require.Eventually(t, func() bool {
		return manager.Status() == session.StatusUnauthenticated
	}, 5*time.Second, 20*time.Millisecond)

	require.NoError(t, watcher.Close())
}
