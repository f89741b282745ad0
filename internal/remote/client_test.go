// Copyright (c) 2026 CodeJourney. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package remote_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/codejourney/internal/platform/apperr"
	"github.com/taibuivan/codejourney/internal/platform/ctxutil"
	"github.com/taibuivan/codejourney/internal/remote"
	"github.com/taibuivan/codejourney/internal/remote/remotetest"
)

func newClient(t *testing.T, fake *remotetest.Server) *remote.Client {
	t.Helper()
	client, err := remote.New(remote.Options{BaseURL: fake.URL, Timeout: 5 * time.Second})
	require.NoError(t, err)
	return client
}

/*
TestNew rejects base URLs without scheme or host.
*/
func TestNew(t *testing.T) {
	for _, raw := range []string{"", "localhost:5000", "/api"} {
		_, err := remote.New(remote.Options{BaseURL: raw})
		assert.Error(t, err, raw)
	}

	client, err := remote.New(remote.Options{BaseURL: "https://back-code-journey.vercel.app/"})
	require.NoError(t, err)
	assert.Equal(t, "https://back-code-journey.vercel.app", client.BaseURL())
}

/*
TestLogin covers the success shape and every failure shape of the login call.
*/
func TestLogin(t *testing.T) {
	fake := remotetest.New(t)
	juan := fake.SeedUser("Juan", "Perez", "juan@test.com", "12345678")
	client := newClient(t, fake)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		result, err := client.Login(ctx, "juan@test.com", "12345678")
		require.NoError(t, err)
		assert.NotEmpty(t, result.Token)
		assert.Equal(t, juan.ID, result.User.ID)
		assert.Equal(t, "Juan Perez", result.User.FullName())
	})

	t.Run("wrong_password_uses_server_message", func(t *testing.T) {
		_, err := client.Login(ctx, "juan@test.com", "wrong-password")
		require.Error(t, err)
		assert.Equal(t, "Invalid email or password", apperr.Message(err))
	})

	t.Run("bare_400_means_invalid_credentials", func(t *testing.T) {
		fake.Fail(http.MethodPost, "/api/users/login", http.StatusBadRequest)
		defer fake.Heal()

		_, err := client.Login(ctx, "juan@test.com", "12345678")
		assert.True(t, apperr.IsUnauthorized(err))
		assert.Equal(t, "Invalid credentials", apperr.Message(err))
	})

	t.Run("error_in_2xx_body", func(t *testing.T) {
		fake.LoginErrorInBody("Account locked")
		defer fake.LoginErrorInBody("")

		_, err := client.Login(ctx, "juan@test.com", "12345678")
		assert.True(t, apperr.IsUnauthorized(err))
		assert.Equal(t, "Account locked", apperr.Message(err))
	})
}

/*
TestNetworkFailure maps a dead server onto the network error class.
*/
func TestNetworkFailure(t *testing.T) {
	fake := remotetest.New(t)
	client := newClient(t, fake)
	fake.Close()

	_, err := client.ListPosts(context.Background())
	require.Error(t, err)
	assert.True(t, apperr.IsNetwork(err))
	assert.Equal(t, "Could not reach the server", apperr.Message(err))
}

/*
TestCancellation returns the context error, not an AppError, so callers can
drop the response.
*/
func TestCancellation(t *testing.T) {
	fake := remotetest.New(t)
	fake.SetLatency(2 * time.Second)
	client := newClient(t, fake)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.ListPosts(ctx)
	require.Error(t, err)
	assert.True(t, remote.IsCanceled(err))
	assert.False(t, apperr.IsAppError(err))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

/*
TestProfile covers token acceptance and rejection.
*/
func TestProfile(t *testing.T) {
	fake := remotetest.New(t)
	juan := fake.SeedUser("Juan", "Perez", "juan@test.com", "12345678")
	client := newClient(t, fake)
	ctx := context.Background()

	token := fake.Token(juan.ID)
	user, err := client.Profile(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, juan, *user)

	fake.Revoke(token)
	_, err = client.Profile(ctx, token)
	assert.True(t, apperr.IsUnauthorized(err))

	_, err = client.Profile(ctx, fake.TokenWithTTL(juan.ID, -time.Minute))
	assert.True(t, apperr.IsUnauthorized(err))
}

/*
TestRegisterAndValidateEmail exercises account creation.
*/
func TestRegisterAndValidateEmail(t *testing.T) {
	fake := remotetest.New(t)
	client := newClient(t, fake)
	ctx := context.Background()

	available, err := client.ValidateEmail(ctx, "juan@test.com")
	require.NoError(t, err)
	assert.True(t, available)

	user, err := client.Register(ctx, registration())
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "juan@test.com", user.Email)

	available, err = client.ValidateEmail(ctx, "juan@test.com")
	require.NoError(t, err)
	assert.False(t, available)

	_, err = client.Register(ctx, registration())
	assert.True(t, apperr.IsValidation(err))
	assert.Equal(t, "Email already registered", apperr.Message(err))
}

/*
TestRequestHeaders checks bearer and correlation headers on the wire.
*/
func TestRequestHeaders(t *testing.T) {
	fake := remotetest.New(t)
	juan := fake.SeedUser("Juan", "Perez", "juan@test.com", "12345678")
	client := newClient(t, fake)
	token := fake.Token(juan.ID)

	ctx := ctxutil.WithRequestID(context.Background(), "req-123")
	_, err := client.PostsByUser(ctx, token)
	require.NoError(t, err)

	_, err = client.ListPosts(context.Background())
	require.NoError(t, err)

	calls := fake.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "Bearer "+token, calls[0].Authorization)
	assert.Equal(t, "req-123", calls[0].RequestID)
	assert.Empty(t, calls[1].Authorization)
	assert.NotEmpty(t, calls[1].RequestID)
}
