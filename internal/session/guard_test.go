// Copyright (c) 2026 CodeJourney. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/codejourney/internal/platform/apperr"
	"github.com/taibuivan/codejourney/internal/platform/notify"
	"github.com/taibuivan/codejourney/internal/session"
)

/*
TestHandleError_Unauthorized ends an authenticated session on a rejected token.
*/
func TestHandleError_Unauthorized(t *testing.T) {
	f := setup(t, validToken)
	ctx := context.Background()
	require.NoError(t, f.manager.Initialize(ctx))
	require.True(t, f.manager.IsAuthenticated())

	cause := apperr.Unauthorized("Invalid token")
	err := f.manager.HandleError(ctx, cause, "fallback")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, session.StatusUnauthenticated, f.manager.Status())
	assert.Empty(t, stored(t, f.store))
	assert.Equal(t, "Session expired", f.manager.Err())
	assert.Equal(t, []notify.Notification{{Level: notify.LevelError, Message: "Session expired"}}, f.notifier.All())
}

/*
TestHandleError_UnauthorizedAnonymous shows the message to a session that
never held a token.
*/
func TestHandleError_UnauthorizedAnonymous(t *testing.T) {
	f := setup(t, nil)
	ctx := context.Background()
	require.NoError(t, f.manager.Initialize(ctx))

	var changes int
	f.manager.Subscribe(func(session.Snapshot) { changes++ })

	cause := apperr.Unauthorized("Invalid token")
	err := f.manager.HandleError(ctx, cause, "fallback")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, session.StatusUnauthenticated, f.manager.Status())
	assert.Empty(t, f.manager.Err())
	assert.Zero(t, changes)
	assert.Equal(t, []notify.Notification{{Level: notify.LevelError, Message: "Invalid token"}}, f.notifier.All())
}

/*
TestHandleError_Messages covers cancelled, domain and internal failures.
*/
func TestHandleError_Messages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want []notify.Notification
	}{
		{"nil", nil, nil},
		{"canceled", context.Canceled, nil},
		{"not_found", apperr.NotFound("Post"), []notify.Notification{{Level: notify.LevelError, Message: "Post not found"}}},
		{"internal_uses_fallback", apperr.Internal(errors.New("boom")), []notify.Notification{{Level: notify.LevelError, Message: "fallback"}}},
		{"plain_error_uses_fallback", errors.New("dial tcp"), []notify.Notification{{Level: notify.LevelError, Message: "fallback"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t, nil)
			require.NoError(t, f.manager.Initialize(context.Background()))

			err := f.manager.HandleError(context.Background(), tt.err, "fallback")

			assert.Equal(t, tt.err, err)
			assert.Equal(t, tt.want, f.notifier.All())
		})
	}
}
