// Copyright (c) 2026 CodeJourney. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"log/slog"

	"github.com/taibuivan/codejourney/internal/models"
	"github.com/taibuivan/codejourney/internal/platform/apperr"
	"github.com/taibuivan/codejourney/internal/platform/ctxutil"
	"github.com/taibuivan/codejourney/internal/platform/notify"
	"github.com/taibuivan/codejourney/internal/remote"
)

// Credentials is what a protected operation needs from the session.
type Credentials struct {
	Token string
	User  models.User
}

// RequireAuth gates protected operations.
//
// A session still loading is refused like an anonymous one; callers are
// expected to run [Manager.Initialize] first.
func RequireAuth(manager *Manager) (Credentials, error) {
	manager.mu.RLock()
	defer manager.mu.RUnlock()

	if manager.status != StatusAuthenticated || manager.token == "" || manager.user == nil {
		return Credentials{}, apperr.Unauthorized(msgNotLoggedIn)
	}
	return Credentials{Token: manager.token, User: *manager.user}, nil
}

// HandleError reports a failed remote call the same way for every use case.
//
//   - Cancelled calls are dropped without a word.
//   - A rejected token ends the session. An anonymous session has no
//     token to reject, so it just sees the message.
//   - Anything else is logged and shown as one line. Internal failures use
//     fallback instead of their generic message.
func (manager *Manager) HandleError(ctx context.Context, err error, fallback string) error {
	switch {
	case err == nil:
		return nil
	case remote.IsCanceled(err):
		return err
	case apperr.IsUnauthorized(err) && manager.IsAuthenticated():
		manager.Expire(ctx)
		return err
	}

	manager.logger.WarnContext(ctx, "remote_operation_failed",
		slog.String("operation", ctxutil.GetOperation(ctx)),
		slog.Any("error", err),
	)

	message := apperr.Message(err)
	if ae := apperr.As(err); (ae == nil || ae.Code == apperr.CodeInternal) && fallback != "" {
		message = fallback
	}
	manager.notifier.Error(message)
	return err
}

// Notifier returns the notifier the manager reports through.
func (manager *Manager) Notifier() notify.Notifier { return manager.notifier }
