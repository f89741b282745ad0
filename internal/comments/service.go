// Copyright (c) 2026 CodeJourney. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package comments implements adding, editing and deleting comments.
//
// Only the author of a comment may edit or delete it. The check is made
// locally before any write reaches the remote API.
package comments

import (
	"context"
	"log/slog"

	"github.com/taibuivan/codejourney/internal/forms"
	"github.com/taibuivan/codejourney/internal/models"
	"github.com/taibuivan/codejourney/internal/platform/apperr"
	"github.com/taibuivan/codejourney/internal/platform/ctxutil"
	"github.com/taibuivan/codejourney/internal/session"
)

const (
	msgAdded         = "Comment added successfully"
	msgAddFailed     = "Error adding the comment"
	msgUpdated       = "Comment updated successfully"
	msgUpdateFailed  = "Error updating the comment"
	msgDeleted       = "Comment deleted successfully"
	msgDeleteFailed  = "Error deleting the comment"
	msgNotLoggedIn   = "You must be logged in to comment"
	msgNotYourEdit   = "You can only edit your own comments"
	msgNotYourDelete = "You can only delete your own comments"
)

// API is the slice of the remote client the comment use cases need.
type API interface {
	GetComment(ctx context.Context, commentID string) (*models.Comment, error)
	CreateComment(ctx context.Context, token, postID, content string) (*models.Comment, error)
	UpdateComment(ctx context.Context, token, commentID, content string) (*models.Comment, error)
	DeleteComment(ctx context.Context, token, commentID string) error
}

// Affordances says which controls to show next to a comment.
type Affordances struct {
	CanEdit   bool `json:"canEdit"   yaml:"canEdit"`
	CanDelete bool `json:"canDelete" yaml:"canDelete"`
}

// AffordancesFor grants edit and delete only to the comment's author.
// A nil user gets nothing.
func AffordancesFor(user *models.User, comment models.Comment) Affordances {
	mine := user != nil && comment.AuthoredBy(user.ID)
	return Affordances{CanEdit: mine, CanDelete: mine}
}

// Service runs the comment use cases.
type Service struct {
	api     API
	session *session.Manager
	logger  *slog.Logger
}

// NewService wires a comment service.
func NewService(api API, manager *session.Manager, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{api: api, session: manager, logger: logger.With(slog.String("component", "comments"))}
}

// Create adds a comment to a post.
func (service *Service) Create(ctx context.Context, postID string, form forms.CommentForm) (*models.Comment, error) {
	ctx = ctxutil.WithOperation(ctx, "comments.create")

	creds, err := service.requireAuth(msgNotLoggedIn)
	if err != nil {
		return nil, err
	}
	if err := service.validate(form); err != nil {
		return nil, err
	}

	comment, err := service.api.CreateComment(ctx, creds.Token, postID, form.Text())
	if err != nil {
		return nil, service.session.HandleError(ctx, err, msgAddFailed)
	}

	service.logger.InfoContext(ctx, "comment_created",
		slog.String("comment_id", comment.ID),
		slog.String("post_id", postID),
	)
	service.session.Notifier().Success(msgAdded)
	return comment, nil
}

// Edit replaces the content of one of the caller's comments.
func (service *Service) Edit(ctx context.Context, commentID string, form forms.CommentForm) (*models.Comment, error) {
	ctx = ctxutil.WithOperation(ctx, "comments.edit")

	creds, err := service.requireAuth("")
	if err != nil {
		return nil, err
	}
	if err := service.validate(form); err != nil {
		return nil, err
	}
	if err := service.ensureOwner(ctx, creds, commentID, msgNotYourEdit, msgUpdateFailed); err != nil {
		return nil, err
	}

	comment, err := service.api.UpdateComment(ctx, creds.Token, commentID, form.Text())
	if err != nil {
		return nil, service.session.HandleError(ctx, err, msgUpdateFailed)
	}

	service.session.Notifier().Success(msgUpdated)
	return comment, nil
}

// Delete removes one of the caller's comments.
func (service *Service) Delete(ctx context.Context, commentID string) error {
	ctx = ctxutil.WithOperation(ctx, "comments.delete")

	creds, err := service.requireAuth("")
	if err != nil {
		return err
	}
	if err := service.ensureOwner(ctx, creds, commentID, msgNotYourDelete, msgDeleteFailed); err != nil {
		return err
	}

	if err := service.api.DeleteComment(ctx, creds.Token, commentID); err != nil {
		return service.session.HandleError(ctx, err, msgDeleteFailed)
	}

	service.logger.InfoContext(ctx, "comment_deleted", slog.String("comment_id", commentID))
	service.session.Notifier().Success(msgDeleted)
	return nil
}

// ensureOwner loads the comment and refuses when the caller did not write it.
func (service *Service) ensureOwner(ctx context.Context, creds session.Credentials, commentID, refusal, fallback string) error {
	comment, err := service.api.GetComment(ctx, commentID)
	if err != nil {
		return service.session.HandleError(ctx, err, fallback)
	}

	if !AffordancesFor(&creds.User, *comment).CanEdit {
		service.session.Notifier().Error(refusal)
		return apperr.Forbidden(refusal)
	}
	return nil
}

func (service *Service) requireAuth(message string) (session.Credentials, error) {
	creds, err := session.RequireAuth(service.session)
	if err != nil {
		if message == "" {
			message = apperr.Message(err)
		}
		service.session.Notifier().Error(message)
	}
	return creds, err
}

func (service *Service) validate(form forms.CommentForm) error {
	if err := form.Validate(); err != nil {
		service.session.Notifier().Error(apperr.Message(err))
		return err
	}
	return nil
}
