// Copyright (c) 2026 CodeJourney. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package posts implements the post use cases: listing, paging, searching,
reading a single post, and managing the caller's own posts.

Every failure is reported once through the session's notifier. A rejected
token anywhere ends the session; a 403 never does.
*/
package posts

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/codejourney/internal/forms"
	"github.com/taibuivan/codejourney/internal/models"
	"github.com/taibuivan/codejourney/internal/platform/apperr"
	"github.com/taibuivan/codejourney/internal/platform/constants"
	"github.com/taibuivan/codejourney/internal/platform/ctxutil"
	"github.com/taibuivan/codejourney/internal/platform/validate"
	"github.com/taibuivan/codejourney/internal/remote"
	"github.com/taibuivan/codejourney/internal/session"
	"github.com/taibuivan/codejourney/pkg/pagination"
	"github.com/taibuivan/codejourney/pkg/slice"
	"github.com/taibuivan/codejourney/pkg/slug"
)

const (
	msgLoadFailed    = "Error loading posts"
	msgLoadOneFailed = "Error loading the post"
	msgCreated       = "Post created successfully"
	msgCreateFailed  = "Error creating the post"
	msgUpdated       = "Post updated successfully"
	msgUpdateFailed  = "Error updating the post"
	msgDeleted       = "Post deleted successfully"
	msgDeleteFailed  = "Error deleting the post"
	msgEditNotFound  = "Post to edit not found"
)

// API is the slice of the remote client the post use cases need.
type API interface {
	ListPosts(ctx context.Context) ([]models.Post, error)
	GetPost(ctx context.Context, postID string) (*models.Post, error)
	PostsByUser(ctx context.Context, token string) ([]models.Post, error)
	CreatePost(ctx context.Context, token string, input models.PostInput) (*models.Post, error)
	UpdatePost(ctx context.Context, token, postID string, input models.PostInput) (*models.Post, error)
	DeletePost(ctx context.Context, token, postID string) error
	CommentsByPost(ctx context.Context, postID string) ([]models.Comment, error)
}

// Detail is a post with its comments.
type Detail struct {
	Post     models.Post      `json:"post"     yaml:"post"`
	Comments []models.Comment `json:"comments" yaml:"comments"`
}

// Created is the outcome of a successful creation.
type Created struct {
	Post models.Post
	// NavigateTo is where the caller should go next.
	NavigateTo string
}

// Updated is the outcome of an edit. Mine is the caller's reloaded list,
// also filled in when the edit was refused with a 403.
type Updated struct {
	Post *models.Post
	Mine []models.Post
}

// Service runs the post use cases.
type Service struct {
	api      API
	session  *session.Manager
	logger   *slog.Logger
	pageSize int
}

// NewService wires a post service. pageSize falls back to [constants.PostsPerPage].
func NewService(api API, manager *session.Manager, logger *slog.Logger, pageSize int) *Service {
	if pageSize < 1 {
		pageSize = constants.PostsPerPage
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		api:      api,
		session:  manager,
		logger:   logger.With(slog.String("component", "posts")),
		pageSize: pageSize,
	}
}

// # Reading

// List returns every post.
func (service *Service) List(ctx context.Context) ([]models.Post, error) {
	ctx = ctxutil.WithOperation(ctx, "posts.list")

	posts, err := service.api.ListPosts(ctx)
	if err != nil {
		return nil, service.session.HandleError(ctx, err, msgLoadFailed)
	}
	return posts, nil
}

// Page returns one page of every post.
func (service *Service) Page(ctx context.Context, page int) (pagination.Page[models.Post], error) {
	return service.Search(ctx, "", page)
}

// Search returns one page of the posts whose title or content contains
// query, ignoring case and accents. An empty query matches every post.
func (service *Service) Search(ctx context.Context, query string, page int) (pagination.Page[models.Post], error) {
	posts, err := service.List(ctx)
	if err != nil {
		return pagination.Page[models.Post]{}, err
	}

	if query = strings.TrimSpace(query); query != "" {
		posts = slice.Filter(posts, func(post models.Post) bool {
			return slug.Contains(post.Title, query) || slug.Contains(post.Content, query)
		})
	}

	return pagination.Paginate(posts, pagination.Params{Page: page, Limit: service.pageSize}), nil
}

// Get returns a post and its comments, fetched concurrently.
//
// ref is a post id or the slug of a post title. When the comments endpoint
// fails the comments embedded in the post are used instead.
func (service *Service) Get(ctx context.Context, ref string) (*Detail, error) {
	ctx = ctxutil.WithOperation(ctx, "posts.get")

	postID, err := service.resolve(ctx, ref)
	if err != nil {
		return nil, err
	}

	var (
		post     *models.Post
		comments []models.Comment
		fetched  bool
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		post, err = service.api.GetPost(groupCtx, postID)
		return err
	})
	group.Go(func() error {
		list, err := service.api.CommentsByPost(groupCtx, postID)
		if err != nil {
			if remote.IsCanceled(err) && ctx.Err() != nil {
				return err
			}
			service.logger.DebugContext(ctx, "comments_fallback", slog.Any("error", err))
			return nil
		}
		comments, fetched = list, true
		return nil
	})

	if err := group.Wait(); err != nil {
		return nil, service.session.HandleError(ctx, err, msgLoadOneFailed)
	}

	if !fetched {
		comments = post.Comments
	}
	if comments == nil {
		comments = []models.Comment{}
	}
	return &Detail{Post: *post, Comments: comments}, nil
}

// resolve maps a slug to an id. Ids pass through untouched.
func (service *Service) resolve(ctx context.Context, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if !(&validate.Validator{}).ObjectID("id", ref).HasErrors() {
		return ref, nil
	}

	posts, err := service.api.ListPosts(ctx)
	if err != nil {
		return "", service.session.HandleError(ctx, err, msgLoadOneFailed)
	}

	wanted := slug.From(ref)
	post, ok := slice.Find(posts, func(post models.Post) bool { return slug.From(post.Title) == wanted })
	if !ok {
		notFound := apperr.NotFound("Post")
		service.session.Notifier().Error(notFound.Message)
		return "", notFound
	}
	return post.ID, nil
}

// Mine returns the caller's own posts.
func (service *Service) Mine(ctx context.Context) ([]models.Post, error) {
	ctx = ctxutil.WithOperation(ctx, "posts.mine")

	creds, err := service.requireAuth()
	if err != nil {
		return nil, err
	}

	posts, err := service.api.PostsByUser(ctx, creds.Token)
	if err != nil {
		return nil, service.session.HandleError(ctx, err, msgLoadFailed)
	}
	return posts, nil
}

// # Writing

// Create publishes a post authored by the current user.
func (service *Service) Create(ctx context.Context, form forms.PostForm) (*Created, error) {
	ctx = ctxutil.WithOperation(ctx, "posts.create")

	if err := service.validate(form); err != nil {
		return nil, err
	}
	creds, err := service.requireAuth()
	if err != nil {
		return nil, err
	}

	input := form.Input()
	input.Author = creds.User.ID

	post, err := service.api.CreatePost(ctx, creds.Token, input)
	if err != nil {
		return nil, service.session.HandleError(ctx, err, msgCreateFailed)
	}

	service.logger.InfoContext(ctx, "post_created", slog.String("post_id", post.ID))
	service.session.Notifier().Success(msgCreated)
	return &Created{Post: *post, NavigateTo: constants.RoutePosts}, nil
}

// Update edits one of the caller's posts and reloads their list.
//
// The post must be in the caller's list. A 403 from the API is shown as a
// permission error and the list is reloaded; the session is kept.
func (service *Service) Update(ctx context.Context, postID string, form forms.PostForm) (*Updated, error) {
	ctx = ctxutil.WithOperation(ctx, "posts.update")

	if err := service.validate(form); err != nil {
		return nil, err
	}
	creds, err := service.requireAuth()
	if err != nil {
		return nil, err
	}

	mine, err := service.api.PostsByUser(ctx, creds.Token)
	if err != nil {
		return nil, service.session.HandleError(ctx, err, msgUpdateFailed)
	}
	if _, ok := slice.Find(mine, func(post models.Post) bool { return post.ID == postID }); !ok {
		notFound := apperr.NotFound("Post")
		notFound.Message = msgEditNotFound
		service.session.Notifier().Error(notFound.Message)
		return nil, notFound
	}

	post, err := service.api.UpdatePost(ctx, creds.Token, postID, form.Input())
	if apperr.IsForbidden(err) {
		service.session.Notifier().Error(apperr.Message(err))
		reloaded, _ := service.reloadMine(ctx, creds.Token)
		return &Updated{Mine: reloaded}, err
	}
	if err != nil {
		return nil, service.session.HandleError(ctx, err, msgUpdateFailed)
	}

	service.session.Notifier().Success(msgUpdated)
	reloaded, _ := service.reloadMine(ctx, creds.Token)
	return &Updated{Post: post, Mine: reloaded}, nil
}

// Delete removes one of the caller's posts.
func (service *Service) Delete(ctx context.Context, postID string) error {
	ctx = ctxutil.WithOperation(ctx, "posts.delete")

	creds, err := service.requireAuth()
	if err != nil {
		return err
	}

	if err := service.api.DeletePost(ctx, creds.Token, postID); err != nil {
		return service.session.HandleError(ctx, err, msgDeleteFailed)
	}

	service.logger.InfoContext(ctx, "post_deleted", slog.String("post_id", postID))
	service.session.Notifier().Success(msgDeleted)
	return nil
}

// # Helpers

func (service *Service) reloadMine(ctx context.Context, token string) ([]models.Post, error) {
	posts, err := service.api.PostsByUser(ctx, token)
	if err != nil {
		return nil, service.session.HandleError(ctx, err, msgLoadFailed)
	}
	return posts, nil
}

func (service *Service) requireAuth() (session.Credentials, error) {
	creds, err := session.RequireAuth(service.session)
	if err != nil {
		service.session.Notifier().Error(apperr.Message(err))
	}
	return creds, err
}

func (service *Service) validate(form forms.PostForm) error {
	if err := form.Validate(); err != nil {
		service.session.Notifier().Error(apperr.Message(err))
		return err
	}
	return nil
}
