// Copyright (c) 2026 CodeJourney. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package posts_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/codejourney/internal/forms"
	"github.com/taibuivan/codejourney/internal/models"
	"github.com/taibuivan/codejourney/internal/platform/apperr"
	"github.com/taibuivan/codejourney/internal/platform/notify"
	"github.com/taibuivan/codejourney/internal/posts"
	"github.com/taibuivan/codejourney/internal/remote"
	"github.com/taibuivan/codejourney/internal/remote/remotetest"
	"github.com/taibuivan/codejourney/internal/session"
)

type fixture struct {
	fake     *remotetest.Server
	manager  *session.Manager
	notifier *notify.Recorder
	service  *posts.Service
	juan     models.User
	ana      models.User
}

// setup starts a fake API with two users. When loggedIn is true the session
// belongs to Juan.
func setup(t *testing.T, loggedIn bool) *fixture {
	t.Helper()

	fake := remotetest.New(t)
	juan := fake.SeedUser("Juan", "Perez", "juan@test.com", "12345678")
	ana := fake.SeedUser("Ana", "Lopez", "ana@test.com", "12345678")

	client, err := remote.New(remote.Options{BaseURL: fake.URL, Timeout: 5 * time.Second})
	require.NoError(t, err)

	token := ""
	if loggedIn {
		token = fake.Token(juan.ID)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	notifier := &notify.Recorder{}
	manager := session.New(session.NewMemoryTokenStore(token), client, notifier, logger)
	require.NoError(t, manager.Initialize(context.Background()))
	t.Cleanup(func() { _ = manager.Close() })

	fake.ResetCalls()
	notifier.Reset()

	return &fixture{
		fake:     fake,
		manager:  manager,
		notifier: notifier,
		service:  posts.NewService(client, manager, logger, 9),
		juan:     juan,
		ana:      ana,
	}
}

func lastMessage(t *testing.T, recorder *notify.Recorder) notify.Notification {
	t.Helper()
	last, ok := recorder.Last()
	require.True(t, ok, "expected a notification")
	return last
}

/*
TestPage cuts twenty posts into pages of nine.
*/
func TestPage(t *testing.T) {
	f := setup(t, false)
	for i := 1; i <= 20; i++ {
		f.fake.SeedPost(f.juan.ID, fmt.Sprintf("Post %02d", i), "Body")
	}
	ctx := context.Background()

	tests := []struct {
		page      int
		wantPage  int
		wantItems int
		first     string
		hasPrev   bool
		hasNext   bool
	}{
		{1, 1, 9, "Post 01", false, true},
		{2, 2, 9, "Post 10", true, true},
		{3, 3, 2, "Post 19", true, false},
		{99, 3, 2, "Post 19", true, false},
		{0, 1, 9, "Post 01", false, true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("page_%d", tt.page), func(t *testing.T) {
			page, err := f.service.Page(ctx, tt.page)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, page.Meta.Page)
			assert.Equal(t, 3, page.Meta.TotalPages)
			require.Len(t, page.Items, tt.wantItems)
			assert.Equal(t, tt.first, page.Items[0].Title)
			assert.Equal(t, tt.hasPrev, page.HasPrev())
			assert.Equal(t, tt.hasNext, page.HasNext())
		})
	}
}

/*
TestPage_Empty shows no controls and an empty list.
*/
func TestPage_Empty(t *testing.T) {
	f := setup(t, false)

	page, err := f.service.Page(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.False(t, page.ShowControls())
}

/*
TestSearch matches titles and content regardless of accents and case.
*/
func TestSearch(t *testing.T) {
	f := setup(t, false)
	f.fake.SeedPost(f.juan.ID, "Programación en Go", "Concurrencia")
	f.fake.SeedPost(f.juan.ID, "Rust", "Ownership y préstamos")
	f.fake.SeedPost(f.juan.ID, "Python", "Scripts")

	page, err := f.service.Search(context.Background(), "PROGRAMACION", 1)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Programación en Go", page.Items[0].Title)

	page, err = f.service.Search(context.Background(), "prestamos", 1)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Rust", page.Items[0].Title)
}

/*
TestGet loads a post with its comments by id or by title slug.
*/
func TestGet(t *testing.T) {
	f := setup(t, false)
	post := f.fake.SeedPost(f.juan.ID, "Hola Go", "Body")
	f.fake.SeedComment(f.ana.ID, post.ID, "Great")
	ctx := context.Background()

	detail, err := f.service.Get(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hola Go", detail.Post.Title)
	require.Len(t, detail.Comments, 1)
	assert.Equal(t, "Ana Lopez", detail.Comments[0].Author.DisplayName())

	detail, err = f.service.Get(ctx, "hola-go")
	require.NoError(t, err)
	assert.Equal(t, post.ID, detail.Post.ID)

	t.Run("comments_fallback", func(t *testing.T) {
		f.fake.Fail(http.MethodGet, "/api/comments/post/"+post.ID, http.StatusNotFound)
		defer f.fake.Heal()

		detail, err := f.service.Get(ctx, post.ID)
		require.NoError(t, err)
		assert.Len(t, detail.Comments, 1)
	})

	t.Run("not_found", func(t *testing.T) {
		_, err := f.service.Get(ctx, "65f1c0ffee00000000000999")
		assert.True(t, apperr.IsNotFound(err))
		assert.Equal(t, notify.LevelError, lastMessage(t, f.notifier).Level)

		_, err = f.service.Get(ctx, "no-such-title")
		assert.True(t, apperr.IsNotFound(err))
	})
}

/*
TestCreate sets the author and points back to the list.
*/
func TestCreate(t *testing.T) {
	f := setup(t, true)
	ctx := context.Background()

	created, err := f.service.Create(ctx, forms.PostForm{Title: "New", Content: "Body", Image: "https://x/y.jpg"})
	require.NoError(t, err)
	assert.Equal(t, "/posts", created.NavigateTo)
	assert.True(t, created.Post.AuthoredBy(f.juan.ID))
	assert.Equal(t, notify.Notification{Level: notify.LevelSuccess, Message: "Post created successfully"}, lastMessage(t, f.notifier))

	stored, ok := f.fake.Post(created.Post.ID)
	require.True(t, ok)
	assert.True(t, stored.AuthoredBy(f.juan.ID))
}

/*
TestCreate_Refused covers local validation and the anonymous caller.
*/
func TestCreate_Refused(t *testing.T) {
	t.Run("invalid_form_never_reaches_network", func(t *testing.T) {
		f := setup(t, true)
		_, err := f.service.Create(context.Background(), forms.PostForm{Title: "", Content: "x"})
		assert.True(t, apperr.IsValidation(err))
		assert.Empty(t, f.fake.Calls())
	})

	t.Run("anonymous", func(t *testing.T) {
		f := setup(t, false)
		_, err := f.service.Create(context.Background(), forms.PostForm{Title: "t", Content: "c"})
		assert.True(t, apperr.IsUnauthorized(err))
		assert.Empty(t, f.fake.Calls())
		assert.Equal(t, "You must be logged in", lastMessage(t, f.notifier).Message)
	})
}

/*
TestUpdate edits an own post and reloads the list.
*/
func TestUpdate(t *testing.T) {
	f := setup(t, true)
	post := f.fake.SeedPost(f.juan.ID, "Old", "Body")

	updated, err := f.service.Update(context.Background(), post.ID, forms.PostForm{Title: " New ", Content: "Body"})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Post.Title)
	require.Len(t, updated.Mine, 1)
	assert.Equal(t, "New", updated.Mine[0].Title)
}

/*
TestUpdate_NotMine refuses posts outside the caller's list without a write.
*/
func TestUpdate_NotMine(t *testing.T) {
	f := setup(t, true)
	post := f.fake.SeedPost(f.ana.ID, "Ana's", "Body")

	_, err := f.service.Update(context.Background(), post.ID, forms.PostForm{Title: "x", Content: "y"})
	assert.True(t, apperr.IsNotFound(err))
	assert.Equal(t, "Post to edit not found", lastMessage(t, f.notifier).Message)
	assert.Zero(t, f.fake.CallCount(http.MethodPut, "/api/posts/"+post.ID))
}

/*
TestUpdate_Forbidden keeps the session, reports the refusal and reloads.
*/
func TestUpdate_Forbidden(t *testing.T) {
	f := setup(t, true)
	post := f.fake.SeedPost(f.juan.ID, "Mine", "Body")
	f.fake.Fail(http.MethodPut, "/api/posts/"+post.ID, http.StatusForbidden)

	updated, err := f.service.Update(context.Background(), post.ID, forms.PostForm{Title: "x", Content: "y"})
	require.Error(t, err)
	assert.True(t, apperr.IsForbidden(err))
	require.NotNil(t, updated)
	assert.Len(t, updated.Mine, 1)

	assert.Equal(t, session.StatusAuthenticated, f.manager.Status())
	assert.Equal(t, "You do not have permission to edit this post", lastMessage(t, f.notifier).Message)
	assert.Equal(t, 2, f.fake.CallCount(http.MethodGet, "/api/posts/user/posts"))
}

/*
TestUnauthorized_ForcesLogout ends the session on any 401.
*/
func TestUnauthorized_ForcesLogout(t *testing.T) {
	f := setup(t, true)
	f.fake.Revoke(f.manager.Token())

	_, err := f.service.Mine(context.Background())
	assert.True(t, apperr.IsUnauthorized(err))
	assert.Equal(t, session.StatusUnauthenticated, f.manager.Status())
	assert.Equal(t, "Session expired", lastMessage(t, f.notifier).Message)
}

/*
TestDelete removes an own post and refuses a foreign one.
*/
func TestDelete(t *testing.T) {
	f := setup(t, true)
	mine := f.fake.SeedPost(f.juan.ID, "Mine", "Body")
	theirs := f.fake.SeedPost(f.ana.ID, "Theirs", "Body")
	ctx := context.Background()

	require.NoError(t, f.service.Delete(ctx, mine.ID))
	_, ok := f.fake.Post(mine.ID)
	assert.False(t, ok)

	err := f.service.Delete(ctx, theirs.ID)
	assert.True(t, apperr.IsForbidden(err))
	assert.Equal(t, session.StatusAuthenticated, f.manager.Status())
}

/*
TestNetworkError shows the transport message.
*/
func TestNetworkError(t *testing.T) {
	f := setup(t, false)
	f.fake.Close()

	_, err := f.service.List(context.Background())
	assert.True(t, apperr.IsNetwork(err))
	assert.Equal(t, "Could not reach the server", lastMessage(t, f.notifier).Message)
}
