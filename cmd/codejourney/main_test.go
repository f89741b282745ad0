// Copyright (c) 2026 CodeJourney. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/codejourney/internal/models"
	"github.com/taibuivan/codejourney/internal/platform/config"
	"github.com/taibuivan/codejourney/internal/remote/remotetest"
	"github.com/taibuivan/codejourney/internal/session"
)

type cli struct {
	fake      *remotetest.Server
	tokenFile string
	juan      models.User
	ana       models.User
}

type result struct {
	code   int
	stdout string
	stderr string
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	fake := remotetest.New(t)
	return &cli{
		fake:      fake,
		tokenFile: filepath.Join(t.TempDir(), "storage.json"),
		juan:      fake.SeedUser("Juan", "Perez", "juan@test.com", "12345678"),
		ana:       fake.SeedUser("Ana", "Lopez", "ana@test.com", "12345678"),
	}
}

// run executes one command line against the fake API with a file token store.
func (c *cli) run(t *testing.T, stdin string, args ...string) result {
	t.Helper()

	var stdout, stderr bytes.Buffer
	a := newApp(strings.NewReader(stdin), &stdout, &stderr)
	a.loadConfig = func() (*config.Config, error) {
		return config.LoadWith(env.Options{Prefix: "CODEJOURNEY_", Environment: map[string]string{
			"CODEJOURNEY_API_URL":        c.fake.URL,
			"CODEJOURNEY_TOKEN_FILE":     c.tokenFile,
			"CODEJOURNEY_RATE_LIMIT_RPS": "0",
			"NO_COLOR":                   "1",
		}})
	}

	code := execute(context.Background(), a, args)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

// loginAs persists a valid token the way a previous login would have.
func (c *cli) loginAs(t *testing.T, user models.User) {
	t.Helper()
	require.NoError(t, session.NewFileTokenStore(c.tokenFile).Set(context.Background(), c.fake.Token(user.ID)))
}

/*
TestCommandTree checks that every command is registered.
*/
func TestCommandTree(t *testing.T) {
	root := newRootCmd(newApp(strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{}))

	commands := [][]string{
		{"login"}, {"logout"}, {"register"}, {"whoami"},
		{"profile", "update"},
		{"posts", "list"}, {"posts", "show"}, {"posts", "mine"},
		{"posts", "create"}, {"posts", "edit"}, {"posts", "delete"},
		{"comments", "add"}, {"comments", "edit"}, {"comments", "delete"},
		{"browse"},
	}
	for _, path := range commands {
		t.Run(strings.Join(path, "_"), func(t *testing.T) {
			found, _, err := root.Find(path)
			require.NoError(t, err)
			assert.Equal(t, path[len(path)-1], found.Name())
		})
	}

	for _, flag := range []string{"api", "output", "page-size"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), flag)
	}
}

/*
TestLoginWhoamiLogout walks a session across three separate runs.
*/
func TestLoginWhoamiLogout(t *testing.T) {
	c := newCLI(t)

	res := c.run(t, "12345678\n", "login", "--email", "juan@test.com")
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Contains(t, res.stderr, "Logged in successfully")

	res = c.run(t, "", "whoami")
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Juan Perez")
	assert.Contains(t, res.stdout, "juan@test.com")

	res = c.run(t, "", "logout")
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Contains(t, res.stderr, "Logged out successfully")

	res = c.run(t, "", "whoami", "-o", "json")
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.JSONEq(t, `{"status":"unauthenticated"}`, res.stdout)
}

/*
TestLogin_Failures covers local validation and rejected credentials.
*/
func TestLogin_Failures(t *testing.T) {
	c := newCLI(t)

	res := c.run(t, "short\n", "login", "--email", "juan@test.com")
	assert.Equal(t, exitError, res.code)
	assert.Contains(t, res.stderr, "Minimum 8 characters")
	assert.Zero(t, c.fake.CallCount(http.MethodPost, "/api/users/login"))

	res = c.run(t, "wrongpass\n", "login", "--email", "juan@test.com")
	assert.Equal(t, exitError, res.code)
	assert.Contains(t, res.stderr, "Invalid")

	res = c.run(t, "", "whoami")
	assert.Contains(t, res.stdout, "Not logged in")
}

/*
TestRegister creates an account and refuses a taken email.
*/
func TestRegister(t *testing.T) {
	c := newCLI(t)

	res := c.run(t, "Maria\nGomez\nmaria@test.com\nsecret123\nsecret123\n", "register")
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Contains(t, res.stderr, "Registration successful")
	assert.Contains(t, res.stdout, "Maria Gomez")

	res = c.run(t, "secret123\nsecret123\n", "register", "--name", "Juan", "--last-name", "Perez", "--email", "juan@test.com")
	assert.Equal(t, exitError, res.code)
	assert.Contains(t, res.stderr, "Email already registered, please use another")

	res = c.run(t, "secret123\nsecret999\n", "register", "--name", "Eva", "--last-name", "Ruiz", "--email", "eva@test.com")
	assert.Equal(t, exitError, res.code)
	assert.Contains(t, res.stderr, "Passwords do not match")
}

/*
TestPostsList pages through the list in text and json.
*/
func TestPostsList(t *testing.T) {
	c := newCLI(t)
	for i := 1; i <= 10; i++ {
		c.fake.SeedPost(c.juan.ID, fmt.Sprintf("Post %02d", i), "Contenido")
	}

	res := c.run(t, "", "posts", "list", "--page", "2")
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Showing 10-10 of 10")
	assert.Contains(t, res.stdout, "‹ Prev  1 [2]  Next ›")

	res = c.run(t, "", "posts", "list", "-o", "json", "--page-size", "4")
	require.Equal(t, exitOK, res.code, res.stderr)

	var decoded struct {
		Posts []models.Post `json:"posts"`
		Meta  struct {
			TotalPages int `json:"total_pages"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &decoded))
	assert.Len(t, decoded.Posts, 4)
	assert.Equal(t, 3, decoded.Meta.TotalPages)
}

/*
TestPostsShow prints the post with its comments for an anonymous reader.
*/
func TestPostsShow(t *testing.T) {
	c := newCLI(t)
	post := c.fake.SeedPost(c.juan.ID, "Hola Go", "Primer *post*")
	c.fake.SeedComment(c.ana.ID, post.ID, "Muy bueno")

	res := c.run(t, "", "posts", "show", post.ID)
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Hola Go")
	assert.Contains(t, res.stdout, "Comments (1)")
	assert.Contains(t, res.stdout, "Muy bueno")
	assert.NotContains(t, res.stdout, "(you")
}

/*
TestPostsCreate_RequiresLogin refuses before prompting.
*/
func TestPostsCreate_RequiresLogin(t *testing.T) {
	c := newCLI(t)

	res := c.run(t, "", "posts", "create", "--title", "X", "--content", "Y")
	assert.Equal(t, exitError, res.code)
	assert.Contains(t, res.stderr, "You must be logged in")
	assert.NotContains(t, res.stderr, "Title:")
}

/*
TestPostsLifecycle creates, edits and deletes a post as its author.
*/
func TestPostsLifecycle(t *testing.T) {
	c := newCLI(t)
	c.loginAs(t, c.juan)

	body := filepath.Join(t.TempDir(), "post.md")
	require.NoError(t, os.WriteFile(body, []byte("# Hola\n\nContenido"), 0o600))

	res := c.run(t, "", "posts", "create", "--title", "Hola Go", "--file", body, "-o", "json")
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Contains(t, res.stderr, "Post created successfully")

	var created models.Post
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &created))
	require.NotEmpty(t, created.ID)

	res = c.run(t, "", "posts", "edit", created.ID, "--title", "Hola Go 2")
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Contains(t, res.stderr, "Post updated successfully")

	stored, ok := c.fake.Post(created.ID)
	require.True(t, ok)
	assert.Equal(t, "Hola Go 2", stored.Title)
	assert.Equal(t, "# Hola\n\nContenido", stored.Content, "untouched fields keep their value")

	res = c.run(t, "", "posts", "mine")
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Hola Go 2")

	res = c.run(t, "n\n", "posts", "delete", created.ID)
	require.Equal(t, exitOK, res.code, res.stderr)
	_, ok = c.fake.Post(created.ID)
	assert.True(t, ok, "declined confirmation keeps the post")

	res = c.run(t, "", "posts", "delete", created.ID, "--yes")
	require.Equal(t, exitOK, res.code, res.stderr)
	_, ok = c.fake.Post(created.ID)
	assert.False(t, ok)
}

/*
TestPostsEdit_NotMine refuses to edit someone else's post.
*/
func TestPostsEdit_NotMine(t *testing.T) {
	c := newCLI(t)
	post := c.fake.SeedPost(c.ana.ID, "De Ana", "Contenido")
	c.loginAs(t, c.juan)

	res := c.run(t, "", "posts", "edit", post.ID, "--title", "Mio")
	assert.Equal(t, exitError, res.code)
	assert.Contains(t, res.stderr, "Post to edit not found")

	stored, _ := c.fake.Post(post.ID)
	assert.Equal(t, "De Ana", stored.Title)
}

/*
TestComments adds, edits and deletes a comment.
*/
func TestComments(t *testing.T) {
	c := newCLI(t)
	post := c.fake.SeedPost(c.ana.ID, "De Ana", "Contenido")

	res := c.run(t, "", "comments", "add", post.ID, "Hola")
	assert.Equal(t, exitError, res.code)
	assert.Contains(t, res.stderr, "You must be logged in to comment")

	c.loginAs(t, c.juan)
	res = c.run(t, "", "comments", "add", post.ID, "Muy", "bueno", "-o", "json")
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Contains(t, res.stderr, "Comment added successfully")

	var comment models.Comment
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &comment))
	assert.Equal(t, "Muy bueno", comment.Content)

	res = c.run(t, "Editado\n", "comments", "edit", comment.ID)
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Editado")

	res = c.run(t, "", "posts", "show", post.ID)
	assert.Contains(t, res.stdout, "(you · id "+comment.ID+")")

	res = c.run(t, "", "comments", "delete", comment.ID, "-y")
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Contains(t, res.stderr, "Comment deleted successfully")
}

/*
TestRevokedToken ends the session on the next run.
*/
func TestRevokedToken(t *testing.T) {
	c := newCLI(t)
	c.loginAs(t, c.juan)

	token, err := session.NewFileTokenStore(c.tokenFile).Get(context.Background())
	require.NoError(t, err)
	c.fake.Revoke(token)

	res := c.run(t, "", "whoami")
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Not logged in")

	token, err = session.NewFileTokenStore(c.tokenFile).Get(context.Background())
	require.NoError(t, err)
	assert.Empty(t, token)
}

/*
TestBadConfiguration reports flag and environment errors.
*/
func TestBadConfiguration(t *testing.T) {
	c := newCLI(t)

	res := c.run(t, "", "whoami", "--output", "xml")
	assert.Equal(t, exitError, res.code)
	assert.Contains(t, res.stderr, `unknown output format "xml"`)

	res = c.run(t, "", "posts", "show")
	assert.Equal(t, exitError, res.code)
	assert.Contains(t, res.stderr, "accepts 1 arg")

	res = c.run(t, "", "posts", "list", "--page-size", "150")
	assert.Equal(t, exitError, res.code)
	assert.Contains(t, res.stderr, "page size 150 exceeds the maximum of 100")
}
