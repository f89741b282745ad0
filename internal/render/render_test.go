// Copyright (c) 2026 CodeJourney. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package render_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/taibuivan/codejourney/internal/models"
	"github.com/taibuivan/codejourney/internal/posts"
	"github.com/taibuivan/codejourney/internal/render"
	"github.com/taibuivan/codejourney/pkg/pagination"
)

var (
	juan    = models.User{ID: "65f1c0ffee65f1c0ffee0001", Name: "Juan", LastName: "Perez", Email: "juan@test.com"}
	ana     = models.User{ID: "65f1c0ffee65f1c0ffee0002", Name: "Ana", LastName: "Lopez", Email: "ana@test.com"}
	created = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
)

func samplePosts(n int) []models.Post {
	list := make([]models.Post, n)
	for i := range list {
		list[i] = models.Post{
			ID:        fmt.Sprintf("65f1c0ffee65f1c0ffee%04d", i+1),
			Title:     fmt.Sprintf("Post %02d", i+1),
			Content:   "Body",
			Author:    models.EmbeddedAuthor(juan),
			CreatedAt: &created,
		}
	}
	return list
}

func newPrinter(t *testing.T, format string) (*render.Printer, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	printer, err := render.New(&out, format, true)
	require.NoError(t, err)
	return printer, &out
}

/*
TestNew rejects unknown formats and defaults to text.
*/
func TestNew(t *testing.T) {
	_, err := render.New(&bytes.Buffer{}, "xml", true)
	assert.Error(t, err)

	printer, err := render.New(&bytes.Buffer{}, "", true)
	require.NoError(t, err)
	assert.Equal(t, "text", printer.Format())
}

/*
TestPage_Text lists a middle page with its controls.
*/
func TestPage_Text(t *testing.T) {
	printer, out := newPrinter(t, "text")
	page := pagination.Paginate(samplePosts(20), pagination.Params{Page: 2, Limit: 9})

	require.NoError(t, printer.Page(page))

	text := out.String()
	assert.Contains(t, text, "10. Post 10")
	assert.Contains(t, text, "Juan Perez · 14 Mar 2026 · 0 comments")
	assert.Contains(t, text, "‹ Prev  1 [2] 3  Next ›")
	assert.Contains(t, text, "Showing 10-18 of 20")
	assert.NotContains(t, text, "Post 01")
}

/*
TestPage_SinglePageHasNoControls hides the controls for short lists.
*/
func TestPage_SinglePageHasNoControls(t *testing.T) {
	printer, out := newPrinter(t, "text")
	require.NoError(t, printer.Page(pagination.Paginate(samplePosts(3), pagination.Params{Page: 1, Limit: 9})))
	assert.NotContains(t, out.String(), "Prev")

	printer, out = newPrinter(t, "text")
	require.NoError(t, printer.Page(pagination.Paginate([]models.Post{}, pagination.Params{})))
	assert.Contains(t, out.String(), "No posts yet.")
}

/*
TestPage_JSON writes posts and metadata.
*/
func TestPage_JSON(t *testing.T) {
	printer, out := newPrinter(t, "json")
	require.NoError(t, printer.Page(pagination.Paginate(samplePosts(20), pagination.Params{Page: 3, Limit: 9})))

	var decoded struct {
		Posts []models.Post   `json:"posts"`
		Meta  pagination.Meta `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Len(t, decoded.Posts, 2)
	assert.Equal(t, pagination.Meta{Page: 3, Limit: 9, Total: 20, TotalPages: 3}, decoded.Meta)
	assert.Equal(t, "Juan Perez", decoded.Posts[0].Author.DisplayName())
}

func sampleDetail() posts.Detail {
	post := samplePosts(1)[0]
	post.Content = "# Hello\n\nSome **markdown**."
	return posts.Detail{
		Post: post,
		Comments: []models.Comment{
			{ID: "c1", Content: "Mine", Author: models.RefAuthor(juan.ID), CreatedAt: &created},
			{ID: "c2", Content: "Theirs", Author: models.EmbeddedAuthor(ana), CreatedAt: &created},
		},
	}
}

/*
TestDetail_Text renders markdown and marks the viewer's comments.
*/
func TestDetail_Text(t *testing.T) {
	printer, out := newPrinter(t, "text")
	require.NoError(t, printer.Detail(sampleDetail(), &juan))

	text := out.String()
	assert.Contains(t, text, "Hello")
	assert.Contains(t, text, "markdown")
	assert.Contains(t, text, "Comments (2)")
	assert.Contains(t, text, "(you · id c1)")
	assert.NotContains(t, text, "id c2")
	assert.Contains(t, text, "[A] Ana Lopez")
}

/*
TestDetail_YAML carries affordances per comment.
*/
func TestDetail_YAML(t *testing.T) {
	printer, out := newPrinter(t, "yaml")
	require.NoError(t, printer.Detail(sampleDetail(), &ana))

	var decoded struct {
		Post     map[string]any   `yaml:"post"`
		Comments []map[string]any `yaml:"comments"`
	}
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, "Post 01", decoded.Post["title"])
	require.Len(t, decoded.Comments, 2)
	assert.Equal(t, false, decoded.Comments[0]["canEdit"])
	assert.Equal(t, true, decoded.Comments[1]["canDelete"])
}

/*
TestDetail_JSON flattens comment affordances.
*/
func TestDetail_JSON(t *testing.T) {
	printer, out := newPrinter(t, "json")
	require.NoError(t, printer.Detail(sampleDetail(), nil))

	var decoded struct {
		Comments []struct {
			ID      string          `json:"_id"`
			Author  json.RawMessage `json:"author"`
			CanEdit bool            `json:"canEdit"`
		} `json:"comments"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	require.Len(t, decoded.Comments, 2)
	assert.Equal(t, "c1", decoded.Comments[0].ID)
	assert.Equal(t, `"`+juan.ID+`"`, string(decoded.Comments[0].Author))
	assert.False(t, decoded.Comments[0].CanEdit)

	// An embedded author stays an object.
	var embedded models.Author
	require.NoError(t, json.Unmarshal(decoded.Comments[1].Author, &embedded))
	assert.True(t, embedded.IsEmbedded())
	assert.Equal(t, ana.ID, embedded.ID())
}

/*
TestUser writes the whoami view.
*/
func TestUser(t *testing.T) {
	printer, out := newPrinter(t, "text")
	require.NoError(t, printer.User("authenticated", &juan))
	assert.Contains(t, out.String(), "[J] Juan Perez")
	assert.Contains(t, out.String(), "juan@test.com")

	printer, out = newPrinter(t, "json")
	require.NoError(t, printer.User("unauthenticated", nil))
	assert.JSONEq(t, `{"status":"unauthenticated"}`, out.String())
}
