// Copyright (c) 2026 CodeJourney. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package models_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/codejourney/internal/models"
)

/*
TestAuthor_Decode resolves both remote shapes once at the boundary.
*/
func TestAuthor_Decode(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		kind     models.AuthorKind
		id       string
		display  string
		initial  string
		embedded bool
	}{
		{"ref", `{"author":"65f1c0ffee65f1c0ffee1234"}`, models.AuthorRef, "65f1c0ffee65f1c0ffee1234", "65f1c0ffee65f1c0ffee1234", "6", false},
		{"embedded", `{"author":{"_id":"u1","name":"juan","lastName":"Perez"}}`, models.AuthorEmbedded, "u1", "juan Perez", "J", true},
		{"embedded_alt_id", `{"author":{"id":"u2","name":"Ana","lastName":""}}`, models.AuthorEmbedded, "u2", "Ana", "A", true},
		{"embedded_nameless", `{"author":{"_id":"u3"}}`, models.AuthorEmbedded, "u3", "Usuario", "U", true},
		{"null", `{"author":null}`, models.AuthorNone, "", "Usuario", "U", false},
		{"missing", `{}`, models.AuthorNone, "", "Usuario", "U", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var post models.Post
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &post))

			assert.Equal(t, tt.kind, post.Author.Kind())
			assert.Equal(t, tt.id, post.Author.ID())
			assert.Equal(t, tt.display, post.Author.DisplayName())
			assert.Equal(t, tt.initial, post.Author.Initial())
			assert.Equal(t, tt.embedded, post.Author.IsEmbedded())
		})
	}
}

/*
TestAuthor_DecodeInvalid rejects numbers and arrays.
*/
func TestAuthor_DecodeInvalid(t *testing.T) {
	var post models.Post
	assert.Error(t, json.Unmarshal([]byte(`{"author":42}`), &post))
	assert.Error(t, json.Unmarshal([]byte(`{"author":[]}`), &post))
}

/*
TestAuthor_Encode writes each variant back in its original shape.
*/
func TestAuthor_Encode(t *testing.T) {
	ref, err := json.Marshal(models.RefAuthor("u1"))
	require.NoError(t, err)
	assert.JSONEq(t, `"u1"`, string(ref))

	embedded, err := json.Marshal(models.EmbeddedAuthor(models.User{ID: "u1", Name: "Juan", LastName: "Perez"}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"_id":"u1","name":"Juan","lastName":"Perez"}`, string(embedded))

	none, err := json.Marshal(models.Author{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(none))
}

/*
TestOwnership checks the authored-by helpers used by the comment affordances.
*/
func TestOwnership(t *testing.T) {
	mine := models.Comment{Author: models.EmbeddedAuthor(models.User{ID: "u1"})}
	ref := models.Comment{Author: models.RefAuthor("u1")}
	other := models.Comment{Author: models.RefAuthor("u2")}
	anonymous := models.Comment{}

	assert.True(t, mine.AuthoredBy("u1"))
	assert.True(t, ref.AuthoredBy("u1"))
	assert.False(t, other.AuthoredBy("u1"))
	assert.False(t, anonymous.AuthoredBy(""))

	post := models.Post{Author: models.RefAuthor("u1"), Comments: []models.Comment{mine, other}}
	assert.True(t, post.AuthoredBy("u1"))
	assert.Equal(t, 2, post.CommentCount())
}

/*
TestUser_Decode accepts both identifier spellings.
*/
func TestUser_Decode(t *testing.T) {
	var a, b models.User
	require.NoError(t, json.Unmarshal([]byte(`{"_id":"x","name":"Juan","lastName":"Perez","email":"juan@test.com"}`), &a))
	require.NoError(t, json.Unmarshal([]byte(`{"id":"y","name":"Ana"}`), &b))

	assert.Equal(t, "x", a.ID)
	assert.Equal(t, "Juan Perez", a.FullName())
	assert.Equal(t, "y", b.ID)
	assert.Equal(t, "Ana", b.FullName())
}
