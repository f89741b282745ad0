// Copyright (c) 2026 CodeJourney. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package remote

import (
	"context"
	"net/http"

	"github.com/taibuivan/codejourney/internal/models"
	"github.com/taibuivan/codejourney/internal/platform/apperr"
)

const postsPath = "/api/posts"

// ListPosts returns every post with its comments.
func (client *Client) ListPosts(ctx context.Context) ([]models.Post, error) {
	var response struct {
		Posts []models.Post `json:"posts"`
	}
	if err := client.do(ctx, call{method: http.MethodGet, path: postsPath, out: &response}); err != nil {
		return nil, err
	}
	return nonNil(response.Posts), nil
}

// GetPost returns a single post.
func (client *Client) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	var response struct {
		Post *models.Post `json:"post"`
	}
	if err := client.do(ctx, call{
		method: http.MethodGet,
		path:   postsPath + "/" + escape(postID),
		out:    &response,
	}); err != nil {
		return nil, err
	}
	if response.Post == nil {
		return nil, apperr.NotFound("Post")
	}
	return response.Post, nil
}

// PostsByUser returns the posts published by the token's owner.
func (client *Client) PostsByUser(ctx context.Context, token string) ([]models.Post, error) {
	var response struct {
		Posts []models.Post `json:"posts"`
	}
	if err := client.do(ctx, call{
		method: http.MethodGet,
		path:   postsPath + "/user/posts",
		token:  token,
		out:    &response,
	}); err != nil {
		return nil, err
	}
	return nonNil(response.Posts), nil
}

// CreatePost publishes a post. The response is the bare post.
func (client *Client) CreatePost(ctx context.Context, token string, input models.PostInput) (*models.Post, error) {
	var post models.Post
	if err := client.do(ctx, call{
		method: http.MethodPost,
		path:   postsPath + "/create",
		token:  token,
		body:   input,
		out:    &post,
	}); err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdatePost replaces the title, content and image of a post.
//
// A 403 means the caller does not own the post.
func (client *Client) UpdatePost(ctx context.Context, token, postID string, input models.PostInput) (*models.Post, error) {
	if postID == "" || token == "" {
		return nil, apperr.ValidationError("Post id and token are required")
	}

	// Ownership comes from the bearer token, never from the body.
	input.Author = ""

	var response struct {
		UpdatedPost *models.Post `json:"updatedPost"`
	}
	if err := client.do(ctx, call{
		method: http.MethodPut,
		path:   postsPath + "/" + escape(postID),
		token:  token,
		body:   input,
		out:    &response,
	}); err != nil {
		if apperr.IsForbidden(err) {
			return nil, apperr.Forbidden("You do not have permission to edit this post")
		}
		return nil, err
	}
	if response.UpdatedPost == nil {
		return nil, apperr.NotFound("Post")
	}
	return response.UpdatedPost, nil
}

// DeletePost removes a post.
func (client *Client) DeletePost(ctx context.Context, token, postID string) error {
	return client.do(ctx, call{
		method: http.MethodDelete,
		path:   postsPath + "/" + escape(postID),
		token:  token,
	})
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
