// Copyright (c) 2026 CodeJourney. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package remote

import (
	"context"
	"errors"
	"net/http"

	"github.com/taibuivan/codejourney/internal/models"
	"github.com/taibuivan/codejourney/internal/platform/apperr"
)

const commentsPath = "/api/comments"

type commentBody struct {
	Content string `json:"content"`
}

// CommentsByPost returns the comments attached to a post.
func (client *Client) CommentsByPost(ctx context.Context, postID string) ([]models.Comment, error) {
	var response struct {
		Comments []models.Comment `json:"comments"`
	}
	if err := client.do(ctx, call{
		method: http.MethodGet,
		path:   commentsPath + "/post/" + escape(postID),
		out:    &response,
	}); err != nil {
		return nil, err
	}
	return nonNil(response.Comments), nil
}

// GetComment returns a single comment.
func (client *Client) GetComment(ctx context.Context, commentID string) (*models.Comment, error) {
	var comment models.Comment
	if err := client.do(ctx, call{
		method: http.MethodGet,
		path:   commentsPath + "/" + escape(commentID),
		out:    &comment,
	}); err != nil {
		return nil, err
	}
	return &comment, nil
}

// CreateComment attaches a comment to a post. Only the content is sent.
func (client *Client) CreateComment(ctx context.Context, token, postID, content string) (*models.Comment, error) {
	var response struct {
		NewComment *models.Comment `json:"newComment"`
	}
	if err := client.do(ctx, call{
		method: http.MethodPost,
		path:   commentsPath + "/create/" + escape(postID),
		token:  token,
		body:   commentBody{Content: content},
		out:    &response,
	}); err != nil {
		return nil, err
	}
	if response.NewComment == nil {
		return nil, apperr.Internal(errors.New("remote: create comment answered without a comment"))
	}
	return response.NewComment, nil
}

// UpdateComment replaces the content of a comment.
func (client *Client) UpdateComment(ctx context.Context, token, commentID, content string) (*models.Comment, error) {
	var comment models.Comment
	if err := client.do(ctx, call{
		method: http.MethodPut,
		path:   commentsPath + "/" + escape(commentID),
		token:  token,
		body:   commentBody{Content: content},
		out:    &comment,
	}); err != nil {
		return nil, err
	}
	return &comment, nil
}

// DeleteComment removes a comment.
func (client *Client) DeleteComment(ctx context.Context, token, commentID string) error {
	return client.do(ctx, call{
		method: http.MethodDelete,
		path:   commentsPath + "/" + escape(commentID),
		token:  token,
	})
}
