// Copyright (c) 2026 CodeJourney. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package remotetest

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/codejourney/internal/models"
	"github.com/taibuivan/codejourney/internal/platform/apperr"
)

// listPosts handles GET /api/posts.
func (server *Server) listPosts(writer http.ResponseWriter, _ *http.Request) {
	server.mu.Lock()
	posts := make([]models.Post, 0, len(server.posts))
	for _, record := range server.posts {
		posts = append(posts, server.embedPost(record))
	}
	server.mu.Unlock()

	writeJSON(writer, http.StatusOK, map[string]any{"posts": posts})
}

// postsByUser handles GET /api/posts/user/posts. Authors come back as ids.
func (server *Server) postsByUser(writer http.ResponseWriter, request *http.Request) {
	userID := callerID(request)

	server.mu.Lock()
	posts := []models.Post{}
	for _, record := range server.posts {
		if record.authorID == userID {
			posts = append(posts, server.refPost(record))
		}
	}
	server.mu.Unlock()

	writeJSON(writer, http.StatusOK, map[string]any{"posts": posts})
}

// getPost handles GET /api/posts/{postID}.
func (server *Server) getPost(writer http.ResponseWriter, request *http.Request) {
	server.mu.Lock()
	record := server.findPost(chi.URLParam(request, "postID"))
	var post models.Post
	if record != nil {
		post = server.embedPost(record)
	}
	server.mu.Unlock()

	if record == nil {
		writeError(writer, apperr.NotFound("Post"))
		return
	}
	writeJSON(writer, http.StatusOK, map[string]any{"post": post})
}

// createPost handles POST /api/posts/create. The bare post is returned.
func (server *Server) createPost(writer http.ResponseWriter, request *http.Request) {
	var input models.PostInput
	if err := decode(request, &input); err != nil {
		writeError(writer, err)
		return
	}
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Content) == "" {
		writeError(writer, apperr.ValidationError("Title and content are required"))
		return
	}

	server.mu.Lock()
	record := &postRecord{
		id:        server.nextID(),
		title:     input.Title,
		content:   input.Content,
		image:     input.Image,
		authorID:  callerID(request),
		createdAt: server.now(),
	}
	server.posts = append(server.posts, record)
	post := server.refPost(record)
	server.mu.Unlock()

	writeJSON(writer, http.StatusCreated, post)
}

// updatePost handles PUT /api/posts/{postID}.
func (server *Server) updatePost(writer http.ResponseWriter, request *http.Request) {
	var input models.PostInput
	if err := decode(request, &input); err != nil {
		writeError(writer, err)
		return
	}

	server.mu.Lock()
	defer server.mu.Unlock()

	record := server.findPost(chi.URLParam(request, "postID"))
	if record == nil {
		writeError(writer, apperr.NotFound("Post"))
		return
	}
	if record.authorID != callerID(request) {
		writeError(writer, apperr.Forbidden("Not authorized to update this post"))
		return
	}

	record.title = input.Title
	record.content = input.Content
	record.image = input.Image

	writeJSON(writer, http.StatusOK, map[string]any{"updatedPost": server.embedPost(record)})
}

// deletePost handles DELETE /api/posts/{postID} and drops its comments.
func (server *Server) deletePost(writer http.ResponseWriter, request *http.Request) {
	server.mu.Lock()
	defer server.mu.Unlock()

	postID := chi.URLParam(request, "postID")
	record := server.findPost(postID)
	if record == nil {
		writeError(writer, apperr.NotFound("Post"))
		return
	}
	if record.authorID != callerID(request) {
		writeError(writer, apperr.Forbidden("Not authorized to delete this post"))
		return
	}

	kept := server.posts[:0]
	for _, post := range server.posts {
		if post.id != postID {
			kept = append(kept, post)
		}
	}
	server.posts = kept

	comments := server.comments[:0]
	for _, comment := range server.comments {
		if comment.postID != postID {
			comments = append(comments, comment)
		}
	}
	server.comments = comments

	writeJSON(writer, http.StatusOK, messageEnvelope{Message: "Post deleted"})
}
