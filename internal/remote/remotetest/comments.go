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

type commentInput struct {
	Content string `json:"content"`
}

// commentsByPost handles GET /api/comments/post/{postID}.
func (server *Server) commentsByPost(writer http.ResponseWriter, request *http.Request) {
	postID := chi.URLParam(request, "postID")

	server.mu.Lock()
	comments := []models.Comment{}
	for _, record := range server.comments {
		if record.postID == postID {
			comments = append(comments, server.embedComment(record))
		}
	}
	server.mu.Unlock()

	writeJSON(writer, http.StatusOK, map[string]any{"comments": comments})
}

// getComment handles GET /api/comments/{commentID}.
func (server *Server) getComment(writer http.ResponseWriter, request *http.Request) {
	server.mu.Lock()
	record := server.findComment(chi.URLParam(request, "commentID"))
	var comment models.Comment
	if record != nil {
		comment = server.embedComment(record)
	}
	server.mu.Unlock()

	if record == nil {
		writeError(writer, apperr.NotFound("Comment"))
		return
	}
	writeJSON(writer, http.StatusOK, comment)
}

// createComment handles POST /api/comments/create/{postID}. The author of
// the new comment comes back as an id.
func (server *Server) createComment(writer http.ResponseWriter, request *http.Request) {
	var input commentInput
	if err := decode(request, &input); err != nil {
		writeError(writer, err)
		return
	}
	if strings.TrimSpace(input.Content) == "" {
		writeError(writer, apperr.ValidationError("Content is required"))
		return
	}

	server.mu.Lock()
	defer server.mu.Unlock()

	postID := chi.URLParam(request, "postID")
	if server.findPost(postID) == nil {
		writeError(writer, apperr.NotFound("Post"))
		return
	}

	record := &commentRecord{
		id:        server.nextID(),
		content:   input.Content,
		authorID:  callerID(request),
		postID:    postID,
		createdAt: server.now(),
	}
	server.comments = append(server.comments, record)

	writeJSON(writer, http.StatusCreated, map[string]any{"newComment": server.refComment(record)})
}

// updateComment handles PUT /api/comments/{commentID}.
func (server *Server) updateComment(writer http.ResponseWriter, request *http.Request) {
	var input commentInput
	if err := decode(request, &input); err != nil {
		writeError(writer, err)
		return
	}

	server.mu.Lock()
	defer server.mu.Unlock()

	record := server.findComment(chi.URLParam(request, "commentID"))
	if record == nil {
		writeError(writer, apperr.NotFound("Comment"))
		return
	}
	if record.authorID != callerID(request) {
		writeError(writer, apperr.Forbidden("Not authorized to update this comment"))
		return
	}

	record.content = input.Content
	writeJSON(writer, http.StatusOK, server.embedComment(record))
}

// deleteComment handles DELETE /api/comments/{commentID}.
func (server *Server) deleteComment(writer http.ResponseWriter, request *http.Request) {
	server.mu.Lock()
	defer server.mu.Unlock()

	commentID := chi.URLParam(request, "commentID")
	record := server.findComment(commentID)
	if record == nil {
		writeError(writer, apperr.NotFound("Comment"))
		return
	}
	if record.authorID != callerID(request) {
		writeError(writer, apperr.Forbidden("Not authorized to delete this comment"))
		return
	}

	kept := server.comments[:0]
	for _, comment := range server.comments {
		if comment.id != commentID {
			kept = append(kept, comment)
		}
	}
	server.comments = kept

	writeJSON(writer, http.StatusOK, messageEnvelope{Message: "Comment deleted"})
}
