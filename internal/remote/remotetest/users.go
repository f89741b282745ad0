// Copyright (c) 2026 CodeJourney. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package remotetest

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/taibuivan/codejourney/internal/models"
	"github.com/taibuivan/codejourney/internal/platform/apperr"
	"github.com/taibuivan/codejourney/internal/platform/sec"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// login handles POST /api/users/login.
func (server *Server) login(writer http.ResponseWriter, request *http.Request) {
	var input credentials
	if err := decode(request, &input); err != nil {
		writeError(writer, err)
		return
	}

	server.mu.Lock()
	record := server.userByEmail(input.Email)
	bodyError := server.loginErrors
	server.mu.Unlock()

	if bodyError != "" {
		writeJSON(writer, http.StatusOK, errorEnvelope{Error: bodyError})
		return
	}

	if record == nil || !sec.CheckPasswordHash(input.Password, record.passwordHash) {
		writeError(writer, apperr.ValidationError("Invalid email or password"))
		return
	}

	writeJSON(writer, http.StatusOK, map[string]any{
		"token": server.Token(record.user.ID),
		"user":  record.user,
	})
}

// register handles POST /api/users/register.
func (server *Server) register(writer http.ResponseWriter, request *http.Request) {
	var input models.Registration
	if err := decode(request, &input); err != nil {
		writeError(writer, err)
		return
	}

	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Email) == "" || len(input.Password) < 8 {
		writeError(writer, apperr.ValidationError("Missing required fields"))
		return
	}

	server.mu.Lock()
	taken := server.userByEmail(input.Email) != nil
	server.mu.Unlock()
	if taken {
		writeError(writer, apperr.ValidationError("Email already registered"))
		return
	}

	user := server.SeedUser(input.Name, input.LastName, input.Email, input.Password)
	writeJSON(writer, http.StatusCreated, user)
}

// validateEmail handles POST /api/users/validate-email. It answers true
// when the address is still free.
func (server *Server) validateEmail(writer http.ResponseWriter, request *http.Request) {
	var input credentials
	if err := decode(request, &input); err != nil {
		writeError(writer, err)
		return
	}

	server.mu.Lock()
	available := server.userByEmail(input.Email) == nil
	server.mu.Unlock()

	writeJSON(writer, http.StatusOK, available)
}

// profile handles GET /api/users/profile.
func (server *Server) profile(writer http.ResponseWriter, request *http.Request) {
	server.mu.Lock()
	record, ok := server.users[callerID(request)]
	server.mu.Unlock()

	if !ok {
		writeError(writer, apperr.Unauthorized("User no longer exists"))
		return
	}
	writeJSON(writer, http.StatusOK, map[string]any{"user": record.user})
}

// updateUser handles PUT /api/users/update/{userID}.
func (server *Server) updateUser(writer http.ResponseWriter, request *http.Request) {
	userID := chi.URLParam(request, "userID")
	if userID != callerID(request) {
		writeError(writer, apperr.Forbidden("You can only update your own profile"))
		return
	}

	var input models.UserUpdate
	if err := decode(request, &input); err != nil {
		writeError(writer, err)
		return
	}

	var hash string
	if input.Password != nil {
		var err error
		if hash, err = sec.HashPasswordCost(*input.Password, bcrypt.MinCost); err != nil {
			writeError(writer, apperr.Internal(err))
			return
		}
	}

	server.mu.Lock()
	defer server.mu.Unlock()

	record, ok := server.users[userID]
	if !ok {
		writeError(writer, apperr.NotFound("User"))
		return
	}
	if input.Name != nil {
		record.user.Name = *input.Name
	}
	if input.LastName != nil {
		record.user.LastName = *input.LastName
	}
	if input.Email != nil {
		record.user.Email = *input.Email
	}
	if hash != "" {
		record.passwordHash = hash
	}

	writeJSON(writer, http.StatusOK, record.user)
}
