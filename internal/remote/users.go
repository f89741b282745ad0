// Copyright (c) 2026 CodeJourney. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package remote

import (
	"context"
	"net/http"
	"strings"

	"github.com/taibuivan/codejourney/internal/models"
	"github.com/taibuivan/codejourney/internal/platform/apperr"
)

const usersPath = "/api/users"

// LoginResult is the successful answer of a credentials exchange.
type LoginResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
	Error string       `json:"error"`
}

// Login exchanges credentials for a bearer token and the user's profile.
//
// The remote API may answer 2xx with an {error} body; that is a failure too.
// A 400 without a message reads as invalid credentials.
func (client *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var response loginResponse
	err := client.do(ctx, call{
		method: http.MethodPost,
		path:   usersPath + "/login",
		body:   map[string]string{"email": email, "password": password},
		out:    &response,
	})
	if err != nil {
		if ae := apperr.As(err); ae != nil && ae.HTTPStatus == http.StatusBadRequest && ae.Message == apperr.MsgRejected {
			return nil, apperr.Unauthorized("Invalid credentials")
		}
		return nil, err
	}

	if response.Error != "" {
		return nil, apperr.Unauthorized(response.Error)
	}
	if strings.TrimSpace(response.Token) == "" || response.User == nil {
		return nil, apperr.Unauthorized("Invalid credentials")
	}

	return &LoginResult{Token: response.Token, User: *response.User}, nil
}

// Register creates an account. It does not authenticate the caller.
func (client *Client) Register(ctx context.Context, registration models.Registration) (*models.User, error) {
	var user models.User
	if err := client.do(ctx, call{
		method: http.MethodPost,
		path:   usersPath + "/register",
		body:   registration,
		out:    &user,
	}); err != nil {
		return nil, err
	}
	return &user, nil
}

// Profile returns the user the token belongs to.
func (client *Client) Profile(ctx context.Context, token string) (*models.User, error) {
	var response struct {
		User *models.User `json:"user"`
	}
	if err := client.do(ctx, call{
		method: http.MethodGet,
		path:   usersPath + "/profile",
		token:  token,
		out:    &response,
	}); err != nil {
		return nil, err
	}
	if response.User == nil || response.User.ID == "" {
		return nil, apperr.Unauthorized("Session expired")
	}
	return response.User, nil
}

// ValidateEmail asks whether email is still free to register.
func (client *Client) ValidateEmail(ctx context.Context, email string) (bool, error) {
	var available bool
	if err := client.do(ctx, call{
		method: http.MethodPost,
		path:   usersPath + "/validate-email",
		body:   map[string]string{"email": email},
		out:    &available,
	}); err != nil {
		return false, err
	}
	return available, nil
}

// UpdateUser applies a partial update to the user's profile.
func (client *Client) UpdateUser(ctx context.Context, token, userID string, update models.UserUpdate) (*models.User, error) {
	var user models.User
	if err := client.do(ctx, call{
		method: http.MethodPut,
		path:   usersPath + "/update/" + escape(userID),
		token:  token,
		body:   update,
		out:    &user,
	}); err != nil {
		return nil, err
	}
	return &user, nil
}
