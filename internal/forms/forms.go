// Copyright (c) 2026 CodeJourney. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package forms holds the input schemas of every user-facing form.
//
// A form that fails Validate never reaches the network.
package forms

import (
	"strings"

	"github.com/taibuivan/codejourney/internal/models"
	"github.com/taibuivan/codejourney/internal/platform/validate"
	"github.com/taibuivan/codejourney/pkg/pointer"
)

const (
	minNameLen     = 2
	minPasswordLen = 8
	maxTitleLen    = 200

	msgPasswordMismatch = "Passwords do not match"
)

// # Register

// RegisterForm is the account creation form.
type RegisterForm struct {
	Name            string
	LastName        string
	Email           string
	Password        string
	ConfirmPassword string
}

// Validate checks every field; the confirmation must equal the password.
func (f RegisterForm) Validate() error {
	v := &validate.Validator{}
	v.MinLen("name", strings.TrimSpace(f.Name), minNameLen).
		MinLen("lastName", strings.TrimSpace(f.LastName), minNameLen).
		Email("email", f.Email).
		MinLen("password", f.Password, minPasswordLen).
		MinLen("confirmPassword", f.ConfirmPassword, minPasswordLen).
		Matches("confirmPassword", f.ConfirmPassword, f.Password, msgPasswordMismatch)
	return v.Err()
}

// Payload is what gets sent to the API. The confirmation stays local.
func (f RegisterForm) Payload() models.Registration {
	return models.Registration{
		Name:     strings.TrimSpace(f.Name),
		LastName: strings.TrimSpace(f.LastName),
		Email:    strings.TrimSpace(f.Email),
		Password: f.Password,
	}
}

// Reset clears every field after a successful registration.
func (f *RegisterForm) Reset() { *f = RegisterForm{} }

// # Login

// LoginForm is the credentials form.
type LoginForm struct {
	Email    string
	Password string
}

func (f LoginForm) Validate() error {
	v := &validate.Validator{}
	v.Email("email", f.Email).MinLen("password", f.Password, minPasswordLen)
	return v.Err()
}

// # Profile

// ProfileForm is a partial profile edit. Empty fields are left unchanged.
type ProfileForm struct {
	Name     string
	LastName string
	Email    string
	Password string
}

// Validate checks only the fields that were filled in. An empty form is
// rejected as there is nothing to update.
func (f ProfileForm) Validate() error {
	v := &validate.Validator{}
	v.Custom("profile", f.Update().IsEmpty(), "Nothing to update")
	if f.Name != "" {
		v.MinLen("name", strings.TrimSpace(f.Name), minNameLen)
	}
	if f.LastName != "" {
		v.MinLen("lastName", strings.TrimSpace(f.LastName), minNameLen)
	}
	if f.Email != "" {
		v.Email("email", f.Email)
	}
	if f.Password != "" {
		v.MinLen("password", f.Password, minPasswordLen)
	}
	return v.Err()
}

// Update converts the form into a partial update.
func (f ProfileForm) Update() models.UserUpdate {
	return models.UserUpdate{
		Name:     pointer.NonZero(strings.TrimSpace(f.Name)),
		LastName: pointer.NonZero(strings.TrimSpace(f.LastName)),
		Email:    pointer.NonZero(strings.TrimSpace(f.Email)),
		Password: pointer.NonZero(f.Password),
	}
}

// # Post

// PostForm creates or edits a post.
type PostForm struct {
	Title   string
	Content string
	Image   string
}

func (f PostForm) Validate() error {
	f = f.trimmed()
	v := &validate.Validator{}
	v.Required("title", f.Title).
		MaxLen("title", f.Title, maxTitleLen).
		Required("content", f.Content)
	if f.Image != "" {
		v.URL("image", f.Image)
	}
	return v.Err()
}

// Input builds the API payload with surrounding whitespace removed.
func (f PostForm) Input() models.PostInput {
	f = f.trimmed()
	return models.PostInput{Title: f.Title, Content: f.Content, Image: f.Image}
}

// FromPost prefills the form for editing.
func FromPost(post models.Post) PostForm {
	return PostForm{Title: post.Title, Content: post.Content, Image: post.Image}
}

func (f PostForm) trimmed() PostForm {
	return PostForm{
		Title:   strings.TrimSpace(f.Title),
		Content: strings.TrimSpace(f.Content),
		Image:   strings.TrimSpace(f.Image),
	}
}

// # Comment

// CommentForm adds or edits a comment.
type CommentForm struct {
	Content string
}

func (f CommentForm) Validate() error {
	if strings.TrimSpace(f.Content) == "" {
		return validate.RequiredError("content", "Comment cannot be empty")
	}
	return nil
}

// Text is the content to send.
func (f CommentForm) Text() string { return strings.TrimSpace(f.Content) }
