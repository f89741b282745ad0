// Copyright (c) 2026 CodeJourney. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the centralized error handling framework for CodeJourney.

It provides a rich error type that bridges the gap between transport-level
failures of the remote API and the single-line notifications shown to users.

Architecture:

  - AppError: A struct containing machine-readable ErrorCode and user-friendly messages.
  - Taxonomy: validation, authentication, authorization, not-found, network, internal.
  - Mapping: Explicit mapping from remote HTTP status codes to AppError.

Every error that leaves the remote client or a use case should be an [AppError]
so the command layer can decide between a notification and a forced logout.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// # Error Codes

const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeRateLimited  = "RATE_LIMITED"
	CodeNetwork      = "NETWORK_ERROR"
	CodeInternal     = "INTERNAL_ERROR"
)

// MsgRejected is the message of a 400 response that carried no explanation.
const MsgRejected = "The server rejected the request"

// AppError is the canonical error type for the CodeJourney client.
//
// It carries the HTTP status code returned by the remote API (zero when the
// request never got a response), a machine-readable code, a user-safe
// message, and an optional slice of field-level validation errors.
//
// # Security
//
// The Cause field is for logging only and is never shown to users.
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "NOT_FOUND", "FORBIDDEN").
	Code string `json:"code"`
	// Message is a human-readable, single-line description safe to show the user.
	Message string `json:"error"`
	// HTTPStatus is the remote response status code, or zero.
	HTTPStatus int `json:"-"`
	// Cause is the underlying error, used for logging only.
	Cause error `json:"-"`
	// Details holds per-field validation errors for VALIDATION_ERROR.
	Details []FieldError `json:"details,omitempty"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	// Field is the form field name that failed validation.
	Field string `json:"field"`
	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// Error implements the error interface. It returns the user-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// Summary renders the message followed by every field detail on one line.
func (e *AppError) Summary() string {
	if len(e.Details) == 0 {
		return e.Message
	}
	parts := make([]string, 0, len(e.Details))
	for _, d := range e.Details {
		parts = append(parts, d.Field+": "+d.Message)
	}
	return e.Message + " (" + strings.Join(parts, "; ") + ")"
}

// # Client Errors (4xx)

// NotFound creates a 404 [AppError] for a named resource.
//
// Example:
//
//	apperr.NotFound("Post") // Returns "Post not found"
func NotFound(resource string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    resource + " not found",
		HTTPStatus: http.StatusNotFound,
	}
}

// Unauthorized creates a 401 [AppError].
func Unauthorized(msg string) *AppError {
	return &AppError{
		Code:       CodeUnauthorized,
		Message:    msg,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// Forbidden creates a 403 [AppError].
func Forbidden(msg string) *AppError {
	return &AppError{
		Code:       CodeForbidden,
		Message:    msg,
		HTTPStatus: http.StatusForbidden,
	}
}

// Conflict creates a 409 [AppError] for duplicates such as a taken email.
func Conflict(msg string) *AppError {
	return &AppError{
		Code:       CodeConflict,
		Message:    msg,
		HTTPStatus: http.StatusConflict,
	}
}

// ValidationError creates a 400 [AppError] with optional per-field details.
//
// Local form validation produces these without any network round trip.
func ValidationError(msg string, details ...FieldError) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

// RateLimited creates a 429 [AppError].
func RateLimited(msg string) *AppError {
	return &AppError{
		Code:       CodeRateLimited,
		Message:    msg,
		HTTPStatus: http.StatusTooManyRequests,
	}
}

// # Transport & Server Errors

// Network creates an [AppError] for a request that never got a response.
func Network(cause error) *AppError {
	return &AppError{
		Code:    CodeNetwork,
		Message: "Could not reach the server",
		Cause:   cause,
	}
}

// Internal creates an [AppError] wrapping an unexpected failure.
// The cause is stored for logging but is never shown to the user.
func Internal(cause error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    "An unexpected error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// FromStatus maps a non-2xx remote response onto the taxonomy.
//
// msg is the message extracted from the response body; when empty a generic
// message for the status class is used.
func FromStatus(status int, msg string) *AppError {
	fallback := func(def string) string {
		if strings.TrimSpace(msg) == "" {
			return def
		}
		return msg
	}

	switch {
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return ValidationError(fallback(MsgRejected))
	case status == http.StatusUnauthorized:
		return Unauthorized(fallback("Session expired"))
	case status == http.StatusForbidden:
		return Forbidden(fallback("You do not have permission to do that"))
	case status == http.StatusNotFound:
		e := NotFound("Resource")
		e.Message = fallback(e.Message)
		return e
	case status == http.StatusConflict:
		return Conflict(fallback("Resource already exists"))
	case status == http.StatusTooManyRequests:
		return RateLimited(fallback("Too many requests, try again later"))
	default:
		e := Internal(fmt.Errorf("remote status %d: %s", status, msg))
		e.HTTPStatus = status
		return e
	}
}

// # Helpers

// IsAppError reports whether err (or any error in its chain) is an [*AppError].
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// Wrap returns err as an [*AppError], wrapping foreign errors as Internal.
func Wrap(err error) *AppError {
	if err == nil {
		return nil
	}
	if ae := As(err); ae != nil {
		return ae
	}
	return Internal(err)
}

func hasCode(err error, code string) bool {
	ae := As(err)
	return ae != nil && ae.Code == code
}

// IsUnauthorized reports whether err is an authentication failure.
func IsUnauthorized(err error) bool { return hasCode(err, CodeUnauthorized) }

// IsForbidden reports whether err is an authorization failure.
func IsForbidden(err error) bool { return hasCode(err, CodeForbidden) }

// IsNotFound reports whether err is a not-found failure.
func IsNotFound(err error) bool { return hasCode(err, CodeNotFound) }

// IsNetwork reports whether err is a transport failure.
func IsNetwork(err error) bool { return hasCode(err, CodeNetwork) }

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool { return hasCode(err, CodeValidation) }

// Message returns the user-facing line for any error.
func Message(err error) string {
	if err == nil {
		return ""
	}
	return Wrap(err).Summary()
}
