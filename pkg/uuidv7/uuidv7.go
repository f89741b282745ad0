// Copyright (c) 2026 CodeJourney. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package uuidv7 wraps google/uuid to generate time-ordered UUIDv7 values.
//
// # Usage
//
// Every outbound call to the remote API carries one in X-Request-ID. Being
// time-sortable, the ids order a client log without a timestamp column.
package uuidv7

import "github.com/google/uuid"

// New generates a new UUIDv7 string.
//
// If the time-ordered generator fails it falls back to a random UUIDv4; a
// correlation id is never worth aborting a request for.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return id.String()
}
