// Copyright (c) 2026 CodeJourney. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package models defines the entities exchanged with the remote API.
//
// # Ownership
//
// Every entity here is owned by the remote API. The client decodes it at the
// API boundary, keeps it in memory for the current view, and never caches it.
package models

import (
	"encoding/json"
	"strings"
	"unicode/utf8"
)

// User is the identity record of a community member.
//
// The remote API identifies documents with "_id"; "id" is accepted as well.
type User struct {
	ID       string `json:"_id"             yaml:"id"`
	Name     string `json:"name"            yaml:"name"`
	LastName string `json:"lastName"        yaml:"lastName"`
	Email    string `json:"email,omitempty" yaml:"email,omitempty"`
}

// UnmarshalJSON accepts both "_id" and "id" as the identifier.
func (u *User) UnmarshalJSON(data []byte) error {
	type plain User
	var aux struct {
		plain
		AltID string `json:"id"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*u = User(aux.plain)
	if u.ID == "" {
		u.ID = aux.AltID
	}
	return nil
}

// FullName joins name and last name, skipping empty parts.
func (u User) FullName() string {
	return strings.TrimSpace(u.Name + " " + u.LastName)
}

// Initial is the first letter of the name, used as an avatar placeholder.
func (u User) Initial() string {
	r, size := utf8.DecodeRuneInString(strings.TrimSpace(u.Name))
	if size == 0 {
		return "U"
	}
	return strings.ToUpper(string(r))
}

// UserUpdate is a partial profile update. Nil fields are left untouched.
type UserUpdate struct {
	Name     *string `json:"name,omitempty"`
	LastName *string `json:"lastName,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
}

// IsEmpty reports whether the update changes nothing.
func (u UserUpdate) IsEmpty() bool {
	return u.Name == nil && u.LastName == nil && u.Email == nil && u.Password == nil
}

// Registration is the payload of a new account. The confirmation field of the
// form never leaves the client.
type Registration struct {
	Name     string `json:"name"`
	LastName string `json:"lastName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
