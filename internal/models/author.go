// Copyright (c) 2026 CodeJourney. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// AuthorKind tags the shape an author arrived in.
type AuthorKind int

const (
	// AuthorNone means the remote API sent no author at all.
	AuthorNone AuthorKind = iota
	// AuthorRef is a raw identifier (or display name) string.
	AuthorRef
	// AuthorEmbedded is a populated user object.
	AuthorEmbedded
)

// fallbackName is shown when nothing better is known about an author.
const fallbackName = "Usuario"

// Author is the tagged variant Ref(id) | Embedded(User).
//
// The remote API populates the author of some documents and not others. The
// shape is resolved once during decoding so views never type-switch.
type Author struct {
	kind AuthorKind
	ref  string
	user User
}

// RefAuthor builds a Ref variant.
func RefAuthor(id string) Author {
	if id == "" {
		return Author{}
	}
	return Author{kind: AuthorRef, ref: id}
}

// EmbeddedAuthor builds an Embedded variant.
func EmbeddedAuthor(user User) Author {
	return Author{kind: AuthorEmbedded, user: user}
}

// Kind returns the variant tag.
func (a Author) Kind() AuthorKind { return a.kind }

// IsEmbedded reports whether a user object is available.
func (a Author) IsEmbedded() bool { return a.kind == AuthorEmbedded }

// User returns the embedded user, if any.
func (a Author) User() (User, bool) {
	return a.user, a.kind == AuthorEmbedded
}

// ID returns the author identifier for either variant.
func (a Author) ID() string {
	switch a.kind {
	case AuthorRef:
		return a.ref
	case AuthorEmbedded:
		return a.user.ID
	default:
		return ""
	}
}

// DisplayName is what views show as the author line.
//
// A Ref shows its raw string, as the post listing always has.
func (a Author) DisplayName() string {
	switch a.kind {
	case AuthorRef:
		return a.ref
	case AuthorEmbedded:
		if name := a.user.FullName(); name != "" {
			return name
		}
	}
	return fallbackName
}

// Initial is the avatar letter of the author.
func (a Author) Initial() string {
	switch a.kind {
	case AuthorRef:
		return User{Name: a.ref}.Initial()
	case AuthorEmbedded:
		return a.user.Initial()
	default:
		return "U"
	}
}

// Is reports whether the author is the given user id.
func (a Author) Is(userID string) bool {
	return userID != "" && a.ID() == userID
}

// UnmarshalJSON resolves the string-or-object shape.
func (a *Author) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*a = Author{}
		return nil
	case data[0] == '"':
		var ref string
		if err := json.Unmarshal(data, &ref); err != nil {
			return err
		}
		*a = RefAuthor(ref)
		return nil
	case data[0] == '{':
		var user User
		if err := json.Unmarshal(data, &user); err != nil {
			return err
		}
		*a = EmbeddedAuthor(user)
		return nil
	default:
		return fmt.Errorf("models: author must be a string or an object, got %s", data)
	}
}

// MarshalJSON writes the variant back in the shape it arrived in.
func (a Author) MarshalJSON() ([]byte, error) {
	switch a.kind {
	case AuthorRef:
		return json.Marshal(a.ref)
	case AuthorEmbedded:
		return json.Marshal(a.user)
	default:
		return []byte("null"), nil
	}
}

// MarshalYAML mirrors MarshalJSON for the yaml output format.
func (a Author) MarshalYAML() (interface{}, error) {
	switch a.kind {
	case AuthorRef:
		return a.ref, nil
	case AuthorEmbedded:
		return a.user, nil
	default:
		return nil, nil
	}
}
