// Copyright (c) 2026 CodeJourney. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire client.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between the session, the remote API client, and the command layer.

Categories:

  - Client Timing: Per-call and startup deadlines.
  - Rate Limiting: Outbound token bucket defaults.
  - Session: The persisted storage key and store prefixes.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "codejourney"
	AppVersion = "0.1.0-dev"
)

// # Client Timing

const (
	// DefaultRequestTimeout is the deadline for a single call to the remote API.
	DefaultRequestTimeout = 15 * time.Second

	// StartupTimeout bounds session hydration when the process starts.
	StartupTimeout = 30 * time.Second

	// WatchDebounce collapses bursts of file events on the token store.
	WatchDebounce = 250 * time.Millisecond
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the outbound requests per second towards the remote API.
	DefaultRateLimitRPS = 5.0

	// DefaultRateLimitBurst is the maximum burst allowed for the outbound limiter.
	DefaultRateLimitBurst = 10
)

// # Session

const (
	// TokenKey is the single fixed key under which the bearer token is persisted.
	TokenKey = "token"

	// RedisPrefixStorage namespaces the client-local storage inside a shared Redis.
	RedisPrefixStorage = "codejourney:storage:"

	// DefaultStorageDir is the directory, relative to $HOME, of the file store.
	DefaultStorageDir = ".codejourney"

	// DefaultStorageFile is the file name of the file-backed key-value store.
	DefaultStorageFile = "storage.json"
)

// # Listing

const (
	// PostsPerPage is the default page size of the post list.
	PostsPerPage = 9
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
	HeaderUserAgent     = "User-Agent"

	BearerPrefix    = "Bearer "
	ContentTypeJSON = "application/json"
)

// # Navigation

const (
	// RoutePosts is where the client lands after creating a post.
	RoutePosts = "/posts"

	// RouteLogin is where protected views send unauthenticated users.
	RouteLogin = "/login"

	// RouteHome is where the client lands after a successful login.
	RouteHome = "/"
)
