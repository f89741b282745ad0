// Copyright (c) 2026 CodeJourney. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package remotetest runs an in-process fake of the CodeJourney remote API.

It speaks the same routes and envelopes as the real backend, including its
inconsistencies: authors are embedded objects in list and detail responses
but raw ids in "my posts" and freshly created comments.

Test knobs:

  - Seed users, posts and comments directly.
  - Fail a route with a fixed status and an empty body.
  - Revoke a token so the next profile lookup answers 401.
  - Inspect every recorded call.
*/
package remotetest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/taibuivan/codejourney/internal/models"
	"github.com/taibuivan/codejourney/internal/platform/constants"
	"github.com/taibuivan/codejourney/internal/platform/sec"
)

const (
	signingSecret = "remotetest-signing-secret-0123456789"
	issuer        = "codejourney-remotetest"

	// DefaultTokenTTL is the lifetime of tokens issued by login.
	DefaultTokenTTL = time.Hour
)

// Call is one request the fake received.
type Call struct {
	Method        string
	Path          string
	Authorization string
	RequestID     string
}

type userRecord struct {
	user         models.User
	passwordHash string
}

type postRecord struct {
	id        string
	title     string
	content   string
	image     string
	authorID  string
	createdAt time.Time
}

type commentRecord struct {
	id        string
	content   string
	authorID  string
	postID    string
	createdAt time.Time
}

// Server is a running fake. Its zero value is not usable; call [New].
type Server struct {
	*httptest.Server

	tokens *sec.TokenService

	mu          sync.Mutex
	sequence    int
	users       map[string]*userRecord
	posts       []*postRecord
	comments    []*commentRecord
	revoked     map[string]bool
	failures    map[string]int
	calls       []Call
	loginErrors string
	latency     time.Duration
}

// New starts a fake and stops it when the test ends.
func New(t testing.TB) *Server {
	t.Helper()

	tokens, err := sec.NewTokenService([]byte(signingSecret), issuer)
	if err != nil {
		t.Fatalf("remotetest: token service: %v", err)
	}

	server := &Server{
		tokens:   tokens,
		users:    map[string]*userRecord{},
		revoked:  map[string]bool{},
		failures: map[string]int{},
	}
	server.Server = httptest.NewServer(server.routes())
	t.Cleanup(server.Close)

	return server
}

func (server *Server) routes() http.Handler {
	router := chi.NewRouter()

	router.Use(server.record)
	router.Use(server.inject)
	router.Use(authenticate(server))

	router.Route("/api/users", func(users chi.Router) {
		users.Post("/login", server.login)
		users.Post("/register", server.register)
		users.Post("/validate-email", server.validateEmail)
		users.With(requireAuth).Get("/profile", server.profile)
		users.With(requireAuth).Put("/update/{userID}", server.updateUser)
	})

	router.Route("/api/posts", func(posts chi.Router) {
		posts.Get("/", server.listPosts)
		posts.With(requireAuth).Get("/user/posts", server.postsByUser)
		posts.With(requireAuth).Post("/create", server.createPost)
		posts.Get("/{postID}", server.getPost)
		posts.With(requireAuth).Put("/{postID}", server.updatePost)
		posts.With(requireAuth).Delete("/{postID}", server.deletePost)
	})

	router.Route("/api/comments", func(comments chi.Router) {
		comments.Get("/post/{postID}", server.commentsByPost)
		comments.With(requireAuth).Post("/create/{postID}", server.createComment)
		comments.Get("/{commentID}", server.getComment)
		comments.With(requireAuth).Put("/{commentID}", server.updateComment)
		comments.With(requireAuth).Delete("/{commentID}", server.deleteComment)
	})

	return router
}

// # Middleware

// record keeps the call and waits out the configured latency.
func (server *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		server.mu.Lock()
		server.calls = append(server.calls, Call{
			Method:        request.Method,
			Path:          request.URL.Path,
			Authorization: request.Header.Get(constants.HeaderAuthorization),
			RequestID:     request.Header.Get(constants.HeaderXRequestID),
		})
		latency := server.latency
		server.mu.Unlock()

		if latency > 0 {
			select {
			case <-time.After(latency):
			case <-request.Context().Done():
				return
			}
		}

		next.ServeHTTP(writer, request)
	})
}

// inject answers a failed route with its status and no body.
func (server *Server) inject(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		server.mu.Lock()
		status, failing := server.failures[request.Method+" "+request.URL.Path]
		server.mu.Unlock()

		if failing {
			writer.WriteHeader(status)
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// # Knobs

// Fail makes method+path answer status with an empty body until [Server.Heal].
func (server *Server) Fail(method, path string, status int) {
	server.mu.Lock()
	defer server.mu.Unlock()
	server.failures[method+" "+path] = status
}

// Heal removes every failure set with [Server.Fail].
func (server *Server) Heal() {
	server.mu.Lock()
	defer server.mu.Unlock()
	server.failures = map[string]int{}
}

// Revoke makes the server reject token from now on.
func (server *Server) Revoke(token string) {
	server.mu.Lock()
	defer server.mu.Unlock()
	server.revoked[token] = true
}

// LoginErrorInBody makes login answer 200 with {error: message}.
func (server *Server) LoginErrorInBody(message string) {
	server.mu.Lock()
	defer server.mu.Unlock()
	server.loginErrors = message
}

// SetLatency delays every response by d.
func (server *Server) SetLatency(d time.Duration) {
	server.mu.Lock()
	defer server.mu.Unlock()
	server.latency = d
}

// Calls returns a copy of every recorded call.
func (server *Server) Calls() []Call {
	server.mu.Lock()
	defer server.mu.Unlock()
	return append([]Call(nil), server.calls...)
}

// CallCount counts calls to method+path.
func (server *Server) CallCount(method, path string) int {
	count := 0
	for _, call := range server.Calls() {
		if call.Method == method && call.Path == path {
			count++
		}
	}
	return count
}

// ResetCalls forgets the recorded calls.
func (server *Server) ResetCalls() {
	server.mu.Lock()
	defer server.mu.Unlock()
	server.calls = nil
}

// # Seeding

// SeedUser stores an account and returns it.
func (server *Server) SeedUser(name, lastName, email, password string) models.User {
	hash, err := sec.HashPasswordCost(password, bcrypt.MinCost)
	if err != nil {
		panic(fmt.Sprintf("remotetest: hash: %v", err))
	}

	server.mu.Lock()
	defer server.mu.Unlock()

	user := models.User{ID: server.nextID(), Name: name, LastName: lastName, Email: email}
	server.users[user.ID] = &userRecord{user: user, passwordHash: hash}
	return user
}

// SeedPost stores a post owned by authorID.
func (server *Server) SeedPost(authorID, title, content string) models.Post {
	server.mu.Lock()
	defer server.mu.Unlock()

	record := &postRecord{
		id:        server.nextID(),
		title:     title,
		content:   content,
		authorID:  authorID,
		createdAt: server.now(),
	}
	server.posts = append(server.posts, record)
	return server.embedPost(record)
}

// SeedComment stores a comment by authorID on postID.
func (server *Server) SeedComment(authorID, postID, content string) models.Comment {
	server.mu.Lock()
	defer server.mu.Unlock()

	record := &commentRecord{
		id:        server.nextID(),
		content:   content,
		authorID:  authorID,
		postID:    postID,
		createdAt: server.now(),
	}
	server.comments = append(server.comments, record)
	return server.embedComment(record)
}

// Token issues a valid token for userID.
func (server *Server) Token(userID string) string {
	return server.TokenWithTTL(userID, DefaultTokenTTL)
}

// TokenWithTTL issues a token for userID. A negative ttl yields an expired token.
func (server *Server) TokenWithTTL(userID string, ttl time.Duration) string {
	token, err := server.tokens.GenerateAccessToken(userID, ttl)
	if err != nil {
		panic(fmt.Sprintf("remotetest: token: %v", err))
	}
	return token
}

// Post returns the stored post with embedded authors, if any.
func (server *Server) Post(postID string) (models.Post, bool) {
	server.mu.Lock()
	defer server.mu.Unlock()

	record := server.findPost(postID)
	if record == nil {
		return models.Post{}, false
	}
	return server.embedPost(record), true
}

// User returns the stored account, if any.
func (server *Server) User(userID string) (models.User, bool) {
	server.mu.Lock()
	defer server.mu.Unlock()

	record, ok := server.users[userID]
	if !ok {
		return models.User{}, false
	}
	return record.user, true
}

// # Internals (callers hold mu)

func (server *Server) nextID() string {
	server.sequence++
	return fmt.Sprintf("65f1c0ffee%014x", server.sequence)
}

func (server *Server) now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

func (server *Server) findPost(postID string) *postRecord {
	for _, record := range server.posts {
		if record.id == postID {
			return record
		}
	}
	return nil
}

func (server *Server) findComment(commentID string) *commentRecord {
	for _, record := range server.comments {
		if record.id == commentID {
			return record
		}
	}
	return nil
}

func (server *Server) userByEmail(email string) *userRecord {
	for _, record := range server.users {
		if record.user.Email == email {
			return record
		}
	}
	return nil
}

func (server *Server) author(authorID string) models.Author {
	if record, ok := server.users[authorID]; ok {
		return models.EmbeddedAuthor(record.user)
	}
	return models.RefAuthor(authorID)
}

func (server *Server) embedComment(record *commentRecord) models.Comment {
	created := record.createdAt
	return models.Comment{
		ID:        record.id,
		Content:   record.content,
		Author:    server.author(record.authorID),
		Post:      record.postID,
		CreatedAt: &created,
	}
}

func (server *Server) refComment(record *commentRecord) models.Comment {
	comment := server.embedComment(record)
	comment.Author = models.RefAuthor(record.authorID)
	return comment
}

func (server *Server) embedPost(record *postRecord) models.Post {
	created := record.createdAt
	post := models.Post{
		ID:        record.id,
		Title:     record.title,
		Content:   record.content,
		Image:     record.image,
		Author:    server.author(record.authorID),
		CreatedAt: &created,
		Comments:  []models.Comment{},
	}
	for _, comment := range server.comments {
		if comment.postID == record.id {
			post.Comments = append(post.Comments, server.embedComment(comment))
		}
	}
	return post
}

func (server *Server) refPost(record *postRecord) models.Post {
	post := server.embedPost(record)
	post.Author = models.RefAuthor(record.authorID)
	return post
}
