// Copyright (c) 2026 CodeJourney. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/codejourney/internal/platform/constants"
	"github.com/taibuivan/codejourney/internal/platform/sec"
)

// TokenStore persists the bearer token between runs.
//
// Get returns an empty string and a nil error when no token is stored.
type TokenStore interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, token string) error
	Delete(ctx context.Context) error
}

// # File Store

// FileTokenStore keeps the token in a small JSON key-value file, readable
// only by its owner.
type FileTokenStore struct {
	path string
	mu   sync.Mutex
}

// NewFileTokenStore returns a store backed by path. The file is created on
// the first Set.
func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

// Path returns the backing file.
func (store *FileTokenStore) Path() string { return store.path }

func (store *FileTokenStore) Get(_ context.Context) (string, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	values, err := store.read()
	if err != nil {
		return "", err
	}
	return values[constants.TokenKey], nil
}

func (store *FileTokenStore) Set(_ context.Context, token string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	values, err := store.read()
	if err != nil {
		// A corrupt file is replaced rather than blocking login forever.
		values = map[string]string{}
	}
	values[constants.TokenKey] = token
	return store.write(values)
}

func (store *FileTokenStore) Delete(_ context.Context) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	values, err := store.read()
	if err != nil {
		// Unreadable storage holds no usable token; remove it outright.
		if removeErr := os.Remove(store.path); removeErr != nil && !errors.Is(removeErr, fs.ErrNotExist) {
			return fmt.Errorf("session: remove %s: %w", store.path, removeErr)
		}
		return nil
	}
	if _, ok := values[constants.TokenKey]; !ok {
		return nil
	}
	delete(values, constants.TokenKey)
	return store.write(values)
}

func (store *FileTokenStore) read() (map[string]string, error) {
	values := map[string]string{}

	data, err := os.ReadFile(store.path)
	if errors.Is(err, fs.ErrNotExist) {
		return values, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session: read %s: %w", store.path, err)
	}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("session: decode %s: %w", store.path, err)
	}
	return values, nil
}

// write replaces the file atomically so a watcher never sees a partial file.
func (store *FileTokenStore) write(values map[string]string) error {
	dir := filepath.Dir(store.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("session: create %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("session: encode storage: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(store.path)+".*")
	if err != nil {
		return fmt.Errorf("session: temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("session: write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("session: chmod %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("session: close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), store.path); err != nil {
		return fmt.Errorf("session: replace %s: %w", store.path, err)
	}
	return nil
}

// # Redis Store

// RedisTokenStore keeps the token under a single Redis key so several
// terminals can share one session.
type RedisTokenStore struct {
	client redis.UniversalClient
	key    string
	now    func() time.Time
}

// NewRedisTokenStore returns a store using the key
// "codejourney:storage:token".
func NewRedisTokenStore(client redis.UniversalClient) *RedisTokenStore {
	return &RedisTokenStore{
		client: client,
		key:    constants.RedisPrefixStorage + constants.TokenKey,
		now:    time.Now,
	}
}

// Key returns the Redis key holding the token.
func (store *RedisTokenStore) Key() string { return store.key }

func (store *RedisTokenStore) Get(ctx context.Context) (string, error) {
	token, err := store.client.Get(ctx, store.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("session: redis get: %w", err)
	}
	return token, nil
}

// Set stores the token. A JWT expires from Redis together with its exp claim.
func (store *RedisTokenStore) Set(ctx context.Context, token string) error {
	var ttl time.Duration
	if info := sec.InspectToken(token); info.IsJWT && !info.ExpiresAt.IsZero() {
		ttl = info.ExpiresAt.Sub(store.now())
		if ttl <= 0 {
			return store.Delete(ctx)
		}
	}

	if err := store.client.Set(ctx, store.key, token, ttl).Err(); err != nil {
		return fmt.Errorf("session: redis set: %w", err)
	}
	return nil
}

func (store *RedisTokenStore) Delete(ctx context.Context) error {
	if err := store.client.Del(ctx, store.key).Err(); err != nil {
		return fmt.Errorf("session: redis del: %w", err)
	}
	return nil
}

// # Memory Store

// MemoryTokenStore keeps the token for the lifetime of the process.
type MemoryTokenStore struct {
	mu    sync.Mutex
	token string
}

// NewMemoryTokenStore returns a store preloaded with token, which may be empty.
func NewMemoryTokenStore(token string) *MemoryTokenStore {
	return &MemoryTokenStore{token: token}
}

func (store *MemoryTokenStore) Get(_ context.Context) (string, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.token, nil
}

func (store *MemoryTokenStore) Set(_ context.Context, token string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.token = token
	return nil
}

func (store *MemoryTokenStore) Delete(_ context.Context) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.token = ""
	return nil
}
