// Copyright (c) 2026 CodeJourney. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/taibuivan/codejourney/internal/comments"
	"github.com/taibuivan/codejourney/internal/platform/config"
	"github.com/taibuivan/codejourney/internal/platform/constants"
	"github.com/taibuivan/codejourney/internal/platform/ctxutil"
	"github.com/taibuivan/codejourney/internal/platform/notify"
	redisstore "github.com/taibuivan/codejourney/internal/platform/redis"
	"github.com/taibuivan/codejourney/internal/posts"
	"github.com/taibuivan/codejourney/internal/remote"
	"github.com/taibuivan/codejourney/internal/render"
	"github.com/taibuivan/codejourney/internal/session"
	"github.com/taibuivan/codejourney/pkg/uuidv7"
)

// overrides are the persistent flags that take precedence over the environment.
type overrides struct {
	apiURL   string
	output   string
	pageSize int
}

// app holds every dependency of a single command invocation.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	input  *bufio.Reader

	loadConfig func() (*config.Config, error)
	flags      overrides

	cfg       *config.Config
	log       *slog.Logger
	notifier  notify.Notifier
	store     session.TokenStore
	fileStore *session.FileTokenStore
	client    *remote.Client
	session   *session.Manager
	watcher   *session.Watcher
	posts     *posts.Service
	comments  *comments.Service
	printer   *render.Printer

	closers []func() error
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *app {
	return &app{
		stdin:      stdin,
		stdout:     stdout,
		stderr:     stderr,
		input:      bufio.NewReader(stdin),
		loadConfig: config.Load,
		log:        slog.New(slog.DiscardHandler),
	}
}

// start wires the client. Interactive commands own the terminal, so their
// notifications and default log output are muted.
func (a *app) start(ctx context.Context, interactive bool) error {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// The terminal only gets errors until the configuration says where
	// logs belong; everything a user must see goes through the notifier.
	a.log = newLogger(a.stderr, slog.LevelError)

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	if err := a.applyOverrides(cfg); err != nil {
		return err
	}
	a.cfg = cfg

	if err := a.configureLogger(cfg, interactive); err != nil {
		return err
	}
	a.log.Debug("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("api_url", cfg.APIURL),
		slog.String("token_store", cfg.TokenStore),
	)

	startupCtx, cancel := context.WithTimeout(ctx, constants.StartupTimeout)
	defer cancel()

	// ── 3. Token Store ────────────────────────────────────────────────────
	if err := a.openStore(startupCtx, cfg); err != nil {
		return err
	}

	// ── 4. Remote API ─────────────────────────────────────────────────────
	a.client, err = remote.New(remote.Options{
		BaseURL:        cfg.APIURL,
		Timeout:        cfg.RequestTimeout,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
		Logger:         a.log,
	})
	if err != nil {
		return err
	}

	// ── 5. Session ────────────────────────────────────────────────────────
	a.notifier = notify.NewTerminal(a.stderr, cfg.NoColor)
	if interactive {
		a.notifier = notify.Discard
	}
	a.session = session.New(a.store, a.client, a.notifier, a.log)

	// Hydration is silent: a stale token simply leaves the user logged out.
	if err := a.session.Initialize(a.context(startupCtx)); err != nil {
		a.log.Debug("session_hydration_failed", slog.Any("error", err))
	}

	if interactive && a.fileStore != nil {
		watcher, err := session.NewWatcher(a.session, a.fileStore, a.log)
		if err != nil {
			a.log.Warn("token_watcher_unavailable", slog.Any("error", err))
		} else if err := watcher.Start(ctx); err != nil {
			a.log.Warn("token_watcher_unavailable", slog.Any("error", err))
			_ = watcher.Close()
		} else {
			a.watcher = watcher
		}
	}

	// ── 6. Use Cases ──────────────────────────────────────────────────────
	a.posts = posts.NewService(a.client, a.session, a.log, cfg.PageSize)
	a.comments = comments.NewService(a.client, a.session, a.log)

	a.printer, err = render.New(a.stdout, cfg.Output, cfg.NoColor)
	return err
}

func (a *app) applyOverrides(cfg *config.Config) error {
	if a.flags.apiURL != "" {
		cfg.APIURL = a.flags.apiURL
	}
	if a.flags.output != "" {
		cfg.Output = a.flags.output
	}
	if a.flags.pageSize > 0 {
		cfg.PageSize = a.flags.pageSize
	}
	return cfg.Validate()
}

func (a *app) configureLogger(cfg *config.Config, interactive bool) error {
	var (
		out   = a.stderr
		level = slog.LevelError
	)

	if cfg.LogFile != "" {
		file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		a.closers = append(a.closers, file.Close)
		out, level = file, slog.LevelInfo
	} else if interactive {
		a.log = slog.New(slog.DiscardHandler)
		slog.SetDefault(a.log)
		return nil
	}

	if cfg.Debug {
		level = slog.LevelDebug
	}
	a.log = newLogger(out, level)
	a.log.Debug("debug_logging_enabled")
	return nil
}

func (a *app) openStore(ctx context.Context, cfg *config.Config) error {
	switch cfg.TokenStore {
	case config.StoreRedis:
		client, err := redisstore.NewClient(ctx, cfg.RedisURL, a.log)
		if err != nil {
			return err
		}
		a.closers = append(a.closers, client.Close)
		a.store = session.NewRedisTokenStore(client)
	case config.StoreMemory:
		a.store = session.NewMemoryTokenStore("")
	default:
		a.fileStore = session.NewFileTokenStore(cfg.TokenFile)
		a.store = a.fileStore
	}
	return nil
}

// context tags ctx with one request id for every remote call of a command.
func (a *app) context(ctx context.Context) context.Context {
	ctx = ctxutil.WithRequestID(ctx, uuidv7.New())
	return ctxutil.WithLogger(ctx, a.log)
}

func (a *app) close() {
	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			a.log.Warn("token_watcher_close_failed", slog.Any("error", err))
		}
	}
	if a.session != nil {
		_ = a.session.Close()
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.log.Warn("close_failed", slog.Any("error", err))
		}
	}
	a.closers = nil
}

func newLogger(out io.Writer, level slog.Level) *slog.Logger {
	log := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", constants.AppName))
	slog.SetDefault(log)
	return log
}
