// Copyright (c) 2026 CodeJourney. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command codejourney is the terminal client of the CodeJourney blog.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables and flags.
//  3. Open the client-local token store (file, Redis or memory).
//  4. Build the remote API client.
//  5. Hydrate the session from the persisted token.
//  6. Wire the use cases and the output printer.
//  7. Run the command, then tear the session down.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// # Exit Codes

const (
	exitOK    = 0
	exitError = 1
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, newApp(os.Stdin, os.Stdout, os.Stderr), os.Args[1:])
	stop()
	os.Exit(code)
}

// execute runs one command line and returns the process exit code.
func execute(ctx context.Context, a *app, args []string) int {
	defer a.close()

	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}

	var already *reportedError
	switch {
	case errors.Is(err, context.Canceled):
	case errors.As(err, &already):
	default:
		a.report(err)
	}
	return exitError
}

// reportedError marks a failure the user has already been notified of.
type reportedError struct{ err error }

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	if err == nil {
		return nil
	}
	return &reportedError{err: err}
}

// report prints a failure that never reached a notifier, such as a bad flag
// or a configuration error raised before the session existed.
func (a *app) report(err error) {
	if a.notifier != nil {
		a.notifier.Error(err.Error())
		return
	}
	_, _ = fmt.Fprintln(a.stderr, "error:", err)
}
