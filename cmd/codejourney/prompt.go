// Copyright (c) 2026 CodeJourney. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// prompt asks for one line on stderr and reads it from stdin.
func (a *app) prompt(label string) (string, error) {
	_, _ = fmt.Fprintf(a.stderr, "%s: ", label)
	line, err := a.input.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("read %s: %w", strings.ToLower(label), err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// secret reads a password without echo when stdin is a terminal, and as a
// plain line otherwise (pipes, tests).
func (a *app) secret(label string) (string, error) {
	file, ok := a.stdin.(*os.File)
	if !ok || !term.IsTerminal(int(file.Fd())) {
		return a.prompt(label)
	}

	_, _ = fmt.Fprintf(a.stderr, "%s: ", label)
	raw, err := term.ReadPassword(int(file.Fd()))
	_, _ = fmt.Fprintln(a.stderr)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", strings.ToLower(label), err)
	}
	return string(raw), nil
}

// valueOr returns value, or prompts for it when empty.
func (a *app) valueOr(value, label string) (string, error) {
	if value != "" {
		return value, nil
	}
	return a.prompt(label)
}

// readText resolves free text from args, a file ("-" for stdin), or a prompt.
func (a *app) readText(args []string, path, label string) (string, error) {
	switch {
	case len(args) > 0:
		return strings.Join(args, " "), nil
	case path == "-":
		raw, err := io.ReadAll(a.input)
		return string(raw), err
	case path != "":
		raw, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", path, err)
		}
		return string(raw), nil
	default:
		return a.prompt(label)
	}
}

// confirm asks a yes/no question; anything but "y" or "yes" is a no.
func (a *app) confirm(question string) (bool, error) {
	answer, err := a.prompt(question + " [y/N]")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
