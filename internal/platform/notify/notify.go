// Copyright (c) 2026 CodeJourney. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package notify delivers single-line user notifications ("toasts").

Every network-originating error ends its life here: the use case catches it,
logs it, and hands the user-safe message to a [Notifier]. Success messages
follow the same path so that commands never print directly.

Implementations:

  - Terminal: styled lines on a writer (lipgloss), colourless when NO_COLOR is set.
  - Recorder: keeps notifications in memory for assertions.
  - Discard: drops everything (hydration runs silently).
*/
package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Level classifies a notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

// Notification is a single delivered message.
type Notification struct {
	Level   Level
	Message string
}

// Notifier is the sink for user-facing messages.
type Notifier interface {
	Success(message string)
	Error(message string)
	Info(message string)
}

// # Terminal

// Terminal writes one styled line per notification.
type Terminal struct {
	mu     sync.Mutex
	out    io.Writer
	styles map[Level]lipgloss.Style
	icons  map[Level]string
}

// NewTerminal creates a Terminal notifier writing to out.
func NewTerminal(out io.Writer, noColor bool) *Terminal {
	base := lipgloss.NewStyle().Bold(true)
	styles := map[Level]lipgloss.Style{
		LevelSuccess: base.Foreground(lipgloss.Color("42")),
		LevelError:   base.Foreground(lipgloss.Color("196")),
		LevelInfo:    base.Foreground(lipgloss.Color("39")),
	}
	if noColor {
		for level := range styles {
			styles[level] = lipgloss.NewStyle()
		}
	}

	return &Terminal{
		out:    out,
		styles: styles,
		icons: map[Level]string{
			LevelSuccess: "✔",
			LevelError:   "✖",
			LevelInfo:    "•",
		},
	}
}

func (t *Terminal) write(level Level, message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, _ = fmt.Fprintf(t.out, "%s %s\n", t.styles[level].Render(t.icons[level]), message)
}

// Success implements [Notifier].
func (t *Terminal) Success(message string) { t.write(LevelSuccess, message) }

// Error implements [Notifier].
func (t *Terminal) Error(message string) { t.write(LevelError, message) }

// Info implements [Notifier].
func (t *Terminal) Info(message string) { t.write(LevelInfo, message) }

// # Recorder

// Recorder stores notifications in order.
type Recorder struct {
	mu    sync.Mutex
	items []Notification
}

func (r *Recorder) add(level Level, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, Notification{Level: level, Message: message})
}

// Success implements [Notifier].
func (r *Recorder) Success(message string) { r.add(LevelSuccess, message) }

// Error implements [Notifier].
func (r *Recorder) Error(message string) { r.add(LevelError, message) }

// Info implements [Notifier].
func (r *Recorder) Info(message string) { r.add(LevelInfo, message) }

// All returns a copy of every recorded notification.
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.items...)
}

// Last returns the most recent notification and whether there was one.
func (r *Recorder) Last() (Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.items) == 0 {
		return Notification{}, false
	}
	return r.items[len(r.items)-1], true
}

// Reset forgets every recorded notification.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = nil
}

// # Discard

type discard struct{}

func (discard) Success(string) {}
func (discard) Error(string)   {}
func (discard) Info(string)    {}

// Discard drops every notification.
var Discard Notifier = discard{}
