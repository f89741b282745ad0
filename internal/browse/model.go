// Copyright (c) 2026 CodeJourney. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package browse is the interactive home page: a paginated post list with a
detail view, driven by bubbletea.

The model shows a loading placeholder until both the session has finished
hydrating and the first list has arrived. Session changes (a login in another
terminal, an expired token) reach the model as messages sent by the program
owner through [SessionChanged].
*/
package browse

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/taibuivan/codejourney/internal/models"
	"github.com/taibuivan/codejourney/internal/platform/apperr"
	"github.com/taibuivan/codejourney/internal/platform/config"
	"github.com/taibuivan/codejourney/internal/posts"
	"github.com/taibuivan/codejourney/internal/render"
	"github.com/taibuivan/codejourney/internal/session"
	"github.com/taibuivan/codejourney/pkg/pagination"
)

// Source is what the browser reads posts from. [*posts.Service] satisfies it.
type Source interface {
	List(ctx context.Context) ([]models.Post, error)
	Get(ctx context.Context, ref string) (*posts.Detail, error)
}

// # Messages

type sessionMsg session.Snapshot

type postsLoadedMsg struct {
	posts []models.Post
	err   error
}

type detailLoadedMsg struct {
	detail *posts.Detail
	err    error
}

// SessionChanged wraps a session snapshot for [tea.Program.Send].
func SessionChanged(snapshot session.Snapshot) tea.Msg { return sessionMsg(snapshot) }

// Model is the bubbletea model of the browser.
type Model struct {
	ctx     context.Context
	source  Source
	noColor bool
	keys    keyMap
	styles  styles

	session   session.Snapshot
	paginator paginator.Model
	posts     []models.Post
	loaded    bool
	cursor    int
	detail    *posts.Detail
	opening   bool
	err       error
}

type styles struct {
	header   lipgloss.Style
	selected lipgloss.Style
	muted    lipgloss.Style
	failure  lipgloss.Style
}

// New builds a browser over source with pageSize posts per page.
func New(ctx context.Context, source Source, snapshot session.Snapshot, pageSize int, noColor bool) Model {
	if pageSize < 1 {
		pageSize = pagination.DefaultLimit
	}

	pages := paginator.New(paginator.WithPerPage(pageSize))
	pages.Type = paginator.Arabic

	st := styles{
		header:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		failure:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
	if noColor {
		plain := lipgloss.NewStyle()
		st = styles{header: plain, selected: plain, muted: plain, failure: plain}
	}

	return Model{
		ctx:       ctx,
		source:    source,
		noColor:   noColor,
		keys:      defaultKeys(),
		styles:    st,
		session:   snapshot,
		paginator: pages,
	}
}

// Init starts loading the post list.
func (m Model) Init() tea.Cmd { return m.load() }

func (m Model) load() tea.Cmd {
	ctx, source := m.ctx, m.source
	return func() tea.Msg {
		list, err := source.List(ctx)
		return postsLoadedMsg{posts: list, err: err}
	}
}

func (m Model) open(id string) tea.Cmd {
	ctx, source := m.ctx, m.source
	return func() tea.Msg {
		detail, err := source.Get(ctx, id)
		return detailLoadedMsg{detail: detail, err: err}
	}
}

// Ready reports whether the list is shown instead of the placeholder.
func (m Model) Ready() bool { return m.session.Initialized && m.loaded }

// Page is the current page, 1-indexed.
func (m Model) Page() int { return m.paginator.Page + 1 }

// Selected returns the post under the cursor.
func (m Model) Selected() (models.Post, bool) {
	visible := m.visible()
	if m.cursor < 0 || m.cursor >= len(visible) {
		return models.Post{}, false
	}
	return visible[m.cursor], true
}

func (m Model) visible() []models.Post {
	if len(m.posts) == 0 {
		return nil
	}
	start, end := m.paginator.GetSliceBounds(len(m.posts))
	return m.posts[start:end]
}

// Update handles one message.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionMsg:
		m.session = session.Snapshot(msg)
		return m, nil

	case postsLoadedMsg:
		m.loaded = true
		m.err = msg.err
		if msg.err == nil {
			m.posts = msg.posts
		}
		if len(m.posts) == 0 {
			m.paginator.TotalPages, m.paginator.Page = 1, 0
		} else {
			m.paginator.SetTotalPages(len(m.posts))
		}
		if m.paginator.Page >= m.paginator.TotalPages {
			m.paginator.Page = m.paginator.TotalPages - 1
		}
		m.cursor = min(m.cursor, max(len(m.visible())-1, 0))
		return m, nil

	case detailLoadedMsg:
		m.opening = false
		m.err = msg.err
		m.detail = msg.detail
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	if m.detail != nil {
		if key.Matches(msg, m.keys.Back) {
			m.detail = nil
		}
		return m, nil
	}
	if !m.Ready() || m.opening {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.visible())-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Prev):
		if !m.paginator.OnFirstPage() {
			m.paginator.PrevPage()
			m.cursor = 0
		}
	case key.Matches(msg, m.keys.Next):
		if !m.paginator.OnLastPage() {
			m.paginator.NextPage()
			m.cursor = 0
		}
	case key.Matches(msg, m.keys.Reload):
		m.err = nil
		return m, m.load()
	case key.Matches(msg, m.keys.Open):
		if post, ok := m.Selected(); ok {
			m.opening = true
			m.err = nil
			return m, m.open(post.ID)
		}
	}
	return m, nil
}

// View renders the current screen.
func (m Model) View() string {
	if !m.Ready() {
		return m.styles.muted.Render("Loading posts...") + "\n"
	}

	var b strings.Builder
	b.WriteString(m.styles.header.Render("CodeJourney") + "  " + m.styles.muted.Render(m.identity()) + "\n\n")

	if m.detail != nil {
		b.WriteString(m.renderDetail())
		b.WriteString("\n" + m.help(m.keys.detailHelp()) + "\n")
		return b.String()
	}

	visible := m.visible()
	if len(visible) == 0 {
		b.WriteString(m.styles.muted.Render("No posts yet.") + "\n")
	}
	for i, post := range visible {
		title := "  " + post.Title
		if i == m.cursor {
			title = m.styles.selected.Render("> " + post.Title)
		}
		b.WriteString(title + m.styles.muted.Render("  "+post.Author.DisplayName()) + "\n")
	}

	if m.paginator.TotalPages > 1 {
		b.WriteString("\n" + m.controls() + "\n")
	}
	if m.opening {
		b.WriteString(m.styles.muted.Render("Opening...") + "\n")
	}
	if m.err != nil {
		b.WriteString(m.styles.failure.Render(apperr.Message(m.err)) + "\n")
	}
	b.WriteString("\n" + m.help(m.keys.listHelp()) + "\n")
	return b.String()
}

func (m Model) identity() string {
	if m.session.User != nil {
		return "Signed in as " + m.session.User.FullName()
	}
	return "Browsing anonymously"
}

func (m Model) controls() string {
	var sink strings.Builder
	printer, err := render.New(&sink, config.OutputText, m.noColor)
	if err != nil {
		return m.paginator.View()
	}
	return printer.Controls(pagination.NewMeta(m.Page(), m.paginator.PerPage, len(m.posts)))
}

func (m Model) renderDetail() string {
	var out strings.Builder
	printer, err := render.New(&out, config.OutputText, m.noColor)
	if err == nil {
		err = printer.Detail(*m.detail, m.session.User)
	}
	if err != nil {
		return m.styles.failure.Render(err.Error()) + "\n"
	}
	return out.String()
}

func (m Model) help(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		h := binding.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return m.styles.muted.Render(strings.Join(parts, " · "))
}
