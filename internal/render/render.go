// Copyright (c) 2026 CodeJourney. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package render writes command results for humans or machines.

Formats:

  - text: lipgloss-styled listings with post bodies rendered as markdown.
  - json and yaml: the same data, stable field names, no styling.
*/
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"

	"github.com/taibuivan/codejourney/internal/comments"
	"github.com/taibuivan/codejourney/internal/models"
	"github.com/taibuivan/codejourney/internal/platform/config"
	"github.com/taibuivan/codejourney/internal/posts"
	"github.com/taibuivan/codejourney/pkg/pagination"
)

const (
	dateLayout = "02 Jan 2006"
	wrapWidth  = 80
)

// Printer writes results in one format.
type Printer struct {
	out      io.Writer
	format   string
	markdown *glamour.TermRenderer
	styles   styles
}

type styles struct {
	title    lipgloss.Style
	muted    lipgloss.Style
	accent   lipgloss.Style
	current  lipgloss.Style
	disabled lipgloss.Style
	badge    lipgloss.Style
}

// New returns a printer for format (text, json or yaml).
func New(out io.Writer, format string, noColor bool) (*Printer, error) {
	switch format {
	case config.OutputText, config.OutputJSON, config.OutputYAML:
	case "":
		format = config.OutputText
	default:
		return nil, fmt.Errorf("render: unknown format %q", format)
	}

	renderer := lipgloss.NewRenderer(out)
	if noColor {
		renderer.SetColorProfile(termenv.Ascii)
	}

	printer := &Printer{
		out:    out,
		format: format,
		styles: styles{
			title:    renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
			muted:    renderer.NewStyle().Foreground(lipgloss.Color("8")),
			accent:   renderer.NewStyle().Foreground(lipgloss.Color("10")),
			current:  renderer.NewStyle().Bold(true).Underline(true),
			disabled: renderer.NewStyle().Foreground(lipgloss.Color("8")).Faint(true),
			badge:    renderer.NewStyle().Foreground(lipgloss.Color("11")),
		},
	}

	if format == config.OutputText {
		style := glamour.WithAutoStyle()
		if noColor {
			style = glamour.WithStylePath("notty")
		}
		// Without a renderer post bodies are printed as-is.
		printer.markdown, _ = glamour.NewTermRenderer(style, glamour.WithWordWrap(wrapWidth))
	}

	return printer, nil
}

// Format returns the output format.
func (printer *Printer) Format() string { return printer.format }

// # Machine Formats

func (printer *Printer) encode(value any) error {
	switch printer.format {
	case config.OutputJSON:
		encoder := json.NewEncoder(printer.out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(value)
	case config.OutputYAML:
		encoder := yaml.NewEncoder(printer.out)
		encoder.SetIndent(2)
		if err := encoder.Encode(value); err != nil {
			return err
		}
		return encoder.Close()
	}
	return fmt.Errorf("render: %s is not a machine format", printer.format)
}

func (printer *Printer) machine() bool { return printer.format != config.OutputText }

// # Posts

type postPage struct {
	Posts []models.Post   `json:"posts" yaml:"posts"`
	Meta  pagination.Meta `json:"meta"  yaml:"meta"`
}

// Page writes one page of posts followed by its controls.
func (printer *Printer) Page(page pagination.Page[models.Post]) error {
	if printer.machine() {
		return printer.encode(postPage{Posts: page.Items, Meta: page.Meta})
	}

	if len(page.Items) == 0 {
		_, err := fmt.Fprintln(printer.out, printer.styles.muted.Render("No posts yet."))
		return err
	}

	var b strings.Builder
	for i, post := range page.Items {
		printer.postLine(&b, page.First()+i, post)
	}
	if page.ShowControls() {
		b.WriteString("\n")
		b.WriteString(printer.Controls(page.Meta))
		b.WriteString("\n")
	}
	b.WriteString(printer.styles.muted.Render(
		fmt.Sprintf("Showing %d-%d of %d", page.First(), page.Last(), page.Meta.Total)))
	b.WriteString("\n")

	_, err := io.WriteString(printer.out, b.String())
	return err
}

// Posts writes an unpaginated list, such as the caller's own posts.
func (printer *Printer) Posts(list []models.Post) error {
	if printer.machine() {
		return printer.encode(map[string][]models.Post{"posts": list})
	}
	if len(list) == 0 {
		_, err := fmt.Fprintln(printer.out, printer.styles.muted.Render("No posts yet."))
		return err
	}

	var b strings.Builder
	for i, post := range list {
		printer.postLine(&b, i+1, post)
	}
	_, err := io.WriteString(printer.out, b.String())
	return err
}

func (printer *Printer) postLine(b *strings.Builder, position int, post models.Post) {
	fmt.Fprintf(b, "%3d. %s\n", position, printer.styles.title.Render(post.Title))
	fmt.Fprintf(b, "     %s\n", printer.styles.muted.Render(strings.Join([]string{
		post.Author.DisplayName(),
		date(post.CreatedAt),
		plural(post.CommentCount(), "comment"),
		post.ID,
	}, " · ")))
}

// Controls renders "‹ Prev  1 [2] 3  Next ›" with disabled ends greyed out.
func (printer *Printer) Controls(meta pagination.Meta) string {
	page := pagination.Page[models.Post]{Meta: meta}

	prev := printer.styles.accent.Render("‹ Prev")
	if !page.HasPrev() {
		prev = printer.styles.disabled.Render("‹ Prev")
	}
	next := printer.styles.accent.Render("Next ›")
	if !page.HasNext() {
		next = printer.styles.disabled.Render("Next ›")
	}

	numbers := make([]string, 0, meta.TotalPages)
	for _, number := range page.Numbers() {
		label := strconv.Itoa(number)
		if number == meta.Page {
			label = printer.styles.current.Render("[" + label + "]")
		}
		numbers = append(numbers, label)
	}

	return prev + "  " + strings.Join(numbers, " ") + "  " + next
}

// # Post Detail

type commentView struct {
	models.Comment       `yaml:",inline"`
	comments.Affordances `yaml:",inline"`
}

// MarshalJSON flattens the comment and its affordances into one object.
func (view commentView) MarshalJSON() ([]byte, error) {
	type flat struct {
		ID        string        `json:"_id,omitempty"`
		Content   string        `json:"content"`
		Author    models.Author `json:"author"`
		Post      string        `json:"post,omitempty"`
		CreatedAt *time.Time    `json:"createdAt,omitempty"`
		CanEdit   bool          `json:"canEdit"`
		CanDelete bool          `json:"canDelete"`
	}
	return json.Marshal(flat{
		ID: view.ID, Content: view.Content, Author: view.Author, Post: view.Post,
		CreatedAt: view.CreatedAt, CanEdit: view.CanEdit, CanDelete: view.CanDelete,
	})
}

type detailView struct {
	Post     models.Post   `json:"post"     yaml:"post"`
	Comments []commentView `json:"comments" yaml:"comments"`
}

// Detail writes a post, its markdown body, and its comments. Comments the
// viewer wrote are marked as editable.
func (printer *Printer) Detail(detail posts.Detail, viewer *models.User) error {
	views := make([]commentView, 0, len(detail.Comments))
	for _, comment := range detail.Comments {
		views = append(views, commentView{Comment: comment, Affordances: comments.AffordancesFor(viewer, comment)})
	}

	if printer.machine() {
		post := detail.Post
		post.Comments = nil
		return printer.encode(detailView{Post: post, Comments: views})
	}

	var b strings.Builder
	post := detail.Post
	b.WriteString(printer.styles.title.Render(post.Title) + "\n")
	b.WriteString(printer.styles.muted.Render(post.Author.DisplayName()+" · "+date(post.CreatedAt)) + "\n")
	if post.Image != "" {
		b.WriteString(printer.styles.muted.Render("Image: "+post.Image) + "\n")
	}
	b.WriteString(printer.markdownOf(post.Content))

	b.WriteString("\n" + printer.styles.title.Render(fmt.Sprintf("Comments (%d)", len(views))) + "\n")
	if len(views) == 0 {
		b.WriteString(printer.styles.muted.Render("Be the first to comment.") + "\n")
	}
	for _, view := range views {
		header := fmt.Sprintf("[%s] %s · %s", view.Author.Initial(), view.Author.DisplayName(), date(view.CreatedAt))
		if view.CanEdit {
			header += " " + printer.styles.badge.Render("(you · id "+view.ID+")")
		}
		b.WriteString(printer.styles.muted.Render(header) + "\n")
		b.WriteString("  " + view.Content + "\n")
	}

	_, err := io.WriteString(printer.out, b.String())
	return err
}

func (printer *Printer) markdownOf(content string) string {
	if printer.markdown != nil {
		if rendered, err := printer.markdown.Render(content); err == nil {
			return rendered
		}
	}
	return "\n" + content + "\n"
}

// # Users & Comments

type whoami struct {
	Status string       `json:"status"         yaml:"status"`
	User   *models.User `json:"user,omitempty" yaml:"user,omitempty"`
}

// User writes the session status and, when present, the user.
func (printer *Printer) User(status string, user *models.User) error {
	if printer.machine() {
		return printer.encode(whoami{Status: status, User: user})
	}
	if user == nil {
		_, err := fmt.Fprintln(printer.out, printer.styles.muted.Render("Not logged in ("+status+")"))
		return err
	}
	_, err := fmt.Fprintf(printer.out, "%s %s\n%s\n",
		printer.styles.badge.Render("["+user.Initial()+"]"),
		printer.styles.title.Render(user.FullName()),
		printer.styles.muted.Render(user.Email+" · "+user.ID),
	)
	return err
}

// Comment writes a single comment.
func (printer *Printer) Comment(comment models.Comment) error {
	if printer.machine() {
		return printer.encode(comment)
	}
	_, err := fmt.Fprintf(printer.out, "%s\n  %s\n",
		printer.styles.muted.Render(comment.Author.DisplayName()+" · "+date(comment.CreatedAt)+" · "+comment.ID),
		comment.Content,
	)
	return err
}

// Post writes a single post header, used after create and edit.
func (printer *Printer) Post(post models.Post) error {
	if printer.machine() {
		return printer.encode(post)
	}
	var b strings.Builder
	printer.postLine(&b, 1, post)
	_, err := io.WriteString(printer.out, b.String())
	return err
}

func date(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return t.Local().Format(dateLayout)
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
