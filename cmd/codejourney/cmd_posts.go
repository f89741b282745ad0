// Copyright (c) 2026 CodeJourney. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/taibuivan/codejourney/internal/forms"
	"github.com/taibuivan/codejourney/internal/platform/apperr"
)

func newPostsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "posts",
		Aliases: []string{"post"},
		Short:   "Read and write blog posts",
	}
	cmd.AddCommand(
		newPostsListCmd(a),
		newPostsShowCmd(a),
		newPostsMineCmd(a),
		newPostsCreateCmd(a),
		newPostsEditCmd(a),
		newPostsDeleteCmd(a),
	)
	return cmd
}

func newPostsListCmd(a *app) *cobra.Command {
	var (
		page   int
		search string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List posts, one page at a time",
		Example: `  codejourney posts list --page 2
  codejourney posts list --search "programacion"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := a.posts.Search(a.context(cmd.Context()), search, page)
			if err != nil {
				return reported(err)
			}
			return a.printer.Page(result)
		},
	}

	cmd.Flags().IntVarP(&page, "page", "p", 1, "page number, 1-indexed")
	cmd.Flags().StringVarP(&search, "search", "s", "", "only posts whose title or content contain this text, ignoring accents")
	return cmd
}

func newPostsShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id|slug>",
		Short: "Read a post with its comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			detail, err := a.posts.Get(a.context(cmd.Context()), args[0])
			if err != nil {
				return reported(err)
			}
			return a.printer.Detail(*detail, a.session.User())
		},
	}
}

func newPostsMineCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mine",
		Short: "List your own posts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mine, err := a.posts.Mine(a.context(cmd.Context()))
			if err != nil {
				return reported(err)
			}
			return a.printer.Posts(mine)
		},
	}
}

// postFlags are shared by create and edit.
type postFlags struct {
	title       string
	content     string
	contentFile string
	image       string
}

func (flags *postFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flags.title, "title", "", "post title")
	cmd.Flags().StringVar(&flags.content, "content", "", "post body in markdown")
	cmd.Flags().StringVarP(&flags.contentFile, "file", "f", "", `read the body from a file ("-" for stdin)`)
	cmd.Flags().StringVar(&flags.image, "image", "", "absolute http(s) URL of the cover image")
}

func newPostsCreateCmd(a *app) *cobra.Command {
	var flags postFlags

	cmd := &cobra.Command{
		Use:     "create",
		Short:   "Publish a new post",
		Example: `  codejourney posts create --title "Hola Go" --file post.md`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := a.requireLogin(""); err != nil {
				return err
			}

			form := forms.PostForm{Image: flags.image}
			var err error
			if form.Title, err = a.valueOr(flags.title, "Title"); err != nil {
				return err
			}
			if form.Content = flags.content; form.Content == "" {
				if form.Content, err = a.readText(nil, flags.contentFile, "Content"); err != nil {
					return err
				}
			}

			ctx := a.context(cmd.Context())
			created, err := a.posts.Create(ctx, form)
			if err != nil {
				return reported(err)
			}
			a.log.DebugContext(ctx, "navigate", slog.String("route", created.NavigateTo))
			return a.printer.Post(created.Post)
		},
	}

	flags.register(cmd)
	return cmd
}

func newPostsEditCmd(a *app) *cobra.Command {
	var flags postFlags

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit one of your posts",
		Long: `Edit one of your posts. Fields that are not given keep their
current value.`,
		Example: `  codejourney posts edit 65f1c0ffee0000000000002a --title "Hola Go, segunda parte"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.requireLogin(""); err != nil {
				return err
			}
			ctx := a.context(cmd.Context())

			current, err := a.posts.Get(ctx, args[0])
			if err != nil {
				return reported(err)
			}

			form := forms.FromPost(current.Post)
			if cmd.Flags().Changed("title") {
				form.Title = flags.title
			}
			if cmd.Flags().Changed("content") {
				form.Content = flags.content
			}
			if flags.contentFile != "" {
				if form.Content, err = a.readText(nil, flags.contentFile, "Content"); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("image") {
				form.Image = flags.image
			}

			updated, err := a.posts.Update(ctx, current.Post.ID, form)
			if apperr.IsForbidden(err) && updated != nil {
				// The refreshed list shows what the caller may edit.
				_ = a.printer.Posts(updated.Mine)
			}
			if err != nil {
				return reported(err)
			}
			return a.printer.Post(*updated.Post)
		},
	}

	flags.register(cmd)
	return cmd
}

func newPostsDeleteCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one of your posts and its comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.requireLogin(""); err != nil {
				return err
			}
			if !yes {
				ok, err := a.confirm("Delete post " + args[0] + "?")
				if err != nil || !ok {
					return err
				}
			}
			return reported(a.posts.Delete(a.context(cmd.Context()), args[0]))
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}
