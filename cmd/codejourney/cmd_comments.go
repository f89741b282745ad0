// Copyright (c) 2026 CodeJourney. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"github.com/spf13/cobra"

	"github.com/taibuivan/codejourney/internal/forms"
	"github.com/taibuivan/codejourney/internal/platform/apperr"
	"github.com/taibuivan/codejourney/internal/session"
)

const msgLoginToComment = "You must be logged in to comment"

func newCommentsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "comments",
		Aliases: []string{"comment"},
		Short:   "Comment on posts",
	}
	cmd.AddCommand(
		newCommentsAddCmd(a),
		newCommentsEditCmd(a),
		newCommentsDeleteCmd(a),
	)
	return cmd
}

func newCommentsAddCmd(a *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:     "add <postId> [text...]",
		Short:   "Comment on a post",
		Example: `  codejourney comments add 65f1c0ffee0000000000002a "Muy buen post"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.requireLogin(msgLoginToComment); err != nil {
				return err
			}
			text, err := a.readText(args[1:], file, "Comment")
			if err != nil {
				return err
			}

			comment, err := a.comments.Create(a.context(cmd.Context()), args[0], forms.CommentForm{Content: text})
			if err != nil {
				return reported(err)
			}
			return a.printer.Comment(*comment)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", `read the comment from a file ("-" for stdin)`)
	return cmd
}

func newCommentsEditCmd(a *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "edit <id> [text...]",
		Short: "Edit one of your comments",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.requireLogin(""); err != nil {
				return err
			}
			text, err := a.readText(args[1:], file, "Comment")
			if err != nil {
				return err
			}

			comment, err := a.comments.Edit(a.context(cmd.Context()), args[0], forms.CommentForm{Content: text})
			if err != nil {
				return reported(err)
			}
			return a.printer.Comment(*comment)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", `read the comment from a file ("-" for stdin)`)
	return cmd
}

func newCommentsDeleteCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one of your comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.requireLogin(""); err != nil {
				return err
			}
			if !yes {
				ok, err := a.confirm("Delete comment " + args[0] + "?")
				if err != nil || !ok {
					return err
				}
			}
			return reported(a.comments.Delete(a.context(cmd.Context()), args[0]))
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

// requireLogin refuses protected commands before anything is prompted.
func (a *app) requireLogin(message string) (session.Credentials, error) {
	creds, err := session.RequireAuth(a.session)
	if err != nil {
		if message == "" {
			message = apperr.Message(err)
		}
		a.notifier.Error(message)
		return creds, reported(err)
	}
	return creds, nil
}
