// Copyright (c) 2026 CodeJourney. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"github.com/spf13/cobra"

	"github.com/taibuivan/codejourney/internal/platform/constants"
)

// annotationInteractive marks commands that take over the terminal.
const annotationInteractive = "codejourney/interactive"

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   constants.AppName,
		Short: "CodeJourney - read and write the community blog from your terminal",
		Long: `CodeJourney is the terminal client of the CodeJourney developer blog.

Browse posts, read them with their comments, and publish your own once
logged in. The session is kept in a local token store and restored on every
run.

Environment variables use the CODEJOURNEY_ prefix (CODEJOURNEY_API_URL,
CODEJOURNEY_TOKEN_STORE, CODEJOURNEY_OUTPUT, ...).`,
		Version:       constants.AppVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.start(cmd.Context(), cmd.Annotations[annotationInteractive] == "true")
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.flags.apiURL, "api", "", "remote API base URL (overrides CODEJOURNEY_API_URL)")
	flags.StringVarP(&a.flags.output, "output", "o", "", "output format: text, json or yaml")
	flags.IntVar(&a.flags.pageSize, "page-size", 0, "posts per page")

	root.AddCommand(
		newLoginCmd(a),
		newLogoutCmd(a),
		newRegisterCmd(a),
		newWhoamiCmd(a),
		newProfileCmd(a),
		newPostsCmd(a),
		newCommentsCmd(a),
		newBrowseCmd(a),
	)
	return root
}
