// Copyright (c) 2026 CodeJourney. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/taibuivan/codejourney/internal/browse"
	"github.com/taibuivan/codejourney/internal/session"
)

func newBrowseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:         "browse",
		Short:       "Browse posts interactively",
		Long:        `Browse posts page by page. Use ←/→ to change page, enter to read a post, q to quit.`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationInteractive: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := a.context(cmd.Context())
			model := browse.New(ctx, a.posts, a.session.Snapshot(), a.cfg.PageSize, a.cfg.NoColor)

			program := tea.NewProgram(model,
				tea.WithContext(ctx),
				tea.WithInput(a.stdin),
				tea.WithOutput(a.stdout),
				tea.WithAltScreen(),
			)

			// A login or logout in another terminal reaches the model here.
			unsubscribe := a.session.Subscribe(func(snapshot session.Snapshot) {
				program.Send(browse.SessionChanged(snapshot))
			})
			defer unsubscribe()

			_, err := program.Run()
			return err
		},
	}
}
