// Copyright (c) 2026 CodeJourney. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"github.com/spf13/cobra"

	"github.com/taibuivan/codejourney/internal/forms"
	"github.com/taibuivan/codejourney/internal/platform/apperr"
)

func newLoginCmd(a *app) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and keep the session on this machine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			form := forms.LoginForm{}
			var err error
			if form.Email, err = a.valueOr(email, "Email"); err != nil {
				return err
			}
			if form.Password, err = a.secret("Password"); err != nil {
				return err
			}
			if err := a.checkForm(form.Validate()); err != nil {
				return err
			}
			return reported(a.session.Login(a.context(cmd.Context()), form.Email, form.Password))
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email (prompted when omitted)")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session and forget the stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return reported(a.session.Logout(a.context(cmd.Context())))
		},
	}
}

func newRegisterCmd(a *app) *cobra.Command {
	var form forms.RegisterForm

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Long: `Create an account. Registration does not log you in; run
"codejourney login" afterwards.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if form.Name, err = a.valueOr(form.Name, "Name"); err != nil {
				return err
			}
			if form.LastName, err = a.valueOr(form.LastName, "Last name"); err != nil {
				return err
			}
			if form.Email, err = a.valueOr(form.Email, "Email"); err != nil {
				return err
			}
			if form.Password, err = a.secret("Password"); err != nil {
				return err
			}
			if form.ConfirmPassword, err = a.secret("Confirm password"); err != nil {
				return err
			}
			if err := a.checkForm(form.Validate()); err != nil {
				return err
			}

			user, err := a.session.Register(a.context(cmd.Context()), form.Payload())
			if err != nil {
				return reported(err)
			}
			form.Reset()
			return a.printer.User("registered", user)
		},
	}

	cmd.Flags().StringVar(&form.Name, "name", "", "first name")
	cmd.Flags().StringVar(&form.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&form.Email, "email", "", "account email")
	return cmd
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in user",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return a.printer.User(string(a.session.Status()), a.session.User())
		},
	}
}

func newProfileCmd(a *app) *cobra.Command {
	profile := &cobra.Command{
		Use:   "profile",
		Short: "Manage your profile",
	}

	var (
		form        forms.ProfileForm
		newPassword bool
	)
	update := &cobra.Command{
		Use:   "update",
		Short: "Change name, last name, email or password",
		Example: `  codejourney profile update --name Ana
  codejourney profile update --password`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if newPassword {
				password, err := a.secret("New password")
				if err != nil {
					return err
				}
				form.Password = password
			}
			if err := a.checkForm(form.Validate()); err != nil {
				return err
			}

			user, err := a.session.UpdateProfile(a.context(cmd.Context()), form.Update())
			if err != nil {
				return reported(err)
			}
			return a.printer.User(string(a.session.Status()), user)
		},
	}

	update.Flags().StringVar(&form.Name, "name", "", "new first name")
	update.Flags().StringVar(&form.LastName, "last-name", "", "new last name")
	update.Flags().StringVar(&form.Email, "email", "", "new email")
	update.Flags().BoolVar(&newPassword, "password", false, "prompt for a new password")

	profile.AddCommand(update)
	return profile
}

// checkForm shows a local validation failure the way remote failures are shown.
func (a *app) checkForm(err error) error {
	if err == nil {
		return nil
	}
	a.notifier.Error(apperr.Message(err))
	return reported(err)
}
