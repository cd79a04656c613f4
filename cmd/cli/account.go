package main

import (
	"errors"
	"fmt"
	"net/url"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func newLoginCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var email, password string
			err := huh.NewForm(huh.NewGroup(
				huh.NewInput().Title("Email").Value(&email),
				huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&password),
			)).RunWithContext(cmd.Context())
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			if err != nil {
				return err
			}

			user, err := a.client.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			if err := a.session.SetUser(*user); err != nil {
				return err
			}
			n := &termNotifier{out: os.Stdout}
			n.Success("Success", "signed in as "+user.Name)
			return nil
		},
	}
}

func newForgotCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "forgot <email>",
		Short: "Email a password reset link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.client.SendResetEmail(cmd.Context(), args[0]); err != nil {
				return err
			}
			n := &termNotifier{out: os.Stdout}
			n.Success("Success", "reset link sent to "+args[0])
			return nil
		},
	}
}

func newVerifyCmd(a *app) *cobra.Command {
	var resend bool
	cmd := &cobra.Command{
		Use:   "verify [link]",
		Short: "Confirm an email address, or resend the verification link",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n := &termNotifier{out: os.Stdout}
			if resend {
				if err := a.client.SendVerifyEmail(cmd.Context()); err != nil {
					return err
				}
				n.Success("Success", "verification link sent")
				return nil
			}
			if len(args) == 0 {
				return errors.New("a verification link is required unless --resend is set")
			}

			link, err := url.Parse(args[0])
			if err != nil {
				return fmt.Errorf("parse link: %w", err)
			}
			sign := link.Query().Get("sign")
			if sign == "" {
				return errors.New("link has no sign parameter")
			}
			if err := a.client.VerifyEmail(cmd.Context(), sign); err != nil {
				return err
			}
			n.Success("Success", "email verified")
			return nil
		},
	}
	cmd.Flags().BoolVar(&resend, "resend", false, "send a new verification link to the signed-in user")
	return cmd
}

var profileStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	Padding(0, 1)

func newProfileCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, ok := a.session.User(); !ok {
				return errors.New("not signed in, run login or register first")
			}
			user, err := a.client.Profile(cmd.Context())
			if err != nil {
				return err
			}

			verified := "no"
			if user.EmailVerifiedAt != nil {
				verified = user.EmailVerifiedAt.Format("2006-01-02")
			}
			fmt.Println(profileStyle.Render(fmt.Sprintf("%s\n%s\nverified: %s", user.Name, user.Email, verified)))
			fmt.Println(mutedStyle.Render(a.footer.Render()))
			return nil
		},
	}
}
