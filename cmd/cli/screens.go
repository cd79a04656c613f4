package main

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"scaffold/internal/screens"
)

// submitter is what the prompt loop needs from a screen.
type submitter interface {
	Submit() error
	Wait()
	State() screens.State
	Close()
}

// runScreen prompts, submits and repeats until the screen reaches Submitted,
// then waits for the redirect. Aborting the prompt ends the loop quietly.
func runScreen(ctx context.Context, s submitter, nav chanNavigator, footer screens.Footer, prompt func(context.Context) error) error {
	defer s.Close()

	for s.State() != screens.Submitted {
		if err := prompt(ctx); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}
		if err := s.Submit(); err != nil {
			return err
		}
		s.Wait()
	}

	path, err := nav.await(ctx)
	if err != nil {
		return err
	}
	fmt.Println(mutedStyle.Render("→ " + path))
	fmt.Println(mutedStyle.Render(footer.Render()))
	return nil
}

func newRegisterCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			nav := make(chanNavigator, 1)
			s := screens.NewRegisterScreen(cmd.Context(), a.deps(&termNotifier{out: os.Stdout}, nav), a.footer)

			return runScreen(cmd.Context(), s, nav, a.footer, func(ctx context.Context) error {
				f := s.Form()
				err := huh.NewForm(huh.NewGroup(
					huh.NewInput().Title("Username").Value(&f.Name),
					huh.NewInput().Title("Email").Value(&f.Email),
					huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&f.Password),
					huh.NewInput().Title("Confirm password").EchoMode(huh.EchoModePassword).Value(&f.Repassword),
				)).RunWithContext(ctx)
				if err != nil {
					return err
				}
				return setAll(s.Set, map[string]string{
					"name": f.Name, "email": f.Email, "password": f.Password, "repassword": f.Repassword,
				})
			})
		},
	}
}

func newResetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reset <link>",
		Short: "Reset a password using the emailed link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var query url.Values
			if link, err := url.Parse(args[0]); err == nil {
				query = link.Query()
			}

			nav := make(chanNavigator, 1)
			s := screens.NewResetScreen(cmd.Context(), a.deps(&termNotifier{out: os.Stdout}, nav), a.footer, query)
			if !s.SubmitEnabled() {
				s.Close()
				return screens.ErrSubmitDisabled
			}

			return runScreen(cmd.Context(), s, nav, a.footer, func(ctx context.Context) error {
				f := s.Form()
				err := huh.NewForm(huh.NewGroup(
					huh.NewNote().Title("Reset password").Description(f.Email),
					huh.NewInput().Title("New password").EchoMode(huh.EchoModePassword).Value(&f.Password),
					huh.NewInput().Title("Confirm password").EchoMode(huh.EchoModePassword).Value(&f.Repassword),
				)).RunWithContext(ctx)
				if err != nil {
					return err
				}
				return setAll(s.Set, map[string]string{"password": f.Password, "repassword": f.Repassword})
			})
		},
	}
}

func setAll(set func(field, value string) error, values map[string]string) error {
	for field, v := range values {
		if err := set(field, v); err != nil {
			return err
		}
	}
	return nil
}
