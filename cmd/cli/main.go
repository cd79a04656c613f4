package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"scaffold/internal/apiclient"
	"scaffold/internal/config"
	"scaffold/internal/screens"
	"scaffold/pkg/logger"
)

type app struct {
	cfg     *config.Config
	client  *apiclient.Client
	msgs    *screens.Messages
	footer  screens.Footer
	session *fileSession
	log     logger.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var baseURL, locale string

	root := &cobra.Command{
		Use:           "scaffold",
		Short:         "Terminal client for the auth scaffold",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if baseURL != "" {
				cfg.Client.BaseURL = baseURL
			}
			if locale != "" {
				cfg.App.Locale = locale
			}

			a.cfg = cfg
			a.log = logger.Init(logger.Config{Level: cfg.Log.Level, JSON: cfg.Log.JSON})
			a.client = apiclient.New(cfg.Client.BaseURL, cfg.Client.Timeout)
			a.msgs = screens.NewMessages(cfg.App.Locale)
			a.footer = screens.Footer{SiteName: cfg.App.Name}
			a.session, err = openSession()
			if err != nil {
				return err
			}
			if u, ok := a.session.User(); ok {
				a.client.SetToken(u.Token)
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&baseURL, "base-url", "", "API base URL (overrides SCAFFOLD_CLIENT_BASE_URL)")
	root.PersistentFlags().StringVar(&locale, "locale", "", "message locale, e.g. en or zh")

	root.AddCommand(
		newRegisterCmd(a),
		newResetCmd(a),
		newLoginCmd(a),
		newForgotCmd(a),
		newVerifyCmd(a),
		newProfileCmd(a),
	)
	return root
}

func (a *app) deps(n screens.Notifier, nav screens.Navigator) screens.Deps {
	return screens.Deps{
		Poster:    a.client,
		Notifier:  n,
		Navigator: nav,
		Session:   a.session,
		Messages:  a.msgs,
		Logger:    a.log,
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		printError(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
