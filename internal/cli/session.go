package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	appsession "github.com/preston-bernstein/nba-roster-service/internal/app/session"
	"github.com/preston-bernstein/nba-roster-service/internal/domain/session"
	"github.com/preston-bernstein/nba-roster-service/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			if port != "" {
				cfg.Port = port
			}
			return a.runServer(cmd.Context(), cfg, a.logger)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "Listen port (overrides PORT)")
	return cmd
}

func newLoginCmd(a *app) *cobra.Command {
	var creds session.Credentials

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and persist the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withCore(cmd.Context(), func(ctx context.Context, core *server.Core) error {
				rec, err := core.Sessions.Authenticate(ctx, creds)
				if err != nil {
					return err
				}
				return a.printer().Print(rec)
			})
		},
	}

	cmd.Flags().StringVar(&creds.Email, "email", "", "Email address (required)")
	cmd.Flags().StringVar(&creds.Password, "password", "", "Password (required)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withCore(cmd.Context(), func(ctx context.Context, core *server.Core) error {
				core.Sessions.Rehydrate(ctx)
				if err := core.Sessions.Logout(ctx); err != nil {
					return err
				}
				return a.printer().Message("Signed out")
			})
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withCore(cmd.Context(), func(ctx context.Context, core *server.Core) error {
				return a.printer().Print(core.Sessions.Rehydrate(ctx))
			})
		},
	}
}

func newHashPasswordCmd(a *app) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "hash-password",
		Short: "Print a bcrypt hash for SESSION_PASSWORD_HASH",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				return fmt.Errorf("--password is required")
			}
			hash, err := appsession.HashPassword(password)
			if err != nil {
				return err
			}
			return a.printer().Message(hash)
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "Password to hash (required)")
	return cmd
}
