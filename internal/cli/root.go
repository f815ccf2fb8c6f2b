// Package cli is the roster command line: it serves the HTTP API and drives the
// team store, session and player directory directly against configured storage.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	appsession "github.com/preston-bernstein/nba-roster-service/internal/app/session"
	"github.com/preston-bernstein/nba-roster-service/internal/config"
	"github.com/preston-bernstein/nba-roster-service/internal/logging"
	"github.com/preston-bernstein/nba-roster-service/internal/metrics"
	"github.com/preston-bernstein/nba-roster-service/internal/server"
)

const serviceName = "nba-roster-service"

// ErrNotSignedIn is returned by protected commands when no session is stored.
var ErrNotSignedIn = errors.New("not signed in: run `roster login` first")

type coreOpener func(ctx context.Context, cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*server.Core, error)

type serverRunner func(ctx context.Context, cfg config.Config, logger *slog.Logger) error

type app struct {
	version    string
	stdout     io.Writer
	stderr     io.Writer
	configPath string
	output     string
	cfg        config.Config
	logger     *slog.Logger
	openCore   coreOpener
	runServer  serverRunner
}

// NewRootCmd builds the roster command tree writing to stdout and stderr.
func NewRootCmd(version string) *cobra.Command {
	return newRootCmd(&app{
		version:   version,
		stdout:    os.Stdout,
		stderr:    os.Stderr,
		openCore:  server.OpenCore,
		runServer: runServer,
	})
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "roster",
		Short: "Manage NBA rosters",
		Long: `roster manages user-defined NBA teams built from the balldontlie player directory.

It runs the HTTP API (serve) or works directly against the configured storage,
sharing the same team store, session and directory rules.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		SilenceUsage: true,
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	root.PersistentFlags().StringVar(&a.configPath, "config", os.Getenv("ROSTER_CONFIG_FILE"), "YAML config file (env: ROSTER_CONFIG_FILE)")
	root.PersistentFlags().StringVarP(&a.output, "output", "o", formatText, "Output format: text, json")

	root.AddCommand(newServeCmd(a))
	root.AddCommand(newLoginCmd(a))
	root.AddCommand(newLogoutCmd(a))
	root.AddCommand(newWhoamiCmd(a))
	root.AddCommand(newHashPasswordCmd(a))
	root.AddCommand(newTeamsCmd(a))
	root.AddCommand(newPlayersCmd(a))
	return root
}

func (a *app) setup() error {
	if a.output != formatText && a.output != formatJSON {
		return fmt.Errorf("unknown output format %q", a.output)
	}
	cfg, err := config.LoadFrom(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logging.NewLogger(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: serviceName,
		Version: a.version,
		Output:  a.stderr,
	})
	return nil
}

func (a *app) printer() *printer {
	return newPrinter(a.stdout, a.output)
}

// withCore opens storage and the stores for one command and closes them afterwards.
func (a *app) withCore(ctx context.Context, fn func(ctx context.Context, core *server.Core) error) (err error) {
	core, err := a.openCore(ctx, a.cfg, a.logger, metrics.NewRecorder())
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := core.Close(); closeErr != nil {
			logging.Warn(a.logger, "storage close failed", "error", closeErr)
			if err == nil {
				err = closeErr
			}
		}
	}()
	return fn(ctx, core)
}

// withSession is withCore for protected commands: the stored session must be authenticated.
func (a *app) withSession(ctx context.Context, fn func(ctx context.Context, core *server.Core) error) error {
	return a.withCore(ctx, func(ctx context.Context, core *server.Core) error {
		core.Sessions.Rehydrate(ctx)
		if core.Sessions.Guard().Decide(appsession.ViewProtected).Action != appsession.ActionAllow {
			return ErrNotSignedIn
		}
		return fn(ctx, core)
	})
}

func runServer(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	ctx, stop := context.WithCancel(ctx)
	defer stop()
	srv, err := server.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	srv.Run(ctx, stop)
	return nil
}
