package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/ghaggin/tourpal/internal/api"
	"github.com/ghaggin/tourpal/internal/auth"
	"github.com/ghaggin/tourpal/internal/config"
	"github.com/ghaggin/tourpal/internal/guard"
	"github.com/ghaggin/tourpal/internal/repository"
	"github.com/ghaggin/tourpal/internal/session"
	"github.com/ghaggin/tourpal/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd is the tourpal command.
func RootCmd(out io.Writer) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:          "tourpal",
		Short:        "rent cars and book tour guides on TourPal",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log api traffic")

	newLogger := func() (*zap.Logger, error) {
		if verbose {
			return zap.NewDevelopment()
		}
		return zap.NewNop(), nil
	}

	cmd.AddCommand(Serve())
	cmd.AddCommand(Login(out, newLogger))
	cmd.AddCommand(Logout(out, newLogger))
	cmd.AddCommand(Whoami(out, newLogger))

	return cmd
}

type loggerFunc func() (*zap.Logger, error)

// env is what the one-shot commands share: the persisted session and a
// client that signs with it.
type env struct {
	log      *zap.Logger
	repo     repository.Repository
	sessions *session.Manager
	client   *api.Client
	auth     *auth.Service
}

func newEnv(ctx context.Context, out io.Writer, newLogger loggerFunc) (*env, error) {
	log, err := newLogger()
	if err != nil {
		return nil, err
	}

	cfg, err := config.New()
	if err != nil {
		return nil, err
	}

	repo, err := repository.Open(cfg.Storage, log)
	if err != nil {
		return nil, err
	}

	sessions := session.NewManager(store.New(repo, log), log)
	sessions.Init(ctx)

	expired := api.NavigatorFunc(func(context.Context, string) {
		fmt.Fprintln(out, "Your session has expired. Run `tourpal login` to sign in again.")
	})

	client, err := api.New(cfg.API.BaseURL, sessions,
		api.WithTimeout(cfg.API.Timeout),
		api.WithLogger(log),
		api.WithUnauthorized(api.RedirectOnUnauthorized(sessions, expired, guard.LoginPath, log)),
	)
	if err != nil {
		_ = repo.Close()
		return nil, err
	}

	return &env{
		log:      log,
		repo:     repo,
		sessions: sessions,
		client:   client,
		auth:     auth.NewService(client, log),
	}, nil
}

func (e *env) Close() error {
	_ = e.log.Sync()
	return e.repo.Close()
}
