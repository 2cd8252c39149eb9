package cli

import (
	"github.com/ghaggin/tourpal/internal/api"
	"github.com/ghaggin/tourpal/internal/auth"
	"github.com/ghaggin/tourpal/internal/config"
	"github.com/ghaggin/tourpal/internal/guard"
	"github.com/ghaggin/tourpal/internal/middleware"
	"github.com/ghaggin/tourpal/internal/repository"
	"github.com/ghaggin/tourpal/internal/service"
	"github.com/ghaggin/tourpal/internal/session"
	"github.com/ghaggin/tourpal/internal/store"
	"github.com/ghaggin/tourpal/internal/web"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func Serve() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "run the TourPal web front end on localhost",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fx.New(
				fx.Provide(
					zap.NewDevelopment,
					config.New,
					repository.New,
					store.New,
					session.NewManager,
					newWebClient,
					auth.NewService,
				),
				service.Module,
				web.Module,
				// session first, so the store is read before the listener opens
				fx.Invoke(session.RegisterHooks),
				fx.Invoke(web.RegisterHooks),
			)

			if err := app.Err(); err != nil {
				return err
			}

			app.Run()
			return nil
		},
	}

	return cmd
}

// newWebClient builds the api client for the web front end. A rejected
// session signs the user out and redirects the request that noticed it.
func newWebClient(cfg *config.Config, sessions *session.Manager, log *zap.Logger) (*api.Client, error) {
	return api.New(cfg.API.BaseURL, sessions,
		api.WithTimeout(cfg.API.Timeout),
		api.WithLogger(log),
		api.WithUnauthorized(api.RedirectOnUnauthorized(sessions, middleware.Navigator{}, guard.LoginPath, log)),
	)
}
