package command

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"businessCard/internal/httpapi"
	"businessCard/repository"
)

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the /auth and /contacts HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (runErr error) {
			e, err := loadEnv(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer func() {
				if err := e.db.Close(); err != nil {
					runErr = errors.Join(runErr, err)
				}
			}()

			router := httpapi.NewRouter(httpapi.Options{
				Logger:        e.logger,
				DB:            e.db,
				Editors:       repository.NewEditorRepository(e.db),
				Contacts:      repository.NewContactRepository(e.db),
				AdminSettings: repository.NewAdminSettingRepository(e.db),
				Hasher:        e.hasher,
				ContactsAuth:  e.cfg.Auth.ContactsAuth,
			})

			grp, ctx := errgroup.WithContext(cmd.Context())
			addr, err := httpapi.Serve(ctx, grp, e.cfg.HTTP.Address, router)
			if err != nil {
				return err
			}
			e.logger.InfoContext(ctx, "http server listening",
				slog.String("addr", addr.String()),
				slog.String("contacts_auth", e.cfg.Auth.ContactsAuth))
			return grp.Wait()
		},
	}
}
