package command

import (
	"errors"

	"github.com/spf13/cobra"

	"businessCard/internal/db"
)

func migrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration commands",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				// Opening the database migrates it.
				e, err := loadEnv(cmd.Context(), true)
				if err != nil {
					return err
				}
				return e.db.Close()
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) (runErr error) {
				e, err := loadEnv(cmd.Context(), false)
				if err != nil {
					return err
				}
				defer func() {
					if err := e.db.Close(); err != nil {
						runErr = errors.Join(runErr, err)
					}
				}()
				return db.RollbackLast(cmd.Context(), e.logger, e.db)
			},
		},
	)
	return cmd
}
