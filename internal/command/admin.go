package command

import (
	"errors"

	"github.com/spf13/cobra"

	"businessCard/repository"
)

func adminCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Shared admin password commands",
	}
	cmd.AddCommand(adminSetPasswordCommand())
	return cmd
}

func adminSetPasswordCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-password",
		Short: "Set the shared admin password",
		Long: "Sets the password checked against X-Admin-Password when CONTACTS_AUTH=admin.\n" +
			"The password is read from stdin or the interactive prompt.",
		Args: cobra.NoArgs,
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

			passwd, err := prompt("admin password: ", true)
			if err != nil {
				return err
			}
			if passwd == "" {
				return errors.New("password must not be empty")
			}
			hash, err := e.hasher.Hash(passwd)
			if err != nil {
				return err
			}
			if err := repository.NewAdminSettingRepository(e.db).SetPasswordHash(cmd.Context(), hash); err != nil {
				return err
			}
			e.logger.InfoContext(cmd.Context(), "admin password updated")
			return nil
		},
	}
}
