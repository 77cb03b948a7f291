package command

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"businessCard/models"
	"businessCard/repository"
)

func editorCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "editor",
		Short: "Editor commands",
	}
	cmd.AddCommand(editorBootstrapCommand())
	return cmd
}

func editorBootstrapCommand() *cobra.Command {
	var fullName string
	cmd := &cobra.Command{
		Use:   "bootstrap USERNAME",
		Short: "Create the bootstrap super-admin editor",
		Long: "Creates an active super-admin editor. The HTTP API can only create regular\n" +
			"editors, so this is how the first account that manages the others is made.\n" +
			"The password is read from stdin or the interactive prompt.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (runErr error) {
			e, err := loadEnv(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer func() {
				if err := e.db.Close(); err != nil {
					runErr = errors.Join(runErr, err)
				}
			}()

			username := args[0]
			passwd, err := prompt("password: ", true)
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
			editors := repository.NewEditorRepository(e.db)
			created, err := editors.CreateSuperAdmin(cmd.Context(), models.NewEditor{
				Username:     username,
				PasswordHash: hash,
				FullName:     fullName,
			})
			if errors.Is(err, repository.ErrAlreadyExists) {
				return fmt.Errorf("editor %q already exists", username)
			}
			if err != nil {
				return err
			}
			e.logger.InfoContext(cmd.Context(), "created super-admin editor",
				slog.String("username", created.Username), slog.Int64("id", created.ID))
			return nil
		},
	}
	cmd.Flags().StringVar(&fullName, "full-name", "", "display name of the editor")
	return cmd
}
