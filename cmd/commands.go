package main

import (
	"fmt"
	"path/filepath"

	"creativeflow/internal/config"
	users_enums "creativeflow/internal/features/users/enums"
	users_services "creativeflow/internal/features/users/services"
	"creativeflow/internal/storage"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "creativeflow",
		Short:        "CreativeFlow project management backend",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServer()
		},
	}

	cmd.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
		newSetRoleCmd(),
	)

	return cmd
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run migrations and start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServer()
		},
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return migrateDatabase()
		},
	}
}

func newSetRoleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-role <email> <user|admin>",
		Short: "Change the global role of an existing user",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			setUpDependencies()

			if err := migrateDatabase(); err != nil {
				return err
			}

			role := users_enums.UserRole(args[1])
			if err := users_services.GetUserService().SetUserRoleByEmail(args[0], role); err != nil {
				return fmt.Errorf("failed to set role: %w", err)
			}

			cmd.Printf("%s is now %s\n", args[0], role)

			return nil
		},
	}
}

// migrateDatabase applies the SQL migrations on PostgreSQL. SQLite schemas
// are created from the models when the connection opens.
func migrateDatabase() error {
	env := config.GetEnv()
	if env.DbDriver != config.DbDriverPostgres {
		storage.GetDb()
		return nil
	}

	return storage.RunMigrations(filepath.Join(env.BackendRootPath, "migrations"))
}
