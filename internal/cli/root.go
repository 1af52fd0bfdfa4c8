package cli

import (
	"github.com/spf13/cobra"

	"github.com/phenrril/tallerfix/internal/app"
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "tallerfix",
		Short:        "Gestión de órdenes de reparación",
		SilenceUsage: true,
	}
	cmd.AddCommand(newOrderCmd())
	cmd.AddCommand(newMigrateCmd())
	return cmd
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Crea o actualiza el esquema en la base",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := app.OpenDB()
			if err != nil {
				return err
			}
			return app.NewApp(db).Migrate()
		},
	}
}

func openApp() (*app.App, error) {
	db, err := app.OpenDB()
	if err != nil {
		return nil, err
	}
	return app.NewApp(db), nil
}
