package main

import (
	"jobboard/internal/database/migration"
	"jobboard/internal/database/seeder"
	"jobboard/migrations"

	"github.com/spf13/cobra"
)

var fromDir string

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending SQL migrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		e, err := openEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer e.close()

		r := migration.Runner{FS: migrations.FS, Logger: e.log}
		if fromDir != "" {
			r = migration.Runner{Dir: fromDir, Logger: e.log}
		}
		if err := r.Run(cmd.Context(), e.db.SQLDB()); err != nil {
			return err
		}
		e.log.Info("migrations applied")
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert demo users and jobs",
	RunE: func(cmd *cobra.Command, _ []string) error {
		e, err := openEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer e.close()

		return seeder.Runner{Seeders: seeder.Defaults(), Logger: e.log}.Run(cmd.Context(), e.db)
	},
}

func init() {
	migrateCmd.Flags().StringVar(&fromDir, "dir", "", "read migrations from this directory instead of the embedded set")
}
