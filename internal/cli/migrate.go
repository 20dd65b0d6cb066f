package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	dbpkg "github.com/cema-health/program-manager/internal/db"
	"github.com/cema-health/program-manager/internal/logging"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the schema, seed statuses and the bootstrap admin",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			log := logging.New(cfg)

			db, err := dbpkg.Open(cfg)
			if err != nil {
				return err
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}

			if err := dbpkg.Migrate(db); err != nil {
				return err
			}
			if _, err := dbpkg.EnsureAdmin(cmd.Context(), db, cfg.Bootstrap, log); err != nil {
				return err
			}

			log.Info("migration complete", slog.String("database", "postgres"))
			return nil
		},
	}
}
