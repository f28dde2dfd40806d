package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/speaking-practice/backend/internal/config"
	"github.com/speaking-practice/backend/internal/database"
	"github.com/speaking-practice/backend/internal/logger"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		log := logger.Setup(cfg.Server.LogLevel)

		db, err := database.OpenMigrated(cmd.Context(), database.Driver(cfg.Database.Driver), cfg.Database.URL)
		if err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		defer db.Close()

		log.Info("migrations applied", "driver", cfg.Database.Driver)
		return nil
	},
}
