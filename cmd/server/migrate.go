package main

import (
	"github.com/anonto42/socialfeed/backend/internal/repositories"
	"github.com/anonto42/socialfeed/backend/pkg/config"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := config.InitDB(cfg, log)
		if err != nil {
			return err
		}
		defer db.CloseDB()

		if err := repositories.AutoMigrate(db.SQL); err != nil {
			return errors.Wrap(err, "failed to auto migrate models")
		}
		log.Info("Database migrations completed.")
		return nil
	},
}
