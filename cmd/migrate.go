package cmd

import (
	"errors"
	"fmt"

	"iqr-control-backend/config"
	"iqr-control-backend/models"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Database.URL == "" {
			return errors.New("database url is required (IQR_DATABASE_URL)")
		}

		db, err := config.ConnectDB(cfg.Database, config.Log)
		if err != nil {
			return err
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}

		if err := models.AutoMigrate(db); err != nil {
			return fmt.Errorf("auto migrate: %w", err)
		}
		config.Log.Info("schema migrated")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
