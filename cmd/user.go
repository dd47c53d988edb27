package cmd

import (
	"errors"
	"fmt"

	"iqr-control-backend/config"
	"iqr-control-backend/services"

	"github.com/spf13/cobra"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage dashboard users",
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user that can log in to the dashboard",
	Example: `  iqr user create --username admin --password secret123
  iqr user create --username sara --password secret123 --first-name Sara --email sara@example.com`,
	RunE: runUserCreate,
}

func init() {
	userCreateCmd.Flags().String("username", "", "login name (required)")
	userCreateCmd.Flags().String("password", "", "password, at least 6 characters (required)")
	userCreateCmd.Flags().String("first-name", "", "first name")
	userCreateCmd.Flags().String("last-name", "", "last name")
	userCreateCmd.Flags().String("email", "", "email address")
	_ = userCreateCmd.MarkFlagRequired("username")
	_ = userCreateCmd.MarkFlagRequired("password")

	userCmd.AddCommand(userCreateCmd)
	rootCmd.AddCommand(userCmd)
}

func runUserCreate(cmd *cobra.Command, _ []string) error {
	if cfg.Database.URL == "" {
		return errors.New("database url is required (IQR_DATABASE_URL)")
	}

	input := services.UserInput{}
	input.Username, _ = cmd.Flags().GetString("username")
	input.Password, _ = cmd.Flags().GetString("password")
	input.FirstName, _ = cmd.Flags().GetString("first-name")
	input.LastName, _ = cmd.Flags().GetString("last-name")
	input.Email, _ = cmd.Flags().GetString("email")

	db, err := config.ConnectDB(cfg.Database, config.Log)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	user, err := services.NewUserService(db, config.Log).Create(cmd.Context(), input)
	if err != nil {
		var validationErr *services.ValidationError
		if errors.As(err, &validationErr) {
			return errors.New("username is required and the password needs at least 6 characters")
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "created user %s (%s)\n", user.Username, user.ID)
	return nil
}
