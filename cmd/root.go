package cmd

import (
	"fmt"
	"os"

	"iqr-control-backend/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var version = "1.0.0"

// cfg is loaded once before any subcommand runs
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "iqr",
	Short: "IQR Control backend",
	Long: `IQR Control is the backend for the shop management dashboard:
customers and subscriptions, income and expenses, receivables,
employees, users and reports.

Running without a subcommand starts the HTTP server.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded
		config.Log = config.NewLogger(cfg.Log)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd, args)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		config.Log.Error("command execution failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
	_ = config.Log.Sync()
}
