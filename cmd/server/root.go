package main

import (
	"fmt"
	"os"

	"github.com/18Abhinav07/SuavePay/internal/config"
	"github.com/18Abhinav07/SuavePay/internal/database"
	"github.com/18Abhinav07/SuavePay/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var rootCmd = &cobra.Command{
	Use:   "suavepay",
	Short: "SuavePay - payment tracking between wallet addresses",
	Long: `SuavePay records payments between wallet addresses.

It provides a REST API to register and log in with a wallet address and to
submit and list payment records.

Run 'suavepay serve' to start the server, 'suavepay migrate' to create the
schema, or 'suavepay import-users' to bulk-register users.`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(importCmd)
}

// bootstrap loads configuration, builds the logger and opens a migrated
// database handle. Callers own the handle.
func bootstrap() (*config.Config, *zap.SugaredLogger, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := logging.New("suavepay", cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to build logger: %w", err)
	}

	db, err := database.Connect(cfg.Database.URL)
	if err != nil {
		logger.Errorw("failed to connect to database", "error", err)
		return nil, nil, nil, err
	}

	if err := database.Migrate(db); err != nil {
		logger.Errorw("failed to migrate database", "error", err)
		database.Close(db)
		return nil, nil, nil, err
	}

	return cfg, logger, db, nil
}
