package main

import (
	"os"

	"github.com/anonto42/socialfeed/backend/pkg/config"
	"github.com/anonto42/socialfeed/backend/pkg/logger"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	cfg *config.Config
	log *logrus.Logger
)

var rootCmd = &cobra.Command{
	Use:   "socialfeed",
	Short: "SocialFeed API server",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Load configuration
		cfg = config.Load()
		log = logger.New(cfg.LogLevel, logger.FormatFor(cfg.Env, cfg.LogFormat))
		return cfg.Validate()
	},
	// serve is the default command
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if log != nil {
			log.WithError(err).Error("command failed")
		}
		os.Exit(1)
	}
}
