package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Aidin1998/laptrack/internal/config"
	"github.com/Aidin1998/laptrack/pkg/logger"
)

var (
	// Global flags
	configFile string
	envFile    string

	cfg *config.Config
	log *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "laptrack",
	Short: "laptrack - laptop inventory and assignment service",
	Long: `laptrack tracks company laptops, the employees they are assigned to,
their maintenance history and reported issues.

Configuration comes from environment variables (PORT, MONGODB_URI,
JWT_SECRET, REFRESH_TOKEN_SECRET, ...), an optional .env file and an
optional YAML file passed with --config.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to load %s: %w", envFile, err)
		}

		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return err
		}
		log, err = logger.NewLogger(cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "optional YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before configuration")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
