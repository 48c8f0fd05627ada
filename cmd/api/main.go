package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Navneet-kaur7/todo-app/internal/config"
	"github.com/Navneet-kaur7/todo-app/internal/logger"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "todo-api",
	Short: "Multi-user todo REST API",
	Long: `todo-api serves a JSON REST API where registered users manage their own
task lists. Running it without a subcommand starts the HTTP server.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("todo-api failed")
		os.Exit(1)
	}
}

// loadConfig reads the dotenv file, the environment and installs the logger.
func loadConfig() (config.Config, error) {
	envErr := godotenv.Load(envFile)

	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}

	logger.Setup(cfg)

	if envErr != nil {
		log.Debug().Str("file", envFile).Msg("no .env file found, using environment variables")
	}

	return cfg, nil
}
