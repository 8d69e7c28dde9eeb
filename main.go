// Command bloglist runs the blog list REST backend and its maintenance tasks.
// @title Bloglist API
// @version 1.0
// @description Blog list with user accounts and bearer-token authentication.
// @contact.name API Support
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize
package main

import (
	"context"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/user/bloglist-go/config"
)

// rootCmd runs the server when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:           "bloglist [command]",
	Short:         "Blog list REST backend",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Load .env file. In production, variables are usually set directly.
		if err := godotenv.Load(); err != nil {
			log.Debug().Err(err).Msg(".env file not loaded")
		}
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		appConfig = cfg
		setupLogging(cfg.Server)
		return nil
	},
	RunE: runServe,
}

// appConfig is loaded once in PersistentPreRunE, before any command runs.
var appConfig *config.AppConfig

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, statsCmd)
}

// setupLogging configures the global zerolog logger. Development output is
// human readable; production emits JSON lines.
func setupLogging(cfg *config.ServerConfig) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil || cfg.LogLevel == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if cfg.Env == config.EnvProduction {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("command failed")
	}
}
