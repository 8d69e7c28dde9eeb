package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/user/bloglist-go/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server (default)",
	RunE:  runServe,
}

var skipMigrations bool

func init() {
	for _, c := range []*cobra.Command{rootCmd, serveCmd} {
		c.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "do not apply Postgres migrations on startup")
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, appConfig.Database, !skipMigrations)
	if err != nil {
		return err
	}
	defer closeStore(st)

	return server.Run(ctx, appConfig.Server.Port, server.NewRouter(appConfig, st))
}
