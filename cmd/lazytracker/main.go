package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var flags globalFlags

	cmd := &cobra.Command{
		Use:           "lazytracker",
		Short:         "Terminal client for the collaborative task tracker",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), flags)
		},
	}

	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file path")
	cmd.PersistentFlags().StringVar(&flags.dbPath, "db", "", "sqlite db path for the saved session")
	cmd.PersistentFlags().StringVar(&flags.apiURL, "api-url", "", "task service base URL")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	cmd.AddCommand(usersCmd(&flags))
	cmd.AddCommand(loginCmd(&flags))
	cmd.AddCommand(logoutCmd(&flags))
	cmd.AddCommand(whoamiCmd(&flags))
	cmd.AddCommand(tasksCmd(&flags))

	return cmd
}
