package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"playpal-backend-go/internal/app"
	"playpal-backend-go/internal/config"
)

var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:           "playpalctl",
		Short:         "Operator tools for the PlayPal notification backend",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().Duration("timeout", 30*time.Second, "Deadline for the whole command")

	rootCmd.AddCommand(verifyUserCmd())
	rootCmd.AddCommand(replayCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// withApp loads config, builds the application and runs fn with it.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	appConfig, err := config.LoadConfig()
	if err != nil {
		return err
	}
	logger, err := app.NewLogger(appConfig)
	if err != nil {
		return err
	}
	defer logger.Sync()

	timeout, _ := cmd.Flags().GetDuration("timeout")
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	a, err := app.New(ctx, appConfig, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	return fn(ctx, a)
}
