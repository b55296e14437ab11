package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Nazarious-ucu/console-weather/internal/app"
	"github.com/Nazarious-ucu/console-weather/internal/config"
	"github.com/Nazarious-ucu/console-weather/pkg/logger"
)

const serviceName = "weather"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		opts      app.Options
		noDetails bool
	)

	cmd := &cobra.Command{
		Use:           "weather",
		Short:         "Get weather in console",
		Version:       "0.1",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.Details = !noDetails
			line, err := run(cmd, opts)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), line)
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.Postal, "postal", "p", "", "get weather for the provided postal code")
	flags.BoolVarP(&opts.UseIP, "use-ip", "i", false,
		"use IP address to get the weather instead of postal code")
	flags.BoolVarP(&noDetails, "no-details", "n", false, "do not get detailed conditions")
	flags.BoolVar(&opts.NoIcons, "no-icons", false, "never print the weather icon")
	flags.StringVar(&opts.IP, "ip", "", "look up this IP address instead of the caller's")

	return cmd
}

func run(cmd *cobra.Command, opts app.Options) (string, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("failed to load .env: %w", err)
	}

	cfg, err := config.NewConfig()
	if err != nil {
		return "", fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.NewLogger(serviceName, logger.Options{
		Level:    cfg.Log.Level,
		FilePath: cfg.Log.Path,
		Console:  os.Stderr,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create logger: %w", err)
	}

	application := app.New(*cfg, l)
	sc, err := application.Init()
	if err != nil {
		return "", err
	}
	defer func() {
		if err := application.Stop(sc); err != nil {
			l.Warn().Err(err).Msg("failed to sync HTTP trace log")
		}
	}()

	return application.Run(cmd.Context(), sc, opts)
}
