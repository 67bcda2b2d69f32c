package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/Project-Sylos/Studio/internal/api"
	"github.com/Project-Sylos/Studio/internal/logging"
	"github.com/Project-Sylos/Studio/sdk"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the studio HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		studio, err := sdk.New(configPath)
		if err != nil {
			return fmt.Errorf("failed to initialize studio: %w", err)
		}

		cfg := studio.GetConfig()
		if cmd.Flags().Changed("host") {
			cfg.API.Host = serveHost
		}
		if cmd.Flags().Changed("port") {
			cfg.API.Port = servePort
		}

		server := api.NewServer(studio, &cfg.API)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			errCh <- server.Start()
		}()

		select {
		case err := <-errCh:
			studio.Close()
			return err
		case <-ctx.Done():
		}

		logging.L().Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Stop(shutdownCtx); err != nil {
			logging.L().Error("error during shutdown", zap.Error(err))
			return err
		}
		logging.L().Info("server shutdown complete")
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Override the configured listen host")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Override the configured listen port")
	rootCmd.AddCommand(serveCmd)
}
