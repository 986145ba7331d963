package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"seqapi/internal/api"
	"seqapi/internal/config"
)

var (
	servePort string
	serveHost string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP API server",
	Long: `Start the seqapi HTTP server.

The listen port comes from --port, then the PORT environment variable, then the
config file. Missing or non-numeric values fall back to 3000.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&servePort, "port", "", "Port to listen on (overrides PORT)")
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host to bind to (default: all interfaces)")
}

func runServe(cmd *cobra.Command, args []string) error {
	result, err := loadConfig()
	if err != nil {
		return err
	}
	cfg := result.Config

	if cmd.Flags().Changed("port") {
		cfg.Server.Port = config.ParsePort(servePort)
	}
	if cmd.Flags().Changed("host") {
		cfg.Server.Host = serveHost
	}

	logger, err := newLogger(cfg.Logging)
	if err != nil {
		return err
	}
	if result.ConfigPath != "" {
		logger.Info("Loaded config file", map[string]interface{}{"path": result.ConfigPath})
	}

	server := api.NewServer(cfg, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	host := cfg.Server.Host
	if host == "" {
		host = "localhost"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Server listening on http://%s:%d\n", host, cfg.Server.Port)

	if err := server.Run(ctx); err != nil {
		logger.Error("Server error", map[string]interface{}{
			"error": err.Error(),
		})
		return err
	}

	logger.Info("Server stopped gracefully", nil)
	return nil
}
