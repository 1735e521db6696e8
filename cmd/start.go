package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tesh254/ukify/internal/config"
	"github.com/tesh254/ukify/internal/core"
	"github.com/tesh254/ukify/internal/logger"
)

var startCmd = &cobra.Command{
	Use:     "start",
	Aliases: []string{"serve"},
	Short:   "Starts the MCP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := runtimeConfig()
		if err != nil {
			return err
		}

		// The dictionary must load before any tool can be served.
		a, release, err := loadAPI(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer release()

		server := core.New(a)
		logger.Info("starting MCP server (%s transport)", cfg.Transport)

		switch cfg.Transport {
		case "http":
			err = server.ServeHTTP(cmd.Context(), cfg.HTTPAddress)
		default:
			err = server.ServeStdio(cmd.Context())
		}
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
	startCmd.Flags().String(config.KeyHTTPAddress, config.Default().HTTPAddress, "HTTP address to listen on")
	startCmd.Flags().String(config.KeyTransport, config.Default().Transport, "Transport type (stdio or http)")
	viper.BindPFlag(config.KeyHTTPAddress, startCmd.Flags().Lookup(config.KeyHTTPAddress))
	viper.BindPFlag(config.KeyTransport, startCmd.Flags().Lookup(config.KeyTransport))
}
