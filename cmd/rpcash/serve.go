package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rpgo/retirement-cashflow/internal/calculation"
	"github.com/rpgo/retirement-cashflow/internal/config"
	"github.com/rpgo/retirement-cashflow/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var flagServeReturns string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the projection engine as a JSON API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	f := serveCmd.Flags()
	f.String("addr", config.DefaultServerAddress, "listen address")
	f.StringVarP(&flagServeReturns, "returns", "r", "", "return table CSV (defaults to the settings value)")
	_ = v.BindPFlag("server.address", f.Lookup("addr"))
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	path := flagServeReturns
	if path == "" {
		path = settings.ReturnTable
	}
	table, err := calculation.LoadReturnTable(path)
	if err != nil {
		return err
	}
	logger.Info("return table loaded", zap.String("op", "serve"), zap.String("path", path), zap.Int("rows", table.Len()))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(table, logger).Run(ctx, settings.Server.Address)
}
