package main

import (
	"errors"
	"fmt"

	"github.com/rpgo/retirement-cashflow/internal/calculation"
	"github.com/rpgo/retirement-cashflow/internal/domain"
	"github.com/rpgo/retirement-cashflow/internal/form"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagInteractiveReturns string
	flagInteractiveFormat  string
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Enter assumptions in a terminal form and print the projection",
	Args:  cobra.NoArgs,
	RunE:  runInteractive,
}

func init() {
	f := interactiveCmd.Flags()
	f.StringVarP(&flagInteractiveReturns, "returns", "r", "", "return table CSV (defaults to the settings value)")
	f.StringVarP(&flagInteractiveFormat, "format", "f", "console", "output format for the result")
	rootCmd.AddCommand(interactiveCmd)
}

func runInteractive(cmd *cobra.Command, _ []string) error {
	path := flagInteractiveReturns
	if path == "" {
		path = settings.ReturnTable
	}
	// load before the form so a bad table fails fast
	table, err := calculation.LoadReturnTable(path)
	if err != nil {
		return err
	}

	input, err := form.Run(cmd.Context(), domain.DefaultScenarioInput())
	if errors.Is(err, form.ErrAborted) {
		fmt.Fprintln(cmd.ErrOrStderr(), "Cancelled.")
		return nil
	}
	if err != nil {
		return err
	}

	report, err := newEngine().RunScenario(cmd.Context(), input, table)
	if err != nil {
		logger.Error("projection failed", zap.String("op", "interactive"), zap.Error(err))
		return err
	}
	return writeReport(cmd.OutOrStdout(), report, flagInteractiveFormat, settings.OutputDir)
}
