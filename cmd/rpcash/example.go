package main

import (
	"fmt"

	"github.com/rpgo/retirement-cashflow/internal/config"
	"github.com/rpgo/retirement-cashflow/internal/output"
	"github.com/spf13/cobra"
)

var exampleCmd = &cobra.Command{
	Use:   "example [file]",
	Short: "Write an example scenario configuration",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := "example_config.yaml"
		if len(args) == 1 {
			filename = args[0]
		}
		if err := output.SaveConfiguration(config.NewInputParser().CreateExampleConfiguration(), filename); err != nil {
			return fmt.Errorf("failed to write example configuration: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Example configuration written to %s\n", filename)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exampleCmd)
}
