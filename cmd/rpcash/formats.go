package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rpgo/retirement-cashflow/internal/output"
	"github.com/spf13/cobra"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List report formats and their aliases",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		aliases := map[string][]string{}
		for _, a := range output.AvailableFormatAliases() {
			target := output.NormalizeFormatName(a)
			aliases[target] = append(aliases[target], a)
		}

		table := output.Table{Title: "Report formats", Headers: []string{"Format", "File", "Aliases"}}
		for _, name := range output.AvailableFormatterNames() {
			dest := "." + output.FileExtension(name)
			if output.IsConsoleFormat(name) {
				dest = "stdout"
			}
			names := aliases[name]
			sort.Strings(names)
			alias := "-"
			if len(names) > 0 {
				alias = strings.Join(names, ", ")
			}
			table.Rows = append(table.Rows, []string{name, dest, alias})
		}
		fmt.Fprint(cmd.OutOrStdout(), output.RenderTable(table))
		fmt.Fprintln(cmd.OutOrStdout(), "Use \"all\" to write every file format at once.")
	},
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}
