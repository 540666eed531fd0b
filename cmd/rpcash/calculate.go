package main

import (
	"fmt"
	"io"

	"github.com/rpgo/retirement-cashflow/internal/calculation"
	"github.com/rpgo/retirement-cashflow/internal/config"
	"github.com/rpgo/retirement-cashflow/internal/domain"
	"github.com/rpgo/retirement-cashflow/internal/output"
	pct "github.com/rpgo/retirement-cashflow/pkg/decimal"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

var (
	flagConfig     string
	flagReturns    string
	flagFormat     string
	flagNoExtended bool
)

var calculateCmd = &cobra.Command{
	Use:   "calculate",
	Short: "Run a projection from a configuration file and/or flags",
	Example: "  rpcash calculate --config scenario.yaml --format html\n" +
		"  rpcash calculate --returns data/asset_return.csv --salary 12000 --replacement 20,40",
	Args: cobra.NoArgs,
	RunE: runCalculate,
}

func init() {
	f := calculateCmd.Flags()
	f.StringVarP(&flagConfig, "config", "c", "", "scenario configuration file (yaml)")
	f.StringVarP(&flagReturns, "returns", "r", "", "return table CSV (overrides the configuration)")
	f.StringVarP(&flagFormat, "format", "f", "console", "output format, or \"all\" (see `rpcash formats`)")
	f.StringP("output-dir", "o", config.DefaultOutputDir, "directory for report files")
	f.BoolVar(&flagNoExtended, "no-extended", false, "skip the merged wealth-vs-expense projection")
	addScenarioFlags(f)
	_ = v.BindPFlag("output_dir", f.Lookup("output-dir"))

	rootCmd.AddCommand(calculateCmd)
}

// addScenarioFlags registers the per-assumption overrides. Rates are percentages.
func addScenarioFlags(f *pflag.FlagSet) {
	f.Int("start-age", 0, "age when saving starts")
	f.Int("retire-age", 0, "retirement age")
	f.Int("death-age", 0, "age the projection ends")
	f.String("salary", "", "initial monthly salary")
	f.String("wealth", "", "initial wealth")
	f.String("contribution", "", "employee contribution rate, e.g. 8 or 8%")
	f.String("employer-contribution", "", "employer contribution rate")
	f.String("salary-growth", "", "annual salary growth rate")
	f.String("inflation", "", "annual inflation rate in retirement")
	f.String("post-return", "", "annual post-retirement discount rate")
	f.IntSlice("replacement", nil, "replacement costs as whole percentages, e.g. 15,20,30")
}

// applyScenarioFlags overwrites only the assumptions whose flags were set.
func applyScenarioFlags(f *pflag.FlagSet, in *domain.ScenarioInput) error {
	ints := map[string]*int{
		"start-age":  &in.StartAge,
		"retire-age": &in.RetireAge,
		"death-age":  &in.DeathAge,
	}
	for name, dst := range ints {
		if f.Changed(name) {
			n, err := f.GetInt(name)
			if err != nil {
				return err
			}
			*dst = n
		}
	}

	amounts := map[string]*decimal.Decimal{
		"salary": &in.InitialSalary,
		"wealth": &in.InitialWealth,
	}
	for name, dst := range amounts {
		if !f.Changed(name) {
			continue
		}
		raw, _ := f.GetString(name)
		m, err := pct.NewMoneyFromString(raw)
		if err != nil {
			return fmt.Errorf("%w: --%s: invalid amount %q", calculation.ErrInvalidScenario, name, raw)
		}
		*dst = m.Decimal
	}

	rates := map[string]*decimal.Decimal{
		"contribution":          &in.ContributionRate,
		"employer-contribution": &in.EmployerContributionRate,
		"salary-growth":         &in.SalaryGrowthRate,
		"inflation":             &in.InflationRate,
		"post-return":           &in.PostRetirementReturnRate,
	}
	for name, dst := range rates {
		if !f.Changed(name) {
			continue
		}
		raw, _ := f.GetString(name)
		d, err := pct.ParsePercentage(raw)
		if err != nil {
			return fmt.Errorf("%w: --%s: %v", calculation.ErrInvalidScenario, name, err)
		}
		*dst = d
	}

	if f.Changed("replacement") {
		percents, err := f.GetIntSlice("replacement")
		if err != nil {
			return err
		}
		in.ReplacementCostFractions = domain.PercentToFraction(percents)
	}
	return nil
}

// loadConfiguration resolves the scenario from the config file, defaults and flags.
func loadConfiguration(cmd *cobra.Command) (*domain.Configuration, error) {
	parser := config.NewInputParser()

	var cfg *domain.Configuration
	if flagConfig != "" {
		loaded, err := parser.LoadFromFile(flagConfig)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg = parser.CreateExampleConfiguration()
		cfg.ReturnTable = settings.ReturnTable
	}

	if flagReturns != "" {
		cfg.ReturnTable = flagReturns
	}
	if cfg.ReturnTable == "" {
		cfg.ReturnTable = settings.ReturnTable
	}
	if flagNoExtended {
		extended := false
		cfg.ExtendedProjection = &extended
	}
	if err := applyScenarioFlags(cmd.Flags(), &cfg.Scenario); err != nil {
		return nil, err
	}
	if err := parser.ValidateConfiguration(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runCalculate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfiguration(cmd)
	if err != nil {
		logger.Error("invalid configuration", zap.String("op", "calculate"), zap.Error(err))
		return err
	}

	logger.Debug("running projection",
		zap.String("op", "calculate"),
		zap.String("return_table", cfg.ReturnTable),
		zap.Int("replacement_costs", len(cfg.Scenario.ReplacementCostFractions)),
	)
	report, err := newEngine().RunConfiguration(cmd.Context(), cfg)
	if err != nil {
		logger.Error("projection failed", zap.String("op", "calculate"), zap.Error(err))
		return err
	}

	return writeReport(cmd.OutOrStdout(), report, flagFormat, settings.OutputDir)
}

// writeReport prints console formats and writes every other format to files in dir.
func writeReport(w io.Writer, report *domain.ProjectionReport, format, dir string) error {
	if output.IsConsoleFormat(format) {
		data, err := output.GetFormatterByName(format).Format(report)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}

	paths, err := output.GenerateReport(report, format, dir)
	if err != nil {
		return err
	}
	for _, p := range paths {
		logger.Info("report written", zap.String("op", "report"), zap.String("path", p))
		fmt.Fprintln(w, p)
	}
	return nil
}
