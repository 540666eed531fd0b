package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rpgo/retirement-cashflow/internal/calculation"
	"github.com/rpgo/retirement-cashflow/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Upper bounds offered by the input form.
var (
	MaxContributionRate = decimal.NewFromFloat(0.50)
	MaxGrowthRate       = decimal.NewFromFloat(0.10)
	MaxReplacementCost  = decimal.NewFromInt(1)
)

// InputParser handles parsing of input configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads configuration from a YAML or JSON file.
// A relative return_table path is resolved against the configuration file's directory.
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	config, err := ip.Parse(data)
	if err != nil {
		return nil, err
	}

	if config.ReturnTable != "" && !filepath.IsAbs(config.ReturnTable) {
		config.ReturnTable = filepath.Join(filepath.Dir(filename), config.ReturnTable)
	}

	return config, nil
}

// Parse decodes and validates a configuration document.
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Validate the configuration
	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if config == nil {
		return fmt.Errorf("%w: configuration is empty", calculation.ErrInvalidScenario)
	}
	if err := ip.ValidateScenario(config.Scenario); err != nil {
		return fmt.Errorf("scenario validation failed: %w", err)
	}
	return nil
}

// ValidateScenario applies the engine's checks plus the form's upper bounds.
func (ip *InputParser) ValidateScenario(s domain.ScenarioInput) error {
	if err := calculation.ValidateScenario(s); err != nil {
		return err
	}

	if s.ContributionRate.GreaterThan(MaxContributionRate) {
		return fmt.Errorf("%w: contribution rate must be at most 50%%", calculation.ErrInvalidScenario)
	}
	if s.EmployerContributionRate.GreaterThan(MaxContributionRate) {
		return fmt.Errorf("%w: employer contribution rate must be at most 50%%", calculation.ErrInvalidScenario)
	}
	if s.SalaryGrowthRate.GreaterThan(MaxGrowthRate) {
		return fmt.Errorf("%w: salary growth rate must be at most 10%%", calculation.ErrInvalidScenario)
	}
	if s.InflationRate.GreaterThan(MaxGrowthRate) {
		return fmt.Errorf("%w: inflation rate must be at most 10%%", calculation.ErrInvalidScenario)
	}
	if s.PostRetirementReturnRate.GreaterThan(MaxGrowthRate) {
		return fmt.Errorf("%w: post-retirement return rate must be at most 10%%", calculation.ErrInvalidScenario)
	}
	for _, f := range s.ReplacementCostFractions {
		if f.GreaterThan(MaxReplacementCost) {
			return fmt.Errorf("%w: replacement cost %s exceeds 100%% of final salary", calculation.ErrInvalidScenario, f.String())
		}
	}

	return nil
}

// CreateExampleConfiguration creates an example configuration file
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	extended := true
	return &domain.Configuration{
		ReturnTable:        DefaultReturnTable,
		ExtendedProjection: &extended,
		Scenario:           domain.DefaultScenarioInput(),
	}
}
