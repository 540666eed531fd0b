package output

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rpgo/retirement-cashflow/internal/domain"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for unknown report formats.
var ErrUnsupportedFormat = errors.New("unsupported report format")

// GenerateReport writes the report in the requested format to dir and returns the written paths.
// "all" writes every file format.
func GenerateReport(report *domain.ProjectionReport, format, dir string) ([]string, error) {
	if report == nil {
		return nil, errors.New("no report to generate")
	}
	if NormalizeFormatName(format) == "all" {
		var written []string
		for _, f := range builtInFormatters {
			if f.Name() == "console-lite" {
				continue
			}
			path, err := WriteFormatted(f, report, dir, FileExtension(f.Name()))
			if err != nil {
				return written, err
			}
			written = append(written, path)
		}
		return written, nil
	}

	f := GetFormatterByName(format)
	if f == nil {
		// enrich error with available formatters and aliases
		return nil, fmt.Errorf("%w: %q. Try one of: %s, all (aliases: %s)", ErrUnsupportedFormat, format, strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
	}
	path, err := WriteFormatted(f, report, dir, FileExtension(f.Name()))
	if err != nil {
		return nil, err
	}
	return []string{path}, nil
}

// SaveConfiguration writes a scenario configuration as YAML.
func SaveConfiguration(config *domain.Configuration, filename string) error {
	b, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0644)
}
