package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Defaults for application settings.
const (
	DefaultReturnTable   = "data/asset_return.csv"
	DefaultOutputDir     = "."
	DefaultServerAddress = ":8080"
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	EnvPrefix            = "RPCASH"
)

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputFile string `mapstructure:"output_file"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Address string `mapstructure:"address"`
}

// Settings are application-level options layered from defaults, an optional
// settings file, RPCASH_* environment variables and bound flags.
type Settings struct {
	Logging     LoggingConfig `mapstructure:"logging"`
	Server      ServerConfig  `mapstructure:"server"`
	ReturnTable string        `mapstructure:"return_table"`
	OutputDir   string        `mapstructure:"output_dir"`
}

// NewViper returns a viper instance with defaults and environment lookup configured.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.format", DefaultLogFormat)
	v.SetDefault("logging.output_file", "")
	v.SetDefault("server.address", DefaultServerAddress)
	v.SetDefault("return_table", DefaultReturnTable)
	v.SetDefault("output_dir", DefaultOutputDir)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadSettings reads the optional settings file into v and decodes the result.
func LoadSettings(v *viper.Viper, settingsPath string) (*Settings, error) {
	if settingsPath != "" {
		v.SetConfigFile(settingsPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading settings file %s: %w", settingsPath, err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("unable to decode settings: %w", err)
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &settings, nil
}

// Validate checks the logging options.
func (s *Settings) Validate() error {
	switch strings.ToLower(s.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log level: %s", s.Logging.Level)
	}
	switch strings.ToLower(s.Logging.Format) {
	case "console", "json":
	default:
		return fmt.Errorf("invalid log format: %s", s.Logging.Format)
	}
	return nil
}
