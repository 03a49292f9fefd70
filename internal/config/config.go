// Package config provides configuration management for formkit using Viper.
package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// AppName is the application name used for config file naming and the
// environment variable prefix.
const AppName = "formkit"

// Output formats for submitted records and error reports.
const (
	OutputJSON   = "json"
	OutputYAML   = "yaml"
	OutputPretty = "pretty"
)

// Config represents the top-level configuration structure.
type Config struct {
	// Form is a path to a form definition. Empty selects the bundled
	// registration form.
	Form             string `mapstructure:"form" yaml:"form"`
	Output           string `mapstructure:"output" yaml:"output"`
	LogLevel         string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat        string `mapstructure:"log_format" yaml:"log_format"`
	ValidateOnChange bool   `mapstructure:"validate_on_change" yaml:"validate_on_change"`
	ValidateOnBlur   bool   `mapstructure:"validate_on_blur" yaml:"validate_on_blur"`
	ConfirmSubmit    bool   `mapstructure:"confirm_submit" yaml:"confirm_submit"`
	MaxAttempts      int    `mapstructure:"max_attempts" yaml:"max_attempts"`
}

// New returns a Viper instance with defaults, search paths and environment
// binding applied.
func New() *viper.Viper {
	v := viper.New()
	v.SetConfigName(AppName)
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	v.AddConfigPath(filepath.Join(xdg.ConfigHome, AppName))

	v.SetEnvPrefix("FORMKIT")
	v.AutomaticEnv()

	v.SetDefault("form", "")
	v.SetDefault("output", OutputJSON)
	v.SetDefault("log_level", "")
	v.SetDefault("log_format", "text")
	v.SetDefault("validate_on_change", true)
	v.SetDefault("validate_on_blur", true)
	v.SetDefault("confirm_submit", false)
	v.SetDefault("max_attempts", 0)
	return v
}

// Load reads the configuration into v. When path is set that file must
// exist; otherwise a missing file falls back to defaults.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && path == "":
		case errors.As(err, &notFound), errors.Is(err, os.ErrNotExist):
			return nil, errors.Wrapf(err, "config file not found at %s", path)
		default:
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}
	return &cfg, nil
}

// DefaultEnvFile is the dotenv file read when no other file is named.
const DefaultEnvFile = ".env"

// LoadEnvFile exports the variables in a dotenv file into the process
// environment so FORMKIT_* keys reach viper. Variables already set are left
// alone. A missing file is only an error when required is true.
func LoadEnvFile(path string, required bool) error {
	if path == "" {
		path = DefaultEnvFile
	}
	if err := godotenv.Load(path); err != nil {
		if !required && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return errors.Wrapf(err, "loading env file %s", path)
	}
	return nil
}
