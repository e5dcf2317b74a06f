// Package config defines the data structures related to configuration and
// includes functions for loading and validating it.
package config

import (
	"fmt"
	"io"
	"strings"
	"time"

	cerrors "cloudeng.io/errors"
	"github.com/iwvelando/omnicalc/pkg/constants"
	"github.com/iwvelando/omnicalc/pkg/currency"
	"github.com/iwvelando/omnicalc/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for omnicalc.
type Configuration struct {
	Logging  LoggingConfig  `yaml:"logging,omitempty"`
	Output   OutputConfig   `yaml:"output,omitempty"`
	Server   ServerConfig   `yaml:"server,omitempty"`
	Currency CurrencyConfig `yaml:"currency,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, json
}

// ServerConfig points at the HTTP server settings.
type ServerConfig struct {
	Address    string `yaml:"address,omitempty"`
	ConfigFile string `yaml:"configFile,omitempty"` // server-only YAML, see internal/server
}

// CurrencyConfig controls live exchange rate fetches.
type CurrencyConfig struct {
	Endpoint          string `yaml:"endpoint,omitempty"`
	TimeoutSeconds    int    `yaml:"timeoutSeconds,omitempty"`
	CacheSeconds      int    `yaml:"cacheSeconds,omitempty"`
	RequestsPerMinute int    `yaml:"requestsPerMinute,omitempty"`
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.outputFile", "")
	v.SetDefault("output.format", constants.OutputFormatPretty)
	v.SetDefault("server.address", constants.DefaultServerAddress)
	v.SetDefault("server.configFile", "")
	v.SetDefault("currency.endpoint", constants.DefaultRatesEndpoint)
	v.SetDefault("currency.timeoutSeconds", constants.DefaultRatesTimeoutSeconds)
	v.SetDefault("currency.cacheSeconds", constants.DefaultRatesCacheSeconds)
	v.SetDefault("currency.requestsPerMinute", constants.DefaultRatesPerMinute)
	return v
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. Environment variables prefixed with OMNICALC_
// override file values, e.g. OMNICALC_LOGGING_LEVEL.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads YAML configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config, %s", err)
	}
	return decode(v)
}

// Defaults returns the configuration used when no file is given, with
// environment overrides applied.
func Defaults() (*Configuration, error) {
	return decode(newViper())
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	return &configuration, nil
}

// Validate returns every setting that cannot be used.
func (c *Configuration) Validate() error {
	errs := &cerrors.M{}
	if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
		errs.Append(fmt.Errorf("output.format: %w", err))
	}
	switch c.Logging.Format {
	case "", "json", "console":
	default:
		errs.Append(fmt.Errorf("logging.format: expected json or console, got %s", c.Logging.Format))
	}
	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		errs.Append(fmt.Errorf("logging.level: expected debug, info, warn or error, got %s", c.Logging.Level))
	}
	if c.Currency.Endpoint != "" && !strings.HasPrefix(c.Currency.Endpoint, "http://") && !strings.HasPrefix(c.Currency.Endpoint, "https://") {
		errs.Append(fmt.Errorf("currency.endpoint: expected an http(s) URL, got %s", c.Currency.Endpoint))
	}
	return errs.Err()
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if c.Currency.CacheSeconds <= 0 {
		warnings = append(warnings, fmt.Sprintf("currency.cacheSeconds is %d; rates will be refetched with the default %ds cache",
			c.Currency.CacheSeconds, constants.DefaultRatesCacheSeconds))
	}
	if c.Currency.RequestsPerMinute <= 0 {
		warnings = append(warnings, fmt.Sprintf("currency.requestsPerMinute is %d; using the default of %d",
			c.Currency.RequestsPerMinute, constants.DefaultRatesPerMinute))
	}
	if c.Currency.TimeoutSeconds <= 0 {
		warnings = append(warnings, fmt.Sprintf("currency.timeoutSeconds is %d; using the default of %ds",
			c.Currency.TimeoutSeconds, constants.DefaultRatesTimeoutSeconds))
	}
	if c.Currency.CacheSeconds > 0 && c.Currency.RequestsPerMinute > 0 &&
		c.Currency.CacheSeconds < 60/c.Currency.RequestsPerMinute {
		warnings = append(warnings, "currency.cacheSeconds is shorter than the fetch interval; expect stale rates between fetches")
	}
	if strings.EqualFold(c.Logging.Level, "debug") && c.Logging.Format == "json" && c.Logging.OutputFile == "" {
		warnings = append(warnings, "debug logging in json format is written to stderr; consider logging.outputFile")
	}

	return warnings
}

// CurrencyClientConfig converts the currency section for currency.NewClient.
func (c *Configuration) CurrencyClientConfig() currency.ClientConfig {
	return currency.ClientConfig{
		Endpoint:          c.Currency.Endpoint,
		Timeout:           time.Duration(c.Currency.TimeoutSeconds) * time.Second,
		CacheTTL:          time.Duration(c.Currency.CacheSeconds) * time.Second,
		RequestsPerMinute: c.Currency.RequestsPerMinute,
	}
}
