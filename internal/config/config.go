package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/younsl/idlestop/pkg/utils"
)

// EnvPrefix is the prefix of every environment variable read by Load
const EnvPrefix = "IDLESTOP"

// ErrInvalidConfig is returned by Validate for unusable settings
var ErrInvalidConfig = errors.New("invalid configuration")

// Config represents the application configuration
type Config struct {
	Region     string        `mapstructure:"region"`
	Threshold  float64       `mapstructure:"threshold"`
	Topic      string        `mapstructure:"topic"`
	Bucket     string        `mapstructure:"bucket"`
	KeyPrefix  string        `mapstructure:"key_prefix"`
	LinkExpiry time.Duration `mapstructure:"link_expiry"`
	Schedule   string        `mapstructure:"schedule"`
	Profile    string        `mapstructure:"profile"`
	LogLevel   string        `mapstructure:"log_level"`
	LogFormat  string        `mapstructure:"log_format"`
}

// Defaults applied before any file, environment or flag value
var defaults = map[string]interface{}{
	"region":      utils.GetDefaultRegion(),
	"threshold":   15.0,
	"topic":       "arn:aws:sns:us-east-1:887137766138:ec2-idle-alerts-fresh",
	"bucket":      "ec2-idle-reports-haridas",
	"key_prefix":  "",
	"link_expiry": time.Hour,
	"schedule":    "Every 1 hour",
	"profile":     "",
	"log_level":   "info",
	"log_format":  "json",
}

// Loader reads configuration from defaults, an optional YAML file,
// IDLESTOP_* environment variables and bound command line flags, in
// increasing order of precedence.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a Loader with defaults and environment binding set up
func NewLoader() *Loader {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return &Loader{v: v}
}

// SetDefault overrides a built-in default, e.g. the log format per entry point
func (l *Loader) SetDefault(key string, value interface{}) {
	l.v.SetDefault(key, value)
}

// BindFlags binds command line flags whose names match config keys
// (dashes are accepted in place of underscores).
func (l *Loader) BindFlags(flags *pflag.FlagSet) error {
	var bindErr error
	flags.VisitAll(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		if _, known := defaults[key]; !known {
			return
		}
		if err := l.v.BindPFlag(key, f); err != nil && bindErr == nil {
			bindErr = fmt.Errorf("failed to bind flag %s: %w", f.Name, err)
		}
	})
	return bindErr
}

// Load reads the configuration. path may be empty, in which case
// IDLESTOP_CONFIG is consulted and, if that is empty too, no file is read.
func (l *Loader) Load(path string) (*Config, error) {
	if path == "" {
		path = l.v.GetString("config")
	}
	if path != "" {
		l.v.SetConfigFile(path)
		l.v.SetConfigType("yaml")
		if err := l.v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// LoadValid reads the configuration and validates it
func (l *Loader) LoadValid(path string) (*Config, error) {
	cfg, err := l.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads and validates the configuration using a fresh Loader with the
// built-in defaults (JSON logs)
func Load(path string) (*Config, error) {
	return NewLoader().LoadValid(path)
}

// Validate checks that the configuration can drive a check
func (c *Config) Validate() error {
	var errs []error

	if !utils.IsValidRegion(c.Region) {
		errs = append(errs, fmt.Errorf("malformed region %q", c.Region))
	}
	if c.Threshold <= 0 || c.Threshold > 100 {
		errs = append(errs, fmt.Errorf("threshold must be in (0, 100], got %v", c.Threshold))
	}
	if c.Topic == "" {
		errs = append(errs, errors.New("topic is required"))
	} else if !strings.HasPrefix(c.Topic, "arn:") {
		errs = append(errs, fmt.Errorf("topic %q is not an SNS topic ARN", c.Topic))
	}
	if c.Bucket == "" {
		errs = append(errs, errors.New("bucket is required"))
	}
	if c.LinkExpiry <= 0 {
		errs = append(errs, fmt.Errorf("link_expiry must be positive, got %s", c.LinkExpiry))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// yamlConfig mirrors Config with durations in their string form
type yamlConfig struct {
	Region     string  `yaml:"region"`
	Threshold  float64 `yaml:"threshold"`
	Topic      string  `yaml:"topic"`
	Bucket     string  `yaml:"bucket"`
	KeyPrefix  string  `yaml:"key_prefix,omitempty"`
	LinkExpiry string  `yaml:"link_expiry"`
	Schedule   string  `yaml:"schedule"`
	Profile    string  `yaml:"profile,omitempty"`
	LogLevel   string  `yaml:"log_level"`
	LogFormat  string  `yaml:"log_format"`
}

// YAML renders the configuration as YAML that Load accepts back
func (c *Config) YAML() (string, error) {
	out, err := yaml.Marshal(yamlConfig{
		Region:     c.Region,
		Threshold:  c.Threshold,
		Topic:      c.Topic,
		Bucket:     c.Bucket,
		KeyPrefix:  c.KeyPrefix,
		LinkExpiry: c.LinkExpiry.String(),
		Schedule:   c.Schedule,
		Profile:    c.Profile,
		LogLevel:   c.LogLevel,
		LogFormat:  c.LogFormat,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}
	return string(out), nil
}
