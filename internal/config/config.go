// Package config assembles the settings a run needs from flags, environment,
// an optional YAML file and the OS keyring.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/punchclock/internal/bamboo"
	"github.com/julianstephens/punchclock/internal/constants"
	"github.com/julianstephens/punchclock/internal/keyring"
	"github.com/julianstephens/punchclock/internal/logger"
	"github.com/julianstephens/punchclock/internal/utils"
)

var (
	// ErrMissing is wrapped by validation errors for settings that are not set.
	ErrMissing = errors.New("required setting missing")
	// ErrInvalid is wrapped by validation errors for settings with a bad value.
	ErrInvalid = errors.New("invalid setting")
)

// Config is the full set of run settings. The setting tag names the
// environment variable or flag reported in validation messages.
type Config struct {
	EmployeeID        string        `yaml:"employee_id" validate:"required,numeric" setting:"BAMBOO_EMPLOYEE_ID"`
	APIKey            string        `yaml:"api_key" validate:"required" setting:"BAMBOO_API_KEY"`
	BaseURL           string        `yaml:"base_url" validate:"required,url" setting:"BAMBOO_API_BASE_URL"`
	Timezone          string        `yaml:"timezone" validate:"tz" setting:"--timezone"`
	Timeout           time.Duration `yaml:"timeout" validate:"gte=0" setting:"--timeout"`
	// RequestsPerSecond is nil when unset; an explicit 0 disables pacing.
	RequestsPerSecond *float64      `yaml:"requests_per_second" validate:"omitempty,gte=0" setting:"--requests-per-second"`
	OnCheckFailure    string        `yaml:"on_check_failure" validate:"omitempty,oneof=fail-open fail-closed" setting:"--on-check-failure"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("setting"); name != "" {
			return name
		}
		return fld.Name
	})
	// validator's own timezone tag rejects "Local", which is our default
	_ = v.RegisterValidation("tz", func(fl validator.FieldLevel) bool {
		return utils.ValidateTimezone(fl.Field().String())
	})
	return v
}

// DefaultDir returns the directory holding the config file and logs.
func DefaultDir() string {
	return filepath.Dir(ExpandHome(constants.DefaultConfigPath))
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// LoadFile reads a YAML config file. A missing file yields an empty Config.
func LoadFile(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(ExpandHome(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// Merge returns c with every field that is set in o taking o's value.
func (c Config) Merge(o Config) Config {
	if o.EmployeeID != "" {
		c.EmployeeID = o.EmployeeID
	}
	if o.APIKey != "" {
		c.APIKey = o.APIKey
	}
	if o.BaseURL != "" {
		c.BaseURL = o.BaseURL
	}
	if o.Timezone != "" {
		c.Timezone = o.Timezone
	}
	if o.Timeout != 0 {
		c.Timeout = o.Timeout
	}
	if o.RequestsPerSecond != nil {
		c.RequestsPerSecond = o.RequestsPerSecond
	}
	if o.OnCheckFailure != "" {
		c.OnCheckFailure = o.OnCheckFailure
	}
	return c
}

// WithDefaults fills every unset optional field.
func (c Config) WithDefaults() Config {
	return Config{
		BaseURL:           constants.DefaultBaseURL,
		Timezone:          "Local",
		Timeout:           constants.DefaultTimeout,
		RequestsPerSecond: Rate(constants.DefaultRequestsPerSecond),
		OnCheckFailure:    "fail-open",
	}.Merge(c)
}

// Validate checks c and reports the first problem in terms of the setting
// the user has to change.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	e := verrs[0]
	switch e.Tag() {
	case "required":
		return fmt.Errorf("%w: %s is not set", ErrMissing, e.Field())
	case "numeric":
		return fmt.Errorf("%w: %s must be a numeric employee id, got %q", ErrInvalid, e.Field(), e.Value())
	case "url":
		return fmt.Errorf("%w: %s must be a URL, got %q", ErrInvalid, e.Field(), e.Value())
	case "tz":
		return fmt.Errorf("%w: %s %q is not a known timezone", ErrInvalid, e.Field(), e.Value())
	case "oneof":
		return fmt.Errorf("%w: %s must be one of %s", ErrInvalid, e.Field(), strings.ReplaceAll(e.Param(), " ", ", "))
	default:
		return fmt.Errorf("%w: %s is invalid", ErrInvalid, e.Field())
	}
}

// Rate returns a pointer to rps, for setting RequestsPerSecond.
func Rate(rps float64) *float64 {
	return &rps
}

// RequestRate returns the configured request rate, or the default when unset.
func (c Config) RequestRate() float64 {
	if c.RequestsPerSecond == nil {
		return constants.DefaultRequestsPerSecond
	}
	return *c.RequestsPerSecond
}

// Client converts c into the BambooHR client configuration.
func (c Config) Client() bamboo.Config {
	return bamboo.Config{
		EmployeeID:        c.EmployeeID,
		APIKey:            c.APIKey,
		BaseURL:           c.BaseURL,
		Timeout:           c.Timeout,
		RequestsPerSecond: c.RequestRate(),
	}
}

// Resolve layers the config file under the flag and environment values in
// flags, falls back to the OS keyring for the API key, applies defaults and
// validates the result.
func Resolve(flags Config, path string) (Config, error) {
	file, err := LoadFile(path)
	if err != nil {
		return Config{}, err
	}

	cfg := file.Merge(flags)
	if cfg.APIKey == "" {
		key, err := keyring.GetAPIKey()
		switch {
		case err == nil:
			logger.Debug("API key loaded from keyring")
			cfg.APIKey = key
		case !errors.Is(err, keyring.ErrNotFound):
			logger.Warn("keyring lookup failed", "error", err)
		}
	}

	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
