package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"github.com/stitts-dev/lineupgen/internal/optimizer"
)

// EnvPrefix is prepended to every environment variable, e.g. LINEUPGEN_PRESET
const EnvPrefix = "LINEUPGEN"

type Config struct {
	// Runtime
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// Roster
	Preset      string `mapstructure:"PRESET" validate:"required"`
	SalaryCap   int    `mapstructure:"SALARY_CAP" validate:"gte=0"`
	SalaryFloor int    `mapstructure:"SALARY_FLOOR" validate:"gte=0"`

	// Search
	NumLineups       int           `mapstructure:"NUM_LINEUPS" validate:"gte=1,lte=10000"`
	FailureThreshold int           `mapstructure:"FAILURE_THRESHOLD" validate:"gte=1"`
	Workers          int           `mapstructure:"WORKERS" validate:"gte=1,lte=64"`
	Seed             int64         `mapstructure:"SEED"`
	Timeout          time.Duration `mapstructure:"TIMEOUT" validate:"gte=0"`

	// Input
	PoolPath string   `mapstructure:"POOL_PATH"`
	Likes    []string `mapstructure:"LIKES"`

	// Output
	Format      string `mapstructure:"FORMAT" validate:"oneof=table json csv"`
	MetricsFile string `mapstructure:"METRICS_FILE"`
}

// SetDefaults registers every key so environment overrides are picked up on Unmarshal
func SetDefaults(v *viper.Viper) {
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("PRESET", "nba-fanduel")
	v.SetDefault("SALARY_CAP", 0)   // 0 keeps the preset cap
	v.SetDefault("SALARY_FLOOR", 0) // 0 keeps 95% of the cap
	v.SetDefault("NUM_LINEUPS", 1)
	v.SetDefault("FAILURE_THRESHOLD", optimizer.DefaultFailureThreshold)
	v.SetDefault("WORKERS", 1)
	v.SetDefault("SEED", 0) // 0 seeds from the clock
	v.SetDefault("TIMEOUT", "0s")
	v.SetDefault("POOL_PATH", "")
	v.SetDefault("LIKES", []string{})
	v.SetDefault("FORMAT", "table")
	v.SetDefault("METRICS_FILE", "")
}

// LoadConfig reads the process-wide viper instance
func LoadConfig() (*Config, error) {
	return Load(viper.GetViper())
}

// Load reads defaults, an optional .env file, LINEUPGEN_ environment
// variables and any flags already bound to v, then validates the result.
func Load(v *viper.Viper) (*Config, error) {
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")

	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	config.Preset = strings.ToLower(strings.TrimSpace(config.Preset))
	config.Format = strings.ToLower(strings.TrimSpace(config.Format))

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks field bounds and the salary band
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.SalaryCap > 0 && c.SalaryFloor >= c.SalaryCap {
		return fmt.Errorf("invalid configuration: salary floor %d must be below salary cap %d", c.SalaryFloor, c.SalaryCap)
	}
	return nil
}

// IsDevelopment reports whether the run uses development logging
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Template resolves the roster preset and applies any salary overrides
func (c *Config) Template() (optimizer.RosterTemplate, error) {
	template, err := optimizer.GetTemplate(c.Preset)
	if err != nil {
		return optimizer.RosterTemplate{}, err
	}

	if c.SalaryCap > 0 {
		template.SalaryCap = c.SalaryCap
		template.SalaryFloor = optimizer.DefaultSalaryFloor(c.SalaryCap)
	}
	if c.SalaryFloor > 0 {
		template.SalaryFloor = c.SalaryFloor
	}

	if err := template.Validate(); err != nil {
		return optimizer.RosterTemplate{}, err
	}
	return template, nil
}

// AssembleConfig maps the search settings onto the optimizer's config
func (c *Config) AssembleConfig() optimizer.AssembleConfig {
	return optimizer.AssembleConfig{
		NumLineups:       c.NumLineups,
		FailureThreshold: c.FailureThreshold,
		Workers:          c.Workers,
		Seed:             c.Seed,
	}
}
