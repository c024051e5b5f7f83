package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// ErrInvalidConfiguration marks configuration errors that must abort a run
// before any generation work starts.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Config is the full configuration surface of the generator.
type Config struct {
	Donors      int    `mapstructure:"DONORS" json:"donors"`
	Biobanks    int    `mapstructure:"BIOBANKS" json:"biobanks"`
	Collections int    `mapstructure:"COLLECTIONS" json:"collections"`
	Output      string `mapstructure:"OUTPUT" json:"output,omitempty"`

	// Seed 0 means "derive a seed from system entropy and disclose it".
	Seed int64 `mapstructure:"SEED" json:"seed"`

	SpecimensMin int `mapstructure:"SPECIMENS_MIN" json:"specimensMin"`
	SpecimensMax int `mapstructure:"SPECIMENS_MAX" json:"specimensMax"`

	// ObservationProbability is the chance each specimen gets a diagnosis
	// annotation. 1 reproduces the historical one-per-specimen behavior.
	ObservationProbability float64 `mapstructure:"OBSERVATION_PROBABILITY" json:"observationProbability"`

	Port string `mapstructure:"PORT" json:"-"`
	Env  string `mapstructure:"ENV" json:"-"`
}

// Load reads configuration from the environment and an optional .env file.
// CLI flags are applied on top by the caller.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("BIOBANKS", 1)
	v.SetDefault("COLLECTIONS", 1)
	v.SetDefault("SPECIMENS_MIN", 1)
	v.SetDefault("SPECIMENS_MAX", 3)
	v.SetDefault("OBSERVATION_PROBABILITY", 1.0)
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("DONORS")
	v.BindEnv("BIOBANKS")
	v.BindEnv("COLLECTIONS")
	v.BindEnv("OUTPUT")
	v.BindEnv("SEED")
	v.BindEnv("SPECIMENS_MIN")
	v.BindEnv("SPECIMENS_MAX")
	v.BindEnv("OBSERVATION_PROBABILITY")
	v.BindEnv("PORT")
	v.BindEnv("ENV")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return cfg, nil
}

// IsDev reports whether the generator runs in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// ResolvedOutput returns the output path, deriving the default from the donor
// count when none was configured.
func (c *Config) ResolvedOutput() string {
	if c.Output != "" {
		return c.Output
	}
	return fmt.Sprintf("bundles/miabis-bundle-%ddonors.json", c.Donors)
}

// Validate checks the configuration before any generation work. Each failure
// wraps ErrInvalidConfiguration so callers can classify it.
func (c *Config) Validate() error {
	if c.Donors < 1 {
		return fmt.Errorf("%w: donor count must be positive, got %d", ErrInvalidConfiguration, c.Donors)
	}
	if c.Biobanks < 1 {
		return fmt.Errorf("%w: biobank count must be positive, got %d", ErrInvalidConfiguration, c.Biobanks)
	}
	if c.Collections < 1 {
		return fmt.Errorf("%w: collection count must be positive, got %d", ErrInvalidConfiguration, c.Collections)
	}
	if c.Collections > c.Donors {
		return fmt.Errorf("%w: collection count %d exceeds donor count %d, round-robin distribution would leave collections empty",
			ErrInvalidConfiguration, c.Collections, c.Donors)
	}
	if c.SpecimensMin < 1 {
		return fmt.Errorf("%w: specimens per donor lower bound must be positive, got %d", ErrInvalidConfiguration, c.SpecimensMin)
	}
	if c.SpecimensMax < c.SpecimensMin {
		return fmt.Errorf("%w: specimens per donor band [%d, %d] is inverted",
			ErrInvalidConfiguration, c.SpecimensMin, c.SpecimensMax)
	}
	if c.ObservationProbability < 0 || c.ObservationProbability > 1 {
		return fmt.Errorf("%w: observation probability must be within [0, 1], got %g",
			ErrInvalidConfiguration, c.ObservationProbability)
	}
	return nil
}
