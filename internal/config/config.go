// Package config loads CLI defaults from the environment.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Defaults holds environment-provided defaults for the CLI. Explicit
// flags take precedence over every value here.
type Defaults struct {
	// Format is the output format: table, json, csv or summary.
	Format string `mapstructure:"format"`
	// Sort is the entry ordering: name, size, modified or type.
	Sort string `mapstructure:"sort"`
	// All includes hidden entries.
	All bool `mapstructure:"all"`
	// Limit caps the number of entries shown in detail output.
	Limit int `mapstructure:"limit"`
}

// Load reads FSTAT_* environment variables over built-in defaults.
func Load() (*Defaults, error) {
	v := viper.New()

	v.SetDefault("format", "table")
	v.SetDefault("sort", "name")
	v.SetDefault("all", false)
	v.SetDefault("limit", 0)

	v.SetEnvPrefix("FSTAT")
	v.AutomaticEnv()

	var d Defaults
	if err := v.Unmarshal(&d); err != nil {
		return nil, fmt.Errorf("loading environment defaults: %w", err)
	}

	return &d, nil
}
