package config

import (
	"fmt"
	"net"
	"slices"

	"github.com/rs/zerolog"
)

// CatalogConfig locates the pre-ingested course catalog.
type CatalogConfig struct {
	// Path is the JSON catalog file shaped as {"results": [...]}.
	Path string `json:"path"`
	// Term selects the records whose srcdb matches. It may be left empty and given on the command line.
	Term string `json:"term"`
}

func (c *CatalogConfig) SetDefaults() {
	if c.Path == "" {
		c.Path = "catalog.json"
	}
}

func (c CatalogConfig) Validate() error {
	if c.Path == "" {
		return fmt.Errorf("path is required")
	}
	return nil
}

// SearchConfig bounds and orders the schedule enumeration.
type SearchConfig struct {
	// MaxSchedules stops the enumeration once this many distinct schedules are accepted.
	MaxSchedules int `json:"max_schedules"`
	// MaxResults keeps the top schedules only; zero keeps them all.
	MaxResults int `json:"max_results"`
	// Shuffle randomizes branching order between runs.
	Shuffle bool `json:"shuffle"`
	// Seed fixes the shuffle; zero draws a fresh order on every run.
	Seed uint64 `json:"seed"`
}

func (c *SearchConfig) SetDefaults() {
	if c.MaxSchedules == 0 {
		c.MaxSchedules = 9999
	}
}

func (c SearchConfig) Validate() error {
	if c.MaxSchedules < 0 {
		return fmt.Errorf("max_schedules cannot be negative, got %d", c.MaxSchedules)
	}
	if c.MaxResults < 0 {
		return fmt.Errorf("max_results cannot be negative, got %d", c.MaxResults)
	}
	return nil
}

type LoggingConfig struct {
	Level string `json:"level"`
}

func (c *LoggingConfig) SetDefaults() {
	if c.Level == "" {
		c.Level = zerolog.InfoLevel.String()
	}
}

func (c LoggingConfig) Validate() error {
	if _, err := zerolog.ParseLevel(c.Level); err != nil {
		return fmt.Errorf("unknown level %s", c.Level)
	}
	return nil
}

// MetricsConfig controls the Prometheus endpoint of the CLI.
type MetricsConfig struct {
	Enabled bool   `json:"enabled"`
	Address string `json:"address"`
	Sink    string `json:"sink"`
}

var metricsSinks = []string{"prometheus", "nop"}

func (c *MetricsConfig) SetDefaults() {
	if c.Address == "" {
		c.Address = ":2112"
	}
	if c.Sink == "" {
		c.Sink = "prometheus"
	}
}

func (c MetricsConfig) Validate() error {
	if !slices.Contains(metricsSinks, c.Sink) {
		return fmt.Errorf("unknown sink %s", c.Sink)
	}
	if !c.Enabled {
		return nil
	}
	if _, _, err := net.SplitHostPort(c.Address); err != nil {
		return fmt.Errorf("invalid address %q: %w", c.Address, err)
	}
	return nil
}
