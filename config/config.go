// Package config holds the configuration of the performance sheet pipeline:
// where the source and output workbooks are, and how the source workbooks
// are laid out.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/perfsheet"
	"github.com/etnz/perfsheet/date"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables overriding the configuration file.
const (
	EnvBaseDir  = "PERFSHEET_BASE_DIR"
	EnvLogLevel = "PERFSHEET_LOG_LEVEL"
)

// Config is the configuration of a run. Every stage receives it explicitly.
type Config struct {
	BaseDir         string                          `yaml:"base_dir"`
	Files           Files                           `yaml:"files"`
	Holdings        perfsheet.HoldingsLayout        `yaml:"holdings"`
	Performance     perfsheet.PerformanceLayout     `yaml:"performance"`
	Allocations     perfsheet.AllocationLayout      `yaml:"allocations"`
	Characteristics perfsheet.CharacteristicsLayout `yaml:"characteristics"`
	Logging         Logging                         `yaml:"logging"`
}

// Files are the workbook names, relative to BaseDir unless absolute.
type Files struct {
	HoldingsExport string `yaml:"holdings_export"`
	HoldingsSheet  string `yaml:"holdings_sheet"` // empty reads the first sheet

	// The performance export is named PerformancePrefix + end of previous
	// month (YYYY-MM-DD) + ".xlsx".
	PerformancePrefix string `yaml:"performance_prefix"`
	PerformanceSheet  string `yaml:"performance_sheet"`

	AllocationTemplate      string `yaml:"allocation_template"`
	AllocationSheet         string `yaml:"allocation_sheet"`
	CharacteristicsWorkbook string `yaml:"characteristics_workbook"`
	CapsWorkbook            string `yaml:"caps_workbook"` // empty uses HoldingsOutput

	HoldingsOutput    string `yaml:"holdings_output"`
	PerformanceOutput string `yaml:"performance_output"`
	AllocationsOutput string `yaml:"allocations_output"`
	MasterOutput      string `yaml:"master_output"`
}

// Logging configures the logger.
type Logging struct {
	Level  string `yaml:"level"` // debug, info, warn, error
	Pretty bool   `yaml:"pretty"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		BaseDir: ".",
		Files: Files{
			HoldingsExport:          "holdings_export.xlsx",
			PerformancePrefix:       "performance_",
			AllocationTemplate:      "allocation_template.xlsx",
			CharacteristicsWorkbook: "characteristics.xlsx",
			HoldingsOutput:          "holdings.xlsx",
			PerformanceOutput:       "performance.xlsx",
			AllocationsOutput:       "allocations.xlsx",
			MasterOutput:            "performance_sheet.xlsx",
		},
		Holdings:        perfsheet.DefaultHoldingsLayout(),
		Performance:     perfsheet.DefaultPerformanceLayout(),
		Allocations:     perfsheet.DefaultAllocationLayout(),
		Characteristics: perfsheet.DefaultCharacteristicsLayout(),
		Logging:         Logging{Level: "info"},
	}
}

// Load reads the YAML configuration at path over the defaults, then applies
// the environment overrides. A .env file in the working directory is loaded
// first when present.
//
// A missing file is only an error when required is true. A .env file that
// cannot be parsed is always an error.
func Load(path string, required bool) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("cannot load .env: %w", err)
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist) && !required:
		case err != nil:
			return nil, fmt.Errorf("cannot read configuration %q: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("cannot parse configuration %q: %w", path, err)
			}
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// applyEnvOverrides overrides fields whose environment variable is set.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(EnvBaseDir); v != "" {
		cfg.BaseDir = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = v
	}
}

// Validate checks the configuration before any workbook is touched.
func (c *Config) Validate() error {
	if c.BaseDir == "" {
		return errors.New("base_dir is required")
	}
	for name, v := range map[string]string{
		"holdings_export":          c.Files.HoldingsExport,
		"performance_prefix":       c.Files.PerformancePrefix,
		"allocation_template":      c.Files.AllocationTemplate,
		"characteristics_workbook": c.Files.CharacteristicsWorkbook,
		"holdings_output":          c.Files.HoldingsOutput,
		"performance_output":       c.Files.PerformanceOutput,
		"allocations_output":       c.Files.AllocationsOutput,
		"master_output":            c.Files.MasterOutput,
	} {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("files.%s is required", name)
		}
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Logging.Level)
	}

	var errs []error
	errs = append(errs, c.Holdings.Validate())
	errs = append(errs, c.Performance.Validate())
	errs = append(errs, c.Allocations.Validate())
	errs = append(errs, c.Characteristics.Validate())
	return errors.Join(errs...)
}

// Path resolves a file name against the base directory.
func (c *Config) Path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.BaseDir, name)
}

// PerformanceSource returns the path of the performance export for a run on
// day today: it is stamped with the end of the previous month.
func (c *Config) PerformanceSource(today date.Date) string {
	return c.Path(c.Files.PerformancePrefix + today.EndOfPreviousMonth().String() + ".xlsx")
}

// CapsSource returns the path of the market capitalization workbook.
func (c *Config) CapsSource() string {
	if c.Files.CapsWorkbook == "" {
		return c.Path(c.Files.HoldingsOutput)
	}
	return c.Path(c.Files.CapsWorkbook)
}
