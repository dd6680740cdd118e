package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is used when no config path is given.
const DefaultPath = "seqclean.json"

// Generate holds the fixture generator settings.
type Generate struct {
	MinLength        int     `json:"min_length" yaml:"min_length"`
	MaxLength        int     `json:"max_length" yaml:"max_length"`
	Duplicates       int     `json:"duplicates" yaml:"duplicates"`
	Invalid          int     `json:"invalid" yaml:"invalid"`
	NoiseProbability float64 `json:"noise_probability" yaml:"noise_probability"`
	MinSequences     int     `json:"min_sequences" yaml:"min_sequences"`
	MaxSequences     int     `json:"max_sequences" yaml:"max_sequences"`
	Seed             int64   `json:"seed" yaml:"seed"`
}

// Display holds presentation settings.
type Display struct {
	PreviewCount         int `json:"preview_count" yaml:"preview_count"`
	DetailCount          int `json:"detail_count" yaml:"detail_count"`
	RequiredMinSequences int `json:"required_min_sequences" yaml:"required_min_sequences"`
	ChartBins            int `json:"chart_bins" yaml:"chart_bins"`
	ChartWidth           int `json:"chart_width" yaml:"chart_width"`
}

type Config struct {
	InputFasta string   `json:"input_fasta" yaml:"input_fasta"`
	OutputJSON string   `json:"output_json" yaml:"output_json"`
	DBPath     string   `json:"db_path" yaml:"db_path"`
	LogFile    string   `json:"log_file" yaml:"log_file"`
	LogLevel   string   `json:"log_level" yaml:"log_level"`
	Generate   Generate `json:"generate" yaml:"generate"`
	Display    Display  `json:"display" yaml:"display"`
}

// Defaults returns the stock configuration.
func Defaults() Config {
	return Config{
		InputFasta: "sequences.txt",
		LogLevel:   "info",
		Generate: Generate{
			MinLength:        50,
			MaxLength:        199,
			Duplicates:       6,
			Invalid:          6,
			NoiseProbability: 0.25,
			MinSequences:     31,
			MaxSequences:     50,
		},
		Display: Display{
			PreviewCount:         5,
			DetailCount:          3,
			RequiredMinSequences: 30,
			ChartBins:            10,
			ChartWidth:           40,
		},
	}
}

// Load builds the configuration from defaults, an optional .env file, an
// optional config file and SEQCLEAN_* environment variables, in that
// order. If path is empty DefaultPath is tried; a missing file is not an
// error.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Defaults()
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	if err := loadFile(path, &cfg); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			err = nil
		}
		if err != nil {
			return cfg, err
		}
	}
	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	}
	return nil
}

// Environment variables recognised by applyEnv.
const (
	EnvInput    = "SEQCLEAN_INPUT"
	EnvOutput   = "SEQCLEAN_OUTPUT"
	EnvDB       = "SEQCLEAN_DB"
	EnvLogFile  = "SEQCLEAN_LOG_FILE"
	EnvLogLevel = "SEQCLEAN_LOG_LEVEL"
	EnvSeed     = "SEQCLEAN_SEED"
)

func applyEnv(cfg *Config) {
	set := func(key string, dst *string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}
	set(EnvInput, &cfg.InputFasta)
	set(EnvOutput, &cfg.OutputJSON)
	set(EnvDB, &cfg.DBPath)
	set(EnvLogFile, &cfg.LogFile)
	set(EnvLogLevel, &cfg.LogLevel)
	if v := strings.TrimSpace(os.Getenv(EnvSeed)); v != "" {
		if seed, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Generate.Seed = seed
		}
	}
}

// Validate checks the generator and display bounds.
func (c Config) Validate() error {
	g := c.Generate
	switch {
	case strings.TrimSpace(c.InputFasta) == "":
		return errors.New("config: input_fasta must not be empty")
	case g.MinLength < 1 || g.MaxLength < g.MinLength:
		return fmt.Errorf("config: invalid sequence length range [%d,%d]", g.MinLength, g.MaxLength)
	case g.MinSequences < 0 || g.MaxSequences < g.MinSequences:
		return fmt.Errorf("config: invalid sequence count range [%d,%d]", g.MinSequences, g.MaxSequences)
	case g.Duplicates < 0 || g.Invalid < 0:
		return errors.New("config: duplicates and invalid must not be negative")
	case g.NoiseProbability < 0 || g.NoiseProbability > 1:
		return fmt.Errorf("config: noise_probability %v outside [0,1]", g.NoiseProbability)
	case c.Display.PreviewCount < 0 || c.Display.DetailCount < 0:
		return errors.New("config: display counts must not be negative")
	case c.Display.ChartBins < 1:
		return errors.New("config: chart_bins must be positive")
	case c.Display.ChartWidth < 1:
		return errors.New("config: chart_width must be positive")
	}
	return nil
}
