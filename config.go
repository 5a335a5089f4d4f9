package arabic

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// BM25Parameters holds the tuning parameters of BM25 ranking.
type BM25Parameters struct {
	K1 float64 `yaml:"k1"` // Term frequency saturation (typical: 1.2-2.0)
	B  float64 `yaml:"b"`  // Length normalization (typical: 0.75)
}

// DefaultBM25Parameters returns the standard BM25 parameters.
func DefaultBM25Parameters() BM25Parameters {
	return BM25Parameters{
		K1: 1.5,
		B:  0.75,
	}
}

// validate rejects parameters that make every BM25 score zero or NaN.
// The comparisons are written so that NaN fails them.
func (p BM25Parameters) validate() error {
	if !(p.K1 > 0) || math.IsInf(p.K1, 1) {
		return fmt.Errorf("k1 must be positive and finite, got %v", p.K1)
	}
	if !(p.B >= 0 && p.B <= 1) {
		return fmt.Errorf("b must be within [0, 1], got %v", p.B)
	}
	return nil
}

// Config holds the tunables of the index and of the demo binary.
//
// The analysis rule tables are not configurable and do not appear here.
//
// YAML form:
//
//	bm25:
//	  k1: 1.5
//	  b: 0.75
//	max_results: 10
//	log_level: info
type Config struct {
	BM25       BM25Parameters `yaml:"bm25"`
	MaxResults int            `yaml:"max_results"` // Default result limit for ranked searches
	LogLevel   string         `yaml:"log_level"`   // debug, info, warn or error
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		BM25:       DefaultBM25Parameters(),
		MaxResults: 10,
		LogLevel:   "info",
	}
}

// LoadConfig reads a YAML configuration file strictly: unknown keys are an
// error. Keys missing from the file keep their default value, and an empty
// path returns the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return cfg, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks every field and reports the first bad one, wrapped in
// ErrInvalidConfig.
func (c Config) Validate() error {
	if err := c.BM25.validate(); err != nil {
		return fmt.Errorf("%w: bm25.%v", ErrInvalidConfig, err)
	}
	if c.MaxResults < 1 {
		return fmt.Errorf("%w: max_results must be at least 1, got %d", ErrInvalidConfig, c.MaxResults)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses LogLevel. An empty level means info.
func (c Config) SlogLevel() (slog.Level, error) {
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	return level, nil
}
