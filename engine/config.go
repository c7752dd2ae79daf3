// SPDX-License-Identifier: MIT
//
// Package engine: functional configuration for the recommendation facade.
// This file defines:
//   - Option / Config (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors,
//   - defaultConfig / gatherOptions helpers (internal) that build the defaults
//     and resolve option setters over them.
package engine

import (
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/harvard-vpal/alosi-go/numeric"
	"github.com/harvard-vpal/alosi-go/recommend"
)

const (
	// DefaultRelevanceThreshold: relevance values below this are treated as
	// zero when training masks a learner's exposure to a KC.
	DefaultRelevanceThreshold = 0.01

	// DefaultInformationThreshold is the minimum accumulated evidence weight
	// (sum of attempt masks) a cell needs before training re-estimates it.
	DefaultInformationThreshold = 20.0

	// DefaultRemoveDegeneracy enables the guess/slip degeneracy filter.
	DefaultRemoveDegeneracy = true
)

// Option mutates a Config. Safe to apply repeatedly.
type Option func(*Config)

// Config holds the engine's tunable policy: scorer weights and thresholds,
// odds regularization, training knobs, and an optional structured logger.
type Config struct {
	Weights    recommend.Weights
	Thresholds recommend.Thresholds
	Epsilon    float64

	RelevanceThreshold   float64
	InformationThreshold float64
	RemoveDegeneracy     bool

	// Logger, if non-nil, receives debug-level sub-score breakdowns from
	// Recommend and summary events from Train. Nil disables logging.
	Logger *zerolog.Logger
}

// WithWeights sets the four recommend sub-strategy weights.
func WithWeights(w recommend.Weights) Option {
	return func(c *Config) { c.Weights = w }
}

// WithThresholds sets the prereq-forgiveness and mastery-cutoff thresholds.
func WithThresholds(t recommend.Thresholds) Option {
	return func(c *Config) { c.Thresholds = t }
}

// WithEpsilon sets the odds regularization epsilon used by mastery updates
// and training.
func WithEpsilon(eps float64) Option {
	return func(c *Config) { c.Epsilon = eps }
}

// WithTrainingKnobs sets the three parameters a Train cycle is gated by.
func WithTrainingKnobs(relevanceThreshold, informationThreshold float64, removeDegeneracy bool) Option {
	return func(c *Config) {
		c.RelevanceThreshold = relevanceThreshold
		c.InformationThreshold = informationThreshold
		c.RemoveDegeneracy = removeDegeneracy
	}
}

// WithLogger attaches a structured logger. Pass nil to disable logging
// (the default).
func WithLogger(l *zerolog.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

func defaultConfig() Config {
	return Config{
		Weights:              recommend.Weights{Wp: 1, Wr: 1, Wc: 1, Wd: 1},
		Thresholds:           recommend.Thresholds{RStar: 0, LStar: 0},
		Epsilon:              numeric.DefaultEpsilon,
		RelevanceThreshold:   DefaultRelevanceThreshold,
		InformationThreshold: DefaultInformationThreshold,
		RemoveDegeneracy:     DefaultRemoveDegeneracy,
	}
}

func gatherOptions(opts ...Option) Config {
	c := defaultConfig()
	for _, set := range opts {
		set(&c)
	}
	return c
}

// yamlConfig is the on-disk shape LoadConfigYAML expects; it mirrors Config
// field-for-field with yaml tags since recommend.Weights/Thresholds do not
// carry their own tags.
type yamlConfig struct {
	Weights struct {
		P float64 `yaml:"p"`
		R float64 `yaml:"r"`
		C float64 `yaml:"c"`
		D float64 `yaml:"d"`
	} `yaml:"weights"`
	Thresholds struct {
		RStar float64 `yaml:"r_star"`
		LStar float64 `yaml:"l_star"`
	} `yaml:"thresholds"`
	Epsilon              float64 `yaml:"epsilon"`
	RelevanceThreshold   float64 `yaml:"relevance_threshold"`
	InformationThreshold float64 `yaml:"information_threshold"`
	RemoveDegeneracy     bool    `yaml:"remove_degeneracy"`
}

// LoadConfigYAML reads a Config from a YAML file, starting from defaultConfig
// for any field the file omits.
func LoadConfigYAML(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := defaultConfig()
	var y yamlConfig
	y.Weights.P, y.Weights.R, y.Weights.C, y.Weights.D = cfg.Weights.Wp, cfg.Weights.Wr, cfg.Weights.Wc, cfg.Weights.Wd
	y.Thresholds.RStar, y.Thresholds.LStar = cfg.Thresholds.RStar, cfg.Thresholds.LStar
	y.Epsilon = cfg.Epsilon
	y.RelevanceThreshold = cfg.RelevanceThreshold
	y.InformationThreshold = cfg.InformationThreshold
	y.RemoveDegeneracy = cfg.RemoveDegeneracy

	if err := yaml.Unmarshal(raw, &y); err != nil {
		return nil, err
	}

	cfg.Weights = recommend.Weights{Wp: y.Weights.P, Wr: y.Weights.R, Wc: y.Weights.C, Wd: y.Weights.D}
	cfg.Thresholds = recommend.Thresholds{RStar: y.Thresholds.RStar, LStar: y.Thresholds.LStar}
	cfg.Epsilon = y.Epsilon
	cfg.RelevanceThreshold = y.RelevanceThreshold
	cfg.InformationThreshold = y.InformationThreshold
	cfg.RemoveDegeneracy = y.RemoveDegeneracy

	return &cfg, nil
}
