// Package config loads reassembly settings from YAML files.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tsawler/restitch/model"
	"github.com/tsawler/restitch/segment"
	"github.com/tsawler/restitch/validate"
)

// ScoreDomain is the YAML form of a score domain.
type ScoreDomain struct {
	Name        string  `yaml:"name"`
	MinScore    float64 `yaml:"min_score"`
	MaxScore    float64 `yaml:"max_score"`
	Description string  `yaml:"description,omitempty"`
}

// Config holds all tunable settings for a conversion run.
type Config struct {
	Segmentation struct {
		Strategy     string  `yaml:"strategy"`
		NumericRatio float64 `yaml:"numeric_ratio"`
		DomainGap    float64 `yaml:"domain_gap"`
	} `yaml:"segmentation"`

	Validation struct {
		Enabled                bool    `yaml:"enabled"`
		Tolerance              float64 `yaml:"tolerance"`
		DistributionKeywordMin int     `yaml:"distribution_keyword_min"`
	} `yaml:"validation"`

	Profiles struct {
		MinConfidence float64 `yaml:"min_confidence"`
	} `yaml:"profiles"`

	ScoreDomains []ScoreDomain `yaml:"score_domains,omitempty"`
}

// Default returns a Config mirroring the package defaults.
func Default() *Config {
	cfg := &Config{}
	cfg.Segmentation.Strategy = model.StrategyAuto.String()

	seg := segment.DefaultConfig()
	cfg.Segmentation.NumericRatio = seg.NumericRatio
	cfg.Segmentation.DomainGap = seg.DomainGap

	val := validate.DefaultConfig()
	cfg.Validation.Enabled = true
	cfg.Validation.Tolerance = val.Tolerance
	cfg.Validation.DistributionKeywordMin = val.DistributionKeywordMin

	cfg.Profiles.MinConfidence = 0.5
	return cfg
}

// Load reads a YAML config file. Settings absent from the file keep their
// defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if _, err := model.ParseStrategy(c.Segmentation.Strategy); err != nil {
		return err
	}
	if c.Segmentation.NumericRatio < 0 || c.Segmentation.NumericRatio > 1 {
		return fmt.Errorf("numeric_ratio must be in [0,1], got %g", c.Segmentation.NumericRatio)
	}
	if c.Validation.Tolerance < 0 {
		return fmt.Errorf("tolerance must be non-negative, got %g", c.Validation.Tolerance)
	}
	for _, d := range c.ScoreDomains {
		if d.MaxScore < d.MinScore {
			return fmt.Errorf("score domain %q: max_score %g below min_score %g", d.Name, d.MaxScore, d.MinScore)
		}
	}
	return nil
}

// Strategy returns the configured segmentation strategy.
func (c *Config) Strategy() model.Strategy {
	s, err := model.ParseStrategy(c.Segmentation.Strategy)
	if err != nil {
		return model.StrategyAuto
	}
	return s
}

// Domains converts the configured score domains to model form.
func (c *Config) Domains() []model.ScoreDomain {
	if len(c.ScoreDomains) == 0 {
		return nil
	}
	domains := make([]model.ScoreDomain, 0, len(c.ScoreDomains))
	for _, d := range c.ScoreDomains {
		domains = append(domains, model.ScoreDomain{
			Name:        d.Name,
			MinScore:    d.MinScore,
			MaxScore:    d.MaxScore,
			Description: d.Description,
		})
	}
	return domains
}

// SegmentConfig returns the segmentation settings in segment form.
func (c *Config) SegmentConfig() segment.Config {
	return segment.Config{
		NumericRatio: c.Segmentation.NumericRatio,
		DomainGap:    c.Segmentation.DomainGap,
	}
}

// ValidateConfig returns the validation settings in validate form.
func (c *Config) ValidateConfig() validate.Config {
	return validate.Config{
		Tolerance:              c.Validation.Tolerance,
		DistributionKeywordMin: c.Validation.DistributionKeywordMin,
	}
}
