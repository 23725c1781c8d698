package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tsawler/restitch/model"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "restitch.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Segmentation.Strategy != "auto" {
		t.Errorf("Expected strategy auto, got %s", cfg.Segmentation.Strategy)
	}
	if cfg.Segmentation.NumericRatio != 0.70 {
		t.Errorf("Expected numeric ratio 0.70, got %g", cfg.Segmentation.NumericRatio)
	}
	if cfg.Segmentation.DomainGap != 5.0 {
		t.Errorf("Expected domain gap 5.0, got %g", cfg.Segmentation.DomainGap)
	}
	if !cfg.Validation.Enabled {
		t.Error("Expected validation enabled by default")
	}
	if cfg.Validation.Tolerance != 0.01 {
		t.Errorf("Expected tolerance 0.01, got %g", cfg.Validation.Tolerance)
	}
	if cfg.Profiles.MinConfidence != 0.5 {
		t.Errorf("Expected min confidence 0.5, got %g", cfg.Profiles.MinConfidence)
	}
	if len(cfg.Domains()) != 0 {
		t.Errorf("Expected no default score domains, got %d", len(cfg.Domains()))
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
segmentation:
  strategy: score_domain
  domain_gap: 10
validation:
  tolerance: 0.05
score_domains:
  - name: Objective
    min_score: 0
    max_score: 19
  - name: Essay
    min_score: 15
    max_score: 40
    description: Scaled essay scores
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Strategy() != model.StrategyScoreDomain {
		t.Errorf("Expected score_domain strategy, got %v", cfg.Strategy())
	}
	if cfg.Segmentation.DomainGap != 10 {
		t.Errorf("Expected domain gap 10, got %g", cfg.Segmentation.DomainGap)
	}
	// Unset fields keep defaults.
	if cfg.Segmentation.NumericRatio != 0.70 {
		t.Errorf("Expected default numeric ratio, got %g", cfg.Segmentation.NumericRatio)
	}
	if cfg.Validation.Tolerance != 0.05 {
		t.Errorf("Expected tolerance 0.05, got %g", cfg.Validation.Tolerance)
	}

	domains := cfg.Domains()
	if len(domains) != 2 {
		t.Fatalf("Expected 2 domains, got %d", len(domains))
	}
	if domains[0].Name != "Objective" || domains[0].MaxScore != 19 {
		t.Errorf("Unexpected first domain %+v", domains[0])
	}
	if domains[1].Description != "Scaled essay scores" {
		t.Errorf("Expected essay description, got %q", domains[1].Description)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad strategy", "segmentation:\n  strategy: quantum\n"},
		{"ratio out of range", "segmentation:\n  numeric_ratio: 1.5\n"},
		{"negative tolerance", "validation:\n  tolerance: -0.1\n"},
		{"inverted domain", "score_domains:\n  - name: Bad\n    min_score: 40\n    max_score: 15\n"},
		{"malformed yaml", "segmentation: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.content)); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Expected error for missing file, got nil")
	}
}
