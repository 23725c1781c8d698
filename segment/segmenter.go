package segment

import (
	"errors"
	"fmt"

	"github.com/tsawler/restitch/model"
)

// ErrUnknownStrategy is returned when segmentation is requested with a
// strategy the segmenter does not recognize. This is the only hard failure
// in the engine; every other malformation degrades to a lower-confidence
// result.
var ErrUnknownStrategy = errors.New("unknown segmentation strategy")

// Config holds the tunable heuristics used by strategy detection and domain
// auto-detection. The values are deliberately named rather than inlined so
// they can be adjusted without touching control flow.
type Config struct {
	// NumericRatio is the fraction of numeric first-column values at which a
	// fragment is taken as score-domain shaped.
	NumericRatio float64

	// DomainGap is the difference between consecutive sorted leading values
	// at which auto-detection splits score domains.
	DomainGap float64
}

// DefaultConfig returns the default heuristics.
func DefaultConfig() Config {
	return Config{
		NumericRatio: 0.70,
		DomainGap:    5.0,
	}
}

// Segmenter reassembles fragments into logical tables.
type Segmenter struct {
	cfg Config
}

// New creates a segmenter with default configuration.
func New() *Segmenter {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates a segmenter with the given configuration.
func NewWithConfig(cfg Config) *Segmenter {
	return &Segmenter{cfg: cfg}
}

// Segment reassembles fragments using the given strategy. StrategyAuto is
// resolved through DetectStrategy first. Domains are consulted only by the
// score-domain strategy and may be nil, in which case they are auto-detected
// from the data.
func (s *Segmenter) Segment(frags []model.Fragment, strategy model.Strategy, domains []model.ScoreDomain) ([]model.LogicalTable, error) {
	if strategy == model.StrategyAuto {
		strategy = s.DetectStrategy(frags)
	}

	switch strategy {
	case model.StrategyScoreDomain:
		return s.ByScoreDomain(frags, domains), nil
	case model.StrategyHeaderRepetition:
		return s.ByHeaderRepetition(frags), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownStrategy, strategy)
	}
}

// DetectStrategy chooses a segmentation strategy for a set of fragments.
//
// If any fragment has at least NumericRatio numeric values in its first
// column (rows after the first), the document is score-domain shaped.
// Otherwise fragments whose first rows repeat suggest header repetition,
// which is also the default when neither signal is present.
func (s *Segmenter) DetectStrategy(frags []model.Fragment) model.Strategy {
	for _, f := range frags {
		if len(f.Data) < 2 {
			continue
		}
		total, numeric := 0, 0
		for _, row := range f.Data[1:] {
			if len(row) == 0 {
				continue
			}
			total++
			if _, ok := parseNumber(row[0]); ok {
				numeric++
			}
		}
		if total > 0 && float64(numeric) >= s.cfg.NumericRatio*float64(total) {
			return model.StrategyScoreDomain
		}
	}

	seen := make(map[string]bool)
	for _, f := range frags {
		if f.IsEmpty() {
			continue
		}
		key := normalizeRow(f.Data[0])
		if seen[key] {
			return model.StrategyHeaderRepetition
		}
		seen[key] = true
	}

	return model.StrategyHeaderRepetition
}

// mergeFragments concatenates all fragment rows in fragment order, destroying
// page boundaries, and records the contributing pages in first-seen order.
// Empty fragments are skipped silently.
func mergeFragments(frags []model.Fragment) (merged [][]string, pages []int) {
	seen := make(map[int]bool)
	for _, f := range frags {
		if f.IsEmpty() {
			continue
		}
		merged = append(merged, f.Data...)
		if !seen[f.Page] {
			seen[f.Page] = true
			pages = append(pages, f.Page)
		}
	}
	return merged, pages
}
