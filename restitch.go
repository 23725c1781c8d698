// Package restitch reassembles page-bounded table fragments into logical
// tables and validates the result.
//
// Basic usage:
//
//	tables, err := restitch.Reassemble(fragments).Tables()
//	if err != nil {
//	    // handle error
//	}
//
// With options:
//
//	tables, report, err := restitch.Reassemble(fragments).
//	    Strategy(model.StrategyScoreDomain).
//	    Domains(model.RangeDomain(0, 40)).
//	    Validate()
//
// For finer control over profiles, metadata and persistence, the pipeline
// package is also available.
package restitch

import (
	"github.com/tsawler/restitch/model"
	"github.com/tsawler/restitch/segment"
	"github.com/tsawler/restitch/validate"
)

// Reassembler provides fluent configuration for a reassembly run.
type Reassembler struct {
	fragments []model.Fragment
	strategy  model.Strategy
	domains   []model.ScoreDomain
	segCfg    segment.Config
	valCfg    validate.Config
}

// Reassemble starts a fluent reassembly of the given fragments. The
// strategy defaults to auto-detection.
//
// Example:
//
//	tables, err := restitch.Reassemble(fragments).Tables()
func Reassemble(fragments []model.Fragment) *Reassembler {
	return &Reassembler{
		fragments: fragments,
		strategy:  model.StrategyAuto,
		segCfg:    segment.DefaultConfig(),
		valCfg:    validate.DefaultConfig(),
	}
}

// Strategy forces a segmentation strategy instead of auto-detecting one.
func (r *Reassembler) Strategy(s model.Strategy) *Reassembler {
	r.strategy = s
	return r
}

// Domains sets explicit score domains for score-domain segmentation.
// Without them, domains are detected from gaps in the score column.
func (r *Reassembler) Domains(domains ...model.ScoreDomain) *Reassembler {
	r.domains = domains
	return r
}

// SegmentConfig overrides the segmentation tuning parameters.
func (r *Reassembler) SegmentConfig(cfg segment.Config) *Reassembler {
	r.segCfg = cfg
	return r
}

// ValidateConfig overrides the validation tuning parameters.
func (r *Reassembler) ValidateConfig(cfg validate.Config) *Reassembler {
	r.valCfg = cfg
	return r
}

// Tables runs segmentation and returns the logical tables.
func (r *Reassembler) Tables() ([]model.LogicalTable, error) {
	seg := segment.NewWithConfig(r.segCfg)
	return seg.Segment(r.fragments, r.strategy, r.domains)
}

// Validate runs segmentation followed by validation and returns the
// logical tables together with the validation report.
func (r *Reassembler) Validate() ([]model.LogicalTable, *model.Report, error) {
	tables, err := r.Tables()
	if err != nil {
		return nil, nil, err
	}
	report := validate.NewWithConfig(r.valCfg).Validate(tables, nil)
	return tables, report, nil
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	tables := restitch.Must(restitch.Reassemble(fragments).Tables())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
