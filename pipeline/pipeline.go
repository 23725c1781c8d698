// Package pipeline orchestrates a full document conversion: profile
// detection, segmentation, and validation, producing the logical tables,
// validation report, and document metadata for one document.
//
// The pipeline is synchronous; callers processing multiple documents run
// each document to completion before starting the next, and one document's
// failure never affects another.
package pipeline

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/tsawler/restitch/model"
	"github.com/tsawler/restitch/profile"
	"github.com/tsawler/restitch/segment"
	"github.com/tsawler/restitch/validate"
)

// Options configures a conversion run.
type Options struct {
	// Strategy forces a segmentation strategy. StrategyAuto (the default)
	// lets a matched profile or the strategy detector decide.
	Strategy model.Strategy

	// ScoreDomains supplies domains for score-domain segmentation. A matched
	// profile's domains take precedence; with neither, domains are
	// auto-detected from the data.
	ScoreDomains []model.ScoreDomain

	// ValidationEnabled runs the validation rule chain. On by default.
	ValidationEnabled bool

	// Segmentation and Validation tune the heuristic thresholds.
	Segmentation segment.Config
	Validation   validate.Config
}

// DefaultOptions returns the default conversion options.
func DefaultOptions() Options {
	return Options{
		Strategy:          model.StrategyAuto,
		ValidationEnabled: true,
		Segmentation:      segment.DefaultConfig(),
		Validation:        validate.DefaultConfig(),
	}
}

// Result is the outcome of one document conversion.
type Result struct {
	Tables   []model.LogicalTable
	Report   *model.Report
	Metadata model.DocumentMetadata

	// Elapsed is the wall time the conversion took.
	Elapsed time.Duration
}

// Pipeline converts one document at a time.
type Pipeline struct {
	registry *profile.Registry
	opts     Options
	logger   *slog.Logger
}

// New creates a pipeline. The registry may be nil when no profiles are in
// play; the pipeline then always falls back to generic strategy detection.
func New(registry *profile.Registry, opts Options) *Pipeline {
	if registry == nil {
		registry = profile.NewRegistry()
	}
	return &Pipeline{
		registry: registry,
		opts:     opts,
		logger:   slog.Default(),
	}
}

// SetLogger overrides the pipeline logger.
func (p *Pipeline) SetLogger(logger *slog.Logger) {
	if logger != nil {
		p.logger = logger
	}
}

// Convert runs the full pipeline over one document's fragments. Source tags
// the document for metadata and audit purposes. The only hard failure is an
// unrecognized segmentation strategy; every other malformation degrades to a
// lower-confidence result.
func (p *Pipeline) Convert(source string, frags []model.Fragment, pageTexts []string) (*Result, error) {
	start := time.Now()

	ctx := profile.Context{"source": source}

	strategy := p.opts.Strategy
	domains := p.opts.ScoreDomains
	var meta model.DocumentMetadata

	matched, detection, ok := p.registry.Detect(frags, pageTexts, ctx)
	if ok {
		p.logger.Info("profile matched",
			"profile", matched.ID(),
			"confidence", detection.Confidence)
		if strategy == model.StrategyAuto {
			strategy = matched.Strategy()
			if d := matched.ScoreDomains(); d != nil {
				domains = d
			}
		}
		meta = matched.ExtractMetadata(frags, pageTexts, ctx)
		meta.ProfileConfidence = detection.Confidence
	} else {
		p.logger.Info("no profile matched, using generic segmentation")
	}

	segmenter := segment.NewWithConfig(p.opts.Segmentation)
	tables, err := segmenter.Segment(frags, strategy, domains)
	if err != nil {
		return nil, fmt.Errorf("segmenting %s: %w", source, err)
	}

	var report *model.Report
	if p.opts.ValidationEnabled {
		report = validate.NewWithConfig(p.opts.Validation).Validate(tables, nil)
	} else {
		report = model.NewReport()
	}

	meta.SourceName = source
	meta.SourceHash = hashSource(source, frags)
	meta.Timestamp = time.Now()
	meta.ValidationStatus = report.OverallStatus
	meta.ValidationIssues = len(report.Issues)

	return &Result{
		Tables:   tables,
		Report:   report,
		Metadata: meta,
		Elapsed:  time.Since(start),
	}, nil
}

// hashSource fingerprints the document from its source tag and cell
// content, for audit trails.
func hashSource(source string, frags []model.Fragment) string {
	h := sha256.New()
	h.Write([]byte(source))
	for _, f := range frags {
		for _, row := range f.Data {
			for _, cell := range row {
				h.Write([]byte(cell))
				h.Write([]byte{0})
			}
			h.Write([]byte{1})
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}
