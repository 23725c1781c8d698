package profile

import (
	"log/slog"

	"github.com/tsawler/restitch/model"
)

// DefaultMinConfidence is the detection confidence a profile must reach
// before the registry will select it.
const DefaultMinConfidence = 0.5

// Context carries extraction context through detection, opaque to the
// engine.
type Context map[string]any

// DetectionResult reports how confident a profile is that it recognizes the
// document, plus profile-specific metadata gathered along the way.
type DetectionResult struct {
	ProfileID  string
	Confidence float64
	Metadata   map[string]string
}

// Profile recognizes one document family and supplies its processing
// preferences.
type Profile interface {
	// ID returns the unique profile identifier.
	ID() string

	// Version returns the profile version.
	Version() string

	// Detect scores how well the document matches this profile, in [0, 1].
	Detect(frags []model.Fragment, pageTexts []string, ctx Context) (DetectionResult, error)

	// Strategy returns the segmentation strategy this document family needs.
	Strategy() model.Strategy

	// ScoreDomains returns the score domains to segment by, or nil when the
	// family does not use score-domain segmentation.
	ScoreDomains() []model.ScoreDomain

	// ExtractMetadata pulls document-level metadata from the fragments and
	// page text.
	ExtractMetadata(frags []model.Fragment, pageTexts []string, ctx Context) model.DocumentMetadata
}

// Registry holds an ordered collection of profiles. It is constructed
// explicitly and passed to the pipeline; there is no global registry.
type Registry struct {
	profiles      []Profile
	minConfidence float64
	logger        *slog.Logger
}

// NewRegistry creates an empty registry with the default confidence
// threshold.
func NewRegistry() *Registry {
	return &Registry{
		minConfidence: DefaultMinConfidence,
		logger:        slog.Default(),
	}
}

// SetMinConfidence overrides the selection threshold.
func (r *Registry) SetMinConfidence(min float64) {
	r.minConfidence = min
}

// SetLogger overrides the logger used to report profile detection failures.
func (r *Registry) SetLogger(logger *slog.Logger) {
	if logger != nil {
		r.logger = logger
	}
}

// Register appends a profile. Registration order breaks confidence ties: an
// earlier profile keeps its win unless a later one scores strictly higher.
func (r *Registry) Register(p Profile) {
	r.profiles = append(r.profiles, p)
}

// Profiles lists the registered profile IDs in registration order.
func (r *Registry) Profiles() []string {
	ids := make([]string, len(r.profiles))
	for i, p := range r.profiles {
		ids[i] = p.ID()
	}
	return ids
}

// Detect evaluates every registered profile and returns the one with the
// strictly highest confidence at or above the minimum threshold. A profile
// that errors during detection is logged and skipped; the rest are still
// evaluated. ok is false when no profile qualifies.
func (r *Registry) Detect(frags []model.Fragment, pageTexts []string, ctx Context) (best Profile, result DetectionResult, ok bool) {
	bestConfidence := 0.0

	for _, p := range r.profiles {
		res, err := p.Detect(frags, pageTexts, ctx)
		if err != nil {
			r.logger.Warn("profile detection failed", "profile", p.ID(), "error", err)
			continue
		}
		if res.Confidence > bestConfidence && res.Confidence >= r.minConfidence {
			bestConfidence = res.Confidence
			best = p
			result = res
			ok = true
		}
	}

	return best, result, ok
}
