package model

import "strconv"

// ScoreDomain is a named, inclusive numeric range used to route rows into
// the correct logical table by their leading value. Domains are immutable
// and evaluated in caller-supplied order; nothing enforces non-overlap, so a
// row may be routed into more than one domain table.
type ScoreDomain struct {
	Name        string  `json:"name"`
	MinScore    float64 `json:"min_score"`
	MaxScore    float64 `json:"max_score"`
	Description string  `json:"description,omitempty"`
}

// Contains reports whether v lies within the domain, bounds inclusive.
func (d ScoreDomain) Contains(v float64) bool {
	return v >= d.MinScore && v <= d.MaxScore
}

// RangeDomain builds a domain named after its bounds, as produced by
// auto-detection.
func RangeDomain(min, max float64) ScoreDomain {
	return ScoreDomain{
		Name:     "Score Range " + FormatScore(min) + "-" + FormatScore(max),
		MinScore: min,
		MaxScore: max,
	}
}

// FormatScore renders a score without trailing zeros, so whole-number bounds
// read as integers in domain names.
func FormatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
