package model

import "fmt"

// Strategy selects the algorithm used to reassemble fragments into logical
// tables.
type Strategy int

const (
	// StrategyAuto defers the choice to the strategy detector.
	StrategyAuto Strategy = iota
	// StrategyScoreDomain groups rows by which numeric score range their
	// leading value falls into.
	StrategyScoreDomain
	// StrategyHeaderRepetition groups rows by recurring header rows and
	// isolated section-title rows.
	StrategyHeaderRepetition
)

// String returns the wire tag for the strategy.
func (s Strategy) String() string {
	switch s {
	case StrategyAuto:
		return "auto"
	case StrategyScoreDomain:
		return "score_domain"
	case StrategyHeaderRepetition:
		return "header_repetition"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler so strategies serialize as
// their wire tags.
func (s Strategy) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ParseStrategy converts a wire tag into a Strategy. It returns an error for
// unrecognized tags; callers must not silently default.
func ParseStrategy(tag string) (Strategy, error) {
	switch tag {
	case "auto":
		return StrategyAuto, nil
	case "score_domain":
		return StrategyScoreDomain, nil
	case "header_repetition":
		return StrategyHeaderRepetition, nil
	default:
		return StrategyAuto, fmt.Errorf("unknown segmentation strategy %q", tag)
	}
}
