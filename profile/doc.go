// Package profile implements pluggable document-type detection.
//
// A Profile recognizes a known document family (an exam marks-distribution
// report, an international staff list) from its fragments and page text, and
// supplies the segmentation strategy and score domains that family needs. A
// Registry holds an ordered set of profiles and selects the one with the
// strictly highest detection confidence above a minimum threshold; when
// nothing matches, the caller falls back to generic strategy detection.
package profile
