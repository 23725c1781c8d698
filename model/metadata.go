package model

import "time"

// DocumentMetadata carries document-level information extracted alongside
// the tables, mostly by a matched profile.
type DocumentMetadata struct {
	Title           string `json:"title,omitempty"`
	Organization    string `json:"organization,omitempty"`
	ReportingPeriod string `json:"reporting_period,omitempty"`
	SubjectOrCode   string `json:"subject_or_code,omitempty"`

	ProfileID         string  `json:"profile_id,omitempty"`
	ProfileVersion    string  `json:"profile_version,omitempty"`
	ProfileConfidence float64 `json:"profile_confidence,omitempty"`

	SourceName string    `json:"source_name,omitempty"`
	SourceHash string    `json:"source_hash,omitempty"`
	Timestamp  time.Time `json:"timestamp"`

	ValidationStatus Status `json:"validation_status"`
	ValidationIssues int    `json:"validation_issues"`
}
