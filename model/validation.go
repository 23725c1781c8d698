package model

import (
	"encoding/json"
	"time"
)

// Status ranks validation outcomes. The ordering Passed < Warning < Failed
// forms a lattice: a report's overall status can only be raised, never
// lowered.
type Status int

const (
	StatusPassed Status = iota
	StatusWarning
	StatusFailed
)

// String returns the wire tag for the status.
func (s Status) String() string {
	switch s {
	case StatusPassed:
		return "passed"
	case StatusWarning:
		return "warning"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Escalate returns the worse of s and other.
func (s Status) Escalate(other Status) Status {
	if other > s {
		return other
	}
	return s
}

// Issue is a single validation finding scoped to one table and, optionally,
// one row and column.
type Issue struct {
	Severity  Status
	Message   string
	TableName string

	// RowIndex is the offending row within the table's data, or NoRow when
	// the issue is not tied to a specific row.
	RowIndex int

	// ColumnName is the offending column header, or empty.
	ColumnName string

	Details map[string]any
}

// NoRow marks an issue that is not tied to a specific row.
const NoRow = -1

// MarshalJSON serializes the issue with the exact field set required for
// audit compatibility; absent row/column references serialize as null.
func (i Issue) MarshalJSON() ([]byte, error) {
	var row any
	if i.RowIndex != NoRow {
		row = i.RowIndex
	}
	var col any
	if i.ColumnName != "" {
		col = i.ColumnName
	}
	details := i.Details
	if details == nil {
		details = map[string]any{}
	}
	return json.Marshal(struct {
		Severity   Status         `json:"severity"`
		Message    string         `json:"message"`
		TableName  string         `json:"table_name"`
		RowIndex   any            `json:"row_index"`
		ColumnName any            `json:"column_name"`
		Details    map[string]any `json:"details"`
	}{i.Severity, i.Message, i.TableName, row, col, details})
}

// Report aggregates validation issues for one document. It is created once
// per conversion, mutated only through Add, then frozen and returned.
type Report struct {
	OverallStatus      Status
	Issues             []Issue
	TablesValidated    int
	TablesPassed       int
	TablesWithWarnings int
	TablesFailed       int
	Timestamp          time.Time
}

// NewReport creates an empty report stamped with the current time.
func NewReport() *Report {
	return &Report{
		OverallStatus: StatusPassed,
		Issues:        []Issue{},
		Timestamp:     time.Now(),
	}
}

// Add appends an issue and raises the overall status to the issue's severity
// if it is worse. The overall status never goes down.
func (r *Report) Add(issue Issue) {
	r.Issues = append(r.Issues, issue)
	r.OverallStatus = r.OverallStatus.Escalate(issue.Severity)
}

// CountTable records the worst per-table status in the summary counters.
func (r *Report) CountTable(worst Status) {
	r.TablesValidated++
	switch worst {
	case StatusPassed:
		r.TablesPassed++
	case StatusWarning:
		r.TablesWithWarnings++
	case StatusFailed:
		r.TablesFailed++
	}
}

// MarshalJSON serializes the report in the audit wire format: overall
// status, ordered issues, nested summary counters, and an ISO-8601
// timestamp.
func (r *Report) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		OverallStatus Status  `json:"overall_status"`
		Issues        []Issue `json:"issues"`
		Summary       struct {
			TablesValidated    int `json:"tables_validated"`
			TablesPassed       int `json:"tables_passed"`
			TablesWithWarnings int `json:"tables_with_warnings"`
			TablesFailed       int `json:"tables_failed"`
		} `json:"summary"`
		Timestamp string `json:"timestamp"`
	}{
		OverallStatus: r.OverallStatus,
		Issues:        r.Issues,
		Summary: struct {
			TablesValidated    int `json:"tables_validated"`
			TablesPassed       int `json:"tables_passed"`
			TablesWithWarnings int `json:"tables_with_warnings"`
			TablesFailed       int `json:"tables_failed"`
		}{r.TablesValidated, r.TablesPassed, r.TablesWithWarnings, r.TablesFailed},
		Timestamp: r.Timestamp.Format(time.RFC3339),
	})
}
