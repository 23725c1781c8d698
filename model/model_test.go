package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestStatusEscalate(t *testing.T) {
	tests := []struct {
		name     string
		current  Status
		incoming Status
		expected Status
	}{
		{"passed stays passed", StatusPassed, StatusPassed, StatusPassed},
		{"passed raises to warning", StatusPassed, StatusWarning, StatusWarning},
		{"passed raises to failed", StatusPassed, StatusFailed, StatusFailed},
		{"warning raises to failed", StatusWarning, StatusFailed, StatusFailed},
		{"failed never lowers to warning", StatusFailed, StatusWarning, StatusFailed},
		{"failed never lowers to passed", StatusFailed, StatusPassed, StatusFailed},
		{"warning never lowers to passed", StatusWarning, StatusPassed, StatusWarning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.current.Escalate(tt.incoming); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestStatusString(t *testing.T) {
	if StatusPassed.String() != "passed" || StatusWarning.String() != "warning" || StatusFailed.String() != "failed" {
		t.Errorf("Unexpected status tags: %s %s %s", StatusPassed, StatusWarning, StatusFailed)
	}
	if Status(42).String() != "unknown" {
		t.Errorf("Expected unknown for out-of-range status, got %s", Status(42))
	}
}

func TestReportAddEscalatesOnly(t *testing.T) {
	report := NewReport()
	if report.OverallStatus != StatusPassed {
		t.Fatalf("Expected new report to start passed, got %v", report.OverallStatus)
	}

	report.Add(Issue{Severity: StatusFailed, Message: "duplicate row", TableName: "Table_1", RowIndex: 2})
	report.Add(Issue{Severity: StatusWarning, Message: "column count varies", TableName: "Table_1", RowIndex: NoRow})

	if report.OverallStatus != StatusFailed {
		t.Errorf("Expected overall status failed after warning added, got %v", report.OverallStatus)
	}
	if len(report.Issues) != 2 {
		t.Errorf("Expected 2 issues, got %d", len(report.Issues))
	}
}

func TestReportCountTable(t *testing.T) {
	report := NewReport()
	report.CountTable(StatusPassed)
	report.CountTable(StatusWarning)
	report.CountTable(StatusFailed)
	report.CountTable(StatusPassed)

	if report.TablesValidated != 4 {
		t.Errorf("Expected 4 validated, got %d", report.TablesValidated)
	}
	if report.TablesPassed != 2 || report.TablesWithWarnings != 1 || report.TablesFailed != 1 {
		t.Errorf("Expected counters 2/1/1, got %d/%d/%d",
			report.TablesPassed, report.TablesWithWarnings, report.TablesFailed)
	}
}

func TestReportMarshalJSON(t *testing.T) {
	report := NewReport()
	report.Add(Issue{Severity: StatusWarning, Message: "header missing", TableName: "Table_1", RowIndex: NoRow})
	report.CountTable(StatusWarning)

	data, err := json.Marshal(report)
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}

	if decoded["overall_status"] != "warning" {
		t.Errorf("Expected overall_status warning, got %v", decoded["overall_status"])
	}
	summary, ok := decoded["summary"].(map[string]any)
	if !ok {
		t.Fatalf("Expected nested summary object, got %T", decoded["summary"])
	}
	if summary["tables_with_warnings"] != float64(1) {
		t.Errorf("Expected 1 table with warnings, got %v", summary["tables_with_warnings"])
	}
	if _, ok := decoded["timestamp"].(string); !ok {
		t.Errorf("Expected string timestamp, got %T", decoded["timestamp"])
	}
}

func TestIssueMarshalJSON(t *testing.T) {
	issue := Issue{Severity: StatusWarning, Message: "orphan row", TableName: "Table_2", RowIndex: NoRow}

	data, err := json.Marshal(issue)
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	text := string(data)

	if !strings.Contains(text, `"row_index":null`) {
		t.Errorf("Expected null row_index, got %s", text)
	}
	if !strings.Contains(text, `"column_name":null`) {
		t.Errorf("Expected null column_name, got %s", text)
	}
	if !strings.Contains(text, `"details":{}`) {
		t.Errorf("Expected empty details object, got %s", text)
	}

	issue.RowIndex = 3
	issue.ColumnName = "Percent"
	data, err = json.Marshal(issue)
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	text = string(data)
	if !strings.Contains(text, `"row_index":3`) || !strings.Contains(text, `"column_name":"Percent"`) {
		t.Errorf("Expected populated row and column, got %s", text)
	}
}

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		tag      string
		expected Strategy
	}{
		{"auto", StrategyAuto},
		{"score_domain", StrategyScoreDomain},
		{"header_repetition", StrategyHeaderRepetition},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			got, err := ParseStrategy(tt.tag)
			if err != nil {
				t.Fatalf("ParseStrategy returned error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
			if got.String() != tt.tag {
				t.Errorf("Expected roundtrip tag %s, got %s", tt.tag, got.String())
			}
		})
	}

	if _, err := ParseStrategy("quantum"); err == nil {
		t.Error("Expected error for unknown strategy tag, got nil")
	}
}

func TestScoreDomainContains(t *testing.T) {
	d := RangeDomain(15, 40)

	if d.Name != "Score Range 15-40" {
		t.Errorf("Unexpected range domain name %q", d.Name)
	}
	// Bounds are inclusive.
	for _, v := range []float64{15, 20, 40} {
		if !d.Contains(v) {
			t.Errorf("Expected domain to contain %g", v)
		}
	}
	for _, v := range []float64{14.9, 40.1} {
		if d.Contains(v) {
			t.Errorf("Expected domain to exclude %g", v)
		}
	}
}

func TestFormatScore(t *testing.T) {
	tests := []struct {
		value    float64
		expected string
	}{
		{15, "15"},
		{0, "0"},
		{19.5, "19.5"},
	}
	for _, tt := range tests {
		if got := FormatScore(tt.value); got != tt.expected {
			t.Errorf("Expected %s, got %s", tt.expected, got)
		}
	}
}

func TestLogicalTableCounts(t *testing.T) {
	table := LogicalTable{
		Data: [][]string{
			{"Score", "Frequency"},
			{"0", "5"},
			{"10", "3"},
		},
		Schema: HeaderSchema([]string{"Score", "Frequency"}),
	}

	if table.RowCount() != 3 {
		t.Errorf("Expected 3 rows, got %d", table.RowCount())
	}
	if table.DataRowCount() != 2 {
		t.Errorf("Expected 2 data rows, got %d", table.DataRowCount())
	}
	if table.IsEmpty() {
		t.Error("Expected table not to be empty")
	}

	headless := LogicalTable{Data: [][]string{{"a"}, {"b"}}}
	if headless.DataRowCount() != 2 {
		t.Errorf("Expected headerless data row count 2, got %d", headless.DataRowCount())
	}
}

func TestToCSV(t *testing.T) {
	table := LogicalTable{
		Data: [][]string{
			{"Name", "Title"},
			{"Mensah, Ama", `said "hi"`},
			{"Osei", "Clerk"},
		},
	}

	expected := "Name,Title\n\"Mensah, Ama\",\"said \"\"hi\"\"\"\nOsei,Clerk\n"
	if got := table.ToCSV(); got != expected {
		t.Errorf("Expected %q, got %q", expected, got)
	}
}

func TestToMarkdown(t *testing.T) {
	table := LogicalTable{
		Data: [][]string{
			{"Score", "Freq"},
			{"0", "5"},
		},
	}

	got := table.ToMarkdown()
	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected 3 lines, got %d: %q", len(lines), got)
	}
	if lines[0] != "| Score | Freq |" {
		t.Errorf("Unexpected header line %q", lines[0])
	}
	if lines[1] != "|---|---|" {
		t.Errorf("Unexpected separator line %q", lines[1])
	}
	if lines[2] != "| 0 | 5 |" {
		t.Errorf("Unexpected data line %q", lines[2])
	}

	empty := LogicalTable{}
	if empty.ToMarkdown() != "" {
		t.Errorf("Expected empty markdown for empty table, got %q", empty.ToMarkdown())
	}
}

func TestFragmentHelpers(t *testing.T) {
	frag := Fragment{Page: 2, Data: [][]string{{"a", "b"}}}
	if frag.RowCount() != 1 {
		t.Errorf("Expected 1 row, got %d", frag.RowCount())
	}
	if frag.IsEmpty() {
		t.Error("Expected fragment not to be empty")
	}
	if !(&Fragment{}).IsEmpty() {
		t.Error("Expected empty fragment to report empty")
	}
}
