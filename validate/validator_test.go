package validate

import (
	"strings"
	"testing"

	"github.com/tsawler/restitch/model"
)

func table(headers []string, rows ...[]string) model.LogicalTable {
	data := append([][]string{headers}, rows...)
	return model.LogicalTable{
		Data:   data,
		Schema: model.HeaderSchema(headers),
		Type:   model.TableLogical,
	}
}

func findIssue(report *model.Report, substr string) *model.Issue {
	for i := range report.Issues {
		if strings.Contains(report.Issues[i].Message, substr) {
			return &report.Issues[i]
		}
	}
	return nil
}

func TestValidateCleanDistributionTable(t *testing.T) {
	tbl := table(
		[]string{"Score", "Frequency", "Percent", "Cumulative"},
		[]string{"0", "5", "50", "5"},
		[]string{"1", "5", "50", "10"},
	)

	report := New().Validate([]model.LogicalTable{tbl}, nil)
	if report.OverallStatus != model.StatusPassed {
		t.Errorf("Expected passed, got %v (issues: %+v)", report.OverallStatus, report.Issues)
	}
	if report.TablesValidated != 1 || report.TablesPassed != 1 {
		t.Errorf("Unexpected counters: %+v", report)
	}
}

func TestDuplicateRows(t *testing.T) {
	tbl := table(
		[]string{"Name", "Position"},
		[]string{"Ama", "Clerk"},
		[]string{"Kofi", "Driver"},
		[]string{"Ama", "Clerk"},
	)

	report := New().Validate([]model.LogicalTable{tbl}, []string{"Staff"})
	if report.OverallStatus != model.StatusFailed {
		t.Fatalf("Expected failed, got %v", report.OverallStatus)
	}

	issue := findIssue(report, "Duplicate row")
	if issue == nil {
		t.Fatal("Expected duplicate-row issue")
	}
	if issue.RowIndex != 3 {
		t.Errorf("Expected issue at the second occurrence (row 3), got %d", issue.RowIndex)
	}
	if issue.TableName != "Staff" {
		t.Errorf("Expected table name Staff, got %q", issue.TableName)
	}
	if report.TablesFailed != 1 {
		t.Errorf("Expected 1 failed table, got %d", report.TablesFailed)
	}
}

func TestDuplicateBlankRowsIgnored(t *testing.T) {
	tbl := table(
		[]string{"Name", "Position"},
		[]string{"", ""},
		[]string{"Ama", "Clerk"},
		[]string{"", ""},
	)

	report := New().Validate([]model.LogicalTable{tbl}, nil)
	if findIssue(report, "Duplicate row") != nil {
		t.Error("Blank rows must not trigger the duplicate check")
	}
}

func TestDuplicateRowsComparedTrimmed(t *testing.T) {
	tbl := table(
		[]string{"Name", "Position"},
		[]string{"Ama", "Clerk"},
		[]string{" Ama ", "Clerk "},
	)

	report := New().Validate([]model.LogicalTable{tbl}, nil)
	if findIssue(report, "Duplicate row") == nil {
		t.Error("Rows differing only in surrounding whitespace are duplicates")
	}
}

func TestColumnConsistency(t *testing.T) {
	tbl := table(
		[]string{"Name", "Position"},
		[]string{"Ama", "Clerk"},
		[]string{"Kofi"},
		[]string{"Esi", "Teacher", "extra"},
	)

	report := New().Validate([]model.LogicalTable{tbl}, nil)
	if report.OverallStatus != model.StatusWarning {
		t.Errorf("Expected warning, got %v", report.OverallStatus)
	}

	count := 0
	for _, issue := range report.Issues {
		if strings.Contains(issue.Message, "Inconsistent column count") {
			count++
		}
	}
	if count != 2 {
		t.Errorf("Expected 2 column-count issues (all rows checked), got %d", count)
	}
}

func TestHeaderPresence(t *testing.T) {
	tbl := model.LogicalTable{
		Data:   [][]string{{"Ama", "Clerk"}},
		Schema: model.TableSchema{ColumnCount: 2, HasHeader: false},
	}

	report := New().Validate([]model.LogicalTable{tbl}, nil)
	if findIssue(report, "no detected header") == nil {
		t.Error("Expected header-presence warning")
	}
	if report.TablesWithWarnings != 1 {
		t.Errorf("Expected 1 table with warnings, got %d", report.TablesWithWarnings)
	}
}

func TestPercentTotals(t *testing.T) {
	tests := []struct {
		name     string
		percents []string
		want     model.Status
	}{
		{"sum 98 fails at 1pp tolerance", []string{"20", "30", "48"}, model.StatusFailed},
		{"sum 99 is exactly on the boundary and passes", []string{"20", "30", "49"}, model.StatusPassed},
		{"sum 99.5 passes", []string{"20", "30", "49.5"}, model.StatusPassed},
		{"sum 100 passes", []string{"20", "30", "50"}, model.StatusPassed},
		{"sum 102 fails", []string{"20", "30", "52"}, model.StatusFailed},
		{"percent signs stripped", []string{"20%", "30%", "50%"}, model.StatusPassed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := make([][]string, len(tt.percents))
			for i, p := range tt.percents {
				rows[i] = []string{model.FormatScore(float64(i)), "1", p}
			}
			tbl := table([]string{"Score", "Frequency", "Percent"}, rows...)

			report := New().Validate([]model.LogicalTable{tbl}, nil)
			if report.OverallStatus != tt.want {
				t.Errorf("Expected %v, got %v (issues: %+v)", tt.want, report.OverallStatus, report.Issues)
			}
		})
	}
}

func TestNegativeFrequency(t *testing.T) {
	tbl := table(
		[]string{"Score", "Frequency", "Percent"},
		[]string{"0", "5", "50"},
		[]string{"1", "-2", "50"},
	)

	report := New().Validate([]model.LogicalTable{tbl}, nil)
	issue := findIssue(report, "Negative frequency")
	if issue == nil {
		t.Fatal("Expected negative-frequency issue")
	}
	if issue.Severity != model.StatusFailed {
		t.Errorf("Expected failed severity, got %v", issue.Severity)
	}
	if issue.RowIndex != 2 {
		t.Errorf("Expected issue at row 2, got %d", issue.RowIndex)
	}
}

func TestCumulativeMonotonic(t *testing.T) {
	tbl := table(
		[]string{"Score", "Frequency", "Cumulative"},
		[]string{"0", "10", "10"},
		[]string{"1", "10", "20"},
		[]string{"2", "10", "15"},
	)

	report := New().Validate([]model.LogicalTable{tbl}, nil)
	issue := findIssue(report, "not monotonic")
	if issue == nil {
		t.Fatal("Expected cumulative-monotonicity issue")
	}
	if issue.RowIndex != 3 {
		t.Errorf("Expected issue at the decreasing row (3), got %d", issue.RowIndex)
	}
	if report.OverallStatus != model.StatusFailed {
		t.Errorf("Expected failed, got %v", report.OverallStatus)
	}
}

func TestCumulativeSkipsNonNumericCells(t *testing.T) {
	tbl := table(
		[]string{"Score", "Frequency", "Cumulative"},
		[]string{"0", "10", "10"},
		[]string{"1", "10", "-"},
		[]string{"2", "10", "20"},
	)

	report := New().Validate([]model.LogicalTable{tbl}, nil)
	if findIssue(report, "not monotonic") != nil {
		t.Error("Non-numeric cumulative cells must be skipped, not compared")
	}
}

func TestScoreOutsideDomain(t *testing.T) {
	tbl := table(
		[]string{"Score", "Frequency", "Percent"},
		[]string{"17", "5", "50"},
		[]string{"45", "5", "50"},
	)
	tbl.ScoreDomain = &model.ScoreDomain{Name: "Scaled_Essay", MinScore: 15, MaxScore: 40}

	report := New().Validate([]model.LogicalTable{tbl}, nil)
	issue := findIssue(report, "outside domain range")
	if issue == nil {
		t.Fatal("Expected out-of-domain warning")
	}
	if issue.Severity != model.StatusWarning {
		t.Errorf("Expected warning severity, got %v", issue.Severity)
	}
	if issue.RowIndex != 2 {
		t.Errorf("Expected issue at row 2, got %d", issue.RowIndex)
	}
}

func TestRosterOrphanRows(t *testing.T) {
	tbl := table(
		[]string{"Name", "Position"},
		[]string{"Administration", ""},
		[]string{"Finance", ""},
		[]string{"Ama", "Clerk"},
	)

	report := New().Validate([]model.LogicalTable{tbl}, nil)
	issue := findIssue(report, "orphan row")
	if issue == nil {
		t.Fatal("Expected orphan-row warning")
	}
	if issue.RowIndex != 1 {
		t.Errorf("Expected issue at the first orphan (row 1), got %d", issue.RowIndex)
	}
}

func TestRosterSingleSectionTitleAllowed(t *testing.T) {
	tbl := table(
		[]string{"Name", "Position"},
		[]string{"Administration", ""},
		[]string{"Ama", "Clerk"},
	)

	report := New().Validate([]model.LogicalTable{tbl}, nil)
	if findIssue(report, "orphan row") != nil {
		t.Error("A lone section-title row must not be flagged as an orphan")
	}
}

func TestDefaultTableNames(t *testing.T) {
	tables := []model.LogicalTable{
		table([]string{"Name", "Position"}, []string{"Ama", "Clerk"}, []string{"Ama", "Clerk"}),
		table([]string{"Name", "Position"}, []string{"Kofi", "Driver"}, []string{"Kofi", "Driver"}),
	}

	report := New().Validate(tables, nil)
	if len(report.Issues) != 2 {
		t.Fatalf("Expected 2 issues, got %d", len(report.Issues))
	}
	if report.Issues[0].TableName != "Table_1" || report.Issues[1].TableName != "Table_2" {
		t.Errorf("Expected default names Table_1/Table_2, got %q/%q",
			report.Issues[0].TableName, report.Issues[1].TableName)
	}
}

func TestReportCounters(t *testing.T) {
	tables := []model.LogicalTable{
		// Passes.
		table([]string{"Ref", "Value"}, []string{"a", "1"}),
		// Warns: inconsistent column count.
		table([]string{"Ref", "Value"}, []string{"a"}),
		// Fails: duplicate rows.
		table([]string{"Ref", "Value"}, []string{"a", "1"}, []string{"a", "1"}),
	}

	report := New().Validate(tables, nil)
	if report.TablesValidated != 3 {
		t.Errorf("Expected 3 validated, got %d", report.TablesValidated)
	}
	if report.TablesPassed != 1 || report.TablesWithWarnings != 1 || report.TablesFailed != 1 {
		t.Errorf("Unexpected counters: passed=%d warnings=%d failed=%d",
			report.TablesPassed, report.TablesWithWarnings, report.TablesFailed)
	}
	if report.OverallStatus != model.StatusFailed {
		t.Errorf("Expected overall failed, got %v", report.OverallStatus)
	}
}

func TestCustomTolerance(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Tolerance = 0.05 // 5 percentage points

	tbl := table(
		[]string{"Score", "Frequency", "Percent"},
		[]string{"0", "1", "20"},
		[]string{"1", "1", "30"},
		[]string{"2", "1", "46"},
	)

	if report := NewWithConfig(cfg).Validate([]model.LogicalTable{tbl}, nil); report.OverallStatus != model.StatusPassed {
		t.Errorf("Expected sum 96 to pass at 5pp tolerance, got %v", report.OverallStatus)
	}
	if report := New().Validate([]model.LogicalTable{tbl}, nil); report.OverallStatus != model.StatusFailed {
		t.Errorf("Expected sum 96 to fail at default tolerance, got %v", report.OverallStatus)
	}
}

func TestEmptyTableListYieldsEmptyPassedReport(t *testing.T) {
	report := New().Validate(nil, nil)
	if report.OverallStatus != model.StatusPassed {
		t.Errorf("Expected passed, got %v", report.OverallStatus)
	}
	if report.TablesValidated != 0 || len(report.Issues) != 0 {
		t.Errorf("Expected empty report, got %+v", report)
	}
}
