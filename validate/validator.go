package validate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tsawler/restitch/model"
)

// Config holds the tunable validation thresholds.
type Config struct {
	// Tolerance bounds the percent-total check as a fraction of 100: the
	// default 0.01 allows the column to miss 100.00 by one percentage point.
	Tolerance float64

	// DistributionKeywordMin is how many distribution header keywords must
	// match before the distribution rules apply.
	DistributionKeywordMin int
}

// DefaultConfig returns the default thresholds.
func DefaultConfig() Config {
	return Config{
		Tolerance:              0.01,
		DistributionKeywordMin: 2,
	}
}

// Validator runs the rule chain over logical tables.
type Validator struct {
	cfg Config
}

// New creates a validator with default configuration.
func New() *Validator {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates a validator with the given configuration.
func NewWithConfig(cfg Config) *Validator {
	return &Validator{cfg: cfg}
}

// Validate runs all rules over all tables and returns the aggregate report.
// Names label tables in issues; missing names default to Table_1, Table_2, …
// Validation never returns an error: malformed cells are treated as
// non-numeric and excluded from sums and comparisons.
func (v *Validator) Validate(tables []model.LogicalTable, names []string) *model.Report {
	report := model.NewReport()

	for i := range tables {
		name := fmt.Sprintf("Table_%d", i+1)
		if i < len(names) && names[i] != "" {
			name = names[i]
		}
		report.CountTable(v.validateTable(&tables[i], name, report))
	}

	return report
}

// validateTable runs the rule chain for one table and returns the worst
// severity it produced.
func (v *Validator) validateTable(t *model.LogicalTable, name string, report *model.Report) model.Status {
	worst := v.checkDuplicateRows(t, name, report)
	worst = worst.Escalate(v.checkColumnConsistency(t, name, report))
	worst = worst.Escalate(v.checkHeaderPresence(t, name, report))

	if v.isDistributionTable(t) {
		worst = worst.Escalate(v.checkDistribution(t, name, report))
	}
	if isRosterTable(t) {
		worst = worst.Escalate(v.checkRoster(t, name, report))
	}

	return worst
}

// checkDuplicateRows fails the table on the first repeated non-blank data
// row. Rows are compared trimmed; the header row is excluded when present.
func (v *Validator) checkDuplicateRows(t *model.LogicalTable, name string, report *model.Report) model.Status {
	if t.IsEmpty() || len(t.Data) <= 1 {
		return model.StatusPassed
	}

	offset := 0
	rows := t.Data
	if t.Schema.HasHeader {
		offset = 1
		rows = t.Data[1:]
	}

	seen := make(map[string]bool)
	for idx, row := range rows {
		key, blank := rowKey(row)
		if seen[key] && !blank {
			report.Add(model.Issue{
				Severity:  model.StatusFailed,
				Message:   "Duplicate row found",
				TableName: name,
				RowIndex:  idx + offset,
				Details:   map[string]any{"row_content": trimmedCells(row)},
			})
			return model.StatusFailed
		}
		seen[key] = true
	}

	return model.StatusPassed
}

// checkColumnConsistency warns for every row whose cell count differs from
// the schema. All rows are checked, header included.
func (v *Validator) checkColumnConsistency(t *model.LogicalTable, name string, report *model.Report) model.Status {
	if t.IsEmpty() {
		return model.StatusPassed
	}

	expected := t.Schema.ColumnCount
	status := model.StatusPassed
	for idx, row := range t.Data {
		if len(row) != expected {
			report.Add(model.Issue{
				Severity:  model.StatusWarning,
				Message:   fmt.Sprintf("Inconsistent column count: expected %d, got %d", expected, len(row)),
				TableName: name,
				RowIndex:  idx,
				Details:   map[string]any{"expected": expected, "actual": len(row)},
			})
			status = model.StatusWarning
		}
	}

	return status
}

// checkHeaderPresence warns when a non-empty table carries no header.
func (v *Validator) checkHeaderPresence(t *model.LogicalTable, name string, report *model.Report) model.Status {
	if !t.Schema.HasHeader && len(t.Data) > 0 {
		report.Add(model.Issue{
			Severity:  model.StatusWarning,
			Message:   "Table has no detected header",
			TableName: name,
			RowIndex:  model.NoRow,
			Details:   map[string]any{"rows": len(t.Data)},
		})
		return model.StatusWarning
	}
	return model.StatusPassed
}

// cellNumber extracts a numeric value from a cell, stripping thousands
// separators, percent signs, and whitespace. Malformed cells report
// ok=false and are excluded from sums and comparisons.
func cellNumber(cell string) (float64, bool) {
	cleaned := strings.TrimSpace(strings.NewReplacer(",", "", "%", "").Replace(cell))
	if cleaned == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// rowKey normalizes a row for duplicate comparison and reports whether it is
// entirely blank.
func rowKey(row []string) (key string, blank bool) {
	parts := make([]string, len(row))
	blank = true
	for i, cell := range row {
		parts[i] = strings.TrimSpace(cell)
		if parts[i] != "" {
			blank = false
		}
	}
	return strings.Join(parts, "\x1f"), blank
}

func trimmedCells(row []string) []string {
	out := make([]string, len(row))
	for i, cell := range row {
		out[i] = strings.TrimSpace(cell)
	}
	return out
}

// findColumn returns the index of the first header containing any of the
// keywords, or -1. Headers are scanned in order so the leftmost match wins.
func findColumn(headers []string, keywords []string) int {
	for idx, header := range headers {
		h := strings.ToLower(header)
		for _, kw := range keywords {
			if strings.Contains(h, kw) {
				return idx
			}
		}
	}
	return -1
}
