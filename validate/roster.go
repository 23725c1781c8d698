package validate

import (
	"strings"

	"github.com/tsawler/restitch/model"
)

// Header keywords that classify a table as a personnel roster.
var rosterIndicators = []string{"name", "position", "department", "staff", "student", "employee"}

// isRosterTable reports whether any roster keyword appears in the table's
// headers.
func isRosterTable(t *model.LogicalTable) bool {
	if t.IsEmpty() {
		return false
	}
	joined := strings.ToLower(strings.Join(t.Schema.Headers, " "))
	for _, indicator := range rosterIndicators {
		if strings.Contains(joined, indicator) {
			return true
		}
	}
	return false
}

// checkRoster warns when two consecutive rows each carry exactly one
// non-blank cell. One such row is a legitimate section title; two in a row
// usually means a record was torn apart at extraction time.
func (v *Validator) checkRoster(t *model.LogicalTable, name string, report *model.Report) model.Status {
	status := model.StatusPassed
	for idx := 1; idx < len(t.Data)-1; idx++ {
		if singleCellCount(t.Data[idx]) != 1 || singleCellCount(t.Data[idx+1]) != 1 {
			continue
		}
		report.Add(model.Issue{
			Severity:  model.StatusWarning,
			Message:   "Possible orphan row detected",
			TableName: name,
			RowIndex:  idx,
			Details:   map[string]any{"content": firstCell(t.Data[idx])},
		})
		status = model.StatusWarning
	}
	return status
}

func singleCellCount(row []string) int {
	n := 0
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			n++
		}
	}
	return n
}

func firstCell(row []string) string {
	if len(row) == 0 {
		return ""
	}
	return row[0]
}
