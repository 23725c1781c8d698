package segment

import (
	"strconv"
	"strings"
)

// parseNumber extracts a numeric value from a cell, stripping thousands
// separators and surrounding whitespace. Unparseable cells report ok=false
// and are treated as absent, never as errors.
func parseNumber(cell string) (float64, bool) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(cell, ",", ""))
	if cleaned == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// normalizeRow folds a row into a comparison key: cells trimmed, uppercased,
// and joined with a separator that cannot occur in cell text boundaries.
func normalizeRow(row []string) string {
	parts := make([]string, len(row))
	for i, cell := range row {
		parts[i] = strings.ToUpper(strings.TrimSpace(cell))
	}
	return strings.Join(parts, "\x1f")
}
