package segment

import (
	"strings"

	"github.com/tsawler/restitch/model"
)

// ByHeaderRepetition merges all fragments and re-groups rows by recurring
// header rows. Rows with a single non-blank cell between headers become the
// section title of the table that follows. When no header row repeats, the
// whole merged input becomes one logical table.
func (s *Segmenter) ByHeaderRepetition(frags []model.Fragment) []model.LogicalTable {
	merged, pages := mergeFragments(frags)
	if len(merged) == 0 {
		return nil
	}

	pattern, width, ok := detectHeaderPattern(merged)
	if !ok {
		return singleLogicalTable(merged, pages)
	}

	var tables []model.LogicalTable
	var header []string
	var section [][]string
	title := ""

	flush := func() {
		if header == nil || len(section) == 0 {
			return
		}
		data := make([][]string, 0, len(section)+1)
		data = append(data, header)
		data = append(data, section...)
		tables = append(tables, model.LogicalTable{
			Data:         data,
			Schema:       model.HeaderSchema(header),
			SourcePages:  pages,
			Type:         model.TableLogical,
			Strategy:     model.StrategyHeaderRepetition,
			SectionTitle: title,
		})
	}

	for _, row := range merged {
		if len(row) == 0 {
			continue
		}
		switch {
		case len(row) == width && normalizeRow(row) == pattern:
			flush()
			header = row
			section = nil
			title = ""
		case isSectionTitle(row):
			title = sectionTitle(row)
		default:
			// Rows seen before any header are dropped.
			if header != nil {
				section = append(section, row)
			}
		}
	}
	flush()

	if len(tables) == 0 {
		return singleLogicalTable(merged, pages)
	}
	return tables
}

// detectHeaderPattern finds the first fully-populated row (by first-seen
// order, normalized) that occurs at least twice across the merged data. It
// returns the normalized key and the cell count of the pattern.
func detectHeaderPattern(merged [][]string) (string, int, bool) {
	counts := make(map[string]int)
	widths := make(map[string]int)
	var order []string

	for _, row := range merged {
		if len(row) == 0 {
			continue
		}
		populated := true
		for _, cell := range row {
			if strings.TrimSpace(cell) == "" {
				populated = false
				break
			}
		}
		if !populated {
			continue
		}
		key := normalizeRow(row)
		if counts[key] == 0 {
			order = append(order, key)
			widths[key] = len(row)
		}
		counts[key]++
	}

	for _, key := range order {
		if counts[key] >= 2 {
			return key, widths[key], true
		}
	}
	return "", 0, false
}

// isSectionTitle reports whether a row of two or more cells has exactly one
// non-blank cell. Such rows label the rows that follow them.
func isSectionTitle(row []string) bool {
	if len(row) < 2 {
		return false
	}
	nonBlank := 0
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			nonBlank++
		}
	}
	return nonBlank == 1
}

// sectionTitle returns the single non-blank cell of a section-title row.
func sectionTitle(row []string) string {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return cell
		}
	}
	return ""
}

// singleLogicalTable wraps the full merged data into one table with the first
// row as header.
func singleLogicalTable(merged [][]string, pages []int) []model.LogicalTable {
	return []model.LogicalTable{{
		Data:        merged,
		Schema:      model.HeaderSchema(merged[0]),
		SourcePages: pages,
		Type:        model.TableLogical,
		Strategy:    model.StrategyHeaderRepetition,
	}}
}
