// Package export writes logical tables and validation reports to disk for
// downstream consumers. Spreadsheet and word-processor output belongs to the
// dedicated writer services; this package covers the plain-text formats the
// engine can render itself.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tsawler/restitch/model"
)

// Format selects how tables are rendered.
type Format int

const (
	// FormatCSV renders comma-separated values.
	FormatCSV Format = iota
	// FormatMarkdown renders markdown tables.
	FormatMarkdown
)

// String returns a human-readable representation of the format.
func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatMarkdown:
		return "markdown"
	default:
		return "unknown"
	}
}

// ParseFormat converts a format name into a Format.
func ParseFormat(name string) (Format, error) {
	switch name {
	case "csv":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	default:
		return FormatCSV, fmt.Errorf("unknown export format %q", name)
	}
}

func (f Format) extension() string {
	if f == FormatMarkdown {
		return ".md"
	}
	return ".csv"
}

// WriteTables writes one file per table into dir, creating it if needed, and
// returns the written paths in table order. File names derive from the
// table's score domain or section title when available.
func WriteTables(dir string, tables []model.LogicalTable, format Format) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	used := make(map[string]int)
	paths := make([]string, 0, len(tables))

	for i := range tables {
		t := &tables[i]

		name := tableFileName(t, i)
		if n := used[name]; n > 0 {
			used[name] = n + 1
			name = fmt.Sprintf("%s_%d", name, n+1)
		} else {
			used[name] = 1
		}

		var content string
		switch format {
		case FormatMarkdown:
			content = t.ToMarkdown()
		default:
			content = t.ToCSV()
		}

		path := filepath.Join(dir, name+format.extension())
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return paths, fmt.Errorf("writing %s: %w", path, err)
		}
		paths = append(paths, path)
	}

	return paths, nil
}

// WriteReport writes the validation report as indented JSON in the audit
// wire format.
func WriteReport(path string, report *model.Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

// tableFileName derives a file-system-safe name for a table.
func tableFileName(t *model.LogicalTable, index int) string {
	switch {
	case t.ScoreDomain != nil && t.ScoreDomain.Name != "":
		return sanitize(t.ScoreDomain.Name)
	case t.SectionTitle != "":
		return sanitize(t.SectionTitle)
	default:
		return fmt.Sprintf("table_%02d", index+1)
	}
}

// sanitize maps a display name onto a safe lowercase file name.
func sanitize(name string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r == ' ' || r == '-' || r == '_' || r == '.':
			sb.WriteRune('_')
		}
	}
	if sb.Len() == 0 {
		return "table"
	}
	return sb.String()
}
