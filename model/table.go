package model

import "strings"

// TableType distinguishes tables that preserve their page of origin from
// tables reassembled across page boundaries.
type TableType int

const (
	// TablePagePreserved mirrors a single fragment on a single page.
	TablePagePreserved TableType = iota
	// TableLogical is a reconstructed table, potentially assembled from many
	// fragments across many pages.
	TableLogical
)

// String returns the wire tag for the table type.
func (t TableType) String() string {
	switch t {
	case TablePagePreserved:
		return "page_preserved"
	case TableLogical:
		return "logical"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t TableType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// TableSchema describes the header structure of a table.
// When HasHeader is true, ColumnCount equals len(Headers).
type TableSchema struct {
	Headers          []string `json:"headers"`
	ColumnCount      int      `json:"column_count"`
	HasHeader        bool     `json:"has_header"`
	HeaderRowIndices []int    `json:"header_row_indices"`
}

// HeaderSchema builds the schema for a table whose first row is its header.
func HeaderSchema(header []string) TableSchema {
	return TableSchema{
		Headers:          header,
		ColumnCount:      len(header),
		HasHeader:        true,
		HeaderRowIndices: []int{0},
	}
}

// LogicalTable is a reconstructed table believed to represent one coherent
// real-world table. Logical tables are created only by a segmenter and never
// mutated afterwards.
type LogicalTable struct {
	Data        [][]string  `json:"data"`
	Schema      TableSchema `json:"schema"`
	SourcePages []int       `json:"source_pages"`
	Type        TableType   `json:"table_type"`
	Strategy    Strategy    `json:"segmentation_strategy"`

	// SectionTitle labels the group of rows in header-repetition output;
	// empty when the table carries no title.
	SectionTitle string `json:"section_title,omitempty"`

	// ScoreDomain is set on score-domain segmented tables.
	ScoreDomain *ScoreDomain `json:"score_domain,omitempty"`
}

// RowCount returns the number of rows, header included.
func (t *LogicalTable) RowCount() int {
	return len(t.Data)
}

// DataRowCount returns the number of rows excluding the header, when one is
// present.
func (t *LogicalTable) DataRowCount() int {
	if t.Schema.HasHeader && len(t.Data) > 0 {
		return len(t.Data) - 1
	}
	return len(t.Data)
}

// IsEmpty reports whether the table has no rows at all.
func (t *LogicalTable) IsEmpty() bool {
	return len(t.Data) == 0
}

// ToCSV renders the table as CSV text.
func (t *LogicalTable) ToCSV() string {
	var sb strings.Builder
	for _, row := range t.Data {
		for j, cell := range row {
			text := cell
			if strings.ContainsAny(text, ",\"\n") {
				text = "\"" + strings.ReplaceAll(text, "\"", "\"\"") + "\""
			}
			sb.WriteString(text)
			if j < len(row)-1 {
				sb.WriteString(",")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// ToMarkdown renders the table as a markdown table. The first row is treated
// as the header row.
func (t *LogicalTable) ToMarkdown() string {
	if len(t.Data) == 0 {
		return ""
	}

	var sb strings.Builder

	for j, cell := range t.Data[0] {
		sb.WriteString("| ")
		sb.WriteString(strings.ReplaceAll(cell, "\n", " "))
		sb.WriteString(" ")
		if j == len(t.Data[0])-1 {
			sb.WriteString("|")
		}
	}
	sb.WriteString("\n")

	for j := range t.Data[0] {
		sb.WriteString("|---")
		if j == len(t.Data[0])-1 {
			sb.WriteString("|")
		}
	}
	sb.WriteString("\n")

	for i := 1; i < len(t.Data); i++ {
		for j, cell := range t.Data[i] {
			sb.WriteString("| ")
			sb.WriteString(strings.ReplaceAll(cell, "\n", " "))
			sb.WriteString(" ")
			if j == len(t.Data[i])-1 {
				sb.WriteString("|")
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
