package model

// Fragment is one raw table lifted from a single page of a source document,
// before any cross-page reassembly. Cells are kept exactly as extracted; no
// numeric coercion happens until segmentation.
type Fragment struct {
	// Data holds the cell matrix, row-major.
	Data [][]string `json:"data"`

	// Page is the 1-indexed page the fragment was extracted from.
	Page int `json:"page"`

	// TableIndex is the position of the fragment among the tables found on
	// its page.
	TableIndex int `json:"table_index"`

	// Source tags the extraction origin (file name, extractor id).
	Source string `json:"source"`
}

// RowCount returns the number of rows in the fragment.
func (f *Fragment) RowCount() int {
	return len(f.Data)
}

// IsEmpty reports whether the fragment carries no rows. Empty fragments are
// skipped during segmentation rather than treated as errors.
func (f *Fragment) IsEmpty() bool {
	return len(f.Data) == 0
}
