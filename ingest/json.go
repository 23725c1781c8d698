package ingest

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/tsawler/restitch/model"
)

// Document is the JSON interchange unit handed over by an extraction
// service: the fragments found in one document plus the per-page text used
// for profile detection.
type Document struct {
	Fragments []model.Fragment `json:"fragments"`
	PageTexts []string         `json:"page_texts,omitempty"`
}

// DecodeDocument reads a Document from JSON. A bare JSON array is accepted
// as a fragment list with no page text.
func DecodeDocument(r io.Reader) (*Document, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}

	// Tolerate the older bare-array form.
	for _, b := range raw {
		if b == ' ' || b == '\t' || b == '\n' || b == '\r' {
			continue
		}
		if b == '[' {
			var frags []model.Fragment
			if err := json.Unmarshal(raw, &frags); err != nil {
				return nil, fmt.Errorf("decoding fragments: %w", err)
			}
			return &Document{Fragments: frags}, nil
		}
		break
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}
	return &doc, nil
}
