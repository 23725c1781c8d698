// Package model defines the core data types shared across the reassembly
// engine: raw page fragments, reconstructed logical tables, score domains,
// segmentation strategies, and validation reports.
//
// All types in this package are plain data. Fragments are produced by an
// ingestion layer and never mutated; logical tables are created only by the
// segment package; validation reports are mutated only by the validate
// package through the append-and-escalate Add operation.
package model
