// Package ingest adapts external table sources into fragments.
//
// Real ingestion (PDF extraction, OCR) lives outside this module; this
// package covers the two formats the engine consumes directly: the fragment
// JSON interchange format and HTML documents whose <table> elements stand in
// for extracted fragments.
package ingest
