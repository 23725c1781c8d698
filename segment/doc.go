// Package segment reassembles per-page table fragments into logical tables.
//
// Page breaks in the source document are arbitrary: a score distribution or
// a roster section can be cut mid-table and silently truncated if each page
// is treated as its own table. Both strategies here defeat that by merging
// every fragment first and only then re-grouping rows: by the numeric score
// domain their leading value falls into (ByScoreDomain), or by recurring
// header rows and section titles (ByHeaderRepetition).
//
// Segmentation is pure and deterministic: identical fragment ordering always
// yields identical logical tables.
package segment
