// Package validate certifies reassembled tables against deterministic
// structural and numeric rules before they reach any output writer.
//
// Every table runs a fixed chain: duplicate-row detection, column
// consistency, header presence, then distribution-specific rules (percent
// totals, non-negative frequencies, monotonic cumulative counts, score-domain
// bounds) and roster-specific rules (orphan rows) when the header vocabulary
// classifies the table as one or the other. Rules never fail the run itself;
// every finding surfaces as an issue in the report, ranked on the
// passed < warning < failed lattice.
package validate
