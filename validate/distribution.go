package validate

import (
	"fmt"
	"strings"

	"github.com/tsawler/restitch/model"
)

// Header keywords that classify a table as a statistical distribution, and
// the per-column lookup vocabularies.
var (
	distributionIndicators = []string{"frequency", "percent", "cumulative", "score", "mark"}

	percentKeywords    = []string{"percent", "percentage", "%"}
	cumulativeKeywords = []string{"cumulative", "cum", "cum."}
	frequencyKeywords  = []string{"frequency", "freq", "f"}
	scoreKeywords      = []string{"score", "mark", "grade"}
)

// isDistributionTable reports whether enough distribution keywords appear as
// substrings of the table's headers.
func (v *Validator) isDistributionTable(t *model.LogicalTable) bool {
	if t.IsEmpty() {
		return false
	}
	matches := 0
	for _, indicator := range distributionIndicators {
		for _, h := range t.Schema.Headers {
			if strings.Contains(strings.ToLower(h), indicator) {
				matches++
				break
			}
		}
	}
	return matches >= v.cfg.DistributionKeywordMin
}

// checkDistribution runs the distribution-table rules: percent totals,
// non-negative frequencies, monotonic cumulative counts, and score-domain
// bounds when the table carries an assigned domain.
func (v *Validator) checkDistribution(t *model.LogicalTable, name string, report *model.Report) model.Status {
	status := model.StatusPassed
	headers := t.Schema.Headers

	percentCol := findColumn(headers, percentKeywords)
	cumulativeCol := findColumn(headers, cumulativeKeywords)
	frequencyCol := findColumn(headers, frequencyKeywords)
	scoreCol := findColumn(headers, scoreKeywords)

	if percentCol >= 0 {
		status = status.Escalate(v.checkPercentTotal(t, name, percentCol, report))
	}
	if frequencyCol >= 0 {
		status = status.Escalate(v.checkFrequencies(t, name, frequencyCol, report))
	}
	if cumulativeCol >= 0 {
		status = status.Escalate(v.checkCumulative(t, name, cumulativeCol, report))
	}
	if t.ScoreDomain != nil && scoreCol >= 0 {
		status = status.Escalate(v.checkScoreDomain(t, name, scoreCol, report))
	}

	return status
}

// checkPercentTotal fails the table when the percent column does not sum to
// 100 within tolerance. A column with no numeric values is skipped.
func (v *Validator) checkPercentTotal(t *model.LogicalTable, name string, col int, report *model.Report) model.Status {
	total, count := 0.0, 0
	for _, row := range t.Data[1:] {
		if len(row) <= col {
			continue
		}
		if n, ok := cellNumber(row[col]); ok {
			total += n
			count++
		}
	}
	if count == 0 {
		return model.StatusPassed
	}

	allowed := v.cfg.Tolerance * 100
	if diff := total - 100.0; diff > allowed || diff < -allowed {
		report.Add(model.Issue{
			Severity:   model.StatusFailed,
			Message:    fmt.Sprintf("Percent column does not sum to 100.00 (got %.2f)", total),
			TableName:  name,
			RowIndex:   model.NoRow,
			ColumnName: t.Schema.Headers[col],
			Details: map[string]any{
				"expected":  100.0,
				"actual":    total,
				"tolerance": allowed,
			},
		})
		return model.StatusFailed
	}
	return model.StatusPassed
}

// checkFrequencies fails the table for every negative frequency value.
func (v *Validator) checkFrequencies(t *model.LogicalTable, name string, col int, report *model.Report) model.Status {
	status := model.StatusPassed
	for idx := 1; idx < len(t.Data); idx++ {
		row := t.Data[idx]
		if len(row) <= col {
			continue
		}
		if n, ok := cellNumber(row[col]); ok && n < 0 {
			report.Add(model.Issue{
				Severity:   model.StatusFailed,
				Message:    fmt.Sprintf("Negative frequency found: %v", n),
				TableName:  name,
				RowIndex:   idx,
				ColumnName: t.Schema.Headers[col],
			})
			status = model.StatusFailed
		}
	}
	return status
}

// checkCumulative fails the table wherever the cumulative column decreases
// row over row. Non-numeric cells are skipped without resetting the running
// value.
func (v *Validator) checkCumulative(t *model.LogicalTable, name string, col int, report *model.Report) model.Status {
	status := model.StatusPassed
	prev, havePrev := 0.0, false
	for idx := 1; idx < len(t.Data); idx++ {
		row := t.Data[idx]
		if len(row) <= col {
			continue
		}
		n, ok := cellNumber(row[col])
		if !ok {
			continue
		}
		if havePrev && n < prev {
			report.Add(model.Issue{
				Severity:   model.StatusFailed,
				Message:    fmt.Sprintf("Cumulative frequency not monotonic: %v < %v", n, prev),
				TableName:  name,
				RowIndex:   idx,
				ColumnName: t.Schema.Headers[col],
			})
			status = model.StatusFailed
		}
		prev, havePrev = n, true
	}
	return status
}

// checkScoreDomain warns for every score outside the table's assigned
// domain.
func (v *Validator) checkScoreDomain(t *model.LogicalTable, name string, col int, report *model.Report) model.Status {
	status := model.StatusPassed
	domain := t.ScoreDomain
	for idx := 1; idx < len(t.Data); idx++ {
		row := t.Data[idx]
		if len(row) <= col {
			continue
		}
		if n, ok := cellNumber(row[col]); ok && !domain.Contains(n) {
			report.Add(model.Issue{
				Severity:  model.StatusWarning,
				Message: fmt.Sprintf("Score %v outside domain range [%s, %s]",
					n, model.FormatScore(domain.MinScore), model.FormatScore(domain.MaxScore)),
				TableName:  name,
				RowIndex:   idx,
				ColumnName: t.Schema.Headers[col],
			})
			status = model.StatusWarning
		}
	}
	return status
}
