package segment

import (
	"sort"

	"github.com/tsawler/restitch/model"
)

// scoreColumn is the column whose value routes a row into its domain.
// Distribution reports lead with the score.
const scoreColumn = 0

// ByScoreDomain merges all fragments and re-groups data rows by which score
// domain their leading numeric value falls into. When domains is empty they
// are auto-detected from the data. Domains that match no rows produce no
// table. Domains are evaluated in the order given; overlapping domains each
// receive the rows they match.
func (s *Segmenter) ByScoreDomain(frags []model.Fragment, domains []model.ScoreDomain) []model.LogicalTable {
	merged, pages := mergeFragments(frags)
	if len(merged) == 0 {
		return nil
	}

	header := merged[0]
	rows := merged[1:]

	if len(domains) == 0 {
		domains = s.DetectScoreDomains(rows)
	}

	var tables []model.LogicalTable
	for _, domain := range domains {
		var matched [][]string
		for _, row := range rows {
			if len(row) <= scoreColumn {
				continue
			}
			v, ok := parseNumber(row[scoreColumn])
			if ok && domain.Contains(v) {
				matched = append(matched, row)
			}
		}
		if len(matched) == 0 {
			continue
		}

		data := make([][]string, 0, len(matched)+1)
		data = append(data, header)
		data = append(data, matched...)

		d := domain
		tables = append(tables, model.LogicalTable{
			Data:        data,
			Schema:      model.HeaderSchema(header),
			SourcePages: pages,
			Type:        model.TableLogical,
			Strategy:    model.StrategyScoreDomain,
			ScoreDomain: &d,
		})
	}

	return tables
}

// DetectScoreDomains infers score domains from the data rows: every numeric
// leading value is collected, deduplicated, and sorted; a new domain starts
// wherever two consecutive values differ by more than DomainGap.
func (s *Segmenter) DetectScoreDomains(rows [][]string) []model.ScoreDomain {
	unique := make(map[float64]bool)
	for _, row := range rows {
		if len(row) <= scoreColumn {
			continue
		}
		if v, ok := parseNumber(row[scoreColumn]); ok {
			unique[v] = true
		}
	}
	if len(unique) == 0 {
		return nil
	}

	scores := make([]float64, 0, len(unique))
	for v := range unique {
		scores = append(scores, v)
	}
	sort.Float64s(scores)

	var domains []model.ScoreDomain
	min := scores[0]
	for i := 1; i < len(scores); i++ {
		if scores[i]-scores[i-1] > s.cfg.DomainGap {
			domains = append(domains, model.RangeDomain(min, scores[i-1]))
			min = scores[i]
		}
	}
	domains = append(domains, model.RangeDomain(min, scores[len(scores)-1]))

	return domains
}
