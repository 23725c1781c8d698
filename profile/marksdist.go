package profile

import (
	"regexp"
	"strings"

	"github.com/tsawler/restitch/model"
)

// MarksDistribution recognizes WAEC TASS/CASS statistical score-distribution
// reports. These reports carry fixed score ranges that must never be split
// at a page boundary, so the profile forces score-domain segmentation with
// the standard domains.
type MarksDistribution struct{}

var (
	waecIndicators = []string{"WAEC", "WEST AFRICAN EXAMINATIONS COUNCIL", "TASS", "CASS"}

	distributionHeaderKeywords = []string{"FREQUENCY", "PERCENT", "CUMULATIVE", "SCORE"}

	subjectRe = regexp.MustCompile(`SUBJECT[:\s]+([A-Z][A-Z\s]*?)(?:\s{2,}|\n|$)`)
	sessionRe = regexp.MustCompile(`(?:SESSION|YEAR)[:\s]+(\d{4})`)
	titleRe   = regexp.MustCompile(`(?i)(TASS|CASS)\s+(?:AND\s+)?(?:TASS|CASS)?\s*.*?STATISTICS`)
)

// ID implements Profile.
func (MarksDistribution) ID() string { return "waec_marksdist" }

// Version implements Profile.
func (MarksDistribution) Version() string { return "1.0.0" }

// Detect scores WAEC indicators in the page text, distribution keywords in
// header rows, and numeric leading columns in the fragments.
func (m MarksDistribution) Detect(frags []model.Fragment, pageTexts []string, _ Context) (DetectionResult, error) {
	confidence := 0.0
	metadata := make(map[string]string)

	fullText := strings.ToUpper(strings.Join(pageTexts, " "))

	indicatorMatches := 0
	for _, ind := range waecIndicators {
		if strings.Contains(fullText, ind) {
			indicatorMatches++
		}
	}
	if indicatorMatches > 0 {
		if indicatorMatches > 2 {
			indicatorMatches = 2
		}
		confidence += 0.3 * float64(indicatorMatches)
	}

	keywordCount := 0
	for _, f := range frags {
		if f.IsEmpty() {
			continue
		}
		firstRow := strings.ToUpper(strings.Join(f.Data[0], " "))
		for _, kw := range distributionHeaderKeywords {
			if strings.Contains(firstRow, kw) {
				keywordCount++
			}
		}
	}
	if keywordCount >= 3 {
		confidence += 0.4
	}

	if hasNumericLeadColumn(frags) {
		confidence += 0.3
	}

	if sm := subjectRe.FindStringSubmatch(fullText); sm != nil {
		metadata["subject"] = strings.TrimSpace(sm[1])
	}
	if sm := sessionRe.FindStringSubmatch(fullText); sm != nil {
		metadata["session"] = sm[1]
	}
	if strings.Contains(fullText, "OBJECTIVE") {
		metadata["paper_type"] = "objective"
	}
	if strings.Contains(fullText, "ESSAY") {
		metadata["paper_type"] = "essay"
	}

	if confidence > 1.0 {
		confidence = 1.0
	}
	return DetectionResult{ProfileID: m.ID(), Confidence: confidence, Metadata: metadata}, nil
}

// Strategy implements Profile: score-domain segmentation prevents ranges
// spanning pages from being truncated.
func (MarksDistribution) Strategy() model.Strategy { return model.StrategyScoreDomain }

// ScoreDomains returns the standard WAEC score ranges.
func (MarksDistribution) ScoreDomains() []model.ScoreDomain {
	return []model.ScoreDomain{
		{Name: "Scaled_Objective", MinScore: 0, MaxScore: 19, Description: "Scaled Objective score range (0-19)"},
		{Name: "Scaled_Essay", MinScore: 15, MaxScore: 40, Description: "Scaled Essay score range (15-40)"},
		{Name: "Raw_Score_40", MinScore: 0, MaxScore: 40, Description: "Raw score range (0-40)"},
		{Name: "Raw_Score_50", MinScore: 0, MaxScore: 50, Description: "Raw score range (0-50)"},
		{Name: "Raw_Score_60", MinScore: 0, MaxScore: 60, Description: "Raw score range (0-60)"},
	}
}

// ExtractMetadata implements Profile.
func (m MarksDistribution) ExtractMetadata(_ []model.Fragment, pageTexts []string, _ Context) model.DocumentMetadata {
	fullText := strings.Join(pageTexts, " ")
	upper := strings.ToUpper(fullText)

	title := "WAEC Marks Distribution"
	if t := titleRe.FindString(fullText); t != "" {
		title = t
	}

	meta := model.DocumentMetadata{
		Title:          title,
		Organization:   "West African Examinations Council (WAEC)",
		ProfileID:      m.ID(),
		ProfileVersion: m.Version(),
	}
	if sm := subjectRe.FindStringSubmatch(upper); sm != nil {
		meta.SubjectOrCode = strings.TrimSpace(sm[1])
	}
	if sm := sessionRe.FindStringSubmatch(upper); sm != nil {
		meta.ReportingPeriod = sm[1]
	}
	return meta
}

// hasNumericLeadColumn reports whether any fragment's first column is more
// than 70% numeric across its data rows.
func hasNumericLeadColumn(frags []model.Fragment) bool {
	for _, f := range frags {
		if len(f.Data) < 2 {
			continue
		}
		total, numeric := 0, 0
		for _, row := range f.Data[1:] {
			if len(row) == 0 {
				continue
			}
			total++
			if isNumeric(row[0]) {
				numeric++
			}
		}
		if total > 0 && float64(numeric) > 0.7*float64(total) {
			return true
		}
	}
	return false
}

func isNumeric(cell string) bool {
	cleaned := strings.TrimSpace(strings.ReplaceAll(cell, ",", ""))
	if cleaned == "" {
		return false
	}
	for i, r := range cleaned {
		if r >= '0' && r <= '9' {
			continue
		}
		if (r == '-' || r == '+') && i == 0 {
			continue
		}
		if r == '.' {
			continue
		}
		return false
	}
	return true
}
