package profile

import (
	"regexp"
	"strings"

	"github.com/tsawler/restitch/model"
)

// StaffList recognizes roster-style documents (international staff lists,
// personnel rosters) where the same header row repeats on every page and
// department names appear as isolated section titles. These documents use
// header-repetition segmentation.
type StaffList struct{}

var (
	staffIndicators = []string{"STAFF LIST", "STAFF ROSTER", "INTERNATIONAL STAFF", "PERSONNEL"}

	rosterHeaderKeywords = []string{"NAME", "POSITION", "DEPARTMENT", "NATIONALITY"}

	yearRe     = regexp.MustCompile(`\b(20\d{2})\b`)
	orgRe      = regexp.MustCompile(`(?i)(?:SCHOOL|COLLEGE|UNIVERSITY|ORGANIZATION)[:\s]+([A-Z][A-Z\s&]*)`)
	staffTitle = regexp.MustCompile(`(?i)(INTERNATIONAL\s+STAFF\s+LIST[^\n]*?(?:\d{4})?)`)
)

// ID implements Profile.
func (StaffList) ID() string { return "international_staff_list" }

// Version implements Profile.
func (StaffList) Version() string { return "1.0.0" }

// Detect scores staff-list indicators in the page text, roster keywords in
// header rows, and the presence of a repeated header pattern.
func (s StaffList) Detect(frags []model.Fragment, pageTexts []string, _ Context) (DetectionResult, error) {
	confidence := 0.0
	metadata := make(map[string]string)

	fullText := strings.ToUpper(strings.Join(pageTexts, " "))

	indicatorMatches := 0
	for _, ind := range staffIndicators {
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
		for _, kw := range rosterHeaderKeywords {
			if strings.Contains(firstRow, kw) {
				keywordCount++
			}
		}
	}
	if keywordCount >= 2 {
		confidence += 0.3
	}

	if pattern, ok := repeatedHeader(frags); ok {
		confidence += 0.4
		metadata["header_pattern"] = pattern
	}

	if ym := yearRe.FindStringSubmatch(fullText); ym != nil {
		metadata["year"] = ym[1]
	}

	if confidence > 1.0 {
		confidence = 1.0
	}
	return DetectionResult{ProfileID: s.ID(), Confidence: confidence, Metadata: metadata}, nil
}

// Strategy implements Profile: rosters segment by their repeated headers.
func (StaffList) Strategy() model.Strategy { return model.StrategyHeaderRepetition }

// ScoreDomains implements Profile; rosters have no score axis.
func (StaffList) ScoreDomains() []model.ScoreDomain { return nil }

// ExtractMetadata implements Profile.
func (s StaffList) ExtractMetadata(_ []model.Fragment, pageTexts []string, _ Context) model.DocumentMetadata {
	fullText := strings.Join(pageTexts, " ")

	title := "International Staff List"
	if tm := staffTitle.FindStringSubmatch(fullText); tm != nil {
		title = strings.TrimSpace(tm[1])
	}

	meta := model.DocumentMetadata{
		Title:          title,
		ProfileID:      s.ID(),
		ProfileVersion: s.Version(),
	}
	if om := orgRe.FindStringSubmatch(fullText); om != nil {
		meta.Organization = strings.TrimSpace(om[1])
	}
	if ym := yearRe.FindStringSubmatch(fullText); ym != nil {
		meta.ReportingPeriod = ym[1]
	}
	return meta
}

// repeatedHeader finds the first fully-populated row occurring at least
// twice across all fragments, returned as a normalized pattern string.
func repeatedHeader(frags []model.Fragment) (string, bool) {
	counts := make(map[string]int)
	var order []string

	for _, f := range frags {
		for _, row := range f.Data {
			if len(row) == 0 {
				continue
			}
			populated := true
			for _, cell := range row {
				if strings.TrimSpace(cell) == "" {
					populated = false
					break
				}
			}
			if !populated {
				continue
			}
			parts := make([]string, len(row))
			for i, cell := range row {
				parts[i] = strings.ToUpper(strings.TrimSpace(cell))
			}
			key := strings.Join(parts, " | ")
			if counts[key] == 0 {
				order = append(order, key)
			}
			counts[key]++
		}
	}

	for _, key := range order {
		if counts[key] >= 2 {
			return key, true
		}
	}
	return "", false
}
