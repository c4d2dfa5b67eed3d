package comparables

import (
	"regexp"
	"strings"

	"github.com/sells-group/comparables-api/internal/model"
)

// Candidate name length window. Shorter strings are usually acronym
// noise; longer ones are sentence fragments.
const (
	minNameLen = 3
	maxNameLen = 100
)

// namePatterns pull plausible company names out of result text. The
// legal-suffix pattern keeps the suffix in the captured name; the phrase
// patterns capture the bare name after a company word.
var namePatterns = []*regexp.Regexp{
	// "Dassault Systèmes SE", "Acme Corp", "Atos SAS".
	regexp.MustCompile(`([A-ZÀ-Þ][\wÀ-ÿ&'.-]*(?:\s+[A-ZÀ-Þ][\wÀ-ÿ&'.-]*){0,3}\s+(?:SE|SA|SAS|SARL|Inc\.?|Corp\.?|Ltd\.?|LLC|PLC|GmbH|AG))\b`),
	// "company Acme", "société Alten", "entreprise Sopra Steria".
	regexp.MustCompile(`(?:company|firm|société|entreprise|groupe)\s+([A-ZÀ-Þ][\wÀ-ÿ&'.-]*(?:\s+[A-ZÀ-Þ][\wÀ-ÿ&'.-]*){0,2})`),
}

// competitorListPattern captures an enumerated competitor list; entries
// are split on commas and conjunctions.
var competitorListPattern = regexp.MustCompile(`[Cc]ompetitors?\s+(?:include|such as|like|are)\s+([^.;!?]+)`)

var listSplitPattern = regexp.MustCompile(`\s*(?:,|\band\b|\bet\b|&)\s*`)

var yearPattern = regexp.MustCompile(`\b(18|19|20)\d{2}\b`)

// leadingStopwords reject captures that start mid-sentence.
var leadingStopwords = map[string]bool{
	"the": true, "a": true, "an": true, "this": true, "these": true,
	"its": true, "their": true, "other": true, "some": true, "many": true,
	"le": true, "la": true, "les": true, "un": true, "une": true,
	"des": true, "ses": true, "leurs": true,
}

var monthNames = []string{
	"january", "february", "march", "april", "may", "june", "july",
	"august", "september", "october", "november", "december",
	"janvier", "février", "mars", "avril", "mai", "juin", "juillet",
	"août", "septembre", "octobre", "novembre", "décembre",
}

// ExtractNames pulls candidate company names from a block of result
// text, tagging each with how it was found. Rejection rules run here;
// deduplication is the caller's job.
func ExtractNames(text, referenceName string) []Candidate {
	var out []Candidate

	for _, re := range namePatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			name := strings.TrimSpace(m[1])
			if acceptName(name, referenceName) {
				out = append(out, Candidate{Name: name, Source: model.SourceWebSearchExtraction})
			}
		}
	}

	for _, m := range competitorListPattern.FindAllStringSubmatch(text, -1) {
		for _, part := range listSplitPattern.Split(m[1], -1) {
			name := strings.TrimSpace(part)
			if acceptName(name, referenceName) {
				out = append(out, Candidate{Name: name, Source: model.SourceCompetitorExtract})
			}
		}
	}

	return out
}

// Candidate is an extracted name plus its provenance tag.
type Candidate struct {
	Name   string
	Source string
}

func acceptName(name, referenceName string) bool {
	if len(name) < minNameLen || len(name) > maxNameLen {
		return false
	}
	if strings.EqualFold(name, referenceName) {
		return false
	}
	if yearPattern.MatchString(name) {
		return false
	}

	first := strings.ToLower(strings.Fields(name)[0])
	if leadingStopwords[first] {
		return false
	}
	for _, month := range monthNames {
		if first == month {
			return false
		}
	}

	// Must start with an uppercase letter to look like a proper name.
	r := []rune(name)[0]
	return r >= 'A' && r <= 'Z' || r >= 'À' && r <= 'Þ'
}
