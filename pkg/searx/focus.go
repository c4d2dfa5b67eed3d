package searx

import "strings"

// FocusMode biases generic web search toward a topical slant by selecting
// engines/categories and appending boost keywords to the query text.
type FocusMode struct {
	Name          string
	Engines       string
	Categories    string
	BoostKeywords []string
	Description   string
}

// Focus mode names.
const (
	FocusFinancial   = "financialSearch"
	FocusCompany     = "companyResearch"
	FocusMarket      = "marketAnalysis"
	FocusCompetitors = "competitorAnalysis"
)

// focusModes is the fixed registry, in declaration order. companyResearch
// is the default when detection finds no winner or a tie.
var focusModes = []FocusMode{
	{
		Name:       FocusFinancial,
		Engines:    "google,bing",
		Categories: "general",
		BoostKeywords: []string{
			"revenue", "financial results", "turnover", "earnings",
			"profit", "ebitda", "annual report",
		},
		Description: "Financial statements, revenue and earnings coverage",
	},
	{
		Name:       FocusCompany,
		Engines:    "google,bing,duckduckgo",
		Categories: "general",
		BoostKeywords: []string{
			"company profile", "headquarters", "employees", "founded",
			"about", "leadership",
		},
		Description: "General company background and profile information",
	},
	{
		Name:       FocusMarket,
		Engines:    "google,yahoo",
		Categories: "general",
		BoostKeywords: []string{
			"market analysis", "industry trends", "market share",
			"market size", "growth forecast",
		},
		Description: "Market sizing, trends and industry analysis",
	},
	{
		Name:       FocusCompetitors,
		Engines:    "google,bing",
		Categories: "general",
		BoostKeywords: []string{
			"competitors", "alternatives", "rivals", "similar companies",
			"versus", "comparison",
		},
		Description: "Competitive landscape and comparable companies",
	},
}

// FocusModeByName returns the registered mode with the given name, or nil.
func FocusModeByName(name string) *FocusMode {
	for i := range focusModes {
		if focusModes[i].Name == name {
			return &focusModes[i]
		}
	}
	return nil
}

// DefaultFocusMode returns the companyResearch mode.
func DefaultFocusMode() *FocusMode {
	return FocusModeByName(FocusCompany)
}

// DetectOptimalFocus scores each registered mode by counting how many of
// its boost keywords appear in the query (case-insensitive) and returns
// the mode with the strictly highest count. No match or a tie falls back
// to companyResearch.
func DetectOptimalFocus(query string) *FocusMode {
	q := strings.ToLower(query)

	best := -1
	bestCount := 0
	tied := false
	for i := range focusModes {
		hits := 0
		for _, kw := range focusModes[i].BoostKeywords {
			if strings.Contains(q, kw) {
				hits++
			}
		}
		switch {
		case hits > bestCount:
			best, bestCount, tied = i, hits, false
		case hits == bestCount && hits > 0:
			tied = true
		}
	}

	if best < 0 || tied {
		return DefaultFocusMode()
	}
	return &focusModes[best]
}

// ApplyFocus rewrites a query under the given mode. Engines and categories
// come straight from the mode definition (idempotent); the query text has
// up to two boost keywords appended on every call, so repeated application
// biases the query further.
func ApplyFocus(query string, mode *FocusMode) (rewritten, engines, categories string) {
	boost := mode.BoostKeywords
	if len(boost) > 2 {
		boost = boost[:2]
	}
	if len(boost) > 0 {
		query = query + " " + strings.Join(boost, " ")
	}
	return query, mode.Engines, mode.Categories
}
