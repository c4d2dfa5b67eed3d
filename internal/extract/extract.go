// Package extract turns raw search-result text into a structured company
// profile using keyword tables and ordered regex heuristics. Extraction
// never fails: fields without evidence stay empty and the profile's
// confidence reflects how much text backed it.
package extract

import (
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/comparables-api/internal/geo"
	"github.com/sells-group/comparables-api/internal/model"
	"github.com/sells-group/comparables-api/pkg/searx"
)

// Confidence levels by evidence volume (result count).
const (
	standardThreshold = 5
	detailedThreshold = 10
)

// Extractor builds company profiles from search results.
type Extractor struct {
	sectors        []KeywordGroup
	fallbackSector string
	fallbackRegion string
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*Extractor)

// WithSectorTaxonomy replaces the built-in sector taxonomy.
func WithSectorTaxonomy(groups []KeywordGroup) ExtractorOption {
	return func(e *Extractor) { e.sectors = groups }
}

// WithFallbackSector sets the sector used when no keywords match.
func WithFallbackSector(sector string) ExtractorOption {
	return func(e *Extractor) { e.fallbackSector = sector }
}

// WithFallbackRegion sets the region used when geography detection finds
// nothing.
func WithFallbackRegion(region string) ExtractorOption {
	return func(e *Extractor) { e.fallbackRegion = region }
}

// NewExtractor creates an extractor with the built-in taxonomy and the
// shipped fallbacks (Technology / Global).
func NewExtractor(opts ...ExtractorOption) *Extractor {
	e := &Extractor{
		sectors:        sectorTaxonomy,
		fallbackSector: "Technology",
		fallbackRegion: "Global",
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Extract builds a profile for name from the given search results using
// the standard confidence thresholds.
func (e *Extractor) Extract(name string, results []searx.Result) model.CompanyProfile {
	return e.extract(name, results, model.SourceWebSearch, standardThreshold, 0.8, 0.6)
}

// ExtractDetailed is the deep-analysis variant: it expects results from
// several queries and uses a higher evidence bar for its higher
// confidence values.
func (e *Extractor) ExtractDetailed(name string, results []searx.Result) model.CompanyProfile {
	return e.extract(name, results, model.SourceWebSearchDetailed, detailedThreshold, 0.9, 0.7)
}

func (e *Extractor) extract(name string, results []searx.Result, source string, threshold int, highConf, lowConf float64) model.CompanyProfile {
	var sb strings.Builder
	for _, r := range results {
		sb.WriteString(r.Title)
		sb.WriteString(". ")
		sb.WriteString(r.Content)
		sb.WriteString(" ")
	}
	text := sb.String()
	lower := strings.ToLower(text)

	confidence := lowConf
	if len(results) > threshold {
		confidence = highConf
	}
	if len(results) == 0 {
		confidence = 0
	}

	geoCtx := geo.Detect(name)
	region := geoCtx.Region
	country := geoCtx.Country
	if region == "" {
		region = e.fallbackRegion
	}

	sector := bestKeywordGroup(lower, e.sectors)
	if sector == "" {
		sector = e.fallbackSector
	}

	employees := ExtractEmployees(lower)
	revenueM := ExtractRevenueMillions(lower)

	p := model.CompanyProfile{
		Name:                 name,
		Source:               source,
		Confidence:           clamp01(confidence),
		Sector:               sector,
		Industry:             bestKeywordGroup(lower, industryKeywords),
		Country:              country,
		Region:               region,
		Employees:            employees,
		Revenue:              formatRevenue(revenueM),
		RevenueMillions:      revenueM,
		FoundingYear:         ExtractFoundingYear(lower),
		Headquarters:         ExtractHeadquarters(lower),
		Leadership:           extractLeadership(text),
		MainActivities:       matchingGroups(lower, activityKeywords, 5),
		BusinessModel:        detectBusinessModel(lower),
		MarketPosition:       detectMarketPosition(lower),
		FundingInfo:          fundingPattern.FindString(lower),
		CompetitorsMentioned: ExtractCompetitors(text, name),
		Description:          firstSnippet(results),
		Website:              guessWebsite(name, results),
		KeyPoints:            keyPoints(results),
	}

	p.IsPublic, p.ListingStatus = detectListing(lower)
	p.EmployeeCategory = EmployeeCategory(p.Employees)
	p.RevenueCategory = RevenueCategory(p.RevenueMillions)
	p.SizeCategory = SizeCategory(p.Employees, p.RevenueMillions)

	zap.L().Debug("profile extracted",
		zap.String("name", name),
		zap.Int("results", len(results)),
		zap.String("sector", p.Sector),
		zap.Float64("confidence", p.Confidence),
	)

	return p
}

func extractLeadership(text string) []model.Leader {
	var out []model.Leader
	for _, lp := range leadershipPatterns {
		for _, re := range lp.res {
			if m := re.FindStringSubmatch(text); m != nil {
				out = append(out, model.Leader{Role: lp.role, Name: m[1]})
				break
			}
		}
	}
	return out
}

func detectListing(lower string) (bool, string) {
	for _, kw := range publicKeywords {
		if strings.Contains(lower, kw) {
			return true, "listed"
		}
	}
	if strings.Contains(lower, "private company") || strings.Contains(lower, "privately held") ||
		strings.Contains(lower, "non cotée") {
		return false, "private"
	}
	return false, ""
}

func detectBusinessModel(lower string) string {
	switch {
	case strings.Contains(lower, "saas") || strings.Contains(lower, "subscription"):
		return "SaaS"
	case strings.Contains(lower, "marketplace"):
		return "Marketplace"
	case strings.Contains(lower, "b2b"):
		return "B2B"
	case strings.Contains(lower, "b2c") || strings.Contains(lower, "consumer"):
		return "B2C"
	}
	return ""
}

func detectMarketPosition(lower string) string {
	switch {
	case strings.Contains(lower, "market leader") || strings.Contains(lower, "leading provider") ||
		strings.Contains(lower, "leader in"):
		return "leader"
	case strings.Contains(lower, "challenger"):
		return "challenger"
	case strings.Contains(lower, "pioneer") || strings.Contains(lower, "innovator"):
		return "pioneer"
	case strings.Contains(lower, "niche") || strings.Contains(lower, "specialized") ||
		strings.Contains(lower, "spécialisée"):
		return "niche player"
	}
	return ""
}

func firstSnippet(results []searx.Result) string {
	for _, r := range results {
		s := strings.TrimSpace(r.Content)
		if s == "" {
			continue
		}
		// Truncate on a rune boundary; snippets are often French text.
		if r := []rune(s); len(r) > 300 {
			s = string(r[:300]) + "..."
		}
		return s
	}
	return ""
}

// guessWebsite returns the first result URL whose host contains the first
// token of the company name.
func guessWebsite(name string, results []searx.Result) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	token := strings.ToLower(fields[0])
	for _, r := range results {
		u, err := url.Parse(r.URL)
		if err != nil || u.Host == "" {
			continue
		}
		if strings.Contains(strings.ToLower(u.Host), token) {
			return u.Scheme + "://" + u.Host
		}
	}
	return ""
}

func keyPoints(results []searx.Result) []string {
	var out []string
	for _, r := range results {
		t := strings.TrimSpace(r.Title)
		if t == "" || t == "Untitled result" {
			continue
		}
		out = append(out, t)
		if len(out) == 3 {
			break
		}
	}
	return out
}

func formatRevenue(millions *float64) string {
	if millions == nil {
		return ""
	}
	if *millions >= 1000 {
		return fmt.Sprintf("€%.1fB", *millions/1000)
	}
	return fmt.Sprintf("€%.0fM", *millions)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
