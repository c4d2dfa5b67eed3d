package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Plausibility windows for numeric extraction. Values outside them are
// rejected and the next pattern is tried.
const (
	minEmployees = 1
	maxEmployees = 5_000_000

	minRevenueMillions = 1
	maxRevenueMillions = 1_000_000
)

// employeePattern pairs a compiled regex with a multiplier applied to the
// captured number. Patterns are tried in order; the first plausible match
// wins and no aggregation happens across later mentions.
type numberPattern struct {
	re         *regexp.Regexp
	multiplier float64
}

var employeePatterns = []numberPattern{
	// Thousands-separated figures: "12,500 employees", "12 500 salariés".
	{re: regexp.MustCompile(`(\d{1,3}(?:[,\s]\d{3})+)\s*(?:employees|employés|salariés|collaborateurs|staff|people)`), multiplier: 1},
	// "k" shorthand: "350k employees".
	{re: regexp.MustCompile(`(\d+(?:\.\d+)?)k\s*(?:employees|employés|salariés|collaborateurs)`), multiplier: 1000},
	// Plain figures: "850 employees".
	{re: regexp.MustCompile(`(\d{1,7})\s*(?:employees|employés|salariés|collaborateurs)`), multiplier: 1},
	// Narrative phrasing, English and French.
	{re: regexp.MustCompile(`(?:employs|workforce of|team of|emploie|compte)\s*(?:about|around|over|more than|environ|plus de)?\s*(\d[\d,\s]*)`), multiplier: 1},
}

var revenuePatterns = []numberPattern{
	// Billions: "€2.5 billion", "$3bn", "2 milliards d'euros".
	{re: regexp.MustCompile(`[€$£]?\s*(\d+(?:[.,]\d+)?)\s*(?:billion|bn|milliards?)`), multiplier: 1000},
	// Millions: "€450 million", "450m€", "450 millions d'euros".
	{re: regexp.MustCompile(`[€$£]?\s*(\d+(?:[.,]\d+)?)\s*(?:million|m€|millions?)`), multiplier: 1},
	// Narrative: "revenue of 320", "chiffre d'affaires de 320" (assumed €M).
	{re: regexp.MustCompile(`(?:revenue|turnover|sales|chiffre d'affaires)\s*(?:of|de|:)?\s*[€$£]?(\d+(?:[.,]\d+)?)`), multiplier: 1},
}

// foundingYearPatterns all run; when several plausible years are found the
// earliest is kept, since later years are often anniversaries or
// milestones rather than the founding date.
var foundingYearPatterns = []*regexp.Regexp{
	regexp.MustCompile(`founded\s+in\s+(\d{4})`),
	regexp.MustCompile(`established\s+in\s+(\d{4})`),
	regexp.MustCompile(`created\s+in\s+(\d{4})`),
	regexp.MustCompile(`since\s+(\d{4})`),
	regexp.MustCompile(`fondée?\s+en\s+(\d{4})`),
	regexp.MustCompile(`créée?\s+en\s+(\d{4})`),
	regexp.MustCompile(`depuis\s+(\d{4})`),
	regexp.MustCompile(`\((\d{4})\)`),
}

// headquartersPatterns capture a city token that is then checked against
// the allow-list.
var headquartersPatterns = []*regexp.Regexp{
	regexp.MustCompile(`headquartered\s+in\s+([a-zà-ÿ]+(?:\s[a-zà-ÿ]+)?)`),
	regexp.MustCompile(`headquarters\s+in\s+([a-zà-ÿ]+(?:\s[a-zà-ÿ]+)?)`),
	regexp.MustCompile(`based\s+in\s+([a-zà-ÿ]+(?:\s[a-zà-ÿ]+)?)`),
	regexp.MustCompile(`siège\s+(?:social\s+)?à\s+([a-zà-ÿ]+(?:\s[a-zà-ÿ]+)?)`),
	regexp.MustCompile(`offices\s+in\s+([a-zà-ÿ]+(?:\s[a-zà-ÿ]+)?)`),
}

// leadershipPatterns capture a two-token capitalized name for a role.
// These run against the original-case text; at most one name per role.
var leadershipPatterns = []struct {
	role string
	res  []*regexp.Regexp
}{
	{role: "CEO", res: []*regexp.Regexp{
		regexp.MustCompile(`(?:CEO|[Cc]hief [Ee]xecutive [Oo]fficer|PDG|[Pp]résident-directeur général)[,:\s]+(?:is\s+|est\s+)?([A-ZÀ-Þ][a-zà-ÿ]+\s[A-ZÀ-Þ][a-zà-ÿ]+)`),
		regexp.MustCompile(`([A-ZÀ-Þ][a-zà-ÿ]+\s[A-ZÀ-Þ][a-zà-ÿ]+),?\s+(?:CEO|PDG)`),
	}},
	{role: "CTO", res: []*regexp.Regexp{
		regexp.MustCompile(`(?:CTO|[Cc]hief [Tt]echnology [Oo]fficer|[Dd]irecteur technique)[,:\s]+(?:is\s+|est\s+)?([A-ZÀ-Þ][a-zà-ÿ]+\s[A-ZÀ-Þ][a-zà-ÿ]+)`),
		regexp.MustCompile(`([A-ZÀ-Þ][a-zà-ÿ]+\s[A-ZÀ-Þ][a-zà-ÿ]+),?\s+CTO`),
	}},
	{role: "CFO", res: []*regexp.Regexp{
		regexp.MustCompile(`(?:CFO|[Cc]hief [Ff]inancial [Oo]fficer|[Dd]irecteur financier)[,:\s]+(?:is\s+|est\s+)?([A-ZÀ-Þ][a-zà-ÿ]+\s[A-ZÀ-Þ][a-zà-ÿ]+)`),
		regexp.MustCompile(`([A-ZÀ-Þ][a-zà-ÿ]+\s[A-ZÀ-Þ][a-zà-ÿ]+),?\s+CFO`),
	}},
	{role: "Chairman", res: []*regexp.Regexp{
		regexp.MustCompile(`(?:[Cc]hairman|[Pp]résident du conseil)[,:\s]+(?:is\s+|est\s+)?([A-ZÀ-Þ][a-zà-ÿ]+\s[A-ZÀ-Þ][a-zà-ÿ]+)`),
	}},
}

// publicKeywords flag a listed company.
var publicKeywords = []string{
	"publicly traded", "public company", "stock exchange", "listed on",
	"euronext", "nasdaq", "nyse", "ftse", "dax", "cac 40",
	"cotée en bourse", "introduction en bourse", "ipo",
}

var fundingPattern = regexp.MustCompile(`raised\s+[€$£]?\d[\d,.]*\s*(?:million|billion|m|k)?(?:\s+in\s+(?:series\s+[a-e]|seed|funding))?`)

// competitorsPattern captures an enumerated competitor list; entries are
// split on commas and conjunctions.
var competitorsPattern = regexp.MustCompile(`[Cc]ompetitors?\s+(?:include|such as|like|are)\s+([^.;!?]+)`)

var competitorSplitPattern = regexp.MustCompile(`\s*(?:,|\band\b|\bet\b|&)\s*`)

const maxCompetitorsMentioned = 10

// ExtractCompetitors collects competitor names enumerated in the text,
// excluding the company itself, deduplicated case-insensitively in order
// of first mention.
func ExtractCompetitors(text, companyName string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, m := range competitorsPattern.FindAllStringSubmatch(text, -1) {
		for _, part := range competitorSplitPattern.Split(m[1], -1) {
			name := strings.TrimSpace(part)
			if len(name) < 3 || len(name) > 100 || strings.EqualFold(name, companyName) {
				continue
			}
			key := strings.ToLower(name)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, name)
			if len(out) >= maxCompetitorsMentioned {
				return out
			}
		}
	}
	return out
}

// ExtractEmployees returns the first plausible employee count in text, or
// nil when no pattern yields one. Text is expected lowercased.
func ExtractEmployees(text string) *int {
	for _, p := range employeePatterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		n, ok := parseThousands(m[1])
		if !ok {
			continue
		}
		val := int(n * p.multiplier)
		if val >= minEmployees && val <= maxEmployees {
			return &val
		}
	}
	return nil
}

// ExtractRevenueMillions returns the first plausible revenue figure in
// millions of euros, or nil.
func ExtractRevenueMillions(text string) *float64 {
	for _, p := range revenuePatterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		n, ok := parseDecimal(m[1])
		if !ok {
			continue
		}
		val := n * p.multiplier
		if val >= minRevenueMillions && val <= maxRevenueMillions {
			return &val
		}
	}
	return nil
}

// ExtractFoundingYear returns the earliest plausible year mentioned as a
// founding date, or nil.
func ExtractFoundingYear(text string) *int {
	currentYear := time.Now().Year()
	earliest := 0
	for _, re := range foundingYearPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			y, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			if y < 1800 || y > currentYear {
				continue
			}
			if earliest == 0 || y < earliest {
				earliest = y
			}
		}
	}
	if earliest == 0 {
		return nil
	}
	return &earliest
}

// ExtractHeadquarters returns the canonical city name when an extracted
// token is on the allow-list, else the empty string.
func ExtractHeadquarters(text string) string {
	for _, re := range headquartersPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			token := strings.TrimSpace(m[1])
			if city, ok := knownCities[token]; ok {
				return city
			}
			// A two-word capture may shadow a known one-word city
			// ("based in paris region" captures "paris region").
			if i := strings.IndexByte(token, ' '); i > 0 {
				if city, ok := knownCities[token[:i]]; ok {
					return city
				}
			}
		}
	}
	return ""
}

// parseThousands parses a number that may use comma or space thousands
// separators.
func parseThousands(s string) (float64, bool) {
	clean := strings.NewReplacer(",", "", " ", "", " ", "").Replace(strings.TrimSpace(s))
	n, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseDecimal parses a number using either "." or "," as the decimal
// separator.
func parseDecimal(s string) (float64, bool) {
	clean := strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	n, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
