package extract

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// KeywordGroup associates a label with the keywords that vote for it.
// Declaration order matters: ties in hit counts are broken by position.
type KeywordGroup struct {
	Label    string   `yaml:"label"`
	Keywords []string `yaml:"keywords"`
}

// sectorTaxonomy drives sector classification. Keyword lists are matched
// case-insensitively against the aggregated search text.
var sectorTaxonomy = []KeywordGroup{
	{Label: "Technology", Keywords: []string{
		"software", "technology", "tech ", "digital", "saas", "cloud",
		"platform", "application", "informatique", "logiciel", "numérique",
		"it services", "artificial intelligence", "data",
	}},
	{Label: "Finance", Keywords: []string{
		"bank", "banking", "insurance", "financial services", "asset management",
		"investment", "fintech", "banque", "assurance", "crédit", "capital",
	}},
	{Label: "Healthcare", Keywords: []string{
		"health", "medical", "pharma", "pharmaceutical", "biotech", "clinical",
		"hospital", "santé", "médical", "laboratoire",
	}},
	{Label: "Manufacturing", Keywords: []string{
		"manufacturing", "factory", "industrial", "production", "assembly",
		"automotive", "aerospace", "usine", "industrie", "fabrication",
	}},
	{Label: "Retail", Keywords: []string{
		"retail", "e-commerce", "ecommerce", "store", "consumer goods",
		"distribution", "commerce", "magasin", "vente au détail",
	}},
	{Label: "Energy", Keywords: []string{
		"energy", "oil", "gas", "renewable", "solar", "wind power",
		"electricity", "énergie", "pétrole", "électricité",
	}},
	{Label: "Consulting", Keywords: []string{
		"consulting", "advisory", "professional services", "audit",
		"conseil", "expertise", "accompagnement",
	}},
	{Label: "Telecommunications", Keywords: []string{
		"telecom", "telecommunications", "mobile network", "broadband",
		"operator", "télécom", "opérateur",
	}},
	{Label: "Construction", Keywords: []string{
		"construction", "building", "real estate", "infrastructure",
		"immobilier", "bâtiment", "travaux",
	}},
	{Label: "Transportation", Keywords: []string{
		"logistics", "transport", "shipping", "freight", "airline",
		"logistique", "transporteur",
	}},
}

// industryKeywords refine the sector into a narrower industry label.
var industryKeywords = []KeywordGroup{
	{Label: "Software", Keywords: []string{"software", "saas", "logiciel"}},
	{Label: "Cloud Services", Keywords: []string{"cloud", "hosting", "infrastructure as a service"}},
	{Label: "Banking", Keywords: []string{"bank", "banque"}},
	{Label: "Insurance", Keywords: []string{"insurance", "assurance"}},
	{Label: "Pharmaceuticals", Keywords: []string{"pharma", "pharmaceutical"}},
	{Label: "Automotive", Keywords: []string{"automotive", "automobile"}},
	{Label: "Aerospace", Keywords: []string{"aerospace", "aéronautique"}},
	{Label: "E-commerce", Keywords: []string{"e-commerce", "ecommerce", "marketplace"}},
	{Label: "Renewable Energy", Keywords: []string{"renewable", "solar", "wind power"}},
	{Label: "Management Consulting", Keywords: []string{"consulting", "conseil", "advisory"}},
}

// activityKeywords feed the main-activities set.
var activityKeywords = []KeywordGroup{
	{Label: "software development", Keywords: []string{"software development", "développement logiciel", "application development"}},
	{Label: "consulting services", Keywords: []string{"consulting", "conseil", "advisory"}},
	{Label: "cloud services", Keywords: []string{"cloud", "hosting"}},
	{Label: "data analytics", Keywords: []string{"analytics", "data analysis", "big data"}},
	{Label: "cybersecurity", Keywords: []string{"cybersecurity", "cybersécurité", "security services"}},
	{Label: "manufacturing", Keywords: []string{"manufacturing", "production", "fabrication"}},
	{Label: "distribution", Keywords: []string{"distribution", "wholesale", "logistics"}},
	{Label: "research and development", Keywords: []string{"r&d", "research and development", "innovation"}},
	{Label: "training", Keywords: []string{"training", "formation", "education services"}},
	{Label: "maintenance and support", Keywords: []string{"maintenance", "support services", "managed services"}},
}

// knownCities is the allow-list used to validate extracted headquarters
// tokens. An extracted token outside this list is discarded; precision is
// preferred over recall here.
var knownCities = map[string]string{
	"paris":         "Paris",
	"lyon":          "Lyon",
	"marseille":     "Marseille",
	"toulouse":      "Toulouse",
	"bordeaux":      "Bordeaux",
	"nantes":        "Nantes",
	"lille":         "Lille",
	"strasbourg":    "Strasbourg",
	"grenoble":      "Grenoble",
	"nice":          "Nice",
	"london":        "London",
	"manchester":    "Manchester",
	"dublin":        "Dublin",
	"berlin":        "Berlin",
	"munich":        "Munich",
	"hamburg":       "Hamburg",
	"frankfurt":     "Frankfurt",
	"amsterdam":     "Amsterdam",
	"brussels":      "Brussels",
	"madrid":        "Madrid",
	"barcelona":     "Barcelona",
	"milan":         "Milan",
	"zurich":        "Zurich",
	"geneva":        "Geneva",
	"new york":      "New York",
	"boston":        "Boston",
	"chicago":       "Chicago",
	"austin":        "Austin",
	"seattle":       "Seattle",
	"toronto":       "Toronto",
	"singapore":     "Singapore",
	"tokyo":         "Tokyo",
	"sydney":        "Sydney",
	"san francisco": "San Francisco",
}

// bestKeywordGroup returns the label of the group with the most keyword
// hits in text. Ties are broken by declaration order; zero hits returns
// the empty string.
func bestKeywordGroup(text string, groups []KeywordGroup) string {
	best := ""
	bestHits := 0
	for _, g := range groups {
		hits := 0
		for _, kw := range g.Keywords {
			if strings.Contains(text, kw) {
				hits++
			}
		}
		if hits > bestHits {
			best = g.Label
			bestHits = hits
		}
	}
	return best
}

// matchingGroups returns every group label with at least one keyword hit,
// in declaration order, capped at limit.
func matchingGroups(text string, groups []KeywordGroup, limit int) []string {
	var out []string
	for _, g := range groups {
		for _, kw := range g.Keywords {
			if strings.Contains(text, kw) {
				out = append(out, g.Label)
				break
			}
		}
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

// taxonomyFile is the YAML shape of an external taxonomy override.
type taxonomyFile struct {
	Sectors []KeywordGroup `yaml:"sectors"`
}

// LoadTaxonomy reads a sector taxonomy override from a YAML file. Used to
// re-point the classifier at a different market without a rebuild.
func LoadTaxonomy(path string) ([]KeywordGroup, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "extract: read taxonomy %s", path)
	}
	var tf taxonomyFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return nil, eris.Wrapf(err, "extract: parse taxonomy %s", path)
	}
	if len(tf.Sectors) == 0 {
		return nil, eris.Errorf("extract: taxonomy %s defines no sectors", path)
	}
	return tf.Sectors, nil
}
