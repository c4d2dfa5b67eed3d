// Package geo infers a company's likely home market from its name, used
// only to steer search query language and phrasing.
package geo

import (
	"strings"

	"github.com/sells-group/comparables-api/internal/model"
)

// rule maps name substrings to a geography context. Rules are evaluated
// in order and the first match wins, so specific legal-entity suffixes
// must come before loose English-language substrings.
type rule struct {
	markers []string
	ctx     model.GeographyContext
}

var rules = []rule{
	{
		markers: []string{" sa", " sas", " sarl", " eurl", "société", "groupe ", ".fr"},
		ctx: model.GeographyContext{
			Country:         "France",
			Region:          "Europe",
			CompanyTerm:     "entreprise",
			FinancialTerm:   "chiffre d'affaires",
			Language:        "French",
			DefaultLangCode: "fr",
		},
	},
	{
		markers: []string{" gmbh", " ag ", ".de"},
		ctx: model.GeographyContext{
			Country:         "Germany",
			Region:          "Europe",
			CompanyTerm:     "unternehmen",
			FinancialTerm:   "umsatz",
			Language:        "German",
			DefaultLangCode: "de",
		},
	},
	{
		markers: []string{" ltd", " plc", "limited", ".co.uk"},
		ctx: model.GeographyContext{
			Country:         "United Kingdom",
			Region:          "Europe",
			CompanyTerm:     "company",
			FinancialTerm:   "revenue",
			Language:        "English",
			DefaultLangCode: "en",
		},
	},
	{
		markers: []string{" inc", " corp", " llc", ".com"},
		ctx: model.GeographyContext{
			Country:         "United States",
			Region:          "North America",
			CompanyTerm:     "company",
			FinancialTerm:   "revenue",
			Language:        "English",
			DefaultLangCode: "en",
		},
	},
}

// fallback is used when no marker matches.
var fallback = model.GeographyContext{
	Country:         "International",
	Region:          "Global",
	CompanyTerm:     "company",
	FinancialTerm:   "revenue",
	Language:        "English",
	DefaultLangCode: "en",
}

// Detect returns the geography context for a company name. Pure, no I/O.
func Detect(companyName string) model.GeographyContext {
	name := strings.ToLower(strings.TrimSpace(companyName))
	// Pad so suffix markers like " sa" match names ending with them.
	padded := name + " "

	for _, r := range rules {
		for _, m := range r.markers {
			if strings.Contains(padded, m) {
				return r.ctx
			}
		}
	}
	return fallback
}

// Fallback returns the generic international context.
func Fallback() model.GeographyContext {
	return fallback
}
