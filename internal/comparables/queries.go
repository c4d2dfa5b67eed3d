package comparables

import (
	"fmt"
	"strings"

	"github.com/sells-group/comparables-api/internal/model"
)

// buildQueries produces the targeted discovery queries for a reference
// profile. Each template hits a different angle on the same market so a
// single dead query does not starve the candidate pool.
func buildQueries(ref *model.CompanyProfile, geo model.GeographyContext) []string {
	sector := ref.Sector
	if sector == "" {
		sector = "business"
	}

	queries := []string{
		fmt.Sprintf("competitors of %s", ref.Name),
		fmt.Sprintf("%s similar companies %s", ref.Name, sector),
	}

	if ref.Country != "" {
		queries = append(queries,
			fmt.Sprintf("leading %s companies in %s", sector, ref.Country),
			fmt.Sprintf("top %s %s %s", sector, pluralize(geo.CompanyTerm), ref.Country),
		)
	} else {
		queries = append(queries, fmt.Sprintf("leading %s companies", sector))
	}

	if ref.SizeCategory != "" {
		queries = append(queries, fmt.Sprintf("%s %s companies market", ref.SizeCategory, sector))
	}

	return queries
}

func pluralize(term string) string {
	if term == "" {
		return "companies"
	}
	if strings.HasSuffix(term, "y") {
		return strings.TrimSuffix(term, "y") + "ies"
	}
	return term + "s"
}
