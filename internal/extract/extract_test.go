package extract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/comparables-api/pkg/searx"
)

func resultsFrom(snippets ...string) []searx.Result {
	out := make([]searx.Result, 0, len(snippets))
	for _, s := range snippets {
		out = append(out, searx.Result{Title: "Result", URL: "https://example.com", Content: s})
	}
	return out
}

func TestExtractFullProfile(t *testing.T) {
	e := NewExtractor()

	results := []searx.Result{
		{
			Title:   "Acme Software SAS - Company Profile",
			URL:     "https://acme.fr/about",
			Content: "Acme Software is a leading provider of SaaS cloud software, founded in 1995 and headquartered in Paris. The company employs 1,200 employees.",
		},
		{
			Title:   "Acme revenue",
			URL:     "https://news.example.com",
			Content: "Acme reported revenue of €150 million. CEO Marie Dupont announced the figures. The company is listed on Euronext.",
		},
	}

	p := e.Extract("Acme Software SAS", results)

	assert.Equal(t, "Acme Software SAS", p.Name)
	assert.Equal(t, "web_search", p.Source)
	assert.Equal(t, "Technology", p.Sector)
	assert.Equal(t, "France", p.Country)
	assert.Equal(t, "Europe", p.Region)

	require.NotNil(t, p.Employees)
	assert.Equal(t, 1200, *p.Employees)
	assert.Equal(t, "enterprise", p.EmployeeCategory)
	assert.Equal(t, "enterprise", p.SizeCategory)

	require.NotNil(t, p.RevenueMillions)
	assert.InDelta(t, 150, *p.RevenueMillions, 0.001)
	assert.Equal(t, "€150M", p.Revenue)
	assert.Equal(t, "large", p.RevenueCategory)

	require.NotNil(t, p.FoundingYear)
	assert.Equal(t, 1995, *p.FoundingYear)
	assert.Equal(t, "Paris", p.Headquarters)

	require.NotEmpty(t, p.Leadership)
	assert.Equal(t, "CEO", p.Leadership[0].Role)
	assert.Equal(t, "Marie Dupont", p.Leadership[0].Name)

	assert.True(t, p.IsPublic)
	assert.Equal(t, "listed", p.ListingStatus)
	assert.Equal(t, "leader", p.MarketPosition)
	assert.Equal(t, "https://acme.fr", p.Website)
	assert.NotEmpty(t, p.Description)
	assert.NotEmpty(t, p.KeyPoints)

	// Two results: low evidence volume.
	assert.InDelta(t, 0.6, p.Confidence, 0.001)
}

func TestExtractFillsCompetitorsMentioned(t *testing.T) {
	e := NewExtractor()

	p := e.Extract("Acme Software", resultsFrom(
		"Acme Software is a cloud software vendor. Competitors include Globex Corp, Initech and Umbrella SA.",
	))

	assert.Equal(t, []string{"Globex Corp", "Initech", "Umbrella SA"}, p.CompetitorsMentioned)

	// No enumeration, no field.
	assert.Empty(t, e.Extract("Acme Software", resultsFrom("a software company")).CompetitorsMentioned)
}

func TestExtractDescriptionTruncatesOnRuneBoundary(t *testing.T) {
	e := NewExtractor()

	p := e.Extract("Acme", resultsFrom(strings.Repeat("é", 350)))

	assert.True(t, utf8.ValidString(p.Description))
	assert.True(t, strings.HasSuffix(p.Description, "..."))
	assert.Equal(t, 303, utf8.RuneCountInString(p.Description))
}

func TestExtractConfidenceThresholds(t *testing.T) {
	e := NewExtractor()

	few := resultsFrom("a", "b", "c")
	many := resultsFrom("a", "b", "c", "d", "e", "f", "g")

	assert.InDelta(t, 0.6, e.Extract("Acme", few).Confidence, 0.001)
	assert.InDelta(t, 0.8, e.Extract("Acme", many).Confidence, 0.001)

	// The detailed variant uses the 10-result bar.
	assert.InDelta(t, 0.7, e.ExtractDetailed("Acme", many).Confidence, 0.001)
	lots := resultsFrom("a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k")
	assert.InDelta(t, 0.9, e.ExtractDetailed("Acme", lots).Confidence, 0.001)

	assert.Zero(t, e.Extract("Acme", nil).Confidence)
}

func TestExtractFallbacks(t *testing.T) {
	e := NewExtractor()
	p := e.Extract("Zzyzx", resultsFrom("nothing recognizable here"))

	// No sector keywords matched: the configurable fallback applies.
	assert.Equal(t, "Technology", p.Sector)
	assert.Equal(t, "International", p.Country)
	assert.Equal(t, "Global", p.Region)
	assert.Nil(t, p.Employees)
	assert.Nil(t, p.RevenueMillions)
	assert.Nil(t, p.FoundingYear)
	assert.Empty(t, p.Headquarters)

	custom := NewExtractor(WithFallbackSector("Services"))
	assert.Equal(t, "Services", custom.Extract("Zzyzx", resultsFrom("x")).Sector)
}

func TestExtractSectorVoting(t *testing.T) {
	e := NewExtractor()

	p := e.Extract("Banque Acme", resultsFrom(
		"a leading bank offering insurance and investment products, with some software tools",
	))
	assert.Equal(t, "Finance", p.Sector, "two finance hits beat one technology hit")
}

func TestLoadTaxonomy(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "taxonomy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
sectors:
  - label: Agriculture
    keywords: [farming, crops]
  - label: Mining
    keywords: [mining, ore]
`), 0o600))

	groups, err := LoadTaxonomy(path)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "Agriculture", groups[0].Label)

	e := NewExtractor(WithSectorTaxonomy(groups), WithFallbackSector("Other"))
	assert.Equal(t, "Mining", e.Extract("Acme", resultsFrom("an ore mining operation")).Sector)
	assert.Equal(t, "Other", e.Extract("Acme", resultsFrom("a software company")).Sector)

	_, err = LoadTaxonomy(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
