package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/comparables-api/internal/model"
)

func intp(v int) *int           { return &v }
func floatp(v float64) *float64 { return &v }

func profile(name string, employees int, revenue, health float64) model.CompanyProfile {
	return model.CompanyProfile{
		Name:            name,
		Sector:          "Technology",
		Employees:       intp(employees),
		RevenueMillions: floatp(revenue),
		FinancialMetrics: &model.ScoredMetrics{
			OverallHealthScore: health,
		},
	}
}

func TestAnalyzeRankingsDescending(t *testing.T) {
	main := profile("Acme", 500, 80, 70)
	peers := []model.ComparableCandidate{
		{CompanyProfile: profile("Globex", 1200, 40, 55), SimilarityScore: 75},
		{CompanyProfile: profile("Initech", 90, 120, 85), SimilarityScore: 80},
	}

	got := NewAnalyzer().Analyze(&main, peers)

	require.Len(t, got.ByEmployees, 3)
	assert.Equal(t, "Globex", got.ByEmployees[0].Name)
	assert.Equal(t, 1, got.ByEmployees[0].Rank)
	assert.Equal(t, "Acme", got.ByEmployees[1].Name)
	assert.Equal(t, "Initech", got.ByEmployees[2].Name)
	assert.Equal(t, 3, got.ByEmployees[2].Rank)

	require.Len(t, got.ByRevenue, 3)
	assert.Equal(t, "Initech", got.ByRevenue[0].Name)

	require.Len(t, got.ByHealthScore, 3)
	assert.Equal(t, "Initech", got.ByHealthScore[0].Name)
}

func TestAnalyzeAveragesSkipMissingValues(t *testing.T) {
	main := profile("Acme", 100, 50, 60)
	peers := []model.ComparableCandidate{
		{CompanyProfile: model.CompanyProfile{Name: "Mystery Co", Sector: "Finance"}},
	}

	got := NewAnalyzer().Analyze(&main, peers)

	assert.Equal(t, 2, got.Summary.Companies)
	require.NotNil(t, got.Summary.AvgEmployees)
	assert.InDelta(t, 100, *got.Summary.AvgEmployees, 0.001)
	require.NotNil(t, got.Summary.AvgRevenueMillions)
	assert.InDelta(t, 50, *got.Summary.AvgRevenueMillions, 0.001)
	assert.ElementsMatch(t, []string{"Technology", "Finance"}, got.Summary.Sectors)

	// Mystery Co has no rankable values.
	assert.Len(t, got.ByEmployees, 1)
	assert.Len(t, got.ByRevenue, 1)
}

func TestAnalyzeInsightsWhenMainTops(t *testing.T) {
	main := profile("Acme", 5000, 900, 95)
	peers := []model.ComparableCandidate{
		{CompanyProfile: profile("Globex", 100, 20, 40), SimilarityScore: 75},
	}

	got := NewAnalyzer().Analyze(&main, peers)

	joined := ""
	for _, in := range got.Insights {
		joined += in + "\n"
	}
	assert.Contains(t, joined, "largest workforce")
	assert.Contains(t, joined, "revenue")
	assert.Contains(t, joined, "financial health")
	assert.Contains(t, joined, "same sector")
}

func TestAnalyzeNoInsightsWithoutPeers(t *testing.T) {
	main := profile("Acme", 100, 50, 60)

	got := NewAnalyzer().Analyze(&main, nil)

	assert.Empty(t, got.Insights)
	require.NotEmpty(t, got.Recommendations)
	assert.Contains(t, got.Recommendations[0], "No comparables found")
}

func TestAnalyzeRecommendationsBySimilarityStrength(t *testing.T) {
	main := profile("Acme", 100, 50, 60)

	strongPeers := []model.ComparableCandidate{
		{CompanyProfile: profile("A", 1, 1, 1), SimilarityScore: 80},
		{CompanyProfile: profile("B", 1, 1, 1), SimilarityScore: 75},
		{CompanyProfile: profile("C", 1, 1, 1), SimilarityScore: 90},
	}
	got := NewAnalyzer().Analyze(&main, strongPeers)
	require.NotEmpty(t, got.Recommendations)
	assert.Contains(t, got.Recommendations[0], "close comparables support")

	weakPeers := []model.ComparableCandidate{
		{CompanyProfile: profile("A", 1, 1, 1), SimilarityScore: 45},
	}
	got = NewAnalyzer().Analyze(&main, weakPeers)
	require.NotEmpty(t, got.Recommendations)
	assert.Contains(t, got.Recommendations[0], "too low for reliable benchmarking")
}

func TestAnalyzeDoesNotMutateInputs(t *testing.T) {
	main := profile("Acme", 100, 50, 60)
	peers := []model.ComparableCandidate{
		{CompanyProfile: profile("Globex", 200, 30, 40), SimilarityScore: 60},
	}
	before := *peers[0].Employees

	NewAnalyzer().Analyze(&main, peers)

	assert.Equal(t, before, *peers[0].Employees)
	assert.Equal(t, "Acme", main.Name)
}
