package service

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/comparables-api/internal/extract"
	"github.com/sells-group/comparables-api/internal/scoring"
	"github.com/sells-group/comparables-api/pkg/searx"
)

type stubClient struct {
	mu       sync.Mutex
	results  []searx.Result
	failWhen string
	failAll  bool
	calls    int
}

func (s *stubClient) Search(_ context.Context, query string, _ searx.SearchOptions, _ *searx.FocusMode) (*searx.Response, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()

	if s.failAll || (s.failWhen != "" && strings.Contains(strings.ToLower(query), s.failWhen)) {
		return nil, eris.New("searx: backend exploded")
	}
	return &searx.Response{
		Query:        query,
		TotalResults: len(s.results),
		Success:      true,
		Results:      s.results,
	}, nil
}

func (s *stubClient) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func acmeResults() []searx.Result {
	return []searx.Result{
		{
			Title:   "Acme Software SAS - Company Profile",
			Content: "Acme Software SAS is a software company headquartered in Paris with 1,200 employees and revenue of €150 million. Founded in 1995.",
			Engine:  "google",
		},
		{
			Title:   "Acme Software SAS leadership",
			Content: "CEO Marie Dupont leads Acme Software SAS, a leading French technology company.",
			Engine:  "bing",
		},
	}
}

func newTestService(client searx.Client, opts ...ServiceOption) *Service {
	return New(client, extract.NewExtractor(), scoring.NewEngine(scoring.DefaultConfig()), opts...)
}

func TestLookupBuildsEnrichedProfile(t *testing.T) {
	client := &stubClient{results: acmeResults()}
	svc := newTestService(client)

	got, err := svc.Lookup(context.Background(), "Acme Software SAS", LookupOptions{})
	require.NoError(t, err)
	require.NotNil(t, got.Company)

	assert.Equal(t, "Acme Software SAS", got.Company.Name)
	assert.Equal(t, "Technology", got.Company.Sector)
	assert.Equal(t, "France", got.Company.Country)
	require.NotNil(t, got.Company.Employees)
	assert.Equal(t, 1200, *got.Company.Employees)

	// Enrichment blocks are attached.
	assert.NotNil(t, got.Company.FinancialMetrics)
	assert.NotNil(t, got.Company.RiskProfile)
	assert.NotNil(t, got.Company.Valuation)
	assert.NotNil(t, got.Company.BenchmarkScores)

	// Envelopes.
	assert.NotEmpty(t, got.Metadata.RequestID)
	assert.Equal(t, "lookup", got.Metadata.Endpoint)
	assert.Equal(t, 1, got.Metadata.SearchQueries)
	assert.Greater(t, got.DataQuality.Completeness, 50.0)
	assert.ElementsMatch(t, []string{"google", "bing"}, got.DataQuality.Sources)
}

func TestLookupDetailedFansOut(t *testing.T) {
	client := &stubClient{results: acmeResults()}
	svc := newTestService(client)

	got, err := svc.Lookup(context.Background(), "Acme Software SAS", LookupOptions{Detailed: true})
	require.NoError(t, err)
	assert.Equal(t, 4, got.Metadata.SearchQueries)
	assert.Equal(t, 4, client.callCount())
}

func TestLookupDetailedToleratesSupplementaryFailure(t *testing.T) {
	client := &stubClient{results: acmeResults(), failWhen: "leadership"}
	svc := newTestService(client)

	got, err := svc.Lookup(context.Background(), "Acme Software SAS", LookupOptions{Detailed: true})
	require.NoError(t, err)
	assert.NotNil(t, got.Company)
}

func TestLookupRejectsSuspiciousNameBeforeSearch(t *testing.T) {
	tests := []string{"Test Company", "demo corp", "My DEMO business", "Sample Inc"}

	for _, name := range tests {
		t.Run(name, func(t *testing.T) {
			client := &stubClient{results: acmeResults()}
			svc := newTestService(client)

			_, err := svc.Lookup(context.Background(), name, LookupOptions{})
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrSuspiciousName)
			assert.Zero(t, client.callCount())
		})
	}
}

func TestSuspiciousNameMatchesWholeWordsOnly(t *testing.T) {
	assert.False(t, suspiciousName("Protest Brewing"))
	assert.False(t, suspiciousName("Demolition Services Ltd"))
	assert.True(t, suspiciousName("test"))
	assert.True(t, suspiciousName("Acme (demo)"))
}

func TestLookupNoResultsIsNoDataError(t *testing.T) {
	client := &stubClient{}
	svc := newTestService(client)

	_, err := svc.Lookup(context.Background(), "Obscure Holdings", LookupOptions{})
	require.Error(t, err)

	var noData *NoDataError
	require.ErrorAs(t, err, &noData)
	assert.Equal(t, "Obscure Holdings", noData.Name)
	assert.NotEmpty(t, noData.Suggestions)
}

func TestLookupBelowConfidenceIsNoDataError(t *testing.T) {
	client := &stubClient{results: acmeResults()}
	svc := newTestService(client, WithMinConfidence(0.95))

	_, err := svc.Lookup(context.Background(), "Acme Software SAS", LookupOptions{})
	var noData *NoDataError
	require.ErrorAs(t, err, &noData)
}

func TestLookupPrimaryFailurePropagates(t *testing.T) {
	client := &stubClient{failAll: true}
	svc := newTestService(client)

	_, err := svc.Lookup(context.Background(), "Acme Software SAS", LookupOptions{})
	require.Error(t, err)

	var noData *NoDataError
	assert.False(t, eris.As(err, &noData))
}

func TestComparablesIncludesCandidates(t *testing.T) {
	results := acmeResults()
	results = append(results, searx.Result{
		Content: "Competitors include Globex Informatique and Initech SAS, both French software companies.",
		Engine:  "google",
	})
	client := &stubClient{results: results}
	svc := newTestService(client)

	got, err := svc.Comparables(context.Background(), "Acme Software SAS", ComparablesOptions{MaxResults: 10})
	require.NoError(t, err)
	assert.NotEmpty(t, got.Comparables)
	assert.Equal(t, "comparables", got.Metadata.Endpoint)
	assert.Greater(t, got.Metadata.SearchQueries, 1)
}

func TestAnalyzeProducesAnalysis(t *testing.T) {
	results := acmeResults()
	results = append(results, searx.Result{
		Content: "Competitors include Globex Informatique and Initech SAS.",
		Engine:  "google",
	})
	client := &stubClient{results: results}
	svc := newTestService(client)

	got, err := svc.Analyze(context.Background(), "Acme Software SAS", AnalyzeOptions{
		IncludeComparables: true,
		MaxComparables:     5,
	})
	require.NoError(t, err)
	require.NotNil(t, got.Analysis)
	assert.NotEmpty(t, got.Comparables)
	assert.Equal(t, len(got.Comparables)+1, got.Analysis.Summary.Companies)
}

func TestAnalyzeWithoutComparables(t *testing.T) {
	client := &stubClient{results: acmeResults()}
	svc := newTestService(client)

	got, err := svc.Analyze(context.Background(), "Acme Software SAS", AnalyzeOptions{})
	require.NoError(t, err)
	assert.Empty(t, got.Comparables)
	require.NotNil(t, got.Analysis)
	assert.Equal(t, 1, got.Analysis.Summary.Companies)
}

func TestCountersTrackEndpoints(t *testing.T) {
	client := &stubClient{results: acmeResults()}
	svc := newTestService(client)

	_, err := svc.Lookup(context.Background(), "Acme Software SAS", LookupOptions{})
	require.NoError(t, err)
	_, err = svc.Lookup(context.Background(), "test", LookupOptions{})
	require.Error(t, err)

	requests, failures := svc.Counters().Snapshot()
	assert.Equal(t, int64(2), requests["lookup"])
	assert.Equal(t, int64(1), failures["lookup"])
}
