// Package service orchestrates the research pipeline behind the HTTP
// and CLI surfaces: search, profile extraction, comparable discovery,
// scoring, and comparative analysis, with the response envelopes the
// thin layers serialize.
package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/comparables-api/internal/analysis"
	"github.com/sells-group/comparables-api/internal/comparables"
	"github.com/sells-group/comparables-api/internal/extract"
	"github.com/sells-group/comparables-api/internal/geo"
	"github.com/sells-group/comparables-api/internal/model"
	"github.com/sells-group/comparables-api/internal/scoring"
	"github.com/sells-group/comparables-api/pkg/searx"
)

const defaultMinConfidence = 0.1

// Service is the long-lived orchestrator. Safe for concurrent use.
type Service struct {
	searcher      searx.Client
	extractor     *extract.Extractor
	engine        *scoring.Engine
	finder        *comparables.Finder
	analyzer      *analysis.Analyzer
	counters      *Counters
	minConfidence float64
}

// ServiceOption tunes a Service.
type ServiceOption func(*Service)

// WithMinConfidence sets the confidence floor below which a lookup is
// reported as "no data" rather than returned.
func WithMinConfidence(min float64) ServiceOption {
	return func(s *Service) { s.minConfidence = min }
}

// New wires a Service from its collaborators.
func New(searcher searx.Client, extractor *extract.Extractor, engine *scoring.Engine, opts ...ServiceOption) *Service {
	s := &Service{
		searcher:      searcher,
		extractor:     extractor,
		engine:        engine,
		finder:        comparables.NewFinder(searcher, extractor, engine),
		analyzer:      analysis.NewAnalyzer(),
		counters:      NewCounters(),
		minConfidence: defaultMinConfidence,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Counters exposes the per-endpoint request counters for the stats
// surface.
func (s *Service) Counters() *Counters {
	return s.counters
}

// LookupOptions tunes a profile lookup.
type LookupOptions struct {
	Detailed bool
}

// ComparablesOptions tunes comparable discovery.
type ComparablesOptions struct {
	MaxResults        int
	MinSimilarity     int
	PreferSameCountry bool
}

// AnalyzeOptions tunes a full comparative analysis.
type AnalyzeOptions struct {
	IncludeComparables bool
	MaxComparables     int
	MinSimilarity      int
	PreferSameCountry  bool
}

// LookupResult is the response of a profile lookup.
type LookupResult struct {
	Company     *model.CompanyProfile `json:"company"`
	DataQuality model.DataQuality     `json:"data_quality"`
	Metadata    model.Metadata        `json:"metadata"`
}

// ComparablesResult is the response of comparable discovery.
type ComparablesResult struct {
	Company     *model.CompanyProfile       `json:"company"`
	Comparables []model.ComparableCandidate `json:"comparables"`
	DataQuality model.DataQuality           `json:"data_quality"`
	Metadata    model.Metadata              `json:"metadata"`
}

// AnalyzeResult is the response of a full comparative analysis.
type AnalyzeResult struct {
	Company     *model.CompanyProfile       `json:"company"`
	Comparables []model.ComparableCandidate `json:"comparables,omitempty"`
	Analysis    *model.ComparativeAnalysis  `json:"analysis"`
	DataQuality model.DataQuality           `json:"data_quality"`
	Metadata    model.Metadata              `json:"metadata"`
}

// Lookup searches for a company and extracts its profile, enriched with
// the derived scoring blocks.
func (s *Service) Lookup(ctx context.Context, name string, opts LookupOptions) (res *LookupResult, err error) {
	started := time.Now()
	defer func() { s.counters.record("lookup", err != nil) }()

	profile, sources, queries, err := s.lookupProfile(ctx, name, opts.Detailed)
	if err != nil {
		return nil, err
	}

	return &LookupResult{
		Company:     profile,
		DataQuality: dataQuality(profile, sources),
		Metadata:    metadata("lookup", started, queries),
	}, nil
}

// Comparables looks up the reference company and discovers scored
// comparables for it.
func (s *Service) Comparables(ctx context.Context, name string, opts ComparablesOptions) (res *ComparablesResult, err error) {
	started := time.Now()
	defer func() { s.counters.record("comparables", err != nil) }()

	profile, sources, queries, err := s.lookupProfile(ctx, name, false)
	if err != nil {
		return nil, err
	}

	cands, err := s.finder.Find(ctx, profile, comparables.Options{
		MaxResults:        opts.MaxResults,
		MinSimilarity:     opts.MinSimilarity,
		PreferSameCountry: opts.PreferSameCountry,
	})
	if err != nil {
		return nil, err
	}
	queries += s.finder.QueryCount(profile)

	return &ComparablesResult{
		Company:     profile,
		Comparables: cands,
		DataQuality: dataQuality(profile, sources),
		Metadata:    metadata("comparables", started, queries),
	}, nil
}

// Analyze runs the full pipeline: lookup, discovery, and comparative
// analysis.
func (s *Service) Analyze(ctx context.Context, name string, opts AnalyzeOptions) (res *AnalyzeResult, err error) {
	started := time.Now()
	defer func() { s.counters.record("analyze", err != nil) }()

	profile, sources, queries, err := s.lookupProfile(ctx, name, true)
	if err != nil {
		return nil, err
	}

	var cands []model.ComparableCandidate
	if opts.IncludeComparables {
		cands, err = s.finder.Find(ctx, profile, comparables.Options{
			MaxResults:        opts.MaxComparables,
			MinSimilarity:     opts.MinSimilarity,
			PreferSameCountry: opts.PreferSameCountry,
		})
		if err != nil {
			return nil, err
		}
		queries += s.finder.QueryCount(profile)
	}

	out := &AnalyzeResult{
		Company:     profile,
		Comparables: cands,
		Analysis:    s.analyzer.Analyze(profile, cands),
		DataQuality: dataQuality(profile, sources),
		Metadata:    metadata("analyze", started, queries),
	}
	return out, nil
}

// lookupProfile runs the primary search (plus supplementary fan-out
// when detailed), extracts and enriches the profile, and applies the
// deny list and confidence gate.
func (s *Service) lookupProfile(ctx context.Context, name string, detailed bool) (*model.CompanyProfile, []string, int, error) {
	if suspiciousName(name) {
		return nil, nil, 0, ErrSuspiciousName
	}

	geoCtx := geo.Detect(name)
	log := zap.L().With(zap.String("company", name))

	primary := fmt.Sprintf("%q company information", name)
	searchOpts := searx.SearchOptions{Language: geoCtx.DefaultLangCode}

	resp, err := s.searcher.Search(ctx, primary, searchOpts, nil)
	if err != nil {
		return nil, nil, 0, err
	}
	results := resp.Results
	queries := 1

	if detailed {
		supplementary := []string{
			fmt.Sprintf("%q %s employees", name, geoCtx.FinancialTerm),
			fmt.Sprintf("%q CEO leadership management", name),
			fmt.Sprintf("%q competitors market position", name),
		}
		queries += len(supplementary)

		var (
			g, gctx = errgroup.WithContext(ctx)
			extra   = make([][]searx.Result, len(supplementary))
		)
		for i, q := range supplementary {
			g.Go(func() error {
				r, err := s.searcher.Search(gctx, q, searchOpts, nil)
				if err != nil {
					if gctx.Err() != nil {
						return gctx.Err()
					}
					log.Warn("service: supplementary query failed",
						zap.String("query", q),
						zap.Error(err))
					return nil // contributes no evidence
				}
				extra[i] = r.Results
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, nil, 0, err
		}
		for _, r := range extra {
			results = append(results, r...)
		}
	}

	if len(results) == 0 {
		return nil, nil, queries, &NoDataError{Name: name, Suggestions: suggestions(name)}
	}

	var profile model.CompanyProfile
	if detailed {
		profile = s.extractor.ExtractDetailed(name, results)
	} else {
		profile = s.extractor.Extract(name, results)
	}

	if profile.Confidence < s.minConfidence {
		return nil, nil, queries, &NoDataError{Name: name, Suggestions: suggestions(name)}
	}

	enriched := s.engine.Enrich(&profile)
	return enriched, resultSources(results), queries, nil
}

func suggestions(name string) []string {
	return []string{
		fmt.Sprintf("check the spelling of %q", name),
		"try the full legal name, including any SA/SAS/Inc/Ltd suffix",
		"add the company's home country to the name",
	}
}

// resultSources lists the distinct engines that contributed results.
func resultSources(results []searx.Result) []string {
	seen := map[string]bool{}
	var out []string
	for _, r := range results {
		if r.Engine != "" && !seen[r.Engine] {
			seen[r.Engine] = true
			out = append(out, r.Engine)
		}
	}
	return out
}
