// Package comparables discovers candidate companies comparable to a
// reference profile by fanning out targeted search queries, extracting
// candidate names from the result text, and scoring each survivor
// against the reference.
package comparables

import (
	"context"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/comparables-api/internal/extract"
	"github.com/sells-group/comparables-api/internal/geo"
	"github.com/sells-group/comparables-api/internal/model"
	"github.com/sells-group/comparables-api/internal/scoring"
	"github.com/sells-group/comparables-api/pkg/searx"
)

// maxCandidates caps the returned list regardless of what the caller
// asked for.
const maxCandidates = 50

const maxQueryConcurrency = 4

// Options tunes a discovery run.
type Options struct {
	MaxResults        int
	MinSimilarity     int
	PreferSameCountry bool
}

// Finder issues discovery queries and turns the results into scored
// comparable candidates.
type Finder struct {
	searcher  searx.Client
	extractor *extract.Extractor
	engine    *scoring.Engine
}

// NewFinder wires a Finder from its collaborators.
func NewFinder(searcher searx.Client, extractor *extract.Extractor, engine *scoring.Engine) *Finder {
	return &Finder{searcher: searcher, extractor: extractor, engine: engine}
}

// QueryCount reports how many discovery queries Find will issue for a
// reference profile, for request accounting.
func (f *Finder) QueryCount(ref *model.CompanyProfile) int {
	return len(buildQueries(ref, geo.Detect(ref.Name)))
}

// Find discovers and scores comparable candidates for ref. Sub-query
// failures are logged and contribute nothing; Find only fails when the
// context is cancelled.
func (f *Finder) Find(ctx context.Context, ref *model.CompanyProfile, opts Options) ([]model.ComparableCandidate, error) {
	if opts.MaxResults <= 0 || opts.MaxResults > maxCandidates {
		opts.MaxResults = maxCandidates
	}

	geoCtx := geo.Detect(ref.Name)
	queries := buildQueries(ref, geoCtx)
	mode := searx.FocusModeByName(searx.FocusCompetitors)

	log := zap.L().With(zap.String("company", ref.Name), zap.Int("queries", len(queries)))
	log.Debug("comparables: starting discovery fan-out")

	var (
		mu      sync.Mutex
		results []searx.Result
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxQueryConcurrency)

	for _, query := range queries {
		g.Go(func() error {
			resp, err := f.searcher.Search(gctx, query, searx.SearchOptions{Language: geoCtx.DefaultLangCode}, mode)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				log.Warn("comparables: discovery query failed",
					zap.String("query", query),
					zap.Error(err))
				return nil // partial failure contributes no evidence
			}

			mu.Lock()
			results = append(results, resp.Results...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	candidates := f.collectCandidates(ref, results)

	scored := make([]model.ComparableCandidate, 0, len(candidates))
	for _, cand := range candidates {
		score, reasons := f.engine.Similarity(ref, &cand.CompanyProfile)
		if score < opts.MinSimilarity {
			continue
		}
		cand.SimilarityScore = score
		cand.MatchReasons = reasons
		if risk := f.engine.Risk(&cand.CompanyProfile, f.engine.FinancialMetrics(&cand.CompanyProfile)); risk != nil {
			cand.RiskFactors = risk.Factors
		}
		scored = append(scored, cand)
	}

	sortCandidates(scored, ref.Country, opts.PreferSameCountry)

	if len(scored) > opts.MaxResults {
		scored = scored[:opts.MaxResults]
	}

	log.Debug("comparables: discovery complete",
		zap.Int("results", len(results)),
		zap.Int("candidates", len(candidates)),
		zap.Int("returned", len(scored)))
	return scored, nil
}

// collectCandidates extracts candidate names from the pooled results,
// deduplicates them, and builds a profile for each from the subset of
// results that mention the name.
func (f *Finder) collectCandidates(ref *model.CompanyProfile, results []searx.Result) []model.ComparableCandidate {
	seen := map[string]bool{DedupeKey(ref.Name): true}
	var found []Candidate

	for _, r := range results {
		text := r.Title + ". " + r.Content
		for _, cand := range ExtractNames(text, ref.Name) {
			key := DedupeKey(cand.Name)
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			found = append(found, cand)
			if len(found) >= maxCandidates {
				break
			}
		}
		if len(found) >= maxCandidates {
			break
		}
	}

	out := make([]model.ComparableCandidate, 0, len(found))
	for _, cand := range found {
		mentions := resultsMentioning(cand.Name, results)
		profile := f.extractor.Extract(cand.Name, mentions)
		profile.Source = cand.Source
		out = append(out, model.ComparableCandidate{CompanyProfile: profile})
	}
	return out
}

func resultsMentioning(name string, results []searx.Result) []searx.Result {
	needle := strings.ToLower(name)
	var out []searx.Result
	for _, r := range results {
		if strings.Contains(strings.ToLower(r.Title), needle) ||
			strings.Contains(strings.ToLower(r.Content), needle) {
			out = append(out, r)
		}
	}
	return out
}

// sortCandidates orders by similarity descending. When preferSameCountry
// is set, candidates sharing the reference country sort ahead of the
// rest at any similarity.
func sortCandidates(cands []model.ComparableCandidate, refCountry string, preferSameCountry bool) {
	sort.SliceStable(cands, func(i, j int) bool {
		if preferSameCountry && refCountry != "" {
			iSame := strings.EqualFold(cands[i].Country, refCountry)
			jSame := strings.EqualFold(cands[j].Country, refCountry)
			if iSame != jSame {
				return iSame
			}
		}
		return cands[i].SimilarityScore > cands[j].SimilarityScore
	})
}
