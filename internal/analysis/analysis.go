// Package analysis aggregates a main company and its scored comparables
// into rankings, summary statistics, and human-readable insights. Pure
// computation, inputs are never mutated.
package analysis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sells-group/comparables-api/internal/model"
)

// Analyzer produces a ComparativeAnalysis over a set of profiles. The
// first profile passed to Analyze is treated as the main company.
type Analyzer struct{}

// NewAnalyzer returns a ready Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze computes summary statistics, three descending rankings, and
// insight strings over the main profile and its peers.
func (a *Analyzer) Analyze(main *model.CompanyProfile, peers []model.ComparableCandidate) *model.ComparativeAnalysis {
	profiles := make([]*model.CompanyProfile, 0, len(peers)+1)
	if main != nil {
		profiles = append(profiles, main)
	}
	for i := range peers {
		profiles = append(profiles, &peers[i].CompanyProfile)
	}

	out := &model.ComparativeAnalysis{
		Summary:       summarize(profiles),
		ByEmployees:   rank(profiles, employeeValue),
		ByRevenue:     rank(profiles, revenueValue),
		ByHealthScore: rank(profiles, healthValue),
	}

	if main != nil {
		out.Insights = insights(main, peers, out)
		out.Recommendations = recommendations(main, peers)
	}
	return out
}

// summarize averages each metric over the profiles that carry it.
func summarize(profiles []*model.CompanyProfile) model.AnalysisSummary {
	s := model.AnalysisSummary{Companies: len(profiles)}

	var empSum, revSum, healthSum float64
	var empN, revN, healthN int
	sectorSet := map[string]bool{}

	for _, p := range profiles {
		if p.Employees != nil {
			empSum += float64(*p.Employees)
			empN++
		}
		if p.RevenueMillions != nil {
			revSum += *p.RevenueMillions
			revN++
		}
		if p.FinancialMetrics != nil {
			healthSum += p.FinancialMetrics.OverallHealthScore
			healthN++
		}
		if p.Sector != "" && !sectorSet[p.Sector] {
			sectorSet[p.Sector] = true
			s.Sectors = append(s.Sectors, p.Sector)
		}
	}

	if empN > 0 {
		avg := empSum / float64(empN)
		s.AvgEmployees = &avg
	}
	if revN > 0 {
		avg := revSum / float64(revN)
		s.AvgRevenueMillions = &avg
	}
	if healthN > 0 {
		avg := healthSum / float64(healthN)
		s.AvgHealthScore = &avg
	}
	return s
}

// rank orders profiles descending by the extracted value, skipping
// profiles where the value is absent. Ranks start at 1.
func rank(profiles []*model.CompanyProfile, value func(*model.CompanyProfile) (float64, bool)) []model.RankingEntry {
	entries := make([]model.RankingEntry, 0, len(profiles))
	for _, p := range profiles {
		if v, ok := value(p); ok {
			entries = append(entries, model.RankingEntry{Name: p.Name, Value: v})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Value > entries[j].Value
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

func employeeValue(p *model.CompanyProfile) (float64, bool) {
	if p.Employees == nil {
		return 0, false
	}
	return float64(*p.Employees), true
}

func revenueValue(p *model.CompanyProfile) (float64, bool) {
	if p.RevenueMillions == nil {
		return 0, false
	}
	return *p.RevenueMillions, true
}

func healthValue(p *model.CompanyProfile) (float64, bool) {
	if p.FinancialMetrics == nil {
		return 0, false
	}
	return p.FinancialMetrics.OverallHealthScore, true
}

// insights emits observations about where the main company sits in its
// peer group.
func insights(main *model.CompanyProfile, peers []model.ComparableCandidate, ca *model.ComparativeAnalysis) []string {
	var out []string

	if tops(ca.ByEmployees, main.Name) {
		out = append(out, fmt.Sprintf("%s has the largest workforce in its peer group", main.Name))
	}
	if tops(ca.ByRevenue, main.Name) {
		out = append(out, fmt.Sprintf("%s leads its peer group on revenue", main.Name))
	}
	if tops(ca.ByHealthScore, main.Name) {
		out = append(out, fmt.Sprintf("%s shows the strongest financial health among its peers", main.Name))
	}

	if main.Sector != "" {
		sameSector := 0
		for _, p := range peers {
			if strings.EqualFold(p.Sector, main.Sector) {
				sameSector++
			}
		}
		if sameSector > 0 {
			out = append(out, fmt.Sprintf("%d of %d comparables operate in the same sector (%s)",
				sameSector, len(peers), main.Sector))
		}
	}
	return out
}

func recommendations(main *model.CompanyProfile, peers []model.ComparableCandidate) []string {
	var out []string

	if len(peers) == 0 {
		out = append(out, "No comparables found; broaden the search or lower the similarity threshold")
		return out
	}

	strong := 0
	for _, p := range peers {
		if p.SimilarityScore >= 70 {
			strong++
		}
	}
	switch {
	case strong >= 3:
		out = append(out, fmt.Sprintf("%d close comparables support a benchmark-based valuation", strong))
	case strong > 0:
		out = append(out, "Few close comparables; treat benchmark-derived figures as indicative")
	default:
		out = append(out, "No close comparables; similarity scores are too low for reliable benchmarking")
	}

	if main.Confidence < 0.5 {
		out = append(out, "Low extraction confidence for the main company; verify key figures manually")
	}
	return out
}

func tops(ranking []model.RankingEntry, name string) bool {
	return len(ranking) > 1 && ranking[0].Name == name
}
