package scoring

import (
	"fmt"

	"github.com/sells-group/comparables-api/internal/model"
)

// Benchmark rates a profile on fixed 0-100 axes so profiles extracted
// with different evidence volumes stay comparable.
func (e *Engine) Benchmark(p *model.CompanyProfile, m *model.ScoredMetrics) *model.BenchmarkScores {
	b := &model.BenchmarkScores{}

	switch p.SizeCategory {
	case "enterprise":
		b.Size = 100
	case "large":
		b.Size = 80
	case "medium":
		b.Size = 60
	case "small":
		b.Size = 40
	case "micro":
		b.Size = 20
	}

	if m != nil {
		switch m.EmployeeProductivity {
		case "very_high":
			b.Productivity = 100
		case "high":
			b.Productivity = 80
		case "medium":
			b.Productivity = 50
		case "low":
			b.Productivity = 25
		}
		b.Stability = m.StabilityScore
	}

	b.DataQuality = clamp01(p.Confidence) * 100
	b.Overall = (b.Size + b.Productivity + b.Stability + b.DataQuality) / 4

	return b
}

// MarketAssessment summarizes a profile's competitive standing from its
// extracted market position, size and listing status.
func (e *Engine) MarketAssessment(p *model.CompanyProfile) *model.MarketAssessment {
	a := &model.MarketAssessment{Position: p.MarketPosition}
	if a.Position == "" {
		switch p.SizeCategory {
		case "enterprise", "large":
			a.Position = "established player"
		case "medium":
			a.Position = "mid-market player"
		default:
			a.Position = "emerging player"
		}
	}

	if p.IsPublic {
		a.Strengths = append(a.Strengths, "public listing provides capital access and transparency")
	}
	if p.MarketPosition == "leader" {
		a.Strengths = append(a.Strengths, fmt.Sprintf("recognized leader in %s", p.Sector))
		a.CompetitiveEdge = "market leadership"
	}
	if p.BusinessModel == "SaaS" {
		a.Strengths = append(a.Strengths, "recurring revenue model")
		if a.CompetitiveEdge == "" {
			a.CompetitiveEdge = "scalable delivery model"
		}
	}
	if len(p.CompetitorsMentioned) > 2 {
		a.Challenges = append(a.Challenges, "crowded competitive field")
	}
	if p.SizeCategory == "micro" || p.SizeCategory == "small" {
		a.Challenges = append(a.Challenges, "limited scale against larger competitors")
	}

	return a
}

// Enrich attaches every derived block to the profile in place and
// returns it. The order matters: metrics feed risk and benchmarks.
func (e *Engine) Enrich(p *model.CompanyProfile) *model.CompanyProfile {
	m := e.FinancialMetrics(p)
	p.FinancialMetrics = m
	p.RiskProfile = e.Risk(p, m)
	p.Valuation = e.Valuation(p)
	p.MarketAssessment = e.MarketAssessment(p)
	p.BenchmarkScores = e.Benchmark(p, m)
	return p
}
