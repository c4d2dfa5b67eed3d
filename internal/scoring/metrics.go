package scoring

import (
	"time"

	"github.com/sells-group/comparables-api/internal/model"
)

// Employee productivity bands, by revenue per employee in euros.
const (
	productivityVeryHigh = 300_000
	productivityHigh     = 150_000
	productivityMedium   = 75_000
)

// FinancialMetrics derives operational metrics from whatever fields the
// profile has. Missing inputs degrade individual metrics to "unknown"
// rather than failing.
func (e *Engine) FinancialMetrics(p *model.CompanyProfile) *model.ScoredMetrics {
	m := &model.ScoredMetrics{
		EmployeeProductivity: "unknown",
	}

	if p.RevenueMillions != nil && p.Employees != nil && *p.Employees > 0 {
		rpe := *p.RevenueMillions * 1_000_000 / float64(*p.Employees)
		m.RevenuePerEmployee = &rpe
		switch {
		case rpe >= productivityVeryHigh:
			m.EmployeeProductivity = "very_high"
		case rpe >= productivityHigh:
			m.EmployeeProductivity = "high"
		case rpe >= productivityMedium:
			m.EmployeeProductivity = "medium"
		default:
			m.EmployeeProductivity = "low"
		}
	}

	m.GrowthStage = growthStage(p.FoundingYear)
	m.MarketPresence = marketPresence(p)
	m.ScalabilityIndex = e.scalabilityIndex(p, m)
	m.StabilityScore = e.stabilityScore(p)
	m.OverallHealthScore = e.healthScore(p, m)
	m.GrowthPotential = growthPotential(m)

	return m
}

func growthStage(foundingYear *int) string {
	if foundingYear == nil {
		return ""
	}
	age := time.Now().Year() - *foundingYear
	switch {
	case age < 5:
		return "startup"
	case age < 15:
		return "growth"
	case age < 30:
		return "mature"
	default:
		return "established"
	}
}

func marketPresence(p *model.CompanyProfile) string {
	switch {
	case p.IsPublic:
		return "global"
	case p.MarketPosition == "leader":
		return "strong"
	case p.Country != "" && p.Country != "International":
		return "regional"
	default:
		return "unknown"
	}
}

// scalabilityIndex scores 0-100 how well the business should scale:
// base 10, SaaS model +30, technology sector +20, high productivity +25,
// below-enterprise size +15.
func (e *Engine) scalabilityIndex(p *model.CompanyProfile, m *model.ScoredMetrics) float64 {
	score := 10.0
	if p.BusinessModel == "SaaS" {
		score += 30
	}
	if p.Sector == "Technology" {
		score += 20
	}
	switch m.EmployeeProductivity {
	case "very_high", "high":
		score += 25
	case "medium":
		score += 10
	}
	switch p.SizeCategory {
	case "small", "medium":
		score += 15
	}
	return clamp(score, 0, 100)
}

// stabilityScore scores 0-100: company age up to 40, size up to 30,
// public listing 15, data confidence up to 15.
func (e *Engine) stabilityScore(p *model.CompanyProfile) float64 {
	var score float64

	if p.FoundingYear != nil {
		age := time.Now().Year() - *p.FoundingYear
		switch {
		case age >= 30:
			score += 40
		case age >= 15:
			score += 30
		case age >= 5:
			score += 15
		default:
			score += 5
		}
	}

	switch p.SizeCategory {
	case "enterprise":
		score += 30
	case "large":
		score += 25
	case "medium":
		score += 15
	case "small":
		score += 10
	case "micro":
		score += 5
	}

	if p.IsPublic {
		score += 15
	}
	score += clamp01(p.Confidence) * 15

	return clamp(score, 0, 100)
}

// healthScore aggregates 0-100: confidence up to 20, revenue evidence 20,
// productivity up to 25, stability up to 20, public listing 15.
func (e *Engine) healthScore(p *model.CompanyProfile, m *model.ScoredMetrics) float64 {
	score := clamp01(p.Confidence) * 20

	if p.RevenueMillions != nil {
		score += 20
	}

	switch m.EmployeeProductivity {
	case "very_high":
		score += 25
	case "high":
		score += 20
	case "medium":
		score += 10
	case "low":
		score += 5
	}

	score += m.StabilityScore / 100 * 20

	if p.IsPublic {
		score += 15
	}

	return clamp(score, 0, 100)
}

func growthPotential(m *model.ScoredMetrics) string {
	switch {
	case m.ScalabilityIndex >= 60 && (m.GrowthStage == "startup" || m.GrowthStage == "growth"):
		return "high"
	case m.ScalabilityIndex >= 40:
		return "medium"
	default:
		return "low"
	}
}
