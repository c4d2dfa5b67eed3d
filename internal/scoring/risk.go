package scoring

import (
	"fmt"

	"github.com/sells-group/comparables-api/internal/model"
)

// Risk level thresholds on the 0-100 aggregate.
const (
	riskHighThreshold   = 70
	riskMediumThreshold = 40
)

// Risk evaluates a profile's risk: team size up to 30, productivity 25,
// company age up to 35, data confidence 20, sector 15-35 from the fixed
// table. The aggregate is clamped to [0, 100] and mapped to a level.
func (e *Engine) Risk(p *model.CompanyProfile, m *model.ScoredMetrics) *model.RiskProfile {
	rp := &model.RiskProfile{}

	// Operational: team size.
	var teamRisk float64
	switch {
	case p.Employees == nil:
		teamRisk = 15
		rp.Factors = append(rp.Factors, "employee count unknown")
	case *p.Employees < 10:
		teamRisk = 30
		rp.Factors = append(rp.Factors, "very small team")
		rp.Mitigation = append(rp.Mitigation, "verify key-person dependency")
	case *p.Employees < 50:
		teamRisk = 20
		rp.Factors = append(rp.Factors, "small team")
	case *p.Employees < 250:
		teamRisk = 10
	default:
		teamRisk = 5
	}

	// Financial: productivity.
	var prodRisk float64
	switch {
	case m == nil || m.EmployeeProductivity == "unknown":
		prodRisk = 15
		rp.Factors = append(rp.Factors, "productivity not measurable")
	case m.EmployeeProductivity == "low":
		prodRisk = 25
		rp.Factors = append(rp.Factors, "low revenue per employee")
		rp.Mitigation = append(rp.Mitigation, "review cost structure against sector benchmarks")
	case m.EmployeeProductivity == "medium":
		prodRisk = 10
	default:
		prodRisk = 5
	}

	// Market: company age and sector.
	var ageRisk float64
	switch {
	case p.FoundingYear == nil:
		ageRisk = 20
		rp.Factors = append(rp.Factors, "founding year unknown")
	case m != nil && m.GrowthStage == "startup":
		ageRisk = 35
		rp.Factors = append(rp.Factors, "early-stage company")
		rp.Mitigation = append(rp.Mitigation, "weight recent trading history over projections")
	case m != nil && m.GrowthStage == "growth":
		ageRisk = 20
	default:
		ageRisk = 5
	}

	sectorRisk := e.cfg.sectorRisk(p.Sector)

	// Data: evidence quality.
	dataRisk := (1 - clamp01(p.Confidence)) * 20
	if p.Confidence < 0.5 {
		rp.Factors = append(rp.Factors, "low extraction confidence")
		rp.Mitigation = append(rp.Mitigation, "corroborate profile with primary sources")
	}

	rp.Assessment = model.RiskAssessment{
		Operational: teamRisk,
		Financial:   prodRisk,
		Market:      ageRisk + sectorRisk,
		Data:        dataRisk,
	}

	rp.Score = clamp(teamRisk+prodRisk+ageRisk+sectorRisk+dataRisk, 0, 100)

	switch {
	case rp.Score >= riskHighThreshold:
		rp.Level = "high"
	case rp.Score >= riskMediumThreshold:
		rp.Level = "medium"
	default:
		rp.Level = "low"
	}

	if len(rp.Factors) == 0 {
		rp.Factors = append(rp.Factors, fmt.Sprintf("baseline %s sector exposure", p.Sector))
	}

	return rp
}
