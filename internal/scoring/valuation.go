package scoring

import (
	"fmt"

	"github.com/sells-group/comparables-api/internal/model"
)

// sectorMultiplierAdjust scales the revenue multiples for sectors that
// trade above or below the baseline.
var sectorMultiplierAdjust = map[string]float64{
	"Technology":         1.5,
	"Healthcare":         1.3,
	"Finance":            1.1,
	"Telecommunications": 1.0,
	"Consulting":         0.9,
	"Retail":             0.7,
	"Manufacturing":      0.8,
	"Construction":       0.7,
	"Transportation":     0.8,
	"Energy":             0.9,
}

// Valuation estimates company value in millions of euros from revenue
// multiples, with an employee-based cross-check. It never fails: with no
// usable inputs the method is reported as insufficient_data.
func (e *Engine) Valuation(p *model.CompanyProfile) *model.ValuationEstimate {
	v := &model.ValuationEstimate{
		Method:     "insufficient_data",
		Confidence: "low",
	}

	adjust := 1.0
	if a, ok := sectorMultiplierAdjust[p.Sector]; ok {
		adjust = a
		v.Adjustments = append(v.Adjustments,
			fmt.Sprintf("%s sector multiple adjustment x%.1f", p.Sector, a))
	}

	if p.RevenueMillions != nil {
		rev := *p.RevenueMillions
		conservative := rev * e.cfg.ConservativeMultiple * adjust
		average := rev * e.cfg.AverageMultiple * adjust
		optimistic := rev * e.cfg.OptimisticMultiple * adjust

		v.Method = "revenue_multiple"
		v.Estimates.Conservative = &conservative
		v.Estimates.Average = &average
		v.Estimates.Optimistic = &optimistic
		v.RecommendedValue = &average
		v.ValueRange = &model.ValueRange{Low: conservative, High: optimistic}
		v.Factors = append(v.Factors, fmt.Sprintf("revenue base €%.0fM", rev))

		if p.Confidence >= 0.7 {
			v.Confidence = "medium"
		}
	}

	if p.Employees != nil {
		empBased := float64(*p.Employees) * e.cfg.ValuePerEmployee * adjust
		v.Estimates.EmployeeBased = &empBased
		v.Factors = append(v.Factors, fmt.Sprintf("%d employees", *p.Employees))

		if v.Method == "insufficient_data" {
			v.Method = "employee_based"
			v.RecommendedValue = &empBased
			v.ValueRange = &model.ValueRange{Low: empBased * 0.6, High: empBased * 1.6}
		}
	}

	if p.IsPublic {
		v.Adjustments = append(v.Adjustments, "listed company: market pricing available")
	}

	return v
}
