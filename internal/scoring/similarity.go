package scoring

import (
	"fmt"
	"math"
	"strings"

	"github.com/sells-group/comparables-api/internal/extract"
	"github.com/sells-group/comparables-api/internal/model"
)

// Engine computes derived scores over company profiles.
type Engine struct {
	cfg Config
}

// NewEngine creates an engine with the given configuration. A zero-value
// config is replaced with the defaults.
func NewEngine(cfg Config) *Engine {
	if cfg.SectorExactPoints == 0 && cfg.CountryExactPoints == 0 {
		cfg = DefaultConfig()
	}
	return &Engine{cfg: cfg}
}

// Similarity computes the 0-100 weighted similarity between a reference
// profile and a candidate, plus human-readable match reasons. When fewer
// than two of the three categorical factors are comparable the score is
// floored rather than reported low, so candidates are not punished for
// gaps in the reference data.
func (e *Engine) Similarity(ref, cand *model.CompanyProfile) (int, []string) {
	var score float64
	var reasons []string
	comparable := 0

	// Sector: up to 40 points.
	if ref.Sector != "" && cand.Sector != "" {
		comparable++
		switch {
		case strings.EqualFold(ref.Sector, cand.Sector):
			score += e.cfg.SectorExactPoints
			reasons = append(reasons, fmt.Sprintf("same sector (%s)", cand.Sector))
		case e.cfg.sameSectorGroup(ref.Sector, cand.Sector):
			score += e.cfg.SectorGroupPoints
			reasons = append(reasons, fmt.Sprintf("related sector (%s / %s)", ref.Sector, cand.Sector))
		}
	}

	// Country: up to 30 points.
	if ref.Country != "" && cand.Country != "" {
		comparable++
		switch {
		case strings.EqualFold(ref.Country, cand.Country):
			score += e.cfg.CountryExactPoints
			reasons = append(reasons, fmt.Sprintf("same country (%s)", cand.Country))
		case ref.Region != "" && strings.EqualFold(ref.Region, cand.Region):
			score += e.cfg.RegionPoints
			reasons = append(reasons, fmt.Sprintf("same region (%s)", cand.Region))
		}
	}

	// Size: up to 20 points, partial credit for adjacent categories.
	refIdx := extract.SizeIndex(ref.SizeCategory)
	candIdx := extract.SizeIndex(cand.SizeCategory)
	if refIdx >= 0 && candIdx >= 0 {
		comparable++
		switch d := abs(refIdx - candIdx); {
		case d == 0:
			score += e.cfg.SizeExactPoints
			reasons = append(reasons, fmt.Sprintf("same size category (%s)", cand.SizeCategory))
		case d == 1:
			score += e.cfg.SizeAdjacentPoints
			reasons = append(reasons, fmt.Sprintf("similar size (%s vs %s)", ref.SizeCategory, cand.SizeCategory))
		}
	}

	// Evidence quality: up to 10 points.
	score += clamp01(cand.Confidence) * e.cfg.ConfidencePoints

	if comparable < e.cfg.MinComparableFactors && score < e.cfg.FloorScore {
		score = e.cfg.FloorScore
		reasons = append(reasons, "limited comparable data")
	}

	return int(math.Round(clamp(score, 0, 100))), reasons
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clamp01(v float64) float64 { return clamp(v, 0, 1) }
