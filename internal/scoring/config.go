// Package scoring derives similarity, financial, risk, valuation and
// benchmark scores from extracted company profiles. Every score is an
// additive weighted heuristic over whatever fields are populated.
package scoring

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
)

// Config holds the point allocations for the similarity model and the
// fixed lookup tables shared by the derived computations.
type Config struct {
	// Similarity weights. Sector + country + size + confidence should
	// total 100.
	SectorExactPoints  float64
	SectorGroupPoints  float64
	CountryExactPoints float64
	RegionPoints       float64
	SizeExactPoints    float64
	SizeAdjacentPoints float64
	ConfidencePoints   float64

	// FloorScore applies when fewer than MinComparableFactors of the
	// three categorical factors could be compared, so candidates are not
	// penalized for missing reference data.
	FloorScore           float64
	MinComparableFactors int

	// SimilarSectorGroups lists sectors treated as near matches.
	SimilarSectorGroups [][]string

	// SectorRisk maps a sector to its inherent risk contribution
	// (15-35). Sectors not listed use DefaultSectorRisk.
	SectorRisk        map[string]float64
	DefaultSectorRisk float64

	// RevenueMultiples drive the valuation estimate (applied to revenue
	// in millions of euros).
	ConservativeMultiple float64
	AverageMultiple      float64
	OptimisticMultiple   float64
	// ValuePerEmployee is the employee-based estimate in €M per head.
	ValuePerEmployee float64
}

// DefaultConfig returns the shipped scoring configuration.
func DefaultConfig() Config {
	return Config{
		SectorExactPoints:  40,
		SectorGroupPoints:  25,
		CountryExactPoints: 30,
		RegionPoints:       15,
		SizeExactPoints:    20,
		SizeAdjacentPoints: 10,
		ConfidencePoints:   10,

		FloorScore:           40,
		MinComparableFactors: 2,

		SimilarSectorGroups: [][]string{
			{"Technology", "Telecommunications"},
			{"Finance", "Consulting"},
			{"Manufacturing", "Energy", "Construction"},
			{"Retail", "Transportation"},
		},

		SectorRisk: map[string]float64{
			"Technology":         30,
			"Finance":            25,
			"Healthcare":         20,
			"Manufacturing":      20,
			"Retail":             30,
			"Energy":             35,
			"Consulting":         15,
			"Telecommunications": 20,
			"Construction":       30,
			"Transportation":     25,
		},
		DefaultSectorRisk: 25,

		ConservativeMultiple: 0.8,
		AverageMultiple:      1.5,
		OptimisticMultiple:   2.5,
		ValuePerEmployee:     0.15,
	}
}

// Validate checks that a Config is internally consistent.
func Validate(c Config) error {
	var errs []string

	weights := map[string]float64{
		"sector_exact_points":  c.SectorExactPoints,
		"sector_group_points":  c.SectorGroupPoints,
		"country_exact_points": c.CountryExactPoints,
		"region_points":        c.RegionPoints,
		"size_exact_points":    c.SizeExactPoints,
		"size_adjacent_points": c.SizeAdjacentPoints,
		"confidence_points":    c.ConfidencePoints,
	}
	for name, w := range weights {
		if w < 0 {
			errs = append(errs, fmt.Sprintf("%s must be >= 0", name))
		}
	}

	full := c.SectorExactPoints + c.CountryExactPoints + c.SizeExactPoints + c.ConfidencePoints
	if full != 100 {
		errs = append(errs, fmt.Sprintf("full-match points should sum to 100, got %.1f", full))
	}

	if c.SectorGroupPoints > c.SectorExactPoints {
		errs = append(errs, "sector_group_points must not exceed sector_exact_points")
	}
	if c.RegionPoints > c.CountryExactPoints {
		errs = append(errs, "region_points must not exceed country_exact_points")
	}
	if c.SizeAdjacentPoints > c.SizeExactPoints {
		errs = append(errs, "size_adjacent_points must not exceed size_exact_points")
	}
	if c.FloorScore < 0 || c.FloorScore > 100 {
		errs = append(errs, "floor_score must be in [0, 100]")
	}
	for sector, risk := range c.SectorRisk {
		if risk < 15 || risk > 35 {
			errs = append(errs, fmt.Sprintf("sector_risk[%s] must be in [15, 35]", sector))
		}
	}

	if len(errs) > 0 {
		return eris.Errorf("scoring: invalid config: %s", strings.Join(errs, "; "))
	}
	return nil
}

// sameSectorGroup reports whether two distinct sectors belong to a
// pre-declared similar-sector group.
func (c Config) sameSectorGroup(a, b string) bool {
	for _, group := range c.SimilarSectorGroups {
		inA, inB := false, false
		for _, s := range group {
			if strings.EqualFold(s, a) {
				inA = true
			}
			if strings.EqualFold(s, b) {
				inB = true
			}
		}
		if inA && inB {
			return true
		}
	}
	return false
}

// sectorRisk returns the risk contribution for a sector.
func (c Config) sectorRisk(sector string) float64 {
	if r, ok := c.SectorRisk[sector]; ok {
		return r
	}
	return c.DefaultSectorRisk
}
