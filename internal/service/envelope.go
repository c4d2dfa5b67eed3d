package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sells-group/comparables-api/internal/model"
)

// dataQuality builds the quality envelope for an extracted profile.
// Completeness is the share of headline fields the extractor managed to
// fill.
func dataQuality(p *model.CompanyProfile, sources []string) model.DataQuality {
	filled := 0
	total := 8

	if p.Sector != "" {
		filled++
	}
	if p.Country != "" && p.Country != "International" {
		filled++
	}
	if p.Employees != nil {
		filled++
	}
	if p.RevenueMillions != nil {
		filled++
	}
	if p.FoundingYear != nil {
		filled++
	}
	if p.Headquarters != "" {
		filled++
	}
	if len(p.Leadership) > 0 {
		filled++
	}
	if p.Website != "" {
		filled++
	}

	dq := model.DataQuality{
		Confidence:   p.Confidence,
		Completeness: float64(filled) / float64(total) * 100,
		Sources:      sources,
	}

	switch {
	case p.Confidence >= 0.8:
		dq.Indicators = append(dq.Indicators, "high evidence volume")
	case p.Confidence >= 0.5:
		dq.Indicators = append(dq.Indicators, "moderate evidence volume")
	default:
		dq.Indicators = append(dq.Indicators, "limited evidence volume")
	}
	if filled < total/2 {
		dq.Indicators = append(dq.Indicators, fmt.Sprintf("only %d of %d headline fields extracted", filled, total))
	}
	return dq
}

func metadata(endpoint string, started time.Time, searchQueries int) model.Metadata {
	return model.Metadata{
		RequestID:     uuid.NewString(),
		Endpoint:      endpoint,
		ElapsedMs:     time.Since(started).Milliseconds(),
		SearchQueries: searchQueries,
		Timestamp:     time.Now().UTC(),
	}
}
