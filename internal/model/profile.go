package model

// Provenance tags identify how a profile was produced.
const (
	SourceWebSearch           = "web_search"
	SourceWebSearchDetailed   = "web_search_detailed"
	SourceWebSearchExtraction = "web_search_extraction"
	SourceCompetitorExtract   = "competitor_extraction"
)

// Leader is a single leadership mention extracted from search text.
type Leader struct {
	Role string `json:"role"`
	Name string `json:"name"`
}

// CompanyProfile is the central entity assembled by the extraction and
// scoring pipeline. Extraction fills the base fields; scoring stages add
// the derived blocks. Fields with no evidence stay empty rather than
// failing the profile.
type CompanyProfile struct {
	Name       string  `json:"name"`
	Source     string  `json:"source"`
	Confidence float64 `json:"confidence"`

	Sector               string   `json:"sector,omitempty"`
	Industry             string   `json:"industry,omitempty"`
	Country              string   `json:"country,omitempty"`
	Region               string   `json:"region,omitempty"`
	Employees            *int     `json:"employees,omitempty"`
	EmployeeCategory     string   `json:"employee_category,omitempty"`
	Revenue              string   `json:"revenue,omitempty"`
	RevenueMillions      *float64 `json:"revenue_millions,omitempty"`
	RevenueCategory      string   `json:"revenue_category,omitempty"`
	SizeCategory         string   `json:"size_category,omitempty"`
	BusinessModel        string   `json:"business_model,omitempty"`
	MainActivities       []string `json:"main_activities,omitempty"`
	CompetitorsMentioned []string `json:"competitors_mentioned,omitempty"`
	MarketPosition       string   `json:"market_position,omitempty"`
	FundingInfo          string   `json:"funding_info,omitempty"`
	Leadership           []Leader `json:"leadership,omitempty"`
	Headquarters         string   `json:"headquarters,omitempty"`
	FoundingYear         *int     `json:"founding_year,omitempty"`
	IsPublic             bool     `json:"is_public"`
	ListingStatus        string   `json:"listing_status,omitempty"`
	Description          string   `json:"description,omitempty"`
	Website              string   `json:"website,omitempty"`
	KeyPoints            []string `json:"key_points,omitempty"`

	// Derived blocks, attached by the scoring engine.
	FinancialMetrics *ScoredMetrics     `json:"financial_metrics,omitempty"`
	RiskProfile      *RiskProfile       `json:"risk_profile,omitempty"`
	Valuation        *ValuationEstimate `json:"valuation_estimate,omitempty"`
	MarketAssessment *MarketAssessment  `json:"market_position_assessment,omitempty"`
	BenchmarkScores  *BenchmarkScores   `json:"benchmark_scores,omitempty"`
}

// ComparableCandidate is a discovered company scored against a reference.
type ComparableCandidate struct {
	CompanyProfile
	SimilarityScore int      `json:"similarity_score"`
	MatchReasons    []string `json:"match_reasons,omitempty"`
	RiskFactors     []string `json:"risk_factors,omitempty"`
}

// ScoredMetrics are derived financial/operational metrics for a profile.
type ScoredMetrics struct {
	RevenuePerEmployee   *float64 `json:"revenue_per_employee,omitempty"`
	EmployeeProductivity string   `json:"employee_productivity"`
	GrowthStage          string   `json:"growth_stage,omitempty"`
	MarketPresence       string   `json:"market_presence,omitempty"`
	ScalabilityIndex     float64  `json:"scalability_index"`
	OverallHealthScore   float64  `json:"overall_health_score"`
	GrowthPotential      string   `json:"growth_potential,omitempty"`
	StabilityScore       float64  `json:"stability_score"`
}

// RiskAssessment breaks the risk score down by category.
type RiskAssessment struct {
	Operational float64 `json:"operational"`
	Financial   float64 `json:"financial"`
	Market      float64 `json:"market"`
	Data        float64 `json:"data"`
}

// RiskProfile summarizes the risk evaluation of a profile.
type RiskProfile struct {
	Level      string         `json:"level"`
	Score      float64        `json:"score"`
	Factors    []string       `json:"factors,omitempty"`
	Mitigation []string       `json:"mitigation,omitempty"`
	Assessment RiskAssessment `json:"assessment"`
}

// ValuationEstimate is a heuristic valuation in millions of euros.
type ValuationEstimate struct {
	Method           string             `json:"method"`
	Confidence       string             `json:"confidence"`
	Estimates        ValuationEstimates `json:"estimates"`
	Factors          []string           `json:"factors,omitempty"`
	Adjustments      []string           `json:"adjustments,omitempty"`
	RecommendedValue *float64           `json:"recommended_value,omitempty"`
	ValueRange       *ValueRange        `json:"value_range,omitempty"`
}

// ValuationEstimates holds the individual estimate methods that produced
// a value; absent methods stay nil.
type ValuationEstimates struct {
	Conservative  *float64 `json:"conservative,omitempty"`
	Average       *float64 `json:"average,omitempty"`
	Optimistic    *float64 `json:"optimistic,omitempty"`
	EmployeeBased *float64 `json:"employee_based,omitempty"`
}

// ValueRange bounds a recommended valuation.
type ValueRange struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// MarketAssessment summarizes competitive standing.
type MarketAssessment struct {
	Position        string   `json:"position"`
	Strengths       []string `json:"strengths,omitempty"`
	Challenges      []string `json:"challenges,omitempty"`
	CompetitiveEdge string   `json:"competitive_edge,omitempty"`
}

// BenchmarkScores rate a profile on fixed 0-100 axes.
type BenchmarkScores struct {
	Size         float64 `json:"size"`
	Productivity float64 `json:"productivity"`
	Stability    float64 `json:"stability"`
	DataQuality  float64 `json:"data_quality"`
	Overall      float64 `json:"overall"`
}
