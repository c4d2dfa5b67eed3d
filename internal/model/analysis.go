package model

import "time"

// GeographyContext parametrizes search queries for a company's likely
// home market. Derived from the company name, never persisted.
type GeographyContext struct {
	Country         string `json:"country"`
	Region          string `json:"region"`
	CompanyTerm     string `json:"company_term"`
	FinancialTerm   string `json:"financial_term"`
	Language        string `json:"language"`
	DefaultLangCode string `json:"default_lang_code"`
}

// RankingEntry is one row of a comparative ranking.
type RankingEntry struct {
	Rank  int     `json:"rank"`
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// AnalysisSummary holds aggregate statistics over the analyzed set.
type AnalysisSummary struct {
	Companies          int      `json:"companies"`
	AvgEmployees       *float64 `json:"avg_employees,omitempty"`
	AvgRevenueMillions *float64 `json:"avg_revenue_millions,omitempty"`
	AvgHealthScore     *float64 `json:"avg_health_score,omitempty"`
	Sectors            []string `json:"sectors,omitempty"`
}

// ComparativeAnalysis aggregates a set of scored profiles.
type ComparativeAnalysis struct {
	Summary         AnalysisSummary `json:"summary"`
	ByEmployees     []RankingEntry  `json:"by_employees"`
	ByRevenue       []RankingEntry  `json:"by_revenue"`
	ByHealthScore   []RankingEntry  `json:"by_health_score"`
	Insights        []string        `json:"insights,omitempty"`
	Recommendations []string        `json:"recommendations,omitempty"`
}

// DataQuality is the quality envelope attached to responses.
type DataQuality struct {
	Confidence   float64  `json:"confidence"`
	Completeness float64  `json:"completeness_pct"`
	Sources      []string `json:"sources,omitempty"`
	Indicators   []string `json:"indicators,omitempty"`
}

// Metadata is the request metadata envelope attached to responses.
type Metadata struct {
	RequestID     string    `json:"request_id"`
	Endpoint      string    `json:"endpoint"`
	ElapsedMs     int64     `json:"elapsed_ms"`
	SearchQueries int       `json:"search_queries"`
	Timestamp     time.Time `json:"timestamp"`
}
