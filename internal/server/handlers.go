package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sells-group/comparables-api/internal/service"
)

const (
	minNameLen = 2
	maxNameLen = 100

	maxComparables = 50
)

// companyRequest is the shared request body for the company endpoints.
// Pointer fields distinguish "absent" from zero values during validation.
type companyRequest struct {
	Name               string `json:"name"`
	Detailed           bool   `json:"detailed,omitempty"`
	MaxResults         *int   `json:"max_results,omitempty"`
	MinSimilarity      *int   `json:"min_similarity,omitempty"`
	PreferSameCountry  bool   `json:"prefer_same_country,omitempty"`
	IncludeComparables *bool  `json:"include_comparables,omitempty"`
	MaxComparables     *int   `json:"max_comparables,omitempty"`
}

// validate checks field presence and ranges, returning one message per
// violated constraint.
func (req *companyRequest) validate() []string {
	var problems []string

	if len(req.Name) < minNameLen || len(req.Name) > maxNameLen {
		problems = append(problems, fmt.Sprintf("name must be %d-%d characters", minNameLen, maxNameLen))
	}
	if req.MaxResults != nil && (*req.MaxResults < 1 || *req.MaxResults > maxComparables) {
		problems = append(problems, fmt.Sprintf("max_results must be 1-%d", maxComparables))
	}
	if req.MinSimilarity != nil && (*req.MinSimilarity < 0 || *req.MinSimilarity > 100) {
		problems = append(problems, "min_similarity must be 0-100")
	}
	if req.MaxComparables != nil && (*req.MaxComparables < 1 || *req.MaxComparables > maxComparables) {
		problems = append(problems, fmt.Sprintf("max_comparables must be 1-%d", maxComparables))
	}
	return problems
}

// decodeRequest parses and validates the body, writing the 400 response
// itself when the request is unusable.
func decodeRequest(w http.ResponseWriter, r *http.Request) (*companyRequest, bool) {
	var req companyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, []string{"invalid JSON body"})
		return nil, false
	}
	if problems := req.validate(); len(problems) > 0 {
		writeValidationError(w, problems)
		return nil, false
	}
	return &req, true
}

func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}

	res, err := s.svc.Lookup(r.Context(), req.Name, service.LookupOptions{Detailed: req.Detailed})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleComparables(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}

	opts := service.ComparablesOptions{PreferSameCountry: req.PreferSameCountry}
	if req.MaxResults != nil {
		opts.MaxResults = *req.MaxResults
	}
	if req.MinSimilarity != nil {
		opts.MinSimilarity = *req.MinSimilarity
	}

	res, err := s.svc.Comparables(r.Context(), req.Name, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}

	opts := service.AnalyzeOptions{
		IncludeComparables: true,
		PreferSameCountry:  req.PreferSameCountry,
	}
	if req.IncludeComparables != nil {
		opts.IncludeComparables = *req.IncludeComparables
	}
	if req.MaxComparables != nil {
		opts.MaxComparables = *req.MaxComparables
	}
	if req.MinSimilarity != nil {
		opts.MinSimilarity = *req.MinSimilarity
	}

	res, err := s.svc.Analyze(r.Context(), req.Name, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
