package main

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/meridian-specialty/underwriting-cli/internal/acord"
	"github.com/meridian-specialty/underwriting-cli/internal/model"
	"github.com/meridian-specialty/underwriting-cli/internal/narrative"
	"github.com/meridian-specialty/underwriting-cli/internal/risk"
	"github.com/meridian-specialty/underwriting-cli/internal/store"
)

// apiServer carries the handler dependencies. gen is nil when no API key is
// configured; narratives then fall back to the template builder.
type apiServer struct {
	store  store.Store
	scorer *risk.Scorer
	gen    narrative.Generator
}

// scoreRequest is one submission: the extracted ACORD field map plus an
// optional explicit claims list. Claims supplied here replace any Loss
// History embedded in the field map.
type scoreRequest struct {
	PolicyID  string               `json:"policy_id,omitempty"`
	Fields    map[string]any       `json:"fields"`
	Claims    []model.ClaimsRecord `json:"claims,omitempty"`
	Narrative bool                 `json:"narrative,omitempty"`
	Save      bool                 `json:"save,omitempty"`
}

type scoreResponse struct {
	PolicyID     string                `json:"policy_id,omitempty"`
	AssessmentID string                `json:"assessment_id,omitempty"`
	NamedInsured string                `json:"named_insured,omitempty"`
	Result       model.RiskScoreResult `json:"result"`
	Summary      string                `json:"summary"`
}

type batchScoreRequest struct {
	Properties []map[string]any `json:"properties"`
	Save       bool             `json:"save,omitempty"`
}

type batchScoreResponse struct {
	Results   []scoreResponse          `json:"results"`
	Portfolio narrative.PortfolioStats `json:"portfolio"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("write response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *apiServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *apiServer) handleScore(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Fields) == 0 {
		writeError(w, http.StatusBadRequest, "fields is required")
		return
	}

	resp, err := s.scoreOne(r, req)
	if err != nil {
		zap.L().Error("score request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "scoring failed")
		return
	}
	writeJSON(w, http.StatusOK, *resp)
}

// scoreOne runs the scoring pipeline for a single submission and optionally
// persists the assessment.
func (s *apiServer) scoreOne(r *http.Request, req scoreRequest) (*scoreResponse, error) {
	ctx := r.Context()

	rec, claims := acord.RecordFromMap(req.Fields)
	if len(req.Claims) > 0 {
		claims = acord.ClaimsTable(req.Claims)
	}

	res := s.scorer.Score(rec, claims)

	summary := narrative.Build(res)
	if req.Narrative {
		summary = narrative.SummaryOrFallback(ctx, s.gen, res)
	}

	resp := scoreResponse{
		PolicyID:     req.PolicyID,
		NamedInsured: rec.NamedInsured,
		Result:       res,
		Summary:      summary,
	}

	if req.Save {
		policyID := req.PolicyID
		if policyID == "" {
			policyID = rec.AgencyCustomerID
		}
		saved, err := s.store.SaveAssessment(ctx, model.Assessment{
			PolicyID:     policyID,
			NamedInsured: rec.NamedInsured,
			Address:      rec.DisplayAddress(),
			TIV:          risk.ParseNumeric(rec.TIV, 0),
			Result:       res,
		})
		if err != nil {
			return nil, err
		}
		resp.AssessmentID = saved.ID
		resp.PolicyID = saved.PolicyID
	}

	return &resp, nil
}

func (s *apiServer) handleScoreBatch(w http.ResponseWriter, r *http.Request) {
	var req batchScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Properties) == 0 {
		writeError(w, http.StatusBadRequest, "properties is required")
		return
	}

	results := make([]model.RiskScoreResult, 0, len(req.Properties))
	tivs := make([]float64, 0, len(req.Properties))
	responses := make([]scoreResponse, 0, len(req.Properties))

	for _, fields := range req.Properties {
		resp, err := s.scoreOne(r, scoreRequest{Fields: fields, Save: req.Save})
		if err != nil {
			zap.L().Error("batch score request failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "scoring failed")
			return
		}
		rec, _ := acord.RecordFromMap(fields)
		results = append(results, resp.Result)
		tivs = append(tivs, risk.ParseNumeric(rec.TIV, 0))
		responses = append(responses, *resp)
	}

	writeJSON(w, http.StatusOK, batchScoreResponse{
		Results:   responses,
		Portfolio: narrative.Aggregate(results, tivs),
	})
}

func (s *apiServer) handleListAssessments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.AssessmentFilter{
		PolicyID:  q.Get("policy_id"),
		RiskLevel: model.RiskLevel(q.Get("risk_level")),
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		filter.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid offset")
			return
		}
		filter.Offset = n
	}

	out, err := s.store.ListAssessments(r.Context(), filter)
	if err != nil {
		zap.L().Error("list assessments failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "list failed")
		return
	}
	if out == nil {
		out = []model.Assessment{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"assessments": out, "count": len(out)})
}

func (s *apiServer) handleGetAssessment(w http.ResponseWriter, r *http.Request) {
	a, err := s.store.GetAssessment(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "assessment not found")
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *apiServer) handleDeleteAssessment(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteAssessment(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusNotFound, "assessment not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
