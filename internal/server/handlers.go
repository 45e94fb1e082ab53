package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/naija-prop/intel-cli/internal/model"
	"github.com/naija-prop/intel-cli/internal/query"
	"github.com/naija-prop/intel-cli/internal/score"
)

// defaultAskHalfWidthKM is the corridor half-width assumed when a free-text
// route question names no width.
const defaultAskHalfWidthKM = 5.0

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"zones":  s.handle.Snapshot().Len(),
	})
}

type zoneSummary struct {
	Name  string   `json:"name"`
	State string   `json:"state"`
	LGA   string   `json:"lga"`
	Alias []string `json:"aliases,omitempty"`
}

func (s *Server) handleZones(w http.ResponseWriter, r *http.Request) {
	zones := s.handle.Snapshot().All()
	out := make([]zoneSummary, 0, len(zones))
	for _, z := range zones {
		out = append(out, zoneSummary{Name: z.Name, State: z.State, LGA: z.LGA, Alias: z.Aliases})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleZone(w http.ResponseWriter, r *http.Request) {
	zone, err := s.facade.ResolveRef(chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, zone)
}

type resolveResponse struct {
	Resolved   bool              `json:"resolved"`
	Candidates []model.Candidate `json:"candidates"`
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	candidates, err := s.facade.Candidates(r.URL.Query().Get("q"))
	if err != nil {
		var unresolved *model.UnresolvedError
		if errors.As(err, &unresolved) {
			writeJSON(w, http.StatusOK, resolveResponse{Resolved: false, Candidates: unresolved.Candidates})
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resolveResponse{Resolved: true, Candidates: candidates})
}

type evaluateRequest struct {
	Location     string  `json:"location"`
	Price        float64 `json:"price"`
	Strategy     string  `json:"strategy,omitempty"`
	Budget       float64 `json:"budget,omitempty"`
	BudgetAs     string  `json:"budget_as,omitempty"`
	Bedrooms     int     `json:"bedrooms,omitempty"`
	UnitAreaSqm  float64 `json:"unit_area_sqm,omitempty"`
	HoldingYears int     `json:"holding_years,omitempty"`
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	strategy, err := score.ByName(req.Strategy)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := s.facade.Evaluate(req.Location, req.Price, score.Options{
		Strategy:     strategy,
		UnitAreaSqm:  req.UnitAreaSqm,
		Bedrooms:     req.Bedrooms,
		Budget:       req.Budget,
		BudgetAs:     model.BudgetInterpretation(req.BudgetAs),
		HoldingYears: req.HoldingYears,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleCorridor(w http.ResponseWriter, r *http.Request) {
	var q model.CorridorQuery
	if !decodeBody(w, r, &q) {
		return
	}
	result, err := s.facade.SearchCorridor(q)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleCorridorBuffer(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	halfWidth, err := strconv.ParseFloat(params.Get("half_width_km"), 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "half_width_km must be a number"})
		return
	}

	raw, err := s.facade.CorridorBuffer(params.Get("origin"), params.Get("destination"), halfWidth)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}

type compareRequest struct {
	Origin       string   `json:"origin"`
	Destinations []string `json:"destinations"`
	HalfWidthKM  float64  `json:"half_width_km"`
	BudgetNGN    float64  `json:"budget_ngn,omitempty"`
	Bedrooms     int      `json:"bedrooms,omitempty"`
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	if !decodeBody(w, r, &req) {
		return
	}
	options, err := s.facade.CompareRoutes(req.Origin, req.Destinations, model.CorridorQuery{
		HalfWidthKM: req.HalfWidthKM,
		BudgetNGN:   req.BudgetNGN,
		Bedrooms:    req.Bedrooms,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, options)
}

type askRequest struct {
	Text string `json:"text"`
}

type askResponse struct {
	Parsed   query.ParsedQuery     `json:"parsed"`
	Score    *model.ScoreResult    `json:"score,omitempty"`
	Corridor *model.CorridorResult `json:"corridor,omitempty"`
}

// handleAsk parses a free-text question and dispatches it: route questions
// run a corridor search, location questions an evaluation (price-less when
// the text names no amount).
func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if !decodeBody(w, r, &req) {
		return
	}

	parsed := query.ParseQuery(req.Text)
	resp := askResponse{Parsed: parsed}

	switch {
	case parsed.IsRoute():
		result, err := s.facade.SearchCorridor(model.CorridorQuery{
			Origin:      parsed.Origin,
			Destination: parsed.Destination,
			HalfWidthKM: defaultAskHalfWidthKM,
			BudgetNGN:   parsed.AmountNGN,
			Bedrooms:    parsed.Bedrooms,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		resp.Corridor = result

	case parsed.Location != "" && parsed.AmountNGN > 0:
		result, err := s.facade.Evaluate(parsed.Location, parsed.AmountNGN, score.Options{Bedrooms: parsed.Bedrooms})
		if err != nil {
			writeError(w, err)
			return
		}
		resp.Score = result

	case parsed.Location != "":
		result, err := s.facade.Profile(parsed.Location)
		if err != nil {
			writeError(w, err)
			return
		}
		resp.Score = result

	default:
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "could not find a location in the question"})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if err := s.handle.Reload(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"zones": s.handle.Snapshot().Len()})
}
