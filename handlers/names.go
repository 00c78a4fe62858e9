// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"strings"

	"github.com/danielhkuo/onomate/cliparse"
	"github.com/danielhkuo/onomate/middleware"
	"github.com/danielhkuo/onomate/models"
	"github.com/danielhkuo/onomate/ranking"
	"github.com/danielhkuo/onomate/scoring"
)

// maxRankNames bounds a single ranking request.
const maxRankNames = 200

type NameHandler struct {
	cfg cliparse.Config
}

func NewNameHandler(cfg cliparse.Config) *NameHandler {
	return &NameHandler{cfg: cfg}
}

// Analyze handles POST /names/analyze
func (h *NameHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req models.AnalyzeNameRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	name := strings.TrimSpace(req.Name)
	analysis, err := scoring.Analyze(name)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.AnalyzeNameResponse{
		Analysis:      analysis,
		Score:         analysis.Composite(),
		TrademarkRisk: scoring.AssessTrademarkRisk(name),
		Domains:       scoring.DomainVariations(name),
	})
}

// Rank handles POST /names/rank
// Without criteria in the body the server's configured criteria apply
func (h *NameHandler) Rank(w http.ResponseWriter, r *http.Request) {
	var req models.RankNamesRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if len(req.Names) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "names are required")
		return
	}
	if len(req.Names) > maxRankNames {
		middleware.ErrorResponse(w, http.StatusBadRequest, "too many names")
		return
	}

	criteria := h.cfg.Criteria
	if req.Criteria != nil {
		criteria = *req.Criteria
	}

	ranked, err := ranking.Rank(req.Names, &criteria)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.RankNamesResponse{Rankings: ranked})
}
