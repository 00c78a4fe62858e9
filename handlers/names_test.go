// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/onomate/models"
	"github.com/danielhkuo/onomate/ranking"
	"github.com/danielhkuo/onomate/scoring"
	"github.com/danielhkuo/onomate/testutil"
)

func TestAnalyzeName(t *testing.T) {
	h := NewNameHandler(testutil.GetTestConfig())

	req := testutil.MakeRequest("POST", "/names/analyze", models.AnalyzeNameRequest{Name: " Lumina "}, nil)
	w := httptest.NewRecorder()
	h.Analyze(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.AnalyzeNameResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Analysis.Name != "Lumina" || resp.Analysis.Length != 6 {
		t.Errorf("Expected trimmed name analysed, got %+v", resp.Analysis)
	}
	if resp.Score <= 0 || resp.Score > 1 {
		t.Errorf("Expected score in (0, 1], got %f", resp.Score)
	}
	if resp.TrademarkRisk != scoring.AssessTrademarkRisk("Lumina") {
		t.Errorf("Unexpected trademark risk %s", resp.TrademarkRisk)
	}
	if len(resp.Domains) == 0 || resp.Domains[0] != "lumina.com" {
		t.Errorf("Unexpected domains: %v", resp.Domains)
	}
}

func TestAnalyzeName_Empty(t *testing.T) {
	h := NewNameHandler(testutil.GetTestConfig())

	for _, body := range []any{models.AnalyzeNameRequest{Name: "   "}, "not an object"} {
		req := testutil.MakeRequest("POST", "/names/analyze", body, nil)
		w := httptest.NewRecorder()
		h.Analyze(w, req)
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	}
}

func TestRankNames(t *testing.T) {
	h := NewNameHandler(testutil.GetTestConfig())

	testCases := []struct {
		name     string
		req      models.RankNamesRequest
		expected []string
	}{
		{
			name:     "configured criteria filter cultural concerns",
			req:      models.RankNamesRequest{Names: []string{"Shellworks", "Lumina"}},
			expected: []string{"Lumina"},
		},
		{
			name: "request criteria replace configured ones",
			req: models.RankNamesRequest{
				Names:    []string{"Lumina", "Streamline", "Nexus"},
				Criteria: &ranking.Criteria{MaxLength: 6},
			},
			expected: []string{"Lumina", "Nexus"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/names/rank", tc.req, nil)
			w := httptest.NewRecorder()
			h.Rank(w, req)
			testutil.AssertStatus(t, w, http.StatusOK)

			var resp models.RankNamesResponse
			testutil.AssertJSON(t, w, &resp)
			if len(resp.Rankings) != len(tc.expected) {
				t.Fatalf("Expected %d rankings, got %+v", len(tc.expected), resp.Rankings)
			}

			got := map[string]bool{}
			for i, r := range resp.Rankings {
				got[r.Name] = true
				if r.Rank != i+1 {
					t.Errorf("Expected rank %d, got %d", i+1, r.Rank)
				}
				if i > 0 && r.Score > resp.Rankings[i-1].Score {
					t.Error("Expected descending scores")
				}
			}
			for _, n := range tc.expected {
				if !got[n] {
					t.Errorf("Expected %s in rankings", n)
				}
			}
		})
	}
}

func TestRankNames_Errors(t *testing.T) {
	h := NewNameHandler(testutil.GetTestConfig())

	for name, body := range map[string]any{
		"no names":   models.RankNamesRequest{},
		"blank name": models.RankNamesRequest{Names: []string{"Lumina", " "}},
	} {
		t.Run(name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/names/rank", body, nil)
			w := httptest.NewRecorder()
			h.Rank(w, req)
			testutil.AssertStatus(t, w, http.StatusBadRequest)
		})
	}
}
