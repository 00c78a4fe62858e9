// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/danielhkuo/onomate/agents"
	"github.com/danielhkuo/onomate/auth"
	"github.com/danielhkuo/onomate/db"
	"github.com/danielhkuo/onomate/facilitator"
	"github.com/danielhkuo/onomate/models"
	"github.com/danielhkuo/onomate/ranking"
	"github.com/danielhkuo/onomate/testutil"
)

type stubGenerator struct {
	mu    sync.Mutex
	names []string
	err   error
}

func (g *stubGenerator) Generate(_ context.Context, req agents.GenerateRequest) ([]agents.Draft, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err != nil {
		return nil, g.err
	}
	out := make([]agents.Draft, len(g.names))
	for i, n := range g.names {
		out[i] = agents.Draft{Name: n, Category: models.CategoryCoined, Rationale: "sounds like " + n, ConfidenceScore: 75}
	}
	return out, nil
}

func (g *stubGenerator) fail(err error) {
	g.mu.Lock()
	g.err = err
	g.mu.Unlock()
}

type stubSummarizer struct{}

func (stubSummarizer) Summarize(_ context.Context, a, b models.FounderProfile) (agents.Synthesis, error) {
	return agents.Synthesis{
		AlignmentAreas: "Both want a short coined word.",
		BalanceAreas:   "Tone differs.",
		Strategy:       "Two syllables, open vowels.",
	}, nil
}

type testServer struct {
	store *db.Store
	gen   *stubGenerator
	h     *SessionHandler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	cfg := testutil.GetTestConfig()
	store := testutil.SetupTestStore(t)
	gen := &stubGenerator{names: []string{"Lumina", "Nexus"}}
	fac := facilitator.New(gen, stubSummarizer{},
		facilitator.WithRandomizer(facilitator.NewRandomizer(cfg.TieBreakSeed)),
		facilitator.WithSuggestionCount(cfg.SuggestionCount),
	)
	return &testServer{store: store, gen: gen, h: NewSessionHandler(store, fac, cfg)}
}

func (ts *testServer) create(t *testing.T, body any) models.CreateSessionResponse {
	t.Helper()
	req := testutil.MakeRequest("POST", "/sessions", body, nil)
	w := httptest.NewRecorder()
	ts.h.CreateSession(w, req)
	testutil.AssertStatus(t, w, http.StatusCreated)

	var resp models.CreateSessionResponse
	testutil.AssertJSON(t, w, &resp)
	return resp
}

func (ts *testServer) send(sessionID, token, content string) *httptest.ResponseRecorder {
	req := testutil.MakeRequest("POST", "/sessions/"+sessionID+"/messages",
		models.SendMessageRequest{Content: content},
		map[string]string{FounderTokenHeader: token})
	req.SetPathValue("id", sessionID)
	w := httptest.NewRecorder()
	ts.h.SendMessage(w, req)
	return w
}

func (ts *testServer) react(sessionID, nameID, token, reaction string) *httptest.ResponseRecorder {
	req := testutil.MakeRequest("PUT", "/sessions/"+sessionID+"/names/"+nameID+"/reaction",
		models.ReactRequest{Reaction: reaction},
		map[string]string{FounderTokenHeader: token})
	req.SetPathValue("id", sessionID)
	req.SetPathValue("nameId", nameID)
	w := httptest.NewRecorder()
	ts.h.React(w, req)
	return w
}

func (ts *testServer) mustSend(t *testing.T, sessionID, token, content string) models.ReplyResponse {
	t.Helper()
	w := ts.send(sessionID, token, content)
	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.ReplyResponse
	testutil.AssertJSON(t, w, &resp)
	return resp
}

func (ts *testServer) load(t *testing.T, id string) *models.Session {
	t.Helper()
	s, err := ts.store.Load(context.Background(), id)
	if err != nil {
		t.Fatalf("Failed to load session: %v", err)
	}
	return s
}

// toNaming answers every interview question and asks for names.
func (ts *testServer) toNaming(t *testing.T, created models.CreateSessionResponse) {
	t.Helper()
	for _, f := range models.Founders {
		for i := range models.InterviewQuestionCount {
			ts.mustSend(t, created.SessionID, created.FounderTokens[f], fmt.Sprintf("answer %d", i+1))
		}
	}
	ts.mustSend(t, created.SessionID, created.FounderTokens[models.FounderA], "ready")
	resp := ts.mustSend(t, created.SessionID, created.FounderTokens[models.FounderA], "ready")
	if resp.Flow.Phase != models.PhaseNaming {
		t.Fatalf("Expected naming phase, got %s", resp.Flow.Phase)
	}
}

func suggestionID(t *testing.T, s *models.Session, name string) string {
	t.Helper()
	for _, sg := range s.Suggestions {
		if sg.Name == name {
			return sg.ID
		}
	}
	t.Fatalf("No suggestion named %s", name)
	return ""
}

func TestCreateSession(t *testing.T) {
	ts := newTestServer(t)
	resp := ts.create(t, nil)

	if resp.SessionID == "" {
		t.Fatal("Expected a session ID")
	}
	if len(resp.FounderTokens) != 2 {
		t.Fatalf("Expected two founder tokens, got %d", len(resp.FounderTokens))
	}
	if resp.FounderTokens[models.FounderA] == resp.FounderTokens[models.FounderB] {
		t.Error("Expected distinct founder tokens")
	}
	if len(resp.Messages) != 2 {
		t.Errorf("Expected welcome and first question, got %d messages", len(resp.Messages))
	}

	s := ts.load(t, resp.SessionID)
	if s.Flow.Phase != models.PhaseIntake || !s.Criteria.CulturalSensitivity {
		t.Errorf("Unexpected stored session: %+v %+v", s.Flow, s.Criteria)
	}
}

func TestCreateSession_Criteria(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.create(t, models.CreateSessionRequest{Criteria: &ranking.Criteria{MaxLength: 6}})
	if s := ts.load(t, resp.SessionID); s.Criteria.MaxLength != 6 || s.Criteria.CulturalSensitivity {
		t.Errorf("Expected request criteria to replace defaults, got %+v", s.Criteria)
	}

	req := testutil.MakeRequest("POST", "/sessions", models.CreateSessionRequest{
		Criteria: &ranking.Criteria{MinLength: 9, MaxLength: 4},
	}, nil)
	w := httptest.NewRecorder()
	ts.h.CreateSession(w, req)
	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestGetSession(t *testing.T) {
	ts := newTestServer(t)
	created := ts.create(t, nil)
	ts.mustSend(t, created.SessionID, created.FounderTokens[models.FounderA], "Something playful")

	req := testutil.MakeRequest("GET", "/sessions/"+created.SessionID, nil, nil)
	req.SetPathValue("id", created.SessionID)
	w := httptest.NewRecorder()
	ts.h.GetSession(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var view models.SessionView
	testutil.AssertJSON(t, w, &view)
	if len(view.Founders) != 2 || view.Founders[0].Answered != 1 || view.Founders[1].Answered != 0 {
		t.Errorf("Unexpected founder views: %+v", view.Founders)
	}
	if view.Founders[0].InterviewStatus != models.InterviewInProgress {
		t.Errorf("Expected founder a in progress, got %s", view.Founders[0].InterviewStatus)
	}
	if view.Started == "" {
		t.Error("Expected a humanized start time")
	}

	req = testutil.MakeRequest("GET", "/sessions/missing", nil, nil)
	req.SetPathValue("id", "missing")
	w = httptest.NewRecorder()
	ts.h.GetSession(w, req)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestSendMessage_Errors(t *testing.T) {
	ts := newTestServer(t)
	created := ts.create(t, nil)
	other := ts.create(t, nil)
	salt := testutil.GetTestConfig().TokenSalt

	testCases := []struct {
		name      string
		sessionID string
		token     string
		content   string
		expected  int
	}{
		{"missing token", created.SessionID, "", "hi", http.StatusUnauthorized},
		{"token from another session", created.SessionID, other.FounderTokens[models.FounderA], "hi", http.StatusUnauthorized},
		{"unknown session", "missing", auth.GenerateFounderToken("missing", models.FounderA, salt), "hi", http.StatusNotFound},
		{"empty content", created.SessionID, created.FounderTokens[models.FounderA], "   ", http.StatusBadRequest},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := ts.send(tc.sessionID, tc.token, tc.content)
			testutil.AssertStatus(t, w, tc.expected)
		})
	}

	if s := ts.load(t, created.SessionID); len(s.Transcript) != 2 {
		t.Errorf("Expected rejected messages to leave the transcript alone, got %d entries", len(s.Transcript))
	}
}

func TestSendMessage_GeneratorUnavailable(t *testing.T) {
	ts := newTestServer(t)
	created := ts.create(t, nil)
	for _, f := range models.Founders {
		for i := range models.InterviewQuestionCount {
			ts.mustSend(t, created.SessionID, created.FounderTokens[f], fmt.Sprintf("answer %d", i+1))
		}
	}
	ts.mustSend(t, created.SessionID, created.FounderTokens[models.FounderA], "ready")
	before := ts.load(t, created.SessionID)

	ts.gen.fail(errors.New("upstream timeout"))
	w := ts.send(created.SessionID, created.FounderTokens[models.FounderB], "ready")
	testutil.AssertStatus(t, w, http.StatusServiceUnavailable)

	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	if !resp.Retryable {
		t.Error("Expected a retryable error")
	}

	after := ts.load(t, created.SessionID)
	if len(after.Transcript) != len(before.Transcript) || len(after.Suggestions) != 0 {
		t.Errorf("Expected session unchanged, transcript %d -> %d", len(before.Transcript), len(after.Transcript))
	}
}

func TestSessionOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	created := ts.create(t, nil)
	tokenA := created.FounderTokens[models.FounderA]
	tokenB := created.FounderTokens[models.FounderB]
	ts.toNaming(t, created)

	s := ts.load(t, created.SessionID)
	lumina := suggestionID(t, s, "Lumina")
	nexus := suggestionID(t, s, "Nexus")

	// Ranked listing
	req := testutil.MakeRequest("GET", "/sessions/"+created.SessionID+"/names", nil, nil)
	req.SetPathValue("id", created.SessionID)
	w := httptest.NewRecorder()
	ts.h.ListNames(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)
	var ranked []models.RankedSuggestion
	testutil.AssertJSON(t, w, &ranked)
	if len(ranked) != 2 || ranked[0].Rank != 1 || ranked[0].Score < ranked[1].Score {
		t.Fatalf("Unexpected ranking: %+v", ranked)
	}
	if ranked[0].Suggestion.ID == "" {
		t.Error("Expected ranked entries to carry the suggestion")
	}

	for _, step := range []struct {
		token, id, reaction string
	}{
		{tokenA, lumina, "love"},
		{tokenA, nexus, "like"},
		{tokenB, lumina, "like"},
	} {
		testutil.AssertStatus(t, ts.react(created.SessionID, step.id, step.token, step.reaction), http.StatusOK)
	}

	w = ts.react(created.SessionID, nexus, tokenB, "Dislike")
	testutil.AssertStatus(t, w, http.StatusOK)
	var reacted models.ReplyResponse
	testutil.AssertJSON(t, w, &reacted)
	if reacted.Flow.Phase != models.PhaseConvergence {
		t.Fatalf("Expected convergence after full coverage, got %s", reacted.Flow.Phase)
	}

	final := ts.mustSend(t, created.SessionID, tokenB, "Let's go with Lumina")
	if final.FinalDecision != "Lumina" || final.Flow.Phase != models.PhaseCompleted {
		t.Errorf("Expected Lumina decided, got %q in %s", final.FinalDecision, final.Flow.Phase)
	}
	if final.Signal != string(facilitator.SignalDecided) {
		t.Errorf("Expected decided signal, got %q", final.Signal)
	}

	// Completed sessions refuse reactions
	testutil.AssertStatus(t, ts.react(created.SessionID, nexus, tokenA, "love"), http.StatusConflict)
}

func TestReact_Errors(t *testing.T) {
	ts := newTestServer(t)
	created := ts.create(t, nil)
	ts.toNaming(t, created)
	s := ts.load(t, created.SessionID)
	token := created.FounderTokens[models.FounderA]

	testutil.AssertStatus(t, ts.react(created.SessionID, "missing", token, "love"), http.StatusNotFound)
	testutil.AssertStatus(t, ts.react(created.SessionID, s.Suggestions[0].ID, token, "adore"), http.StatusBadRequest)
	testutil.AssertStatus(t, ts.react(created.SessionID, s.Suggestions[0].ID, "bogus", "love"), http.StatusUnauthorized)
}

// TestConcurrentMessages verifies that simultaneous answers from one founder
// are applied one at a time without losing any.
func TestConcurrentMessages(t *testing.T) {
	ts := newTestServer(t)
	created := ts.create(t, nil)
	token := created.FounderTokens[models.FounderA]

	var wg sync.WaitGroup
	codes := make([]int, models.InterviewQuestionCount)
	for i := range models.InterviewQuestionCount {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			codes[i] = ts.send(created.SessionID, token, fmt.Sprintf("concurrent answer %d", i)).Code
		}(i)
	}
	wg.Wait()

	for i, code := range codes {
		if code != http.StatusOK {
			t.Errorf("Request %d: expected 200, got %d", i, code)
		}
	}

	s := ts.load(t, created.SessionID)
	if n := len(s.FounderA.Responses); n != models.InterviewQuestionCount {
		t.Errorf("Expected %d recorded answers, got %d", models.InterviewQuestionCount, n)
	}
	if s.CurrentFounder != models.FounderB {
		t.Errorf("Expected turn to pass to founder b, got %s", s.CurrentFounder)
	}

	ts.h.mu.Lock()
	defer ts.h.mu.Unlock()
	if n := len(ts.h.locks); n != 0 {
		t.Errorf("Expected idle session locks to be released, %d remain", n)
	}
}

func TestSessionLock_Serialises(t *testing.T) {
	h := NewSessionHandler(nil, nil, testutil.GetTestConfig())

	unlock := h.lock("s1")
	acquired := make(chan struct{})
	done := make(chan struct{})
	go func() {
		release := h.lock("s1")
		close(acquired)
		release()
		close(done)
	}()

	// A different session is never blocked
	h.lock("s2")()

	select {
	case <-acquired:
		t.Fatal("Second holder acquired the lock while it was held")
	default:
	}

	unlock()
	<-done

	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.locks) != 0 {
		t.Errorf("Expected no lock entries after release, got %d", len(h.locks))
	}
}
