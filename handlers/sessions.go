// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/danielhkuo/onomate/auth"
	"github.com/danielhkuo/onomate/cliparse"
	"github.com/danielhkuo/onomate/db"
	"github.com/danielhkuo/onomate/facilitator"
	"github.com/danielhkuo/onomate/middleware"
	"github.com/danielhkuo/onomate/models"
	"github.com/danielhkuo/onomate/ranking"
)

// FounderTokenHeader carries the founder token issued at session creation.
const FounderTokenHeader = "X-Founder-Token"

type SessionHandler struct {
	store *db.Store
	fac   *facilitator.Facilitator
	cfg   cliparse.Config

	// locks holds an entry only while a request for that session is running
	mu    sync.Mutex
	locks map[string]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func NewSessionHandler(store *db.Store, fac *facilitator.Facilitator, cfg cliparse.Config) *SessionHandler {
	return &SessionHandler{store: store, fac: fac, cfg: cfg, locks: make(map[string]*sessionLock)}
}

// lock serialises load-modify-save cycles on one session. The entry is
// dropped when the last holder or waiter releases it.
func (h *SessionHandler) lock(id string) func() {
	h.mu.Lock()
	l, ok := h.locks[id]
	if !ok {
		l = &sessionLock{}
		h.locks[id] = l
	}
	l.refs++
	h.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		h.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(h.locks, id)
		}
		h.mu.Unlock()
	}
}

// CreateSession handles POST /sessions
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	// The body is optional
	var req models.CreateSessionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil && !errors.Is(err, io.EOF) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	criteria := h.cfg.Criteria
	if req.Criteria != nil {
		criteria = *req.Criteria
	}
	if criteria.MinLength < 0 || criteria.MaxLength < 0 ||
		(criteria.MaxLength > 0 && criteria.MinLength > criteria.MaxLength) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid name length bounds")
		return
	}

	sessionID := uuid.NewString()
	session, reply := h.fac.NewSession(sessionID, criteria)

	if err := h.store.Save(r.Context(), session); err != nil {
		slog.Error("failed to save session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.CreateSessionResponse{
		SessionID:     sessionID,
		FounderTokens: auth.FounderTokens(sessionID, h.cfg.TokenSalt),
		Messages:      reply.Messages,
	})
}

// GetSession handles GET /sessions/{id}
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.store.Load(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	founders := make([]models.FounderView, 0, len(models.Founders))
	for _, f := range models.Founders {
		p := session.Profile(f)
		founders = append(founders, models.FounderView{
			ID:              f,
			InterviewStatus: p.Status(),
			Answered:        len(p.Responses),
		})
	}

	middleware.JSONResponse(w, http.StatusOK, models.SessionView{
		SessionID:      session.ID,
		Flow:           session.Flow,
		CurrentFounder: session.CurrentFounder,
		Founders:       founders,
		Suggestions:    session.Suggestions,
		Voting:         session.Voting,
		Transcript:     session.Transcript,
		Started:        humanize.Time(session.CreatedAt),
	})
}

// SendMessage handles POST /sessions/{id}/messages
// Requires X-Founder-Token header
func (h *SessionHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")
	founder, err := auth.FounderFromToken(sessionID, r.Header.Get(FounderTokenHeader), h.cfg.TokenSalt)
	if err != nil {
		writeError(w, err)
		return
	}

	var req models.SendMessageRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	h.update(w, r, sessionID, func(s *models.Session) (facilitator.Reply, error) {
		return h.fac.HandleMessage(r.Context(), s, founder, req.Content)
	})
}

// React handles PUT /sessions/{id}/names/{nameId}/reaction
// Requires X-Founder-Token header
func (h *SessionHandler) React(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")
	nameID := r.PathValue("nameId")
	founder, err := auth.FounderFromToken(sessionID, r.Header.Get(FounderTokenHeader), h.cfg.TokenSalt)
	if err != nil {
		writeError(w, err)
		return
	}

	var req models.ReactRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	reaction, err := models.ParseReaction(req.Reaction)
	if err != nil {
		writeError(w, err)
		return
	}

	h.update(w, r, sessionID, func(s *models.Session) (facilitator.Reply, error) {
		return h.fac.React(s, founder, nameID, reaction)
	})
}

// update loads the session under its lock, applies fn and saves the result.
// The session is not saved when fn fails.
func (h *SessionHandler) update(w http.ResponseWriter, r *http.Request, sessionID string, fn func(*models.Session) (facilitator.Reply, error)) {
	unlock := h.lock(sessionID)
	defer unlock()

	session, err := h.store.Load(r.Context(), sessionID)
	if err != nil {
		writeError(w, err)
		return
	}

	reply, err := fn(session)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.store.Save(r.Context(), session); err != nil {
		slog.Error("failed to save session", "session_id", sessionID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save session")
		return
	}

	decision, _ := session.FinalDecision()
	middleware.JSONResponse(w, http.StatusOK, models.ReplyResponse{
		Messages:       reply.Messages,
		Signal:         string(reply.Signal),
		Flow:           session.Flow,
		CurrentFounder: session.CurrentFounder,
		FinalDecision:  decision,
	})
}

// ListNames handles GET /sessions/{id}/names
// Suggestions are ordered by composite viability score
func (h *SessionHandler) ListNames(w http.ResponseWriter, r *http.Request) {
	session, err := h.store.Load(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	byName := make(map[string]models.NameSuggestion, len(session.Suggestions))
	names := make([]string, 0, len(session.Suggestions))
	for _, sg := range session.Suggestions {
		byName[sg.Name] = sg
		names = append(names, sg.Name)
	}

	ranked, err := ranking.Rank(names, nil)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]models.RankedSuggestion, 0, len(ranked))
	for _, rk := range ranked {
		out = append(out, models.RankedSuggestion{
			Suggestion: byName[rk.Name],
			Score:      rk.Score,
			Analysis:   rk.Analysis,
			Rank:       rk.Rank,
		})
	}

	middleware.JSONResponse(w, http.StatusOK, out)
}
