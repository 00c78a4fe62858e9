// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/danielhkuo/onomate/models"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrProfileNotFound = errors.New("founder profile not found")
)

// Store persists sessions and founder profiles. Writes are upserts, so the
// last write for a key wins.
type Store struct {
	conn *sql.DB
	sb   sq.StatementBuilderType
}

// NewStore uses placeholders that match dialect.
func NewStore(conn *sql.DB, dialect Dialect) *Store {
	var format sq.PlaceholderFormat = sq.Question
	if dialect == DialectPostgres {
		format = sq.Dollar
	}
	return &Store{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(format),
	}
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Save writes the session and both founder profiles in one transaction.
func (s *Store) Save(ctx context.Context, session *models.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	query, args, err := s.sb.Insert("naming_session").
		Columns("id", "phase", "payload", "created_at", "updated_at").
		Values(session.ID, string(session.Flow.Phase), string(payload), session.CreatedAt.UTC(), session.UpdatedAt.UTC()).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
    phase = EXCLUDED.phase,
    payload = EXCLUDED.payload,
    updated_at = EXCLUDED.updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build session upsert: %w", err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}

	for _, p := range []models.FounderProfile{session.FounderA, session.FounderB} {
		if err := s.upsertProfile(ctx, tx, session.ID, p, session.UpdatedAt); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit session: %w", err)
	}
	return nil
}

// Load reads a session. Founder profiles stored separately take precedence
// over the copies inside the session payload.
func (s *Store) Load(ctx context.Context, id string) (*models.Session, error) {
	query, args, err := s.sb.Select("payload").
		From("naming_session").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build session select: %w", err)
	}

	var payload string
	err = s.conn.QueryRowContext(ctx, query, args...).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query session: %w", err)
	}

	var session models.Session
	if err := json.Unmarshal([]byte(payload), &session); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}

	for _, f := range models.Founders {
		p, err := s.LoadProfile(ctx, id, f)
		if errors.Is(err, ErrProfileNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		*session.Profile(f) = p
	}

	return &session, nil
}

// SaveProfile writes one founder's profile.
func (s *Store) SaveProfile(ctx context.Context, sessionID string, p models.FounderProfile) error {
	return s.upsertProfile(ctx, s.conn, sessionID, p, time.Now())
}

// LoadProfile reads one founder's profile.
func (s *Store) LoadProfile(ctx context.Context, sessionID string, founder models.FounderID) (models.FounderProfile, error) {
	query, args, err := s.sb.Select("payload").
		From("founder_profile").
		Where(sq.Eq{"session_id": sessionID, "founder_id": string(founder)}).
		ToSql()
	if err != nil {
		return models.FounderProfile{}, fmt.Errorf("build profile select: %w", err)
	}

	var payload string
	err = s.conn.QueryRowContext(ctx, query, args...).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return models.FounderProfile{}, ErrProfileNotFound
	}
	if err != nil {
		return models.FounderProfile{}, fmt.Errorf("query profile: %w", err)
	}

	var p models.FounderProfile
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return models.FounderProfile{}, fmt.Errorf("decode profile %s/%s: %w", sessionID, founder, err)
	}
	return p, nil
}

func (s *Store) upsertProfile(ctx context.Context, ex execer, sessionID string, p models.FounderProfile, at time.Time) error {
	if p.ID != models.FounderA && p.ID != models.FounderB {
		return fmt.Errorf("%w: %q", models.ErrInvalidFounder, p.ID)
	}

	payload, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}

	query, args, err := s.sb.Insert("founder_profile").
		Columns("session_id", "founder_id", "interview_status", "payload", "updated_at").
		Values(sessionID, string(p.ID), string(p.Status()), string(payload), at.UTC()).
		Suffix(`ON CONFLICT (session_id, founder_id) DO UPDATE SET
    interview_status = EXCLUDED.interview_status,
    payload = EXCLUDED.payload,
    updated_at = EXCLUDED.updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build profile upsert: %w", err)
	}

	if _, err := ex.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert profile %s: %w", p.ID, err)
	}
	return nil
}
