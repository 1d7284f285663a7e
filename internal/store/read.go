package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrSessionNotFound is returned when a session ID was never registered.
var ErrSessionNotFound = errors.New("session not found")

// Session returns the registered session with the given ID.
func (j *Journal) Session(ctx context.Context, id string) (Session, error) {
	var s Session
	err := j.db.QueryRowContext(ctx, `
		SELECT id, name, domain, epsilon, started_at
		FROM sessions
		WHERE id = ?
	`, id).Scan(&s.ID, &s.Name, &s.Domain, &s.Epsilon, &s.StartedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	if err != nil {
		return Session{}, fmt.Errorf("query session: %w", err)
	}
	return s, nil
}

// Entries returns every operation of a session in execution order.
// Returns an empty slice (not nil) if nothing was recorded.
func (j *Journal) Entries(ctx context.Context, sessionID string) ([]Entry, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT session_id, seq, op, args, result, error_code
		FROM operations
		WHERE session_id = ?
		ORDER BY seq ASC
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query operations: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		var args string
		if err := rows.Scan(&e.SessionID, &e.Seq, &e.Op, &args, &e.Result, &e.ErrorCode); err != nil {
			return nil, fmt.Errorf("scan operation: %w", err)
		}
		if e.Args, err = unmarshalArgs(args); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate operations: %w", err)
	}
	return entries, nil
}

// CountByOp returns how many times op ran in a session. An empty op counts
// every operation.
func (j *Journal) CountByOp(ctx context.Context, sessionID, op string) (int, error) {
	query := `SELECT COUNT(*) FROM operations WHERE session_id = ?`
	args := []any{sessionID}
	if op != "" {
		query += ` AND op = ?`
		args = append(args, op)
	}
	return j.count(ctx, query, args...)
}

// CountByError returns how many operations of a session failed with code.
// An empty code counts every failure.
func (j *Journal) CountByError(ctx context.Context, sessionID, code string) (int, error) {
	query := `SELECT COUNT(*) FROM operations WHERE session_id = ? AND error_code != ''`
	args := []any{sessionID}
	if code != "" {
		query = `SELECT COUNT(*) FROM operations WHERE session_id = ? AND error_code = ?`
		args = append(args, code)
	}
	return j.count(ctx, query, args...)
}

func (j *Journal) count(ctx context.Context, query string, args ...any) (int, error) {
	var n int
	if err := j.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count operations: %w", err)
	}
	return n, nil
}
