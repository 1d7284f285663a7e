package store

import (
	"context"
	"fmt"
)

// Session describes one federation session.
type Session struct {
	ID      string
	Name    string
	Domain  string
	Epsilon float64

	// StartedAt is the clock position when the session began.
	StartedAt int64
}

// Entry is one executed operation.
type Entry struct {
	SessionID string
	Seq       int64
	Op        string
	Args      []string

	// Result is the formatted result, empty when the operation failed.
	Result string

	// ErrorCode is the failure code, empty when the operation succeeded.
	ErrorCode string
}

// Failed reports whether the operation returned an error.
func (e Entry) Failed() bool {
	return e.ErrorCode != ""
}

// BeginSession registers a session and stamps it with the current clock
// position. A session ID may only be registered once.
func (j *Journal) BeginSession(ctx context.Context, s Session) (Session, error) {
	if s.ID == "" {
		return Session{}, fmt.Errorf("begin session: empty session id")
	}
	s.StartedAt = j.clock.Current()

	err := j.exec(ctx, "begin session", `
		INSERT INTO sessions (id, name, domain, epsilon, started_at)
		VALUES (?, ?, ?, ?, ?)
	`, s.ID, s.Name, s.Domain, s.Epsilon, s.StartedAt)
	if err != nil {
		return Session{}, err
	}
	return s, nil
}

// Record appends e to its session, assigning the next sequence number.
// The session must have been registered with BeginSession.
func (j *Journal) Record(ctx context.Context, e Entry) (Entry, error) {
	args, err := marshalArgs(e.Args)
	if err != nil {
		return Entry{}, fmt.Errorf("record %s: %w", e.Op, err)
	}

	e.Seq = j.clock.Next()
	err = j.exec(ctx, "record "+e.Op, `
		INSERT INTO operations (session_id, seq, op, args, result, error_code)
		VALUES (?, ?, ?, ?, ?, ?)
	`, e.SessionID, e.Seq, e.Op, args, e.Result, e.ErrorCode)
	if err != nil {
		return Entry{}, err
	}
	return e, nil
}
