// Package store records the time operations a session executes.
//
// The journal is an append-only log kept in an in-memory SQLite database.
// It lives only as long as the Journal value: nothing outlives the session.
//
// Entries are ordered by a logical sequence number from Clock, never by wall
// time, so the same scenario always produces the same journal. Every query
// orders by seq ASC.
package store
