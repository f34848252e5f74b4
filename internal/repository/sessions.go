// Package repository holds the session history stores.
package repository

import "context"

// SessionRepository stores per-session conversational history as an
// ordered slice of turns, alternating question/answer, most recent
// last. Windowing (truncation to the configured history limit) is the
// orchestrator's job; the store persists whatever it is given.
//
// Concurrent SaveHistory calls for the same session id are not
// serialized; the last writer wins. Tolerated by design.
type SessionRepository interface {
	// History returns the stored turns for a session, or an empty
	// slice for an unknown session id.
	History(ctx context.Context, sessionID string) ([]string, error)
	// SaveHistory replaces the stored turns for a session, creating
	// the session if it is new.
	SaveHistory(ctx context.Context, sessionID string, turns []string) error
}
