package tapatalk

import "context"

// SessionStateKey is the session key under which a flow's pending state is
// persisted between the authorization redirect and its callback.
const SessionStateKey = "state"

// SessionStore is a keyed string store scoped to a single end-user session.
// The login flow keeps its pending state under SessionStateKey across the two
// calls of one login attempt. Implementations must be safe for concurrent use
// by independent sessions; within one session the flow is inherently
// sequential (issue URL, then a single redirect back), so no per-session
// locking is required of them.
type SessionStore interface {
	// Get returns the value stored under key, or "" when no value is
	// present.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, replacing any existing value.
	Set(ctx context.Context, key string, value string) error

	// Delete removes the value stored under key. Deleting an absent key is
	// not an error.
	Delete(ctx context.Context, key string) error
}
