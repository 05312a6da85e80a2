// Package session provides the key-value storage the assistant core keeps
// per-session state in. Backends only need get/set with sequential
// consistency per session; expiry and teardown stay with the transport.
package session

import "context"

type Store interface {
	// Get returns the stored value for (sessionID, key) and whether one
	// exists. Absence is not an error.
	Get(ctx context.Context, sessionID, key string) ([]byte, bool, error)
	// Set stores or replaces the value for (sessionID, key).
	Set(ctx context.Context, sessionID, key string, value []byte) error
}
