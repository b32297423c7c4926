package service

import (
	"sync"

	"github.com/google/uuid"

	"github.com/edutrack/exam-prediction/internal/core/domain"
)

// SessionRegistry maps opaque session identifiers to authenticated
// identities for the lifetime of the process. Entries are immutable copies:
// changes to an account after login are not reflected in its sessions.
//
// There is deliberately no expiry and no logout: sessions live until the
// process exits. A single lock guards the map; entries themselves never
// change after creation.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]domain.Identity
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{sessions: make(map[string]domain.Identity)}
}

// Create mints a session for the identity and returns its identifier.
// Identifiers are 128-bit random UUIDs, so collisions are negligible by
// construction. Creation always succeeds.
func (r *SessionRegistry) Create(identity domain.Identity) string {
	sid := uuid.NewString()
	r.mu.Lock()
	r.sessions[sid] = identity
	r.mu.Unlock()
	return sid
}

// Lookup returns the identity bound to sid, if any.
func (r *SessionRegistry) Lookup(sid string) (domain.Identity, bool) {
	r.mu.RLock()
	identity, ok := r.sessions[sid]
	r.mu.RUnlock()
	return identity, ok
}

// Len reports the number of live sessions.
func (r *SessionRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// RequireSession resolves sid to an identity or fails with
// domain.ErrUnauthorized.
func (r *SessionRegistry) RequireSession(sid string) (domain.Identity, error) {
	identity, ok := r.Lookup(sid)
	if !ok {
		return domain.Identity{}, domain.ErrUnauthorized
	}
	return identity, nil
}

// RequireRole resolves sid and additionally demands an exact role match.
// A missing session is Unauthorized; a valid session with the wrong role
// is Forbidden. Callers map these to 401 and 403 respectively.
func (r *SessionRegistry) RequireRole(sid, role string) (domain.Identity, error) {
	identity, err := r.RequireSession(sid)
	if err != nil {
		return domain.Identity{}, err
	}
	if identity.Role != role {
		return domain.Identity{}, domain.ErrForbidden
	}
	return identity, nil
}
