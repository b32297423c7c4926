package service

import (
	"context"
	"errors"
	"testing"

	"github.com/edutrack/exam-prediction/internal/core/domain"
)

// Full account lifecycle against the in-memory store: registration,
// duplicate rejection, login, wrong password, session, role check.
func TestAccountLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := newFakeAccountRepo()
	accounts := NewAccountService(repo, testLogger())
	auth := NewAuthService(repo, testLogger())
	sessions := NewSessionRegistry()

	if err := accounts.Register(ctx, "alice", "pw1", "a@x.com", ""); err != nil {
		t.Fatalf("registration failed: %v", err)
	}
	if err := accounts.Register(ctx, "alice", "pw2", "b@x.com", ""); !errors.Is(err, domain.ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}

	identity, err := auth.Authenticate(ctx, "alice", "pw1")
	if err != nil {
		t.Fatalf("authentication failed: %v", err)
	}
	if identity.Role != domain.RoleUser {
		t.Fatalf("role = %q, want %q", identity.Role, domain.RoleUser)
	}

	if _, err := auth.Authenticate(ctx, "alice", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	sid := sessions.Create(identity)
	if got, err := sessions.RequireSession(sid); err != nil || got != identity {
		t.Fatalf("session lookup = %+v, %v", got, err)
	}
	if _, err := sessions.RequireRole(sid, domain.RoleAdmin); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for user session, got %v", err)
	}
}
