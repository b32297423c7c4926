package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/edutrack/exam-prediction/internal/core/domain"
	"github.com/edutrack/exam-prediction/internal/pkg/passhash"
)

// stubAuthRepo serves a single canned account and records whether anything
// tried to write through it.
type stubAuthRepo struct {
	acct    *domain.Account
	findErr error
	wrote   bool
}

func (r *stubAuthRepo) FindByUsername(_ context.Context, username string) (*domain.Account, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	if r.acct == nil || r.acct.Username != username {
		return nil, domain.ErrAccountNotFound
	}
	clone := *r.acct
	return &clone, nil
}

func (r *stubAuthRepo) UsernameExists(context.Context, string) (bool, error) { return false, nil }
func (r *stubAuthRepo) EmailExists(context.Context, string) (bool, error)    { return false, nil }

func (r *stubAuthRepo) CreateAccount(context.Context, string, string, string, string) error {
	r.wrote = true
	return nil
}

func (r *stubAuthRepo) RoleByID(context.Context, int) (string, error) {
	return "", domain.ErrAccountNotFound
}

func (r *stubAuthRepo) UpdateRole(context.Context, string, string) error {
	r.wrote = true
	return nil
}

func TestAuthService_Authenticate_Success(t *testing.T) {
	repo := &stubAuthRepo{acct: &domain.Account{
		ID: 7, Username: "alice", Email: "a@x.com",
		PasswordHash: passhash.Hash("pw1"), Role: domain.RoleAdmin,
	}}
	svc := NewAuthService(repo, testLogger())

	identity, err := svc.Authenticate(context.Background(), "alice", "pw1")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	want := domain.Identity{ID: 7, Username: "alice", Email: "a@x.com", Role: domain.RoleAdmin}
	if identity != want {
		t.Fatalf("identity = %+v, want %+v", identity, want)
	}
}

func TestAuthService_Authenticate_NormalizesEmptyRole(t *testing.T) {
	repo := &stubAuthRepo{acct: &domain.Account{
		ID: 3, Username: "bob", Email: "b@x.com",
		PasswordHash: passhash.Hash("pw"), Role: "",
	}}
	svc := NewAuthService(repo, testLogger())

	identity, err := svc.Authenticate(context.Background(), "bob", "pw")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if identity.Role != domain.RoleUser {
		t.Fatalf("role = %q, want normalized %q", identity.Role, domain.RoleUser)
	}
	// Normalization is read-time only: nothing may be written back.
	if repo.wrote {
		t.Fatalf("authenticate wrote to the store")
	}
}

func TestAuthService_Authenticate_FailuresAreIndistinguishable(t *testing.T) {
	repo := &stubAuthRepo{acct: &domain.Account{
		ID: 1, Username: "alice", Email: "a@x.com", PasswordHash: passhash.Hash("pw1"),
	}}
	svc := NewAuthService(repo, testLogger())

	_, unknownErr := svc.Authenticate(context.Background(), "nobody", "pw1")
	_, badPwErr := svc.Authenticate(context.Background(), "alice", "wrong")

	if !errors.Is(unknownErr, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown user error = %v, want ErrInvalidCredentials", unknownErr)
	}
	if !errors.Is(badPwErr, domain.ErrInvalidCredentials) {
		t.Fatalf("bad password error = %v, want ErrInvalidCredentials", badPwErr)
	}
	if unknownErr.Error() != badPwErr.Error() {
		t.Fatalf("failure modes distinguishable: %q vs %q", unknownErr, badPwErr)
	}
}

func TestAuthService_Authenticate_LegacyPlaintextRow(t *testing.T) {
	repo := &stubAuthRepo{acct: &domain.Account{
		ID: 2, Username: "old", Email: "o@x.com", PasswordHash: "secret",
	}}
	svc := NewAuthService(repo, testLogger())

	if _, err := svc.Authenticate(context.Background(), "old", "secret"); err != nil {
		t.Fatalf("legacy plaintext row rejected: %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "old", "other"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Authenticate_StoreError(t *testing.T) {
	repo := &stubAuthRepo{findErr: fmt.Errorf("connection reset")}
	svc := NewAuthService(repo, testLogger())

	if _, err := svc.Authenticate(context.Background(), "alice", "pw"); !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}
