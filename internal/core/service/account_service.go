package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/edutrack/exam-prediction/internal/core/domain"
	"github.com/edutrack/exam-prediction/internal/core/ports"
	"github.com/edutrack/exam-prediction/internal/pkg/passhash"
)

// Bootstrap account constants. The well-known admin/admin credential is part
// of the reference deployment and is created or repaired on every start.
const (
	bootstrapUsername = "admin"
	bootstrapPassword = "admin"
	bootstrapEmail    = "admin@example.com"
)

// AccountService owns account creation and the uniqueness invariants on
// username and email. The database constraint is the final arbiter; the
// pre-checks below only exist to classify failures for the caller.
type AccountService struct {
	repo ports.AccountRepository
	log  zerolog.Logger
}

func NewAccountService(repo ports.AccountRepository, log zerolog.Logger) *AccountService {
	return &AccountService{repo: repo, log: log}
}

// Register creates an account with a salted password digest. The role
// defaults to "user" when empty. The store runs check-username, check-email,
// insert as one transaction, so duplicate username wins the tie-break when
// both collide.
//
// Registration may still interleave with other writers between the in-store
// checks and the insert. When the insert itself trips the uniqueness
// constraint, a second read-only pass classifies which field collided; if
// the store has mutated again and neither shows up, a generic duplicate
// error is returned rather than a guess.
func (s *AccountService) Register(ctx context.Context, username, password, email, role string) error {
	hash := passhash.Hash(password)
	err := s.repo.CreateAccount(ctx, username, hash, email, role)
	switch {
	case err == nil:
		s.log.Info().Str("username", username).Msg("account registered")
		return nil
	case errors.Is(err, domain.ErrDuplicateUsername), errors.Is(err, domain.ErrDuplicateEmail):
		return err
	case errors.Is(err, domain.ErrDuplicateAccount):
		return s.classifyDuplicate(ctx, username, email)
	default:
		return s.storeErr("create account", err)
	}
}

// classifyDuplicate re-queries both constraints after a unique violation
// slipped past the pre-checks (concurrent registration).
func (s *AccountService) classifyDuplicate(ctx context.Context, username, email string) error {
	s.log.Warn().Str("username", username).Msg("unique violation after pre-check, re-classifying")

	taken, err := s.repo.UsernameExists(ctx, username)
	if err != nil {
		return s.storeErr("re-check username", err)
	}
	if taken {
		return domain.ErrDuplicateUsername
	}

	taken, err = s.repo.EmailExists(ctx, email)
	if err != nil {
		return s.storeErr("re-check email", err)
	}
	if taken {
		return domain.ErrDuplicateEmail
	}

	return domain.ErrDuplicateAccount
}

// EnsureBootstrapAdmin creates the well-known admin account on first start,
// or repairs its role if a previous provisioning left it NULL, empty, or
// not "admin". Other fields of an existing account are never touched.
// Safe to run on every start.
func (s *AccountService) EnsureBootstrapAdmin(ctx context.Context) error {
	exists, err := s.repo.UsernameExists(ctx, bootstrapUsername)
	if err != nil {
		return s.storeErr("check bootstrap account", err)
	}

	if exists {
		acct, err := s.repo.FindByUsername(ctx, bootstrapUsername)
		if err != nil {
			return s.storeErr("fetch bootstrap account", err)
		}
		if acct.Role == domain.RoleAdmin {
			return nil
		}
		s.log.Warn().Str("role", acct.Role).Msg("bootstrap account has wrong role, repairing")
		if err := s.repo.UpdateRole(ctx, bootstrapUsername, domain.RoleAdmin); err != nil {
			return s.storeErr("repair bootstrap role", err)
		}
		return nil
	}

	emailTaken, err := s.repo.EmailExists(ctx, bootstrapEmail)
	if err != nil {
		return s.storeErr("check bootstrap email", err)
	}
	if emailTaken {
		// Warn only: the account is still created, the email constraint
		// will reject it if it truly collides.
		s.log.Warn().Str("email", bootstrapEmail).Msg("bootstrap email already in use by another account")
	}

	hash := passhash.Hash(bootstrapPassword)
	if err := s.repo.CreateAccount(ctx, bootstrapUsername, hash, bootstrapEmail, domain.RoleAdmin); err != nil {
		if errors.Is(err, domain.ErrDuplicateUsername) ||
			errors.Is(err, domain.ErrDuplicateEmail) ||
			errors.Is(err, domain.ErrDuplicateAccount) {
			// Lost a race or the email collision was real. The account
			// either exists already or cannot be created; neither should
			// keep the process from starting.
			s.log.Warn().Err(err).Msg("bootstrap account not created")
			return nil
		}
		return s.storeErr("create bootstrap account", err)
	}
	s.log.Info().Msg("bootstrap admin account created")
	return nil
}

// IsAdmin fetches the current role for an account id. Authorization checks
// against an existing session use the session snapshot instead; this is for
// callers that need the live stored role.
func (s *AccountService) IsAdmin(ctx context.Context, accountID int) (bool, error) {
	role, err := s.repo.RoleByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return false, err
		}
		return false, s.storeErr("fetch role", err)
	}
	return role == domain.RoleAdmin, nil
}

// storeErr logs the underlying storage failure and collapses it into
// ErrStoreUnavailable so no raw driver error crosses the service boundary.
func (s *AccountService) storeErr(op string, err error) error {
	s.log.Error().Err(err).Str("op", op).Msg("account store failure")
	return domain.ErrStoreUnavailable
}
