package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/edutrack/exam-prediction/internal/core/domain"
	"github.com/edutrack/exam-prediction/internal/core/ports"
	"github.com/edutrack/exam-prediction/internal/pkg/passhash"
)

// AuthService verifies credentials against the account store and produces
// Identity snapshots for the session registry.
type AuthService struct {
	repo ports.AccountRepository
	log  zerolog.Logger
}

func NewAuthService(repo ports.AccountRepository, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, log: log}
}

// Authenticate looks up the account, verifies the password digest, and
// returns the public identity with the role normalized for this read.
//
// Unknown username and wrong password both come back as
// domain.ErrInvalidCredentials so the caller cannot tell which check
// failed; the distinction is kept in the logs.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (domain.Identity, error) {
	acct, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			s.log.Debug().Str("username", username).Msg("login failed: unknown username")
			return domain.Identity{}, domain.ErrInvalidCredentials
		}
		s.log.Error().Err(err).Str("username", username).Msg("account lookup failure")
		return domain.Identity{}, domain.ErrStoreUnavailable
	}

	if !passhash.Verify(password, acct.PasswordHash) {
		s.log.Debug().Str("username", username).Msg("login failed: bad password")
		return domain.Identity{}, domain.ErrInvalidCredentials
	}

	// Identity() normalizes a NULL/empty stored role to "user" without
	// mutating the row.
	id := acct.Identity()
	s.log.Info().Str("username", username).Str("role", id.Role).Msg("login ok")
	return id, nil
}
