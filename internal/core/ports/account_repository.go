package ports

import (
	"context"

	"github.com/edutrack/exam-prediction/internal/core/domain"
)

// AccountRepository is the persistence surface for accounts. The backing
// store enforces username and email uniqueness; CreateAccount reports which
// side collided when its own checks catch it, and a violated constraint as
// domain.ErrDuplicateAccount so the caller can re-classify. The standalone
// existence checks serve that re-classification and the bootstrap path.
type AccountRepository interface {
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	// CreateAccount runs check-username, check-email, insert as one
	// transaction with an already-hashed credential. An empty role is
	// persisted as the default user role. The checks classify collisions
	// as ErrDuplicateUsername or ErrDuplicateEmail (username first); a
	// concurrent writer slipping past them trips the unique constraint,
	// reported as ErrDuplicateAccount. Nothing is written on any failure.
	CreateAccount(ctx context.Context, username, passwordHash, email, role string) error
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
	RoleByID(ctx context.Context, id int) (string, error)
	UpdateRole(ctx context.Context, username, role string) error
}
