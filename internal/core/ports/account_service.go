package ports

import (
	"context"

	"github.com/edutrack/exam-prediction/internal/core/domain"
)

// AccountService covers registration and the bootstrap admin account.
type AccountService interface {
	Register(ctx context.Context, username, password, email, role string) error
	EnsureBootstrapAdmin(ctx context.Context) error
	IsAdmin(ctx context.Context, accountID int) (bool, error)
}

// AuthService authenticates credentials into an Identity snapshot.
type AuthService interface {
	Authenticate(ctx context.Context, username, password string) (domain.Identity, error)
}
