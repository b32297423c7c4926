package domain

import "errors"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Registration and authentication errors.
var (
	ErrDuplicateUsername = errors.New("username already taken")
	ErrDuplicateEmail    = errors.New("email already registered")
	// ErrDuplicateAccount is returned when the database reports a
	// uniqueness violation but a follow-up read can no longer tell which
	// constraint fired.
	ErrDuplicateAccount   = errors.New("account already exists")
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrStoreUnavailable   = errors.New("account store unavailable")
)

// Authorization outcomes. Unauthorized means no valid session (401),
// Forbidden means a valid session with insufficient role (403).
var (
	ErrUnauthorized = errors.New("not authorized")
	ErrForbidden    = errors.New("access forbidden")
)

// Account is the stored user record. PasswordHash holds the salted digest
// in "salt:hex" form, or a legacy plaintext password for rows created
// before hashing was introduced.
type Account struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	// Role is "admin" or "user". Historical rows may carry NULL or "",
	// which readers normalize to "user" without writing back.
	Role string `json:"role"`
}

// Identity is the authenticated public view of an Account: the digest is
// stripped and the role is already normalized. Sessions hold Identity
// values by copy, so later changes to the Account are not reflected.
type Identity struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// Identity returns the public snapshot of the account with the role
// normalized for this read only.
func (a *Account) Identity() Identity {
	return Identity{
		ID:       a.ID,
		Username: a.Username,
		Email:    a.Email,
		Role:     NormalizeRole(a.Role),
	}
}

// NormalizeRole maps a missing stored role to RoleUser. The stored value
// is left untouched; only the in-memory view is normalized.
func NormalizeRole(role string) string {
	if role == "" {
		return RoleUser
	}
	return role
}

// IsAdmin reports whether the identity carries the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
