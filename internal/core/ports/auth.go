package ports

import "context"

// Principal is the authenticated identity produced by a successful
// authentication: the username plus the role set rendered as access-control
// tags ("ROLE_ADMIN", "ROLE_USER", ...).
type Principal struct {
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}

// HasRole reports whether the principal carries the given tag.
func (p *Principal) HasRole(tag string) bool {
	for _, r := range p.Roles {
		if r == tag {
			return true
		}
	}
	return false
}

// Authenticator decides whether a username/password pair identifies an
// active, correctly-authenticated principal. Failures are
// domain.ErrUserNotFound or domain.ErrInvalidCredentials; a disabled account
// fails exactly like a wrong password.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*Principal, error)
}

// TokenIssuer mints a signed token for a principal.
type TokenIssuer interface {
	Issue(p *Principal) (string, error)
}

// LoginThrottle limits repeated failed login attempts per username.
// Implementations must be safe for concurrent use.
type LoginThrottle interface {
	Blocked(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}
