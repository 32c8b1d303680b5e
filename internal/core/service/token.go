package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kasisheraz/uk-user-management-backend-2025/internal/core/ports"
)

// TokenIssuer mints HS256 JWTs for authenticated principals. Token
// verification lives in the HTTP middleware; this type only signs.
type TokenIssuer struct {
	secret string
	ttl    time.Duration
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenIssuer{secret: secret, ttl: ttl}
}

// Issue returns a signed token whose claims carry the username and the
// ROLE_-prefixed role tags.
func (t *TokenIssuer) Issue(p *ports.Principal) (string, error) {
	claims := jwt.MapClaims{
		"sub":   p.Username,
		"roles": p.Roles,
		"exp":   time.Now().Add(t.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(t.secret))
}
