package domain

import "errors"

var ErrUserNotFound = errors.New("user not found")
var ErrRoleNotFound = errors.New("role not found")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrPasswordTooShort = errors.New("password too short")
var ErrTooManyAttempts = errors.New("too many login attempts")

// ErrDuplicateKey is returned by repositories when the store rejects a write
// on a uniqueness constraint. The service layer resolves it to a
// DuplicateIdentityError naming the colliding field.
var ErrDuplicateKey = errors.New("duplicate key")

// DuplicateIdentityError reports a registration that collided with an
// existing account on a unique field (username or email).
type DuplicateIdentityError struct {
	Field string
}

func (e *DuplicateIdentityError) Error() string {
	return e.Field + " already exists"
}
