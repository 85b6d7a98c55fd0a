package domain

import "errors"

// Error kinds surfaced by the core. NotFound and Forbidden are both access
// denials and must surface identically to callers so that a failed ownership
// check never leaks whether the entity exists.
var (
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrEmailTaken = errors.New("email already registered")
	ErrSelfDelete = errors.New("cannot delete own account")
)

// IsDenied reports whether err is an access denial of either kind.
func IsDenied(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrForbidden)
}
