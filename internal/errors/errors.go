package errors

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrEmailAlreadyInUse    = errors.New("email already in use")
	ErrTokenInvalid         = errors.New("token invalid")
	ErrTokenExpired         = errors.New("token expired")
	ErrTokenAlreadyConsumed = errors.New("token already consumed")
	ErrUserNotFound         = errors.New("user not found")
)

// AccountLockedError is returned while an identity is inside its lockout
// window. RetryAfter is how long the caller has to wait; handlers round it
// up to whole minutes so the response never promises an earlier retry than
// the store will allow.
type AccountLockedError struct {
	RetryAfter time.Duration
}

func (e *AccountLockedError) Error() string {
	return fmt.Sprintf("too many failed login attempts, retry after %s", e.RetryAfter.Round(time.Second))
}

// RetryAfterMinutes reports the wait rounded up to the next whole minute,
// with a floor of one.
func (e *AccountLockedError) RetryAfterMinutes() int {
	mins := int((e.RetryAfter + time.Minute - 1) / time.Minute)
	if mins < 1 {
		mins = 1
	}
	return mins
}

// IsAccountLocked unwraps err into an AccountLockedError if it is one.
func IsAccountLocked(err error) (*AccountLockedError, bool) {
	var locked *AccountLockedError
	if errors.As(err, &locked) {
		return locked, true
	}
	return nil, false
}
