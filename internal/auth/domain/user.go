package domain

import "time"

type User struct {
	ID               string
	Email            string
	PasswordHash     string
	EmailVerified    bool
	FailedLoginCount int
	LockedUntil      *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Locked reports whether the account is inside an active lockout window.
func (u *User) Locked(now time.Time) bool {
	return u.LockedUntil != nil && now.Before(*u.LockedUntil)
}

type LoginAttempt struct {
	ID          string
	Email       string
	IPAddress   string
	UserAgent   string
	AttemptTime time.Time
	Successful  bool
}

// LockoutState is the post-increment view of an identity's failure counter,
// as returned by the store's atomic update.
type LockoutState struct {
	FailedLoginCount int
	LockedUntil      *time.Time
}
