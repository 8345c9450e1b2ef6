package domain

import "time"

// RefreshToken is the persisted half of a token pair. Only the SHA-256 hash
// of the opaque value is stored; the raw value exists solely in the response
// that issued it.
type RefreshToken struct {
	ID                string
	UserID            string
	TokenHash         string
	DeviceFingerprint string
	IPAddress         string
	UserAgent         string
	IssuedAt          time.Time
	LastUsedAt        time.Time
	ExpiresAt         time.Time
}

func (rt *RefreshToken) Expired(now time.Time) bool {
	return now.After(rt.ExpiresAt)
}

// VerificationToken is a single-use email confirmation secret. It transitions
// once from unconsumed to consumed and is never reused.
type VerificationToken struct {
	ID         string
	UserID     string
	TokenHash  string
	ExpiresAt  time.Time
	ConsumedAt *time.Time
	CreatedAt  time.Time
}

func (vt *VerificationToken) Expired(now time.Time) bool {
	return now.After(vt.ExpiresAt)
}
