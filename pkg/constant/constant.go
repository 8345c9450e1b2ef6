package constant

const (
	DefaultPort = "8080"

	DefaultAccessTokenExpiryMin  = 15
	DefaultRefreshTokenExpiryMin = 10080 // 7 days

	// Lockout policy. The durable per-identity counter is the canonical
	// source; these pair with it (5 consecutive failures, 30 minute lock).
	DefaultLoginMaxAttempts = 5
	DefaultLockoutMinutes   = 30

	DefaultVerificationExpiryHours = 24

	DefaultMaxActiveRefreshTokens = 5

	DefaultBcryptCost = 10

	// RefreshTokenBytes is the entropy of an opaque refresh or verification
	// value before encoding (256 bits).
	RefreshTokenBytes = 32
)
