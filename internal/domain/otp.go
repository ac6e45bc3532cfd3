package domain

import "time"

// OTPChallenge is one registration verification code. At most one live
// (unconsumed, unexpired) challenge exists per email; issuing a new one
// invalidates the previous. The code itself is never stored, only its
// peppered hash.
type OTPChallenge struct {
	ID         int64      `json:"id"`
	IdentityID int64      `json:"identity_id"`
	Email      string     `json:"email"`
	CodeHash   string     `json:"-"`
	ExpiresAt  time.Time  `json:"expires_at"`
	ConsumedAt *time.Time `json:"consumed_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

func (c OTPChallenge) Expired(now time.Time) bool {
	return !c.ExpiresAt.After(now)
}

func (c OTPChallenge) Consumed() bool {
	return c.ConsumedAt != nil
}
