package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyExists = errors.New("email already registered for this role")
	ErrEmailNotVerified   = errors.New("email not verified")
	ErrRoleMismatch       = errors.New("identity exists under a different role")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrUnknownRole        = errors.New("unknown role")

	ErrNoActiveChallenge = errors.New("no active challenge")
	ErrChallengeExpired  = errors.New("challenge expired")
	ErrCodeMismatch      = errors.New("code mismatch")
	ErrInvalidCodeFormat = errors.New("invalid code format")
	ErrResendCooldown    = errors.New("resend cooldown active")
)
