package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"math/big"
	"regexp"
	"strings"
	"time"

	"gorm.io/gorm"

	"vendorhub/internal/domain"
	"vendorhub/internal/repository"
)

var codeRegex = regexp.MustCompile(`^\d{6}$`)

// issueChallenge persists a fresh challenge (invalidating any prior live
// one for the email) and then dispatches the code. Delivery failure does
// not roll back the challenge; it is reported via the returned flag.
func (s *Service) issueChallenge(ctx context.Context, identity *domain.Identity) (bool, error) {
	code, err := generateOTPCode()
	if err != nil {
		return false, err
	}

	ch := &domain.OTPChallenge{
		IdentityID: identity.ID,
		Email:      identity.Email,
		CodeHash:   hashOTPCode(code, s.otpPepper),
		ExpiresAt:  time.Now().Add(s.otpTTL),
	}
	if err := s.challenges.Replace(ctx, ch); err != nil {
		return false, err
	}

	if mailErr := s.mailer.SendOTP(ctx, identity.Email, code); mailErr != nil {
		log.Printf("otp delivery failed email=%s err=%v", identity.Email, mailErr)
		return false, nil
	}
	return true, nil
}

// ResendOTP reissues a challenge for an unverified identity. Unknown or
// already verified emails are masked as accepted so the endpoint cannot
// be used to enumerate registrations.
func (s *Service) ResendOTP(ctx context.Context, email string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	identity, err := s.identities.GetUnverifiedByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("otp resend: nothing to verify (masked)")
			return true, nil
		}
		return false, err
	}

	if current, err := s.challenges.GetActive(ctx, email); err == nil {
		if time.Now().Before(current.CreatedAt.Add(s.resendCooldown)) {
			return false, ErrResendCooldown
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	return s.issueChallenge(ctx, identity)
}

// VerifyOTP checks a submitted code against the live challenge. Success
// consumes the challenge atomically and flips the identity's verified
// flag exactly once; a replay of the same code fails with
// ErrNoActiveChallenge.
func (s *Service) VerifyOTP(ctx context.Context, email, code string) (*domain.Identity, error) {
	if !codeRegex.MatchString(code) {
		return nil, ErrInvalidCodeFormat
	}

	email = strings.ToLower(strings.TrimSpace(email))
	ch, err := s.challenges.GetActive(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoActiveChallenge
		}
		return nil, err
	}

	now := time.Now()
	if ch.Expired(now) {
		return nil, ErrChallengeExpired
	}

	if hashOTPCode(code, s.otpPepper) != ch.CodeHash {
		return nil, ErrCodeMismatch
	}

	if err := s.challenges.ConsumeAndVerify(ctx, ch.ID, ch.IdentityID); err != nil {
		if errors.Is(err, repository.ErrChallengeSpent) {
			return nil, ErrNoActiveChallenge
		}
		return nil, err
	}

	identity, err := s.identities.GetByID(ctx, ch.IdentityID)
	if err != nil {
		return nil, err
	}
	identity.PasswordHash = ""
	return identity, nil
}

func generateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func hashOTPCode(code, pepper string) string {
	sum := sha256.Sum256([]byte(code + pepper))
	return hex.EncodeToString(sum[:])
}
