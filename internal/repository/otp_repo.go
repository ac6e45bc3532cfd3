package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"vendorhub/internal/domain"
)

type OTPRepository struct {
	db *gorm.DB
}

func NewOTPRepository(db *gorm.DB) *OTPRepository {
	return &OTPRepository{db: db}
}

func toDomainChallenge(m otpChallengeRow) *domain.OTPChallenge {
	return &domain.OTPChallenge{
		ID:         m.ID,
		IdentityID: m.IdentityID,
		Email:      m.Email,
		CodeHash:   m.CodeHash,
		ExpiresAt:  m.ExpiresAt,
		ConsumedAt: m.ConsumedAt,
		CreatedAt:  m.CreatedAt,
	}
}

// Replace invalidates any live challenge for the email and creates the
// new one in the same transaction. The partial unique index on live
// challenges serializes concurrent issuers per email: under READ
// COMMITTED two issuers can both see zero live rows to invalidate, so
// the loser's insert hits the index and the whole transaction is
// retried against the winner's committed row.
func (r *OTPRepository) Replace(ctx context.Context, ch *domain.OTPChallenge) error {
	var err error
	for attempt := 0; attempt < 3; attempt++ {
		if err = r.replaceOnce(ctx, ch); !errors.Is(err, ErrDuplicateKey) {
			return err
		}
	}
	return err
}

func (r *OTPRepository) replaceOnce(ctx context.Context, ch *domain.OTPChallenge) error {
	email := strings.ToLower(strings.TrimSpace(ch.Email))
	now := time.Now()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&otpChallengeRow{}).
			Where("email = ? AND consumed_at IS NULL", email).
			Update("consumed_at", now).Error; err != nil {
			return err
		}

		m := otpChallengeRow{
			IdentityID: ch.IdentityID,
			Email:      email,
			CodeHash:   ch.CodeHash,
			ExpiresAt:  ch.ExpiresAt,
		}
		if err := tx.Create(&m).Error; err != nil {
			return translateDuplicate(err)
		}

		*ch = *toDomainChallenge(m)
		return nil
	})
}

// GetActive returns the latest unconsumed challenge for the email,
// expired or not; the caller distinguishes expired from absent.
func (r *OTPRepository) GetActive(ctx context.Context, email string) (*domain.OTPChallenge, error) {
	var m otpChallengeRow
	err := r.db.WithContext(ctx).
		Where("email = ? AND consumed_at IS NULL", strings.ToLower(strings.TrimSpace(email))).
		Order("created_at DESC, id DESC").
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return toDomainChallenge(m), nil
}

// ConsumeAndVerify spends the challenge and flips the identity's
// verified flag in one transaction, so a failure cannot leave the
// challenge consumed with the identity still unverified. The consume is
// a compare-and-swap; a concurrent double-submit loses with
// ErrChallengeSpent and the transaction rolls back.
func (r *OTPRepository) ConsumeAndVerify(ctx context.Context, challengeID, identityID int64) error {
	now := time.Now()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&otpChallengeRow{}).
			Where("id = ? AND consumed_at IS NULL", challengeID).
			Update("consumed_at", now)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrChallengeSpent
		}

		// no-op when the identity is already verified
		return tx.Model(&identityRow{}).
			Where("id = ? AND verified = ?", identityID, false).
			Updates(map[string]any{
				"verified":    true,
				"verified_at": now,
				"updated_at":  now,
			}).Error
	})
}
