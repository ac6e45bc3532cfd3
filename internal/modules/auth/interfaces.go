package auth

import (
	"context"

	"vendorhub/internal/domain"
	"vendorhub/internal/modules/events"
)

// IdentityRepositoryInterface lists only the methods the auth service uses.
type IdentityRepositoryInterface interface {
	Create(ctx context.Context, u *domain.Identity) error
	CreateWithVendor(ctx context.Context, u *domain.Identity, legalName string) (*domain.Vendor, error)
	GetByID(ctx context.Context, id int64) (*domain.Identity, error)
	GetByEmailRole(ctx context.Context, email string, role domain.Role) (*domain.Identity, error)
	GetUnverifiedByEmail(ctx context.Context, email string) (*domain.Identity, error)
	ExistsByEmailRole(ctx context.Context, email string, role domain.Role) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// ChallengeRepositoryInterface is the OTP challenge storage. Replace
// carries the per-email serialization contract; ConsumeAndVerify spends
// the challenge and verifies its identity atomically.
type ChallengeRepositoryInterface interface {
	Replace(ctx context.Context, ch *domain.OTPChallenge) error
	GetActive(ctx context.Context, email string) (*domain.OTPChallenge, error)
	ConsumeAndVerify(ctx context.Context, challengeID, identityID int64) error
}

type tokenIssuer interface {
	Generate(identity *domain.Identity) (string, error)
}

// Mailer is the notification collaborator; delivery is best-effort.
type Mailer interface {
	SendOTP(ctx context.Context, to, code string) error
}

// EventPublisher notifies review dashboards of new vendor sign-ups.
// A nil publisher is allowed; publishing is always best effort.
type EventPublisher interface {
	Publish(event events.Event)
}
