package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"vendorhub/internal/domain"
	"vendorhub/internal/modules/events"
	"vendorhub/internal/repository"
)

// Service holds all credential-issuance business logic: role-scoped
// registration, OTP confirmation and login.
type Service struct {
	identities     IdentityRepositoryInterface
	challenges     ChallengeRepositoryInterface
	tokens         tokenIssuer
	mailer         Mailer
	bus            EventPublisher
	otpPepper      string
	otpTTL         time.Duration
	resendCooldown time.Duration
}

type LoginResult struct {
	Identity *domain.Identity
	Token    string
}

type RegisterResult struct {
	Identity *domain.Identity
	Vendor   *domain.Vendor // nil for non-vendor roles
	// Delivered reports whether the verification code reached the
	// notifier. The challenge exists either way.
	Delivered bool
}

func NewService(
	identities IdentityRepositoryInterface,
	challenges ChallengeRepositoryInterface,
	tokens tokenIssuer,
	mailer Mailer,
	bus EventPublisher,
	otpPepper string,
	otpTTL time.Duration,
	resendCooldown time.Duration,
) *Service {
	return &Service{
		identities:     identities,
		challenges:     challenges,
		tokens:         tokens,
		mailer:         mailer,
		bus:            bus,
		otpPepper:      otpPepper,
		otpTTL:         otpTTL,
		resendCooldown: resendCooldown,
	}
}

// Register creates an unverified role-scoped identity and issues an OTP
// challenge. Vendor registrations also create the pending Vendor entity.
func (s *Service) Register(ctx context.Context, role domain.Role, req RegisterRequest) (*RegisterResult, error) {
	if !role.Valid() {
		return nil, ErrUnknownRole
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	exists, err := s.identities.ExistsByEmailRole(ctx, email, role)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	identity := &domain.Identity{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Phone:        req.Phone,
		Verified:     false,
		Active:       true,
	}

	var vendor *domain.Vendor
	if role == domain.RoleVendor {
		vendor, err = s.identities.CreateWithVendor(ctx, identity, req.LegalName)
	} else {
		err = s.identities.Create(ctx, identity)
	}
	if err != nil {
		// a concurrent registration may win the unique index race
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}

	delivered, err := s.issueChallenge(ctx, identity)
	if err != nil {
		return nil, err
	}

	if vendor != nil && s.bus != nil {
		s.bus.Publish(events.New(events.TypeVendorRegistered, vendor))
	}

	identity.PasswordHash = ""
	return &RegisterResult{Identity: identity, Vendor: vendor, Delivered: delivered}, nil
}

// Login checks credentials for the claimed role and issues a session
// token. An identity registered under a different role is rejected
// explicitly, not reported as unknown.
func (s *Service) Login(ctx context.Context, role domain.Role, req LoginRequest) (*LoginResult, error) {
	if !role.Valid() {
		return nil, ErrUnknownRole
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	identity, err := s.identities.GetByEmailRole(ctx, email, role)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			otherRole, existsErr := s.identities.ExistsByEmail(ctx, email)
			if existsErr != nil {
				return nil, existsErr
			}
			if otherRole {
				return nil, ErrRoleMismatch
			}
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !identity.Active {
		return nil, ErrAccountDisabled
	}
	if !identity.Verified {
		return nil, ErrEmailNotVerified
	}

	if err := bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(identity)
	if err != nil {
		return nil, err
	}

	identity.PasswordHash = ""
	return &LoginResult{Identity: identity, Token: token}, nil
}
