package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"vendorhub/internal/domain"
)

func TestGenerateAndValidate(t *testing.T) {
	svc := New("test-secret-123", time.Hour)

	vendorID := int64(7)
	identity := &domain.Identity{
		ID:       42,
		Email:    "vendor@example.com",
		Role:     domain.RoleVendor,
		VendorID: &vendorID,
	}

	token, err := svc.Generate(identity)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.Validate(token)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, int64(7), claims.VendorID)
	assert.Equal(t, "vendor@example.com", claims.Email)
	assert.Equal(t, "vendor", claims.Role)
}

func TestGenerate_NoVendorBinding(t *testing.T) {
	svc := New("test-secret-123", time.Hour)

	token, err := svc.Generate(&domain.Identity{
		ID:    5,
		Email: "admin@example.com",
		Role:  domain.RoleAdmin,
	})
	assert.NoError(t, err)

	claims, err := svc.Validate(token)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), claims.VendorID)
	assert.Equal(t, "admin", claims.Role)
}

func TestValidate_Expired(t *testing.T) {
	svc := New("test-secret-123", -time.Minute)

	token, err := svc.Generate(&domain.Identity{ID: 1, Role: domain.RoleVendor})
	assert.NoError(t, err)

	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidate_Malformed(t *testing.T) {
	svc := New("test-secret-123", time.Hour)

	_, err := svc.Validate("not-a-jwt")
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestValidate_WrongSecret(t *testing.T) {
	issuer := New("secret-a", time.Hour)
	verifier := New("secret-b", time.Hour)

	token, err := issuer.Generate(&domain.Identity{ID: 1, Role: domain.RoleAdmin})
	assert.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}
