package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"vendorhub/internal/database"
	"vendorhub/internal/domain"
)

func testDB(t *testing.T) *testRepos {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := database.Connect(dsn)
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))

	return &testRepos{
		db:         db,
		identities: NewIdentityRepository(db),
		challenges: NewOTPRepository(db),
		vendors:    NewVendorRepository(db),
		products:   NewProductRepository(db),
	}
}

type testRepos struct {
	db         *gorm.DB
	identities *IdentityRepository
	challenges *OTPRepository
	vendors    *VendorRepository
	products   *ProductRepository
}

func newIdentity(email string, role domain.Role) *domain.Identity {
	return &domain.Identity{
		Email:        email,
		PasswordHash: "x",
		Role:         role,
		Active:       true,
	}
}

func TestIdentityRepository_EmailRoleUniqueness(t *testing.T) {
	r := testDB(t)
	ctx := context.Background()

	require.NoError(t, r.identities.Create(ctx, newIdentity("a@example.com", domain.RoleAdmin)))

	// same email under a different role is a different identity
	require.NoError(t, r.identities.Create(ctx, newIdentity("a@example.com", domain.RoleVendorManager)))

	// same email and role collides
	err := r.identities.Create(ctx, newIdentity("a@example.com", domain.RoleAdmin))
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestIdentityRepository_CreateWithVendor(t *testing.T) {
	r := testDB(t)
	ctx := context.Background()

	identity := newIdentity("v@example.com", domain.RoleVendor)
	v, err := r.identities.CreateWithVendor(ctx, identity, "Acme GmbH")
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPending, v.Status)
	assert.Equal(t, identity.ID, v.IdentityID)
	require.NotNil(t, identity.VendorID)
	assert.Equal(t, v.ID, *identity.VendorID)

	got, err := r.vendors.GetByIdentityID(ctx, identity.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme GmbH", got.LegalName)
}

// Spending a challenge and flipping the identity's verified flag is one
// write: after ConsumeAndVerify both are done, and a second attempt on
// the same challenge fails without touching the identity again.
func TestOTPRepository_ConsumeAndVerify(t *testing.T) {
	r := testDB(t)
	ctx := context.Background()

	identity := newIdentity("a@example.com", domain.RoleAdmin)
	require.NoError(t, r.identities.Create(ctx, identity))

	ch := &domain.OTPChallenge{
		IdentityID: identity.ID,
		Email:      identity.Email,
		CodeHash:   "hash",
		ExpiresAt:  time.Now().Add(10 * time.Minute),
	}
	require.NoError(t, r.challenges.Replace(ctx, ch))

	require.NoError(t, r.challenges.ConsumeAndVerify(ctx, ch.ID, identity.ID))

	got, err := r.identities.GetByID(ctx, identity.ID)
	require.NoError(t, err)
	assert.True(t, got.Verified)
	require.NotNil(t, got.VerifiedAt)
	first := *got.VerifiedAt

	assert.ErrorIs(t, r.challenges.ConsumeAndVerify(ctx, ch.ID, identity.ID), ErrChallengeSpent)

	// the failed replay must not move the verification timestamp
	again, err := r.identities.GetByID(ctx, identity.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Unix(), again.VerifiedAt.Unix())
}

func TestOTPRepository_ReplaceInvalidatesPrior(t *testing.T) {
	r := testDB(t)
	ctx := context.Background()

	first := &domain.OTPChallenge{
		IdentityID: 1,
		Email:      "v@example.com",
		CodeHash:   "hash-1",
		ExpiresAt:  time.Now().Add(10 * time.Minute),
	}
	require.NoError(t, r.challenges.Replace(ctx, first))

	second := &domain.OTPChallenge{
		IdentityID: 1,
		Email:      "v@example.com",
		CodeHash:   "hash-2",
		ExpiresAt:  time.Now().Add(10 * time.Minute),
	}
	require.NoError(t, r.challenges.Replace(ctx, second))

	active, err := r.challenges.GetActive(ctx, "v@example.com")
	require.NoError(t, err)
	assert.Equal(t, "hash-2", active.CodeHash)

	// the superseded challenge is spent and cannot be consumed
	assert.ErrorIs(t, r.challenges.ConsumeAndVerify(ctx, first.ID, first.IdentityID), ErrChallengeSpent)
}

// Concurrent reissues for one email must never leave two live
// challenges: the partial unique index makes losers retry against the
// winner's row, so afterwards exactly one row is consumable.
func TestOTPRepository_ConcurrentReplaceSingleLive(t *testing.T) {
	r := testDB(t)
	ctx := context.Background()

	identity := newIdentity("v@example.com", domain.RoleVendor)
	require.NoError(t, r.identities.Create(ctx, identity))

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ch := &domain.OTPChallenge{
				IdentityID: identity.ID,
				Email:      "v@example.com",
				CodeHash:   fmt.Sprintf("hash-%d", i),
				ExpiresAt:  time.Now().Add(10 * time.Minute),
			}
			errs <- r.challenges.Replace(ctx, ch)
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	var live int64
	require.NoError(t, r.db.Model(&otpChallengeRow{}).
		Where("email = ? AND consumed_at IS NULL", "v@example.com").
		Count(&live).Error)
	assert.Equal(t, int64(1), live)

	active, err := r.challenges.GetActive(ctx, "v@example.com")
	require.NoError(t, err)
	require.NoError(t, r.challenges.ConsumeAndVerify(ctx, active.ID, identity.ID))
}

func TestOTPRepository_ConsumeExactlyOnce(t *testing.T) {
	r := testDB(t)
	ctx := context.Background()

	identity := newIdentity("v@example.com", domain.RoleVendor)
	require.NoError(t, r.identities.Create(ctx, identity))

	ch := &domain.OTPChallenge{
		IdentityID: identity.ID,
		Email:      "v@example.com",
		CodeHash:   "hash",
		ExpiresAt:  time.Now().Add(10 * time.Minute),
	}
	require.NoError(t, r.challenges.Replace(ctx, ch))

	var wg sync.WaitGroup
	results := make(chan error, 4)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- r.challenges.ConsumeAndVerify(ctx, ch.ID, identity.ID)
		}()
	}
	wg.Wait()
	close(results)

	var wins, spent int
	for err := range results {
		switch {
		case err == nil:
			wins++
		default:
			assert.ErrorIs(t, err, ErrChallengeSpent)
			spent++
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, 3, spent)
}

func seedVendor(t *testing.T, r *testRepos) *domain.Vendor {
	t.Helper()
	ctx := context.Background()

	identity := newIdentity("v@example.com", domain.RoleVendor)
	v, err := r.identities.CreateWithVendor(ctx, identity, "Acme GmbH")
	require.NoError(t, err)
	return v
}

func submitDoc(t *testing.T, r *testRepos, vendorID int64, kind domain.DocumentKind) *domain.Document {
	t.Helper()
	d := &domain.Document{VendorID: vendorID, Kind: kind, StoragePath: "x/" + string(kind)}
	require.NoError(t, r.vendors.CreateDocument(context.Background(), d))
	return d
}

func TestVendorRepository_ReviewDocumentAggregation(t *testing.T) {
	r := testDB(t)
	ctx := context.Background()
	v := seedVendor(t, r)

	license := submitDoc(t, r, v.ID, domain.DocBusinessLicense)
	tax := submitDoc(t, r, v.ID, domain.DocTaxCertificate)
	identityProof := submitDoc(t, r, v.ID, domain.DocIdentityProof)

	_, vs, err := r.vendors.ReviewDocument(ctx, license.ID, domain.StatusApproved, 50)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, vs)

	_, vs, err = r.vendors.ReviewDocument(ctx, tax.ID, domain.StatusApproved, 50)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, vs)

	doc, vs, err := r.vendors.ReviewDocument(ctx, identityProof.ID, domain.StatusApproved, 50)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, doc.Status)
	assert.Equal(t, domain.StatusApproved, vs)

	got, err := r.vendors.GetByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, got.Status)
}

func TestVendorRepository_RejectionWins(t *testing.T) {
	r := testDB(t)
	ctx := context.Background()
	v := seedVendor(t, r)

	license := submitDoc(t, r, v.ID, domain.DocBusinessLicense)
	tax := submitDoc(t, r, v.ID, domain.DocTaxCertificate)
	identityProof := submitDoc(t, r, v.ID, domain.DocIdentityProof)

	_, _, err := r.vendors.ReviewDocument(ctx, license.ID, domain.StatusApproved, 50)
	require.NoError(t, err)
	_, _, err = r.vendors.ReviewDocument(ctx, identityProof.ID, domain.StatusApproved, 50)
	require.NoError(t, err)

	_, vs, err := r.vendors.ReviewDocument(ctx, tax.ID, domain.StatusRejected, 50)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, vs)
}

// Resubmitting a rejected kind supersedes it: once the new upload is
// approved the old rejection no longer counts.
func TestVendorRepository_ResubmissionSupersedes(t *testing.T) {
	r := testDB(t)
	ctx := context.Background()
	v := seedVendor(t, r)

	license := submitDoc(t, r, v.ID, domain.DocBusinessLicense)
	tax := submitDoc(t, r, v.ID, domain.DocTaxCertificate)
	identityProof := submitDoc(t, r, v.ID, domain.DocIdentityProof)

	_, _, err := r.vendors.ReviewDocument(ctx, license.ID, domain.StatusApproved, 50)
	require.NoError(t, err)
	_, _, err = r.vendors.ReviewDocument(ctx, identityProof.ID, domain.StatusApproved, 50)
	require.NoError(t, err)
	_, vs, err := r.vendors.ReviewDocument(ctx, tax.ID, domain.StatusRejected, 50)
	require.NoError(t, err)
	require.Equal(t, domain.StatusRejected, vs)

	tax2 := submitDoc(t, r, v.ID, domain.DocTaxCertificate)
	_, vs, err = r.vendors.ReviewDocument(ctx, tax2.ID, domain.StatusApproved, 50)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, vs)
}

// Concurrent reviews of different documents must converge on the same
// aggregate as a serial run.
func TestVendorRepository_ConcurrentReviews(t *testing.T) {
	r := testDB(t)
	ctx := context.Background()
	v := seedVendor(t, r)

	docs := []*domain.Document{
		submitDoc(t, r, v.ID, domain.DocBusinessLicense),
		submitDoc(t, r, v.ID, domain.DocTaxCertificate),
		submitDoc(t, r, v.ID, domain.DocIdentityProof),
	}

	var wg sync.WaitGroup
	for _, d := range docs {
		wg.Add(1)
		go func(docID int64) {
			defer wg.Done()
			_, _, err := r.vendors.ReviewDocument(ctx, docID, domain.StatusApproved, 50)
			assert.NoError(t, err)
		}(d.ID)
	}
	wg.Wait()

	got, err := r.vendors.GetByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, got.Status)
}

func TestVendorRepository_ExplicitOverride(t *testing.T) {
	r := testDB(t)
	ctx := context.Background()
	v := seedVendor(t, r)

	got, err := r.vendors.SetStatus(ctx, v.ID, domain.StatusApproved, 50)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, got.Status)
	require.NotNil(t, got.ReviewedBy)
	assert.Equal(t, int64(50), *got.ReviewedBy)
}

func TestVendorRepository_ListPendingOrdered(t *testing.T) {
	r := testDB(t)
	ctx := context.Background()

	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		identity := newIdentity(email, domain.RoleVendor)
		_, err := r.identities.CreateWithVendor(ctx, identity, email)
		require.NoError(t, err)
	}

	vendors, total, err := r.vendors.ListPending(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, vendors, 2)
}
