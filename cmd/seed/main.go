package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"vendorhub/internal/config"
	"vendorhub/internal/database"
	"vendorhub/internal/domain"
	"vendorhub/internal/repository"
)

// Seeds a local database with a verified staff account per back-office
// role plus one sample vendor, so the review queue can be exercised
// right after startup.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM products")
	db.Exec("DELETE FROM documents")
	db.Exec("DELETE FROM otp_challenges")
	db.Exec("DELETE FROM vendors")
	db.Exec("DELETE FROM identities")

	identities := repository.NewIdentityRepository(db)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	seedStaff(ctx, identities, "admin@vendorhub.local", "admin123", domain.RoleAdmin)
	seedStaff(ctx, identities, "manager@vendorhub.local", "manager123", domain.RoleVendorManager)
	seedStaff(ctx, identities, "warehouse@vendorhub.local", "warehouse123", domain.RoleWarehouseManager)

	vendorHash, _ := bcrypt.GenerateFromPassword([]byte("vendor123"), bcrypt.DefaultCost)
	vendorIdentity := &domain.Identity{
		Email:        "vendor@vendorhub.local",
		PasswordHash: string(vendorHash),
		Role:         domain.RoleVendor,
		Verified:     true,
		Active:       true,
	}
	if _, err := identities.CreateWithVendor(ctx, vendorIdentity, "Sample Trading LLC"); err != nil {
		log.Fatal("vendor seed failed:", err)
	}
	log.Println("Vendor created: vendor@vendorhub.local / vendor123 (pending review)")

	log.Println("Seed complete")
}

func seedStaff(ctx context.Context, identities *repository.IdentityRepository, email, password string, role domain.Role) {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	identity := &domain.Identity{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Verified:     true,
		Active:       true,
	}
	if err := identities.Create(ctx, identity); err != nil {
		log.Fatalf("seed %s failed: %v", email, err)
	}
	log.Printf("%s created: %s / %s", role, email, password)
}
