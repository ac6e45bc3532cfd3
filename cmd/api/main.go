package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"vendorhub/internal/config"
	"vendorhub/internal/database"
	"vendorhub/internal/middleware"
	"vendorhub/internal/modules/auth"
	"vendorhub/internal/modules/catalog"
	"vendorhub/internal/modules/events"
	"vendorhub/internal/modules/vendor"
	"vendorhub/internal/pkg/blobstore"
	jwtsvc "vendorhub/internal/pkg/jwt"
	"vendorhub/internal/pkg/mailer"
	"vendorhub/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal(err)
	}

	identityRepo := repository.NewIdentityRepository(db)
	otpRepo := repository.NewOTPRepository(db)
	vendorRepo := repository.NewVendorRepository(db)
	productRepo := repository.NewProductRepository(db)

	tokens := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)
	blobs := blobstore.NewDiskStore(cfg.UploadDir)

	var mail mailer.Mailer
	switch cfg.MailBackend {
	case "smtp":
		mail = mailer.NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom)
	default:
		mail = mailer.NewConsole(true)
	}

	hub := events.NewHub()
	defer hub.Close()

	authService := auth.NewService(
		identityRepo,
		otpRepo,
		tokens,
		mail,
		hub,
		cfg.OTPPepper,
		cfg.OTPTTL,
		cfg.OTPResendCooldown,
	)
	authHandler := auth.NewHandler(authService)

	vendorService := vendor.NewService(vendorRepo, blobs, hub)
	vendorHandler := vendor.NewHandler(vendorService)

	catalogService := catalog.NewService(productRepo, vendorRepo, hub)
	catalogHandler := catalog.NewHandler(catalogService)

	eventsHandler := events.NewHandler(hub)

	r := gin.New()
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.Authenticate(tokens))
		{
			vendorHandler.RegisterRoutes(protected)
			catalogHandler.RegisterRoutes(protected)

			feed := protected.Group("")
			feed.Use(middleware.RequireReviewer())
			eventsHandler.RegisterRoutes(feed)
		}
	}

	log.Printf("listening on %s", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
