package main

import (
	"context"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"

	"giftnest/internal/caching"
	"giftnest/internal/handlers"
	"giftnest/internal/jobs/background"
	"giftnest/internal/middleware"
	"giftnest/internal/repositories"
	"giftnest/internal/services"
	"giftnest/pkg/database"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, using environment variables")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := database.NewPool(databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	sessionSecret := os.Getenv("SESSION_SECRET")
	if sessionSecret == "" {
		sessionSecret = random.String(32)
		log.Printf("WARNING: SESSION_SECRET not set, sessions will not survive restarts")
	}
	secret := []byte(sessionSecret)

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			redisDB = db
		}
	}

	// Object storage is optional; without it scraped images are served
	// from the retailer URL only.
	var storage services.ObjectStorage
	if endpoint := os.Getenv("MINIO_ENDPOINT"); endpoint != "" {
		storage, err = services.NewMinioStorage(
			endpoint,
			os.Getenv("MINIO_ACCESS_KEY"),
			os.Getenv("MINIO_SECRET_KEY"),
			os.Getenv("MINIO_USE_SSL") == "true",
		)
		if err != nil {
			log.Printf("WARNING: MinIO unavailable, image archival disabled: %v", err)
			storage = nil
		} else if err := storage.EnsureBucketExists(context.Background(), services.ImageBucket); err != nil {
			log.Printf("WARNING: failed to ensure image bucket, archival disabled: %v", err)
			storage = nil
		}
	}

	familyRepo := repositories.NewFamilyRepo(pool)
	adminRepo := repositories.NewAdminUserRepo(pool)
	superadminRepo := repositories.NewSuperAdminRepo(pool)
	childRepo := repositories.NewChildRepo(pool)
	giftRepo := repositories.NewGiftRepo(pool)
	tokenRepo := repositories.NewResetTokenRepo(pool)

	cacheSvc := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB)

	mailer := services.NewBrevoMailer(
		os.Getenv("BREVO_API_KEY"),
		os.Getenv("BREVO_SENDER_EMAIL"),
		os.Getenv("BREVO_SENDER_NAME"),
		os.Getenv("RESET_BASE_URL"),
	)
	if !mailer.Enabled() {
		log.Printf("WARNING: BREVO_API_KEY not set, password reset emails disabled")
	}

	authSvc := services.NewAuthService(familyRepo, adminRepo, superadminRepo)
	if email := os.Getenv("SUPERADMIN_EMAIL"); email != "" {
		if err := authSvc.EnsureSuperadmin(context.Background(), email, os.Getenv("SUPERADMIN_PASSWORD")); err != nil {
			log.Fatalf("Superadmin bootstrap failed: %v", err)
		}
	}
	childSvc := services.NewChildService(childRepo, cacheSvc)
	giftSvc := services.NewGiftService(giftRepo, childRepo, cacheSvc)
	familySvc := services.NewFamilyService(familyRepo, adminRepo, cacheSvc)
	resetSvc := services.NewPasswordResetService(tokenRepo, adminRepo, cacheSvc, mailer)
	imageSvc := services.NewImageService(storage)

	authHandlers := handlers.NewAuthHandlers(authSvc, resetSvc, secret)
	giftHandlers := handlers.NewGiftHandlers(childSvc, giftSvc)
	adminHandlers := handlers.NewAdminHandlers(childSvc, giftSvc)
	superadminHandlers := handlers.NewSuperadminHandlers(familySvc, giftSvc)
	imageHandlers := handlers.NewImageHandlers(imageSvc)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc)

	scheduler, err := background.NewJobScheduler(tokenRepo, giftRepo)
	if err != nil {
		log.Fatalf("Failed to create job scheduler: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	e := echo.New()
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Pre(echoMiddleware.RemoveTrailingSlash())
	e.Use(middleware.Session(secret))

	// Public routes
	e.GET("/", authHandlers.Home)
	e.GET("/family-login", authHandlers.FamilyLoginPage)
	e.POST("/family-login", authHandlers.FamilyLogin)
	e.GET("/admin-login", authHandlers.AdminLoginPage)
	e.POST("/admin-login", authHandlers.AdminLogin)
	e.GET("/superadmin-login", authHandlers.SuperadminLoginPage)
	e.POST("/superadmin-login", authHandlers.SuperadminLogin)
	e.GET("/logout", authHandlers.Logout)
	e.POST("/password-reset/request", authHandlers.ForgotPassword)
	e.POST("/password-reset/confirm", authHandlers.ResetPassword)
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)

	// Family routes
	e.GET("/family", giftHandlers.FamilyHome, middleware.RequireFamily)
	e.GET("/child/:id", giftHandlers.ChildDetail, middleware.RequireFamily)
	e.POST("/gift/:id/purchase", giftHandlers.Purchase, middleware.RequireFamily)
	e.POST("/gift/:id/unmark", giftHandlers.Unmark, middleware.RequireFamily)

	// Admin routes
	admin := e.Group("/admin", middleware.RequireAdmin)
	admin.GET("", adminHandlers.Dashboard)
	admin.POST("/children", adminHandlers.CreateChild)
	admin.POST("/children/:id", adminHandlers.UpdateChild)
	admin.DELETE("/children/:id", adminHandlers.DeleteChild)
	admin.POST("/children/:id/gifts", adminHandlers.CreateGift)
	admin.POST("/gifts/:id", adminHandlers.UpdateGift)
	admin.DELETE("/gifts/:id", adminHandlers.DeleteGift)

	// Superadmin routes
	superadmin := e.Group("/superadmin", middleware.RequireSuperadmin)
	superadmin.GET("", superadminHandlers.Dashboard)
	superadmin.POST("/families", superadminHandlers.CreateFamily)
	superadmin.POST("/families/:id", superadminHandlers.UpdateFamily)
	superadmin.POST("/families/:id/deactivate", superadminHandlers.DeactivateFamily)
	superadmin.POST("/families/:id/reactivate", superadminHandlers.ReactivateFamily)
	superadmin.GET("/families/:id/admins", superadminHandlers.ListAdmins)
	superadmin.POST("/families/:id/admins", superadminHandlers.CreateAdmin)
	superadmin.POST("/admins/:id", superadminHandlers.UpdateAdmin)
	superadmin.DELETE("/admins/:id", superadminHandlers.DeleteAdmin)
	superadmin.GET("/deleted-gifts", superadminHandlers.ListDeletedGifts)
	superadmin.POST("/gifts/:id/restore", superadminHandlers.RestoreGift)

	// API routes (admin-only, used by the gift form)
	e.POST("/api/fetch-product-image", imageHandlers.FetchProductImage, middleware.RequireAdmin)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Fatal(e.Start(":" + port))
}
