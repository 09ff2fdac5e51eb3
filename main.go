package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"fitness-tracker/config"
	"fitness-tracker/handlers"
	"fitness-tracker/middleware"
	"fitness-tracker/models"
	"fitness-tracker/services"
	"fitness-tracker/utils"
	"fitness-tracker/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	cfg := config.Load()
	if missing := cfg.Validate(); len(missing) > 0 {
		log.Fatalf("❌ missing required settings: %s", strings.Join(missing, ", "))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := utils.OpenPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}
	if err := models.Migrate(db); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	if cfg.SeedCatalog {
		seeded, err := services.SeedCatalog(ctx, db)
		if err != nil {
			log.Fatal("failed to seed catalog:", err)
		}
		if seeded {
			log.Println("🌱 [SEED] default exercises, foods and achievements inserted")
		}
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // image uploads
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.AllowedOrigins, ","),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID, X-User-ID, X-User-Roles",
		ExposeHeaders:    "Content-Length, Content-Type, X-Request-ID",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	var identity fiber.Handler
	switch cfg.AuthMode {
	case config.AuthModeJWT:
		identity = middleware.JWTIdentityMiddleware(cfg.JWTSecret)
	default:
		// 🔐 Only Gateway requests past this point
		app.Use(middleware.GatewayAuthMiddleware(cfg.ServiceToken))
		identity = middleware.UserContextMiddleware()
	}

	var images utils.ImageStore
	if cfg.UploadsEnabled() {
		r2, err := utils.NewR2Store(ctx, utils.R2Config{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			AccessKeySecret: cfg.R2AccessSecret,
			Bucket:          cfg.R2Bucket,
			CDNBaseURL:      cfg.CDNBaseURL,
		})
		if err != nil {
			log.Fatal("failed to initialize R2 client:", err)
		}
		images = r2
	} else {
		if err := os.MkdirAll("./uploads", os.ModePerm); err != nil {
			log.Fatal("failed to ensure upload dir:", err)
		}
		images = &utils.LocalImageStore{Dir: "uploads", URLPrefix: "/uploads"}
		app.Static("/uploads", "./uploads")
	}

	activity := services.NewGormActivityStore(db)
	profileService := services.NewProfileService(db)
	weightService := services.NewWeightService(db, profileService)
	streakService := services.NewStreakService(db, activity)
	achievementService := services.NewAchievementService(db, activity, streakService)
	exerciseLogService := services.NewExerciseLogService(db)
	dietLogService := services.NewDietLogService(db)
	catalogService := services.NewCatalogService(db, images)

	handlers.SetupProfileRoutes(app, identity, profileService)
	handlers.SetupWeightRoutes(app, identity, weightService)
	handlers.SetupStreakRoutes(app, identity, streakService)
	handlers.SetupAchievementRoutes(app, identity, achievementService)
	handlers.SetupLogRoutes(app, identity, exerciseLogService, dietLogService)
	handlers.SetupCatalogRoutes(app, identity, catalogService)

	if cfg.AchievementSweepInterval > 0 {
		sweeper := workers.NewAchievementSweeper(profileService, achievementService)
		if _, err := sweeper.Start(ctx, cfg.AchievementSweepInterval); err != nil {
			log.Fatal("failed to start achievement sweep:", err)
		}
		log.Printf("✅ Achievement sweep running (every %s)", cfg.AchievementSweepInterval)
	}

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", cfg.Port)
	log.Printf("✅ Auth mode: %s", cfg.AuthMode)
	log.Printf("✅ CORS configured for origins: %s", strings.Join(cfg.AllowedOrigins, ","))

	<-ctx.Done()
	log.Println("Shutting down server...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
