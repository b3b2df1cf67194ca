package config

import (
	"os"
	"time"

	"github.com/AlexBuildsLTS/PantryAppAI-sub000/internal/api/handlers"
	"github.com/AlexBuildsLTS/PantryAppAI-sub000/internal/api/routes"
	"github.com/AlexBuildsLTS/PantryAppAI-sub000/internal/middleware"
	"github.com/AlexBuildsLTS/PantryAppAI-sub000/internal/utils"
	"github.com/AlexBuildsLTS/PantryAppAI-sub000/internal/utils/storage"
	"github.com/AlexBuildsLTS/PantryAppAI-sub000/pkg/cache"
	"github.com/AlexBuildsLTS/PantryAppAI-sub000/pkg/credential"
	"github.com/AlexBuildsLTS/PantryAppAI-sub000/pkg/household"
	"github.com/AlexBuildsLTS/PantryAppAI-sub000/pkg/jwt"
	"github.com/AlexBuildsLTS/PantryAppAI-sub000/pkg/pantry"
	"github.com/AlexBuildsLTS/PantryAppAI-sub000/pkg/scan"
	"github.com/AlexBuildsLTS/PantryAppAI-sub000/pkg/user"
	"github.com/AlexBuildsLTS/PantryAppAI-sub000/pkg/vision"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()
	invalidator := cache.NewInvalidator(cache.ConnectRedis())

	// Repository
	userRepository := user.NewUserRepository(db)
	householdRepository := household.NewHouseholdRepository(db)
	pantryRepository := pantry.NewPantryRepository(db)
	credentialRepository := credential.NewCredentialRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService)
	householdService := household.NewHouseholdService(householdRepository, userRepository)
	pantryService := pantry.NewPantryService(pantryRepository, householdService, invalidator)
	credentialService := credential.NewCredentialService(credentialRepository)
	scanService := scan.NewScanService(
		scan.NewSessionManager(),
		credentialService,
		vision.NewGateway(),
		pantryService,
		s3,
	)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	scanHandler := handlers.NewScanHandler(scanService, validator)
	pantryHandler := handlers.NewPantryHandler(pantryService, validator)
	householdHandler := handlers.NewHouseholdHandler(householdService, validator)
	credentialHandler := handlers.NewCredentialHandler(credentialService, validator)

	// routes
	routesConfig := routes.Config{
		App:               app,
		UserHandler:       userHandler,
		ScanHandler:       scanHandler,
		PantryHandler:     pantryHandler,
		HouseholdHandler:  householdHandler,
		CredentialHandler: credentialHandler,
		Middleware:        middlewares,
		JWTService:        jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
