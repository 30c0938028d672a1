package config

import (
	"Foodgram-Backend/internal/api/handlers"
	"Foodgram-Backend/internal/api/routes"
	"Foodgram-Backend/internal/middleware"
	"Foodgram-Backend/internal/utils"
	"Foodgram-Backend/internal/utils/storage"
	"Foodgram-Backend/pkg/catalog"
	"Foodgram-Backend/pkg/jwt"
	"Foodgram-Backend/pkg/recipe"
	"Foodgram-Backend/pkg/user"
	"os"
	"time"

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

	// Repository
	userRepository := user.NewUserRepository(db)
	catalogRepository := catalog.NewCatalogRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService)
	catalogService := catalog.NewCatalogService(catalogRepository)
	recipeService := recipe.NewRecipeService(recipeRepository, catalogRepository, userRepository, s3)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	recipeHandler := handlers.NewRecipeHandler(recipeService)

	routesConfig := routes.Config{
		App:            app,
		UserHandler:    userHandler,
		CatalogHandler: catalogHandler,
		RecipeHandler:  recipeHandler,
		Middleware:     middlewares,
		JWTService:     jwtService,
	}

	routesConfig.Setup()

	return app, nil
}
