package routes

import (
	"Foodgram-Backend/internal/api/handlers"
	"Foodgram-Backend/internal/middleware"
	"Foodgram-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App            *fiber.App
	UserHandler    handlers.UserHandler
	CatalogHandler handlers.CatalogHandler
	RecipeHandler  handlers.RecipeHandler
	Middleware     middleware.Middleware
	JWTService     jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Catalog()
	c.Recipes()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	auth := c.Middleware.AuthMiddleware(c.JWTService)
	// user routes
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", auth, c.UserHandler.Me)
		user.Post("/set_password", auth, c.UserHandler.SetPassword)
		user.Post("/forget", c.UserHandler.ForgotPassword)
		user.Post("/reset", c.UserHandler.ResetPassword)
		user.Get("/subscriptions", auth, c.UserHandler.GetSubscriptions)
		user.Get("/:id/subscribe", auth, c.UserHandler.Subscribe)
		user.Delete("/:id/subscribe", auth, c.UserHandler.Unsubscribe)
	}
}

func (c *Config) Catalog() {
	api := c.App.Group("/api/v1")

	api.Get("/tags", c.CatalogHandler.GetTags)
	api.Get("/tags/:id", c.CatalogHandler.GetTagDetail)
	api.Get("/ingredients", c.CatalogHandler.GetIngredients)
	api.Get("/ingredients/:id", c.CatalogHandler.GetIngredientDetail)
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/v1/recipes")
	auth := c.Middleware.AuthMiddleware(c.JWTService)
	optional := c.Middleware.OptionalAuthMiddleware(c.JWTService)

	// download must come before the :id routes
	recipes.Get("/download_shopping_cart", auth, c.RecipeHandler.DownloadShoppingCart)

	recipes.Get("", optional, c.RecipeHandler.GetRecipes)
	recipes.Post("", auth, c.RecipeHandler.CreateRecipe)
	recipes.Get("/:id", optional, c.RecipeHandler.GetRecipeDetail)
	recipes.Put("/:id", auth, c.RecipeHandler.UpdateRecipe)
	recipes.Patch("/:id", auth, c.RecipeHandler.UpdateRecipe)
	recipes.Delete("/:id", auth, c.RecipeHandler.DeleteRecipe)

	// toggle adds ride on GET, removals on DELETE
	recipes.Get("/:id/favorite", auth, c.RecipeHandler.AddFavorite)
	recipes.Delete("/:id/favorite", auth, c.RecipeHandler.RemoveFavorite)
	recipes.Get("/:id/shopping_cart", auth, c.RecipeHandler.AddToShoppingCart)
	recipes.Delete("/:id/shopping_cart", auth, c.RecipeHandler.RemoveFromShoppingCart)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
