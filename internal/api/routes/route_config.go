package routes

import (
	"github.com/AlexBuildsLTS/PantryAppAI-sub000/internal/api/handlers"
	"github.com/AlexBuildsLTS/PantryAppAI-sub000/internal/middleware"
	"github.com/AlexBuildsLTS/PantryAppAI-sub000/pkg/jwt"
	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App               *fiber.App
	UserHandler       handlers.UserHandler
	ScanHandler       handlers.ScanHandler
	PantryHandler     handlers.PantryHandler
	HouseholdHandler  handlers.HouseholdHandler
	CredentialHandler handlers.CredentialHandler
	Middleware        middleware.Middleware
	JWTService        jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Scans()
	c.PantryItems()
	c.Households()
	c.Credentials()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
	}
}

func (c *Config) Scans() {
	scans := c.App.Group("/api/v1/scans", c.Middleware.AuthMiddleware(c.JWTService))

	scans.Post("", c.ScanHandler.CreateScan)
	scans.Get("/:id", c.ScanHandler.GetScan)
	scans.Patch("/:id/selection", c.ScanHandler.ToggleSelection)
	scans.Delete("/:id", c.ScanHandler.CancelScan)
	scans.Post("/:id/commit", c.ScanHandler.CommitScan)
}

func (c *Config) PantryItems() {
	items := c.App.Group("/api/v1/pantry-items", c.Middleware.AuthMiddleware(c.JWTService))
	items.Get("/dashboard", c.PantryHandler.GetDashboardStats)

	items.Get("", c.PantryHandler.GetPantryItems)
	items.Get("/:id", c.PantryHandler.GetPantryItemDetails)
	items.Put("/:id", c.PantryHandler.UpdatePantryItem)
	items.Delete("/:id", c.PantryHandler.DeletePantryItem)
	items.Post("/mark", c.PantryHandler.MarkPantryItem)
}

func (c *Config) Households() {
	households := c.App.Group("/api/v1/households", c.Middleware.AuthMiddleware(c.JWTService))

	households.Get("/me", c.HouseholdHandler.GetMyHousehold)
	households.Post("/join", c.HouseholdHandler.JoinHousehold)
	households.Post("/invite-code", c.HouseholdHandler.RotateInviteCode)
}

func (c *Config) Credentials() {
	credentials := c.App.Group("/api/v1/credentials", c.Middleware.AuthMiddleware(c.JWTService))

	credentials.Put("", c.CredentialHandler.StoreCredential)
	credentials.Delete("", c.CredentialHandler.DeleteCredential)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
