package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/mazingira/donations-backend/internal/config"
	"github.com/mazingira/donations-backend/internal/handlers"
	"github.com/mazingira/donations-backend/internal/middleware"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	orgHandler *handlers.OrganizationHandler,
	donationHandler *handlers.DonationHandler,
	storyHandler *handlers.StoryHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	api.Get("/health", healthHandler.Check)

	// Auth — signup/login are public, the rest require a token
	auth := api.Group("/auth")
	auth.Post("/signup", authHandler.Signup)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", middleware.JWTProtected(cfg), authHandler.Me)
	auth.Put("/update-password", middleware.JWTProtected(cfg), authHandler.UpdatePassword)

	// Organizations — listing is public, applying requires a token,
	// approval and deletion are admin-only
	orgs := api.Group("/organizations")
	orgs.Get("/", orgHandler.List)
	orgs.Post("/apply", middleware.JWTProtected(cfg), orgHandler.Apply)
	orgs.Put("/:id/approve", middleware.JWTProtected(cfg), middleware.AdminRequired(db, cfg), orgHandler.Approve)
	orgs.Delete("/:id", middleware.JWTProtected(cfg), middleware.AdminRequired(db, cfg), orgHandler.Delete)

	// Donations — all routes require a token; ownership is enforced in
	// the service layer
	donations := api.Group("/donations", middleware.JWTProtected(cfg))
	donations.Post("/", donationHandler.Create)
	donations.Get("/", donationHandler.ListMine)
	donations.Delete("/:id", donationHandler.Delete)

	// Stories — reading is public, posting requires a token, editing and
	// deletion are admin-only
	stories := api.Group("/stories")
	stories.Get("/organization/:org_id", storyHandler.ListByOrganization)
	stories.Post("/:org_id", middleware.JWTProtected(cfg), storyHandler.Create)
	stories.Put("/:id", middleware.JWTProtected(cfg), middleware.AdminRequired(db, cfg), storyHandler.Update)
	stories.Delete("/:id", middleware.JWTProtected(cfg), middleware.AdminRequired(db, cfg), storyHandler.Delete)
}
