package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/classiclink/ledger-api/internal/config"
	domainRepo "github.com/classiclink/ledger-api/internal/domain/repository"
	"github.com/classiclink/ledger-api/internal/presentation/http/handler"
	"github.com/classiclink/ledger-api/internal/presentation/http/middleware"
	"github.com/classiclink/ledger-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth        *handler.AuthHandler
	Posting     *handler.PostingHandler
	Transaction *handler.TransactionHandler
	Customer    *handler.CustomerHandler
	Item        *handler.ItemHandler
	Account     *handler.AccountHandler
	TaxCode     *handler.TaxCodeHandler
	Settings    *handler.SettingsHandler
	User        *handler.UserHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-user rate limiter
		limiterCfg := middleware.DefaultRateLimiterConfig()
		if deps.Cfg.RateLimit.Requests > 0 && deps.Cfg.RateLimit.Duration > 0 {
			limiterCfg.RequestsPerSecond = float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration)
			limiterCfg.BurstSize = deps.Cfg.RateLimit.Requests
		}
		rateLimiter := middleware.NewUserRateLimiter(limiterCfg)
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.RefreshToken)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Opt-in replay protection for mutating master data routes; clients
	// that send an Idempotency-Key get the cached response on retry.
	idem := middleware.Idempotency(middleware.IdempotencyConfig{
		Repo: deps.IdempotencyRepo,
	})

	// Profile routes
	protected.GET("/profile", h.Auth.GetProfile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	// Ledger settings
	protected.GET("/settings/ledger", h.Settings.Get)
	protected.PUT("/settings/ledger", idem, h.Settings.Update)

	registerPostingRoutes(protected, h, deps)
	registerTransactionRoutes(protected, h)
	registerCustomerRoutes(protected, h, idem)
	registerItemRoutes(protected, h, idem)
	registerAccountRoutes(protected, h, idem)
	registerTaxCodeRoutes(protected, h, idem)
	registerUserRoutes(protected, h)
}

func registerPostingRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	postings := protected.Group("/postings")
	{
		// Posting consumes document numbers, so replays must be deduplicated
		postings.POST("", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Posting.Create)
		postings.GET("/next-number", h.Posting.NextNumber)
		postings.GET("/:id/verify", h.Posting.Verify)
	}
}

func registerTransactionRoutes(protected *gin.RouterGroup, h *Handlers) {
	transactions := protected.Group("/transactions")
	{
		transactions.GET("", h.Transaction.List)
		transactions.GET("/:id", h.Transaction.Get)
		transactions.GET("/by-number/:type/:number", h.Transaction.GetByDocumentNumber)
	}
}

func registerCustomerRoutes(protected *gin.RouterGroup, h *Handlers, idem gin.HandlerFunc) {
	customers := protected.Group("/customers")
	customers.Use(idem)
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
		customers.GET("/:id/tax-links", h.Customer.GetTaxLinks)
		customers.PUT("/:id/tax-links", h.Customer.SetTaxLinks)
	}
}

func registerItemRoutes(protected *gin.RouterGroup, h *Handlers, idem gin.HandlerFunc) {
	items := protected.Group("/items")
	items.Use(idem)
	{
		items.GET("", h.Item.List)
		items.POST("", h.Item.Create)
		items.GET("/:id", h.Item.Get)
		items.PUT("/:id", h.Item.Update)
		items.DELETE("/:id", h.Item.Delete)
		items.GET("/:id/tax-links", h.Item.GetTaxLinks)
		items.PUT("/:id/tax-links", h.Item.SetTaxLinks)
	}
}

func registerAccountRoutes(protected *gin.RouterGroup, h *Handlers, idem gin.HandlerFunc) {
	accounts := protected.Group("/accounts")
	accounts.Use(idem)
	{
		accounts.GET("", h.Account.List)
		accounts.POST("", h.Account.Create)
		accounts.GET("/:id", h.Account.Get)
		accounts.PUT("/:id", h.Account.Update)
		accounts.GET("/:id/balance", h.Account.GetBalance)
		accounts.GET("/:id/entries", h.Account.ListEntries)
	}
}

func registerTaxCodeRoutes(protected *gin.RouterGroup, h *Handlers, idem gin.HandlerFunc) {
	taxCodes := protected.Group("/tax-codes")
	taxCodes.Use(idem)
	{
		taxCodes.GET("", h.TaxCode.List)
		taxCodes.POST("", h.TaxCode.Create)
		taxCodes.GET("/:id", h.TaxCode.Get)
		taxCodes.PUT("/:id", h.TaxCode.Update)
		taxCodes.DELETE("/:id", h.TaxCode.Delete)
	}
}

func registerUserRoutes(protected *gin.RouterGroup, h *Handlers) {
	users := protected.Group("/users")
	users.Use(middleware.RequireRole("admin"))
	{
		users.GET("", h.User.List)
		users.GET("/:id", h.User.Get)
		users.PUT("/:id", h.User.Update)
		users.DELETE("/:id", h.User.Delete)
	}
}
