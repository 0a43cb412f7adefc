package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/paluwagan/paluwagan-backend/internal/config"
	"github.com/paluwagan/paluwagan-backend/internal/handlers"
	"github.com/paluwagan/paluwagan-backend/internal/middleware"
)

// Handlers bundles the HTTP handlers wired into the router
type Handlers struct {
	Auth         *handlers.AuthHandler
	Member       *handlers.MemberHandler
	Transaction  *handlers.TransactionHandler
	Stats        *handlers.StatsHandler
	Recipient    *handlers.RecipientHandler
	Contribution *handlers.ContributionHandler
	Webhook      *handlers.WebhookHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, h *Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	// Add middleware
	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())

	// Public routes
	public := router.Group("/api/v1")
	{
		// Health check
		public.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status": "ok",
			})
		})

		// Auth routes
		auth := public.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
		}

		// Payment gateway callbacks
		public.POST("/webhooks/paymongo", h.Webhook.HandlePayMongo)
	}

	// Protected routes
	protected := router.Group("/api/v1")
	protected.Use(middleware.JWTAuthMiddleware(cfg))
	{
		// Member roster routes
		members := protected.Group("/members")
		{
			members.GET("", h.Member.GetAllMembers)
			members.GET("/count", h.Member.GetMemberCount)
			members.GET("/stats", h.Member.GetRosterStats)
			members.GET("/:id", h.Member.GetMemberByID)
			members.PUT("/:id", h.Member.UpdateMember)
			members.DELETE("/:id", h.Member.DeleteMember)
		}

		// Contribution ledger routes
		transactions := protected.Group("/transactions")
		{
			transactions.GET("", h.Transaction.GetAllTransactions)
			transactions.GET("/me", h.Transaction.GetMyTransactions)
			transactions.GET("/member/:id", h.Transaction.GetMemberTransactions)
		}

		// Statistics routes
		stats := protected.Group("/stats")
		{
			stats.GET("/summary", h.Stats.GetSummary)
			stats.GET("/summary/member/:id", h.Stats.GetMemberSummary)
			stats.GET("/members", h.Stats.GetAllMemberStats)
			stats.GET("/member/:id", h.Stats.GetMemberStats)
			stats.GET("/monthly/me", h.Stats.GetMyMonthlyRollup)
			stats.GET("/monthly/member/:id", h.Stats.GetMemberMonthlyRollup)
		}

		// Payout selection routes
		recipients := protected.Group("/recipients")
		{
			recipients.GET("/current", h.Recipient.GetCurrentRecipient)
			recipients.GET("/year/:year", h.Recipient.GetRecipientsByYear)
			recipients.GET("/deadline/me", h.Recipient.GetNextDeadline)
			recipients.POST("/select", h.Recipient.TriggerSelection)
		}

		// Checkout initiation
		contributions := protected.Group("/contributions")
		{
			contributions.POST("/checkout", h.Contribution.Checkout)
		}
	}

	return router
}
