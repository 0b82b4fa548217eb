// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/finsight/backend/internal/integration/entrypoint/controller"
	"github.com/finsight/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	summaryController     *controller.SummaryController
	transactionController *controller.TransactionController
	ruleController        *controller.RuleController
	suggestionController  *controller.SuggestionController
	suggestRateLimiter    *middleware.RateLimiter
	authMiddleware        *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	summaryController *controller.SummaryController,
	transactionController *controller.TransactionController,
	ruleController *controller.RuleController,
	suggestionController *controller.SuggestionController,
	suggestRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:      healthController,
		summaryController:     summaryController,
		transactionController: transactionController,
		ruleController:        ruleController,
		suggestionController:  suggestionController,
		suggestRateLimiter:    suggestRateLimiter,
		authMiddleware:        authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	// Permissive CORS: browser clients call the API from any origin and
	// preflight OPTIONS requests must succeed without auth.
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	r.engine.Use(cors.New(corsConfig))

	// Setup routes
	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Health)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	// API v1 group
	v1 := r.engine.Group("/api/v1")
	{
		// Summary routes (require authentication)
		if r.summaryController != nil && r.authMiddleware != nil {
			summary := v1.Group("/summary")
			summary.Use(r.authMiddleware.Authenticate())
			{
				summary.GET("", r.summaryController.GetSummary)
				summary.GET("/stream", r.summaryController.StreamSummary)
			}
		}

		// Transaction routes (require authentication)
		if r.transactionController != nil && r.authMiddleware != nil {
			transactions := v1.Group("/transactions")
			transactions.Use(r.authMiddleware.Authenticate())
			{
				transactions.GET("", r.transactionController.List)
				transactions.POST("", r.transactionController.Create)
				transactions.PUT("/:id", r.transactionController.Update)
				transactions.DELETE("/:id", r.transactionController.Delete)
			}
		}

		// Category rule routes (require authentication)
		if r.ruleController != nil && r.authMiddleware != nil {
			categoryRules := v1.Group("/category-rules")
			categoryRules.Use(r.authMiddleware.Authenticate())
			{
				categoryRules.GET("", r.ruleController.List)
				categoryRules.POST("", r.ruleController.Create)
				categoryRules.DELETE("/:id", r.ruleController.Delete)
			}
		}

		// Category suggestion route (no auth, rate limited)
		if r.suggestionController != nil {
			suggest := v1.Group("/suggest-category")
			if r.suggestRateLimiter != nil {
				suggest.Use(r.suggestRateLimiter.Middleware())
			}
			{
				suggest.POST("", r.suggestionController.SuggestCategory)
			}
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
