package handlers

import (
	"github.com/gin-gonic/gin"
)

// Handlers groups every HTTP handler served under the API version prefix.
type Handlers struct {
	Auth         *AuthHandler
	Profiles     *ProfileHandler
	Categories   *CategoryHandler
	Transactions *TransactionHandler
	Summary      *SummaryHandler
}

// Register mounts the public and session-protected routes on v1.
func (h *Handlers) Register(v1 *gin.RouterGroup, authenticate gin.HandlerFunc) {
	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/logout", h.Auth.Logout)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(authenticate)

	protected.GET("/me", h.Auth.Me)

	profiles := protected.Group("/profiles")
	profiles.POST("", h.Profiles.CreateProfile)
	profiles.GET("", h.Profiles.GetProfiles)
	profiles.GET("/:id", h.Profiles.GetProfileByID)
	profiles.PUT("/:id", h.Profiles.UpdateProfile)
	profiles.DELETE("/:id", h.Profiles.DeleteProfile)

	categories := protected.Group("/categories")
	categories.POST("", h.Categories.CreateCategory)
	categories.GET("", h.Categories.GetCategories)
	categories.GET("/:id", h.Categories.GetCategoryByID)
	categories.PUT("/:id", h.Categories.UpdateCategory)
	categories.DELETE("/:id", h.Categories.DeleteCategory)

	transactions := protected.Group("/transactions")
	transactions.POST("", h.Transactions.CreateTransaction)
	transactions.GET("", h.Transactions.GetTransactions)
	transactions.GET("/:id", h.Transactions.GetTransactionByID)
	transactions.PUT("/:id", h.Transactions.UpdateTransaction)
	transactions.DELETE("/:id", h.Transactions.DeleteTransaction)

	protected.GET("/summary", h.Summary.GetSummary)
	protected.GET("/ledger/check", h.Summary.CheckLedger)
}
