package api

import (
	v1 "github.com/courseforge/courseforge/internal/api/v1"
	"github.com/courseforge/courseforge/internal/config"
	"github.com/courseforge/courseforge/internal/rest/middleware"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Health       *v1.HealthHandler
	Auth         *v1.AuthHandler
	Subscription *v1.SubscriptionHandler
	Billing      *v1.BillingHandler
	Refund       *v1.RefundHandler
	Admin        *v1.AdminHandler
	Dashboard    *v1.DashboardHandler
	User         *v1.UserHandler
}

func NewRouter(handlers Handlers, cfg *config.Configuration) *gin.Engine {
	router := gin.New()

	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware,
		middleware.CORSMiddleware,
		middleware.UserContextMiddleware,
		middleware.ErrorHandler(cfg),
	)

	router.GET("/health", handlers.Health.Health)

	v1Group := router.Group("/v1")
	registerV1Routes(v1Group, handlers)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	auth := router.Group("/auth")
	{
		auth.POST("/signup", handlers.Auth.SignUp)
	}

	subscriptions := router.Group("/subscriptions")
	{
		subscriptions.GET("/gateways", handlers.Subscription.ListGateways)
		subscriptions.POST("/:gateway", handlers.Subscription.Create)
		subscriptions.POST("/:gateway/confirm", handlers.Subscription.Confirm)
		subscriptions.POST("/:gateway/cancel", handlers.Subscription.Cancel)
	}

	users := router.Group("/users")
	{
		users.DELETE("/:id", handlers.User.Delete)
	}

	admin := router.Group("/admin")
	{
		admin.GET("/payments", handlers.Billing.ListPayments)

		admin.POST("/refunds", handlers.Refund.Create)
		admin.GET("/refunds", handlers.Refund.List)
		admin.POST("/refunds/process", handlers.Refund.Process)
		admin.POST("/refunds/bulk", handlers.Refund.Bulk)

		admin.POST("/billing", handlers.Billing.RecordManualBilling)
		admin.GET("/billing", handlers.Billing.ListBillingOperations)

		admin.POST("/invoices/generate", handlers.Billing.GenerateInvoice)

		// the dashboard is fetched by both verbs from older clients
		admin.GET("/dashboard", handlers.Dashboard.Summary)
		admin.POST("/dashboard", handlers.Dashboard.Summary)

		admin.GET("/admins", handlers.Admin.List)
		admin.POST("/admins", handlers.Admin.Add)
		admin.POST("/admins/remove", handlers.Admin.Remove)
	}
}
