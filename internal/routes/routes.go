package routes

import (
	"readly_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все HTTP маршруты.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers) {
	api := ginRouter.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.UserHandler.RegisterRoutes(api)
		appHandlers.BookHandler.RegisterRoutes(api)
		appHandlers.PremiumHandler.RegisterRoutes(api)
		appHandlers.EntitlementHandler.RegisterRoutes(api)
		appHandlers.ProgressHandler.RegisterRoutes(api)
		appHandlers.PurchaseHandler.RegisterRoutes(api)
	}
}
