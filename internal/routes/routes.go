package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"katador_backend/internal/handlers"
	"katador_backend/internal/middleware"
	"katador_backend/internal/models"
)

// AppHandlers — все хэндлеры приложения для регистрации маршрутов
type AppHandlers struct {
	Auth   *handlers.AuthHandler
	Credit *handlers.CreditHandler
	Admin  *handlers.AdminHandler
}

// RegisterRoutes регистрирует все маршруты приложения
func RegisterRoutes(router *gin.Engine, h *AppHandlers) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"service":   "katador backend",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	api := router.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.GET("/me", middleware.AuthMiddleware(), h.Auth.Me)
	}

	credits := api.Group("/credits")
	credits.Use(middleware.AuthMiddleware())
	{
		credits.POST("/consume", h.Credit.Consume)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware())
	admin.Use(middleware.RequireRoles(models.AccountRoleAdmin))
	{
		admin.GET("/accounts", h.Admin.ListLedgerAccounts)
	}
}
