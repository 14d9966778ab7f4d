package routes

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"tablebook/internal/authz"
	"tablebook/internal/handlers"
	"tablebook/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	jwtSecret []byte,
	users middleware.UserLookup,
	authHandler *handlers.AuthHandler,
	restaurantHandler *handlers.RestaurantHandler,
	tableHandler *handlers.TableHandler,
	reservationHandler *handlers.ReservationHandler,
	foodHandler *handlers.FoodHandler,
	paymentHandler *handlers.PaymentHandler,
	managerHandler *handlers.ManagerHandler,
	adminHandler *handlers.AdminHandler,
) *gin.Engine {

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.Use(middleware.AuthMiddleware(jwtSecret, users))

	// ---- public (AuthMiddleware пропускает их без токена)
	r.POST("/login", authHandler.Login)
	r.POST("/register", authHandler.Register)

	r.GET("/me", authHandler.Me)

	// RESTAURANTS (чтение открыто всем)
	restaurants := r.Group("/restaurants")
	{
		restaurants.GET("/", restaurantHandler.List)
		restaurants.GET("/:id", restaurantHandler.GetByID)
		restaurants.GET("/:id/tables", tableHandler.ListByRestaurant)

		admin := restaurants.Group("", middleware.RequireRoles(authz.RoleAdmin))
		{
			admin.POST("/", restaurantHandler.Create)
			admin.PUT("/:id", restaurantHandler.Update)
			admin.DELETE("/:id", restaurantHandler.Delete)
			admin.POST("/:id/tables", tableHandler.Create)
		}
	}

	// TABLES (Admin)
	tables := r.Group("/tables", middleware.RequireRoles(authz.RoleAdmin))
	{
		tables.PUT("/:id", tableHandler.Update)
		tables.DELETE("/:id", tableHandler.Delete)
	}

	// RESERVATIONS
	reservations := r.Group("/reservations")
	{
		reservations.POST("/", reservationHandler.Create)
		reservations.GET("/", reservationHandler.List)
		reservations.POST("/check-availability", reservationHandler.CheckAvailability)
		reservations.GET("/:id", reservationHandler.GetByID)
		reservations.DELETE("/:id", reservationHandler.Delete)
		reservations.PUT("/:id",
			middleware.RequireRoles(authz.RoleManager, authz.RoleAdmin),
			reservationHandler.Update,
		)
	}

	// FOODS
	foods := r.Group("/foods")
	{
		foods.GET("/", foodHandler.List)
		foods.GET("/:id", foodHandler.GetByID)

		staff := foods.Group("", middleware.RequireRoles(authz.RoleManager, authz.RoleAdmin))
		{
			staff.POST("/", foodHandler.Create)
			staff.PUT("/:id", foodHandler.Update)
			staff.DELETE("/:id", foodHandler.Delete)
		}
	}

	// PAYMENTS
	payments := r.Group("/payments")
	{
		payments.POST("/", paymentHandler.Initiate)
		payments.POST("/verify-sms", paymentHandler.VerifySMS)
		payments.GET("/result/:token", paymentHandler.GetResult)
		payments.GET("/", paymentHandler.List)
		payments.GET("/:id/receipt", paymentHandler.Receipt)
	}

	// MANAGER
	manager := r.Group("/manager", middleware.RequireRoles(authz.RoleManager, authz.RoleAdmin))
	{
		manager.GET("/users", managerHandler.ListUsers)
		manager.POST("/users/:id/block", managerHandler.BlockUser)
		manager.POST("/users/:id/unblock", managerHandler.UnblockUser)
	}

	// ADMIN
	admin := r.Group("/admin", middleware.RequireRoles(authz.RoleAdmin))
	{
		admin.GET("/users", adminHandler.ListUsers)
		admin.POST("/users/:id/block", adminHandler.BlockUser)
		admin.POST("/users/:id/unblock", adminHandler.UnblockUser)
		admin.DELETE("/users/:id", adminHandler.DeleteUser)
		admin.GET("/managers", adminHandler.ListManagers)
		admin.POST("/managers", adminHandler.CreateManager)
		admin.POST("/managers/:id/block", adminHandler.BlockUser)
		admin.POST("/managers/:id/unblock", adminHandler.UnblockUser)
		admin.DELETE("/managers/:id", adminHandler.DeleteUser)
	}

	return r
}
