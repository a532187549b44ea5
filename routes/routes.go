package routes

import (
	"food-ordering-api/handlers"
	"food-ordering-api/middleware"
	"food-ordering-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Auth
		public.POST("/auth/register", handlers.Register)
		public.POST("/auth/login", handlers.Login)

		// Catalog browsing (no auth needed)
		public.GET("/restaurants", handlers.ListRestaurants)
		public.GET("/restaurants/:id", handlers.GetRestaurant)
		public.GET("/restaurants/:id/menu", handlers.GetMenu)
		public.GET("/restaurants/:id/reviews", handlers.ListReviews)
		public.GET("/categories", handlers.ListCategories)

		// State machine info (great for docs/Postman)
		public.GET("/state-machine", handlers.GetStateMachineInfo)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/profile", handlers.GetProfile)
		auth.PUT("/profile", handlers.UpdateProfile)

		// Address book
		auth.GET("/addresses", handlers.ListAddresses)
		auth.POST("/addresses", handlers.AddAddress)
		auth.PUT("/addresses/:id", handlers.UpdateAddress)
		auth.DELETE("/addresses/:id", handlers.DeleteAddress)
		auth.PUT("/addresses/:id/default", handlers.SetDefaultAddress)

		// Cart
		auth.GET("/cart", handlers.ViewCart)
		auth.GET("/cart/count", handlers.CartCount)
		auth.POST("/cart/add", handlers.AddToCart)
		auth.POST("/cart/update", handlers.UpdateCartItem)
		auth.POST("/cart/remove", handlers.RemoveFromCart)
		auth.DELETE("/cart", handlers.ClearCart)
		auth.POST("/cart/checkout", handlers.Checkout)

		// Orders
		auth.GET("/orders", handlers.ListOrders)
		auth.GET("/orders/:id", handlers.GetOrder)
		auth.GET("/orders/:id/qrcode", handlers.OrderQRCode)
		auth.PUT("/orders/:id/cancel", handlers.CancelOrder)
		auth.PUT("/orders/:id/items/:itemId", handlers.UpdateOrderItem)
		auth.DELETE("/orders/:id", handlers.DeleteOrder)

		// Reviews
		auth.POST("/restaurants/:id/reviews", handlers.CreateReview)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleAdmin))
	{
		// Order fulfilment
		admin.GET("/orders", handlers.AdminGetAllOrders)
		admin.PUT("/orders/:id/status", handlers.AdminUpdateOrderStatus)
		admin.PUT("/orders/:id/payment", handlers.AdminUpdatePaymentStatus)
		admin.DELETE("/orders/:id", handlers.AdminDeleteOrder)

		// Catalog management
		admin.POST("/restaurants", handlers.AdminCreateRestaurant)
		admin.PUT("/restaurants/:id", handlers.AdminUpdateRestaurant)
		admin.DELETE("/restaurants/:id", handlers.AdminDeleteRestaurant)
		admin.POST("/dishes", handlers.AdminCreateDish)
		admin.PUT("/dishes/:id", handlers.AdminUpdateDish)
		admin.DELETE("/dishes/:id", handlers.AdminDeleteDish)
		admin.POST("/categories", handlers.AdminCreateCategory)
		admin.PUT("/categories/:id", handlers.AdminUpdateCategory)
		admin.DELETE("/categories/:id", handlers.AdminDeleteCategory)

		// User administration
		admin.GET("/users", handlers.AdminGetAllUsers)
		admin.PUT("/users/:id/role", handlers.AdminToggleUserRole)
		admin.DELETE("/users/:id", handlers.AdminDeleteUser)
	}
}
