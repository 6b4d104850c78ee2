package router

import (
	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/enterprise-pos/config"
	"github.com/yeremiapane/enterprise-pos/controllers"
	"github.com/yeremiapane/enterprise-pos/middlewares"
	"github.com/yeremiapane/enterprise-pos/models"
	"github.com/yeremiapane/enterprise-pos/services"
)

func SetupRouter(app *services.App, cfg config.ServerConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(cfg.CORSOrigins))
	r.Use(middlewares.LoggerMiddleware())
	if cfg.RateLimitRPS > 0 {
		r.Use(middlewares.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).RateLimit())
	}

	userCtrl := controllers.NewUserController(app)
	posCtrl := controllers.NewPOSController(app)
	menuCtrl := controllers.NewMenuController(app)
	categoryCtrl := controllers.NewMenuCategoryController(app)
	branchCtrl := controllers.NewBranchController(app)
	customerCtrl := controllers.NewCustomerController(app)
	orderCtrl := controllers.NewOrderController(app)
	receiptCtrl := controllers.NewReceiptController(app)
	notificationCtrl := controllers.NewNotificationController(app)
	adminCtrl := controllers.NewAdminController(app)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/login", userCtrl.Login)
	}

	// Browsers cannot send headers on upgrade, so the token comes in the query.
	ws := r.Group("/ws")
	ws.Use(middlewares.WebSocketAuthMiddleware())
	{
		ws.GET("", controllers.KDSHandler(app.Hub))
	}

	// ----------------------------------------------------------------
	//                      REGISTER (any staff)
	// ----------------------------------------------------------------
	pos := r.Group("/pos")
	pos.Use(middlewares.AuthMiddleware())
	{
		pos.GET("/profile", userCtrl.GetProfile)
		pos.GET("/settings", adminCtrl.GetSettings)
		pos.GET("/branches", branchCtrl.GetAllBranches)
		pos.PUT("/branch", posCtrl.SwitchBranch)
		pos.GET("/categories", categoryCtrl.GetAllCategories)

		pos.GET("/menu", menuCtrl.GetMenu)
		pos.GET("/menu/:item_id/addons", menuCtrl.GetItemAddOns)

		pos.GET("/cart", posCtrl.GetCart)
		pos.POST("/cart/items", posCtrl.AddItem)
		pos.PATCH("/cart/lines/:line_id", posCtrl.UpdateLine)
		pos.DELETE("/cart/lines/:line_id", posCtrl.RemoveLine)
		pos.DELETE("/cart", posCtrl.ClearCart)

		pos.PUT("/checkout", posCtrl.UpdateCheckout)
		pos.POST("/promo/verify", posCtrl.VerifyPromo)
		pos.GET("/quote", posCtrl.Quote)
		pos.POST("/checkout/settle", posCtrl.Settle)
		pos.POST("/checkout/cancel", posCtrl.Cancel)

		pos.GET("/customers/phone/:phone", customerCtrl.LookupByPhone)
		pos.POST("/customers", customerCtrl.CreateCustomer)
		pos.GET("/orders/:order_id/receipt", receiptCtrl.GetReceiptPDF)
	}

	// ----------------------------------------------------------------
	//                      BACK OFFICE (managers)
	// ----------------------------------------------------------------
	admin := r.Group("/admin")
	admin.Use(middlewares.AuthMiddleware(), middlewares.RequireRole(models.RoleManager))
	{
		admin.GET("/customers", customerCtrl.GetAllCustomers)
		admin.POST("/customers", customerCtrl.CreateCustomer)
		admin.GET("/customers/:customer_id", customerCtrl.GetCustomerByID)
		admin.PATCH("/customers/:customer_id", customerCtrl.UpdateCustomer)

		admin.GET("/orders", orderCtrl.GetAllOrders)
		admin.GET("/orders/:order_id", orderCtrl.GetOrderByID)
		admin.PATCH("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)
		admin.GET("/orders/:order_id/receipt", receiptCtrl.GetReceiptPDF)

		admin.GET("/accounting", adminCtrl.GetAccounting)
		admin.GET("/settings", adminCtrl.GetSettings)
		admin.PUT("/settings", adminCtrl.UpdateSettings)

		admin.GET("/branches", branchCtrl.GetAllBranches)
		admin.POST("/branches", branchCtrl.CreateBranch)
		admin.PATCH("/branches/:branch_id", branchCtrl.UpdateBranch)

		admin.GET("/categories", categoryCtrl.GetAllCategories)
		admin.POST("/categories", categoryCtrl.CreateCategory)
		admin.PATCH("/categories/:cat_id", categoryCtrl.UpdateCategory)
		admin.DELETE("/categories/:cat_id", categoryCtrl.DeleteCategory)

		admin.GET("/addons", menuCtrl.GetAllAddOns)
		admin.POST("/addons", menuCtrl.CreateAddOn)
		admin.PATCH("/addons/:addon_id", menuCtrl.UpdateAddOn)
		admin.DELETE("/addons/:addon_id", menuCtrl.DeleteAddOn)

		admin.GET("/menu-items", menuCtrl.GetAllMenuItems)
		admin.POST("/menu-items", menuCtrl.CreateMenuItem)
		admin.GET("/menu-items/:item_id", menuCtrl.GetMenuItemByID)
		admin.PATCH("/menu-items/:item_id", menuCtrl.UpdateMenuItem)
		admin.DELETE("/menu-items/:item_id", menuCtrl.DeleteMenuItem)

		admin.GET("/notifications", notificationCtrl.GetAllNotifications)
		admin.PATCH("/notifications/:notif_id/read", notificationCtrl.MarkAsRead)
		admin.POST("/notifications/read-all", notificationCtrl.MarkAllAsRead)

		admin.GET("/dashboard/stats", adminCtrl.GetDashboardStats)
		admin.GET("/dashboard/insight", adminCtrl.GetInsight)
		admin.GET("/dashboard/chart.png", adminCtrl.GetSalesChart)
	}

	return r
}
