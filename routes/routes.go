package routes

import (
	"backend/configs"
	"backend/controllers"
	"backend/entity"
	"backend/middlewares"
	"backend/pkg/rbac"
	"backend/repository"
	"backend/services"
	"backend/ws"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, cfg *configs.Config) {
	r.Use(middlewares.CORSMiddleware())
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	db := configs.DB()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// Services
	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	cartSvc := services.NewCartService(db, cartRepo, menuRepo)
	orderSvc := services.NewOrderService(db, orderRepo, cartRepo, userRepo, groupRepo)
	groupSvc := services.NewGroupService(groupRepo, userRepo)

	hub := ws.NewOrderHub()
	orderSvc.Notifier = hub

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc)
	categoryCtrl := controllers.NewCategoryController(menuRepo)
	menuCtrl := controllers.NewMenuController(menuRepo)
	cartCtrl := controllers.NewCartController(cartSvc)
	orderCtrl := controllers.NewOrderController(orderSvc)
	managerRosterCtrl := controllers.NewGroupController(groupSvc, entity.GroupManager)
	crewRosterCtrl := controllers.NewGroupController(groupSvc, entity.GroupDeliveryCrew)

	auth := middlewares.AuthMiddleware(userRepo, cfg.JWTSecret)

	// Auth (public)
	a := r.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
	}
	a.GET("/me", auth, authCtrl.Me)

	// Catalog: reads for everyone authenticated, writes manager-only
	catalog := r.Group("/", auth, middlewares.RequirePermission(rbac.Catalog))
	{
		catalog.GET("/categories", categoryCtrl.List)
		catalog.POST("/categories", categoryCtrl.Create)
		catalog.GET("/categories/:id", categoryCtrl.Detail)
		catalog.PUT("/categories/:id", categoryCtrl.Update)
		catalog.PATCH("/categories/:id", categoryCtrl.Update)
		catalog.DELETE("/categories/:id", categoryCtrl.Delete)

		catalog.GET("/menu-items", menuCtrl.List)
		catalog.POST("/menu-items", menuCtrl.Create)
		catalog.GET("/menu-items/:id", menuCtrl.Detail)
		catalog.PUT("/menu-items/:id", menuCtrl.Update)
		catalog.PATCH("/menu-items/:id", menuCtrl.Update)
		catalog.DELETE("/menu-items/:id", menuCtrl.Delete)
	}

	// Group rosters: manager-exclusive for every verb
	groups := r.Group("/groups", auth, middlewares.RequirePermission(rbac.GroupMembership))
	{
		groups.GET("/manager/users", managerRosterCtrl.List)
		groups.POST("/manager/users", managerRosterCtrl.Add)
		groups.DELETE("/manager/users/:id", managerRosterCtrl.Remove)

		groups.GET("/delivery-crew/users", crewRosterCtrl.List)
		groups.POST("/delivery-crew/users", crewRosterCtrl.Add)
		groups.DELETE("/delivery-crew/users/:id", crewRosterCtrl.Remove)
	}

	// Cart: always the caller's own cart
	cart := r.Group("/cart", auth, middlewares.RequirePermission(rbac.Cart))
	{
		cart.GET("/menu-items", cartCtrl.List)
		cart.POST("/menu-items", cartCtrl.Add)
		cart.DELETE("/menu-items", cartCtrl.Clear)
	}

	// Orders
	orders := r.Group("/orders", auth)
	{
		orders.GET("", middlewares.RequirePermission(rbac.OrderCollection), orderCtrl.List)
		orders.POST("", middlewares.RequirePermission(rbac.OrderCollection), orderCtrl.Create)

		orders.GET("/:id", middlewares.RequirePermission(rbac.OrderDetail), orderCtrl.Detail)
		orders.PUT("/:id", middlewares.RequirePermission(rbac.OrderDetail), orderCtrl.Update)
		orders.PATCH("/:id", middlewares.RequirePermission(rbac.OrderDetail), orderCtrl.Update)
		orders.DELETE("/:id", middlewares.RequirePermission(rbac.OrderDetail), orderCtrl.Delete)
	}

	// Order event stream
	r.GET("/ws/orders", auth, hub.Serve)
}
