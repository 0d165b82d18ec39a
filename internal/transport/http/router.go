package http

import (
	"github.com/Ramaseck1/njabatechBack-sub000/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// RouterDeps carries everything the HTTP surface needs.
type RouterDeps struct {
	Orders       service.OrderService
	Lifecycle    service.LifecycleService
	Catalog      service.CatalogService
	AccessSecret string
	Log          *zap.Logger
	IsDev        bool
}

func Router(deps RouterDeps) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	orderHandler := NewOrderHandler(deps.Orders, deps.Lifecycle, deps.Log, deps.IsDev)
	productHandler := NewProductHandler(deps.Catalog, deps.Log, deps.IsDev)

	// Public catalog reads.
	r.GET("/produits", productHandler.ListProducts)
	r.GET("/produits/:id", productHandler.GetProduct)

	authed := r.Group("/", AuthRequired(deps.AccessSecret, deps.Log))

	produits := authed.Group("/produits", RequireRole(service.RoleVendor, service.RoleAdmin))
	{
		produits.POST("", productHandler.CreateProduct)
		produits.PATCH("/:id", productHandler.UpdateProduct)
		produits.DELETE("/:id", productHandler.DeleteProduct)
		produits.PATCH("/:id/stock", productHandler.AdjustStock)
	}

	commandes := authed.Group("/commandes")
	{
		commandes.POST("", RequireRole(service.RoleClient, service.RoleAdmin), orderHandler.PlaceOrder)
		commandes.GET("", orderHandler.ListOrders)
		commandes.GET("/stats-gie", RequireRole(service.RoleVendor), orderHandler.VendorStats)
		commandes.GET("/:id", orderHandler.GetOrder)
		commandes.PATCH("/:id/statut", RequireRole(service.RoleVendor, service.RoleAdmin), orderHandler.UpdateOrderStatus)

		ligne := commandes.Group("/produit/:id", RequireRole(service.RoleVendor))
		{
			ligne.PATCH("/en-preparation", orderHandler.MarkItemPreparing)
			ligne.PATCH("/pret", orderHandler.MarkItemReady)
			ligne.PATCH("/annuler", orderHandler.CancelItem)
		}
	}

	return r
}
