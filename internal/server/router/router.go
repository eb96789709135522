package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"stocktake/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(products *handlers.ProductHandler, inventories *handlers.InventoryHandler, dashboard *handlers.DashboardHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	api := r.Group("/api")

	api.GET("/products", products.List)
	api.POST("/products", products.Create)
	api.PUT("/products", products.Update)
	api.DELETE("/products", products.Delete)

	api.GET("/inventories", inventories.List)
	api.POST("/inventories", inventories.Create)
	api.PUT("/inventories", inventories.Update)
	api.GET("/inventories/:id", inventories.Get)
	api.DELETE("/inventories/:id", inventories.Delete)

	api.POST("/inventories/:id/products", inventories.AddEntry)
	api.POST("/inventories/:id/products/quick-add", inventories.QuickAdd)
	api.PUT("/inventories/:id/products/:productId", inventories.UpdateEntry)
	api.DELETE("/inventories/:id/products/:productId", inventories.RemoveEntry)

	api.GET("/dashboard", dashboard.Get)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
