package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ssemanda/boutique/internal/server/handlers"
)

// Handlers groups the HTTP adapters wired into the engine.
type Handlers struct {
	Products  *handlers.ProductHandler
	Orders    *handlers.OrderHandler
	Finance   *handlers.FinanceHandler
	Dashboard *handlers.DashboardHandler
	Backup    *handlers.BackupHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/products", h.Products.List)
		api.POST("/products", h.Products.Create)
		api.PUT("/products/:id", h.Products.Replace)
		api.DELETE("/products/:id", h.Products.Delete)

		api.GET("/orders", h.Orders.List)
		api.POST("/orders", h.Orders.Create)
		api.GET("/orders/export", h.Orders.ExportCSV)

		api.GET("/expenses", h.Finance.ListExpenses)
		api.POST("/expenses", h.Finance.CreateExpense)
		api.DELETE("/expenses/:id", h.Finance.DeleteExpense)

		api.GET("/finance/stock-purchases", h.Finance.ListStockPurchases)
		api.POST("/finance/stock-purchases", h.Finance.CreateStockPurchase)
		api.GET("/finance/withdrawals", h.Finance.ListWithdrawals)
		api.POST("/finance/withdrawals", h.Finance.CreateWithdrawal)
		api.GET("/finance/injections", h.Finance.ListInjections)
		api.POST("/finance/injections", h.Finance.CreateInjection)
		api.GET("/finance/audit-trail", h.Finance.AuditTrail)
		api.GET("/finance/summary", h.Finance.Summary)

		api.GET("/dashboard", h.Dashboard.Get)

		api.GET("/backup", h.Backup.Export)
		api.POST("/backup", h.Backup.Import)
	}

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
