package router

import (
	"github.com/gin-gonic/gin"

	"github.com/shopledger/backend/internal/infrastructure/auth"
	"github.com/shopledger/backend/internal/interfaces/http/handler"
	"github.com/shopledger/backend/internal/interfaces/http/middleware"
)

// Handlers bundles every handler the API exposes
type Handlers struct {
	Auth        *handler.AuthHandler
	Product     *handler.ProductHandler
	Customer    *handler.CustomerHandler
	Stock       *handler.StockHandler
	Sale        *handler.SaleHandler
	Installment *handler.InstallmentHandler
	Finance     *handler.FinanceHandler
	System      *handler.SystemHandler
}

// APIRoutes registers the full API surface. Everything except login and the
// health endpoints sits behind bearer-token auth.
type APIRoutes struct {
	handlers    Handlers
	authService *auth.Service
}

// NewAPIRoutes creates the route registrar for the API
func NewAPIRoutes(handlers Handlers, authService *auth.Service) *APIRoutes {
	return &APIRoutes{handlers: handlers, authService: authService}
}

// RegisterRoutes implements RouteRegistrar
func (r *APIRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/login", r.handlers.Auth.Login)
	rg.GET("/system/health", r.handlers.System.Health)
	rg.GET("/system/info", r.handlers.System.Info)

	protected := rg.Group("")
	protected.Use(middleware.RequireAuth(r.authService))

	products := protected.Group("/products")
	{
		products.POST("", r.handlers.Product.Create)
		products.GET("", r.handlers.Product.List)
		products.GET("/:id", r.handlers.Product.Get)
		products.PUT("/:id", r.handlers.Product.Update)
		products.DELETE("/:id", r.handlers.Product.Delete)
	}

	customers := protected.Group("/customers")
	{
		customers.POST("", r.handlers.Customer.Create)
		customers.GET("", r.handlers.Customer.List)
		customers.GET("/:id", r.handlers.Customer.Get)
		customers.PUT("/:id", r.handlers.Customer.Update)
		customers.DELETE("/:id", r.handlers.Customer.Delete)
	}

	stock := protected.Group("/stock")
	{
		stock.POST("", r.handlers.Stock.Create)
		stock.GET("", r.handlers.Stock.List)
		stock.DELETE("/:id", r.handlers.Stock.Delete)
	}

	sales := protected.Group("/sales")
	{
		sales.POST("", r.handlers.Sale.Create)
		sales.GET("", r.handlers.Sale.List)
		sales.GET("/:id", r.handlers.Sale.Get)
		sales.DELETE("/:id", r.handlers.Sale.Delete)
		sales.POST("/:id/payments", r.handlers.Installment.Pay)
		sales.PUT("/:id/installments/:installmentId", r.handlers.Installment.Update)
	}

	installments := protected.Group("/installments")
	{
		installments.GET("", r.handlers.Installment.List)
		installments.POST("/sweep", r.handlers.Installment.Sweep)
	}

	finance := protected.Group("/finance")
	{
		finance.POST("/transactions", r.handlers.Finance.CreateTransaction)
		finance.GET("/transactions", r.handlers.Finance.ListTransactions)
		finance.DELETE("/transactions/:id", r.handlers.Finance.DeleteTransaction)
		finance.POST("/investments", r.handlers.Finance.CreateInvestment)
		finance.GET("/investments", r.handlers.Finance.ListInvestments)
		finance.DELETE("/investments/:id", r.handlers.Finance.DeleteInvestment)
		finance.GET("/summary", r.handlers.Finance.GetSummary)
		finance.POST("/summary/recalculate", r.handlers.Finance.Recalculate)
	}
}
