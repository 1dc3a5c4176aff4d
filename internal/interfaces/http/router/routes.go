package router

import (
	"github.com/supplements/backend/internal/interfaces/http/handler"
	"github.com/supplements/backend/internal/interfaces/http/middleware"
)

// Handlers are the API handlers mounted under /api/v1
type Handlers struct {
	Product      *handler.ProductHandler
	PriceHistory *handler.PriceHistoryHandler
	Import       *handler.ProductImportHandler
	Purchase     *handler.PurchaseHandler
	Sale         *handler.SaleHandler
	Customer     *handler.CustomerHandler
	Stock        *handler.InventoryHandler
	Settings     *handler.SettingsHandler
	Report       *handler.ReportHandler
	System       *handler.SystemHandler
}

// RegisterAPI adds every domain group to r. importLimit caps workbook
// uploads; zero leaves them unlimited.
func RegisterAPI(r *Router, h Handlers, importLimit int64) {
	products := NewDomainGroup("catalog", "/products")
	products.GET("", h.Product.List)
	products.POST("", h.Product.Create)
	products.GET("/low-stock", h.Product.LowStock)
	products.GET("/:id", h.Product.GetByID)
	products.PUT("/:id", h.Product.Update)
	products.GET("/:id/snapshot", h.Product.Snapshot)
	products.GET("/:id/price-history", h.PriceHistory.List)
	products.POST("/:id/adjustments", h.Stock.Adjust)

	imports := products.Group("import", "/import")
	if importLimit > 0 {
		imports.Use(middleware.BodyLimit(importLimit))
	}
	imports.POST("", h.Import.Import)
	imports.GET("/template", h.Import.Template)

	purchases := NewDomainGroup("purchases", "/purchases")
	purchases.GET("", h.Purchase.List)
	purchases.POST("", h.Purchase.Create)
	purchases.GET("/:id", h.Purchase.GetByID)
	purchases.POST("/:id/items", h.Purchase.AddItem)
	purchases.PUT("/:id/real-costs", h.Purchase.SetRealCosts)
	purchases.POST("/:id/cancel", h.Purchase.Cancel)
	purchases.POST("/:id/receive", h.Purchase.Receive)
	purchases.POST("/:id/reverse", h.Purchase.Reverse)

	sales := NewDomainGroup("sales", "/sales")
	sales.GET("", h.Sale.List)
	sales.POST("", h.Sale.Create)
	sales.GET("/:id", h.Sale.GetByID)
	sales.POST("/:id/items", h.Sale.AddItem)
	sales.PUT("/:id/items/:item_id", h.Sale.UpdateItem)
	sales.DELETE("/:id/items/:item_id", h.Sale.DeleteItem)
	sales.POST("/:id/complete", h.Sale.Complete)
	sales.POST("/:id/cancel", h.Sale.Cancel)

	customers := NewDomainGroup("customers", "/customers")
	customers.GET("", h.Customer.List)
	customers.POST("", h.Customer.Create)
	customers.GET("/:id", h.Customer.GetByID)
	customers.PUT("/:id", h.Customer.Update)
	customers.DELETE("/:id", h.Customer.Delete)

	settings := NewDomainGroup("settings", "/settings")
	settings.GET("/exchange-rate", h.Settings.GetExchangeRate)
	settings.PUT("/exchange-rate", h.Settings.UpdateExchangeRate)
	settings.GET("/convert", h.Settings.Convert)

	reports := NewDomainGroup("reports", "/reports")
	reports.GET("/cost", h.Report.CostReport)
	reports.GET("/cost/export", h.Report.ExportCostReport)
	reports.GET("/valuation", h.Report.Valuation)
	reports.GET("/ledger", h.Report.Ledger)

	system := NewDomainGroup("system", "/system")
	system.GET("/info", h.System.GetSystemInfo)
	system.GET("/ping", h.System.Ping)

	r.Register(products).
		Register(purchases).
		Register(sales).
		Register(customers).
		Register(settings).
		Register(reports).
		Register(system)
}
