package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jcastellanos/lanchonete-pos/internal/application/reports"
	"github.com/jcastellanos/lanchonete-pos/internal/application/sales"
	"github.com/jcastellanos/lanchonete-pos/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC    *usecase.ProductUseCase
	FinalizeSale *sales.FinalizeSaleUseCase
	SaleQueries  *sales.SaleQueryUseCase
	ReportUC     *reports.ReportUseCase
	ReceiptUC    *reports.ReceiptUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/:id/stock", productHandler.UpdateStock)
	products.Delete("/:id", productHandler.Delete)

	// Sales
	salesGroup := api.Group("/sales")
	saleHandler := NewSaleHandler(deps.FinalizeSale, deps.SaleQueries, deps.ReceiptUC)
	salesGroup.Post("/", saleHandler.Finalize)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Get("/:id/receipt", saleHandler.Receipt)

	// Reports
	reportsGroup := api.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reportsGroup.Get("/sales", reportHandler.SalesReport)
	reportsGroup.Get("/stock", reportHandler.StockReport)
}
