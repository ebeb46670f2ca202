package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SalesReportRow es una fila del reporte de ventas: una línea por ítem vendido.
type SalesReportRow struct {
	SaleID    int64
	Customer  string
	Date      time.Time
	Product   string
	Quantity  int64
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

// StockReportRow es una fila del reporte de stock por producto.
// InitialQuantity = stock actual + total vendido históricamente.
type StockReportRow struct {
	Product         string
	InitialQuantity int64
	CurrentQuantity int64
}

// ReportRepository define consultas de solo lectura para los reportes exportables.
type ReportRepository interface {
	// SalesReportRows devuelve las líneas de venta ordenadas por total de línea descendente.
	SalesReportRows(ctx context.Context) ([]SalesReportRow, error)
	StockReportRows(ctx context.Context) ([]StockReportRow, error)
}
