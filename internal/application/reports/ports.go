package reports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jcastellanos/lanchonete-pos/internal/domain/entity"
	"github.com/jcastellanos/lanchonete-pos/internal/domain/repository"
)

// WorkbookWriter genera los libros .xlsx de los reportes exportables.
type WorkbookWriter interface {
	WriteSalesReport(rows []repository.SalesReportRow) ([]byte, error)
	WriteStockReport(rows []repository.StockReportRow) ([]byte, error)
}

// ReceiptLine una línea del recibo con el detalle del producto.
type ReceiptLine struct {
	ProductName string
	Quantity    int64
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}

// ReceiptPDFGenerator genera el PDF del recibo de una venta.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, storeName string, sale *entity.Sale, lines []ReceiptLine, total decimal.Decimal) ([]byte, error)
}
