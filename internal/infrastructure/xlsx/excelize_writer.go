// Package xlsx implementa la exportación de reportes como hojas de cálculo
// .xlsx (excelize), con el mismo formato que los reportes originales de la
// lanchonete: una fila de encabezados y una fila por dato.
package xlsx

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jcastellanos/lanchonete-pos/internal/application/reports"
	"github.com/jcastellanos/lanchonete-pos/internal/domain/repository"
)

var _ reports.WorkbookWriter = (*ExcelizeWriter)(nil)

// Nombres de hoja de cada reporte.
const (
	SalesSheetName = "Reporte de Ventas"
	StockSheetName = "Reporte de Stock"
)

// ExcelizeWriter implementa reports.WorkbookWriter usando excelize.
type ExcelizeWriter struct{}

// NewExcelizeWriter construye el writer.
func NewExcelizeWriter() *ExcelizeWriter { return &ExcelizeWriter{} }

// WriteSalesReport genera el libro de ventas. Las filas llegan ya ordenadas
// por total de línea descendente; aquí solo se vuelcan.
func (w *ExcelizeWriter) WriteSalesReport(rows []repository.SalesReportRow) ([]byte, error) {
	headers := []string{"Venta ID", "Cliente", "Fecha", "Producto", "Cantidad", "Precio", "Total Línea"}
	records := make([][]any, 0, len(rows))
	for _, r := range rows {
		records = append(records, []any{
			r.SaleID,
			r.Customer,
			r.Date.Format("2006-01-02 15:04:05"),
			r.Product,
			r.Quantity,
			r.UnitPrice.InexactFloat64(),
			r.LineTotal.InexactFloat64(),
		})
	}
	return writeSheet(SalesSheetName, headers, records)
}

// WriteStockReport genera el libro de stock: cantidad inicial y actual por producto.
func (w *ExcelizeWriter) WriteStockReport(rows []repository.StockReportRow) ([]byte, error) {
	headers := []string{"Producto", "Cantidad Inicial", "Cantidad Actual"}
	records := make([][]any, 0, len(rows))
	for _, r := range rows {
		records = append(records, []any{r.Product, r.InitialQuantity, r.CurrentQuantity})
	}
	return writeSheet(StockSheetName, headers, records)
}

func writeSheet(sheet string, headers []string, records [][]any) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("renombrar hoja: %w", err)
	}
	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("escribir encabezado %q: %w", h, err)
		}
	}
	for rowIdx, record := range records {
		for col, value := range record {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("escribir fila %d: %w", rowIdx+2, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serializar libro: %w", err)
	}
	return buf.Bytes(), nil
}
