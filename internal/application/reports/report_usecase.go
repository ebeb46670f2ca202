package reports

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jcastellanos/lanchonete-pos/internal/domain/repository"
)

// ExportFile un archivo exportado listo para descargar.
type ExportFile struct {
	Name        string
	ContentType string
	Content     []byte
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportUseCase exporta los reportes de ventas y stock como hojas de cálculo.
type ReportUseCase struct {
	repo   repository.ReportRepository
	writer WorkbookWriter
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(repo repository.ReportRepository, writer WorkbookWriter) *ReportUseCase {
	return &ReportUseCase{repo: repo, writer: writer}
}

// ExportSalesReport genera el .xlsx de ventas: una fila por línea de venta,
// ordenadas por total de línea descendente (lo garantiza la consulta).
func (uc *ReportUseCase) ExportSalesReport(ctx context.Context) (*ExportFile, error) {
	rows, err := uc.repo.SalesReportRows(ctx)
	if err != nil {
		return nil, err
	}
	content, err := uc.writer.WriteSalesReport(rows)
	if err != nil {
		return nil, fmt.Errorf("generar reporte de ventas: %w", err)
	}
	return &ExportFile{
		Name:        exportName("reporte_ventas"),
		ContentType: xlsxContentType,
		Content:     content,
	}, nil
}

// ExportStockReport genera el .xlsx de stock: cantidad inicial y actual por producto.
func (uc *ReportUseCase) ExportStockReport(ctx context.Context) (*ExportFile, error) {
	rows, err := uc.repo.StockReportRows(ctx)
	if err != nil {
		return nil, err
	}
	content, err := uc.writer.WriteStockReport(rows)
	if err != nil {
		return nil, fmt.Errorf("generar reporte de stock: %w", err)
	}
	return &ExportFile{
		Name:        exportName("reporte_stock"),
		ContentType: xlsxContentType,
		Content:     content,
	}, nil
}

// exportName nombra el archivo con un sufijo único para que descargas
// concurrentes no se pisen entre sí.
func exportName(prefix string) string {
	return fmt.Sprintf("%s_%s.xlsx", prefix, uuid.New().String()[:8])
}
