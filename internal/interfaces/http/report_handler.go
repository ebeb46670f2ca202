package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jcastellanos/lanchonete-pos/internal/application/reports"
)

// ReportHandler maneja la descarga de reportes exportables.
type ReportHandler struct {
	uc *reports.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// SalesReport godoc
// @Summary      Descargar reporte de ventas (.xlsx)
// @Tags         reports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  file
// @Router       /api/reports/sales [get]
func (h *ReportHandler) SalesReport(c *fiber.Ctx) error {
	file, err := h.uc.ExportSalesReport(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return sendExport(c, file)
}

// StockReport godoc
// @Summary      Descargar reporte de stock (.xlsx)
// @Tags         reports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  file
// @Router       /api/reports/stock [get]
func (h *ReportHandler) StockReport(c *fiber.Ctx) error {
	file, err := h.uc.ExportStockReport(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return sendExport(c, file)
}

func sendExport(c *fiber.Ctx, file *reports.ExportFile) error {
	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, file.Name))
	return c.Send(file.Content)
}
