package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest un ítem solicitado en una venta.
type SaleItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

// FinalizeSaleRequest entrada para finalizar una venta.
type FinalizeSaleRequest struct {
	Customer string            `json:"customer"`
	Items    []SaleItemRequest `json:"items"`
}

// SaleItemResponse una línea de venta con el detalle del producto al momento de consultar.
type SaleItemResponse struct {
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// SaleResponse salida de una venta con sus ítems.
type SaleResponse struct {
	ID       int64              `json:"id"`
	Customer string             `json:"customer"`
	Date     time.Time          `json:"date"`
	Items    []SaleItemResponse `json:"items"`
	Total    decimal.Decimal    `json:"total"`
}

// SaleListResponse lista paginada de ventas (sin ítems).
type SaleListResponse struct {
	Items []SaleSummaryResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// SaleSummaryResponse cabecera de venta para listados.
type SaleSummaryResponse struct {
	ID       int64     `json:"id"`
	Customer string    `json:"customer"`
	Date     time.Time `json:"date"`
}
