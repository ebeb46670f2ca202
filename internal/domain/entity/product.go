package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto vendible de la lanchonete.
// Quantity es el stock disponible; nunca baja de cero (lo garantiza la
// transacción de venta y el CHECK de la tabla).
type Product struct {
	ID        int64
	Name      string
	Price     decimal.Decimal // precio de venta
	Cost      decimal.Decimal // valor de compra
	Quantity  int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
