package entity

import "time"

// Sale representa una venta de un cliente. Es dueña de sus ítems:
// un SaleItem no existe fuera de su venta.
type Sale struct {
	ID       int64
	Customer string
	Date     time.Time // asignada con el reloj del servidor al crear
	Items    []SaleItem
}

// SaleItem es una línea de venta: referencia a un producto y la cantidad vendida.
// Se elimina en cascada con su venta o con su producto.
type SaleItem struct {
	ID        int64
	SaleID    int64
	ProductID int64
	Quantity  int64
}
