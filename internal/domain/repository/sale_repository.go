package repository

import "github.com/jcastellanos/lanchonete-pos/internal/domain/entity"

// SaleRepository define el puerto de persistencia para Sale y sus ítems.
// Las ventas solo se crean (nunca se actualizan ni se borran desde aquí).
type SaleRepository interface {
	// Create persiste la cabecera de la venta y asigna sale.ID.
	Create(sale *entity.Sale) error
	// CreateItem persiste una línea de venta y asigna item.ID.
	CreateItem(item *entity.SaleItem) error
	// GetByID devuelve la venta con sus ítems, o nil si no existe.
	GetByID(id int64) (*entity.Sale, error)
	List(limit, offset int) ([]*entity.Sale, error)
}
