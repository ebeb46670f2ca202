package repository

import "github.com/jcastellanos/lanchonete-pos/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID es de solo lectura y no muta estado. GetForUpdate y DecrementQuantity
// se usan dentro de transacciones para garantizar consistencia del stock.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id int64) (*entity.Product, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE). Solo tiene
	// sentido con un repositorio atado a una transacción.
	GetForUpdate(id int64) (*entity.Product, error)
	List(limit, offset int) ([]*entity.Product, error)
	Update(product *entity.Product) error
	// UpdateQuantity fija el stock en un valor absoluto (ajuste de inventario).
	UpdateQuantity(id int64, quantity int64) error
	// DecrementQuantity resta amount solo si quantity >= amount (decremento
	// condicional atómico). Devuelve false si la condición no se cumplió.
	DecrementQuantity(id int64, amount int64) (bool, error)
	// Delete elimina el producto; sus ítems de venta históricos caen en cascada.
	Delete(id int64) error
}
