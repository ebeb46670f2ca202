package sales

import (
	"context"

	"github.com/jcastellanos/lanchonete-pos/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para la finalización de
// ventas: si fn retorna error se hace Rollback completo (incluida la cabecera
// de venta ya insertada), si no, Commit.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error) error
}
