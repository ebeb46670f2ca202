package sales

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jcastellanos/lanchonete-pos/internal/application/dto"
	"github.com/jcastellanos/lanchonete-pos/internal/domain"
	"github.com/jcastellanos/lanchonete-pos/internal/domain/entity"
	"github.com/jcastellanos/lanchonete-pos/internal/domain/repository"
)

// FinalizeSaleUseCase finaliza ventas de forma transaccional: descuenta el
// stock de cada producto y persiste la venta con sus ítems, o rechaza la
// operación completa. El bloqueo de fila (SELECT FOR UPDATE) evita que dos
// ventas concurrentes pasen la verificación de stock y descuenten por debajo
// de cero.
type FinalizeSaleUseCase struct {
	txRunner TxRunner
}

// NewFinalizeSaleUseCase construye el caso de uso.
func NewFinalizeSaleUseCase(txRunner TxRunner) *FinalizeSaleUseCase {
	return &FinalizeSaleUseCase{txRunner: txRunner}
}

// FinalizeSale valida el request, y dentro de una sola transacción crea la
// venta, descuenta el stock de cada ítem en el orden recibido y persiste las
// líneas. Cualquier falla (producto inexistente, stock insuficiente, error de
// BD) revierte todo: sin venta, sin ítems, sin cambios de stock.
func (uc *FinalizeSaleUseCase) FinalizeSale(ctx context.Context, in dto.FinalizeSaleRequest) (*dto.SaleResponse, error) {
	// Validación agregada, antes de tocar el almacenamiento.
	var reasons []string
	if strings.TrimSpace(in.Customer) == "" {
		reasons = append(reasons, "customer es requerido")
	}
	if len(in.Items) == 0 {
		reasons = append(reasons, "la venta debe incluir al menos un ítem")
	}
	for i, item := range in.Items {
		if item.ProductID <= 0 {
			reasons = append(reasons, fmt.Sprintf("ítem %d: product_id inválido", i))
		}
		if item.Quantity <= 0 {
			reasons = append(reasons, fmt.Sprintf("ítem %d: quantity debe ser mayor que cero", i))
		}
	}
	if len(reasons) > 0 {
		return nil, &domain.ValidationError{Reasons: reasons}
	}

	sale := &entity.Sale{
		Customer: strings.TrimSpace(in.Customer),
		Date:     time.Now(),
	}
	resp := &dto.SaleResponse{
		Customer: sale.Customer,
		Total:    decimal.Zero,
	}

	// Inicia transacción; Commit si todo ok, Rollback si algo falla (TxRunner.Run lo hace).
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error {
		if err := saleRepo.Create(sale); err != nil {
			return err
		}
		for _, item := range in.Items {
			// Un solo fetch por ítem, con bloqueo de fila. Un product_id repetido
			// en el mismo request relee la cantidad ya descontada por esta tx.
			product, err := productRepo.GetForUpdate(item.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return &domain.ProductNotFoundError{ProductID: item.ProductID}
			}
			if product.Quantity < item.Quantity {
				return &domain.InsufficientStockError{
					ProductID: item.ProductID,
					Available: product.Quantity,
					Requested: item.Quantity,
				}
			}
			ok, err := productRepo.DecrementQuantity(item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				// El decremento condicional no encontró stock suficiente pese al
				// lock: releer y reportar con la cantidad vigente.
				fresh, ferr := productRepo.GetForUpdate(item.ProductID)
				if ferr != nil {
					return ferr
				}
				var available int64
				if fresh != nil {
					available = fresh.Quantity
				}
				return &domain.InsufficientStockError{
					ProductID: item.ProductID,
					Available: available,
					Requested: item.Quantity,
				}
			}
			saleItem := &entity.SaleItem{
				SaleID:    sale.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
			}
			if err := saleRepo.CreateItem(saleItem); err != nil {
				return err
			}
			sale.Items = append(sale.Items, *saleItem)

			lineTotal := product.Price.Mul(decimal.NewFromInt(item.Quantity))
			resp.Items = append(resp.Items, dto.SaleItemResponse{
				ProductID:   product.ID,
				ProductName: product.Name,
				Quantity:    item.Quantity,
				UnitPrice:   product.Price,
				LineTotal:   lineTotal,
			})
			resp.Total = resp.Total.Add(lineTotal)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp.ID = sale.ID
	resp.Date = sale.Date
	return resp, nil
}
