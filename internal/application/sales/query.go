package sales

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jcastellanos/lanchonete-pos/internal/application/dto"
	"github.com/jcastellanos/lanchonete-pos/internal/domain"
	"github.com/jcastellanos/lanchonete-pos/internal/domain/entity"
	"github.com/jcastellanos/lanchonete-pos/internal/domain/repository"
)

// SaleQueryUseCase consultas de solo lectura sobre ventas.
type SaleQueryUseCase struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
}

// NewSaleQueryUseCase construye el caso de uso.
func NewSaleQueryUseCase(saleRepo repository.SaleRepository, productRepo repository.ProductRepository) *SaleQueryUseCase {
	return &SaleQueryUseCase{saleRepo: saleRepo, productRepo: productRepo}
}

// GetSale devuelve una venta con el detalle de sus ítems (nombre y precio
// vigentes del producto). Un solo fetch por producto aunque se repita en
// varias líneas.
func (uc *SaleQueryUseCase) GetSale(ctx context.Context, id int64) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}

	productsByID := make(map[int64]*entity.Product)
	resp := &dto.SaleResponse{
		ID:       sale.ID,
		Customer: sale.Customer,
		Date:     sale.Date,
		Total:    decimal.Zero,
	}
	for _, item := range sale.Items {
		product, ok := productsByID[item.ProductID]
		if !ok {
			product, err = uc.productRepo.GetByID(item.ProductID)
			if err != nil {
				return nil, err
			}
			productsByID[item.ProductID] = product
		}
		line := dto.SaleItemResponse{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
		if product != nil {
			line.ProductName = product.Name
			line.UnitPrice = product.Price
			line.LineTotal = product.Price.Mul(decimal.NewFromInt(item.Quantity))
			resp.Total = resp.Total.Add(line.LineTotal)
		}
		resp.Items = append(resp.Items, line)
	}
	return resp, nil
}

// ListSales lista cabeceras de venta con paginación.
func (uc *SaleQueryUseCase) ListSales(ctx context.Context, limit, offset int) (*dto.SaleListResponse, error) {
	list, err := uc.saleRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleSummaryResponse, 0, len(list))
	for _, s := range list {
		items = append(items, dto.SaleSummaryResponse{ID: s.ID, Customer: s.Customer, Date: s.Date})
	}
	return &dto.SaleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}
