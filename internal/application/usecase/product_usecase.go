package usecase

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jcastellanos/lanchonete-pos/internal/application/dto"
	"github.com/jcastellanos/lanchonete-pos/internal/domain"
	"github.com/jcastellanos/lanchonete-pos/internal/domain/entity"
	"github.com/jcastellanos/lanchonete-pos/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El stock solo se muta aquí
// por ajuste absoluto; los descuentos por venta pasan por FinalizeSaleUseCase.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Register registra un nuevo producto validando todos los campos de una vez.
func (uc *ProductUseCase) Register(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	var reasons []string
	if strings.TrimSpace(in.Name) == "" {
		reasons = append(reasons, "name es requerido")
	}
	if !in.Price.GreaterThan(decimal.Zero) {
		reasons = append(reasons, "price debe ser mayor que cero")
	}
	if !in.Cost.GreaterThan(decimal.Zero) {
		reasons = append(reasons, "cost debe ser mayor que cero")
	}
	if in.Quantity < 0 {
		reasons = append(reasons, "quantity no puede ser negativa")
	}
	if len(reasons) > 0 {
		return nil, &domain.ValidationError{Reasons: reasons}
	}

	now := time.Now()
	product := &entity.Product{
		Name:      strings.TrimSpace(in.Name),
		Price:     in.Price,
		Cost:      in.Cost,
		Quantity:  in.Quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id int64) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// UpdateStock fija el stock de un producto en un valor absoluto (>= 0).
func (uc *ProductUseCase) UpdateStock(id int64, in dto.UpdateStockRequest) (*dto.ProductResponse, error) {
	if in.Quantity == nil {
		return nil, &domain.ValidationError{Reasons: []string{"quantity es requerida"}}
	}
	if *in.Quantity < 0 {
		return nil, &domain.ValidationError{Reasons: []string{"quantity no puede ser negativa"}}
	}
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.repo.UpdateQuantity(id, *in.Quantity); err != nil {
		return nil, err
	}
	product.Quantity = *in.Quantity
	product.UpdatedAt = time.Now()
	return toProductResponse(product), nil
}

// Delete elimina un producto; sus ítems de venta históricos caen en cascada.
func (uc *ProductUseCase) Delete(id int64) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Cost:      p.Cost,
		Quantity:  p.Quantity,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
