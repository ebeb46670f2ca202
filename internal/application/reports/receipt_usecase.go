package reports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jcastellanos/lanchonete-pos/internal/domain"
	"github.com/jcastellanos/lanchonete-pos/internal/domain/entity"
	"github.com/jcastellanos/lanchonete-pos/internal/domain/repository"
)

// ReceiptUseCase genera el recibo PDF de una venta.
type ReceiptUseCase struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	pdf         ReceiptPDFGenerator
	storeName   string
}

// NewReceiptUseCase construye el caso de uso. storeName encabeza el recibo.
func NewReceiptUseCase(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	pdf ReceiptPDFGenerator,
	storeName string,
) *ReceiptUseCase {
	return &ReceiptUseCase{saleRepo: saleRepo, productRepo: productRepo, pdf: pdf, storeName: storeName}
}

// GenerateReceipt arma las líneas del recibo (un fetch por producto, aunque se
// repita en varias líneas) y delega el render al generador PDF.
func (uc *ReceiptUseCase) GenerateReceipt(ctx context.Context, saleID int64) ([]byte, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}

	productsByID := make(map[int64]*entity.Product)
	lines := make([]ReceiptLine, 0, len(sale.Items))
	total := decimal.Zero
	for _, item := range sale.Items {
		product, ok := productsByID[item.ProductID]
		if !ok {
			product, err = uc.productRepo.GetByID(item.ProductID)
			if err != nil {
				return nil, err
			}
			productsByID[item.ProductID] = product
		}
		line := ReceiptLine{Quantity: item.Quantity}
		if product != nil {
			line.ProductName = product.Name
			line.UnitPrice = product.Price
			line.LineTotal = product.Price.Mul(decimal.NewFromInt(item.Quantity))
			total = total.Add(line.LineTotal)
		}
		lines = append(lines, line)
	}
	return uc.pdf.GenerateReceiptPDF(ctx, uc.storeName, sale, lines, total)
}
