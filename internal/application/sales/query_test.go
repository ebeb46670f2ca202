package sales_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcastellanos/lanchonete-pos/internal/application/sales"
	"github.com/jcastellanos/lanchonete-pos/internal/domain"
	"github.com/jcastellanos/lanchonete-pos/internal/domain/entity"
)

func TestGetSale_ConDetalleDeProductos(t *testing.T) {
	store := newFakeStore(burger(5), soda(8))
	store.sales[1] = &entity.Sale{
		ID: 1, Customer: "Alice", Date: time.Now(),
		Items: []entity.SaleItem{
			{ID: 1, SaleID: 1, ProductID: 1, Quantity: 2},
			{ID: 2, SaleID: 1, ProductID: 2, Quantity: 1},
		},
	}
	uc := sales.NewSaleQueryUseCase(&fakeSaleRepo{s: store}, &fakeProductRepo{s: store})

	resp, err := uc.GetSale(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, resp.Items, 2)
	assert.Equal(t, "Burger", resp.Items[0].ProductName)
	assert.Equal(t, "Soda", resp.Items[1].ProductName)
	assert.True(t, resp.Total.Equal(decimal.NewFromFloat(23.5)),
		"2 × 10.0 + 1 × 3.5, fue %s", resp.Total)
}

func TestGetSale_Inexistente(t *testing.T) {
	store := newFakeStore()
	uc := sales.NewSaleQueryUseCase(&fakeSaleRepo{s: store}, &fakeProductRepo{s: store})

	_, err := uc.GetSale(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Si el producto de una línea fue borrado, la venta sigue siendo consultable:
// la línea queda sin detalle de producto y no suma al total.
func TestGetSale_ProductoBorrado(t *testing.T) {
	store := newFakeStore()
	store.sales[1] = &entity.Sale{
		ID: 1, Customer: "Alice", Date: time.Now(),
		Items: []entity.SaleItem{{ID: 1, SaleID: 1, ProductID: 77, Quantity: 2}},
	}
	uc := sales.NewSaleQueryUseCase(&fakeSaleRepo{s: store}, &fakeProductRepo{s: store})

	resp, err := uc.GetSale(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Empty(t, resp.Items[0].ProductName)
	assert.True(t, resp.Total.IsZero())
}
