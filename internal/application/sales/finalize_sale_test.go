package sales_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcastellanos/lanchonete-pos/internal/application/dto"
	"github.com/jcastellanos/lanchonete-pos/internal/application/sales"
	"github.com/jcastellanos/lanchonete-pos/internal/domain"
	"github.com/jcastellanos/lanchonete-pos/internal/domain/entity"
	"github.com/jcastellanos/lanchonete-pos/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes: un almacén en memoria con semántica transaccional.
// El mutex del runner serializa las transacciones (equivalente a los row-locks
// FOR UPDATE) y el snapshot/restore implementa el rollback completo.
// ──────────────────────────────────────────────────────────────────────────────

var errStorageDown = errors.New("almacenamiento no disponible")

type fakeStore struct {
	mu       sync.Mutex
	products map[int64]*entity.Product
	sales    map[int64]*entity.Sale
	items    []entity.SaleItem
	nextSale int64
	nextItem int64

	failCreateItem bool // simula una falla de BD al insertar líneas
}

func newFakeStore(products ...*entity.Product) *fakeStore {
	s := &fakeStore{
		products: make(map[int64]*entity.Product),
		sales:    make(map[int64]*entity.Sale),
	}
	for _, p := range products {
		cp := *p
		s.products[p.ID] = &cp
	}
	return s
}

type storeSnapshot struct {
	products map[int64]entity.Product
	sales    map[int64]entity.Sale
	items    []entity.SaleItem
	nextSale int64
	nextItem int64
}

func (s *fakeStore) snapshot() storeSnapshot {
	snap := storeSnapshot{
		products: make(map[int64]entity.Product, len(s.products)),
		sales:    make(map[int64]entity.Sale, len(s.sales)),
		items:    append([]entity.SaleItem(nil), s.items...),
		nextSale: s.nextSale,
		nextItem: s.nextItem,
	}
	for id, p := range s.products {
		snap.products[id] = *p
	}
	for id, v := range s.sales {
		snap.sales[id] = *v
	}
	return snap
}

func (s *fakeStore) restore(snap storeSnapshot) {
	s.products = make(map[int64]*entity.Product, len(snap.products))
	for id, p := range snap.products {
		cp := p
		s.products[id] = &cp
	}
	s.sales = make(map[int64]*entity.Sale, len(snap.sales))
	for id, v := range snap.sales {
		cv := v
		s.sales[id] = &cv
	}
	s.items = append([]entity.SaleItem(nil), snap.items...)
	s.nextSale = snap.nextSale
	s.nextItem = snap.nextItem
}

func (s *fakeStore) productQuantity(t *testing.T, id int64) int64 {
	t.Helper()
	p, ok := s.products[id]
	require.True(t, ok, "el producto %d debe existir en el almacén", id)
	return p.Quantity
}

type fakeTxRunner struct {
	store *fakeStore
	runs  int
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.runs++
	snap := r.store.snapshot()
	if err := fn(&fakeProductRepo{s: r.store}, &fakeSaleRepo{s: r.store}); err != nil {
		r.store.restore(snap) // rollback
		return err
	}
	return nil
}

type fakeProductRepo struct{ s *fakeStore }

func (r *fakeProductRepo) Create(p *entity.Product) error { r.s.products[p.ID] = p; return nil }

func (r *fakeProductRepo) GetByID(id int64) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetForUpdate(id int64) (*entity.Product, error) { return r.GetByID(id) }

func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) { return nil, nil }

func (r *fakeProductRepo) Update(p *entity.Product) error { return nil }

func (r *fakeProductRepo) UpdateQuantity(id, quantity int64) error {
	if p, ok := r.s.products[id]; ok {
		p.Quantity = quantity
	}
	return nil
}

func (r *fakeProductRepo) DecrementQuantity(id, amount int64) (bool, error) {
	p, ok := r.s.products[id]
	if !ok || p.Quantity < amount {
		return false, nil
	}
	p.Quantity -= amount
	return true, nil
}

func (r *fakeProductRepo) Delete(id int64) error { delete(r.s.products, id); return nil }

type fakeSaleRepo struct{ s *fakeStore }

func (r *fakeSaleRepo) Create(sale *entity.Sale) error {
	r.s.nextSale++
	sale.ID = r.s.nextSale
	cp := *sale
	r.s.sales[sale.ID] = &cp
	return nil
}

func (r *fakeSaleRepo) CreateItem(item *entity.SaleItem) error {
	if r.s.failCreateItem {
		return errStorageDown
	}
	r.s.nextItem++
	item.ID = r.s.nextItem
	r.s.items = append(r.s.items, *item)
	return nil
}

func (r *fakeSaleRepo) GetByID(id int64) (*entity.Sale, error) {
	sale, ok := r.s.sales[id]
	if !ok {
		return nil, nil
	}
	cp := *sale
	return &cp, nil
}

func (r *fakeSaleRepo) List(limit, offset int) ([]*entity.Sale, error) { return nil, nil }

// ── helpers ───────────────────────────────────────────────────────────────────

func burger(quantity int64) *entity.Product {
	return &entity.Product{
		ID:       1,
		Name:     "Burger",
		Price:    decimal.NewFromFloat(10.0),
		Cost:     decimal.NewFromFloat(4.0),
		Quantity: quantity,
	}
}

func soda(quantity int64) *entity.Product {
	return &entity.Product{
		ID:       2,
		Name:     "Soda",
		Price:    decimal.NewFromFloat(3.5),
		Cost:     decimal.NewFromFloat(1.0),
		Quantity: quantity,
	}
}

func newUseCase(store *fakeStore) (*sales.FinalizeSaleUseCase, *fakeTxRunner) {
	runner := &fakeTxRunner{store: store}
	return sales.NewFinalizeSaleUseCase(runner), runner
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenarios
// ──────────────────────────────────────────────────────────────────────────────

// Venta exitosa: Burger con stock 5, Alice compra 3 → stock queda en 2 y se
// persiste una venta con una línea de cantidad 3.
func TestFinalizeSale_Exitosa(t *testing.T) {
	store := newFakeStore(burger(5))
	uc, _ := newUseCase(store)

	resp, err := uc.FinalizeSale(context.Background(), dto.FinalizeSaleRequest{
		Customer: "Alice",
		Items:    []dto.SaleItemRequest{{ProductID: 1, Quantity: 3}},
	})
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, int64(2), store.productQuantity(t, 1), "el stock debe quedar en 2")
	assert.Len(t, store.sales, 1, "debe persistirse exactamente una venta")
	require.Len(t, store.items, 1, "debe persistirse exactamente una línea")
	assert.Equal(t, int64(3), store.items[0].Quantity)
	assert.Equal(t, resp.ID, store.items[0].SaleID, "la línea debe referenciar la venta creada")

	assert.Equal(t, "Alice", resp.Customer)
	assert.False(t, resp.Date.IsZero(), "la fecha debe asignarse con el reloj del servidor")
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Burger", resp.Items[0].ProductName)
	assert.True(t, resp.Total.Equal(decimal.NewFromFloat(30.0)),
		"el total debe ser 3 × 10.0, fue %s", resp.Total)
}

// Stock insuficiente: Bob pide 10 con stock 5 → falla con los detalles
// (disponible 5, solicitado 10), el stock no cambia y no se persiste venta.
func TestFinalizeSale_StockInsuficiente(t *testing.T) {
	store := newFakeStore(burger(5))
	uc, _ := newUseCase(store)

	_, err := uc.FinalizeSale(context.Background(), dto.FinalizeSaleRequest{
		Customer: "Bob",
		Items:    []dto.SaleItemRequest{{ProductID: 1, Quantity: 10}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, int64(1), stockErr.ProductID)
	assert.Equal(t, int64(5), stockErr.Available)
	assert.Equal(t, int64(10), stockErr.Requested)

	assert.Equal(t, int64(5), store.productQuantity(t, 1), "el stock no debe cambiar")
	assert.Empty(t, store.sales, "no debe persistirse ninguna venta")
	assert.Empty(t, store.items, "no debe persistirse ninguna línea")
}

// Producto inexistente: Carl pide el producto 99 → ProductNotFound(99) y el
// almacén queda intacto.
func TestFinalizeSale_ProductoInexistente(t *testing.T) {
	store := newFakeStore(burger(5))
	uc, _ := newUseCase(store)

	_, err := uc.FinalizeSale(context.Background(), dto.FinalizeSaleRequest{
		Customer: "Carl",
		Items:    []dto.SaleItemRequest{{ProductID: 99, Quantity: 1}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	var notFoundErr *domain.ProductNotFoundError
	require.ErrorAs(t, err, &notFoundErr)
	assert.Equal(t, int64(99), notFoundErr.ProductID)

	assert.Empty(t, store.sales)
	assert.Empty(t, store.items)
	assert.Equal(t, int64(5), store.productQuantity(t, 1))
}

// Validación agregada: cliente vacío y sin ítems → un solo ValidationError con
// ambas razones, sin iniciar ninguna transacción.
func TestFinalizeSale_ValidacionAgregadaSinTocarAlmacen(t *testing.T) {
	store := newFakeStore(burger(5))
	uc, runner := newUseCase(store)

	_, err := uc.FinalizeSale(context.Background(), dto.FinalizeSaleRequest{
		Customer: "",
		Items:    nil,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Len(t, validationErr.Reasons, 2, "deben agregarse ambas fallas de validación")

	assert.Zero(t, runner.runs, "la validación no debe iniciar transacciones")
}

// Cantidades y product_id inválidos se agregan por ítem.
func TestFinalizeSale_ItemsInvalidos(t *testing.T) {
	store := newFakeStore(burger(5))
	uc, runner := newUseCase(store)

	_, err := uc.FinalizeSale(context.Background(), dto.FinalizeSaleRequest{
		Customer: "Alice",
		Items: []dto.SaleItemRequest{
			{ProductID: 1, Quantity: 0},
			{ProductID: -7, Quantity: 2},
		},
	})
	require.Error(t, err)

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Len(t, validationErr.Reasons, 2)
	assert.Zero(t, runner.runs)
}

// Atomicidad multi-ítem: el primer ítem alcanza pero el segundo no → rollback
// total, incluido el descuento ya aplicado al primer producto.
func TestFinalizeSale_MultiItemRollbackTotal(t *testing.T) {
	store := newFakeStore(burger(5), soda(1))
	uc, _ := newUseCase(store)

	_, err := uc.FinalizeSale(context.Background(), dto.FinalizeSaleRequest{
		Customer: "Alice",
		Items: []dto.SaleItemRequest{
			{ProductID: 1, Quantity: 2}, // alcanza
			{ProductID: 2, Quantity: 4}, // no alcanza
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, int64(5), store.productQuantity(t, 1),
		"el descuento del primer ítem debe revertirse")
	assert.Equal(t, int64(1), store.productQuantity(t, 2))
	assert.Empty(t, store.sales)
	assert.Empty(t, store.items)
}

// Conservación: la suma de lo descontado es exactamente la suma de lo pedido.
func TestFinalizeSale_Conservacion(t *testing.T) {
	store := newFakeStore(burger(10), soda(8))
	uc, _ := newUseCase(store)

	before := store.productQuantity(t, 1) + store.productQuantity(t, 2)

	_, err := uc.FinalizeSale(context.Background(), dto.FinalizeSaleRequest{
		Customer: "Alice",
		Items: []dto.SaleItemRequest{
			{ProductID: 1, Quantity: 3},
			{ProductID: 2, Quantity: 5},
		},
	})
	require.NoError(t, err)

	after := store.productQuantity(t, 1) + store.productQuantity(t, 2)
	assert.Equal(t, int64(8), before-after,
		"lo descontado debe igualar la suma de cantidades pedidas")
}

// Un product_id repetido en el mismo request se procesa en orden y relee la
// cantidad ya descontada: 2 + 2 sobre stock 5 deja 1 y dos líneas.
func TestFinalizeSale_ItemRepetido(t *testing.T) {
	store := newFakeStore(burger(5))
	uc, _ := newUseCase(store)

	resp, err := uc.FinalizeSale(context.Background(), dto.FinalizeSaleRequest{
		Customer: "Alice",
		Items: []dto.SaleItemRequest{
			{ProductID: 1, Quantity: 2},
			{ProductID: 1, Quantity: 2},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), store.productQuantity(t, 1))
	assert.Len(t, store.items, 2)
	assert.True(t, resp.Total.Equal(decimal.NewFromFloat(40.0)))
}

// Y si lo repetido excede el stock, falla completo: 3 + 3 sobre stock 5.
func TestFinalizeSale_ItemRepetidoExcedeStock(t *testing.T) {
	store := newFakeStore(burger(5))
	uc, _ := newUseCase(store)

	_, err := uc.FinalizeSale(context.Background(), dto.FinalizeSaleRequest{
		Customer: "Alice",
		Items: []dto.SaleItemRequest{
			{ProductID: 1, Quantity: 3},
			{ProductID: 1, Quantity: 3},
		},
	})
	require.Error(t, err)

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, int64(2), stockErr.Available,
		"la segunda línea debe ver el stock ya descontado por la primera")

	assert.Equal(t, int64(5), store.productQuantity(t, 1), "rollback total")
	assert.Empty(t, store.sales)
}

// Falla de almacenamiento a mitad de la transacción → el error se propaga y el
// rollback deja el almacén exactamente como estaba.
func TestFinalizeSale_FallaDeAlmacenamiento(t *testing.T) {
	store := newFakeStore(burger(5))
	store.failCreateItem = true
	uc, _ := newUseCase(store)

	_, err := uc.FinalizeSale(context.Background(), dto.FinalizeSaleRequest{
		Customer: "Alice",
		Items:    []dto.SaleItemRequest{{ProductID: 1, Quantity: 3}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, errStorageDown)

	assert.Equal(t, int64(5), store.productQuantity(t, 1))
	assert.Empty(t, store.sales)
	assert.Empty(t, store.items)
}

// Sin oversell bajo concurrencia: 25 ventas concurrentes de 1 unidad contra un
// stock de 10 → exactamente 10 éxitos, 15 rechazos y stock final 0.
func TestFinalizeSale_SinOversellConcurrente(t *testing.T) {
	const (
		initialStock = 10
		attempts     = 25
	)
	store := newFakeStore(burger(initialStock))
	uc, _ := newUseCase(store)

	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.FinalizeSale(context.Background(), dto.FinalizeSaleRequest{
				Customer: "Cliente",
				Items:    []dto.SaleItemRequest{{ProductID: 1, Quantity: 1}},
			})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var successes, rejections int
	for err := range results {
		if err == nil {
			successes++
			continue
		}
		rejections++
		assert.ErrorIs(t, err, domain.ErrInsufficientStock,
			"todo rechazo debe ser por stock insuficiente")
	}

	assert.Equal(t, initialStock, successes, "deben vender exactamente %d unidades", initialStock)
	assert.Equal(t, attempts-initialStock, rejections)
	assert.Equal(t, int64(0), store.productQuantity(t, 1), "el stock nunca baja de cero")
	assert.Len(t, store.sales, initialStock)
}
