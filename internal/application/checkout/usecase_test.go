package checkout_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/supermarket-pos/internal/application/checkout"
	"github.com/tu-usuario/supermarket-pos/internal/domain"
	"github.com/tu-usuario/supermarket-pos/internal/domain/entity"
	"github.com/tu-usuario/supermarket-pos/internal/domain/repository"
	"github.com/tu-usuario/supermarket-pos/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: un almacén compartido más un TxRunner que simula
// atomicidad con snapshot/restore. En error no queda ningún efecto.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	items        map[int64]*entity.InventoryItem
	lots         map[int64]*entity.Lot
	transactions map[int64]*entity.SalesTransaction
	txItems      []entity.SalesTransactionItem
	nextTxID     int64

	lockOrder     []int64 // IDs pasados a GetForUpdate, en orden de llamada
	lotTouchOrder []int64 // IDs de lote decrementados, en orden de llamada
	began         int     // transacciones iniciadas

	failItemDecrement bool // simula que el UPDATE del ítem afecta cero filas
}

func newMemStore() *memStore {
	return &memStore{
		items:        make(map[int64]*entity.InventoryItem),
		lots:         make(map[int64]*entity.Lot),
		transactions: make(map[int64]*entity.SalesTransaction),
		nextTxID:     100,
	}
}

func (s *memStore) addItem(id, lotID, qty int64) {
	s.items[id] = &entity.InventoryItem{ID: id, ProductID: id, LotID: lotID, Barcode: "B", Quantity: qty}
	if _, ok := s.lots[lotID]; !ok {
		s.lots[lotID] = &entity.Lot{ID: lotID, Quantity: 0}
	}
	s.lots[lotID].Quantity += qty
}

func (s *memStore) clone() *memStore {
	c := newMemStore()
	c.nextTxID = s.nextTxID
	for id, it := range s.items {
		cp := *it
		c.items[id] = &cp
	}
	for id, l := range s.lots {
		cp := *l
		c.lots[id] = &cp
	}
	for id, tx := range s.transactions {
		cp := *tx
		c.transactions[id] = &cp
	}
	c.txItems = append(c.txItems, s.txItems...)
	return c
}

type fakeTxRunner struct {
	mu    sync.Mutex // serializa transacciones, como lo harían los bloqueos de fila
	store *memStore
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	itemRepo repository.InventoryItemRepository,
	lotRepo repository.LotRepository,
	salesRepo repository.SalesRepository,
) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store.began++
	snapshot := r.store.clone()
	err := fn(&fakeItemRepo{s: r.store}, &fakeLotRepo{s: r.store}, &fakeSalesRepo{s: r.store})
	if err != nil {
		// rollback: restaurar datos, conservar métricas de instrumentación
		lockOrder, lotTouchOrder := r.store.lockOrder, r.store.lotTouchOrder
		began, fail := r.store.began, r.store.failItemDecrement
		*r.store = *snapshot
		r.store.lockOrder, r.store.lotTouchOrder = lockOrder, lotTouchOrder
		r.store.began, r.store.failItemDecrement = began, fail
	}
	return err
}

type fakeItemRepo struct{ s *memStore }

func (f *fakeItemRepo) GetForUpdate(_ context.Context, itemID int64) (*entity.InventoryItem, error) {
	f.s.lockOrder = append(f.s.lockOrder, itemID)
	it, ok := f.s.items[itemID]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (f *fakeItemRepo) DecrementQuantity(_ context.Context, itemID, quantity int64) (int64, error) {
	if f.s.failItemDecrement {
		return 0, nil
	}
	it, ok := f.s.items[itemID]
	if !ok || it.Quantity < quantity {
		return 0, nil
	}
	it.Quantity -= quantity
	return 1, nil
}

func (f *fakeItemRepo) GetByBarcode(context.Context, string) (*entity.InventoryItem, error) {
	return nil, errors.New("no implementado")
}
func (f *fakeItemRepo) ScanByBarcode(context.Context, string) (*entity.ScannedItem, error) {
	return nil, errors.New("no implementado")
}
func (f *fakeItemRepo) Create(context.Context, *entity.InventoryItem) error {
	return errors.New("no implementado")
}
func (f *fakeItemRepo) AddQuantityByBarcode(context.Context, string, string, int64) (int64, error) {
	return 0, errors.New("no implementado")
}
func (f *fakeItemRepo) ListByEmployee(context.Context, string) ([]*entity.ScannedItem, error) {
	return nil, errors.New("no implementado")
}
func (f *fakeItemRepo) ListAll(context.Context) ([]*entity.ScannedItem, error) {
	return nil, errors.New("no implementado")
}

type fakeLotRepo struct{ s *memStore }

func (f *fakeLotRepo) DecrementQuantity(_ context.Context, lotID, quantity int64) (int64, error) {
	f.s.lotTouchOrder = append(f.s.lotTouchOrder, lotID)
	l, ok := f.s.lots[lotID]
	if !ok || l.Quantity < quantity {
		return 0, nil
	}
	l.Quantity -= quantity
	return 1, nil
}

func (f *fakeLotRepo) Create(context.Context, *entity.Lot) error { return errors.New("no implementado") }
func (f *fakeLotRepo) GetByID(context.Context, int64) (*entity.Lot, error) {
	return nil, errors.New("no implementado")
}
func (f *fakeLotRepo) List(context.Context) ([]*entity.Lot, error) {
	return nil, errors.New("no implementado")
}
func (f *fakeLotRepo) AddQuantity(context.Context, int64, int64) (int64, error) {
	return 0, errors.New("no implementado")
}

type fakeSalesRepo struct{ s *memStore }

func (f *fakeSalesRepo) CreateTransaction(_ context.Context, tx *entity.SalesTransaction) (int64, error) {
	f.s.nextTxID++
	id := f.s.nextTxID
	cp := *tx
	cp.ID = id
	f.s.transactions[id] = &cp
	return id, nil
}

func (f *fakeSalesRepo) CreateTransactionItem(_ context.Context, item *entity.SalesTransactionItem) error {
	f.s.txItems = append(f.s.txItems, *item)
	return nil
}

func (f *fakeSalesRepo) GetTransaction(context.Context, int64) (*entity.SalesTransaction, error) {
	return nil, errors.New("no implementado")
}

func newUseCase(s *memStore) *checkout.UseCase {
	return checkout.NewUseCase(&fakeTxRunner{store: s}, logger.Nop())
}

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ──────────────────────────────────────────────────────────────────────────────
// Camino feliz
// ──────────────────────────────────────────────────────────────────────────────

func TestCheckout_VentaExitosa(t *testing.T) {
	s := newMemStore()
	s.addItem(1, 10, 5)
	s.addItem(2, 20, 8)
	uc := newUseCase(s)

	out, err := uc.Checkout(context.Background(), checkout.CheckoutInput{
		EmployeeID: "emp-1",
		Items: []checkout.CartLine{
			{ItemID: 1, Quantity: 2, UnitPrice: price("2.00")},
			{ItemID: 2, Quantity: 3, UnitPrice: price("1.00")},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.True(t, price("7.00").Equal(out.TotalAmount), "total esperado 7.00, fue %s", out.TotalAmount)
	assert.Equal(t, 2, out.LineCount)

	// Decrementos aplicados a ítem y a su lote.
	assert.Equal(t, int64(3), s.items[1].Quantity)
	assert.Equal(t, int64(5), s.items[2].Quantity)
	assert.Equal(t, int64(3), s.lots[10].Quantity)
	assert.Equal(t, int64(5), s.lots[20].Quantity)

	// Venta persistida con sus líneas.
	tx, ok := s.transactions[out.TransactionID]
	require.True(t, ok)
	assert.Equal(t, "emp-1", tx.EmployeeID)
	assert.Len(t, s.txItems, 2)
}

// Líneas duplicadas del mismo ítem: cada línea conserva su fila de venta,
// pero la validación y el decremento se hacen sobre la cantidad agregada.
func TestCheckout_LineasDuplicadasSeAgregan(t *testing.T) {
	s := newMemStore()
	s.addItem(1, 10, 5)
	uc := newUseCase(s)

	out, err := uc.Checkout(context.Background(), checkout.CheckoutInput{
		EmployeeID: "emp-1",
		Items: []checkout.CartLine{
			{ItemID: 1, Quantity: 2, UnitPrice: price("1.50")},
			{ItemID: 1, Quantity: 3, UnitPrice: price("1.00")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(0), s.items[1].Quantity, "decremento único por la suma 2+3")
	assert.Len(t, s.txItems, 2, "cada línea del carrito conserva su propia fila")
	assert.True(t, price("6.00").Equal(out.TotalAmount))
	// Un solo bloqueo por ítem distinto.
	assert.Equal(t, []int64{1}, s.lockOrder)
}

// Agregado por encima del stock: 2+3 > 4 debe fallar aunque cada línea
// individual quepa en el stock.
func TestCheckout_DuplicadasSobrepasanStock(t *testing.T) {
	s := newMemStore()
	s.addItem(1, 10, 4)
	uc := newUseCase(s)

	_, err := uc.Checkout(context.Background(), checkout.CheckoutInput{
		EmployeeID: "emp-1",
		Items: []checkout.CartLine{
			{ItemID: 1, Quantity: 2, UnitPrice: price("1.00")},
			{ItemID: 1, Quantity: 3, UnitPrice: price("1.00")},
		},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(4), s.items[1].Quantity, "sin efectos tras el fallo")
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación de entrada: falla antes de abrir transacción
// ──────────────────────────────────────────────────────────────────────────────

func TestCheckout_CarritoVacio(t *testing.T) {
	s := newMemStore()
	uc := newUseCase(s)

	_, err := uc.Checkout(context.Background(), checkout.CheckoutInput{EmployeeID: "emp-1"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 0, s.began, "no debe abrirse transacción")
}

func TestCheckout_CantidadCero(t *testing.T) {
	s := newMemStore()
	s.addItem(1, 10, 5)
	uc := newUseCase(s)

	_, err := uc.Checkout(context.Background(), checkout.CheckoutInput{
		EmployeeID: "emp-1",
		Items:      []checkout.CartLine{{ItemID: 1, Quantity: 0, UnitPrice: price("1.00")}},
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 0, s.began)
	assert.Equal(t, int64(5), s.items[1].Quantity)
}

func TestCheckout_CantidadNegativa(t *testing.T) {
	s := newMemStore()
	s.addItem(1, 10, 5)
	uc := newUseCase(s)

	_, err := uc.Checkout(context.Background(), checkout.CheckoutInput{
		EmployeeID: "emp-1",
		Items:      []checkout.CartLine{{ItemID: 1, Quantity: -2, UnitPrice: price("1.00")}},
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCheckout_PrecioNegativo(t *testing.T) {
	s := newMemStore()
	s.addItem(1, 10, 5)
	uc := newUseCase(s)

	_, err := uc.Checkout(context.Background(), checkout.CheckoutInput{
		EmployeeID: "emp-1",
		Items:      []checkout.CartLine{{ItemID: 1, Quantity: 1, UnitPrice: price("-0.01")}},
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 0, s.began)
}

func TestCheckout_SinEmpleado(t *testing.T) {
	s := newMemStore()
	uc := newUseCase(s)

	_, err := uc.Checkout(context.Background(), checkout.CheckoutInput{
		Items: []checkout.CartLine{{ItemID: 1, Quantity: 1, UnitPrice: price("1.00")}},
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 0, s.began)
}

// Precio cero es válido: promociones y regalos.
func TestCheckout_PrecioCeroEsValido(t *testing.T) {
	s := newMemStore()
	s.addItem(1, 10, 5)
	uc := newUseCase(s)

	out, err := uc.Checkout(context.Background(), checkout.CheckoutInput{
		EmployeeID: "emp-1",
		Items:      []checkout.CartLine{{ItemID: 1, Quantity: 1, UnitPrice: decimal.Zero}},
	})
	require.NoError(t, err)
	assert.True(t, out.TotalAmount.IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// Fallos dentro de la transacción: rollback total
// ──────────────────────────────────────────────────────────────────────────────

func TestCheckout_ItemInexistente(t *testing.T) {
	s := newMemStore()
	s.addItem(1, 10, 5)
	uc := newUseCase(s)

	_, err := uc.Checkout(context.Background(), checkout.CheckoutInput{
		EmployeeID: "emp-1",
		Items: []checkout.CartLine{
			{ItemID: 1, Quantity: 1, UnitPrice: price("1.00")},
			{ItemID: 99, Quantity: 1, UnitPrice: price("1.00")},
		},
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "99")

	// Rollback: sin venta, sin líneas, sin decrementos.
	assert.Empty(t, s.transactions)
	assert.Empty(t, s.txItems)
	assert.Equal(t, int64(5), s.items[1].Quantity)
}

func TestCheckout_StockInsuficiente(t *testing.T) {
	s := newMemStore()
	s.addItem(1, 10, 2)
	uc := newUseCase(s)

	_, err := uc.Checkout(context.Background(), checkout.CheckoutInput{
		EmployeeID: "emp-1",
		Items:      []checkout.CartLine{{ItemID: 1, Quantity: 3, UnitPrice: price("1.00")}},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	// El mensaje identifica ítem, disponible y solicitado.
	assert.Contains(t, err.Error(), "1")
	assert.Contains(t, err.Error(), "disponibles 2")
	assert.Contains(t, err.Error(), "solicitados 3")

	assert.Empty(t, s.transactions)
	assert.Equal(t, int64(2), s.items[1].Quantity)
}

func TestCheckout_ModificacionConcurrente(t *testing.T) {
	s := newMemStore()
	s.addItem(1, 10, 5)
	s.failItemDecrement = true
	uc := newUseCase(s)

	_, err := uc.Checkout(context.Background(), checkout.CheckoutInput{
		EmployeeID: "emp-1",
		Items:      []checkout.CartLine{{ItemID: 1, Quantity: 1, UnitPrice: price("1.00")}},
	})
	require.ErrorIs(t, err, domain.ErrConcurrentModification)

	// La venta persistida en la fase 2 debe desaparecer con el rollback.
	assert.Empty(t, s.transactions)
	assert.Empty(t, s.txItems)
	assert.Equal(t, int64(5), s.items[1].Quantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Orden de bloqueo y serialización de ventas
// ──────────────────────────────────────────────────────────────────────────────

// Los bloqueos se adquieren siempre en orden ascendente de item_id, sin
// importar el orden del carrito. Dos carritos con los mismos ítems en orden
// opuesto adquieren los bloqueos en el mismo orden y no pueden interbloquearse.
func TestCheckout_BloqueaEnOrdenAscendente(t *testing.T) {
	s := newMemStore()
	s.addItem(7, 10, 5)
	s.addItem(3, 10, 5)
	s.addItem(5, 10, 5)
	uc := newUseCase(s)

	_, err := uc.Checkout(context.Background(), checkout.CheckoutInput{
		EmployeeID: "emp-1",
		Items: []checkout.CartLine{
			{ItemID: 7, Quantity: 1, UnitPrice: price("1.00")},
			{ItemID: 3, Quantity: 1, UnitPrice: price("1.00")},
			{ItemID: 5, Quantity: 1, UnitPrice: price("1.00")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 5, 7}, s.lockOrder)
}

// Los decrementos de lote también siguen orden ascendente de lot_id, no el
// orden que dicte el mapeo ítem→lote. Dos carritos con ítems disjuntos
// pueden compartir lotes; sin orden total sobre los lotes se tocarían en
// órdenes opuestos.
func TestCheckout_DecrementaLotesEnOrdenAscendente(t *testing.T) {
	s := newMemStore()
	s.addItem(1, 50, 5)
	s.addItem(2, 10, 5)
	uc := newUseCase(s)

	_, err := uc.Checkout(context.Background(), checkout.CheckoutInput{
		EmployeeID: "emp-1",
		Items: []checkout.CartLine{
			{ItemID: 1, Quantity: 1, UnitPrice: price("1.00")},
			{ItemID: 2, Quantity: 1, UnitPrice: price("1.00")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []int64{1, 2}, s.lockOrder)
	assert.Equal(t, []int64{10, 50}, s.lotTouchOrder,
		"los lotes se decrementan por lot_id ascendente, no por el orden de los ítems")
}

// Varios ítems del mismo lote: un solo decremento de lote con la suma.
func TestCheckout_ItemsDelMismoLoteAgreganDecremento(t *testing.T) {
	s := newMemStore()
	s.addItem(1, 10, 5)
	s.addItem(2, 10, 8)
	uc := newUseCase(s)

	_, err := uc.Checkout(context.Background(), checkout.CheckoutInput{
		EmployeeID: "emp-1",
		Items: []checkout.CartLine{
			{ItemID: 1, Quantity: 2, UnitPrice: price("1.00")},
			{ItemID: 2, Quantity: 3, UnitPrice: price("1.00")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []int64{10}, s.lotTouchOrder, "un solo decremento por lote distinto")
	assert.Equal(t, int64(8), s.lots[10].Quantity, "13 - (2+3)")
	assert.Equal(t, int64(3), s.items[1].Quantity)
	assert.Equal(t, int64(5), s.items[2].Quantity)
}

// Dos ventas secuenciales sobre el mismo stock: la segunda ve el stock ya
// decrementado y no puede sobrevender.
func TestCheckout_NoSobrevendeEnSerie(t *testing.T) {
	s := newMemStore()
	s.addItem(1, 10, 3)
	uc := newUseCase(s)

	_, err := uc.Checkout(context.Background(), checkout.CheckoutInput{
		EmployeeID: "caja-1",
		Items:      []checkout.CartLine{{ItemID: 1, Quantity: 2, UnitPrice: price("1.00")}},
	})
	require.NoError(t, err)

	_, err = uc.Checkout(context.Background(), checkout.CheckoutInput{
		EmployeeID: "caja-2",
		Items:      []checkout.CartLine{{ItemID: 1, Quantity: 2, UnitPrice: price("1.00")}},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(1), s.items[1].Quantity, "el stock nunca baja de cero")
}

// Varias cajas compitiendo a la vez por el mismo stock: con las
// transacciones serializadas por los bloqueos, venden exactamente las
// unidades disponibles y ni una más.
func TestCheckout_NoSobrevendeConcurrente(t *testing.T) {
	const stock, cajas = 3, 8

	s := newMemStore()
	s.addItem(1, 10, stock)
	uc := newUseCase(s)

	errs := make(chan error, cajas)
	var wg sync.WaitGroup
	for i := 0; i < cajas; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Checkout(context.Background(), checkout.CheckoutInput{
				EmployeeID: "caja-x",
				Items:      []checkout.CartLine{{ItemID: 1, Quantity: 1, UnitPrice: price("1.00")}},
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var ok, agotado int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrInsufficientStock):
			agotado++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, stock, ok, "ventas exitosas = stock disponible")
	assert.Equal(t, cajas-stock, agotado)
	assert.Equal(t, int64(0), s.items[1].Quantity)
	assert.Equal(t, int64(0), s.lots[10].Quantity)
	assert.Len(t, s.transactions, stock)
}
