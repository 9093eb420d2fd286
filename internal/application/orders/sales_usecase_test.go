package orders_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-erp/internal/application/orders"
	"github.com/jhoicas/almacen-erp/internal/domain"
	"github.com/jhoicas/almacen-erp/internal/domain/entity"
)

func crearOrdenVenta(t *testing.T, f *ordersFixture, orderNo string, lines ...orders.SalesLineInput) *entity.SalesOrder {
	t.Helper()
	order, err := f.sales.Create(context.Background(), orders.CreateSalesOrderInput{
		CustomerID: "cli-1",
		OrderNo:    orderNo,
		Lines:      lines,
	})
	require.NoError(t, err)
	return order
}

func lineaVenta(productID string, qty int64) orders.SalesLineInput {
	return orders.SalesLineInput{
		ProductID: productID,
		Qty:       qty,
		UnitPrice: decimal.NewFromInt(2500),
	}
}

func TestSalesCreate_NaceEnDraft(t *testing.T) {
	f := newOrdersFixture()

	order := crearOrdenVenta(t, f, "OV-001", lineaVenta("prod-a", 4))

	assert.Equal(t, entity.SOStatusDraft, order.Status)
	require.Len(t, order.Lines, 1)
	assert.Equal(t, entity.SOLineStatusPending, order.Lines[0].Status)
}

func TestSalesCreate_NumeroDuplicado(t *testing.T) {
	f := newOrdersFixture()
	crearOrdenVenta(t, f, "OV-001", lineaVenta("prod-a", 4))

	_, err := f.sales.Create(context.Background(), orders.CreateSalesOrderInput{
		CustomerID: "cli-1",
		OrderNo:    "OV-001",
		Lines:      []orders.SalesLineInput{lineaVenta("prod-a", 1)},
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateOrderNumber)
}

// La aprobación verifica y escribe con la fila de la orden bloqueada, igual
// que en compras: de varias aprobaciones concurrentes solo una transiciona.
func TestSalesApprove_ConcurrenciaSoloUnaTransiciona(t *testing.T) {
	f := newOrdersFixture()
	order := crearOrdenVenta(t, f, "OV-001", lineaVenta("prod-a", 4))

	const intentos = 20
	var wg sync.WaitGroup
	var exitos, invalidas int64
	for i := 0; i < intentos; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.sales.Approve(context.Background(), order.ID)
			switch {
			case err == nil:
				atomic.AddInt64(&exitos, 1)
			case errors.Is(err, domain.ErrInvalidTransition):
				atomic.AddInt64(&invalidas, 1)
			default:
				t.Errorf("error inesperado: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), exitos, "solo una aprobación debe transicionar DRAFT -> APPROVED")
	assert.Equal(t, int64(intentos-1), invalidas)
}

func TestShip_CierraLaOrdenYDescuentaStock(t *testing.T) {
	f := newOrdersFixture()
	ctx := context.Background()
	f.seedBalance("prod-a", "bod-a", 10, 0)
	f.seedBalance("prod-b", "bod-a", 10, 0)

	order := crearOrdenVenta(t, f, "OV-001",
		lineaVenta("prod-a", 4),
		lineaVenta("prod-b", 6),
	)
	_, err := f.sales.Approve(ctx, order.ID)
	require.NoError(t, err)

	shipped, err := f.sales.Ship(ctx, orders.ShipInput{
		OrderID:     order.ID,
		WarehouseID: "bod-a",
		Actor:       "despachador",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.SOStatusClosed, shipped.Status)
	for _, l := range shipped.Lines {
		assert.Equal(t, entity.SOLineStatusShipped, l.Status)
		assert.Equal(t, l.Qty, l.ShippedQty)
	}
	assert.Equal(t, int64(6), f.balance("prod-a", "bod-a").OnHandQty)
	assert.Equal(t, int64(4), f.balance("prod-b", "bod-a").OnHandQty)

	// Un movimiento OUT/SALES por línea, referenciado a la orden.
	require.Len(t, f.store.movements, 2)
	for _, mov := range f.store.movements {
		assert.Equal(t, entity.DirectionOUT, mov.Direction)
		assert.Equal(t, entity.MovementTypeSALES, mov.Type)
		assert.Equal(t, "OV-001", mov.RefDocumentNo)
		assert.Equal(t, "despachador", mov.CreatedBy)
	}
}

func TestShip_TodoONada(t *testing.T) {
	f := newOrdersFixture()
	ctx := context.Background()
	// Alcanza para la primera línea pero no para la segunda.
	f.seedBalance("prod-a", "bod-a", 10, 0)
	f.seedBalance("prod-b", "bod-a", 2, 0)

	order := crearOrdenVenta(t, f, "OV-001",
		lineaVenta("prod-a", 4),
		lineaVenta("prod-b", 6),
	)
	_, err := f.sales.Approve(ctx, order.ID)
	require.NoError(t, err)

	_, err = f.sales.Ship(ctx, orders.ShipInput{OrderID: order.ID, WarehouseID: "bod-a"})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Nada se despachó: ni movimientos, ni cambios de saldo, ni de estado.
	assert.Empty(t, f.store.movements)
	assert.Equal(t, int64(10), f.balance("prod-a", "bod-a").OnHandQty)
	assert.Equal(t, int64(2), f.balance("prod-b", "bod-a").OnHandQty)

	persisted, err := f.sales.GetByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.SOStatusApproved, persisted.Status)
	for _, l := range persisted.Lines {
		assert.Equal(t, entity.SOLineStatusPending, l.Status)
		assert.Equal(t, int64(0), l.ShippedQty)
	}
}

func TestShip_DosLineasDelMismoProductoCompitenPorElSaldo(t *testing.T) {
	f := newOrdersFixture()
	ctx := context.Background()
	// 5 disponibles; las dos líneas suman 7 del mismo producto.
	f.seedBalance("prod-a", "bod-a", 5, 0)

	order := crearOrdenVenta(t, f, "OV-001",
		lineaVenta("prod-a", 3),
		lineaVenta("prod-a", 4),
	)
	_, err := f.sales.Approve(ctx, order.ID)
	require.NoError(t, err)

	_, err = f.sales.Ship(ctx, orders.ShipInput{OrderID: order.ID, WarehouseID: "bod-a"})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock,
		"la verificación debe acumular lo requerido por producto, no por línea")
	assert.Equal(t, int64(5), f.balance("prod-a", "bod-a").OnHandQty)
}

func TestShip_RespetaStockReservado(t *testing.T) {
	f := newOrdersFixture()
	ctx := context.Background()
	// on_hand 10 pero 8 reservados: disponible 2.
	f.seedBalance("prod-a", "bod-a", 10, 8)

	order := crearOrdenVenta(t, f, "OV-001", lineaVenta("prod-a", 4))
	_, err := f.sales.Approve(ctx, order.ID)
	require.NoError(t, err)

	_, err = f.sales.Ship(ctx, orders.ShipInput{OrderID: order.ID, WarehouseID: "bod-a"})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestShip_SoloDesdeApproved(t *testing.T) {
	f := newOrdersFixture()
	ctx := context.Background()
	f.seedBalance("prod-a", "bod-a", 10, 0)
	order := crearOrdenVenta(t, f, "OV-001", lineaVenta("prod-a", 4))

	// DRAFT no se puede despachar.
	_, err := f.sales.Ship(ctx, orders.ShipInput{OrderID: order.ID, WarehouseID: "bod-a"})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = f.sales.Approve(ctx, order.ID)
	require.NoError(t, err)
	_, err = f.sales.Ship(ctx, orders.ShipInput{OrderID: order.ID, WarehouseID: "bod-a"})
	require.NoError(t, err)

	// CLOSED tampoco: el despacho es de una sola vez.
	_, err = f.sales.Ship(ctx, orders.ShipInput{OrderID: order.ID, WarehouseID: "bod-a"})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}
