package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-erp/internal/application/dto"
	"github.com/jhoicas/almacen-erp/internal/application/inventory"
	"github.com/jhoicas/almacen-erp/internal/domain/entity"
)

// BalanceHandler maneja las consultas de saldos y la reconstrucción desde el
// libro.
type BalanceHandler struct {
	balances *inventory.BalanceUseCase
}

// NewBalanceHandler construye el handler.
func NewBalanceHandler(balances *inventory.BalanceUseCase) *BalanceHandler {
	return &BalanceHandler{balances: balances}
}

// Get godoc
// @Summary      Saldo de un par (producto, bodega)
// @Tags         balances
// @Produce      json
// @Param        product_id    path  string  true  "ID del producto"
// @Param        warehouse_id  path  string  true  "ID de la bodega"
// @Success      200  {object}  dto.BalanceResponse
// @Router       /api/balances/{product_id}/{warehouse_id} [get]
func (h *BalanceHandler) Get(c *fiber.Ctx) error {
	balance, err := h.balances.Get(c.Params("product_id"), c.Params("warehouse_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toBalanceResponse(balance))
}

// ListByWarehouse godoc
// @Summary      Saldos de una bodega
// @Tags         balances
// @Produce      json
// @Param        warehouse_id  path  string  true  "ID de la bodega"
// @Success      200  {array}  dto.BalanceResponse
// @Router       /api/balances/warehouse/{warehouse_id} [get]
func (h *BalanceHandler) ListByWarehouse(c *fiber.Ctx) error {
	list, err := h.balances.ListByWarehouse(
		c.Params("warehouse_id"),
		c.QueryInt("limit", 50),
		c.QueryInt("offset", 0),
	)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.BalanceResponse, 0, len(list))
	for _, b := range list {
		out = append(out, toBalanceResponse(b))
	}
	return c.JSON(fiber.Map{"total": len(out), "balances": out})
}

// LowStock godoc
// @Summary      Reporte de bajo stock
// @Description  Productos activos con disponible por debajo o igual a su punto de reorden.
// @Tags         balances
// @Produce      json
// @Param        warehouse_id  query  string  false  "Filtrar por bodega. Vacío = todas."
// @Success      200  {array}  dto.LowStockItemResponse
// @Router       /api/balances/low-stock [get]
func (h *BalanceHandler) LowStock(c *fiber.Ctx) error {
	items, err := h.balances.LowStock(c.Query("warehouse_id"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.LowStockItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, dto.LowStockItemResponse{
			ProductID:    item.ProductID,
			SKU:          item.SKU,
			ProductName:  item.ProductName,
			WarehouseID:  item.WarehouseID,
			OnHandQty:    item.OnHandQty,
			AvailableQty: item.AvailableQty,
			ReorderPoint: item.ReorderPoint,
			SafetyStock:  item.SafetyStock,
		})
	}
	return c.JSON(fiber.Map{"total": len(out), "items": out})
}

// Rebuild godoc
// @Summary      Reconstruir el saldo de un par desde el libro
// @Description  Recalcula on_hand plegando todos los movimientos y reescribe la caché.
// @Tags         balances
// @Produce      json
// @Param        product_id    path  string  true  "ID del producto"
// @Param        warehouse_id  path  string  true  "ID de la bodega"
// @Success      200  {object}  inventory.RebuildResult
// @Router       /api/balances/{product_id}/{warehouse_id}/rebuild [post]
func (h *BalanceHandler) Rebuild(c *fiber.Ctx) error {
	result, err := h.balances.Rebuild(c.Context(), c.Params("product_id"), c.Params("warehouse_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

func toBalanceResponse(b *entity.InventoryBalance) dto.BalanceResponse {
	return dto.BalanceResponse{
		ProductID:    b.ProductID,
		WarehouseID:  b.WarehouseID,
		OnHandQty:    b.OnHandQty,
		ReservedQty:  b.ReservedQty,
		AvailableQty: b.AvailableQty,
		UpdatedAt:    b.UpdatedAt,
	}
}
