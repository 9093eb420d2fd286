package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-erp/internal/application/dto"
	"github.com/jhoicas/almacen-erp/internal/application/orders"
	"github.com/jhoicas/almacen-erp/internal/domain/entity"
)

// SalesOrderHandler maneja las peticiones HTTP de órdenes de venta.
type SalesOrderHandler struct {
	uc *orders.SalesUseCase
}

// NewSalesOrderHandler construye el handler.
func NewSalesOrderHandler(uc *orders.SalesUseCase) *SalesOrderHandler {
	return &SalesOrderHandler{uc: uc}
}

// Create godoc
// @Summary      Crear orden de venta (DRAFT)
// @Tags         sales-orders
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSalesOrderRequest  true  "customer_id, order_no, lines"
// @Success      201   {object}  dto.SalesOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/sales [post]
func (h *SalesOrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSalesOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	lines := make([]orders.SalesLineInput, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, orders.SalesLineInput{
			ProductID: l.ProductID,
			Qty:       l.Qty,
			UnitPrice: l.UnitPrice,
		})
	}
	order, err := h.uc.Create(c.Context(), orders.CreateSalesOrderInput{
		CustomerID:       in.CustomerID,
		OrderNo:          in.OrderNo,
		OrderDate:        in.OrderDate,
		ExpectedShipDate: in.ExpectedShipDate,
		Note:             in.Note,
		Lines:            lines,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toSalesOrderResponse(order))
}

// Approve godoc
// @Summary      Aprobar orden de venta (DRAFT -> APPROVED)
// @Tags         sales-orders
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.SalesOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/sales/{id}/approve [post]
func (h *SalesOrderHandler) Approve(c *fiber.Ctx) error {
	order, err := h.uc.Approve(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toSalesOrderResponse(order))
}

// Ship godoc
// @Summary      Despachar orden de venta completa
// @Description  Todo-o-nada: si alguna línea no tiene stock disponible, nada se despacha.
// @Tags         sales-orders
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID de la orden"
// @Param        body  body  dto.ShipOrderRequest true  "warehouse_id"
// @Success      200   {object}  dto.SalesOrderResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/sales/{id}/ship [post]
func (h *SalesOrderHandler) Ship(c *fiber.Ctx) error {
	var in dto.ShipOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	order, err := h.uc.Ship(c.Context(), orders.ShipInput{
		OrderID:     c.Params("id"),
		WarehouseID: in.WarehouseID,
		Actor:       GetActor(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toSalesOrderResponse(order))
}

// GetByID godoc
// @Summary      Obtener orden de venta
// @Tags         sales-orders
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.SalesOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/sales/{id} [get]
func (h *SalesOrderHandler) GetByID(c *fiber.Ctx) error {
	order, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toSalesOrderResponse(order))
}

// List godoc
// @Summary      Listar órdenes de venta
// @Tags         sales-orders
// @Produce      json
// @Param        status  query  string  false  "DRAFT, APPROVED, PARTIALLY_SHIPPED o CLOSED"
// @Success      200  {array}   dto.SalesOrderResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/orders/sales [get]
func (h *SalesOrderHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Query("status"), c.QueryInt("limit", 20), c.QueryInt("offset", 0))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.SalesOrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, toSalesOrderResponse(o))
	}
	return c.JSON(fiber.Map{"total": len(out), "orders": out})
}

func toSalesOrderResponse(o *entity.SalesOrder) dto.SalesOrderResponse {
	lines := make([]dto.SalesOrderLineResponse, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, dto.SalesOrderLineResponse{
			ID:         l.ID,
			ProductID:  l.ProductID,
			Qty:        l.Qty,
			UnitPrice:  l.UnitPrice,
			ShippedQty: l.ShippedQty,
			Status:     l.Status,
		})
	}
	return dto.SalesOrderResponse{
		ID:               o.ID,
		CustomerID:       o.CustomerID,
		OrderNo:          o.OrderNo,
		Status:           o.Status,
		OrderDate:        o.OrderDate,
		ExpectedShipDate: o.ExpectedShipDate,
		Note:             o.Note,
		Lines:            lines,
		CreatedAt:        o.CreatedAt,
	}
}
