package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-erp/internal/application/inventory"
	"github.com/jhoicas/almacen-erp/internal/application/orders"
	"github.com/jhoicas/almacen-erp/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC   *usecase.ProductUseCase
	WarehouseUC *usecase.WarehouseUseCase
	SupplierUC  *usecase.SupplierUseCase
	CustomerUC  *usecase.CustomerUseCase
	MovementUC  *inventory.MovementUseCase
	BalanceUC   *inventory.BalanceUseCase
	PurchaseUC  *orders.PurchaseUseCase
	SalesUC     *orders.SalesUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Catálogo
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)

	warehouses := api.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", warehouseHandler.Update)

	suppliers := api.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)

	customers := api.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)

	// Libro de movimientos y traslados
	stock := api.Group("/stock")
	stockHandler := NewStockHandler(deps.MovementUC)
	stock.Post("/movements", stockHandler.RecordMovement)
	stock.Get("/movements", stockHandler.ListMovements)
	stock.Post("/transfer", stockHandler.Transfer)

	// Saldos materializados
	balances := api.Group("/balances")
	balanceHandler := NewBalanceHandler(deps.BalanceUC)
	balances.Get("/low-stock", balanceHandler.LowStock)
	balances.Get("/warehouse/:warehouse_id", balanceHandler.ListByWarehouse)
	balances.Get("/:product_id/:warehouse_id", balanceHandler.Get)
	balances.Post("/:product_id/:warehouse_id/rebuild", balanceHandler.Rebuild)

	// Órdenes de compra
	purchase := api.Group("/orders/purchase")
	purchaseHandler := NewPurchaseOrderHandler(deps.PurchaseUC)
	purchase.Post("/", purchaseHandler.Create)
	purchase.Get("/", purchaseHandler.List)
	purchase.Get("/:id", purchaseHandler.GetByID)
	purchase.Post("/:id/approve", purchaseHandler.Approve)
	purchase.Post("/:id/receive", purchaseHandler.ReceiveLine)

	// Órdenes de venta
	sales := api.Group("/orders/sales")
	salesHandler := NewSalesOrderHandler(deps.SalesUC)
	sales.Post("/", salesHandler.Create)
	sales.Get("/", salesHandler.List)
	sales.Get("/:id", salesHandler.GetByID)
	sales.Post("/:id/approve", salesHandler.Approve)
	sales.Post("/:id/ship", salesHandler.Ship)
}
