package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-erp/internal/domain"
	"github.com/jhoicas/almacen-erp/internal/domain/entity"
	"github.com/jhoicas/almacen-erp/internal/domain/repository"
)

// MovementUseCase es el motor de movimientos: el único escritor del libro de
// inventario y de los saldos. Cada operación bloquea la fila del saldo
// (SELECT FOR UPDATE) y aplica libro + saldo en una sola transacción.
type MovementUseCase struct {
	txRunner      TxRunner
	movementRepo  repository.StockMovementRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
}

// NewMovementUseCase construye el motor de movimientos. movementRepo se usa
// solo para lecturas fuera de transacción.
func NewMovementUseCase(
	txRunner TxRunner,
	movementRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
) *MovementUseCase {
	return &MovementUseCase{
		txRunner:      txRunner,
		movementRepo:  movementRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
	}
}

// MovementInput entrada para registrar un movimiento individual.
type MovementInput struct {
	ProductID     string
	WarehouseID   string
	Direction     string // IN, OUT
	Quantity      int64
	Type          string // PURCHASE, SALES, TRANSFER, ADJUSTMENT
	RefDocumentNo string
	RefLineID     string
	Note          string
	Actor         string
}

// TransferInput entrada para un traslado entre bodegas.
type TransferInput struct {
	ProductID       string
	FromWarehouseID string
	ToWarehouseID   string
	Quantity        int64
	Note            string
	Actor           string
}

// RecordMovement valida y registra un movimiento individual. Para OUT exige
// on_hand >= cantidad sobre la fila bloqueada; el append al libro y el delta
// del saldo se confirman juntos o no se confirman.
func (uc *MovementUseCase) RecordMovement(ctx context.Context, input MovementInput) (*entity.StockMovement, error) {
	direction, err := entity.ParseDirection(input.Direction)
	if err != nil {
		return nil, err
	}
	movType, err := entity.ParseMovementType(input.Type)
	if err != nil {
		return nil, err
	}
	if input.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkProductActive(input.ProductID); err != nil {
		return nil, err
	}
	if err := uc.checkWarehouseActive(input.WarehouseID); err != nil {
		return nil, err
	}

	mov := &entity.StockMovement{
		ID:            uuid.New().String(),
		ProductID:     input.ProductID,
		WarehouseID:   input.WarehouseID,
		Direction:     direction,
		Quantity:      input.Quantity,
		Type:          movType,
		RefDocumentNo: input.RefDocumentNo,
		RefLineID:     input.RefLineID,
		Note:          input.Note,
		CreatedAt:     time.Now(),
		CreatedBy:     input.Actor,
	}

	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		balanceRepo repository.BalanceRepository,
	) error {
		return applyMovement(movRepo, balanceRepo, mov)
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// RecordMovementInTx registra un movimiento usando repositorios atados a la
// transacción del caller. Lo consume el motor de órdenes para que recepción o
// despacho, libro y saldo compartan una sola transacción.
func (uc *MovementUseCase) RecordMovementInTx(
	movRepo repository.StockMovementRepository,
	balanceRepo repository.BalanceRepository,
	input MovementInput,
) (*entity.StockMovement, error) {
	direction, err := entity.ParseDirection(input.Direction)
	if err != nil {
		return nil, err
	}
	movType, err := entity.ParseMovementType(input.Type)
	if err != nil {
		return nil, err
	}
	if input.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	mov := &entity.StockMovement{
		ID:            uuid.New().String(),
		ProductID:     input.ProductID,
		WarehouseID:   input.WarehouseID,
		Direction:     direction,
		Quantity:      input.Quantity,
		Type:          movType,
		RefDocumentNo: input.RefDocumentNo,
		RefLineID:     input.RefLineID,
		Note:          input.Note,
		CreatedAt:     time.Now(),
		CreatedBy:     input.Actor,
	}
	if err := applyMovement(movRepo, balanceRepo, mov); err != nil {
		return nil, err
	}
	return mov, nil
}

// applyMovement bloquea la fila del saldo, verifica suficiencia para OUT,
// agrega la entrada al libro y aplica el delta al saldo. Debe ejecutarse
// dentro de una transacción.
func applyMovement(
	movRepo repository.StockMovementRepository,
	balanceRepo repository.BalanceRepository,
	mov *entity.StockMovement,
) error {
	balance, err := balanceRepo.GetForUpdate(mov.ProductID, mov.WarehouseID)
	if err != nil {
		return err
	}
	if mov.Direction == entity.DirectionOUT && balance.OnHandQty < mov.Quantity {
		return domain.ErrInsufficientStock
	}
	if err := movRepo.Create(mov); err != nil {
		return err
	}
	balance.OnHandQty += mov.SignedQuantity()
	balance.RecomputeAvailable()
	balance.UpdatedAt = mov.CreatedAt
	return balanceRepo.Upsert(balance)
}

// Transfer registra un traslado entre bodegas: exactamente dos movimientos
// TRANSFER (OUT en origen, IN en destino) que comparten un número de
// referencia generado, aplicados en una sola transacción. La suficiencia se
// verifica contra available_qty del origen, no contra on_hand, para no
// canibalizar stock reservado.
func (uc *MovementUseCase) Transfer(ctx context.Context, input TransferInput) (*entity.StockMovement, *entity.StockMovement, error) {
	if input.FromWarehouseID == input.ToWarehouseID {
		return nil, nil, domain.ErrInvalidInput
	}
	if input.Quantity <= 0 {
		return nil, nil, domain.ErrInvalidInput
	}
	if err := uc.checkProductActive(input.ProductID); err != nil {
		return nil, nil, err
	}
	if err := uc.checkWarehouseActive(input.FromWarehouseID); err != nil {
		return nil, nil, err
	}
	if err := uc.checkWarehouseActive(input.ToWarehouseID); err != nil {
		return nil, nil, err
	}

	now := time.Now()
	refNo := newTransferRef(now)

	outMov := &entity.StockMovement{
		ID:            uuid.New().String(),
		ProductID:     input.ProductID,
		WarehouseID:   input.FromWarehouseID,
		Direction:     entity.DirectionOUT,
		Quantity:      input.Quantity,
		Type:          entity.MovementTypeTRANSFER,
		RefDocumentNo: refNo,
		Note:          input.Note,
		CreatedAt:     now,
		CreatedBy:     input.Actor,
	}
	inMov := &entity.StockMovement{
		ID:            uuid.New().String(),
		ProductID:     input.ProductID,
		WarehouseID:   input.ToWarehouseID,
		Direction:     entity.DirectionIN,
		Quantity:      input.Quantity,
		Type:          entity.MovementTypeTRANSFER,
		RefDocumentNo: refNo,
		Note:          input.Note,
		CreatedAt:     now,
		CreatedBy:     input.Actor,
	}

	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		balanceRepo repository.BalanceRepository,
	) error {
		// Bloquea primero el origen: es la fila cuya suficiencia decide la operación.
		origin, err := balanceRepo.GetForUpdate(input.ProductID, input.FromWarehouseID)
		if err != nil {
			return err
		}
		if origin.AvailableQty < input.Quantity {
			return domain.ErrInsufficientStock
		}
		dest, err := balanceRepo.GetForUpdate(input.ProductID, input.ToWarehouseID)
		if err != nil {
			return err
		}

		if err := movRepo.Create(outMov); err != nil {
			return err
		}
		if err := movRepo.Create(inMov); err != nil {
			return err
		}

		origin.OnHandQty -= input.Quantity
		origin.RecomputeAvailable()
		origin.UpdatedAt = now
		if err := balanceRepo.Upsert(origin); err != nil {
			return err
		}
		dest.OnHandQty += input.Quantity
		dest.RecomputeAvailable()
		dest.UpdatedAt = now
		return balanceRepo.Upsert(dest)
	})
	if err != nil {
		return nil, nil, err
	}
	return outMov, inMov, nil
}

// ListMovements lista movimientos del libro con filtros opcionales.
func (uc *MovementUseCase) ListMovements(filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	if filter.Type != "" {
		if _, err := entity.ParseMovementType(filter.Type); err != nil {
			return nil, err
		}
	}
	if filter.Limit <= 0 || filter.Limit > 200 {
		filter.Limit = 50
	}
	return uc.movementRepo.List(filter)
}

func (uc *MovementUseCase) checkProductActive(id string) error {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if !product.Active {
		return domain.ErrConflict
	}
	return nil
}

func (uc *MovementUseCase) checkWarehouseActive(id string) error {
	warehouse, err := uc.warehouseRepo.GetByID(id)
	if err != nil {
		return err
	}
	if warehouse == nil {
		return domain.ErrNotFound
	}
	if !warehouse.Active {
		return domain.ErrConflict
	}
	return nil
}

// newTransferRef genera el número de documento compartido por las dos patas
// de un traslado.
func newTransferRef(now time.Time) string {
	return fmt.Sprintf("TRF-%s-%s", now.Format("20060102150405"), uuid.New().String()[:8])
}
