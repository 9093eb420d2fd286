package inventory

import (
	"context"

	"github.com/jhoicas/almacen-erp/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que el append al libro y la
// actualización del saldo se confirmen o se reviertan como una sola unidad.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		balanceRepo repository.BalanceRepository,
	) error) error
}
