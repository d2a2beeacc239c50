package stock

import (
	"context"

	"github.com/estoquezen/estoque-api/internal/domain/repository"
)

// TxRunner executa uma função dentro de uma transação de banco, passando
// repositórios atados a essa tx. Garante que a mutação do lote e o registro
// de histórico sejam atômicos (Commit/Rollback juntos).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.StockItemRepository,
		historyRepo repository.HistoryRepository,
	) error) error
}
