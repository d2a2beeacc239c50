package repository

import "github.com/estoquezen/estoque-api/internal/domain/entity"

// StockItemRepository define o porto de persistência para lotes de estoque (DIP).
// Os métodos *ForUpdate bloqueiam a linha (SELECT FOR UPDATE) e só fazem
// sentido dentro de uma transação do TxRunner.
type StockItemRepository interface {
	Create(item *entity.StockItem) error
	GetByID(id string) (*entity.StockItem, error)
	GetForUpdate(id string) (*entity.StockItem, error)
	// FindLotForUpdate localiza o lote exato pela tripla (barcode, validade, marca)
	// dentro do estabelecimento e bloqueia a linha. nil se não existir.
	FindLotForUpdate(establishmentID, barcode, expiryDate, brand string) (*entity.StockItem, error)
	// HasOtherLotWithBarcode informa se existe outro lote com o mesmo código de
	// barras mas validade ou marca diferentes (flag loteDiferente).
	HasOtherLotWithBarcode(establishmentID, barcode, expiryDate, brand string) (bool, error)
	Update(item *entity.StockItem) error
	Delete(id string) error
	ListByEstablishment(establishmentID string) ([]*entity.StockItem, error)
}
