package stock

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/estoquezen/estoque-api/internal/application/history"
	"github.com/estoquezen/estoque-api/internal/domain"
	"github.com/estoquezen/estoque-api/internal/domain/entity"
	"github.com/estoquezen/estoque-api/internal/domain/repository"
)

// UseCase motor de reconciliação de estoque: decide entre somar quantidade em
// um lote existente ou criar um lote novo, e executa edição, exclusão e saída.
// Toda mutação bloqueia a linha do lote (SELECT FOR UPDATE) e grava exatamente
// uma entrada de histórico na mesma transação.
type UseCase struct {
	txRunner TxRunner
	itemRepo repository.StockItemRepository // leitura fora de transação
	recorder *history.Recorder
}

// NewUseCase constrói o caso de uso do estoque.
func NewUseCase(txRunner TxRunner, itemRepo repository.StockItemRepository, recorder *history.Recorder) *UseCase {
	return &UseCase{txRunner: txRunner, itemRepo: itemRepo, recorder: recorder}
}

// ItemDraft entrada para o salvamento inteligente.
type ItemDraft struct {
	Name       string
	Barcode    string
	ExpiryDate string // AAAA-MM-DD
	Quantity   int64
	Category   string
	Brand      string
}

// SaveResult resultado do salvamento inteligente.
type SaveResult struct {
	Outcome      string // "somado" | "novo"
	ItemID       string
	DifferentLot bool
}

// Resultados do SaveSmart.
const (
	OutcomeMerged  = "somado"
	OutcomeCreated = "novo"
)

// lotSnapshot retrato de um lote para payloads de histórico.
type lotSnapshot struct {
	ID           string `json:"id"`
	Name         string `json:"nome"`
	Category     string `json:"categoria,omitempty"`
	Brand        string `json:"marca,omitempty"`
	Barcode      string `json:"codigoBarras,omitempty"`
	ExpiryDate   string `json:"validade,omitempty"`
	Quantity     int64  `json:"quantidade"`
	DifferentLot bool   `json:"loteDiferente,omitempty"`
}

func snapshot(item *entity.StockItem) lotSnapshot {
	return lotSnapshot{
		ID:           item.ID,
		Name:         item.Name,
		Category:     item.Category,
		Brand:        item.Brand,
		Barcode:      item.Barcode,
		ExpiryDate:   item.ExpiryDate,
		Quantity:     item.Quantity,
		DifferentLot: item.DifferentLot,
	}
}

// SaveSmart aplica a regra do lote: se existir lote com a mesma tripla
// (barcode, validade, marca) soma a quantidade nele; senão cria um lote novo,
// marcando loteDiferente quando o mesmo código de barras já existe com outra
// validade ou marca. Itens sem código de barras nunca somam — sempre criam
// lote novo. Histórico: "quantidade_somada" no merge, "adicionado" na criação.
func (uc *UseCase) SaveSmart(ctx context.Context, establishmentID string, draft ItemDraft, actor entity.Actor) (*SaveResult, error) {
	if establishmentID == "" || draft.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if draft.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}

	var result SaveResult
	err := uc.txRunner.Run(ctx, func(itemRepo repository.StockItemRepository, historyRepo repository.HistoryRepository) error {
		// Lote exato: só quando há código de barras (política: sem barcode não há merge).
		if draft.Barcode != "" {
			existing, err := itemRepo.FindLotForUpdate(establishmentID, draft.Barcode, draft.ExpiryDate, draft.Brand)
			if err != nil {
				return err
			}
			if existing != nil {
				return uc.mergeInto(itemRepo, historyRepo, existing, draft.Quantity, actor, &result)
			}
		}
		return uc.createLot(itemRepo, historyRepo, establishmentID, draft, actor, &result)
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// mergeInto soma a quantidade no lote bloqueado e registra "quantidade_somada".
func (uc *UseCase) mergeInto(
	itemRepo repository.StockItemRepository,
	historyRepo repository.HistoryRepository,
	item *entity.StockItem,
	qty int64,
	actor entity.Actor,
	result *SaveResult,
) error {
	now := time.Now()
	item.Quantity += qty
	item.UpdatedByID = actor.ID
	item.UpdatedByName = actorName(actor)
	item.UpdatedAt = &now
	if err := itemRepo.Update(item); err != nil {
		return err
	}
	payload := struct {
		ProdutoID  string `json:"produtoId"`
		Quantidade int64  `json:"quantidade"`
	}{ProdutoID: item.ID, Quantidade: qty}
	if err := uc.recorder.Record(historyRepo, item.EstablishmentID, entity.HistoryQuantitySummed, payload, actor); err != nil {
		return err
	}
	result.Outcome = OutcomeMerged
	result.ItemID = item.ID
	return nil
}

// createLot insere o lote novo (com flag loteDiferente quando aplicável) e
// registra "adicionado" com o retrato completo.
func (uc *UseCase) createLot(
	itemRepo repository.StockItemRepository,
	historyRepo repository.HistoryRepository,
	establishmentID string,
	draft ItemDraft,
	actor entity.Actor,
	result *SaveResult,
) error {
	differentLot := false
	if draft.Barcode != "" {
		var err error
		differentLot, err = itemRepo.HasOtherLotWithBarcode(establishmentID, draft.Barcode, draft.ExpiryDate, draft.Brand)
		if err != nil {
			return err
		}
	}
	item := &entity.StockItem{
		ID:              uuid.New().String(),
		EstablishmentID: establishmentID,
		Name:            draft.Name,
		Category:        draft.Category,
		Brand:           draft.Brand,
		Barcode:         draft.Barcode,
		ExpiryDate:      draft.ExpiryDate,
		Quantity:        draft.Quantity,
		DifferentLot:    differentLot,
		CreatedByID:     actor.ID,
		CreatedByName:   actorName(actor),
		CreatedAt:       time.Now(),
	}
	if err := itemRepo.Create(item); err != nil {
		return err
	}
	if err := uc.recorder.Record(historyRepo, establishmentID, entity.HistoryAdded, snapshot(item), actor); err != nil {
		return err
	}
	result.Outcome = OutcomeCreated
	result.ItemID = item.ID
	result.DifferentLot = differentLot
	return nil
}

// ItemChanges campos editáveis de um lote.
type ItemChanges struct {
	Name       string
	ExpiryDate string
	Quantity   int64
	Category   string
	Brand      string
}

// Edit atualiza um lote dentro de uma transação com a linha bloqueada, de modo
// que edições concorrentes do mesmo lote não percam atualizações. Registra
// "editado" com os retratos antes/depois.
func (uc *UseCase) Edit(ctx context.Context, establishmentID, itemID string, changes ItemChanges, actor entity.Actor) error {
	if itemID == "" || changes.Name == "" {
		return domain.ErrInvalidInput
	}
	if changes.Quantity < 0 {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, func(itemRepo repository.StockItemRepository, historyRepo repository.HistoryRepository) error {
		item, err := itemRepo.GetForUpdate(itemID)
		if err != nil {
			return err
		}
		if item == nil || item.EstablishmentID != establishmentID {
			return domain.ErrNotFound
		}
		before := snapshot(item)

		now := time.Now()
		item.Name = changes.Name
		item.ExpiryDate = changes.ExpiryDate
		item.Quantity = changes.Quantity
		item.Category = changes.Category
		item.Brand = changes.Brand
		item.UpdatedByID = actor.ID
		item.UpdatedByName = actorName(actor)
		item.UpdatedAt = &now
		if err := itemRepo.Update(item); err != nil {
			return err
		}

		payload := struct {
			Antes  lotSnapshot `json:"antes"`
			Depois lotSnapshot `json:"depois"`
		}{Antes: before, Depois: snapshot(item)}
		return uc.recorder.Record(historyRepo, establishmentID, entity.HistoryEdited, payload, actor)
	})
}

// Delete remove o lote e registra "excluido" com o retrato anterior.
func (uc *UseCase) Delete(ctx context.Context, establishmentID, itemID string, actor entity.Actor) error {
	if itemID == "" {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, func(itemRepo repository.StockItemRepository, historyRepo repository.HistoryRepository) error {
		item, err := itemRepo.GetForUpdate(itemID)
		if err != nil {
			return err
		}
		if item == nil || item.EstablishmentID != establishmentID {
			return domain.ErrNotFound
		}
		before := snapshot(item)
		if err := itemRepo.Delete(item.ID); err != nil {
			return err
		}
		payload := struct {
			Antes lotSnapshot `json:"antes"`
		}{Antes: before}
		return uc.recorder.Record(historyRepo, establishmentID, entity.HistoryDeleted, payload, actor)
	})
}

// ExitResult resultado de uma saída de estoque.
type ExitResult struct {
	ItemID   string
	Before   int64
	After    int64
	Quantity int64
}

// Exit registra uma saída: bloqueia a linha, falha com ErrInsufficientStock se
// a quantidade pedida excede a disponível, senão decrementa e registra "saida".
// Quantidade zero vale 1 (saída unitária, o padrão da UI).
func (uc *UseCase) Exit(ctx context.Context, establishmentID, itemID string, quantity int64, actor entity.Actor) (*ExitResult, error) {
	if itemID == "" {
		return nil, domain.ErrInvalidInput
	}
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 {
		return nil, domain.ErrInvalidInput
	}

	var result ExitResult
	err := uc.txRunner.Run(ctx, func(itemRepo repository.StockItemRepository, historyRepo repository.HistoryRepository) error {
		item, err := itemRepo.GetForUpdate(itemID)
		if err != nil {
			return err
		}
		if item == nil || item.EstablishmentID != establishmentID {
			return domain.ErrNotFound
		}
		if quantity > item.Quantity {
			return domain.ErrInsufficientStock
		}

		before := item.Quantity
		now := time.Now()
		item.Quantity -= quantity
		item.UpdatedByID = actor.ID
		item.UpdatedByName = actorName(actor)
		item.UpdatedAt = &now
		if err := itemRepo.Update(item); err != nil {
			return err
		}

		payload := struct {
			ProdutoID  string `json:"produtoId"`
			Nome       string `json:"nome"`
			Quantidade int64  `json:"quantidade"`
			Antes      int64  `json:"antes"`
			Depois     int64  `json:"depois"`
		}{ProdutoID: item.ID, Nome: item.Name, Quantidade: quantity, Antes: before, Depois: item.Quantity}
		if err := uc.recorder.Record(historyRepo, establishmentID, entity.HistoryExit, payload, actor); err != nil {
			return err
		}
		result = ExitResult{ItemID: item.ID, Before: before, After: item.Quantity, Quantity: quantity}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// List devolve os lotes do estabelecimento.
func (uc *UseCase) List(ctx context.Context, establishmentID string) ([]*entity.StockItem, error) {
	if establishmentID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.itemRepo.ListByEstablishment(establishmentID)
}

func actorName(actor entity.Actor) string {
	if actor.Name == "" {
		return entity.ActorNameFallback
	}
	return actor.Name
}
