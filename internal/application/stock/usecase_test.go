package stock_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estoquezen/estoque-api/internal/application/history"
	"github.com/estoquezen/estoque-api/internal/application/stock"
	"github.com/estoquezen/estoque-api/internal/domain"
	"github.com/estoquezen/estoque-api/internal/domain/entity"
	"github.com/estoquezen/estoque-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes em memória
// ──────────────────────────────────────────────────────────────────────────────

type memStockRepo struct {
	items map[string]*entity.StockItem
}

func newMemStockRepo() *memStockRepo {
	return &memStockRepo{items: make(map[string]*entity.StockItem)}
}

func (r *memStockRepo) Create(item *entity.StockItem) error {
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *memStockRepo) GetByID(id string) (*entity.StockItem, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (r *memStockRepo) GetForUpdate(id string) (*entity.StockItem, error) {
	return r.GetByID(id)
}

func (r *memStockRepo) FindLotForUpdate(establishmentID, barcode, expiryDate, brand string) (*entity.StockItem, error) {
	var oldest *entity.StockItem
	for _, it := range r.items {
		if it.EstablishmentID == establishmentID && it.Barcode == barcode &&
			it.ExpiryDate == expiryDate && it.Brand == brand {
			if oldest == nil || it.CreatedAt.Before(oldest.CreatedAt) {
				oldest = it
			}
		}
	}
	if oldest == nil {
		return nil, nil
	}
	cp := *oldest
	return &cp, nil
}

func (r *memStockRepo) HasOtherLotWithBarcode(establishmentID, barcode, expiryDate, brand string) (bool, error) {
	for _, it := range r.items {
		if it.EstablishmentID == establishmentID && it.Barcode == barcode &&
			(it.ExpiryDate != expiryDate || it.Brand != brand) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memStockRepo) Update(item *entity.StockItem) error {
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *memStockRepo) Delete(id string) error {
	delete(r.items, id)
	return nil
}

func (r *memStockRepo) ListByEstablishment(establishmentID string) ([]*entity.StockItem, error) {
	var list []*entity.StockItem
	for _, it := range r.items {
		if it.EstablishmentID == establishmentID {
			cp := *it
			list = append(list, &cp)
		}
	}
	return list, nil
}

type memHistoryRepo struct {
	entries []*entity.HistoryEntry
}

func (r *memHistoryRepo) Append(entry *entity.HistoryEntry) error {
	cp := *entry
	cp.ID = uuid.New().String()
	cp.CreatedAt = time.Now()
	r.entries = append(r.entries, &cp)
	return nil
}

func (r *memHistoryRepo) ListByEstablishment(establishmentID string, limit, offset int) ([]*entity.HistoryEntry, error) {
	var list []*entity.HistoryEntry
	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].EstablishmentID == establishmentID {
			list = append(list, r.entries[i])
		}
	}
	if offset > len(list) {
		offset = len(list)
	}
	list = list[offset:]
	if limit < len(list) {
		list = list[:limit]
	}
	return list, nil
}

// fakeTxRunner executa o callback diretamente sobre os fakes; as garantias de
// transação ficam fora do alcance destes testes de unidade.
type fakeTxRunner struct {
	itemRepo    *memStockRepo
	historyRepo *memHistoryRepo
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	itemRepo repository.StockItemRepository,
	historyRepo repository.HistoryRepository,
) error) error {
	return fn(r.itemRepo, r.historyRepo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Setup
// ──────────────────────────────────────────────────────────────────────────────

const testEstID = "est-001"

var testActor = entity.Actor{ID: "user-1", Name: "Maria Silva", Role: entity.RoleAdmin}

func newStockFixture() (*stock.UseCase, *memStockRepo, *memHistoryRepo) {
	items := newMemStockRepo()
	hist := &memHistoryRepo{}
	runner := &fakeTxRunner{itemRepo: items, historyRepo: hist}
	uc := stock.NewUseCase(runner, items, history.NewRecorder())
	return uc, items, hist
}

func draft(name, barcode, expiry, brand string, qty int64) stock.ItemDraft {
	return stock.ItemDraft{
		Name:       name,
		Barcode:    barcode,
		ExpiryDate: expiry,
		Brand:      brand,
		Quantity:   qty,
	}
}

func actions(hist *memHistoryRepo) []string {
	out := make([]string, 0, len(hist.entries))
	for _, e := range hist.entries {
		out = append(out, e.Action)
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// SaveSmart — merge de lote
// ──────────────────────────────────────────────────────────────────────────────

// Salvar duas vezes a mesma tripla (barcode, validade, marca) deve somar a
// quantidade no lote existente em vez de criar um segundo.
func TestSaveSmart_MesmaTripla_SomaQuantidade(t *testing.T) {
	uc, items, hist := newStockFixture()
	ctx := context.Background()

	first, err := uc.SaveSmart(ctx, testEstID, draft("Arroz 5kg", "789100001", "2026-12-01", "Tio João", 10), testActor)
	require.NoError(t, err)
	assert.Equal(t, stock.OutcomeCreated, first.Outcome)

	second, err := uc.SaveSmart(ctx, testEstID, draft("Arroz 5kg", "789100001", "2026-12-01", "Tio João", 5), testActor)
	require.NoError(t, err)

	assert.Equal(t, stock.OutcomeMerged, second.Outcome, "mesma tripla deve somar, não criar")
	assert.Equal(t, first.ItemID, second.ItemID, "o merge deve apontar para o lote original")
	assert.Len(t, items.items, 1, "não deve existir segundo lote")
	assert.Equal(t, int64(15), items.items[first.ItemID].Quantity)

	assert.Equal(t, []string{entity.HistoryAdded, entity.HistoryQuantitySummed}, actions(hist),
		"cada salvamento deve gerar exatamente uma entrada de histórico")
}

// Mesmo código de barras com validade diferente é outro lote: cria item novo
// com a flag de lote diferente ligada.
func TestSaveSmart_MesmoBarcodeOutraValidade_CriaLoteDiferente(t *testing.T) {
	uc, items, _ := newStockFixture()
	ctx := context.Background()

	_, err := uc.SaveSmart(ctx, testEstID, draft("Leite 1L", "789200002", "2026-01-10", "Itambé", 12), testActor)
	require.NoError(t, err)

	result, err := uc.SaveSmart(ctx, testEstID, draft("Leite 1L", "789200002", "2026-03-10", "Itambé", 6), testActor)
	require.NoError(t, err)

	assert.Equal(t, stock.OutcomeCreated, result.Outcome)
	assert.True(t, result.DifferentLot, "mesmo barcode com outra validade deve marcar lote diferente")
	assert.Len(t, items.items, 2)
	assert.True(t, items.items[result.ItemID].DifferentLot)
}

// Mesmo código de barras com marca diferente também é outro lote.
func TestSaveSmart_MesmoBarcodeOutraMarca_CriaLoteDiferente(t *testing.T) {
	uc, _, _ := newStockFixture()
	ctx := context.Background()

	_, err := uc.SaveSmart(ctx, testEstID, draft("Feijão 1kg", "789300003", "2026-06-01", "Camil", 8), testActor)
	require.NoError(t, err)

	result, err := uc.SaveSmart(ctx, testEstID, draft("Feijão 1kg", "789300003", "2026-06-01", "Kicaldo", 4), testActor)
	require.NoError(t, err)

	assert.Equal(t, stock.OutcomeCreated, result.Outcome)
	assert.True(t, result.DifferentLot)
}

// Itens sem código de barras nunca somam: salvamentos idênticos criam lotes
// independentes e sem a flag de lote diferente.
func TestSaveSmart_SemBarcode_SempreCriaLoteNovo(t *testing.T) {
	uc, items, _ := newStockFixture()
	ctx := context.Background()

	r1, err := uc.SaveSmart(ctx, testEstID, draft("Tomate", "", "2026-02-01", "", 3), testActor)
	require.NoError(t, err)
	r2, err := uc.SaveSmart(ctx, testEstID, draft("Tomate", "", "2026-02-01", "", 3), testActor)
	require.NoError(t, err)

	assert.Equal(t, stock.OutcomeCreated, r1.Outcome)
	assert.Equal(t, stock.OutcomeCreated, r2.Outcome)
	assert.NotEqual(t, r1.ItemID, r2.ItemID)
	assert.False(t, r2.DifferentLot, "itens sem barcode não participam da detecção de lote diferente")
	assert.Len(t, items.items, 2)
}

// O merge só acontece dentro do mesmo estabelecimento.
func TestSaveSmart_OutroEstabelecimento_NaoSoma(t *testing.T) {
	uc, items, _ := newStockFixture()
	ctx := context.Background()

	_, err := uc.SaveSmart(ctx, testEstID, draft("Óleo de soja", "789400004", "2026-09-01", "Liza", 5), testActor)
	require.NoError(t, err)

	result, err := uc.SaveSmart(ctx, "est-002", draft("Óleo de soja", "789400004", "2026-09-01", "Liza", 5), testActor)
	require.NoError(t, err)

	assert.Equal(t, stock.OutcomeCreated, result.Outcome)
	assert.Len(t, items.items, 2)
}

func TestSaveSmart_EntradaInvalida(t *testing.T) {
	uc, _, hist := newStockFixture()
	ctx := context.Background()

	_, err := uc.SaveSmart(ctx, testEstID, draft("", "789", "2026-01-01", "", 1), testActor)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "nome vazio deve ser rejeitado")

	_, err = uc.SaveSmart(ctx, testEstID, draft("Sal", "789", "2026-01-01", "", 0), testActor)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "quantidade zero deve ser rejeitada")

	_, err = uc.SaveSmart(ctx, testEstID, draft("Sal", "789", "2026-01-01", "", -2), testActor)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "quantidade negativa deve ser rejeitada")

	assert.Empty(t, hist.entries, "entrada rejeitada não pode gerar histórico")
}

// ──────────────────────────────────────────────────────────────────────────────
// Edit
// ──────────────────────────────────────────────────────────────────────────────

func TestEdit_GravaRetratosAntesEDepois(t *testing.T) {
	uc, items, hist := newStockFixture()
	ctx := context.Background()

	created, err := uc.SaveSmart(ctx, testEstID, draft("Farinha", "789500005", "2026-05-01", "Dona Benta", 10), testActor)
	require.NoError(t, err)

	err = uc.Edit(ctx, testEstID, created.ItemID, stock.ItemChanges{
		Name:       "Farinha de trigo",
		ExpiryDate: "2026-05-01",
		Quantity:   20,
		Brand:      "Dona Benta",
	}, testActor)
	require.NoError(t, err)

	item := items.items[created.ItemID]
	assert.Equal(t, "Farinha de trigo", item.Name)
	assert.Equal(t, int64(20), item.Quantity)
	assert.Equal(t, testActor.Name, item.UpdatedByName)
	require.NotNil(t, item.UpdatedAt)

	require.Len(t, hist.entries, 2)
	edit := hist.entries[1]
	assert.Equal(t, entity.HistoryEdited, edit.Action)

	var payload struct {
		Antes  map[string]any `json:"antes"`
		Depois map[string]any `json:"depois"`
	}
	require.NoError(t, json.Unmarshal(edit.Payload, &payload))
	assert.Equal(t, "Farinha", payload.Antes["nome"])
	assert.Equal(t, "Farinha de trigo", payload.Depois["nome"])
	assert.Equal(t, float64(10), payload.Antes["quantidade"])
	assert.Equal(t, float64(20), payload.Depois["quantidade"])
}

func TestEdit_LoteDeOutroEstabelecimento_NotFound(t *testing.T) {
	uc, _, hist := newStockFixture()
	ctx := context.Background()

	created, err := uc.SaveSmart(ctx, testEstID, draft("Açúcar", "789600006", "2026-07-01", "União", 5), testActor)
	require.NoError(t, err)

	err = uc.Edit(ctx, "est-outro", created.ItemID, stock.ItemChanges{Name: "Açúcar", Quantity: 1}, testActor)
	assert.ErrorIs(t, err, domain.ErrNotFound, "lote fora do escopo do estabelecimento deve ser invisível")
	assert.Len(t, hist.entries, 1, "a tentativa não deve gerar histórico")
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestDelete_RemoveERegistraRetrato(t *testing.T) {
	uc, items, hist := newStockFixture()
	ctx := context.Background()

	created, err := uc.SaveSmart(ctx, testEstID, draft("Macarrão", "789700007", "2026-10-01", "Barilla", 7), testActor)
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, testEstID, created.ItemID, testActor))
	assert.Empty(t, items.items)

	require.Len(t, hist.entries, 2)
	del := hist.entries[1]
	assert.Equal(t, entity.HistoryDeleted, del.Action)

	var payload struct {
		Antes map[string]any `json:"antes"`
	}
	require.NoError(t, json.Unmarshal(del.Payload, &payload))
	assert.Equal(t, "Macarrão", payload.Antes["nome"])
	assert.Equal(t, float64(7), payload.Antes["quantidade"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Exit — saída de estoque
// ──────────────────────────────────────────────────────────────────────────────

func TestExit_QuantidadeOmitidaValeUm(t *testing.T) {
	uc, items, hist := newStockFixture()
	ctx := context.Background()

	created, err := uc.SaveSmart(ctx, testEstID, draft("Café 500g", "789800008", "2026-04-01", "Pilão", 10), testActor)
	require.NoError(t, err)

	result, err := uc.Exit(ctx, testEstID, created.ItemID, 0, testActor)
	require.NoError(t, err)

	assert.Equal(t, int64(1), result.Quantity)
	assert.Equal(t, int64(10), result.Before)
	assert.Equal(t, int64(9), result.After)
	assert.Equal(t, int64(9), items.items[created.ItemID].Quantity)
	assert.Equal(t, entity.HistoryExit, hist.entries[len(hist.entries)-1].Action)
}

func TestExit_QuantidadeMaiorQueEstoque_Conflito(t *testing.T) {
	uc, items, hist := newStockFixture()
	ctx := context.Background()

	created, err := uc.SaveSmart(ctx, testEstID, draft("Azeite", "789900009", "2027-01-01", "Gallo", 3), testActor)
	require.NoError(t, err)

	_, err = uc.Exit(ctx, testEstID, created.ItemID, 5, testActor)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, int64(3), items.items[created.ItemID].Quantity, "saída rejeitada não pode alterar o lote")
	assert.Len(t, hist.entries, 1, "saída rejeitada não pode gerar histórico")
}

func TestExit_PayloadComAntesEDepois(t *testing.T) {
	uc, _, hist := newStockFixture()
	ctx := context.Background()

	created, err := uc.SaveSmart(ctx, testEstID, draft("Vinagre", "790000010", "2027-02-01", "Castelo", 8), testActor)
	require.NoError(t, err)

	_, err = uc.Exit(ctx, testEstID, created.ItemID, 3, testActor)
	require.NoError(t, err)

	exit := hist.entries[len(hist.entries)-1]
	var payload struct {
		ProdutoID  string `json:"produtoId"`
		Nome       string `json:"nome"`
		Quantidade int64  `json:"quantidade"`
		Antes      int64  `json:"antes"`
		Depois     int64  `json:"depois"`
	}
	require.NoError(t, json.Unmarshal(exit.Payload, &payload))
	assert.Equal(t, created.ItemID, payload.ProdutoID)
	assert.Equal(t, "Vinagre", payload.Nome)
	assert.Equal(t, int64(3), payload.Quantidade)
	assert.Equal(t, int64(8), payload.Antes)
	assert.Equal(t, int64(5), payload.Depois)
}

func TestExit_ZerarEstoqueEhPermitido(t *testing.T) {
	uc, items, _ := newStockFixture()
	ctx := context.Background()

	created, err := uc.SaveSmart(ctx, testEstID, draft("Fermento", "790100011", "2026-08-01", "Royal", 2), testActor)
	require.NoError(t, err)

	result, err := uc.Exit(ctx, testEstID, created.ItemID, 2, testActor)
	require.NoError(t, err)
	assert.Equal(t, int64(0), result.After)
	assert.Equal(t, int64(0), items.items[created.ItemID].Quantity, "o lote zerado permanece, não é removido")
}
