package stock

import (
	"context"

	"github.com/estoquezen/estoque-api/internal/domain"
	"github.com/estoquezen/estoque-api/internal/domain/entity"
	"github.com/estoquezen/estoque-api/internal/domain/repository"
)

// ReportPDFGenerator porto para a renderização do relatório de estoque em PDF.
type ReportPDFGenerator interface {
	GenerateStockReport(ctx context.Context, est *entity.Establishment, items []*entity.StockItem) ([]byte, error)
}

// ReportUseCase gera o relatório de estoque de um estabelecimento.
type ReportUseCase struct {
	itemRepo repository.StockItemRepository
	estRepo  repository.EstablishmentRepository
	pdfGen   ReportPDFGenerator
}

// NewReportUseCase constrói o caso de uso do relatório.
func NewReportUseCase(
	itemRepo repository.StockItemRepository,
	estRepo repository.EstablishmentRepository,
	pdfGen ReportPDFGenerator,
) *ReportUseCase {
	return &ReportUseCase{itemRepo: itemRepo, estRepo: estRepo, pdfGen: pdfGen}
}

// Generate monta o PDF com todos os lotes do estabelecimento.
func (uc *ReportUseCase) Generate(ctx context.Context, establishmentID string) ([]byte, error) {
	if establishmentID == "" {
		return nil, domain.ErrInvalidInput
	}
	est, err := uc.estRepo.GetByID(establishmentID)
	if err != nil {
		return nil, err
	}
	if est == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.itemRepo.ListByEstablishment(establishmentID)
	if err != nil {
		return nil, err
	}
	return uc.pdfGen.GenerateStockReport(ctx, est, items)
}
