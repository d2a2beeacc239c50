// Package pdf implementa a renderização do relatório de estoque em PDF.
//
// Layout da página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nome do estabelecimento + CNPJ  │  Data de emissão │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABELA: Produto | Categoria | Marca | Validade | Qtd       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RODAPÉ: total de lotes + soma das quantidades              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appstock "github.com/estoquezen/estoque-api/internal/application/stock"
	"github.com/estoquezen/estoque-api/internal/domain/entity"
)

// ── Paleta de cores ───────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 22, Green: 101, Blue: 52}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 185, Green: 28, Blue: 28}
)

var _ appstock.ReportPDFGenerator = (*StockReportGenerator)(nil)

// StockReportGenerator implementa stock.ReportPDFGenerator usando Maroto v2.
type StockReportGenerator struct{}

// NewStockReportGenerator constrói o gerador.
func NewStockReportGenerator() *StockReportGenerator { return &StockReportGenerator{} }

// GenerateStockReport gera o PDF e devolve seus bytes.
func (g *StockReportGenerator) GenerateStockReport(
	_ context.Context,
	est *entity.Establishment,
	items []*entity.StockItem,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Relatório de Estoque", true).
		WithAuthor(est.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(est))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(items))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Seções ────────────────────────────────────────────────────────────────────

// headerRow: nome + CNPJ (esq) e data de emissão (dir).
func headerRow(est *entity.Establishment) core.Row {
	emitted := time.Now().Format("02/01/2006 15:04")
	return row.New(18).Add(
		col.New(7).Add(
			text.New(est.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("CNPJ: "+nonEmpty(est.CNPJ, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("RELATÓRIO DE ESTOQUE", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Emitido em: "+emitted, props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabeçalho da tabela de lotes.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Produto", 4, align.Left),
		h("Categoria", 2, align.Left),
		h("Marca", 2, align.Left),
		h("Validade", 2, align.Center),
		h("Qtd.", 2, align.Right),
	)
}

// tableItemRows: uma linha por lote. Lotes zerados saem em vermelho.
func tableItemRows(items []*entity.StockItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		qtyColor := colorGray
		if it.Quantity == 0 {
			qtyColor = colorAlert
		}
		result = append(result, row.New(7).Add(
			col.New(4).Add(text.New(
				it.Name,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				nonEmpty(it.Category, "—"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1, Color: colorGray},
			)),
			col.New(2).Add(text.New(
				nonEmpty(it.Brand, "—"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1, Color: colorGray},
			)),
			col.New(2).Add(text.New(
				formatExpiry(it.ExpiryDate),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				fmt.Sprintf("%d", it.Quantity),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1, Color: qtyColor},
			)),
		))
	}
	return result
}

// totalsRow: total de lotes e soma das quantidades.
func totalsRow(items []*entity.StockItem) core.Row {
	var total int64
	for _, it := range items {
		total += it.Quantity
	}
	return row.New(10).Add(
		col.New(6).Add(text.New(
			fmt.Sprintf("Lotes: %d", len(items)),
			props.Text{Style: fontstyle.Bold, Size: 9, Top: 2, Left: 1},
		)),
		col.New(6).Add(text.New(
			fmt.Sprintf("Quantidade total: %d", total),
			props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2, Right: 1, Color: colorPrimary},
		)),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatExpiry converte AAAA-MM-DD para DD/MM/AAAA. Valor vazio ou fora do
// formato sai como está.
func formatExpiry(s string) string {
	if s == "" {
		return "—"
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return s
	}
	return t.Format("02/01/2006")
}
