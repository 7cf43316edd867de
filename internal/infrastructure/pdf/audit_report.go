// Package pdf genera el reporte del histórico de operaciones en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título                  │  fecha de generación     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Descripción                                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: total de entradas                                   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
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

	"github.com/jhoicas/estoque-api/internal/application/usecase"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

var _ usecase.AuditReportGenerator = (*AuditReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// AuditReportGenerator implementa usecase.AuditReportGenerator usando Maroto v2.
type AuditReportGenerator struct{}

// NewAuditReportGenerator construye el generador.
func NewAuditReportGenerator() *AuditReportGenerator { return &AuditReportGenerator{} }

// GenerateAuditReport genera el PDF y devuelve sus bytes.
func (g *AuditReportGenerator) GenerateAuditReport(
	ctx context.Context,
	title string,
	generatedAt time.Time,
	entries []*entity.AuditEntry,
) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(title, generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, r := range entryRows(entries) {
		m.AddRows(r)
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(len(entries)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(title string, generatedAt time.Time) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(4).Add(
			text.New("Gerado em "+generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 4, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	return row.New(8).Add(
		col.New(1).Add(text.New("#", props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 2,
		})),
		col.New(11).Add(text.New("Descrição", props.Text{
			Style: fontstyle.Bold, Size: 8, Top: 2, Left: 1,
		})),
	)
}

// entryRows una fila por entrada; sin entradas, una fila informativa.
func entryRows(entries []*entity.AuditEntry) []core.Row {
	if len(entries) == 0 {
		return []core.Row{row.New(8).Add(col.New(12).Add(
			text.New("Nenhuma operação registrada.", props.Text{
				Size: 8, Align: align.Center, Top: 2, Color: colorGray,
			}),
		))}
	}
	rows := make([]core.Row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, row.New(7).Add(
			col.New(1).Add(text.New(strconv.FormatInt(e.ID, 10), props.Text{
				Size: 8, Align: align.Center, Top: 1,
			})),
			col.New(11).Add(text.New(e.Description, props.Text{
				Size: 8, Top: 1, Left: 1,
			})),
		))
	}
	return rows
}

func footerRow(total int) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Total de registros: %d", total), props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 2, Color: colorPrimary,
		}),
	))
}
