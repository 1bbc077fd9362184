// Package pdf implementa el informe de diagnóstico e incorporación de una empresa.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre empresa + NIF  │  Estado + Fecha             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DATOS: Sector / Tamaño / País / Contacto                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DIAGNÓSTICO: checklist + riesgo legal + resultado           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PROYECTO (solo aptas): espacio, rol, caso de uso, hitos     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR de referencia + leyenda                          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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

	"github.com/jhoicas/espacio-datos-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorOK      = &props.Color{Red: 20, Green: 120, Blue: 60}
	colorKO      = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa ports.ReportGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	now func() time.Time
}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{now: time.Now} }

// GenerateCompanyReport genera el PDF y devuelve sus bytes. project puede ser nil.
func (g *MarotoPDFGenerator) GenerateCompanyReport(
	_ context.Context,
	company *entity.Company,
	diagnostic *entity.Diagnostic,
	project *entity.Project,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Informe de diagnóstico - "+company.Name, true).
		WithAuthor("Espacio de Datos", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(company, g.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(companyRows(company)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(diagnosticRows(diagnostic)...)

	if project != nil {
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
		m.AddRows(projectRows(project)...)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(company))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(company *entity.Company, now time.Time) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("NIF: "+company.NIF, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("INFORME DE DIAGNÓSTICO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(companyStatusLabel(company.Status), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
				Color: statusColor(company.Status),
			}),
			text.New("Fecha: "+now.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func companyRows(company *entity.Company) []core.Row {
	return []core.Row{
		sectionTitle("DATOS DE LA EMPRESA"),
		row.New(6).Add(col.New(12).Add(text.New(fmt.Sprintf(
			"Sector: %s   |   Tamaño: %s   |   País: %s",
			nonEmpty(company.Sector, "-"),
			nonEmpty(company.SizeRange, "-"),
			nonEmpty(company.Country, "-"),
		), props.Text{Size: 8, Color: colorGray, Top: 1}))),
		row.New(6).Add(col.New(12).Add(text.New(fmt.Sprintf(
			"Contacto: %s (%s)   |   Tel: %s   |   Web: %s",
			nonEmpty(company.ContactName, "-"),
			nonEmpty(company.ContactRole, "-"),
			nonEmpty(company.ContactPhone, "-"),
			nonEmpty(company.Website, "-"),
		), props.Text{Size: 8, Color: colorGray, Top: 1}))),
	}
}

func diagnosticRows(d *entity.Diagnostic) []core.Row {
	rows := []core.Row{
		sectionTitle("DIAGNÓSTICO DE ELEGIBILIDAD"),
		checkRow("Cumple criterios de elegibilidad", d.EligibilityOK),
		checkRow("Espacio de datos identificado", d.SpaceIdentified),
		checkRow("Potencial de datos", d.DataPotential),
		labelRow("Riesgo legal", d.LegalRisk),
		labelRow("Resultado", diagnosticResultLabel(d.Result)),
	}
	if d.DecidedAt != nil {
		rows = append(rows, labelRow("Fecha de decisión", d.DecidedAt.Format("02/01/2006 15:04")))
	}
	if d.Notes != "" {
		rows = append(rows, notesRow(d.Notes))
	}
	return rows
}

func projectRows(p *entity.Project) []core.Row {
	return []core.Row{
		sectionTitle(fmt.Sprintf("PROYECTO: %s (fase %d)", p.Title, p.Phase)),
		labelRow("Estado de incorporación", p.IncorporationStatus),
		labelRow("Espacio de datos", nonEmpty(p.SpaceName, "-")),
		labelRow("Rol objetivo", nonEmpty(p.TargetRole, "-")),
		labelRow("Caso de uso", nonEmpty(p.UseCase, "-")),
		checkRow("Espacio seleccionado", p.Checklist.EspacioSeleccionado),
		checkRow("Rol definido", p.Checklist.RolDefinido),
		checkRow("Caso de uso definido", p.Checklist.CasoUsoDefinido),
		checkRow("Validación RGPD", p.Checklist.ValidacionRGPD),
	}
}

// footerRow: QR con la referencia de la empresa + leyenda.
func footerRow(company *entity.Company) core.Row {
	return row.New(30).Add(
		col.New(3).Add(code.NewQr("espacio-datos:empresa:"+company.ID, props.Rect{
			Percent: 95,
			Center:  true,
		})),
		col.New(9).Add(
			text.New("Referencia: "+company.ID, props.Text{
				Size: 7, Top: 4, Left: 3, Color: colorGray,
			}),
			text.New("Documento generado automáticamente a partir del diagnóstico registrado "+
				"por el asesor. No sustituye la validación legal del espacio de datos.", props.Text{
				Size: 7, Top: 12, Left: 3, Color: colorGray,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func sectionTitle(title string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2,
		}),
	))
}

func checkRow(label string, ok bool) core.Row {
	mark, color := "No", colorKO
	if ok {
		mark, color = "Sí", colorOK
	}
	return row.New(5).Add(
		col.New(8).Add(text.New(label, props.Text{Size: 8, Top: 0.5, Left: 2})),
		col.New(4).Add(text.New(mark, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 0.5, Right: 1, Color: color,
		})),
	)
}

func labelRow(label, value string) core.Row {
	return row.New(5).Add(
		col.New(4).Add(text.New(label+":", props.Text{
			Style: fontstyle.Bold, Size: 8, Top: 0.5, Left: 2,
		})),
		col.New(8).Add(text.New(value, props.Text{Size: 8, Top: 0.5})),
	)
}

func notesRow(notes string) core.Row {
	return row.New(14).Add(col.New(12).Add(
		text.New("Notas: "+notes, props.Text{Size: 8, Top: 1, Left: 2, Color: colorGray}),
	))
}

func companyStatusLabel(status string) string {
	switch status {
	case entity.CompanyStatusApta:
		return "APTA"
	case entity.CompanyStatusDescartada:
		return "DESCARTADA"
	default:
		return "EN EVALUACIÓN"
	}
}

func diagnosticResultLabel(result string) string {
	switch result {
	case entity.DiagnosticApta:
		return "Apta"
	case entity.DiagnosticNoApta:
		return "No apta"
	default:
		return "Pendiente"
	}
}

func statusColor(status string) *props.Color {
	switch status {
	case entity.CompanyStatusApta:
		return colorOK
	case entity.CompanyStatusDescartada:
		return colorKO
	default:
		return colorGray
	}
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
