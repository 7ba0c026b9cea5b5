// Package pdf genera el expediente de revisión de una empresa pagadora.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Razón Social + NIT  │  Estado + Fecha de generación │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EMPRESA: Dirección / Ciudad / CIIU                          │
//	│  REPRESENTANTE: Nombre + documento + contacto                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  COMPLETITUD: requeridos presentes / faltantes               │
//	│  TABLA DOCUMENTOS: Tipo | Archivo | Tamaño | Confirmado      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  HISTORIAL: Fecha | De | A | Motivo                          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"
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
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/onboarding-pagadores/internal/application/ports"
	"github.com/jhoicas/onboarding-pagadores/internal/domain/entity"
)

var _ ports.ExpedientePDFGenerator = (*ExpedienteGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 170, Green: 30, Blue: 30}
)

var etiquetasTipo = map[entity.TipoDocumento]string{
	entity.TipoCamaraComercio:           "Cámara de Comercio",
	entity.TipoRegistroAccionistas:      "Registro de accionistas",
	entity.TipoRUT:                      "RUT",
	entity.TipoCedulaRepresentanteLegal: "Cédula representante legal",
	entity.TipoDeclaracionRenta:         "Declaración de renta",
	entity.TipoEstadosFinancieros:       "Estados financieros",
	entity.TipoOtro:                     "Otro",
}

// ExpedienteGenerator implementa ports.ExpedientePDFGenerator con Maroto v2.
type ExpedienteGenerator struct {
	printer *message.Printer
	loc     *time.Location
}

// NewExpedienteGenerator loc nil = UTC.
func NewExpedienteGenerator(loc *time.Location) *ExpedienteGenerator {
	if loc == nil {
		loc = time.UTC
	}
	return &ExpedienteGenerator{
		printer: message.NewPrinter(language.LatinAmericanSpanish),
		loc:     loc,
	}
}

// Generate genera el PDF y devuelve sus bytes.
func (g *ExpedienteGenerator) Generate(exp ports.Expediente) ([]byte, error) {
	if exp.Empresa == nil {
		return nil, fmt.Errorf("pdf: expediente sin empresa")
	}
	e := exp.Empresa

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Expediente "+e.RazonSocial, true).
		WithAuthor(nonEmpty(exp.GeneradoPor, "sistema"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(e, exp.GeneradoAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(empresaRow(e))
	m.AddRows(representanteRow(e.Representante))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(completitudRows(exp)...)
	m.AddRows(sectionTitle("DOCUMENTOS VIGENTES"))
	m.AddRows(tableHeaderRow("Tipo", "Archivo", "Tamaño", "Confirmado"))
	m.AddRows(g.documentoRows(exp.Documentos)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(sectionTitle("HISTORIAL DE ESTADOS"))
	m.AddRows(tableHeaderRow("Fecha", "Anterior", "Nuevo", "Motivo"))
	m.AddRows(g.historialRows(exp.Historial)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *ExpedienteGenerator) headerRow(e *entity.Empresa, generado time.Time) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(e.RazonSocial, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("NIT: "+e.NIT, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("EXPEDIENTE DE VINCULACIÓN", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(strings.ToUpper(string(e.Estado)), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 7,
			}),
			text.New("Generado: "+g.fecha(generado), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func empresaRow(e *entity.Empresa) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("DATOS DE LA EMPRESA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Dirección: %s   |   Ciudad: %s, %s",
				nonEmpty(e.Direccion, "-"),
				nonEmpty(e.Ciudad, "-"),
				nonEmpty(e.Departamento, "-"),
			), props.Text{Size: 8, Top: 6, Color: colorGray}),
			text.New(fmt.Sprintf("Actividad: %s   |   CIIU: %s",
				nonEmpty(e.ActividadEconomica, "-"),
				nonEmpty(e.CodigoCIIU, "-"),
			), props.Text{Size: 8, Top: 10, Color: colorGray}),
		),
	)
}

func representanteRow(r entity.RepresentanteLegal) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("REPRESENTANTE LEGAL", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(r.Nombre, props.Text{Style: fontstyle.Bold, Size: 10, Top: 5}),
			text.New(fmt.Sprintf("%s %s   |   Email: %s   |   Tel: %s",
				r.TipoDocumento, r.Cedula,
				nonEmpty(r.Email, "-"),
				nonEmpty(r.Telefono, "-"),
			), props.Text{Size: 8, Top: 10, Color: colorGray}),
		),
	)
}

func completitudRows(exp ports.Expediente) []core.Row {
	c := exp.Completitud
	estado, color := "COMPLETO", colorPrimary
	if !c.Completa {
		estado, color = "INCOMPLETO", colorAlert
	}
	rows := []core.Row{
		row.New(8).Add(col.New(12).Add(
			text.New("DOCUMENTOS REQUERIDOS: "+estado, props.Text{
				Style: fontstyle.Bold, Size: 9, Color: color, Top: 2,
			}),
		)),
	}
	if len(c.Faltantes) > 0 {
		faltan := make([]string, 0, len(c.Faltantes))
		for _, t := range c.Faltantes {
			faltan = append(faltan, etiqueta(t))
		}
		rows = append(rows, row.New(6).Add(col.New(12).Add(
			text.New("Faltantes: "+strings.Join(faltan, ", "), props.Text{
				Size: 8, Color: colorAlert, Top: 1,
			}),
		)))
	}
	return rows
}

func (g *ExpedienteGenerator) documentoRows(docs []*entity.Documento) []core.Row {
	if len(docs) == 0 {
		return []core.Row{emptyRow("Sin documentos cargados")}
	}
	rows := make([]core.Row, 0, len(docs))
	for _, d := range docs {
		confirmado := "-"
		if d.ConfirmadoAt != nil {
			confirmado = g.fecha(*d.ConfirmadoAt)
		}
		rows = append(rows, detailRow(
			etiqueta(d.Tipo),
			d.NombreOriginal,
			g.printer.Sprintf("%d KB", (d.TamanoBytes+1023)/1024),
			confirmado,
		))
	}
	return rows
}

func (g *ExpedienteGenerator) historialRows(hist []*entity.HistorialEstado) []core.Row {
	if len(hist) == 0 {
		return []core.Row{emptyRow("Sin cambios de estado")}
	}
	rows := make([]core.Row, 0, len(hist))
	for _, h := range hist {
		anterior := "-"
		if h.EstadoAnterior != nil {
			anterior = string(*h.EstadoAnterior)
		}
		motivo := "-"
		if h.Motivo != nil {
			motivo = *h.Motivo
		}
		rows = append(rows, detailRow(g.fecha(h.CreatedAt), anterior, string(h.EstadoNuevo), motivo))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func sectionTitle(s string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(s, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
	))
}

// Columnas 3 | 4 | 2 | 3.
var anchos = [4]int{3, 4, 2, 3}

func tableHeaderRow(labels ...string) core.Row {
	cols := make([]core.Col, 0, len(labels))
	for i, l := range labels {
		cols = append(cols, col.New(anchos[i]).Add(text.New(l, props.Text{
			Style: fontstyle.Bold, Size: 8, Top: 1, Left: 1,
		})))
	}
	return row.New(6).Add(cols...)
}

func detailRow(values ...string) core.Row {
	cols := make([]core.Col, 0, len(values))
	for i, v := range values {
		cols = append(cols, col.New(anchos[i]).Add(text.New(v, props.Text{
			Size: 8, Top: 1, Left: 1, Color: colorGray,
		})))
	}
	return row.New(6).Add(cols...)
}

func emptyRow(s string) core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New(s, props.Text{Size: 8, Top: 1, Align: align.Center, Color: colorGray}),
	))
}

func etiqueta(t entity.TipoDocumento) string {
	if s, ok := etiquetasTipo[t]; ok {
		return s
	}
	return string(t)
}

func (g *ExpedienteGenerator) fecha(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.In(g.loc).Format("02/01/2006 15:04")
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
