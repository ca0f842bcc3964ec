// Package pdf implementa la generación del documento de empaque (packing
// slip) de una orden de cliente.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Almacén  │  N° Orden + Fecha + Estado              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: id del cliente                                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Producto | SKU                                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL DE UNIDADES                                           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

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

	"github.com/jhoicas/warehouse-api/internal/application/orders"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
)

// Verificar en tiempo de compilación que el generador implementa el puerto.
var _ orders.PackingSlipGenerator = (*MarotoPackingSlipGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoPackingSlipGenerator implementa orders.PackingSlipGenerator usando
// Maroto v2.
type MarotoPackingSlipGenerator struct {
	warehouseName string
}

// NewMarotoPackingSlipGenerator construye el generador.
func NewMarotoPackingSlipGenerator(warehouseName string) *MarotoPackingSlipGenerator {
	if warehouseName == "" {
		warehouseName = "Warehouse"
	}
	return &MarotoPackingSlipGenerator{warehouseName: warehouseName}
}

// GeneratePackingSlip genera el PDF y devuelve sus bytes.
func (g *MarotoPackingSlipGenerator) GeneratePackingSlip(
	_ context.Context,
	order *entity.CustomerOrder,
	products map[string]*entity.Product,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Packing Slip", true).
		WithAuthor(g.warehouseName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	var totalUnits int64
	for _, l := range order.Lines {
		m.AddRows(lineRow(l, products[l.ProductID]))
		totalUnits += l.Quantity
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(totalUnits))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: nombre del almacén (izq) y N° de orden + fecha + estado (der).
func (g *MarotoPackingSlipGenerator) headerRow(order *entity.CustomerOrder) core.Row {
	fecha := order.DateCreated.Format("02/01/2006")
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.warehouseName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Documento de empaque", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("PACKING SLIP", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(order.ID, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 7,
			}),
			text.New(fmt.Sprintf("Fecha: %s   |   Estado: %s", fecha, order.Status), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// customerRow: identificación del cliente.
func customerRow(order *entity.CustomerOrder) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(order.CustomerID, props.Text{Size: 9, Top: 7, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 2, align.Center),
		h("Producto", 7, align.Left),
		h("SKU", 3, align.Right),
	)
}

// lineRow: una fila por línea de la orden. product puede ser nil si el
// producto se eliminó después de crear la orden.
func lineRow(l entity.OrderLine, product *entity.Product) core.Row {
	name := l.ProductID
	sku := "—"
	if product != nil {
		name = product.Name
		if product.SKU != "" {
			sku = product.SKU
		}
	}
	return row.New(7).Add(
		col.New(2).Add(text.New(
			fmt.Sprintf("%d", l.Quantity),
			props.Text{Size: 8, Align: align.Center, Top: 1},
		)),
		col.New(7).Add(text.New(
			name,
			props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
		)),
		col.New(3).Add(text.New(
			sku,
			props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
		)),
	)
}

// totalsRow: total de unidades a empacar.
func totalsRow(totalUnits int64) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL UNIDADES:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2, Top: 2,
		})),
		col.New(3).Add(text.New(fmt.Sprintf("%d", totalUnits), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1, Top: 2,
		})),
	)
}
