// Package pdf genera el recibo imprimible de una venta con Maroto v2.
//
// Layout de la página:
//
//	┌──────────────────────────────────────────────┐
//	│  HEADER: Supermercado + N° de venta + fecha  │
//	│  ──────────────────────────────────────────  │
//	│  TABLA: Cant | Producto | P.Unit | Subtotal  │
//	│  ──────────────────────────────────────────  │
//	│  TOTAL + cajero                              │
//	└──────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

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

	"github.com/tu-usuario/supermarket-pos/internal/application/sales"
	"github.com/tu-usuario/supermarket-pos/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoReceiptGenerator implementa sales.ReceiptPDFGenerator usando Maroto v2.
type MarotoReceiptGenerator struct {
	storeName string
}

var _ sales.ReceiptPDFGenerator = (*MarotoReceiptGenerator)(nil)

// NewMarotoReceiptGenerator construye el generador.
func NewMarotoReceiptGenerator(storeName string) *MarotoReceiptGenerator {
	return &MarotoReceiptGenerator{storeName: storeName}
}

// GenerateReceiptPDF genera el recibo y devuelve sus bytes.
func (g *MarotoReceiptGenerator) GenerateReceiptPDF(
	_ context.Context,
	tx *entity.SalesTransaction,
	cashier *entity.Employee,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Recibo de venta", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.storeName, tx))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, r := range tableDetailRows(tx.Items) {
		m.AddRows(r)
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(totalsRow(tx, cashier))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar recibo: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: nombre de la tienda (izq) y número de venta + fecha (der).
func headerRow(storeName string, tx *entity.SalesTransaction) core.Row {
	return row.New(14).Add(
		col.New(7).Add(
			text.New(storeName, props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("Venta N° "+strconv.FormatInt(tx.ID, 10), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1,
			}),
			text.New(tx.TransactionDate.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 7, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	return row.New(6).Add(
		col.New(2).Add(text.New("Cant", props.Text{Style: fontstyle.Bold, Size: 8})),
		col.New(5).Add(text.New("Producto", props.Text{Style: fontstyle.Bold, Size: 8})),
		col.New(2).Add(text.New("P.Unit", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right})),
		col.New(3).Add(text.New("Subtotal", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right})),
	)
}

func tableDetailRows(items []entity.SalesTransactionItem) []core.Row {
	rows := make([]core.Row, 0, len(items))
	for _, it := range items {
		name := it.ProductName
		if name == "" {
			name = "Ítem " + strconv.FormatInt(it.ItemID, 10)
		}
		rows = append(rows, row.New(5).Add(
			col.New(2).Add(text.New(strconv.FormatInt(it.Quantity, 10), props.Text{Size: 8})),
			col.New(5).Add(text.New(name, props.Text{Size: 8})),
			col.New(2).Add(text.New(it.UnitPrice.StringFixed(2), props.Text{Size: 8, Align: align.Right})),
			col.New(3).Add(text.New(it.Subtotal.StringFixed(2), props.Text{Size: 8, Align: align.Right})),
		))
	}
	return rows
}

func totalsRow(tx *entity.SalesTransaction, cashier *entity.Employee) core.Row {
	cashierName := tx.EmployeeID
	if cashier != nil {
		cashierName = cashier.Name
	}
	return row.New(12).Add(
		col.New(7).Add(
			text.New("Cajero: "+cashierName, props.Text{Size: 8, Top: 2, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("TOTAL: "+tx.TotalAmount.StringFixed(2), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 1,
			}),
		),
	)
}
