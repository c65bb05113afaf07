package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfLeft       = 14.0
	pdfWidth      = 182.0
	pdfLineHeight = 5.0
	pdfPageLimit  = 277.0
)

type rgb struct{ r, g, b int }

var (
	colorTitle   = rgb{30, 41, 59}
	colorMuted   = rgb{100, 116, 139}
	colorBody    = rgb{51, 65, 85}
	colorSales   = rgb{13, 148, 136}
	colorExpense = rgb{217, 119, 6}
)

// WritePDF renders an A4 report: header, summary box, transaction table and,
// on whole-salon reports, the expense table.
func WritePDF(w io.Writer, d Document) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(d.Title, true)
	pdf.SetAutoPageBreak(false, 20)
	pdf.AddPage()

	setText(pdf, colorTitle)
	pdf.SetFont("Arial", "B", 20)
	pdf.Text(pdfLeft, 22, tr(d.Title+" "+d.Period))

	setText(pdf, colorMuted)
	pdf.SetFont("Arial", "", 11)
	pdf.Text(pdfLeft, 30, tr("Filtro Estilista: "+d.StylistName))
	pdf.Text(150, 30, "Generado: "+d.GeneratedAt.In(d.Location).Format("02/01/2006"))

	s := d.Detail.Summary
	pdf.SetFillColor(248, 250, 252)
	pdf.SetDrawColor(226, 232, 240)
	pdf.Rect(pdfLeft, 38, pdfWidth, 32, "FD")

	setText(pdf, colorTitle)
	pdf.SetFont("Arial", "B", 11)
	pdf.Text(20, 48, "Ingresos: "+money(s.TotalSales))
	pdf.Text(80, 48, "Egresos: "+money(s.TotalExpenses))
	pdf.Text(140, 48, "Neto: "+money(s.NetTotal))

	setText(pdf, colorBody)
	pdf.SetFont("Arial", "", 10)
	pdf.Text(20, 58, "Efectivo: "+money(s.CashTotal))
	pdf.Text(80, 58, "QR: "+money(s.QRTotal))
	pdf.Text(140, 58, fmt.Sprintf("Transacciones: %d", len(d.Detail.Transactions)))

	servicesHeader := "Servicios"
	if d.AllStylists() {
		servicesHeader = "Servicios / Estilistas"
	}
	txRows := make([][]string, 0, len(d.Detail.Transactions))
	for _, tx := range d.Detail.Transactions {
		txRows = append(txRows, []string{
			d.txTime(tx.Timestamp),
			tr(strings.Join(d.itemLabels(tx), "\n")),
			string(tx.PaymentMethod),
			money(tx.Total),
		})
	}
	pdf.SetY(78)
	table(pdf, "Ingresos / Transacciones", colorSales,
		[]float64{30, 92, 30, 30},
		[]string{"Hora", tr(servicesHeader), "Pago", "Total"},
		txRows)

	if d.AllStylists() && len(d.Detail.Expenses) > 0 {
		expRows := make([][]string, 0, len(d.Detail.Expenses))
		for _, exp := range d.Detail.Expenses {
			expRows = append(expRows, []string{d.expenseTime(exp.Timestamp), tr(exp.Description), money(exp.Amount)})
		}
		pdf.SetY(pdf.GetY() + 10)
		table(pdf, "Egresos", colorExpense,
			[]float64{40, 102, 40},
			[]string{"Fecha", tr("Descripción"), "Monto"},
			expRows)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func table(pdf *gofpdf.Fpdf, title string, header rgb, widths []float64, columns []string, rows [][]string) {
	if pdf.GetY()+20 > pdfPageLimit {
		pdf.AddPage()
	}
	setText(pdf, colorTitle)
	pdf.SetFont("Arial", "B", 14)
	pdf.SetX(pdfLeft)
	pdf.CellFormat(pdfWidth, 8, title, "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(header.r, header.g, header.b)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetDrawColor(203, 213, 225)
	pdf.SetX(pdfLeft)
	for i, col := range columns {
		pdf.CellFormat(widths[i], 7, col, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	setText(pdf, colorBody)
	pdf.SetFont("Arial", "", 9)
	for _, row := range rows {
		tableRow(pdf, widths, row)
	}
}

// tableRow grows the row to fit the tallest wrapped cell. The second column is
// left aligned, the rest centered.
func tableRow(pdf *gofpdf.Fpdf, widths []float64, cells []string) {
	lines := 1
	for i, cell := range cells {
		if n := len(pdf.SplitLines([]byte(cell), widths[i]-2)); n > lines {
			lines = n
		}
	}
	height := float64(lines) * pdfLineHeight
	if pdf.GetY()+height > pdfPageLimit {
		pdf.AddPage()
	}

	x, y := pdfLeft, pdf.GetY()
	for i, cell := range cells {
		align := "C"
		if i == 1 {
			align = "L"
		}
		pdf.Rect(x, y, widths[i], height, "D")
		pdf.SetXY(x, y)
		pdf.MultiCell(widths[i], pdfLineHeight, cell, "", align, false)
		x += widths[i]
	}
	pdf.SetXY(pdfLeft, y+height)
}

func setText(pdf *gofpdf.Fpdf, c rgb) {
	pdf.SetTextColor(c.r, c.g, c.b)
}
