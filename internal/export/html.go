package export

import (
	"fmt"
	"html/template"
	"io"
	"strings"
)

var reportHTMLTmpl = template.Must(template.New("period-report").Parse(`<!doctype html>
<html>
<head>
  <meta charset="utf-8" />
  <title>{{.Title}} {{.Period}}</title>
  <style>
    body { font-family: sans-serif; margin: 24px; }
    table { width: 100%; border-collapse: collapse; margin-top: 8px; }
    th, td { border: 1px solid #ddd; padding: 6px; font-size: 13px; }
    h2, h3 { margin-bottom: 4px; }
  </style>
</head>
<body>
  <h2>{{.Title}} {{.Period}}</h2>
  <p>Filtro Estilista: {{.StylistName}}</p>
  <p>Generado: {{.Generated}}</p>
  <p>Ingresos: {{.TotalSales}} | Egresos: {{.TotalExpenses}} | Neto: {{.NetTotal}}</p>
  <p>Efectivo: {{.CashTotal}} | QR: {{.QRTotal}} | Transacciones: {{len .Transactions}}</p>
  <h3>Ingresos / Transacciones</h3>
  <table>
    <thead><tr><th>Hora</th><th>Servicios</th><th>Pago</th><th>Total</th></tr></thead>
    <tbody>
      {{range .Transactions}}<tr><td>{{.Time}}</td><td>{{.Items}}</td><td>{{.Payment}}</td><td>{{.Total}}</td></tr>{{end}}
    </tbody>
  </table>
  {{if .Expenses}}<h3>Egresos</h3>
  <table>
    <thead><tr><th>Fecha</th><th>Descripción</th><th>Monto</th></tr></thead>
    <tbody>
      {{range .Expenses}}<tr><td>{{.Time}}</td><td>{{.Description}}</td><td>{{.Amount}}</td></tr>{{end}}
    </tbody>
  </table>{{end}}
</body>
</html>
`))

type htmlTxRow struct {
	Time, Items, Payment, Total string
}

type htmlExpenseRow struct {
	Time, Description, Amount string
}

// WriteHTML renders a printable page. html/template escapes every field.
func WriteHTML(w io.Writer, d Document) error {
	s := d.Detail.Summary
	view := struct {
		Title, Period, StylistName, Generated                   string
		TotalSales, TotalExpenses, NetTotal, CashTotal, QRTotal string
		Transactions                                            []htmlTxRow
		Expenses                                                []htmlExpenseRow
	}{
		Title:         d.Title,
		Period:        d.Period,
		StylistName:   d.StylistName,
		Generated:     d.GeneratedAt.In(d.Location).Format("02/01/2006"),
		TotalSales:    money(s.TotalSales),
		TotalExpenses: money(s.TotalExpenses),
		NetTotal:      money(s.NetTotal),
		CashTotal:     money(s.CashTotal),
		QRTotal:       money(s.QRTotal),
	}
	for _, tx := range d.Detail.Transactions {
		view.Transactions = append(view.Transactions, htmlTxRow{
			Time:    d.txTime(tx.Timestamp),
			Items:   strings.Join(d.itemLabels(tx), ", "),
			Payment: string(tx.PaymentMethod),
			Total:   money(tx.Total),
		})
	}
	if d.AllStylists() {
		for _, exp := range d.Detail.Expenses {
			view.Expenses = append(view.Expenses, htmlExpenseRow{
				Time:        d.expenseTime(exp.Timestamp),
				Description: exp.Description,
				Amount:      money(exp.Amount),
			})
		}
	}

	if err := reportHTMLTmpl.Execute(w, view); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}
