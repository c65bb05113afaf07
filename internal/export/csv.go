package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// WriteCSV writes section,key,value rows: the summary first, then one group
// of rows per transaction and per expense.
func WriteCSV(w io.Writer, d Document) error {
	s := d.Detail.Summary
	rows := [][]string{
		{"section", "key", "value"},
		{"summary", "period", d.Period},
		{"summary", "granularity", string(d.Granularity)},
		{"summary", "stylist", d.StylistName},
		{"summary", "transactions", fmt.Sprintf("%d", len(d.Detail.Transactions))},
		{"summary", "total_sales", s.TotalSales.StringFixed(2)},
		{"summary", "cash_total", s.CashTotal.StringFixed(2)},
		{"summary", "qr_total", s.QRTotal.StringFixed(2)},
		{"summary", "total_expenses", s.TotalExpenses.StringFixed(2)},
		{"summary", "net_total", s.NetTotal.StringFixed(2)},
	}
	for _, tx := range d.Detail.Transactions {
		rows = append(rows,
			[]string{"transaction", tx.ID + "_payment", string(tx.PaymentMethod)},
			[]string{"transaction", tx.ID + "_total", tx.Total.StringFixed(2)},
			[]string{"transaction", tx.ID + "_items", strings.Join(d.itemLabels(tx), "; ")},
		)
	}
	for _, exp := range d.Detail.Expenses {
		rows = append(rows,
			[]string{"expense", exp.ID + "_description", exp.Description},
			[]string{"expense", exp.ID + "_amount", exp.Amount.StringFixed(2)},
		)
	}

	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}
