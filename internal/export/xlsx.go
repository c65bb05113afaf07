package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	sheetSummary      = "Resumen"
	sheetTransactions = "Transacciones"
	sheetExpenses     = "Egresos"
)

// WriteXLSX writes a workbook with a summary sheet, one row per transaction
// and one row per expense. Money cells are numeric.
func WriteXLSX(w io.Writer, d Document) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	for _, name := range []string{sheetTransactions, sheetExpenses} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	s := d.Detail.Summary
	summary := [][]any{
		{d.Title, d.Period},
		{"Filtro Estilista", d.StylistName},
		{"Generado", d.GeneratedAt.In(d.Location).Format("02/01/2006 15:04")},
		{"Ingresos", s.TotalSales.InexactFloat64()},
		{"Efectivo", s.CashTotal.InexactFloat64()},
		{"QR", s.QRTotal.InexactFloat64()},
		{"Egresos", s.TotalExpenses.InexactFloat64()},
		{"Neto", s.NetTotal.InexactFloat64()},
		{"Transacciones", len(d.Detail.Transactions)},
	}
	if err := writeRows(f, sheetSummary, summary); err != nil {
		return err
	}

	txRows := [][]any{{"ID", "Hora", "Servicios", "Pago", "Total"}}
	for _, tx := range d.Detail.Transactions {
		txRows = append(txRows, []any{
			tx.ID,
			d.txTime(tx.Timestamp),
			strings.Join(d.itemLabels(tx), ", "),
			string(tx.PaymentMethod),
			tx.Total.InexactFloat64(),
		})
	}
	if err := writeRows(f, sheetTransactions, txRows); err != nil {
		return err
	}

	expRows := [][]any{{"ID", "Fecha", "Descripción", "Monto"}}
	for _, exp := range d.Detail.Expenses {
		expRows = append(expRows, []any{exp.ID, d.expenseTime(exp.Timestamp), exp.Description, exp.Amount.InexactFloat64()})
	}
	if err := writeRows(f, sheetExpenses, expRows); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := row
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
