package ledger

import (
	"testing"

	"salonpos/backend/internal/domain"
)

func TestRecordTransactionKeepsCallOrderForTheDay(t *testing.T) {
	tx1 := newTx(t, "2024-01-05T10:00:00Z", domain.PaymentCash, line{corte, "100", ana})
	tx2 := newTx(t, "2024-01-05T11:00:00Z", domain.PaymentQR, line{tinte, "800", carlos})
	tx3 := newTx(t, "2024-01-05T09:00:00Z", domain.PaymentCash, line{corte, "90", carlos})

	var reports []domain.Report
	for _, tx := range []domain.Transaction{tx1, tx2, tx3} {
		reports = RecordTransaction(reports, tx, "2024-01-05")
	}

	if len(reports) != 1 {
		t.Fatalf("expected one report, got %d", len(reports))
	}
	got := reports[0].Transactions
	if len(got) != 3 || got[0].ID != tx1.ID || got[1].ID != tx2.ID || got[2].ID != tx3.ID {
		t.Fatalf("expected insertion order to be preserved, got %+v", got)
	}
	if reports[0].Expenses == nil {
		t.Fatalf("expected expenses to be an empty sequence, not nil")
	}
}

func TestRecordCreatesReportsSortedNewestFirst(t *testing.T) {
	var reports []domain.Report
	for _, day := range []string{"2024-01-03", "2024-01-07", "2024-01-01", "2024-01-05", "2024-01-07"} {
		reports = RecordTransaction(reports, newTx(t, day+"T10:00:00Z", domain.PaymentCash, line{corte, "100", ana}), day)
	}

	if len(reports) != 4 {
		t.Fatalf("expected one report per distinct date, got %d", len(reports))
	}
	for i := 1; i < len(reports); i++ {
		if reports[i-1].Date <= reports[i].Date {
			t.Fatalf("expected descending dates, got %s before %s", reports[i-1].Date, reports[i].Date)
		}
	}
	if len(reports[0].Transactions) != 2 {
		t.Fatalf("expected the repeated date to share a report, got %d transactions", len(reports[0].Transactions))
	}
}

func TestRecordExpenseCreatesTodayReport(t *testing.T) {
	exp := newExpense(t, "e1", "2024-02-10T15:00:00Z", "50")
	exp.Description = "Limpieza"

	reports := RecordExpense(nil, exp, "2024-02-10")

	if len(reports) != 1 {
		t.Fatalf("expected a new report, got %d", len(reports))
	}
	r := reports[0]
	if r.Date != "2024-02-10" || len(r.Transactions) != 0 || len(r.Expenses) != 1 {
		t.Fatalf("unexpected report %+v", r)
	}
	if r.Expenses[0].Description != "Limpieza" {
		t.Fatalf("expected Limpieza, got %q", r.Expenses[0].Description)
	}
	assertDec(t, "amount", r.Expenses[0].Amount, "50")
}

func TestRecordDoesNotMutateInput(t *testing.T) {
	base := RecordTransaction(nil, newTx(t, "2024-01-05T10:00:00Z", domain.PaymentCash, line{corte, "100", ana}), "2024-01-05")
	_ = RecordTransaction(base, newTx(t, "2024-01-05T11:00:00Z", domain.PaymentCash, line{corte, "100", ana}), "2024-01-05")
	_ = RecordExpense(base, newExpense(t, "e1", "2024-01-05T12:00:00Z", "10"), "2024-01-05")

	if len(base[0].Transactions) != 1 || len(base[0].Expenses) != 0 {
		t.Fatalf("expected original collection to stay untouched, got %+v", base[0])
	}
}

func TestDeleteExpenseOnlyTouchesToday(t *testing.T) {
	reports := RecordExpense(nil, newExpense(t, "old", "2024-01-04T10:00:00Z", "20"), "2024-01-04")
	reports = RecordExpense(reports, newExpense(t, "e1", "2024-01-05T10:00:00Z", "30"), "2024-01-05")
	reports = RecordExpense(reports, newExpense(t, "e2", "2024-01-05T11:00:00Z", "40"), "2024-01-05")

	updated, removed := DeleteExpense(reports, "old", "2024-01-05")
	if removed {
		t.Fatalf("expected expense of a prior day not to be deleted")
	}

	updated, removed = DeleteExpense(updated, "e1", "2024-01-05")
	if !removed {
		t.Fatalf("expected today's expense to be deleted")
	}
	today := updated[FindReport(updated, "2024-01-05")]
	if len(today.Expenses) != 1 || today.Expenses[0].ID != "e2" {
		t.Fatalf("unexpected expenses after delete: %+v", today.Expenses)
	}
	if len(reports[FindReport(reports, "2024-01-05")].Expenses) != 2 {
		t.Fatalf("expected input collection to keep both expenses")
	}
}

func TestDeleteExpenseUnknownIDLeavesReportUnchanged(t *testing.T) {
	reports := RecordExpense(nil, newExpense(t, "e1", "2024-01-05T10:00:00Z", "30"), "2024-01-05")

	updated, removed := DeleteExpense(reports, "missing", "2024-01-05")
	if removed {
		t.Fatalf("expected nothing to be removed")
	}
	if len(updated[0].Expenses) != 1 {
		t.Fatalf("expected report unchanged, got %+v", updated[0])
	}

	_, removed = DeleteExpense(reports, "e1", "2024-01-06")
	if removed {
		t.Fatalf("expected no-op when today has no report")
	}
}
