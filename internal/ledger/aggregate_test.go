package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"salonpos/backend/internal/domain"
)

func sampleReports(t *testing.T) []domain.Report {
	t.Helper()
	var reports []domain.Report
	add := func(day string, tx domain.Transaction) {
		reports = RecordTransaction(reports, tx, day)
	}
	add("2023-12-31", newTx(t, "2023-12-31T18:00:00Z", domain.PaymentCash, line{corte, "100", ana}))
	add("2024-01-05", newTx(t, "2024-01-05T10:00:00Z", domain.PaymentCash, line{corte, "100", ana}, line{tinte, "800", carlos}))
	add("2024-01-05", newTx(t, "2024-01-05T12:30:00Z", domain.PaymentQR, line{tinte, "750", ana}))
	add("2024-01-20", newTx(t, "2024-01-20T09:15:00Z", domain.PaymentQR, line{corte, "120", carlos}))
	add("2024-02-02", newTx(t, "2024-02-02T16:00:00Z", domain.PaymentCash, line{corte, "100", ana}))

	reports = RecordExpense(reports, newExpense(t, "e1", "2024-01-05T13:00:00Z", "50"), "2024-01-05")
	reports = RecordExpense(reports, newExpense(t, "e2", "2024-01-20T08:00:00Z", "25.50"), "2024-01-20")
	return reports
}

func TestGroupByPeriodMonthWithoutFilter(t *testing.T) {
	totals := GroupByPeriod(sampleReports(t), domain.GranularityMonth, nil, time.UTC)

	want := []struct {
		period string
		total  string
	}{
		{"2024-02", "100"},
		{"2024-01", "1770"},
		{"2023-12", "100"},
	}
	if len(totals) != len(want) {
		t.Fatalf("expected %d periods, got %+v", len(want), totals)
	}
	for i, w := range want {
		if totals[i].Period != w.period {
			t.Fatalf("period %d: expected %s, got %s", i, w.period, totals[i].Period)
		}
		assertDec(t, w.period, totals[i].Total, w.total)
	}

	latest, ok := LatestPeriod(totals)
	if !ok || latest != "2024-02" {
		t.Fatalf("expected latest period 2024-02, got %q", latest)
	}
}

func TestGroupByPeriodSumsOnlyFilteredStylist(t *testing.T) {
	reports := sampleReports(t)
	for _, g := range []domain.Granularity{domain.GranularityDay, domain.GranularityMonth, domain.GranularityYear} {
		for _, filter := range []*int64{nil, ptr(ana.ID), ptr(carlos.ID)} {
			totals := GroupByPeriod(reports, g, filter, time.UTC)

			sum := decimal.Zero
			for _, pt := range totals {
				sum = sum.Add(pt.Total)
			}

			grand := decimal.Zero
			for _, tx := range AllTransactions(reports) {
				for _, item := range tx.Items {
					if filter == nil || item.Stylist.ID == *filter {
						grand = grand.Add(item.Price)
					}
				}
			}
			if !sum.Equal(grand) {
				t.Fatalf("granularity %s filter %v: periods sum %s, grand total %s", g, filter, sum, grand)
			}
		}
	}

	days := GroupByPeriod(reports, domain.GranularityDay, ptr(carlos.ID), time.UTC)
	if len(days) != 2 || days[0].Period != "2024-01-20" || days[1].Period != "2024-01-05" {
		t.Fatalf("unexpected carlos days %+v", days)
	}
	assertDec(t, "carlos 2024-01-05", days[1].Total, "800")
}

func TestGroupByPeriodUsesTimestampNotReportDate(t *testing.T) {
	// A sale recorded under a report dated the day before still buckets by its own instant.
	reports := RecordTransaction(nil, newTx(t, "2024-03-01T00:30:00Z", domain.PaymentCash, line{corte, "100", ana}), "2024-02-29")

	totals := GroupByPeriod(reports, domain.GranularityDay, nil, time.UTC)
	if len(totals) != 1 || totals[0].Period != "2024-03-01" {
		t.Fatalf("expected timestamp-derived period, got %+v", totals)
	}
}

func TestGroupByPeriodEmpty(t *testing.T) {
	totals := GroupByPeriod(nil, domain.GranularityDay, nil, time.UTC)
	if len(totals) != 0 {
		t.Fatalf("expected no periods, got %+v", totals)
	}
	if _, ok := LatestPeriod(totals); ok {
		t.Fatalf("expected no period to be selected")
	}
}

func TestPeriodDetailSummaryAllStylists(t *testing.T) {
	detail := PeriodDetail(sampleReports(t), "2024-01", domain.GranularityMonth, nil, time.UTC)

	if len(detail.Transactions) != 3 {
		t.Fatalf("expected 3 transactions, got %d", len(detail.Transactions))
	}
	for i := 1; i < len(detail.Transactions); i++ {
		if detail.Transactions[i-1].Timestamp.Before(detail.Transactions[i].Timestamp) {
			t.Fatalf("expected transactions newest first")
		}
	}
	if len(detail.Expenses) != 2 || detail.Expenses[0].ID != "e2" {
		t.Fatalf("expected both January expenses newest first, got %+v", detail.Expenses)
	}

	s := detail.Summary
	assertDec(t, "totalSales", s.TotalSales, "1770")
	assertDec(t, "cashTotal", s.CashTotal, "900")
	assertDec(t, "qrTotal", s.QRTotal, "870")
	assertDec(t, "totalExpenses", s.TotalExpenses, "75.50")
	assertDec(t, "netTotal", s.NetTotal, "1694.50")

	if !s.CashTotal.Add(s.QRTotal).Equal(s.TotalSales) {
		t.Fatalf("cash + qr must equal total sales")
	}
	if !s.NetTotal.Equal(s.TotalSales.Sub(s.TotalExpenses)) {
		t.Fatalf("net must equal sales minus expenses")
	}
}

func TestPeriodDetailFilteredRewritesTransactions(t *testing.T) {
	detail := PeriodDetail(sampleReports(t), "2024-01-05", domain.GranularityDay, ptr(carlos.ID), time.UTC)

	if len(detail.Transactions) != 1 {
		t.Fatalf("expected only the shared transaction, got %d", len(detail.Transactions))
	}
	tx := detail.Transactions[0]
	if len(tx.Items) != 1 || tx.Items[0].Stylist.ID != carlos.ID {
		t.Fatalf("expected only carlos' item, got %+v", tx.Items)
	}
	assertDec(t, "rewritten total", tx.Total, "800")
	if len(detail.Expenses) != 0 {
		t.Fatalf("expected expenses to be hidden with a stylist filter")
	}
	assertDec(t, "cash", detail.Summary.CashTotal, "800")
	assertDec(t, "net", detail.Summary.NetTotal, "800")
}

func TestPeriodDetailDoesNotRewriteStoredTransactions(t *testing.T) {
	reports := sampleReports(t)
	_ = PeriodDetail(reports, "2024-01-05", domain.GranularityDay, ptr(carlos.ID), time.UTC)

	stored := reports[FindReport(reports, "2024-01-05")].Transactions[0]
	if len(stored.Items) != 2 {
		t.Fatalf("expected stored transaction to keep both items, got %d", len(stored.Items))
	}
}

func TestPeriodKeyHonoursLocation(t *testing.T) {
	lapaz := time.FixedZone("BOT", -4*3600)
	ts := at(t, "2024-01-01T02:00:00Z")

	if got := PeriodKey(ts, domain.GranularityDay, time.UTC); got != "2024-01-01" {
		t.Fatalf("utc key: %s", got)
	}
	if got := PeriodKey(ts, domain.GranularityYear, lapaz); got != "2023" {
		t.Fatalf("local key: %s", got)
	}
}
