package ledger

import (
	"errors"
	"testing"
	"time"

	"salonpos/backend/internal/domain"
)

func TestComputePayrollSingleItemExample(t *testing.T) {
	reports := RecordTransaction(nil, newTx(t, "2024-01-05T10:00:00Z", domain.PaymentCash, line{corte, "100", ana}), "2024-01-05")

	report, err := ComputePayroll(reports, nil, ana.ID, "2024-01-01", "2024-01-31", time.UTC)
	if err != nil {
		t.Fatalf("compute payroll: %v", err)
	}

	assertDec(t, "totalGross", report.TotalGross, "100")
	assertDec(t, "totalCommission", report.TotalCommission, "30")
	assertDec(t, "salonProfit", report.SalonProfit, "70")
	assertDec(t, "breakdown 0.3 total", report.Breakdown["0.3"].Total, "100")
	assertDec(t, "breakdown 0.3 commission", report.Breakdown["0.3"].Commission, "30")
	assertDec(t, "breakdown 0.4 total", report.Breakdown["0.4"].Total, "0")
	if report.Paid {
		t.Fatalf("expected unpaid without records")
	}
	if len(report.Transactions) != 1 || report.Transactions[0].ServiceName != corte.Name {
		t.Fatalf("unexpected detail lines %+v", report.Transactions)
	}
}

func TestComputePayrollInvariants(t *testing.T) {
	reports := sampleReports(t)

	report, err := ComputePayroll(reports, nil, ana.ID, "2023-12-01", "2024-12-31", time.UTC)
	if err != nil {
		t.Fatalf("compute payroll: %v", err)
	}

	low, high := report.Breakdown["0.3"], report.Breakdown["0.4"]
	if !report.TotalGross.Equal(low.Total.Add(high.Total)) {
		t.Fatalf("gross must equal bucket totals")
	}
	if !report.TotalCommission.Equal(low.Commission.Add(high.Commission)) {
		t.Fatalf("commission must equal bucket commissions")
	}
	if !report.SalonProfit.Equal(report.TotalGross.Sub(report.TotalCommission)) {
		t.Fatalf("profit must equal gross minus commission")
	}
	assertDec(t, "gross", report.TotalGross, "1050")
	assertDec(t, "commission", report.TotalCommission, "390")
	assertDec(t, "high tier", high.Commission, "300")

	if len(report.Transactions) != 4 {
		t.Fatalf("expected 4 ana lines, got %d", len(report.Transactions))
	}
	for i, l := range report.Transactions {
		if i > 0 && report.Transactions[i-1].Timestamp.Before(l.Timestamp) {
			t.Fatalf("expected lines newest first")
		}
	}
}

func TestComputePayrollRangeIsInclusive(t *testing.T) {
	var reports []domain.Report
	reports = RecordTransaction(reports, newTx(t, "2024-01-01T00:00:00Z", domain.PaymentCash, line{corte, "10", ana}), "2024-01-01")
	reports = RecordTransaction(reports, newTx(t, "2024-01-31T23:59:59.999Z", domain.PaymentCash, line{corte, "20", ana}), "2024-01-31")
	reports = RecordTransaction(reports, newTx(t, "2024-02-01T00:00:00Z", domain.PaymentCash, line{corte, "40", ana}), "2024-02-01")
	reports = RecordTransaction(reports, newTx(t, "2023-12-31T23:59:59Z", domain.PaymentCash, line{corte, "80", ana}), "2023-12-31")

	report, err := ComputePayroll(reports, nil, ana.ID, "2024-01-01", "2024-01-31", time.UTC)
	if err != nil {
		t.Fatalf("compute payroll: %v", err)
	}
	assertDec(t, "gross", report.TotalGross, "30")
}

func TestComputePayrollUsesBusinessLocation(t *testing.T) {
	lapaz := time.FixedZone("BOT", -4*3600)
	// 02:00 UTC on Feb 1st is still Jan 31st in La Paz.
	reports := RecordTransaction(nil, newTx(t, "2024-02-01T02:00:00Z", domain.PaymentCash, line{corte, "100", ana}), "2024-02-01")

	local, err := ComputePayroll(reports, nil, ana.ID, "2024-01-31", "2024-01-31", lapaz)
	if err != nil {
		t.Fatalf("compute payroll: %v", err)
	}
	assertDec(t, "local gross", local.TotalGross, "100")

	utc, err := ComputePayroll(reports, nil, ana.ID, "2024-01-31", "2024-01-31", time.UTC)
	if err != nil {
		t.Fatalf("compute payroll: %v", err)
	}
	assertDec(t, "utc gross", utc.TotalGross, "0")
}

func TestComputePayrollRejectsMalformedDates(t *testing.T) {
	_, err := ComputePayroll(nil, nil, ana.ID, "2024/01/01", "2024-01-31", time.UTC)
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestComputePayrollReversedRangeIsEmpty(t *testing.T) {
	report, err := ComputePayroll(sampleReports(t), nil, ana.ID, "2024-02-01", "2024-01-01", time.UTC)
	if err != nil {
		t.Fatalf("compute payroll: %v", err)
	}
	assertDec(t, "gross", report.TotalGross, "0")
	if len(report.Transactions) != 0 {
		t.Fatalf("expected no lines")
	}
}

func TestTogglePaidIsItsOwnInverse(t *testing.T) {
	original := []domain.PayrollRecord{
		{StylistID: 2, StartDate: "2024-01-01", EndDate: "2024-01-15"},
	}
	record := domain.PayrollRecord{StylistID: 1, StartDate: "2024-01-01", EndDate: "2024-01-31"}

	marked, paid := TogglePaid(original, record)
	if !paid || !IsPaid(marked, record) || len(marked) != 2 {
		t.Fatalf("expected record to be marked paid, got %+v", marked)
	}

	report, err := ComputePayroll(nil, marked, 1, "2024-01-01", "2024-01-31", time.UTC)
	if err != nil {
		t.Fatalf("compute payroll: %v", err)
	}
	if !report.Paid {
		t.Fatalf("expected payroll to report paid")
	}

	overlapping := domain.PayrollRecord{StylistID: 1, StartDate: "2024-01-01", EndDate: "2024-01-30"}
	if IsPaid(marked, overlapping) {
		t.Fatalf("paid status must match the exact range, not overlaps")
	}

	restored, paid := TogglePaid(marked, record)
	if paid {
		t.Fatalf("expected second toggle to unmark")
	}
	if len(restored) != len(original) || restored[0] != original[0] {
		t.Fatalf("expected original collection back, got %+v", restored)
	}
}
