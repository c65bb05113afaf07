package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"salonpos/backend/internal/domain"
	"salonpos/backend/internal/xid"
)

var (
	ana    = domain.Stylist{ID: 1, Name: "Ana"}
	carlos = domain.Stylist{ID: 2, Name: "Carlos"}

	corte = domain.Service{ID: 1, Name: "Corte de Dama", Price: decimal.NewFromInt(100), CommissionRate: domain.CommissionLow}
	tinte = domain.Service{ID: 3, Name: "Tinte Completo", Price: decimal.NewFromInt(800), CommissionRate: domain.CommissionHigh}
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func at(t *testing.T, raw string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		t.Fatalf("parse %q: %v", raw, err)
	}
	return ts.UTC()
}

type line struct {
	service domain.Service
	price   string
	stylist domain.Stylist
}

func newTx(t *testing.T, ts string, method domain.PaymentMethod, lines ...line) domain.Transaction {
	t.Helper()
	when := at(t, ts)
	tx := domain.Transaction{ID: xid.FromTime(when), PaymentMethod: method, Timestamp: when, Total: decimal.Zero}
	for _, l := range lines {
		price := dec(l.price)
		tx.Items = append(tx.Items, domain.TransactionItem{Service: l.service, Price: price, Stylist: l.stylist})
		tx.Total = tx.Total.Add(price)
	}
	return tx
}

func newExpense(t *testing.T, id string, ts string, amount string) domain.Expense {
	t.Helper()
	return domain.Expense{ID: id, Description: "gasto " + id, Amount: dec(amount), Timestamp: at(t, ts)}
}

func assertDec(t *testing.T, label string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(dec(want)) {
		t.Fatalf("%s: expected %s, got %s", label, want, got)
	}
}

func ptr(id int64) *int64 {
	return &id
}
