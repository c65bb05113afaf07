package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"salonpos/backend/internal/domain"
)

// PeriodKey buckets a timestamp by granularity in the business location.
func PeriodKey(ts time.Time, g domain.Granularity, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return ts.In(loc).Format(g.Layout())
}

// AllTransactions flattens every report's transactions in collection order.
func AllTransactions(reports []domain.Report) []domain.Transaction {
	count := 0
	for _, r := range reports {
		count += len(r.Transactions)
	}
	all := make([]domain.Transaction, 0, count)
	for _, r := range reports {
		all = append(all, r.Transactions...)
	}
	return all
}

func AllExpenses(reports []domain.Report) []domain.Expense {
	all := make([]domain.Expense, 0)
	for _, r := range reports {
		all = append(all, r.Expenses...)
	}
	return all
}

// GroupByPeriod totals sales per period key, newest period first. With a
// stylist filter only that stylist's items count, and transactions without
// any of them are skipped.
func GroupByPeriod(reports []domain.Report, g domain.Granularity, stylistID *int64, loc *time.Location) []domain.PeriodTotal {
	totals := make(map[string]decimal.Decimal)
	for _, tx := range AllTransactions(reports) {
		value := tx.Total
		if stylistID != nil {
			items := stylistItems(tx, *stylistID)
			if len(items) == 0 {
				continue
			}
			value = sumItems(items)
		}
		key := PeriodKey(tx.Timestamp, g, loc)
		totals[key] = totals[key].Add(value)
	}

	out := make([]domain.PeriodTotal, 0, len(totals))
	for period, total := range totals {
		out = append(out, domain.PeriodTotal{Period: period, Total: total})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Period > out[j].Period
	})
	return out
}

// LatestPeriod is the period a reports view selects by default.
func LatestPeriod(totals []domain.PeriodTotal) (string, bool) {
	if len(totals) == 0 {
		return "", false
	}
	return totals[0].Period, true
}

// PeriodDetail drills into one period. Expenses are only reported when no
// stylist filter is active.
func PeriodDetail(reports []domain.Report, period string, g domain.Granularity, stylistID *int64, loc *time.Location) domain.PeriodDetail {
	txs := make([]domain.Transaction, 0)
	for _, tx := range AllTransactions(reports) {
		if PeriodKey(tx.Timestamp, g, loc) != period {
			continue
		}
		if stylistID != nil {
			items := stylistItems(tx, *stylistID)
			if len(items) == 0 {
				continue
			}
			tx.Items = items
			tx.Total = sumItems(items)
		}
		txs = append(txs, tx)
	}

	expenses := make([]domain.Expense, 0)
	if stylistID == nil {
		for _, exp := range AllExpenses(reports) {
			if PeriodKey(exp.Timestamp, g, loc) == period {
				expenses = append(expenses, exp)
			}
		}
	}

	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Timestamp.After(txs[j].Timestamp)
	})
	sort.SliceStable(expenses, func(i, j int) bool {
		return expenses[i].Timestamp.After(expenses[j].Timestamp)
	})

	return domain.PeriodDetail{
		Period:       period,
		Granularity:  g,
		Transactions: txs,
		Expenses:     expenses,
		Summary:      Summarize(txs, expenses),
	}
}

func Summarize(txs []domain.Transaction, expenses []domain.Expense) domain.PeriodSummary {
	var s domain.PeriodSummary
	for _, tx := range txs {
		s.TotalSales = s.TotalSales.Add(tx.Total)
		switch tx.PaymentMethod {
		case domain.PaymentCash:
			s.CashTotal = s.CashTotal.Add(tx.Total)
		case domain.PaymentQR:
			s.QRTotal = s.QRTotal.Add(tx.Total)
		}
	}
	for _, exp := range expenses {
		s.TotalExpenses = s.TotalExpenses.Add(exp.Amount)
	}
	s.NetTotal = s.TotalSales.Sub(s.TotalExpenses)
	return s
}

func stylistItems(tx domain.Transaction, stylistID int64) []domain.TransactionItem {
	var items []domain.TransactionItem
	for _, item := range tx.Items {
		if item.Stylist.ID == stylistID {
			items = append(items, item)
		}
	}
	return items
}

func sumItems(items []domain.TransactionItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price)
	}
	return total
}
