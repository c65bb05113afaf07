package ledger

import (
	"sort"

	"salonpos/backend/internal/domain"
)

// RecordTransaction returns a copy of reports with tx appended to the report
// dated today, creating that report when the day has none yet.
func RecordTransaction(reports []domain.Report, tx domain.Transaction, today string) []domain.Report {
	return withTodayReport(reports, today, func(r *domain.Report) {
		r.Transactions = append(r.Transactions, tx)
	})
}

// RecordExpense is RecordTransaction for expenses.
func RecordExpense(reports []domain.Report, expense domain.Expense, today string) []domain.Report {
	return withTodayReport(reports, today, func(r *domain.Report) {
		r.Expenses = append(r.Expenses, expense)
	})
}

// DeleteExpense removes the expense with the given id from today's report.
// Expenses of earlier days are never touched. The second result reports
// whether anything was removed.
func DeleteExpense(reports []domain.Report, expenseID string, today string) ([]domain.Report, bool) {
	idx := FindReport(reports, today)
	if idx < 0 {
		return reports, false
	}

	current := reports[idx]
	kept := make([]domain.Expense, 0, len(current.Expenses))
	for _, exp := range current.Expenses {
		if exp.ID != expenseID {
			kept = append(kept, exp)
		}
	}
	if len(kept) == len(current.Expenses) {
		return reports, false
	}

	out := make([]domain.Report, len(reports))
	copy(out, reports)
	updated := CloneReport(current)
	updated.Expenses = kept
	out[idx] = updated
	return out, true
}

// FindReport returns the index of the report for date, or -1.
func FindReport(reports []domain.Report, date string) int {
	for i := range reports {
		if reports[i].Date == date {
			return i
		}
	}
	return -1
}

// SortReports orders reports by date, newest first.
func SortReports(reports []domain.Report) {
	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].Date > reports[j].Date
	})
}

func withTodayReport(reports []domain.Report, today string, mutate func(*domain.Report)) []domain.Report {
	out := make([]domain.Report, len(reports), len(reports)+1)
	copy(out, reports)

	if idx := FindReport(out, today); idx >= 0 {
		updated := CloneReport(out[idx])
		mutate(&updated)
		out[idx] = updated
		return out
	}

	created := domain.Report{
		Date:         today,
		Transactions: []domain.Transaction{},
		Expenses:     []domain.Expense{},
	}
	mutate(&created)
	out = append(out, created)
	SortReports(out)
	return out
}

// CloneReport copies the sequences so appends never alias the caller's state.
func CloneReport(r domain.Report) domain.Report {
	txs := make([]domain.Transaction, len(r.Transactions), len(r.Transactions)+1)
	copy(txs, r.Transactions)
	exps := make([]domain.Expense, len(r.Expenses), len(r.Expenses)+1)
	copy(exps, r.Expenses)
	return domain.Report{Date: r.Date, Transactions: txs, Expenses: exps}
}
