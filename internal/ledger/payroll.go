package ledger

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"salonpos/backend/internal/domain"
)

// DayRange turns two calendar dates into the instants
// [start 00:00:00.000, end 23:59:59.999] in loc.
func DayRange(startDate string, endDate string, loc *time.Location) (time.Time, time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	start, err := time.ParseInLocation(domain.DateLayout, startDate, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w (start %q)", ErrInvalidDate, startDate)
	}
	endDay, err := time.ParseInLocation(domain.DateLayout, endDate, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w (end %q)", ErrInvalidDate, endDate)
	}
	y, m, d := endDay.Date()
	end := time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), loc)
	return start, end, nil
}

// ComputePayroll sums the stylist's items sold within the inclusive date
// range, bucketed by commission tier. Paid status is an exact match on the
// (stylist, startDate, endDate) tuple.
func ComputePayroll(reports []domain.Report, records []domain.PayrollRecord, stylistID int64, startDate string, endDate string, loc *time.Location) (domain.PayrollReport, error) {
	start, end, err := DayRange(startDate, endDate, loc)
	if err != nil {
		return domain.PayrollReport{}, err
	}

	breakdown := make(map[string]domain.PayrollBucket, 2)
	for _, tier := range domain.CommissionTiers() {
		breakdown[domain.TierKey(tier)] = domain.PayrollBucket{Total: decimal.Zero, Commission: decimal.Zero}
	}
	lines := make([]domain.PayrollLine, 0)

	for _, tx := range AllTransactions(reports) {
		if tx.Timestamp.Before(start) || tx.Timestamp.After(end) {
			continue
		}
		for _, item := range tx.Items {
			if item.Stylist.ID != stylistID {
				continue
			}
			rate := item.Service.CommissionRate
			commission := item.Price.Mul(rate)

			key := domain.TierKey(rate)
			bucket := breakdown[key]
			bucket.Total = bucket.Total.Add(item.Price)
			bucket.Commission = bucket.Commission.Add(commission)
			breakdown[key] = bucket

			lines = append(lines, domain.PayrollLine{
				ServiceName: item.Service.Name,
				Price:       item.Price,
				Commission:  commission,
				Timestamp:   tx.Timestamp,
			})
		}
	}

	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].Timestamp.After(lines[j].Timestamp)
	})

	totalGross, totalCommission := decimal.Zero, decimal.Zero
	for _, bucket := range breakdown {
		totalGross = totalGross.Add(bucket.Total)
		totalCommission = totalCommission.Add(bucket.Commission)
	}

	record := domain.PayrollRecord{StylistID: stylistID, StartDate: startDate, EndDate: endDate}
	return domain.PayrollReport{
		StylistID:       stylistID,
		StartDate:       startDate,
		EndDate:         endDate,
		TotalGross:      totalGross,
		TotalCommission: totalCommission,
		SalonProfit:     totalGross.Sub(totalCommission),
		Breakdown:       breakdown,
		Transactions:    lines,
		Paid:            IsPaid(records, record),
	}, nil
}

func IsPaid(records []domain.PayrollRecord, record domain.PayrollRecord) bool {
	for _, r := range records {
		if r == record {
			return true
		}
	}
	return false
}

// TogglePaid removes the marker when present and appends it otherwise. It
// returns the new collection and whether the range is now marked paid.
func TogglePaid(records []domain.PayrollRecord, record domain.PayrollRecord) ([]domain.PayrollRecord, bool) {
	if IsPaid(records, record) {
		kept := make([]domain.PayrollRecord, 0, len(records))
		for _, r := range records {
			if r != record {
				kept = append(kept, r)
			}
		}
		return kept, false
	}

	out := make([]domain.PayrollRecord, len(records), len(records)+1)
	copy(out, records)
	return append(out, record), true
}
