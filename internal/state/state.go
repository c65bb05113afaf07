package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"salonpos/backend/internal/domain"
	"salonpos/backend/internal/store"
)

// Storage keys, shared with the browser build of the salon app.
const (
	KeyServices       = "salonServices"
	KeyStylists       = "salonStylists"
	KeyReports        = "salonReports"
	KeyPayrollRecords = "salonPayrollRecords"
)

const corruptSuffix = ".corrupt"

// Snapshot is the full persisted state of the salon.
type Snapshot struct {
	Services       []domain.Service
	Stylists       []domain.Stylist
	Reports        []domain.Report
	PayrollRecords []domain.PayrollRecord
}

// Adapter reads and writes the four collections on a key-value store.
type Adapter struct {
	kv     store.KV
	logger *zap.Logger
}

func New(kv store.KV, logger *zap.Logger) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{kv: kv, logger: logger}
}

// Load returns the stored state. Absent collections fall back to their
// defaults. A collection that does not decode is quarantined under
// <key>.corrupt and reset.
func (a *Adapter) Load(ctx context.Context) (Snapshot, error) {
	var (
		snap Snapshot
		err  error
	)

	if snap.Services, err = loadCollection(ctx, a, KeyServices, domain.DefaultServices); err != nil {
		return Snapshot{}, err
	}
	if snap.Stylists, err = loadCollection(ctx, a, KeyStylists, domain.DefaultStylists); err != nil {
		return Snapshot{}, err
	}
	if snap.Reports, err = loadCollection(ctx, a, KeyReports, emptyReports); err != nil {
		return Snapshot{}, err
	}
	if snap.PayrollRecords, err = loadCollection(ctx, a, KeyPayrollRecords, emptyPayrollRecords); err != nil {
		return Snapshot{}, err
	}

	if migrated := backfillReports(snap.Reports); migrated > 0 {
		a.logger.Info("migrated stored reports", zap.Int("reports", migrated))
	}
	return snap, nil
}

func (a *Adapter) SaveServices(ctx context.Context, services []domain.Service) error {
	return a.save(ctx, KeyServices, services)
}

func (a *Adapter) SaveStylists(ctx context.Context, stylists []domain.Stylist) error {
	return a.save(ctx, KeyStylists, stylists)
}

func (a *Adapter) SaveReports(ctx context.Context, reports []domain.Report) error {
	return a.save(ctx, KeyReports, reports)
}

func (a *Adapter) SavePayrollRecords(ctx context.Context, records []domain.PayrollRecord) error {
	return a.save(ctx, KeyPayrollRecords, records)
}

func (a *Adapter) save(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := a.kv.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func loadCollection[T any](ctx context.Context, a *Adapter, key string, fallback func() []T) ([]T, error) {
	raw, err := a.kv.Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return fallback(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}

	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		a.quarantine(ctx, key, raw, err)
		return fallback(), nil
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func (a *Adapter) quarantine(ctx context.Context, key string, raw []byte, decodeErr error) {
	fields := []zap.Field{zap.String("key", key), zap.Error(decodeErr)}
	if err := a.kv.Set(ctx, key+corruptSuffix, raw); err != nil {
		a.logger.Error("failed to quarantine corrupt collection", append(fields, zap.NamedError("quarantine_error", err))...)
	}
	a.logger.Warn("stored collection is corrupt, falling back to defaults", append(fields, zap.String("quarantine_key", key+corruptSuffix))...)
}

// backfillReports gives every report non-nil sequences and returns how many
// needed it.
func backfillReports(reports []domain.Report) int {
	migrated := 0
	for i := range reports {
		changed := false
		if reports[i].Expenses == nil {
			reports[i].Expenses = []domain.Expense{}
			changed = true
		}
		if reports[i].Transactions == nil {
			reports[i].Transactions = []domain.Transaction{}
			changed = true
		}
		if changed {
			migrated++
		}
	}
	return migrated
}

func emptyReports() []domain.Report { return []domain.Report{} }

func emptyPayrollRecords() []domain.PayrollRecord { return []domain.PayrollRecord{} }
