package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"salonpos/backend/internal/domain"
	"salonpos/backend/internal/ledger"
	"salonpos/backend/internal/state"
	"salonpos/backend/internal/xid"
)

var (
	ErrInvalidInput = ledger.ErrInvalid
	ErrNotFound     = ledger.ErrNotFound
)

type Clock func() time.Time

type Options struct {
	// Location decides which calendar day "today" is. Defaults to UTC.
	Location *time.Location
	Clock    Clock
	Logger   *zap.Logger
}

// Service owns the in-memory copy of the salon state. Every operation runs
// under one lock; writes persist the new collection before it replaces the
// current one.
type Service struct {
	mu     sync.Mutex
	state  *state.Adapter
	snap   state.Snapshot
	loc    *time.Location
	now    Clock
	logger *zap.Logger
}

func New(ctx context.Context, adapter *state.Adapter, opts Options) (*Service, error) {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	snap, err := adapter.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load salon state: %w", err)
	}

	return &Service{
		state:  adapter,
		snap:   snap,
		loc:    opts.Location,
		now:    opts.Clock,
		logger: opts.Logger,
	}, nil
}

func (s *Service) Location() *time.Location {
	return s.loc
}

// Today is the current business date, YYYY-MM-DD.
func (s *Service) Today() string {
	return s.now().In(s.loc).Format(domain.DateLayout)
}

func (s *Service) Now() time.Time {
	return s.now()
}

func (s *Service) ListServices(_ context.Context) []domain.Service {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Service(nil), s.snap.Services...)
}

func (s *Service) ListStylists(_ context.Context) []domain.Stylist {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Stylist(nil), s.snap.Stylists...)
}

func (s *Service) CreateService(ctx context.Context, req domain.ServiceRequest) (domain.Service, error) {
	next, err := s.applyCatalog(ctx, ledger.AddService{Name: req.Name, Price: req.Price, CommissionRate: req.CommissionRate})
	if err != nil {
		return domain.Service{}, err
	}
	created := next.Services[len(next.Services)-1]
	s.logger.Info("service created", zap.Int64("service_id", created.ID), zap.String("name", created.Name))
	return created, nil
}

func (s *Service) UpdateService(ctx context.Context, id int64, req domain.ServiceRequest) (domain.Service, error) {
	next, err := s.applyCatalog(ctx, ledger.EditService{ID: id, Name: req.Name, Price: req.Price, CommissionRate: req.CommissionRate})
	if err != nil {
		return domain.Service{}, err
	}
	updated, _ := ledger.FindService(next.Services, id)
	return updated, nil
}

func (s *Service) DeleteService(ctx context.Context, id int64) error {
	_, err := s.applyCatalog(ctx, ledger.DeleteService{ID: id})
	return err
}

func (s *Service) CreateStylist(ctx context.Context, req domain.StylistRequest) (domain.Stylist, error) {
	next, err := s.applyCatalog(ctx, ledger.AddStylist{Name: req.Name})
	if err != nil {
		return domain.Stylist{}, err
	}
	created := next.Stylists[len(next.Stylists)-1]
	s.logger.Info("stylist created", zap.Int64("stylist_id", created.ID), zap.String("name", created.Name))
	return created, nil
}

func (s *Service) UpdateStylist(ctx context.Context, id int64, req domain.StylistRequest) (domain.Stylist, error) {
	next, err := s.applyCatalog(ctx, ledger.EditStylist{ID: id, Name: req.Name})
	if err != nil {
		return domain.Stylist{}, err
	}
	updated, _ := ledger.FindStylist(next.Stylists, id)
	return updated, nil
}

func (s *Service) DeleteStylist(ctx context.Context, id int64) error {
	_, err := s.applyCatalog(ctx, ledger.DeleteStylist{ID: id})
	return err
}

func (s *Service) applyCatalog(ctx context.Context, change ledger.CatalogChange) (ledger.Catalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := ledger.Catalog{Services: s.snap.Services, Stylists: s.snap.Stylists}
	next, err := ledger.ApplyCatalogChange(current, change, s.now().UnixMilli())
	if err != nil {
		return ledger.Catalog{}, err
	}

	switch change.(type) {
	case ledger.AddService, ledger.EditService, ledger.DeleteService:
		if err := s.state.SaveServices(ctx, next.Services); err != nil {
			return ledger.Catalog{}, fmt.Errorf("persist services: %w", err)
		}
		s.snap.Services = next.Services
	default:
		if err := s.state.SaveStylists(ctx, next.Stylists); err != nil {
			return ledger.Catalog{}, fmt.Errorf("persist stylists: %w", err)
		}
		s.snap.Stylists = next.Stylists
	}
	return next, nil
}

// Checkout prices the requested lines from the catalog, finalizes the ticket
// and appends the sale to today's report.
func (s *Service) Checkout(ctx context.Context, req domain.CheckoutRequest) (domain.Transaction, error) {
	method, ok := domain.ParsePaymentMethod(req.PaymentMethod)
	if !ok {
		return domain.Transaction{}, fmt.Errorf("%w: unsupported payment method %q", ErrInvalidInput, req.PaymentMethod)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ticket, err := s.buildTicket(req.Lines)
	if err != nil {
		return domain.Transaction{}, err
	}

	now := s.now()
	today := now.In(s.loc).Format(domain.DateLayout)
	for transactionIDTaken(s.snap.Reports, today, xid.FromTime(now)) {
		now = now.Add(time.Millisecond)
	}

	tx, err := ticket.Finalize(method, now)
	if err != nil {
		return domain.Transaction{}, err
	}

	next := ledger.RecordTransaction(s.snap.Reports, tx, today)
	if err := s.commitReports(ctx, next); err != nil {
		return domain.Transaction{}, err
	}

	s.logger.Info("transaction recorded",
		zap.String("transaction_id", tx.ID),
		zap.String("payment_method", string(tx.PaymentMethod)),
		zap.String("total", tx.Total.StringFixed(2)),
		zap.Int("items", len(tx.Items)),
	)
	return tx, nil
}

func (s *Service) buildTicket(lines []domain.CheckoutLine) (*ledger.Ticket, error) {
	ticket := &ledger.Ticket{}
	for i, line := range lines {
		svc, ok := ledger.FindService(s.snap.Services, line.ServiceID)
		if !ok {
			return nil, fmt.Errorf("%w: line %d references unknown service %d", ErrInvalidInput, i+1, line.ServiceID)
		}

		var stylist *domain.Stylist
		if line.StylistID != 0 {
			found, ok := ledger.FindStylist(s.snap.Stylists, line.StylistID)
			if !ok {
				return nil, fmt.Errorf("%w: line %d references unknown stylist %d", ErrInvalidInput, i+1, line.StylistID)
			}
			stylist = &found
		}

		lineID := ticket.Add(svc, stylist)
		if line.Price != nil {
			if err := ticket.SetPrice(lineID, *line.Price); err != nil {
				return nil, err
			}
		}
	}
	return ticket, nil
}

func transactionIDTaken(reports []domain.Report, today string, id string) bool {
	idx := ledger.FindReport(reports, today)
	if idx < 0 {
		return false
	}
	for _, tx := range reports[idx].Transactions {
		if tx.ID == id {
			return true
		}
	}
	return false
}

func (s *Service) RecordExpense(ctx context.Context, req domain.ExpenseRequest) (domain.Expense, error) {
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return domain.Expense{}, ledger.ErrEmptyDescription
	}
	amount := domain.RoundMoney(req.Amount)
	if !amount.IsPositive() {
		return domain.Expense{}, ledger.ErrNonPositiveAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	expense := domain.Expense{
		ID:          xid.New(),
		Description: description,
		Amount:      amount,
		Timestamp:   now.UTC(),
	}

	next := ledger.RecordExpense(s.snap.Reports, expense, now.In(s.loc).Format(domain.DateLayout))
	if err := s.commitReports(ctx, next); err != nil {
		return domain.Expense{}, err
	}

	s.logger.Info("expense recorded", zap.String("expense_id", expense.ID), zap.String("amount", amount.StringFixed(2)))
	return expense, nil
}

// DeleteExpense removes an expense of today's report and reports whether one
// matched. The reports collection is written either way.
func (s *Service) DeleteExpense(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, removed := ledger.DeleteExpense(s.snap.Reports, id, s.Today())
	if err := s.commitReports(ctx, next); err != nil {
		return false, err
	}
	if removed {
		s.logger.Info("expense deleted", zap.String("expense_id", id))
	}
	return removed, nil
}

func (s *Service) commitReports(ctx context.Context, next []domain.Report) error {
	if err := s.state.SaveReports(ctx, next); err != nil {
		return fmt.Errorf("persist reports: %w", err)
	}
	s.snap.Reports = next
	return nil
}

func (s *Service) ListReports(_ context.Context) []domain.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Report, len(s.snap.Reports))
	for i, r := range s.snap.Reports {
		out[i] = ledger.CloneReport(r)
	}
	return out
}

// TodayReport returns today's report, or an empty one when nothing has been
// recorded yet.
func (s *Service) TodayReport(_ context.Context) domain.Report {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.Today()
	if idx := ledger.FindReport(s.snap.Reports, today); idx >= 0 {
		return ledger.CloneReport(s.snap.Reports[idx])
	}
	return domain.Report{Date: today, Transactions: []domain.Transaction{}, Expenses: []domain.Expense{}}
}

func (s *Service) Periods(_ context.Context, g domain.Granularity, stylistID *int64) []domain.PeriodTotal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ledger.GroupByPeriod(s.snap.Reports, g, stylistID, s.loc)
}

func (s *Service) PeriodDetail(_ context.Context, period string, g domain.Granularity, stylistID *int64) (domain.PeriodDetail, error) {
	if _, err := time.Parse(g.Layout(), period); err != nil {
		return domain.PeriodDetail{}, fmt.Errorf("%w: period %q does not match %s", ErrInvalidInput, period, g.Layout())
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return ledger.PeriodDetail(s.snap.Reports, period, g, stylistID, s.loc), nil
}

func (s *Service) Payroll(_ context.Context, stylistID int64, startDate string, endDate string) (domain.PayrollReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ledger.ComputePayroll(s.snap.Reports, s.snap.PayrollRecords, stylistID, startDate, endDate, s.loc)
}

// TogglePaid flips the paid marker of a payroll range and returns the new status.
func (s *Service) TogglePaid(ctx context.Context, record domain.PayrollRecord) (bool, error) {
	if _, _, err := ledger.DayRange(record.StartDate, record.EndDate, s.loc); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next, paid := ledger.TogglePaid(s.snap.PayrollRecords, record)
	if err := s.state.SavePayrollRecords(ctx, next); err != nil {
		return false, fmt.Errorf("persist payroll records: %w", err)
	}
	s.snap.PayrollRecords = next

	s.logger.Info("payroll status changed",
		zap.Int64("stylist_id", record.StylistID),
		zap.String("start_date", record.StartDate),
		zap.String("end_date", record.EndDate),
		zap.Bool("paid", paid),
	)
	return paid, nil
}

// StylistName resolves the display name used on exported documents.
func (s *Service) StylistName(stylistID *int64) string {
	if stylistID == nil {
		return domain.AllStylistsName
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if stylist, ok := ledger.FindStylist(s.snap.Stylists, *stylistID); ok {
		return stylist.Name
	}
	return domain.UnknownStylistName
}
