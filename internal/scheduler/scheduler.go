package scheduler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"salonpos/backend/internal/domain"
	"salonpos/backend/internal/export"
	"salonpos/backend/internal/service"
)

// Scheduler runs the end-of-day close.
type Scheduler struct {
	cron      *cron.Cron
	service   *service.Service
	schedule  string
	exportDir string
	logger    *zap.Logger
}

// New schedules the close on schedule, a five-field cron expression evaluated in
// the service's business location. An empty exportDir skips the workbook.
func New(svc *service.Service, schedule string, exportDir string, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		cron:      cron.New(cron.WithLocation(svc.Location())),
		service:   svc,
		schedule:  schedule,
		exportDir: exportDir,
		logger:    logger,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.runDailyClose); err != nil {
		return fmt.Errorf("schedule daily close %q: %w", s.schedule, err)
	}
	s.logger.Info("starting scheduler", zap.String("daily_close", s.schedule))
	s.cron.Start()
	return nil
}

// Stop waits for a running close to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runDailyClose() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if _, err := s.DailyClose(ctx); err != nil {
		s.logger.Error("daily close failed", zap.Error(err))
	}
}

// DailyClose summarizes today for the whole salon and, when an export
// directory is configured, writes the day's workbook there. It returns the
// written path, or "" when nothing was written.
func (s *Scheduler) DailyClose(ctx context.Context) (string, error) {
	today := s.service.Today()
	detail, err := s.service.PeriodDetail(ctx, today, domain.GranularityDay, nil)
	if err != nil {
		return "", err
	}

	sum := detail.Summary
	s.logger.Info("daily close",
		zap.String("date", today),
		zap.Int("transactions", len(detail.Transactions)),
		zap.String("total_sales", sum.TotalSales.StringFixed(2)),
		zap.String("cash_total", sum.CashTotal.StringFixed(2)),
		zap.String("qr_total", sum.QRTotal.StringFixed(2)),
		zap.String("total_expenses", sum.TotalExpenses.StringFixed(2)),
		zap.String("net_total", sum.NetTotal.StringFixed(2)),
	)

	if s.exportDir == "" {
		return "", nil
	}

	doc := export.NewDocument(detail, nil, domain.AllStylistsName, s.service.Now(), s.service.Location())
	path, err := WriteDocument(s.exportDir, doc, export.FormatXLSX)
	if err != nil {
		return "", err
	}
	s.logger.Info("daily close exported", zap.String("path", path))
	return path, nil
}

// WriteDocument renders doc into dir under its standard file name.
func WriteDocument(dir string, doc export.Document, format export.Format) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}
	name := export.FileName(doc, format)
	if name != filepath.Base(name) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid export file name %q", name)
	}
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}
	if err := export.Render(f, doc, format); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close export file: %w", err)
	}
	return path, nil
}
