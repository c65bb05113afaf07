package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"
	_ "time/tzdata"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"salonpos/backend/internal/config"
	"salonpos/backend/internal/domain"
	"salonpos/backend/internal/export"
	"salonpos/backend/internal/logger"
	"salonpos/backend/internal/scheduler"
	"salonpos/backend/internal/service"
	"salonpos/backend/internal/state"
	"salonpos/backend/internal/store/backend"
)

// opener builds the service the commands run against.
type opener func(c *cli.Context) (*service.Service, []func() error, error)

func main() {
	app := newApp(openFromConfig)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "salonctl:", err)
		os.Exit(1)
	}
}

func openFromConfig(c *cli.Context) (*service.Service, []func() error, error) {
	cfg, err := config.Load(c.String("env"))
	if err != nil {
		return nil, nil, err
	}
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	if !c.Bool("verbose") {
		log = zap.NewNop()
	}

	ctx, cancel := context.WithTimeout(c.Context, 10*time.Second)
	defer cancel()

	kv, closers, err := backend.Open(ctx, cfg, logger.Named(log, "store"))
	if err != nil {
		return nil, nil, err
	}
	svc, err := service.New(ctx, state.New(kv, logger.Named(log, "state")), service.Options{
		Location: cfg.Location(),
		Logger:   logger.Named(log, "service"),
	})
	if err != nil {
		return nil, closers, err
	}
	return svc, closers, nil
}

func newApp(open opener) *cli.App {
	var (
		svc     *service.Service
		closers []func() error
	)

	granularityFlag := &cli.StringFlag{Name: "granularity", Aliases: []string{"g"}, Value: "day", Usage: "day, month or year"}
	stylistFlag := &cli.Int64Flag{Name: "stylist", Aliases: []string{"s"}, Usage: "stylist id (omit for the whole salon)"}
	rangeFlags := []cli.Flag{
		&cli.Int64Flag{Name: "stylist", Aliases: []string{"s"}, Usage: "stylist id", Required: true},
		&cli.StringFlag{Name: "start", Usage: "first day, YYYY-MM-DD", Required: true},
		&cli.StringFlag{Name: "end", Usage: "last day, YYYY-MM-DD", Required: true},
	}

	return &cli.App{
		Name:  "salonctl",
		Usage: "inspect salon reports and payroll from the configured store",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "env", Usage: "path to an env file"},
			&cli.BoolFlag{Name: "verbose", Usage: "log store and service activity"},
		},
		Before: func(c *cli.Context) error {
			if c.Args().Len() == 0 {
				return nil
			}
			var err error
			svc, closers, err = open(c)
			return err
		},
		After: func(c *cli.Context) error {
			var errs []error
			for _, closeFn := range closers {
				errs = append(errs, closeFn())
			}
			return errors.Join(errs...)
		},
		Commands: []*cli.Command{
			{
				Name:  "periods",
				Usage: "list report totals grouped by period, newest first",
				Flags: []cli.Flag{granularityFlag, stylistFlag},
				Action: func(c *cli.Context) error {
					g, stylistID, err := reportFilter(c)
					if err != nil {
						return err
					}
					w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
					fmt.Fprintf(w, "PERIOD\tTOTAL\n")
					for _, p := range svc.Periods(c.Context, g, stylistID) {
						fmt.Fprintf(w, "%s\t%s\n", p.Period, p.Total.StringFixed(2))
					}
					return w.Flush()
				},
			},
			{
				Name:      "detail",
				Usage:     "show the transactions, expenses and summary of one period",
				ArgsUsage: "PERIOD",
				Flags:     []cli.Flag{granularityFlag, stylistFlag},
				Action: func(c *cli.Context) error {
					g, stylistID, err := reportFilter(c)
					if err != nil {
						return err
					}
					detail, err := svc.PeriodDetail(c.Context, c.Args().First(), g, stylistID)
					if err != nil {
						return err
					}
					printDetail(c, detail, svc.StylistName(stylistID), svc.Location())
					return nil
				},
			},
			{
				Name:  "payroll",
				Usage: "compute a stylist's commission over an inclusive date range",
				Flags: rangeFlags,
				Action: func(c *cli.Context) error {
					stylistID := c.Int64("stylist")
					report, err := svc.Payroll(c.Context, stylistID, c.String("start"), c.String("end"))
					if err != nil {
						return err
					}
					printPayroll(c, report, svc.StylistName(&stylistID))
					return nil
				},
			},
			{
				Name:  "toggle-paid",
				Usage: "flip the paid marker of a payroll range",
				Flags: rangeFlags,
				Action: func(c *cli.Context) error {
					paid, err := svc.TogglePaid(c.Context, domain.PayrollRecord{
						StylistID: c.Int64("stylist"),
						StartDate: c.String("start"),
						EndDate:   c.String("end"),
					})
					if err != nil {
						return err
					}
					status := "pendiente"
					if paid {
						status = "pagado"
					}
					fmt.Fprintf(c.App.Writer, "%s %s..%s: %s\n", svc.StylistName(ptr(c.Int64("stylist"))), c.String("start"), c.String("end"), status)
					return nil
				},
			},
			{
				Name:      "export",
				Usage:     "write a period report document",
				ArgsUsage: "PERIOD",
				Flags: []cli.Flag{
					granularityFlag,
					stylistFlag,
					&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: "pdf", Usage: "csv, pdf, xlsx or html"},
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: ".", Usage: "output directory"},
				},
				Action: func(c *cli.Context) error {
					g, stylistID, err := reportFilter(c)
					if err != nil {
						return err
					}
					format, ok := export.ParseFormat(c.String("format"))
					if !ok {
						return fmt.Errorf("unsupported format %q", c.String("format"))
					}
					detail, err := svc.PeriodDetail(c.Context, c.Args().First(), g, stylistID)
					if err != nil {
						return err
					}
					doc := export.NewDocument(detail, stylistID, svc.StylistName(stylistID), svc.Now(), svc.Location())
					path, err := scheduler.WriteDocument(c.String("out"), doc, format)
					if err != nil {
						return err
					}
					fmt.Fprintln(c.App.Writer, path)
					return nil
				},
			},
			{
				Name:  "close",
				Usage: "run the end-of-day close now",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "directory for the day's workbook"},
				},
				Action: func(c *cli.Context) error {
					path, err := scheduler.New(svc, "@daily", c.String("out"), nil).DailyClose(c.Context)
					if err != nil {
						return err
					}
					detail, err := svc.PeriodDetail(c.Context, svc.Today(), domain.GranularityDay, nil)
					if err != nil {
						return err
					}
					printSummary(c, detail.Summary, len(detail.Transactions))
					if path != "" {
						fmt.Fprintln(c.App.Writer, path)
					}
					return nil
				},
			},
		},
	}
}

func reportFilter(c *cli.Context) (domain.Granularity, *int64, error) {
	g, ok := domain.ParseGranularity(c.String("granularity"))
	if !ok {
		return "", nil, fmt.Errorf("unsupported granularity %q", c.String("granularity"))
	}
	if !c.IsSet("stylist") {
		return g, nil, nil
	}
	return g, ptr(c.Int64("stylist")), nil
}

func printSummary(c *cli.Context, s domain.PeriodSummary, transactions int) {
	fmt.Fprintf(c.App.Writer, "Ingresos: %s  Egresos: %s  Neto: %s\n", s.TotalSales.StringFixed(2), s.TotalExpenses.StringFixed(2), s.NetTotal.StringFixed(2))
	fmt.Fprintf(c.App.Writer, "Efectivo: %s  QR: %s  Transacciones: %d\n", s.CashTotal.StringFixed(2), s.QRTotal.StringFixed(2), transactions)
}

func printDetail(c *cli.Context, d domain.PeriodDetail, stylistName string, loc *time.Location) {
	fmt.Fprintf(c.App.Writer, "%s %s (%s)\n", d.Granularity.Label(), d.Period, stylistName)
	printSummary(c, d.Summary, len(d.Transactions))

	w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "\nHORA\tSERVICIOS\tPAGO\tTOTAL\n")
	for _, tx := range d.Transactions {
		names := make([]string, 0, len(tx.Items))
		for _, item := range tx.Items {
			names = append(names, fmt.Sprintf("%s (%s)", item.Service.Name, item.Stylist.Name))
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", tx.Timestamp.In(loc).Format("2006-01-02 15:04"), strings.Join(names, ", "), tx.PaymentMethod, tx.Total.StringFixed(2))
	}
	if len(d.Expenses) > 0 {
		fmt.Fprintf(w, "\nFECHA\tDESCRIPCIÓN\t\tMONTO\n")
		for _, exp := range d.Expenses {
			fmt.Fprintf(w, "%s\t%s\t\t%s\n", exp.Timestamp.In(loc).Format("2006-01-02 15:04"), exp.Description, exp.Amount.StringFixed(2))
		}
	}
	_ = w.Flush()
}

func printPayroll(c *cli.Context, r domain.PayrollReport, stylistName string) {
	status := "pendiente"
	if r.Paid {
		status = "pagado"
	}
	fmt.Fprintf(c.App.Writer, "%s %s..%s (%s)\n", stylistName, r.StartDate, r.EndDate, status)
	fmt.Fprintf(c.App.Writer, "Bruto: %s  Comisión: %s  Salón: %s\n", r.TotalGross.StringFixed(2), r.TotalCommission.StringFixed(2), r.SalonProfit.StringFixed(2))

	tiers := make([]string, 0, len(r.Breakdown))
	for tier := range r.Breakdown {
		tiers = append(tiers, tier)
	}
	sort.Strings(tiers)

	w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "TASA\tTOTAL\tCOMISIÓN\n")
	for _, tier := range tiers {
		bucket := r.Breakdown[tier]
		fmt.Fprintf(w, "%s\t%s\t%s\n", tier, bucket.Total.StringFixed(2), bucket.Commission.StringFixed(2))
	}
	_ = w.Flush()
}

func ptr(v int64) *int64 {
	return &v
}
