package export

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"

	"salonpos/backend/internal/domain"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
	FormatHTML Format = "html"
)

func ParseFormat(raw string) (Format, bool) {
	switch f := Format(strings.ToLower(strings.TrimSpace(raw))); f {
	case FormatCSV, FormatPDF, FormatXLSX, FormatHTML:
		return f, true
	default:
		return "", false
	}
}

func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatPDF:
		return "application/pdf"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "text/html; charset=utf-8"
	}
}

// Document is a period report ready to be rendered.
type Document struct {
	Title       string
	StylistID   *int64
	StylistName string
	Period      string
	Granularity domain.Granularity
	GeneratedAt time.Time
	Location    *time.Location
	Detail      domain.PeriodDetail
}

// NewDocument builds the report for detail. A nil stylistID means the whole
// salon.
func NewDocument(detail domain.PeriodDetail, stylistID *int64, stylistName string, generatedAt time.Time, loc *time.Location) Document {
	if loc == nil {
		loc = time.UTC
	}
	return Document{
		Title:       "Reporte de " + detail.Granularity.Label(),
		StylistID:   stylistID,
		StylistName: stylistName,
		Period:      detail.Period,
		Granularity: detail.Granularity,
		GeneratedAt: generatedAt,
		Location:    loc,
		Detail:      detail,
	}
}

// AllStylists reports whether the document covers the whole salon, which is
// when expenses are listed.
func (d Document) AllStylists() bool {
	return d.StylistID == nil
}

// FileName is Reporte-<granularity>-<stylist>-<period>.<ext>. Anything in the
// stylist name other than letters, digits and dashes becomes an underscore.
func FileName(d Document, f Format) string {
	return fmt.Sprintf("Reporte-%s-%s-%s.%s", d.Granularity.Label(), fileSafe(d.StylistName), fileSafe(d.Period), f)
}

func fileSafe(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' {
			return r
		}
		return '_'
	}, strings.TrimSpace(s))
}

func Render(w io.Writer, d Document, f Format) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, d)
	case FormatPDF:
		return WritePDF(w, d)
	case FormatXLSX:
		return WriteXLSX(w, d)
	case FormatHTML:
		return WriteHTML(w, d)
	default:
		return fmt.Errorf("unsupported export format %q", f)
	}
}

func money(v decimal.Decimal) string {
	return "Bs " + v.StringFixed(2)
}

// txTime omits the date on day reports, where it is implied by the period.
func (d Document) txTime(ts time.Time) string {
	local := ts.In(d.Location)
	if d.Granularity == domain.GranularityDay {
		return local.Format("15:04")
	}
	return local.Format("02/01 15:04")
}

func (d Document) expenseTime(ts time.Time) string {
	return ts.In(d.Location).Format("02/01 15:04")
}

// itemLabels names each sold service, with its stylist on whole-salon reports.
func (d Document) itemLabels(tx domain.Transaction) []string {
	labels := make([]string, 0, len(tx.Items))
	for _, item := range tx.Items {
		if d.AllStylists() {
			labels = append(labels, fmt.Sprintf("%s (%s)", item.Service.Name, item.Stylist.Name))
		} else {
			labels = append(labels, item.Service.Name)
		}
	}
	return labels
}
