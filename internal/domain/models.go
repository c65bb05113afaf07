package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Persisted documents carry money as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

const DateLayout = "2006-01-02"

type Service struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	Price          decimal.Decimal `json:"price"`
	CommissionRate decimal.Decimal `json:"commissionRate"`
}

type Stylist struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "Efectivo"
	PaymentQR   PaymentMethod = "QR"
)

// ParsePaymentMethod accepts the stored values as well as the English aliases.
func ParsePaymentMethod(raw string) (PaymentMethod, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "efectivo", "cash":
		return PaymentCash, true
	case "qr":
		return PaymentQR, true
	default:
		return "", false
	}
}

type TransactionItem struct {
	Service Service         `json:"service"`
	Price   decimal.Decimal `json:"price"`
	Stylist Stylist         `json:"stylist"`
}

type Transaction struct {
	ID            string            `json:"id"`
	Items         []TransactionItem `json:"items"`
	PaymentMethod PaymentMethod     `json:"paymentMethod"`
	Total         decimal.Decimal   `json:"total"`
	Timestamp     time.Time         `json:"timestamp"`
}

type Expense struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Timestamp   time.Time       `json:"timestamp"`
}

type Report struct {
	Date         string        `json:"date"`
	Transactions []Transaction `json:"transactions"`
	Expenses     []Expense     `json:"expenses"`
}

type PayrollRecord struct {
	StylistID int64  `json:"stylistId"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityMonth Granularity = "month"
	GranularityYear  Granularity = "year"
)

// ParseGranularity also accepts the Spanish labels (día, mes, año).
func ParseGranularity(raw string) (Granularity, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "day", "día", "dia":
		return GranularityDay, true
	case "month", "mes":
		return GranularityMonth, true
	case "year", "año", "ano":
		return GranularityYear, true
	default:
		return "", false
	}
}

// Layout is the time layout that renders a period key of this granularity.
func (g Granularity) Layout() string {
	switch g {
	case GranularityMonth:
		return "2006-01"
	case GranularityYear:
		return "2006"
	default:
		return DateLayout
	}
}

var (
	CommissionLow  = decimal.RequireFromString("0.3")
	CommissionHigh = decimal.RequireFromString("0.4")
)

// CommissionTiers lists the only rates a service may carry, lowest first.
func CommissionTiers() []decimal.Decimal {
	return []decimal.Decimal{CommissionLow, CommissionHigh}
}

func IsCommissionTier(rate decimal.Decimal) bool {
	return rate.Equal(CommissionLow) || rate.Equal(CommissionHigh)
}

// TierKey is the breakdown key of a commission rate ("0.3", "0.4").
func TierKey(rate decimal.Decimal) string {
	return rate.String()
}

// RoundMoney applies the two-decimal rounding used for every entered amount.
func RoundMoney(v decimal.Decimal) decimal.Decimal {
	return v.Round(2)
}

type PeriodTotal struct {
	Period string          `json:"period"`
	Total  decimal.Decimal `json:"total"`
}

type PeriodSummary struct {
	TotalSales    decimal.Decimal `json:"totalSales"`
	CashTotal     decimal.Decimal `json:"cashTotal"`
	QRTotal       decimal.Decimal `json:"qrTotal"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	NetTotal      decimal.Decimal `json:"netTotal"`
}

type PeriodDetail struct {
	Period       string        `json:"period"`
	Granularity  Granularity   `json:"granularity"`
	Transactions []Transaction `json:"transactions"`
	Expenses     []Expense     `json:"expenses"`
	Summary      PeriodSummary `json:"summary"`
}

type PayrollBucket struct {
	Total      decimal.Decimal `json:"total"`
	Commission decimal.Decimal `json:"commission"`
}

type PayrollLine struct {
	ServiceName string          `json:"serviceName"`
	Price       decimal.Decimal `json:"price"`
	Commission  decimal.Decimal `json:"commission"`
	Timestamp   time.Time       `json:"timestamp"`
}

type PayrollReport struct {
	StylistID       int64                    `json:"stylistId"`
	StartDate       string                   `json:"startDate"`
	EndDate         string                   `json:"endDate"`
	TotalGross      decimal.Decimal          `json:"totalGross"`
	TotalCommission decimal.Decimal          `json:"totalCommission"`
	SalonProfit     decimal.Decimal          `json:"salonProfit"`
	Breakdown       map[string]PayrollBucket `json:"breakdown"`
	Transactions    []PayrollLine            `json:"transactions"`
	Paid            bool                     `json:"paid"`
}

type ServiceRequest struct {
	Name           string          `json:"name"`
	Price          decimal.Decimal `json:"price"`
	CommissionRate decimal.Decimal `json:"commissionRate"`
}

type StylistRequest struct {
	Name string `json:"name"`
}

type CheckoutLine struct {
	ServiceID int64            `json:"serviceId"`
	StylistID int64            `json:"stylistId"`
	Price     *decimal.Decimal `json:"price,omitempty"`
}

type CheckoutRequest struct {
	PaymentMethod string         `json:"paymentMethod"`
	Lines         []CheckoutLine `json:"lines"`
}

type ExpenseRequest struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// Display names used when a report is not filtered or the stylist is gone.
const (
	AllStylistsName    = "Todos"
	UnknownStylistName = "Desconocido"
)

// Label is the Spanish name of the granularity shown on documents.
func (g Granularity) Label() string {
	switch g {
	case GranularityMonth:
		return "Mes"
	case GranularityYear:
		return "Año"
	default:
		return "Día"
	}
}
