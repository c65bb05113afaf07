package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"salonpos/backend/internal/domain"
	"salonpos/backend/internal/xid"
)

// TicketLine is one service of a sale in progress. Stylist stays nil until
// someone is assigned.
type TicketLine struct {
	ID      string
	Service domain.Service
	Price   decimal.Decimal
	Stylist *domain.Stylist
}

// Ticket is the uncommitted set of lines that Finalize turns into a Transaction.
type Ticket struct {
	Lines []TicketLine
}

// Add appends a line priced at the catalog price and returns its id.
func (t *Ticket) Add(service domain.Service, stylist *domain.Stylist) string {
	line := TicketLine{
		ID:      xid.New(),
		Service: service,
		Price:   service.Price,
	}
	if stylist != nil {
		s := *stylist
		line.Stylist = &s
	}
	t.Lines = append(t.Lines, line)
	return line.ID
}

func (t *Ticket) Remove(lineID string) bool {
	for i, line := range t.Lines {
		if line.ID == lineID {
			t.Lines = append(t.Lines[:i], t.Lines[i+1:]...)
			return true
		}
	}
	return false
}

// SetPrice overrides the charged price of a line.
func (t *Ticket) SetPrice(lineID string, price decimal.Decimal) error {
	if price.IsNegative() {
		return ErrNegativePrice
	}
	line, err := t.line(lineID)
	if err != nil {
		return err
	}
	line.Price = domain.RoundMoney(price)
	return nil
}

func (t *Ticket) AssignStylist(lineID string, stylist domain.Stylist) error {
	line, err := t.line(lineID)
	if err != nil {
		return err
	}
	line.Stylist = &stylist
	return nil
}

func (t *Ticket) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range t.Lines {
		total = total.Add(line.Price)
	}
	return total
}

// Finalize validates the ticket and produces the immutable transaction.
func (t *Ticket) Finalize(method domain.PaymentMethod, now time.Time) (domain.Transaction, error) {
	if len(t.Lines) == 0 {
		return domain.Transaction{}, ErrEmptyTicket
	}
	if method != domain.PaymentCash && method != domain.PaymentQR {
		return domain.Transaction{}, fmt.Errorf("%w: unsupported payment method %q", ErrInvalid, method)
	}

	items := make([]domain.TransactionItem, 0, len(t.Lines))
	for _, line := range t.Lines {
		if line.Stylist == nil {
			return domain.Transaction{}, ErrMissingStylist
		}
		items = append(items, domain.TransactionItem{
			Service: line.Service,
			Price:   line.Price,
			Stylist: *line.Stylist,
		})
	}

	now = now.UTC()
	return domain.Transaction{
		ID:            xid.FromTime(now),
		Items:         items,
		PaymentMethod: method,
		Total:         t.Total(),
		Timestamp:     now,
	}, nil
}

func (t *Ticket) line(lineID string) (*TicketLine, error) {
	for i := range t.Lines {
		if t.Lines[i].ID == lineID {
			return &t.Lines[i], nil
		}
	}
	return nil, fmt.Errorf("%w: ticket line %s", ErrNotFound, lineID)
}
