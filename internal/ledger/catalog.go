package ledger

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"salonpos/backend/internal/domain"
)

type Catalog struct {
	Services []domain.Service
	Stylists []domain.Stylist
}

// CatalogChange is one settings edit. The set of implementations is closed.
type CatalogChange interface {
	isCatalogChange()
}

type AddService struct {
	Name           string
	Price          decimal.Decimal
	CommissionRate decimal.Decimal
}

type EditService struct {
	ID             int64
	Name           string
	Price          decimal.Decimal
	CommissionRate decimal.Decimal
}

type DeleteService struct {
	ID int64
}

type AddStylist struct {
	Name string
}

type EditStylist struct {
	ID   int64
	Name string
}

type DeleteStylist struct {
	ID int64
}

func (AddService) isCatalogChange()    {}
func (EditService) isCatalogChange()   {}
func (DeleteService) isCatalogChange() {}
func (AddStylist) isCatalogChange()    {}
func (EditStylist) isCatalogChange()   {}
func (DeleteStylist) isCatalogChange() {}

// ApplyCatalogChange returns a new catalog with change applied. New entries
// get max(idSeed, highest id + 1) so ids stay unique even when the clock
// seed repeats.
func ApplyCatalogChange(c Catalog, change CatalogChange, idSeed int64) (Catalog, error) {
	out := Catalog{
		Services: append([]domain.Service(nil), c.Services...),
		Stylists: append([]domain.Stylist(nil), c.Stylists...),
	}

	switch ch := change.(type) {
	case AddService:
		svc, err := validService(ch.Name, ch.Price, ch.CommissionRate)
		if err != nil {
			return c, err
		}
		svc.ID = nextID(idSeed, serviceIDs(out.Services))
		out.Services = append(out.Services, svc)
	case EditService:
		svc, err := validService(ch.Name, ch.Price, ch.CommissionRate)
		if err != nil {
			return c, err
		}
		idx := indexOfService(out.Services, ch.ID)
		if idx < 0 {
			return c, fmt.Errorf("%w: service %d", ErrNotFound, ch.ID)
		}
		svc.ID = ch.ID
		out.Services[idx] = svc
	case DeleteService:
		idx := indexOfService(out.Services, ch.ID)
		if idx < 0 {
			return c, fmt.Errorf("%w: service %d", ErrNotFound, ch.ID)
		}
		out.Services = append(out.Services[:idx], out.Services[idx+1:]...)
	case AddStylist:
		name := strings.TrimSpace(ch.Name)
		if name == "" {
			return c, ErrEmptyName
		}
		ids := make([]int64, 0, len(out.Stylists))
		for _, s := range out.Stylists {
			ids = append(ids, s.ID)
		}
		out.Stylists = append(out.Stylists, domain.Stylist{ID: nextID(idSeed, ids), Name: name})
	case EditStylist:
		name := strings.TrimSpace(ch.Name)
		if name == "" {
			return c, ErrEmptyName
		}
		idx := indexOfStylist(out.Stylists, ch.ID)
		if idx < 0 {
			return c, fmt.Errorf("%w: stylist %d", ErrNotFound, ch.ID)
		}
		out.Stylists[idx].Name = name
	case DeleteStylist:
		idx := indexOfStylist(out.Stylists, ch.ID)
		if idx < 0 {
			return c, fmt.Errorf("%w: stylist %d", ErrNotFound, ch.ID)
		}
		out.Stylists = append(out.Stylists[:idx], out.Stylists[idx+1:]...)
	default:
		panic(fmt.Sprintf("ledger: unhandled catalog change %T", change))
	}

	return out, nil
}

func FindService(services []domain.Service, id int64) (domain.Service, bool) {
	if idx := indexOfService(services, id); idx >= 0 {
		return services[idx], true
	}
	return domain.Service{}, false
}

func FindStylist(stylists []domain.Stylist, id int64) (domain.Stylist, bool) {
	if idx := indexOfStylist(stylists, id); idx >= 0 {
		return stylists[idx], true
	}
	return domain.Stylist{}, false
}

func validService(name string, price decimal.Decimal, rate decimal.Decimal) (domain.Service, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Service{}, ErrEmptyName
	}
	if price.IsNegative() {
		return domain.Service{}, ErrNegativePrice
	}
	if !domain.IsCommissionTier(rate) {
		return domain.Service{}, ErrCommissionTier
	}
	return domain.Service{Name: name, Price: domain.RoundMoney(price), CommissionRate: rate}, nil
}

func nextID(seed int64, existing []int64) int64 {
	next := seed
	for _, id := range existing {
		if id >= next {
			next = id + 1
		}
	}
	return next
}

func serviceIDs(services []domain.Service) []int64 {
	ids := make([]int64, 0, len(services))
	for _, s := range services {
		ids = append(ids, s.ID)
	}
	return ids
}

func indexOfService(services []domain.Service, id int64) int {
	for i := range services {
		if services[i].ID == id {
			return i
		}
	}
	return -1
}

func indexOfStylist(stylists []domain.Stylist, id int64) int {
	for i := range stylists {
		if stylists[i].ID == id {
			return i
		}
	}
	return -1
}
