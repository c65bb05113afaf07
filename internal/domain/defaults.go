package domain

import "github.com/shopspring/decimal"

// DefaultServices is the catalog used when none has been stored yet.
func DefaultServices() []Service {
	return []Service{
		{ID: 1, Name: "Corte de Dama", Price: decimal.NewFromInt(250), CommissionRate: CommissionLow},
		{ID: 2, Name: "Corte de Caballero", Price: decimal.NewFromInt(150), CommissionRate: CommissionLow},
		{ID: 3, Name: "Tinte Completo", Price: decimal.NewFromInt(800), CommissionRate: CommissionHigh},
		{ID: 4, Name: "Mechas", Price: decimal.NewFromInt(1200), CommissionRate: CommissionHigh},
		{ID: 5, Name: "Peinado", Price: decimal.NewFromInt(300), CommissionRate: CommissionLow},
		{ID: 6, Name: "Manicura", Price: decimal.NewFromInt(200), CommissionRate: CommissionLow},
		{ID: 7, Name: "Pedicura", Price: decimal.NewFromInt(250), CommissionRate: CommissionLow},
		{ID: 8, Name: "Tratamiento Capilar", Price: decimal.NewFromInt(500), CommissionRate: CommissionHigh},
	}
}

func DefaultStylists() []Stylist {
	return []Stylist{
		{ID: 1, Name: "Ana"},
		{ID: 2, Name: "Carlos"},
		{ID: 3, Name: "Sofía"},
		{ID: 4, Name: "Javier"},
	}
}
