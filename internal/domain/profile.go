package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

var (
	// DefaultCostPerKmVariable applies when a driver never configured costs.
	DefaultCostPerKmVariable = decimal.RequireFromString("0.50")
	// DefaultTaxRate is the effective rate used for tax estimates.
	DefaultTaxRate = decimal.RequireFromString("0.115")
)

// CostProfile holds a driver's operating cost basis and tax rate.
// It is owned by the profile store; imports only read it.
type CostProfile struct {
	UserID            string
	CostPerKmVariable decimal.Decimal
	CostPerKmFixed    decimal.Decimal
	TaxRate           decimal.Decimal
	UpdatedAt         time.Time
}

// DefaultCostProfile returns the profile used when a driver has none stored.
func DefaultCostProfile(userID string) CostProfile {
	return CostProfile{
		UserID:            userID,
		CostPerKmVariable: DefaultCostPerKmVariable,
		CostPerKmFixed:    decimal.Zero,
		TaxRate:           DefaultTaxRate,
	}
}

// CostPerKm is the total cost attributed to each kilometre driven.
func (p CostProfile) CostPerKm() decimal.Decimal {
	return p.CostPerKmVariable.Add(p.CostPerKmFixed)
}
