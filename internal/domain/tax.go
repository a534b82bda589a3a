package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaxEstimate is derived on request and never stored.
// Amount = GrossProfit * Rate.
type TaxEstimate struct {
	PeriodStart time.Time
	PeriodEnd   time.Time
	GrossProfit decimal.Decimal
	Rate        decimal.Decimal
	Amount      decimal.Decimal
}
