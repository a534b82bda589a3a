// Package finance holds the pure profit, cost and tax formulas shared by
// imports, manual trip entry and the calculation endpoints.
//
// All values are decimal.Decimal, so NaN and infinities cannot occur. A zero
// divisor resolves to zero; no function here returns an error or panics.
package finance

import (
	"github.com/shopspring/decimal"

	"github.com/vinih2/giropro-motoristas-v2-sub000/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// safeDiv returns a/b, or zero when b is zero.
func safeDiv(a, b decimal.Decimal) decimal.Decimal {
	if b.IsZero() {
		return decimal.Zero
	}
	return a.Div(b)
}

// CostPerDistance returns priceBasis / efficiencyBasis, e.g. fuel price per
// litre over km per litre. A non-positive efficiency yields zero.
func CostPerDistance(priceBasis, efficiencyBasis decimal.Decimal) decimal.Decimal {
	if efficiencyBasis.Sign() <= 0 {
		return decimal.Zero
	}
	return priceBasis.Div(efficiencyBasis)
}

// ProfitSummary is the result of DailyProfit.
type ProfitSummary struct {
	NetProfit       decimal.Decimal
	EarningsPerHour decimal.Decimal
	EarningsPerKm   decimal.Decimal
}

// DailyProfit computes net profit and earning rates for a trip or a day.
// Rates over zero hours or zero distance are zero.
func DailyProfit(grossEarnings, distanceKm, costPerKm, hoursWorked decimal.Decimal) ProfitSummary {
	return ProfitSummary{
		NetProfit:       grossEarnings.Sub(costPerKm.Mul(distanceKm)),
		EarningsPerHour: safeDiv(grossEarnings, hoursWorked),
		EarningsPerKm:   safeDiv(grossEarnings, distanceKm),
	}
}

// NormalizeCommission turns a commission given either as a fraction (0.25)
// or a percentage (25) into a fraction. Values above 1 are percentages;
// exactly 1 is taken as a fraction, i.e. 100%.
func NormalizeCommission(rate decimal.Decimal) decimal.Decimal {
	if rate.GreaterThan(decimal.NewFromInt(1)) {
		return rate.Div(hundred)
	}
	return rate
}

// CostInputs are the inputs of FullCostBreakdown.
// Efficiency is distance per unit of energy (km/l, km/kWh); UnitPrice is the
// price of one unit of that energy.
type CostInputs struct {
	GrossEarnings     decimal.Decimal
	DistanceKm        decimal.Decimal
	Efficiency        decimal.Decimal
	UnitPrice         decimal.Decimal
	CommissionRate    decimal.Decimal
	OtherCosts        decimal.Decimal
	DepreciationPerKm decimal.Decimal
}

// CostBreakdown itemises every cost of a trip or a day.
type CostBreakdown struct {
	EnergyCost       decimal.Decimal
	DepreciationCost decimal.Decimal
	CommissionRate   decimal.Decimal
	CommissionCost   decimal.Decimal
	OtherCosts       decimal.Decimal
	TotalCost        decimal.Decimal
	NetProfit        decimal.Decimal
	ProfitPerKm      decimal.Decimal
}

// FullCostBreakdown computes energy, depreciation and commission costs and
// the resulting net profit.
func FullCostBreakdown(in CostInputs) CostBreakdown {
	var energy decimal.Decimal
	if in.Efficiency.Sign() > 0 {
		energy = in.DistanceKm.Div(in.Efficiency).Mul(in.UnitPrice)
	}
	depreciation := in.DepreciationPerKm.Mul(in.DistanceKm)
	rate := NormalizeCommission(in.CommissionRate)
	commission := in.GrossEarnings.Mul(rate)

	total := energy.Add(depreciation).Add(in.OtherCosts).Add(commission)
	net := in.GrossEarnings.Sub(total)

	return CostBreakdown{
		EnergyCost:       energy,
		DepreciationCost: depreciation,
		CommissionRate:   rate,
		CommissionCost:   commission,
		OtherCosts:       in.OtherCosts,
		TotalCost:        total,
		NetProfit:        net,
		ProfitPerKm:      safeDiv(net, in.DistanceKm),
	}
}

// TaxEstimate returns grossProfit * rate. A non-positive rate means the
// caller has no override and DefaultTaxRate applies.
func TaxEstimate(grossProfit, rate decimal.Decimal) decimal.Decimal {
	if rate.Sign() <= 0 {
		rate = domain.DefaultTaxRate
	}
	return grossProfit.Mul(rate)
}
