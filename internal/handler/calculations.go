package handler

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/vinih2/giropro-motoristas-v2-sub000/internal/finance"
)

// DailyProfitRequest is the body of POST /calculations/daily-profit.
type DailyProfitRequest struct {
	GrossEarnings decimal.Decimal `json:"grossEarnings"`
	DistanceKm    decimal.Decimal `json:"distanceKm"`
	CostPerKm     decimal.Decimal `json:"costPerKm"`
	HoursWorked   decimal.Decimal `json:"hoursWorked"`
}

// DailyProfitResponse mirrors finance.ProfitSummary.
type DailyProfitResponse struct {
	NetProfit       decimal.Decimal `json:"netProfit"`
	EarningsPerHour decimal.Decimal `json:"earningsPerHour"`
	EarningsPerKm   decimal.Decimal `json:"earningsPerKm"`
}

// CostBreakdownRequest is the body of POST /calculations/cost-breakdown.
// commissionRate may be a fraction (0.25) or a percentage (25).
type CostBreakdownRequest struct {
	GrossEarnings     decimal.Decimal `json:"grossEarnings"`
	DistanceKm        decimal.Decimal `json:"distanceKm"`
	Efficiency        decimal.Decimal `json:"efficiency"`
	UnitPrice         decimal.Decimal `json:"unitPrice"`
	CommissionRate    decimal.Decimal `json:"commissionRate"`
	OtherCosts        decimal.Decimal `json:"otherCosts"`
	DepreciationPerKm decimal.Decimal `json:"depreciationPerKm"`
}

// CostBreakdownResponse mirrors finance.CostBreakdown.
type CostBreakdownResponse struct {
	EnergyCost       decimal.Decimal `json:"energyCost"`
	DepreciationCost decimal.Decimal `json:"depreciationCost"`
	CommissionRate   decimal.Decimal `json:"commissionRate"`
	CommissionCost   decimal.Decimal `json:"commissionCost"`
	OtherCosts       decimal.Decimal `json:"otherCosts"`
	TotalCost        decimal.Decimal `json:"totalCost"`
	NetProfit        decimal.Decimal `json:"netProfit"`
	ProfitPerKm      decimal.Decimal `json:"profitPerKm"`
}

// FuelComparisonRequest is the body of POST /calculations/fuel-comparison.
type FuelComparisonRequest struct {
	VehicleType string          `json:"vehicleType"`
	Efficiency  decimal.Decimal `json:"efficiency"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	DistanceKm  decimal.Decimal `json:"distanceKm"`
}

// FuelCost is one fuel's side of a comparison.
type FuelCost struct {
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	Efficiency decimal.Decimal `json:"efficiency"`
	CostPerKm  decimal.Decimal `json:"costPerKm"`
	TripCost   decimal.Decimal `json:"tripCost"`
}

// FuelComparisonResponse mirrors finance.FuelComparison. estimated is true
// when the alternate fuel was derived from the fixed price/efficiency ratios.
type FuelComparisonResponse struct {
	VehicleType string          `json:"vehicleType"`
	Primary     FuelCost        `json:"primary"`
	Alternate   *FuelCost       `json:"alternate,omitempty"`
	Recommended string          `json:"recommended"`
	CostPerKm   decimal.Decimal `json:"costPerKm"`
	TripCost    decimal.Decimal `json:"tripCost"`
	Estimated   bool            `json:"estimated"`
}

// PostDailyProfit handles POST /calculations/daily-profit.
func (s *Server) PostDailyProfit(w http.ResponseWriter, r *http.Request) {
	var body DailyProfitRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	got := finance.DailyProfit(body.GrossEarnings, body.DistanceKm, body.CostPerKm, body.HoursWorked)
	writeJSON(w, http.StatusOK, DailyProfitResponse{
		NetProfit:       got.NetProfit,
		EarningsPerHour: got.EarningsPerHour,
		EarningsPerKm:   got.EarningsPerKm,
	})
}

// PostCostBreakdown handles POST /calculations/cost-breakdown.
func (s *Server) PostCostBreakdown(w http.ResponseWriter, r *http.Request) {
	var body CostBreakdownRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	got := finance.FullCostBreakdown(finance.CostInputs{
		GrossEarnings:     body.GrossEarnings,
		DistanceKm:        body.DistanceKm,
		Efficiency:        body.Efficiency,
		UnitPrice:         body.UnitPrice,
		CommissionRate:    body.CommissionRate,
		OtherCosts:        body.OtherCosts,
		DepreciationPerKm: body.DepreciationPerKm,
	})
	writeJSON(w, http.StatusOK, CostBreakdownResponse{
		EnergyCost:       got.EnergyCost,
		DepreciationCost: got.DepreciationCost,
		CommissionRate:   got.CommissionRate,
		CommissionCost:   got.CommissionCost,
		OtherCosts:       got.OtherCosts,
		TotalCost:        got.TotalCost,
		NetProfit:        got.NetProfit,
		ProfitPerKm:      got.ProfitPerKm,
	})
}

// PostFuelComparison handles POST /calculations/fuel-comparison.
func (s *Server) PostFuelComparison(w http.ResponseWriter, r *http.Request) {
	var body FuelComparisonRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	vehicle, ok := finance.ParseVehicleType(body.VehicleType)
	if !ok {
		writeError(w, http.StatusUnprocessableEntity, "validation_error",
			"vehicleType must be one of gasoline, ethanol, flex, diesel, electric, hybrid")
		return
	}

	got := finance.CompareFuelCost(vehicle, body.Efficiency, body.UnitPrice, body.DistanceKm)
	resp := FuelComparisonResponse{
		VehicleType: string(got.Vehicle),
		Primary:     fuelCostToResponse(got.Primary),
		Recommended: string(got.Recommended),
		CostPerKm:   got.CostPerKm,
		TripCost:    got.TripCost,
		Estimated:   got.Estimated,
	}
	if got.Alternate != nil {
		alt := fuelCostToResponse(*got.Alternate)
		resp.Alternate = &alt
	}
	writeJSON(w, http.StatusOK, resp)
}

func fuelCostToResponse(c finance.FuelCost) FuelCost {
	return FuelCost{
		UnitPrice:  c.UnitPrice,
		Efficiency: c.Efficiency,
		CostPerKm:  c.CostPerKm,
		TripCost:   c.TripCost,
	}
}
