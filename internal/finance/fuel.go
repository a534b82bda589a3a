package finance

import "github.com/shopspring/decimal"

// VehicleType is the energy source a vehicle runs on.
type VehicleType string

const (
	VehicleGasoline VehicleType = "gasoline"
	VehicleEthanol  VehicleType = "ethanol"
	VehicleFlex     VehicleType = "flex"
	VehicleDiesel   VehicleType = "diesel"
	VehicleElectric VehicleType = "electric"
	VehicleHybrid   VehicleType = "hybrid"
)

// DualFuel reports whether the vehicle can run on an alternate fuel.
func (v VehicleType) DualFuel() bool {
	return v == VehicleFlex
}

// FuelRatios describe the alternate fuel relative to the primary one.
type FuelRatios struct {
	// Price is alternate price / primary price.
	Price decimal.Decimal
	// Efficiency is alternate km per unit / primary km per unit.
	Efficiency decimal.Decimal
}

// DefaultAlternateFuel is a fixed heuristic, not a measured value: ethanol
// assumed at 70% of the gasoline price and 70% of its km per litre.
// Comparisons made with it are estimates.
var DefaultAlternateFuel = FuelRatios{
	Price:      decimal.RequireFromString("0.70"),
	Efficiency: decimal.RequireFromString("0.70"),
}

// Fuel identifies which fuel a comparison recommends.
type Fuel string

const (
	FuelPrimary   Fuel = "primary"
	FuelAlternate Fuel = "alternate"
)

// FuelCost is the cost of one fuel for the compared distance.
type FuelCost struct {
	UnitPrice  decimal.Decimal
	Efficiency decimal.Decimal
	CostPerKm  decimal.Decimal
	TripCost   decimal.Decimal
}

// FuelComparison is the result of CompareFuelCost.
// Alternate is nil for single-fuel vehicles. CostPerKm and TripCost are those
// of the recommended fuel.
type FuelComparison struct {
	Vehicle     VehicleType
	Primary     FuelCost
	Alternate   *FuelCost
	Recommended Fuel
	CostPerKm   decimal.Decimal
	TripCost    decimal.Decimal
	Estimated   bool
}

// CompareFuelCost compares fuels using DefaultAlternateFuel.
func CompareFuelCost(vehicle VehicleType, efficiency, unitPrice, distanceKm decimal.Decimal) FuelComparison {
	return DefaultAlternateFuel.Compare(vehicle, efficiency, unitPrice, distanceKm)
}

// Compare computes the cost per km of the primary fuel and, for dual-fuel
// vehicles, of the alternate fuel derived from r. The cheaper one wins;
// ties keep the primary fuel.
func (r FuelRatios) Compare(vehicle VehicleType, efficiency, unitPrice, distanceKm decimal.Decimal) FuelComparison {
	primary := fuelCost(unitPrice, efficiency, distanceKm)
	out := FuelComparison{
		Vehicle:     vehicle,
		Primary:     primary,
		Recommended: FuelPrimary,
		CostPerKm:   primary.CostPerKm,
		TripCost:    primary.TripCost,
	}
	if !vehicle.DualFuel() {
		return out
	}

	alt := fuelCost(unitPrice.Mul(r.Price), efficiency.Mul(r.Efficiency), distanceKm)
	out.Alternate = &alt
	out.Estimated = true
	if alt.CostPerKm.LessThan(primary.CostPerKm) {
		out.Recommended = FuelAlternate
		out.CostPerKm = alt.CostPerKm
		out.TripCost = alt.TripCost
	}
	return out
}

func fuelCost(price, efficiency, distanceKm decimal.Decimal) FuelCost {
	perKm := CostPerDistance(price, efficiency)
	return FuelCost{
		UnitPrice:  price,
		Efficiency: efficiency,
		CostPerKm:  perKm,
		TripCost:   perKm.Mul(distanceKm),
	}
}

// ParseVehicleType accepts the lower-case names of the VehicleType constants.
func ParseVehicleType(s string) (VehicleType, bool) {
	switch v := VehicleType(s); v {
	case VehicleGasoline, VehicleEthanol, VehicleFlex, VehicleDiesel, VehicleElectric, VehicleHybrid:
		return v, true
	}
	return "", false
}
