package service

import (
	"github.com/vinih2/giropro-motoristas-v2-sub000/internal/domain"
	"github.com/vinih2/giropro-motoristas-v2-sub000/internal/finance"
)

// priceTrip attaches the owner and the profile's cost basis to t and derives
// its net profit, so netProfit = gross - distance * costPerKm always holds
// for stored trips.
func priceTrip(t domain.Trip, userID string, p domain.CostProfile) domain.Trip {
	t.UserID = userID
	t.CostPerKm = p.CostPerKm()
	t.NetProfit = finance.DailyProfit(t.GrossEarnings, t.DistanceKm, t.CostPerKm, t.DurationHours).NetProfit
	return t
}
