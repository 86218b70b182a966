package domain

import (
	"math"
	"time"
)

// Pricing holds venue-wide token surcharges.
type Pricing struct {
	EquipmentSurchargeTokens int
}

func DefaultPricing() Pricing {
	return Pricing{EquipmentSurchargeTokens: DefaultEquipmentTokens}
}

// Cost is what a booking of room over [start,end) debits from source.
// Token bookings pay per started hour plus the equipment surcharge. Package
// balances pay PackageUnitsPerBooking regardless of duration.
func (p Pricing) Cost(room *Room, source BalanceField, start, end time.Time, equipment bool) int {
	if source != BalanceTokens {
		return PackageUnitsPerBooking
	}

	hours := int(math.Ceil(end.Sub(start).Hours()))
	cost := hours * room.Prices.TokenHourly
	if equipment {
		cost += p.EquipmentSurchargeTokens
	}
	return cost
}
