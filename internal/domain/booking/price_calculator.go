package booking

import (
	"wild-oasis-api/internal/domain/cabin"
)

// PriceCalculator derives the total stay price in whole currency units.
type PriceCalculator interface {
	CabinPrice(c *cabin.Cabin, stay StayRange) int64
}

// NightlyPriceCalculator prices a stay as nights × (regular price − discount).
type NightlyPriceCalculator struct{}

func NewNightlyPriceCalculator() *NightlyPriceCalculator {
	return &NightlyPriceCalculator{}
}

func (pc *NightlyPriceCalculator) CabinPrice(c *cabin.Cabin, stay StayRange) int64 {
	return int64(stay.Nights()) * c.NightlyRate()
}
