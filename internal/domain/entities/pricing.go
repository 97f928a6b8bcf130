package entities

import (
	"time"

	apperrors "github.com/voyago/travel-agency-backend/pkg/errors"
)

// DefaultNightlyRateUSD is charged when the catalog has no nightly rate for a
// destination. Reserving at zero cost would corrupt the revenue figures, so a
// missing rate falls back to this documented default instead.
const DefaultNightlyRateUSD = 100.0

// Quote is the price breakdown of a stay.
type Quote struct {
	Nights        int     `json:"nights"`
	PricePerNight float64 `json:"price_per_night"`
	TotalAmount   float64 `json:"total_amount"`
}

// ComputePrice derives the total price of a stay from a destination's nightly
// rate and the stay's duration. Nights are whole calendar days; there is no
// partial-day proration. The function is pure: no I/O, no clock.
func ComputePrice(nightlyRate float64, checkIn, checkOut time.Time) (Quote, error) {
	if !checkOut.After(checkIn) {
		return Quote{}, apperrors.NewValidationError("checkout must follow checkin")
	}
	if nightlyRate < 0 {
		return Quote{}, apperrors.NewValidationError("nightly rate must not be negative")
	}
	if nightlyRate == 0 {
		nightlyRate = DefaultNightlyRateUSD
	}

	nights := int(checkOut.Sub(checkIn) / (24 * time.Hour))

	return Quote{
		Nights:        nights,
		PricePerNight: nightlyRate,
		TotalAmount:   nightlyRate * float64(nights),
	}, nil
}
