package draft

// Base-price thresholds per mode. Creation demands a strictly positive base
// price while edits of historical data tolerate zero. Kept as two separate
// named policies; the discrepancy is product policy under review.
const (
	// CreateBasePriceExclusiveMin: a new product's base price must be
	// strictly greater than this.
	CreateBasePriceExclusiveMin = 0.0
	// EditBasePriceInclusiveMin: an edited product's base price must be at
	// least this, so zero-priced historical records remain saveable.
	EditBasePriceInclusiveMin = 0.0
)

func validBasePrice(mode Mode, price float64) bool {
	if mode == ModeCreate {
		return price > CreateBasePriceExclusiveMin
	}
	return price >= EditBasePriceInclusiveMin
}
