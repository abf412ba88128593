// Package pricing implements the linear price decay model for active listings.
package pricing

import (
	"math"
	"time"

	"github.com/polkiloo/flashrescue/internal/domain/model"
)

// Result is the recomputed price state of a listing.
type Result struct {
	PricePerUnit float64
	CurrentPrice float64
	Expired      bool
}

// Changed reports whether the result differs from the listing's stored prices.
func (r Result) Changed(l model.Listing) bool {
	return r.PricePerUnit != l.PricePerUnit || r.CurrentPrice != l.CurrentPrice
}

// Decay computes the price of l at now. The unit price decays linearly from
// initialPrice/quantity at createdAt to zero at freeAt, floored to whole units.
func Decay(l model.Listing, now time.Time) Result {
	window := l.FreeAt.Sub(l.CreatedAt)
	elapsed := now.Sub(l.CreatedAt)
	if window <= 0 || elapsed >= window {
		return Result{Expired: true}
	}
	if elapsed < 0 {
		elapsed = 0
	}
	if l.Quantity <= 0 || l.InitialPrice <= 0 {
		return Result{}
	}

	factor := 1 - float64(elapsed)/float64(window)
	unit := math.Floor((l.InitialPrice / l.Quantity) * factor)
	if unit < 0 {
		unit = 0
	}
	return Result{
		PricePerUnit: unit,
		CurrentPrice: unit * l.Quantity,
	}
}
