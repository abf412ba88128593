package test

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/polkiloo/flashrescue/internal/domain/model"
)

var (
	rngMu sync.Mutex
	rng   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// RandomListings returns n active listings scattered around center.
// Coordinates deviate by at most spreadDeg degrees on each axis and categories
// are drawn from the supplied set.
func RandomListings(n int, center model.Location, spreadDeg float64, categories ...model.Category) []model.Listing {
	if len(categories) == 0 {
		categories = []model.Category{model.CategoryOther}
	}
	listings := make([]model.Listing, 0, n)
	for i := 0; i < n; i++ {
		listings = append(listings, model.Listing{
			ID:       fmt.Sprintf("rnd-%03d", i),
			Name:     fmt.Sprintf("item %d", i),
			Category: categories[randomIntn(len(categories))],
			Unit:     model.UnitItems,
			Quantity: float64(1 + randomIntn(20)),
			Status:   model.ListingStatusActive,
			Location: model.Location{
				Lat: center.Lat + (randomFloat()*2-1)*spreadDeg,
				Lng: center.Lng + (randomFloat()*2-1)*spreadDeg,
			},
		})
	}
	return listings
}

func randomIntn(n int) int {
	rngMu.Lock()
	defer rngMu.Unlock()
	return rng.Intn(n)
}

func randomFloat() float64 {
	rngMu.Lock()
	defer rngMu.Unlock()
	return rng.Float64()
}
