package usecase

import (
	"io"
	"log/slog"
	"time"

	"github.com/polkiloo/flashrescue/internal/domain/model"
	"github.com/polkiloo/flashrescue/internal/mission"
	testhelpers "github.com/polkiloo/flashrescue/internal/test"
)

var testNow = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

type listingFixture struct {
	uc     *ListingUseCase
	store  *testhelpers.ListingStore
	users  *testhelpers.UserRepositoryStub
	events *testhelpers.PublisherRecorder
}

func newListingFixture(listings ...model.Listing) listingFixture {
	store := testhelpers.NewListingStore(listings...)
	users := testhelpers.NewUserRepositoryStub()
	events := &testhelpers.PublisherRecorder{}
	logger := discardLogger()

	missions := NewMissionUseCase(store, mission.NewEngine(mission.DefaultRadiusKm), events, logger)
	missions.now = func() time.Time { return testNow }
	uc := NewListingUseCase(store, NewImpactUseCase(users, logger), missions, events, logger)
	uc.now = func() time.Time { return testNow }
	uc.newID = func() string { return "generated-id" }

	return listingFixture{uc: uc, store: store, users: users, events: events}
}

func activeListing(id, donor string, category model.Category, qty, price float64) model.Listing {
	return model.Listing{
		ID:                id,
		Name:              "item " + id,
		Category:          category,
		Unit:              model.UnitKilogram,
		Quantity:          qty,
		InitialPrice:      price,
		CurrentPrice:      price,
		PricePerUnit:      price / qty,
		ExpiryWindowHours: 4,
		CreatedAt:         testNow.Add(-time.Hour),
		FreeAt:            testNow.Add(3 * time.Hour),
		Location:          model.Location{Lat: 52.52, Lng: 13.405},
		Status:            model.ListingStatusActive,
		Donor:             donor,
	}
}

func eventTypes(events []model.Event) []model.EventType {
	out := make([]model.EventType, 0, len(events))
	for _, e := range events {
		out = append(out, e.Type)
	}
	return out
}
