package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	domainErrors "github.com/polkiloo/flashrescue/internal/domain/errors"
	"github.com/polkiloo/flashrescue/internal/domain/model"
	"github.com/polkiloo/flashrescue/internal/domain/repository"
	"github.com/polkiloo/flashrescue/internal/pricing"
)

// DecayUseCase applies the price decay model to stored listings.
type DecayUseCase struct {
	listings repository.ListingRepository
	events   EventPublisher
	logger   *slog.Logger
	now      func() time.Time
}

// NewDecayUseCase constructs DecayUseCase.
func NewDecayUseCase(listings repository.ListingRepository, events EventPublisher, logger *slog.Logger) *DecayUseCase {
	return &DecayUseCase{listings: listings, events: events, logger: logger, now: time.Now}
}

// Candidates returns every listing stored as active.
func (u *DecayUseCase) Candidates(ctx context.Context) ([]model.Listing, error) {
	listings, err := u.listings.ListForDecay(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list decay candidates: %v", domainErrors.ErrPersistence, err)
	}
	return listings, nil
}

// Refresh recomputes the price of one listing and persists it when it changed.
// Writes are conditional on status = active: a listing claimed since the
// snapshot was taken is left untouched and reported as unchanged.
func (u *DecayUseCase) Refresh(ctx context.Context, listing model.Listing) (model.DecayOutcome, error) {
	result := pricing.Decay(listing, u.now())

	if result.Expired {
		ok, err := u.listings.Expire(ctx, listing.ID)
		if err != nil {
			return model.DecayUnchanged, fmt.Errorf("%w: expire listing %s: %v", domainErrors.ErrPersistence, listing.ID, err)
		}
		if !ok {
			return model.DecayUnchanged, nil
		}
		if result.Changed(listing) {
			u.publishPrice(ctx, listing.ID, result)
		}
		notify(ctx, u.events, u.logger, model.EventListingExpired, model.ListingExpired{ID: listing.ID})
		return model.DecayExpired, nil
	}

	if !result.Changed(listing) {
		return model.DecayUnchanged, nil
	}

	ok, err := u.listings.UpdatePrice(ctx, listing.ID, result.PricePerUnit, result.CurrentPrice)
	if err != nil {
		return model.DecayUnchanged, fmt.Errorf("%w: update price of %s: %v", domainErrors.ErrPersistence, listing.ID, err)
	}
	if !ok {
		return model.DecayUnchanged, nil
	}
	u.publishPrice(ctx, listing.ID, result)
	return model.DecayUpdated, nil
}

func (u *DecayUseCase) publishPrice(ctx context.Context, id string, result pricing.Result) {
	notify(ctx, u.events, u.logger, model.EventPriceUpdate, model.PriceUpdate{
		ID:           id,
		NewPrice:     result.CurrentPrice,
		NewUnitPrice: result.PricePerUnit,
	})
}
