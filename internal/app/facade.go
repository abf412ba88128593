package app

import (
	"context"
	"errors"

	domainErrors "github.com/polkiloo/flashrescue/internal/domain/errors"
	"github.com/polkiloo/flashrescue/internal/domain/model"
	"github.com/polkiloo/flashrescue/internal/domain/repository"
	"github.com/polkiloo/flashrescue/internal/pkg/auth"
	"github.com/polkiloo/flashrescue/internal/usecase"
)

// MarketFacade exposes use cases to the HTTP layer and the decay scheduler.
type MarketFacade struct {
	listings *usecase.ListingUseCase
	missions *usecase.MissionUseCase
	decay    *usecase.DecayUseCase
	users    *usecase.UserUseCase
	health   repository.HealthChecker
	tokens   auth.Strategy
}

func NewMarketFacade(
	listings *usecase.ListingUseCase,
	missions *usecase.MissionUseCase,
	decay *usecase.DecayUseCase,
	users *usecase.UserUseCase,
	health repository.HealthChecker,
	tokens auth.Strategy,
) *MarketFacade {
	return &MarketFacade{
		listings: listings,
		missions: missions,
		decay:    decay,
		users:    users,
		health:   health,
		tokens:   tokens,
	}
}

func (f *MarketFacade) ParseToken(token string) (auth.Identity, error) {
	return f.tokens.ParseToken(token)
}

func (f *MarketFacade) CreateListing(ctx context.Context, donor string, draft model.ListingDraft) (*model.Listing, error) {
	return f.listings.Create(ctx, donor, draft)
}

func (f *MarketFacade) Listing(ctx context.Context, id string) (*model.Listing, error) {
	return f.listings.Get(ctx, id)
}

func (f *MarketFacade) AvailableListings(ctx context.Context, category string) ([]model.Listing, error) {
	return f.listings.Available(ctx, category)
}

func (f *MarketFacade) DonorListings(ctx context.Context, donor string) ([]model.Listing, error) {
	return f.listings.ByDonor(ctx, donor)
}

func (f *MarketFacade) ClaimedListings(ctx context.Context, claimant string) ([]model.Listing, error) {
	return f.listings.ByClaimant(ctx, claimant)
}

func (f *MarketFacade) Clusters(ctx context.Context) ([]model.MissionCluster, error) {
	return f.missions.Clusters(ctx)
}

func (f *MarketFacade) ClaimListing(ctx context.Context, id, claimant string) (*model.ClaimResult, error) {
	return f.listings.Claim(ctx, id, claimant)
}

func (f *MarketFacade) CollectListings(ctx context.Context, ids []string, collector string) (*model.CollectResult, error) {
	return f.listings.Collect(ctx, ids, collector)
}

func (f *MarketFacade) UpdateProfile(ctx context.Context, userID, name string, role model.Role) (*model.User, error) {
	return f.users.UpdateProfile(ctx, userID, name, role)
}

// UserStats returns zero stats for users that never earned anything.
func (f *MarketFacade) UserStats(ctx context.Context, userID string) (model.Stats, error) {
	user, err := f.users.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return model.Stats{}, nil
		}
		return model.Stats{}, err
	}
	return user.Stats, nil
}

func (f *MarketFacade) HealthCheck(ctx context.Context) error {
	return f.health.HealthCheck(ctx)
}

func (f *MarketFacade) DecayCandidates(ctx context.Context) ([]model.Listing, error) {
	return f.decay.Candidates(ctx)
}

func (f *MarketFacade) RefreshPrice(ctx context.Context, listing model.Listing) (model.DecayOutcome, error) {
	return f.decay.Refresh(ctx, listing)
}

func (f *MarketFacade) RecomputeMissions(ctx context.Context) {
	f.missions.Recompute(ctx)
}
