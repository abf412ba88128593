package test

import (
	"context"
	"sync"

	"github.com/polkiloo/flashrescue/internal/domain/model"
	pkgAuth "github.com/polkiloo/flashrescue/internal/pkg/auth"
)

// DecayFacadeStub records scheduler interactions.
type DecayFacadeStub struct {
	sync.Mutex

	Candidates    []model.Listing
	CandidatesErr error
	RefreshFn     func(context.Context, model.Listing) (model.DecayOutcome, error)

	Refreshed  []string
	Recomputes int
	Ticks      int
}

// DecayCandidates returns configured listings.
func (s *DecayFacadeStub) DecayCandidates(context.Context) ([]model.Listing, error) {
	s.Lock()
	defer s.Unlock()
	s.Ticks++
	if s.CandidatesErr != nil {
		return nil, s.CandidatesErr
	}
	return append([]model.Listing(nil), s.Candidates...), nil
}

// RefreshPrice records the listing and delegates to RefreshFn.
func (s *DecayFacadeStub) RefreshPrice(ctx context.Context, listing model.Listing) (model.DecayOutcome, error) {
	s.Lock()
	s.Refreshed = append(s.Refreshed, listing.ID)
	fn := s.RefreshFn
	s.Unlock()

	if fn != nil {
		return fn(ctx, listing)
	}
	return model.DecayUnchanged, nil
}

// RecomputeMissions counts recompute triggers.
func (s *DecayFacadeStub) RecomputeMissions(context.Context) {
	s.Lock()
	defer s.Unlock()
	s.Recomputes++
}

// TickCount returns the number of candidate fetches so far.
func (s *DecayFacadeStub) TickCount() int {
	s.Lock()
	defer s.Unlock()
	return s.Ticks
}

// ListingFacadeStub simulates listing facade interactions.
type ListingFacadeStub struct {
	CreateFn    func(context.Context, string, model.ListingDraft) (*model.Listing, error)
	GetFn       func(context.Context, string) (*model.Listing, error)
	AvailableFn func(context.Context, string) ([]model.Listing, error)
	DonorFn     func(context.Context, string) ([]model.Listing, error)
	ClaimedFn   func(context.Context, string) ([]model.Listing, error)
	ClustersFn  func(context.Context) ([]model.MissionCluster, error)
	ClaimFn     func(context.Context, string, string) (*model.ClaimResult, error)
	CollectFn   func(context.Context, []string, string) (*model.CollectResult, error)
}

// CreateListing delegates to override.
func (s *ListingFacadeStub) CreateListing(ctx context.Context, donor string, draft model.ListingDraft) (*model.Listing, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, donor, draft)
	}
	return &model.Listing{ID: "listing-1", Donor: donor, Name: draft.Name, Status: model.ListingStatusActive}, nil
}

// Listing delegates to override.
func (s *ListingFacadeStub) Listing(ctx context.Context, id string) (*model.Listing, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	return &model.Listing{ID: id, Status: model.ListingStatusActive}, nil
}

// AvailableListings delegates to override.
func (s *ListingFacadeStub) AvailableListings(ctx context.Context, category string) ([]model.Listing, error) {
	if s.AvailableFn != nil {
		return s.AvailableFn(ctx, category)
	}
	return []model.Listing{}, nil
}

// DonorListings delegates to override.
func (s *ListingFacadeStub) DonorListings(ctx context.Context, donor string) ([]model.Listing, error) {
	if s.DonorFn != nil {
		return s.DonorFn(ctx, donor)
	}
	return []model.Listing{}, nil
}

// ClaimedListings delegates to override.
func (s *ListingFacadeStub) ClaimedListings(ctx context.Context, claimant string) ([]model.Listing, error) {
	if s.ClaimedFn != nil {
		return s.ClaimedFn(ctx, claimant)
	}
	return []model.Listing{}, nil
}

// Clusters delegates to override.
func (s *ListingFacadeStub) Clusters(ctx context.Context) ([]model.MissionCluster, error) {
	if s.ClustersFn != nil {
		return s.ClustersFn(ctx)
	}
	return []model.MissionCluster{}, nil
}

// ClaimListing delegates to override.
func (s *ListingFacadeStub) ClaimListing(ctx context.Context, id, claimant string) (*model.ClaimResult, error) {
	if s.ClaimFn != nil {
		return s.ClaimFn(ctx, id, claimant)
	}
	return &model.ClaimResult{
		Listing: model.Listing{ID: id, Status: model.ListingStatusClaimed, ClaimedBy: claimant, ClaimCode: "1234"},
		OTP:     "1234",
	}, nil
}

// CollectListings delegates to override.
func (s *ListingFacadeStub) CollectListings(ctx context.Context, ids []string, collector string) (*model.CollectResult, error) {
	if s.CollectFn != nil {
		return s.CollectFn(ctx, ids, collector)
	}
	listings := make([]model.Listing, 0, len(ids))
	for _, id := range ids {
		listings = append(listings, model.Listing{ID: id, Status: model.ListingStatusCollected, ClaimedBy: collector})
	}
	return &model.CollectResult{Listings: listings}, nil
}

// UserFacadeStub simulates profile and stats interactions.
type UserFacadeStub struct {
	UpdateFn func(context.Context, string, string, model.Role) (*model.User, error)
	StatsFn  func(context.Context, string) (model.Stats, error)
}

// UpdateProfile delegates to override.
func (s *UserFacadeStub) UpdateProfile(ctx context.Context, userID, name string, role model.Role) (*model.User, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, userID, name, role)
	}
	return &model.User{ID: userID, Name: name, Role: role}, nil
}

// UserStats delegates to override.
func (s *UserFacadeStub) UserStats(ctx context.Context, userID string) (model.Stats, error) {
	if s.StatsFn != nil {
		return s.StatsFn(ctx, userID)
	}
	return model.Stats{}, nil
}

// HealthFacadeStub returns a fixed health check result.
type HealthFacadeStub struct {
	Err error
}

// HealthCheck returns configured error.
func (s HealthFacadeStub) HealthCheck(context.Context) error {
	return s.Err
}

// MarketFacadeStub combines listing, user, health and token stubs.
type MarketFacadeStub struct {
	*ListingFacadeStub
	*UserFacadeStub
	HealthFacadeStub
	TokenParserStub
}

// NewMarketFacadeStub returns a stub whose bearer token is treated as the caller's role.
func NewMarketFacadeStub() MarketFacadeStub {
	return MarketFacadeStub{
		ListingFacadeStub: &ListingFacadeStub{},
		UserFacadeStub:    &UserFacadeStub{},
		TokenParserStub: TokenParserStub{ParseFn: func(token string) (pkgAuth.Identity, error) {
			role := model.Role(token)
			if !role.Valid() {
				return pkgAuth.Identity{}, pkgAuth.ErrInvalidToken
			}
			return pkgAuth.Identity{UserID: token + "-1", Role: role}, nil
		}},
	}
}
