package handlers

import (
	"context"

	"github.com/polkiloo/flashrescue/internal/domain/model"
	pkgAuth "github.com/polkiloo/flashrescue/internal/pkg/auth"
)

// ListingFacade covers listing lifecycle operations exposed via HTTP.
type ListingFacade interface {
	CreateListing(ctx context.Context, donor string, draft model.ListingDraft) (*model.Listing, error)
	Listing(ctx context.Context, id string) (*model.Listing, error)
	AvailableListings(ctx context.Context, category string) ([]model.Listing, error)
	DonorListings(ctx context.Context, donor string) ([]model.Listing, error)
	ClaimedListings(ctx context.Context, claimant string) ([]model.Listing, error)
	Clusters(ctx context.Context) ([]model.MissionCluster, error)
	ClaimListing(ctx context.Context, id, claimant string) (*model.ClaimResult, error)
	CollectListings(ctx context.Context, ids []string, collector string) (*model.CollectResult, error)
}

// UserFacade provides profile and stats operations.
type UserFacade interface {
	UpdateProfile(ctx context.Context, userID, name string, role model.Role) (*model.User, error)
	UserStats(ctx context.Context, userID string) (model.Stats, error)
}

// HealthFacade reports dependency health.
type HealthFacade interface {
	HealthCheck(ctx context.Context) error
}

// MarketFacade aggregates the full set of operations used across handlers.
type MarketFacade interface {
	ListingFacade
	UserFacade
	HealthFacade
	ParseToken(token string) (pkgAuth.Identity, error)
}
