package repository

import (
	"context"
	"time"

	"github.com/polkiloo/flashrescue/internal/domain/model"
)

// ListingFilter narrows the public feed of available listings.
type ListingFilter struct {
	Category model.Category
	Now      time.Time
}

// ListingRepository persists listings. Every state-changing method is a
// conditional write guarded by status = active.
type ListingRepository interface {
	Create(ctx context.Context, listing *model.Listing) error
	GetByID(ctx context.Context, id string) (*model.Listing, error)
	// ListAvailable returns active listings with freeAt after filter.Now, newest first.
	ListAvailable(ctx context.Context, filter ListingFilter) ([]model.Listing, error)
	// ListActive returns active listings with freeAt after now in creation order.
	ListActive(ctx context.Context, now time.Time) ([]model.Listing, error)
	// ListForDecay returns every listing stored as active, including overdue ones.
	ListForDecay(ctx context.Context) ([]model.Listing, error)
	ListByDonor(ctx context.Context, donor string) ([]model.Listing, error)
	ListByClaimant(ctx context.Context, claimant string) ([]model.Listing, error)
	UpdatePrice(ctx context.Context, id string, pricePerUnit, currentPrice float64) (bool, error)
	Expire(ctx context.Context, id string) (bool, error)
	// Claim returns ErrNotFound for unknown ids and ErrInvalidState when the listing is not claimable.
	Claim(ctx context.Context, id, claimant, code string, at time.Time) (*model.Listing, error)
	// Collect transitions the still-available subset of ids and returns it.
	Collect(ctx context.Context, ids []string, collector string, at time.Time) ([]model.Listing, error)
}
