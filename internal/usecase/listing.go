package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/flashrescue/internal/domain/errors"
	"github.com/polkiloo/flashrescue/internal/domain/model"
	"github.com/polkiloo/flashrescue/internal/domain/repository"
)

// CategoryAll disables category filtering on the public feed.
const CategoryAll = "all"

// ListingUseCase owns the listing state machine: create, claim and collect.
type ListingUseCase struct {
	listings repository.ListingRepository
	impact   *ImpactUseCase
	missions *MissionUseCase
	events   EventPublisher
	logger   *slog.Logger

	now     func() time.Time
	newID   func() string
	newCode func() string
}

// NewListingUseCase constructs ListingUseCase.
func NewListingUseCase(
	listings repository.ListingRepository,
	impact *ImpactUseCase,
	missions *MissionUseCase,
	events EventPublisher,
	logger *slog.Logger,
) *ListingUseCase {
	return &ListingUseCase{
		listings: listings,
		impact:   impact,
		missions: missions,
		events:   events,
		logger:   logger,
		now:      time.Now,
		newID:    uuid.NewString,
		newCode:  pickupCode,
	}
}

// pickupCode draws a 4-digit code in [1000, 9999].
func pickupCode() string {
	return strconv.Itoa(1000 + rand.IntN(9000))
}

// Create validates a draft and stores it as a new active listing.
func (u *ListingUseCase) Create(ctx context.Context, donor string, draft model.ListingDraft) (*model.Listing, error) {
	listing, err := u.buildListing(donor, draft)
	if err != nil {
		return nil, err
	}

	if err := u.listings.Create(ctx, listing); err != nil {
		return nil, fmt.Errorf("%w: create listing: %v", domainErrors.ErrPersistence, err)
	}

	u.logger.Info("listing created",
		slog.String("listing", listing.ID),
		slog.String("donor", donor),
		slog.String("category", string(listing.Category)),
	)
	after := context.WithoutCancel(ctx)
	notify(after, u.events, u.logger, model.EventNewListing, model.NewListing{Listing: *listing})
	u.missions.Recompute(after)
	return listing, nil
}

func (u *ListingUseCase) buildListing(donor string, draft model.ListingDraft) (*model.Listing, error) {
	var missing []string

	name := strings.TrimSpace(draft.Name)
	if name == "" {
		missing = append(missing, "name")
	}
	if draft.Quantity <= 0 || math.IsNaN(draft.Quantity) || math.IsInf(draft.Quantity, 0) {
		missing = append(missing, "quantity")
	}
	unit, ok := model.ParseUnit(strings.TrimSpace(draft.Unit))
	if !ok {
		missing = append(missing, "unit")
	}
	if draft.Location == nil || !validCoordinates(*draft.Location) {
		missing = append(missing, "location")
	}
	category, ok := model.ParseCategory(strings.TrimSpace(draft.Category))
	if !ok {
		missing = append(missing, "category")
	}
	if draft.InitialPrice < 0 {
		missing = append(missing, "initialPrice")
	}
	if draft.PricePerUnit != nil && *draft.PricePerUnit < 0 {
		missing = append(missing, "pricePerUnit")
	}
	if draft.ExpiryWindowHours < 0 {
		missing = append(missing, "expiryWindowHours")
	}
	if donor == "" {
		missing = append(missing, "donor")
	}

	now := u.now().UTC()
	if draft.FreeAt != nil && !draft.FreeAt.After(now) {
		missing = append(missing, "freeAt")
	}
	if len(missing) > 0 {
		return nil, &domainErrors.ValidationError{Fields: missing}
	}

	window := draft.ExpiryWindowHours
	if window == 0 {
		window = model.DefaultExpiryWindowHours
	}
	freeAt := now.Add(time.Duration(window * float64(time.Hour)))
	if draft.FreeAt != nil {
		freeAt = draft.FreeAt.UTC()
	}

	unitPrice := math.Floor(draft.InitialPrice / draft.Quantity)
	if draft.PricePerUnit != nil {
		unitPrice = *draft.PricePerUnit
	}

	return &model.Listing{
		ID:                u.newID(),
		Name:              name,
		Category:          category,
		Unit:              unit,
		Quantity:          draft.Quantity,
		PricePerUnit:      unitPrice,
		InitialPrice:      draft.InitialPrice,
		CurrentPrice:      draft.InitialPrice,
		ExpiryWindowHours: window,
		FreeAt:            freeAt,
		CreatedAt:         now,
		Location:          *draft.Location,
		ImageURL:          strings.TrimSpace(draft.ImageURL),
		Status:            model.ListingStatusActive,
		Donor:             donor,
	}, nil
}

func validCoordinates(loc model.Location) bool {
	return loc.Lat >= -90 && loc.Lat <= 90 && loc.Lng >= -180 && loc.Lng <= 180 &&
		!math.IsNaN(loc.Lat) && !math.IsNaN(loc.Lng)
}

// Get returns a single listing regardless of status.
func (u *ListingUseCase) Get(ctx context.Context, id string) (*model.Listing, error) {
	listing, err := u.listings.GetByID(ctx, id)
	if err != nil {
		return nil, wrapRepositoryError("get listing", err)
	}
	return listing, nil
}

// Available returns the public feed: active, not yet expired, newest first.
func (u *ListingUseCase) Available(ctx context.Context, category string) ([]model.Listing, error) {
	filter := repository.ListingFilter{Now: u.now().UTC()}
	category = strings.TrimSpace(category)
	if category != "" && category != CategoryAll {
		c, ok := model.ParseCategory(category)
		if !ok {
			return nil, &domainErrors.ValidationError{Fields: []string{"category"}}
		}
		filter.Category = c
	}
	listings, err := u.listings.ListAvailable(ctx, filter)
	if err != nil {
		return nil, wrapRepositoryError("list available listings", err)
	}
	return listings, nil
}

// ByDonor returns every listing a donor published, in any status.
func (u *ListingUseCase) ByDonor(ctx context.Context, donor string) ([]model.Listing, error) {
	listings, err := u.listings.ListByDonor(ctx, donor)
	if err != nil {
		return nil, wrapRepositoryError("list donor listings", err)
	}
	return listings, nil
}

// ByClaimant returns claimed and collected listings of a user.
func (u *ListingUseCase) ByClaimant(ctx context.Context, claimant string) ([]model.Listing, error) {
	listings, err := u.listings.ListByClaimant(ctx, claimant)
	if err != nil {
		return nil, wrapRepositoryError("list claimed listings", err)
	}
	return listings, nil
}

// Claim moves an active listing to claimed. The repository write is conditional
// on status = active, so at most one concurrent claim succeeds.
func (u *ListingUseCase) Claim(ctx context.Context, id, claimant string) (*model.ClaimResult, error) {
	if strings.TrimSpace(id) == "" {
		return nil, &domainErrors.ValidationError{Fields: []string{"id"}}
	}

	code := u.newCode()
	listing, err := u.listings.Claim(ctx, id, claimant, code, u.now().UTC())
	if err != nil {
		return nil, wrapRepositoryError("claim listing", err)
	}

	u.logger.Info("listing claimed", slog.String("listing", listing.ID), slog.String("claimed_by", claimant))

	// Post-commit effects run detached from the caller's cancellation.
	after := context.WithoutCancel(ctx)
	impact := u.impact.ApplyClaim(after, *listing, claimant)
	notify(after, u.events, u.logger, model.EventListingClaimed, model.ListingClaimed{
		ID:        listing.ID,
		ClaimedBy: claimant,
		Donor:     listing.Donor,
	})
	u.missions.Recompute(after)

	return &model.ClaimResult{Listing: *listing, OTP: code, Impact: impact}, nil
}

// Collect transitions the still-active subset of ids to collected in one batch.
// Stale ids are skipped; ErrEmptyResult is returned when nothing was collectable.
func (u *ListingUseCase) Collect(ctx context.Context, ids []string, collector string) (*model.CollectResult, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return nil, &domainErrors.ValidationError{Fields: []string{"listingIds"}}
	}

	collected, err := u.listings.Collect(ctx, ids, collector, u.now().UTC())
	if err != nil {
		return nil, wrapRepositoryError("collect listings", err)
	}
	if len(collected) == 0 {
		return nil, domainErrors.ErrEmptyResult
	}

	result := &model.CollectResult{Listings: collected}
	u.logger.Info("listings collected",
		slog.Int("requested", len(ids)),
		slog.Int("collected", len(collected)),
		slog.String("collected_by", collector),
	)

	after := context.WithoutCancel(ctx)
	result.Impact = u.impact.ApplyCollect(after, collected, collector)
	notify(after, u.events, u.logger, model.EventListingsCollected, model.ListingsCollected{
		IDs:         result.IDs(),
		CollectedBy: collector,
	})
	u.missions.Recompute(after)

	return result, nil
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func wrapRepositoryError(op string, err error) error {
	switch {
	case errors.Is(err, domainErrors.ErrNotFound),
		errors.Is(err, domainErrors.ErrInvalidState),
		errors.Is(err, domainErrors.ErrValidation):
		return err
	default:
		return fmt.Errorf("%w: %s: %v", domainErrors.ErrPersistence, op, err)
	}
}
