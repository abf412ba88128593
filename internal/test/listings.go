package test

import (
	"context"
	"sort"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/flashrescue/internal/domain/errors"
	"github.com/polkiloo/flashrescue/internal/domain/model"
	"github.com/polkiloo/flashrescue/internal/domain/repository"
)

// ListingStore is an in-memory listing repository with the same conditional
// write semantics as the PostgreSQL implementation.
type ListingStore struct {
	mu    sync.Mutex
	items map[string]model.Listing
	order []string
	Err   error

	// UpdateErr fails price and expiry writes for specific listing ids.
	UpdateErr map[string]error
}

// NewListingStore seeds a store with listings in creation order.
func NewListingStore(listings ...model.Listing) *ListingStore {
	s := &ListingStore{items: make(map[string]model.Listing)}
	for _, l := range listings {
		s.put(l)
	}
	return s
}

func (s *ListingStore) put(l model.Listing) {
	if s.items == nil {
		s.items = make(map[string]model.Listing)
	}
	if _, ok := s.items[l.ID]; !ok {
		s.order = append(s.order, l.ID)
	}
	s.items[l.ID] = l
}

// Snapshot returns the stored copy of a listing.
func (s *ListingStore) Snapshot(id string) (model.Listing, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.items[id]
	return l, ok
}

func (s *ListingStore) Create(ctx context.Context, listing *model.Listing) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.put(*listing)
	return nil
}

func (s *ListingStore) GetByID(ctx context.Context, id string) (*model.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	l, ok := s.items[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &l, nil
}

func (s *ListingStore) ListAvailable(ctx context.Context, filter repository.ListingFilter) ([]model.Listing, error) {
	out, err := s.filter(func(l model.Listing) bool {
		return l.Available(filter.Now) && (filter.Category == "" || l.Category == filter.Category)
	})
	newestFirst(out)
	return out, err
}

func (s *ListingStore) ListActive(ctx context.Context, now time.Time) ([]model.Listing, error) {
	return s.filter(func(l model.Listing) bool { return l.Available(now) })
}

func (s *ListingStore) ListForDecay(ctx context.Context) ([]model.Listing, error) {
	return s.filter(func(l model.Listing) bool { return l.Status == model.ListingStatusActive })
}

func (s *ListingStore) ListByDonor(ctx context.Context, donor string) ([]model.Listing, error) {
	out, err := s.filter(func(l model.Listing) bool { return l.Donor == donor })
	newestFirst(out)
	return out, err
}

func (s *ListingStore) ListByClaimant(ctx context.Context, claimant string) ([]model.Listing, error) {
	out, err := s.filter(func(l model.Listing) bool {
		return l.ClaimedBy == claimant &&
			(l.Status == model.ListingStatusClaimed || l.Status == model.ListingStatusCollected)
	})
	newestFirst(out)
	return out, err
}

func (s *ListingStore) UpdatePrice(ctx context.Context, id string, pricePerUnit, currentPrice float64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.updateErr(id); err != nil {
		return false, err
	}
	l, ok := s.items[id]
	if !ok || l.Status != model.ListingStatusActive {
		return false, nil
	}
	l.PricePerUnit = pricePerUnit
	l.CurrentPrice = currentPrice
	s.items[id] = l
	return true, nil
}

func (s *ListingStore) Expire(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.updateErr(id); err != nil {
		return false, err
	}
	l, ok := s.items[id]
	if !ok || l.Status != model.ListingStatusActive {
		return false, nil
	}
	l.Status = model.ListingStatusExpired
	l.PricePerUnit = 0
	l.CurrentPrice = 0
	s.items[id] = l
	return true, nil
}

func (s *ListingStore) Claim(ctx context.Context, id, claimant, code string, at time.Time) (*model.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	l, ok := s.items[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if !l.Available(at) {
		return nil, domainErrors.ErrInvalidState
	}
	l.Status = model.ListingStatusClaimed
	l.ClaimedBy = claimant
	l.ClaimCode = code
	claimedAt := at
	l.ClaimedAt = &claimedAt
	s.items[id] = l
	return &l, nil
}

func (s *ListingStore) Collect(ctx context.Context, ids []string, collector string, at time.Time) ([]model.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var out []model.Listing
	for _, id := range ids {
		l, ok := s.items[id]
		if !ok || !l.Available(at) {
			continue
		}
		l.Status = model.ListingStatusCollected
		l.ClaimedBy = collector
		claimedAt := at
		l.ClaimedAt = &claimedAt
		s.items[id] = l
		out = append(out, l)
	}
	return out, nil
}

func (s *ListingStore) filter(keep func(model.Listing) bool) ([]model.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]model.Listing, 0, len(s.order))
	for _, id := range s.order {
		if l := s.items[id]; keep(l) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *ListingStore) updateErr(id string) error {
	if s.Err != nil {
		return s.Err
	}
	return s.UpdateErr[id]
}

func newestFirst(listings []model.Listing) {
	sort.SliceStable(listings, func(i, j int) bool {
		return listings[i].CreatedAt.After(listings[j].CreatedAt)
	})
}

var _ repository.ListingRepository = (*ListingStore)(nil)
