package postgres

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/flashrescue/internal/domain/errors"
	"github.com/polkiloo/flashrescue/internal/domain/model"
	"github.com/polkiloo/flashrescue/internal/domain/repository"
)

type listingRepository struct {
	storage *Storage
}

const listingColumns = `id, name, category, unit, quantity, price_per_unit, initial_price, current_price,
                        expiry_window_hours, free_at, created_at, lat, lng, address, image_url,
                        status, donor, claimed_by, claim_code, claimed_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanListing(row rowScanner) (model.Listing, error) {
	var l model.Listing
	err := row.Scan(
		&l.ID, &l.Name, &l.Category, &l.Unit, &l.Quantity,
		&l.PricePerUnit, &l.InitialPrice, &l.CurrentPrice,
		&l.ExpiryWindowHours, &l.FreeAt, &l.CreatedAt,
		&l.Location.Lat, &l.Location.Lng, &l.Location.Address, &l.ImageURL,
		&l.Status, &l.Donor, &l.ClaimedBy, &l.ClaimCode, &l.ClaimedAt,
	)
	return l, err
}

func collectListings(rows pgx.Rows) ([]model.Listing, error) {
	defer rows.Close()

	result := make([]model.Listing, 0)
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *listingRepository) query(ctx context.Context, sql string, args ...any) ([]model.Listing, error) {
	rows, err := r.storage.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return collectListings(rows)
}

func (r *listingRepository) Create(ctx context.Context, l *model.Listing) error {
	const query = `INSERT INTO listings (` + listingColumns + `)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	_, err := r.storage.pool.Exec(ctx, query,
		l.ID, l.Name, l.Category, l.Unit, l.Quantity,
		l.PricePerUnit, l.InitialPrice, l.CurrentPrice,
		l.ExpiryWindowHours, l.FreeAt, l.CreatedAt,
		l.Location.Lat, l.Location.Lng, l.Location.Address, l.ImageURL,
		l.Status, l.Donor, l.ClaimedBy, l.ClaimCode, l.ClaimedAt,
	)
	return err
}

func (r *listingRepository) GetByID(ctx context.Context, id string) (*model.Listing, error) {
	const query = `SELECT ` + listingColumns + ` FROM listings WHERE id=$1`
	l, err := scanListing(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &l, nil
}

func (r *listingRepository) ListAvailable(ctx context.Context, filter repository.ListingFilter) ([]model.Listing, error) {
	const query = `SELECT ` + listingColumns + ` FROM listings
                   WHERE status='active' AND free_at > $1 AND ($2::text = '' OR category = $2)
                   ORDER BY created_at DESC, id`
	return r.query(ctx, query, filter.Now, string(filter.Category))
}

func (r *listingRepository) ListActive(ctx context.Context, now time.Time) ([]model.Listing, error) {
	const query = `SELECT ` + listingColumns + ` FROM listings
                   WHERE status='active' AND free_at > $1
                   ORDER BY created_at, id`
	return r.query(ctx, query, now)
}

func (r *listingRepository) ListForDecay(ctx context.Context) ([]model.Listing, error) {
	const query = `SELECT ` + listingColumns + ` FROM listings
                   WHERE status='active'
                   ORDER BY created_at, id`
	return r.query(ctx, query)
}

func (r *listingRepository) ListByDonor(ctx context.Context, donor string) ([]model.Listing, error) {
	const query = `SELECT ` + listingColumns + ` FROM listings
                   WHERE donor=$1
                   ORDER BY created_at DESC, id`
	return r.query(ctx, query, donor)
}

func (r *listingRepository) ListByClaimant(ctx context.Context, claimant string) ([]model.Listing, error) {
	const query = `SELECT ` + listingColumns + ` FROM listings
                   WHERE claimed_by=$1 AND status IN ('claimed', 'collected')
                   ORDER BY created_at DESC, id`
	return r.query(ctx, query, claimant)
}

func (r *listingRepository) UpdatePrice(ctx context.Context, id string, pricePerUnit, currentPrice float64) (bool, error) {
	const query = `UPDATE listings SET price_per_unit=$2, current_price=$3
                   WHERE id=$1 AND status='active'`
	tag, err := r.storage.pool.Exec(ctx, query, id, pricePerUnit, currentPrice)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *listingRepository) Expire(ctx context.Context, id string) (bool, error) {
	const query = `UPDATE listings SET status='expired', price_per_unit=0, current_price=0
                   WHERE id=$1 AND status='active'`
	tag, err := r.storage.pool.Exec(ctx, query, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *listingRepository) Claim(ctx context.Context, id, claimant, code string, at time.Time) (*model.Listing, error) {
	const claimQuery = `UPDATE listings SET status='claimed', claimed_by=$2, claim_code=$3, claimed_at=$4
                        WHERE id=$1 AND status='active' AND free_at > $4
                        RETURNING ` + listingColumns
	const existsQuery = `SELECT status FROM listings WHERE id=$1`

	var claimed model.Listing
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		l, err := scanListing(tx.QueryRow(ctx, claimQuery, id, claimant, code, at))
		if err == nil {
			claimed = l
			return nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return err
		}

		var status model.ListingStatus
		if err := tx.QueryRow(ctx, existsQuery, id).Scan(&status); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}
		return domainErrors.ErrInvalidState
	})
	if err != nil {
		return nil, err
	}
	return &claimed, nil
}

func (r *listingRepository) Collect(ctx context.Context, ids []string, collector string, at time.Time) ([]model.Listing, error) {
	const query = `UPDATE listings SET status='collected', claimed_by=$2, claimed_at=$3
                   WHERE id = ANY($1) AND status='active' AND free_at > $3
                   RETURNING ` + listingColumns
	collected, err := r.query(ctx, query, ids, collector, at)
	if err != nil {
		return nil, err
	}
	sortByRequest(collected, ids)
	return collected, nil
}

// sortByRequest orders listings as their ids appear in requested.
func sortByRequest(listings []model.Listing, requested []string) {
	pos := make(map[string]int, len(requested))
	for i, id := range requested {
		if _, ok := pos[id]; !ok {
			pos[id] = i
		}
	}
	sort.SliceStable(listings, func(i, j int) bool {
		return pos[listings[i].ID] < pos[listings[j].ID]
	})
}
