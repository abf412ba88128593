package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/flashrescue/internal/domain/errors"
	"github.com/polkiloo/flashrescue/internal/domain/model"
)

type userRepository struct {
	storage *Storage
}

const userColumns = `id, name, role, co2_saved, meals_saved, points, items_sold, items_donated, families_helped, created_at`

func scanUser(row rowScanner) (*model.User, error) {
	var u model.User
	err := row.Scan(
		&u.ID, &u.Name, &u.Role,
		&u.Stats.CO2Saved, &u.Stats.MealsSaved, &u.Stats.Points,
		&u.Stats.ItemsSold, &u.Stats.ItemsDonated, &u.Stats.FamiliesHelped,
		&u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) UpsertProfile(ctx context.Context, id, name string, role model.Role) (*model.User, error) {
	const query = `INSERT INTO users (id, name, role) VALUES ($1, $2, $3)
                   ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, role = EXCLUDED.role
                   RETURNING ` + userColumns
	return scanUser(r.storage.pool.QueryRow(ctx, query, id, name, role))
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	u, err := scanUser(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

// IncrementStats applies delta in one statement so concurrent awards to the same user never lose updates.
func (r *userRepository) IncrementStats(ctx context.Context, id string, delta model.Stats) error {
	const query = `INSERT INTO users (id, co2_saved, meals_saved, points, items_sold, items_donated, families_helped)
                   VALUES ($1, $2, $3, $4, $5, $6, $7)
                   ON CONFLICT (id) DO UPDATE SET
                       co2_saved = users.co2_saved + EXCLUDED.co2_saved,
                       meals_saved = users.meals_saved + EXCLUDED.meals_saved,
                       points = users.points + EXCLUDED.points,
                       items_sold = users.items_sold + EXCLUDED.items_sold,
                       items_donated = users.items_donated + EXCLUDED.items_donated,
                       families_helped = users.families_helped + EXCLUDED.families_helped`
	_, err := r.storage.pool.Exec(ctx, query, id,
		delta.CO2Saved, delta.MealsSaved, delta.Points,
		delta.ItemsSold, delta.ItemsDonated, delta.FamiliesHelped,
	)
	return err
}
