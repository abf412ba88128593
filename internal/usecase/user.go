package usecase

import (
	"context"
	"errors"
	"strings"

	domainErrors "github.com/polkiloo/flashrescue/internal/domain/errors"
	"github.com/polkiloo/flashrescue/internal/domain/model"
	"github.com/polkiloo/flashrescue/internal/domain/repository"
)

// UserUseCase manages participant profiles and reads their stats.
type UserUseCase struct {
	users repository.UserRepository
}

// NewUserUseCase constructs UserUseCase.
func NewUserUseCase(users repository.UserRepository) *UserUseCase {
	return &UserUseCase{users: users}
}

// UpdateProfile registers or renames a user. The role comes from the caller's identity.
func (u *UserUseCase) UpdateProfile(ctx context.Context, id, name string, role model.Role) (*model.User, error) {
	name = strings.TrimSpace(name)
	var invalid []string
	if id == "" {
		invalid = append(invalid, "id")
	}
	if name == "" {
		invalid = append(invalid, "name")
	}
	if !role.Valid() {
		invalid = append(invalid, "role")
	}
	if len(invalid) > 0 {
		return nil, &domainErrors.ValidationError{Fields: invalid}
	}

	user, err := u.users.UpsertProfile(ctx, id, name, role)
	if err != nil {
		return nil, wrapRepositoryError("upsert profile", err)
	}
	return user, nil
}

// Get returns a user with stats. Unknown users yield ErrNotFound.
func (u *UserUseCase) Get(ctx context.Context, id string) (*model.User, error) {
	user, err := u.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, wrapRepositoryError("get user", err)
	}
	return user, nil
}
