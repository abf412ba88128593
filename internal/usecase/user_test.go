package usecase

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/polkiloo/flashrescue/internal/domain/errors"
	"github.com/polkiloo/flashrescue/internal/domain/model"
	testhelpers "github.com/polkiloo/flashrescue/internal/test"
)

func TestUserUseCaseUpdateProfile(t *testing.T) {
	users := testhelpers.NewUserRepositoryStub()
	uc := NewUserUseCase(users)

	u, err := uc.UpdateProfile(context.Background(), "u1", "  Bakery Lane ", model.RoleDonor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Name != "Bakery Lane" || u.Role != model.RoleDonor {
		t.Fatalf("unexpected user %+v", u)
	}

	if _, err := uc.UpdateProfile(context.Background(), "u1", "", model.Role("admin")); !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUserUseCaseGet(t *testing.T) {
	users := testhelpers.NewUserRepositoryStub()
	_ = users.IncrementStats(context.Background(), "u1", model.Stats{Points: 10})
	uc := NewUserUseCase(users)

	u, err := uc.Get(context.Background(), "u1")
	if err != nil || u.Stats.Points != 10 {
		t.Fatalf("unexpected result %+v %v", u, err)
	}
	if _, err := uc.Get(context.Background(), "missing"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	users.Err = errors.New("boom")
	if _, err := uc.Get(context.Background(), "u1"); !errors.Is(err, domainErrors.ErrPersistence) {
		t.Fatalf("expected persistence error, got %v", err)
	}
}
