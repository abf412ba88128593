package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/polkiloo/flashrescue/internal/domain/model"
	testhelpers "github.com/polkiloo/flashrescue/internal/test"
)

func TestEstimateCO2(t *testing.T) {
	cases := []struct {
		name     string
		category model.Category
		unit     model.Unit
		qty      float64
		want     float64
	}{
		{"produce kg", model.CategoryProduce, model.UnitKilogram, 4, 10},
		{"cooked grams", model.CategoryCooked, model.UnitGram, 500, 1.3},
		{"furniture items", model.CategoryFurniture, model.UnitItems, 2, 40},
		{"electronics", model.CategoryElectronics, model.UnitItems, 1, 20},
		{"clothing bags", model.CategoryClothing, model.UnitBags, 3, 15},
		{"packaged default", model.CategoryPackaged, model.UnitBoxes, 3, 1.5},
		{"medical millilitres", model.CategoryMedical, model.UnitMilliliter, 250, 0.1},
		{"litres are raw", model.CategoryPrepared, model.UnitLiter, 2, 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := EstimateCO2(model.Listing{Category: tc.category, Unit: tc.unit, Quantity: tc.qty})
			if got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestImpactUseCaseApplyClaimDonated(t *testing.T) {
	users := testhelpers.NewUserRepositoryStub()
	uc := NewImpactUseCase(users, discardLogger())

	l := model.Listing{Category: model.CategoryBakery, Unit: model.UnitItems, Quantity: 2, CurrentPrice: 0, Donor: "donor-1"}
	impact := uc.ApplyClaim(context.Background(), l, "consumer-1")

	if impact != (model.Impact{CO2Saved: 5, MealsSaved: 1}) {
		t.Fatalf("unexpected impact %+v", impact)
	}
	donor := users.StatsOf("donor-1")
	if donor.ItemsDonated != 1 || donor.ItemsSold != 0 || donor.Points != 50 {
		t.Fatalf("expected donation to be counted, got %+v", donor)
	}
}

func TestImpactUseCaseApplyCollectAggregatesPerDonor(t *testing.T) {
	users := testhelpers.NewUserRepositoryStub()
	uc := NewImpactUseCase(users, discardLogger())

	collected := []model.Listing{
		{ID: "1", Donor: "zoe", Category: model.CategoryProduce, Unit: model.UnitKilogram, Quantity: 1},
		{ID: "2", Donor: "adam", Category: model.CategoryProduce, Unit: model.UnitKilogram, Quantity: 2},
		{ID: "3", Donor: "zoe", Category: model.CategoryClothing, Unit: model.UnitItems, Quantity: 1},
	}
	impact := uc.ApplyCollect(context.Background(), collected, "org")
	if impact != (model.Impact{CO2Saved: 12.5, MealsSaved: 3}) {
		t.Fatalf("unexpected impact %+v", impact)
	}

	if len(users.Increments) != 3 {
		t.Fatalf("expected one increment per donor plus collector, got %d", len(users.Increments))
	}
	order := []string{users.Increments[0].UserID, users.Increments[1].UserID, users.Increments[2].UserID}
	if order[0] != "adam" || order[1] != "zoe" || order[2] != "org" {
		t.Fatalf("unexpected increment order %v", order)
	}
	if zoe := users.StatsOf("zoe"); zoe.Points != 100 || zoe.CO2Saved != 7.5 || zoe.MealsSaved != 2 {
		t.Fatalf("unexpected aggregated donor stats %+v", zoe)
	}
	if adam := users.StatsOf("adam"); adam.MealsSaved != 1 {
		t.Fatalf("expected one meal per collected listing for adam, got %+v", adam)
	}
	if org := users.StatsOf("org"); org.Points != 30 || org.FamiliesHelped != 3 || org.MealsSaved != 3 {
		t.Fatalf("unexpected collector stats %+v", org)
	}
}

func TestImpactUseCaseIsolatesFailures(t *testing.T) {
	users := testhelpers.NewUserRepositoryStub()
	users.IncrementErr = map[string]error{"adam": errors.New("conflict")}
	uc := NewImpactUseCase(users, discardLogger())

	collected := []model.Listing{
		{ID: "1", Donor: "adam", Category: model.CategoryProduce, Unit: model.UnitKilogram, Quantity: 1},
		{ID: "2", Donor: "zoe", Category: model.CategoryProduce, Unit: model.UnitKilogram, Quantity: 1},
	}
	uc.ApplyCollect(context.Background(), collected, "org")

	if users.StatsOf("zoe").Points != 50 || users.StatsOf("org").Points != 20 {
		t.Fatal("a failing donor must not block the remaining increments")
	}
	if got := uc.ApplyCollect(context.Background(), nil, "org"); got != (model.Impact{}) {
		t.Fatalf("expected zero impact for empty batch, got %+v", got)
	}
}
