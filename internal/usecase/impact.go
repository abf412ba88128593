package usecase

import (
	"context"
	"log/slog"
	"math"
	"sort"

	"github.com/polkiloo/flashrescue/internal/domain/model"
	"github.com/polkiloo/flashrescue/internal/domain/repository"
)

const (
	claimantPoints  = 10
	donorPoints     = 50
	collectorPoints = 10
)

var emissionFactors = map[model.Category]float64{
	model.CategoryProduce:     2.5,
	model.CategoryBakery:      2.5,
	model.CategoryPrepared:    2.5,
	model.CategoryCooked:      2.5,
	model.CategoryFurniture:   20,
	model.CategoryElectronics: 20,
	model.CategoryClothing:    5,
}

const defaultEmissionFactor = 0.5

// EstimateCO2 returns the CO2 avoided by rescuing l, rounded to one decimal.
func EstimateCO2(l model.Listing) float64 {
	factor, ok := emissionFactors[l.Category]
	if !ok {
		factor = defaultEmissionFactor
	}
	qty := l.Quantity
	if l.Unit == model.UnitGram || l.Unit == model.UnitMilliliter {
		qty /= 1000
	}
	return roundTenth(qty * factor)
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

// ImpactUseCase awards stats for completed transitions. Stats writes are a
// side channel: failures are logged and never undo the transition.
type ImpactUseCase struct {
	users  repository.UserRepository
	logger *slog.Logger
}

// NewImpactUseCase constructs ImpactUseCase.
func NewImpactUseCase(users repository.UserRepository, logger *slog.Logger) *ImpactUseCase {
	return &ImpactUseCase{users: users, logger: logger}
}

// ApplyClaim credits the claimant and the donor of a freshly claimed listing.
func (u *ImpactUseCase) ApplyClaim(ctx context.Context, l model.Listing, claimant string) model.Impact {
	co2 := EstimateCO2(l)

	u.increment(ctx, claimant, model.Stats{CO2Saved: co2, MealsSaved: 1, Points: claimantPoints})

	donor := model.Stats{CO2Saved: co2, MealsSaved: 1, Points: donorPoints}
	if l.CurrentPrice > 0 {
		donor.ItemsSold = 1
	} else {
		donor.ItemsDonated = 1
	}
	u.increment(ctx, l.Donor, donor)

	return model.Impact{CO2Saved: co2, MealsSaved: 1}
}

// ApplyCollect credits every donor once with its aggregated share, then the collector once.
func (u *ImpactUseCase) ApplyCollect(ctx context.Context, collected []model.Listing, collector string) model.Impact {
	if len(collected) == 0 {
		return model.Impact{}
	}

	perDonor := make(map[string]model.Stats)
	var total float64
	for _, l := range collected {
		co2 := EstimateCO2(l)
		total += co2
		perDonor[l.Donor] = perDonor[l.Donor].Add(model.Stats{CO2Saved: co2, MealsSaved: 1, Points: donorPoints})
	}
	total = roundTenth(total)

	donors := make([]string, 0, len(perDonor))
	for donor := range perDonor {
		donors = append(donors, donor)
	}
	sort.Strings(donors)
	for _, donor := range donors {
		delta := perDonor[donor]
		delta.CO2Saved = roundTenth(delta.CO2Saved)
		u.increment(ctx, donor, delta)
	}

	n := int64(len(collected))
	u.increment(ctx, collector, model.Stats{
		CO2Saved:       total,
		MealsSaved:     n,
		Points:         collectorPoints * n,
		FamiliesHelped: n,
	})

	return model.Impact{CO2Saved: total, MealsSaved: n}
}

func (u *ImpactUseCase) increment(ctx context.Context, userID string, delta model.Stats) {
	if userID == "" || delta.IsZero() {
		return
	}
	if err := u.users.IncrementStats(ctx, userID, delta); err != nil {
		u.logger.Error("stats update failed",
			slog.String("user", userID),
			slog.Int64("points", delta.Points),
			slog.String("error", err.Error()),
		)
	}
}
