package dto

import (
	"time"

	"github.com/polkiloo/flashrescue/internal/domain/model"
)

// CreateListingRequest describes a donor's new listing payload.
type CreateListingRequest struct {
	Name              string          `json:"name"`
	Category          string          `json:"category"`
	Unit              string          `json:"unit"`
	Quantity          float64         `json:"quantity"`
	PricePerUnit      *float64        `json:"pricePerUnit"`
	InitialPrice      float64         `json:"initialPrice"`
	ExpiryWindowHours float64         `json:"expiryWindowHours"`
	FreeAt            *time.Time      `json:"freeAt"`
	Location          *model.Location `json:"location"`
	ImageURL          string          `json:"imageUrl"`
}

// Draft converts the request into a listing draft.
func (r CreateListingRequest) Draft() model.ListingDraft {
	return model.ListingDraft{
		Name:              r.Name,
		Category:          r.Category,
		Unit:              r.Unit,
		Quantity:          r.Quantity,
		PricePerUnit:      r.PricePerUnit,
		InitialPrice:      r.InitialPrice,
		ExpiryWindowHours: r.ExpiryWindowHours,
		FreeAt:            r.FreeAt,
		Location:          r.Location,
		ImageURL:          r.ImageURL,
	}
}

// ClaimImpact is the environmental effect reported to the claimant.
type ClaimImpact struct {
	CO2Saved float64 `json:"co2Saved"`
}

// ClaimResponse is returned after a successful claim.
type ClaimResponse struct {
	Message string        `json:"message"`
	Listing model.Listing `json:"listing"`
	OTP     string        `json:"otp"`
	Impact  ClaimImpact   `json:"impact"`
}

// CollectRequest lists listings an organization picks up in one run.
type CollectRequest struct {
	ListingIDs []string `json:"listingIds"`
}

// CollectResponse summarises a batch collection.
type CollectResponse struct {
	Message      string       `json:"message"`
	Count        int          `json:"count"`
	CollectedIDs []string     `json:"collectedIds"`
	Impact       model.Impact `json:"impact"`
}

// ErrorResponse carries a human readable failure reason.
type ErrorResponse struct {
	Message string `json:"message"`
}
