package model

import "time"

// ListingStatus describes the listing lifecycle.
type ListingStatus string

const (
	ListingStatusActive    ListingStatus = "active"
	ListingStatusClaimed   ListingStatus = "claimed"
	ListingStatusCollected ListingStatus = "collected"
	ListingStatusExpired   ListingStatus = "expired"
)

// Category is the closed set of goods categories a listing may belong to.
type Category string

const (
	CategoryProduce      Category = "produce"
	CategoryBakery       Category = "bakery"
	CategoryPrepared     Category = "prepared"
	CategoryCooked       Category = "cooked"
	CategoryPackaged     Category = "packaged"
	CategoryConstruction Category = "construction"
	CategoryFurniture    Category = "furniture"
	CategoryClothing     Category = "clothing"
	CategoryElectronics  Category = "electronics"
	CategoryMedical      Category = "medical"
	CategorySchool       Category = "school"
	CategoryHousehold    Category = "household"
	CategoryGeneral      Category = "general"
	CategoryOther        Category = "other"
)

var categories = map[Category]struct{}{
	CategoryProduce: {}, CategoryBakery: {}, CategoryPrepared: {}, CategoryCooked: {},
	CategoryPackaged: {}, CategoryConstruction: {}, CategoryFurniture: {}, CategoryClothing: {},
	CategoryElectronics: {}, CategoryMedical: {}, CategorySchool: {}, CategoryHousehold: {},
	CategoryGeneral: {}, CategoryOther: {},
}

// ParseCategory resolves raw input into a category. Empty input maps to CategoryOther.
func ParseCategory(raw string) (Category, bool) {
	if raw == "" {
		return CategoryOther, true
	}
	c := Category(raw)
	_, ok := categories[c]
	return c, ok
}

// Unit is the measurement unit of a listing quantity.
type Unit string

const (
	UnitKilogram   Unit = "kg"
	UnitGram       Unit = "g"
	UnitLiter      Unit = "l"
	UnitMilliliter Unit = "ml"
	UnitItems      Unit = "items"
	UnitBoxes      Unit = "boxes"
	UnitBags       Unit = "bags"
)

var units = map[Unit]struct{}{
	UnitKilogram: {}, UnitGram: {}, UnitLiter: {}, UnitMilliliter: {},
	UnitItems: {}, UnitBoxes: {}, UnitBags: {},
}

// ParseUnit resolves raw input into a known unit.
func ParseUnit(raw string) (Unit, bool) {
	u := Unit(raw)
	_, ok := units[u]
	return u, ok
}

// DefaultExpiryWindowHours is used when a donor omits the expiry window.
const DefaultExpiryWindowHours = 4

// Location is a pickup point.
type Location struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address,omitempty"`
}

// Listing is a perishable offer published by a donor.
type Listing struct {
	ID                string        `json:"id"`
	Name              string        `json:"name"`
	Category          Category      `json:"category"`
	Unit              Unit          `json:"unit"`
	Quantity          float64       `json:"quantity"`
	PricePerUnit      float64       `json:"pricePerUnit"`
	InitialPrice      float64       `json:"initialPrice"`
	CurrentPrice      float64       `json:"currentPrice"`
	ExpiryWindowHours float64       `json:"expiryWindowHours"`
	FreeAt            time.Time     `json:"freeAt"`
	CreatedAt         time.Time     `json:"createdAt"`
	Location          Location      `json:"location"`
	ImageURL          string        `json:"imageUrl,omitempty"`
	Status            ListingStatus `json:"status"`
	Donor             string        `json:"donor"`
	ClaimedBy         string        `json:"claimedBy,omitempty"`
	ClaimCode         string        `json:"claimCode,omitempty"`
	ClaimedAt         *time.Time    `json:"claimedAt,omitempty"`
}

// Available reports whether the listing can still be claimed or collected at now.
func (l Listing) Available(now time.Time) bool {
	return l.Status == ListingStatusActive && l.FreeAt.After(now)
}

// ListingDraft carries donor supplied attributes for a new listing.
type ListingDraft struct {
	Name              string
	Category          string
	Unit              string
	Quantity          float64
	PricePerUnit      *float64
	InitialPrice      float64
	ExpiryWindowHours float64
	FreeAt            *time.Time
	Location          *Location
	ImageURL          string
}

// Impact summarises the environmental effect of a transition.
type Impact struct {
	CO2Saved   float64 `json:"co2Saved"`
	MealsSaved int64   `json:"mealsSaved"`
}

// ClaimResult is returned by a successful claim.
type ClaimResult struct {
	Listing Listing
	OTP     string
	Impact  Impact
}

// CollectResult is returned by a successful batch collect.
type CollectResult struct {
	Listings []Listing
	Impact   Impact
}

// IDs lists identifiers of the collected listings.
func (r CollectResult) IDs() []string {
	ids := make([]string, 0, len(r.Listings))
	for _, l := range r.Listings {
		ids = append(ids, l.ID)
	}
	return ids
}

// DecayOutcome reports what a price refresh did to a listing.
type DecayOutcome int

const (
	DecayUnchanged DecayOutcome = iota
	DecayUpdated
	DecayExpired
)
