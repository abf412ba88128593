package model

import "time"

// EventType names a broadcast event.
type EventType string

const (
	EventPriceUpdate       EventType = "priceUpdate"
	EventMissionUpdate     EventType = "missionUpdate"
	EventListingClaimed    EventType = "listingClaimed"
	EventListingsCollected EventType = "listingsCollected"
	EventNewListing        EventType = "newListing"
	EventListingExpired    EventType = "listingExpired"
)

// Event is the envelope pushed to subscribers.
type Event struct {
	Type    EventType `json:"type"`
	Payload any       `json:"payload"`
	At      time.Time `json:"at"`
}

type PriceUpdate struct {
	ID           string  `json:"id"`
	NewPrice     float64 `json:"newPrice"`
	NewUnitPrice float64 `json:"newUnitPrice"`
}

type MissionUpdate struct {
	Clusters []MissionCluster `json:"clusters"`
}

type ListingClaimed struct {
	ID        string `json:"id"`
	ClaimedBy string `json:"claimedBy"`
	Donor     string `json:"donor"`
}

type ListingsCollected struct {
	IDs         []string `json:"ids"`
	CollectedBy string   `json:"collectedBy"`
}

type NewListing struct {
	Listing Listing `json:"listing"`
}

type ListingExpired struct {
	ID string `json:"id"`
}
