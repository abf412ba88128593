package model

// MissionCluster groups nearby active listings of one category for a bulk pickup run.
type MissionCluster struct {
	ID          string    `json:"id"`
	Center      Location  `json:"center"`
	Category    Category  `json:"category"`
	Items       []Listing `json:"items"`
	TotalWeight float64   `json:"totalWeight"`
	Stops       int       `json:"stops"`
}
