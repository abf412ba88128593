package model

import "time"

// Role determines which marketplace actions a user may perform.
type Role string

const (
	RoleDonor        Role = "donor"
	RoleConsumer     Role = "consumer"
	RoleOrganization Role = "organization"
)

// Valid reports whether the role is known.
func (r Role) Valid() bool {
	switch r {
	case RoleDonor, RoleConsumer, RoleOrganization:
		return true
	}
	return false
}

// Stats holds gamification counters. Values only ever grow.
type Stats struct {
	CO2Saved       float64 `json:"co2Saved"`
	MealsSaved     int64   `json:"mealsSaved"`
	Points         int64   `json:"points"`
	ItemsSold      int64   `json:"itemsSold"`
	ItemsDonated   int64   `json:"itemsDonated"`
	FamiliesHelped int64   `json:"familiesHelped"`
}

// Add returns the field-wise sum of two stats values.
func (s Stats) Add(o Stats) Stats {
	return Stats{
		CO2Saved:       s.CO2Saved + o.CO2Saved,
		MealsSaved:     s.MealsSaved + o.MealsSaved,
		Points:         s.Points + o.Points,
		ItemsSold:      s.ItemsSold + o.ItemsSold,
		ItemsDonated:   s.ItemsDonated + o.ItemsDonated,
		FamiliesHelped: s.FamiliesHelped + o.FamiliesHelped,
	}
}

// IsZero reports whether applying the stats as a delta would change nothing.
func (s Stats) IsZero() bool {
	return s == Stats{}
}

// User describes a marketplace participant.
type User struct {
	ID        string
	Name      string
	Role      Role
	Stats     Stats
	CreatedAt time.Time
}
