// Package mission groups active listings into collection missions.
package mission

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/polkiloo/flashrescue/internal/domain/model"
	"github.com/polkiloo/flashrescue/internal/geo"
)

// DefaultRadiusKm is the maximum anchor distance for mission members.
const DefaultRadiusKm = 2.0

const idPrefix = "mission-"

var missionNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("flashrescue/missions"))

// Engine builds mission clusters from a snapshot of active listings.
type Engine struct {
	radiusKm float64
}

// NewEngine constructs an Engine. Non-positive radius falls back to DefaultRadiusKm.
func NewEngine(radiusKm float64) *Engine {
	if radiusKm <= 0 {
		radiusKm = DefaultRadiusKm
	}
	return &Engine{radiusKm: radiusKm}
}

// RadiusKm returns the configured anchor radius.
func (e *Engine) RadiusKm() float64 {
	return e.radiusKm
}

// Build partitions listings greedily in input order. Each cluster is anchored at
// its first unassigned listing and only compares candidates against that anchor.
// Clusters with fewer than two members are dropped. The input slice is not modified.
func (e *Engine) Build(listings []model.Listing) []model.MissionCluster {
	assigned := make([]bool, len(listings))
	clusters := make([]model.MissionCluster, 0)

	for i, anchor := range listings {
		if assigned[i] {
			continue
		}
		assigned[i] = true
		members := []int{i}

		for j := i + 1; j < len(listings); j++ {
			if assigned[j] {
				continue
			}
			candidate := listings[j]
			if !geo.SameCategory(anchor, candidate) {
				continue
			}
			if geo.DistanceKm(anchor.Location, candidate.Location) <= e.radiusKm {
				assigned[j] = true
				members = append(members, j)
			}
		}

		if len(members) < 2 {
			continue
		}
		clusters = append(clusters, newCluster(listings, members))
	}

	return clusters
}

func newCluster(listings []model.Listing, members []int) model.MissionCluster {
	anchor := listings[members[0]]
	items := make([]model.Listing, 0, len(members))
	var weight float64
	for _, idx := range members {
		items = append(items, listings[idx])
		weight += listings[idx].Quantity
	}
	return model.MissionCluster{
		ID:          ClusterID(items),
		Center:      anchor.Location,
		Category:    anchor.Category,
		Items:       items,
		TotalWeight: weight,
		Stops:       len(items),
	}
}

// ClusterID derives a stable identifier from the sorted member ids, so the same
// membership always yields the same mission id across recomputations.
func ClusterID(items []model.Listing) string {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	sort.Strings(ids)
	return idPrefix + uuid.NewSHA1(missionNamespace, []byte(strings.Join(ids, ","))).String()
}
