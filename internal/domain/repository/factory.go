package repository

import "context"

// Factory describes access to different domain repositories.
type Factory interface {
	Listings() ListingRepository
	Users() UserRepository
}

// HealthChecker reports storage availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
