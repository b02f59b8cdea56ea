package ports

import (
	"context"

	"fuel-route-service/internal/domain"
)

// Port: the append-only trip history store. The core only writes completed
// optimizations; reads serve the history and statistics queries.
type TripRepository interface {
	// Save appends one completed optimization snapshot.
	Save(ctx context.Context, rec *domain.TripRecord) error
	// List returns up to limit records, newest first.
	List(ctx context.Context, limit int) ([]*domain.TripRecord, error)
	// Stats aggregates the whole store.
	Stats(ctx context.Context) (domain.TripStats, error)
}
