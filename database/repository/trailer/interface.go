package trailerRepo

import (
	"context"

	"github.com/bcart01v/beheardqueue-server/models"
)

// TrailerRepository is the read-only trailer directory. Trailers are mutated
// only by the external configuration dashboard.
type TrailerRepository interface {
	GetByID(ctx context.Context, trailerID string) (*models.Trailer, error)
}
