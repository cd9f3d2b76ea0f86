package stallRepo

import (
	"context"

	"github.com/bcart01v/beheardqueue-server/models"
)

// StallRepository is the stall directory: read-only lookup plus the single
// status write the appointment lifecycle performs.
type StallRepository interface {
	GetByID(ctx context.Context, stallID string) (*models.Stall, error)
	ListByTrailer(ctx context.Context, trailerID string) ([]models.Stall, error)
	UpdateStatus(ctx context.Context, stallID string, status models.StallStatus) error
}
