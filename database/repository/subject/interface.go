package subjectRepo

import (
	"context"

	"github.com/bcart01v/beheardqueue-server/models"
)

// SubjectRepository is the read-only subject directory, used for labeling and
// notification targeting only.
type SubjectRepository interface {
	GetByID(ctx context.Context, subjectID string) (*models.Subject, error)
}
