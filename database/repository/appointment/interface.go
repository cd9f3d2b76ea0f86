package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/bcart01v/beheardqueue-server/models"
)

// TransientError marks a store failure that is safe to retry. Callers owning a
// retry policy test for it with errors.As; everything else is terminal.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("transient store error: %v", e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }

// AppointmentRepository defines the data access methods used by the scheduling
// engine. WithTransaction is the single atomicity primitive: every method
// called inside fn observes and mutates store state as one unit, committed only
// if fn returns nil.
type AppointmentRepository interface {
	// WithTransaction runs fn inside one store transaction. fn receives the
	// context all repository calls within the transaction must use.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// BumpScheduleVersion writes the shared per-(stall, date) schedule
	// document. Every transaction that books into a contention domain calls
	// it so concurrent transactions on the same domain produce a write
	// conflict and exactly one commits.
	BumpScheduleVersion(ctx context.Context, stallID, date string) error

	Insert(ctx context.Context, appt *models.Appointment) error
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	Update(ctx context.Context, appt *models.Appointment) error
	Delete(ctx context.Context, id string) error

	// ListByStallAndDate returns all non-cancelled appointments for the
	// (stall, date) contention domain.
	ListByStallAndDate(ctx context.Context, stallID, date string) ([]models.Appointment, error)
	// ListScheduledBySubjectAndDate returns a subject's scheduled appointments
	// on one date, for the batch check-in.
	ListScheduledBySubjectAndDate(ctx context.Context, subjectID, date string) ([]models.Appointment, error)
	// UpdateStatusMany sets the status of every listed appointment in one write.
	UpdateStatusMany(ctx context.Context, ids []string, status models.AppointmentStatus, updatedAt time.Time) error

	// ListSweepCandidates returns appointments that are terminal or whose
	// date/end-time is strictly before now.
	ListSweepCandidates(ctx context.Context, now time.Time) ([]models.Appointment, error)
	// InsertHistory persists an archived copy of a terminated appointment.
	InsertHistory(ctx context.Context, rec *models.HistoricalAppointment) error
}
