package scheduling

import (
	"context"
	"errors"
	"time"

	appointmentRepo "github.com/bcart01v/beheardqueue-server/database/repository/appointment"
	stallRepo "github.com/bcart01v/beheardqueue-server/database/repository/stall"
	subjectRepo "github.com/bcart01v/beheardqueue-server/database/repository/subject"
	trailerRepo "github.com/bcart01v/beheardqueue-server/database/repository/trailer"
	"github.com/bcart01v/beheardqueue-server/models"
	"github.com/bcart01v/beheardqueue-server/services/notification"
	"github.com/bcart01v/beheardqueue-server/utils"

	"go.uber.org/zap"
)

// SchedulingService is the appointment scheduling engine's API surface.
type SchedulingService interface {
	// GenerateSlots produces the ordered bookable start times for one date.
	GenerateSlots(hours models.OperatingHours, date string) ([]string, error)
	// AvailableSlots returns the conflict-free slots for a stall on a date,
	// filtered against now when the date is the current day.
	AvailableSlots(ctx context.Context, stallID, date string, now time.Time) ([]models.TimeSlot, error)
	// Book atomically verifies and reserves a slot for a subject.
	Book(ctx context.Context, subjectID, stallID, date, startTime string) (*models.Appointment, error)
	// Transition drives an appointment through its status lifecycle.
	Transition(ctx context.Context, appointmentID string, target models.AppointmentStatus) (*models.Appointment, error)
	// Reassign moves an appointment to a different stall and start time.
	Reassign(ctx context.Context, appointmentID, destStallID, destStart string) (*models.Appointment, error)
	// SweepArchive migrates terminal and past-dated appointments to history.
	SweepArchive(ctx context.Context, now time.Time) (models.SweepResult, error)
	// GetAppointment fetches one live appointment.
	GetAppointment(ctx context.Context, appointmentID string) (*models.Appointment, error)
}

// DefaultSchedulingService is the production implementation.
type DefaultSchedulingService struct {
	Appointments appointmentRepo.AppointmentRepository
	Stalls       stallRepo.StallRepository
	Trailers     trailerRepo.TrailerRepository
	Subjects     subjectRepo.SubjectRepository
	Notifier     notification.NotificationService
}

const maxTxnRetries = 3

// runTxn executes fn as one store transaction, retrying a bounded number of
// times with backoff on transient contention only. Explicit rejections
// (conflicts, invalid transitions) pass through untouched.
func (s *DefaultSchedulingService) runTxn(ctx context.Context, fn func(ctx context.Context) error) error {
	var err error
	for attempt := 0; attempt < maxTxnRetries; attempt++ {
		err = s.Appointments.WithTransaction(ctx, fn)
		var transient *appointmentRepo.TransientError
		if err == nil || !errors.As(err, &transient) {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt+1) * 50 * time.Millisecond):
		}
	}
	return &TransientStoreError{Err: err}
}

// notify emits a fire-and-forget message to the subject. Delivery failure is
// logged and never propagated to the mutation that triggered it.
func (s *DefaultSchedulingService) notify(subjectID, message, severity string) {
	if s.Notifier == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.Notifier.Notify(ctx, subjectID, message, severity); err != nil {
			utils.GetLogger().Warn("failed to deliver notification",
				zap.String("subjectID", subjectID), zap.Error(err))
		}
	}()
}

func (s *DefaultSchedulingService) GetAppointment(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	appt, err := s.Appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appt == nil {
		return nil, &NotFoundError{Kind: "appointment", ID: appointmentID}
	}
	return appt, nil
}
