package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/bcart01v/beheardqueue-server/models"
	"github.com/bcart01v/beheardqueue-server/utils"

	"go.uber.org/zap"
)

// transitionTable lists the allowed lifecycle moves. Missed is absent on
// purpose: only the archival sweep assigns it.
var transitionTable = map[models.AppointmentStatus][]models.AppointmentStatus{
	models.StatusScheduled:  {models.StatusCheckedIn, models.StatusCancelled},
	models.StatusCheckedIn:  {models.StatusInProgress, models.StatusCancelled},
	models.StatusInProgress: {models.StatusCompleted},
}

// turnaroundStatus maps a service category to the stall status applied when an
// appointment completes. Adding a category is a data change here, not a code
// change in the state machine.
var turnaroundStatus = map[models.ServiceCategory]models.StallStatus{
	models.CategoryShower:  models.StallNeedsCleaning,
	models.CategoryLaundry: models.StallAvailable,
	models.CategoryHaircut: models.StallAvailable,
}

func canTransition(from, to models.AppointmentStatus) bool {
	for _, allowed := range transitionTable[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

var transitionMessages = map[models.AppointmentStatus]string{
	models.StatusCheckedIn:  "You're checked in. We'll let you know when it's your turn.",
	models.StatusInProgress: "Your appointment is now in progress.",
	models.StatusCompleted:  "Your appointment is complete. Thanks for coming!",
	models.StatusCancelled:  "Your appointment has been cancelled.",
}

// Transition applies one lifecycle move with its side effects: the status
// write, the subject's same-day batch check-in, and the stall status sync all
// commit as one transaction. The notification fires after commit.
func (s *DefaultSchedulingService) Transition(ctx context.Context, appointmentID string, target models.AppointmentStatus) (*models.Appointment, error) {
	if target == models.StatusMissed {
		// Missed is assigned only by the archival sweep.
		appt, err := s.GetAppointment(ctx, appointmentID)
		if err != nil {
			return nil, err
		}
		return nil, &InvalidTransitionError{AppointmentID: appointmentID, From: appt.Status, To: target}
	}

	var result *models.Appointment
	err := s.runTxn(ctx, func(txCtx context.Context) error {
		appt, err := s.Appointments.GetByID(txCtx, appointmentID)
		if err != nil {
			return err
		}
		if appt == nil {
			return &NotFoundError{Kind: "appointment", ID: appointmentID}
		}
		if !canTransition(appt.Status, target) {
			return &InvalidTransitionError{AppointmentID: appointmentID, From: appt.Status, To: target}
		}

		now := time.Now()
		switch target {
		case models.StatusCheckedIn:
			// A subject checking in checks in for all of their same-day
			// scheduled appointments at once, in a single batch write.
			siblings, err := s.Appointments.ListScheduledBySubjectAndDate(txCtx, appt.SubjectID, appt.Date)
			if err != nil {
				return err
			}
			ids := make([]string, 0, len(siblings))
			for _, sib := range siblings {
				ids = append(ids, sib.ID)
			}
			if err := s.Appointments.UpdateStatusMany(txCtx, ids, models.StatusCheckedIn, now); err != nil {
				return err
			}

		case models.StatusInProgress:
			appt.Status = target
			appt.UpdatedAt = now
			if err := s.Appointments.Update(txCtx, appt); err != nil {
				return err
			}
			if err := s.Stalls.UpdateStatus(txCtx, appt.StallID, models.StallInUse); err != nil {
				return err
			}

		case models.StatusCompleted:
			appt.Status = target
			appt.UpdatedAt = now
			if err := s.Appointments.Update(txCtx, appt); err != nil {
				return err
			}
			next, ok := turnaroundStatus[appt.Category]
			if !ok {
				next = models.StallAvailable
			}
			if err := s.Stalls.UpdateStatus(txCtx, appt.StallID, next); err != nil {
				return err
			}

		case models.StatusCancelled:
			// No stall status change: the stall may already be available.
			appt.Status = target
			appt.UpdatedAt = now
			if err := s.Appointments.Update(txCtx, appt); err != nil {
				return err
			}

		default:
			return &InvalidTransitionError{AppointmentID: appointmentID, From: appt.Status, To: target}
		}

		result, err = s.Appointments.GetByID(txCtx, appointmentID)
		if err != nil {
			return err
		}
		if result == nil {
			return fmt.Errorf("appointment %s vanished mid-transition", appointmentID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.GetLogger().Info("appointment transitioned",
		zap.String("appointmentID", appointmentID),
		zap.String("status", string(target)))

	severity := "info"
	if target == models.StatusCancelled {
		severity = "warning"
	}
	if msg, ok := transitionMessages[target]; ok {
		s.notify(result.SubjectID, msg, severity)
	}
	return result, nil
}
