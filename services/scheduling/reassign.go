package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/bcart01v/beheardqueue-server/models"
	"github.com/bcart01v/beheardqueue-server/utils"

	"go.uber.org/zap"
)

// Reassign moves a pre-terminal appointment to a new stall and start time. The
// moved appointment keeps its own duration; the end time is recomputed from
// it, not from the destination stall's configured duration. The destination
// conflict check and the update commit as one transaction, so a rejected move
// leaves the appointment untouched.
func (s *DefaultSchedulingService) Reassign(ctx context.Context, appointmentID, destStallID, destStart string) (*models.Appointment, error) {
	destStall, err := s.Stalls.GetByID(ctx, destStallID)
	if err != nil {
		return nil, err
	}
	if destStall == nil {
		return nil, &NotFoundError{Kind: "stall", ID: destStallID}
	}
	destTrailer, err := s.Trailers.GetByID(ctx, destStall.TrailerID)
	if err != nil {
		return nil, err
	}
	if destTrailer == nil {
		return nil, &NotFoundError{Kind: "trailer", ID: destStall.TrailerID}
	}

	startRaw, err := ParseHHMM(destStart)
	if err != nil {
		return nil, err
	}
	windowStart, err := ParseHHMM(destTrailer.Hours.StartTime)
	if err != nil {
		return nil, err
	}
	start := normalizeToWindow(startRaw, windowStart)

	offsets, err := gridOffsets(destTrailer.Hours)
	if err != nil {
		return nil, err
	}
	if !slotOnGrid(offsets, start) {
		return nil, &InvalidSlotError{StallID: destStall.ID, StartTime: destStart}
	}

	var result *models.Appointment
	err = s.runTxn(ctx, func(txCtx context.Context) error {
		appt, err := s.Appointments.GetByID(txCtx, appointmentID)
		if err != nil {
			return err
		}
		if appt == nil {
			return &NotFoundError{Kind: "appointment", ID: appointmentID}
		}
		if appt.Status.Terminal() {
			return &InvalidTransitionError{AppointmentID: appointmentID, From: appt.Status, To: appt.Status}
		}

		// Touch the destination's shared schedule document so a concurrent
		// booking into the same (stall, date) cannot slip past the check.
		if err := s.Appointments.BumpScheduleVersion(txCtx, destStall.ID, appt.Date); err != nil {
			return err
		}

		existing, err := s.Appointments.ListByStallAndDate(txCtx, destStall.ID, appt.Date)
		if err != nil {
			return err
		}
		if hasConflict(existing, start, appt.Duration, destStall.BufferTime, windowStart, appt.ID) {
			return &ResourceUnavailableError{StallID: destStall.ID, Date: appt.Date, StartTime: destStart}
		}

		endDate := appt.Date
		if start+appt.Duration >= minutesPerDay {
			if endDate, err = dayAfter(appt.Date); err != nil {
				return err
			}
		}

		appt.StallID = destStall.ID
		appt.TrailerID = destTrailer.ID
		appt.StartTime = FormatHHMM(startRaw)
		appt.EndTime = FormatHHMM(start + appt.Duration)
		appt.EndDate = endDate
		appt.UpdatedAt = time.Now()
		if err := s.Appointments.Update(txCtx, appt); err != nil {
			return err
		}
		result = appt
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.GetLogger().Info("appointment reassigned",
		zap.String("appointmentID", appointmentID),
		zap.String("destStallID", destStall.ID),
		zap.String("destStart", destStart))

	s.notify(result.SubjectID,
		fmt.Sprintf("Your appointment was moved to %s on %s.", result.StartTime, result.Date),
		"info")

	return result, nil
}
