package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/bcart01v/beheardqueue-server/models"
	"github.com/bcart01v/beheardqueue-server/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Book reserves a slot for a subject. The conflict check and the insert run in
// one store transaction: two concurrent attempts on the same (stall, date,
// start) see exactly one success and one ResourceUnavailableError.
func (s *DefaultSchedulingService) Book(ctx context.Context, subjectID, stallID, date, startTime string) (*models.Appointment, error) {
	stall, err := s.Stalls.GetByID(ctx, stallID)
	if err != nil {
		return nil, err
	}
	if stall == nil {
		return nil, &NotFoundError{Kind: "stall", ID: stallID}
	}
	trailer, err := s.Trailers.GetByID(ctx, stall.TrailerID)
	if err != nil {
		return nil, err
	}
	if trailer == nil {
		return nil, &NotFoundError{Kind: "trailer", ID: stall.TrailerID}
	}

	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}
	startRaw, err := ParseHHMM(startTime)
	if err != nil {
		return nil, err
	}
	windowStart, err := ParseHHMM(trailer.Hours.StartTime)
	if err != nil {
		return nil, err
	}
	start := normalizeToWindow(startRaw, windowStart)

	offsets, err := gridOffsets(trailer.Hours)
	if err != nil {
		return nil, err
	}
	if !slotOnGrid(offsets, start) {
		return nil, &InvalidSlotError{StallID: stall.ID, Date: date, StartTime: startTime}
	}

	endDate := date
	if start+stall.Duration >= minutesPerDay {
		if endDate, err = dayAfter(date); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	appt := &models.Appointment{
		ID:        uuid.New().String(),
		SubjectID: subjectID,
		StallID:   stall.ID,
		TrailerID: trailer.ID,
		Category:  stall.Category,
		Date:      date,
		StartTime: FormatHHMM(startRaw),
		EndTime:   FormatHHMM(start + stall.Duration),
		EndDate:   endDate,
		Duration:  stall.Duration,
		Status:    models.StatusScheduled,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.runTxn(ctx, func(txCtx context.Context) error {
		// Touch the shared schedule document first so concurrent bookings on
		// the same (stall, date) cannot both commit.
		if err := s.Appointments.BumpScheduleVersion(txCtx, stall.ID, date); err != nil {
			return err
		}
		existing, err := s.Appointments.ListByStallAndDate(txCtx, stall.ID, date)
		if err != nil {
			return err
		}
		if hasConflict(existing, start, stall.Duration, stall.BufferTime, windowStart, "") {
			return &ResourceUnavailableError{StallID: stall.ID, Date: date, StartTime: appt.StartTime}
		}
		return s.Appointments.Insert(txCtx, appt)
	})
	if err != nil {
		return nil, err
	}

	utils.GetLogger().Info("appointment booked",
		zap.String("appointmentID", appt.ID),
		zap.String("stallID", stall.ID),
		zap.String("date", date),
		zap.String("start", appt.StartTime))

	s.notify(subjectID,
		fmt.Sprintf("Your %s appointment is scheduled for %s at %s.", stall.Category, date, appt.StartTime),
		"info")

	return appt, nil
}
