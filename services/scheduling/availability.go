package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/bcart01v/beheardqueue-server/models"
)

// filterAvailable yields the grid offsets whose padded interval clears every
// existing appointment and whose start is not already in the past. nowOffset
// is the current moment in minutes relative to the target date's midnight;
// negative values mean the date is still ahead. The starting point is clamped
// to the next step boundary at or after now.
func filterAvailable(offsets []int, existing []models.Appointment, duration, buffer, windowStart, nowOffset int) []int {
	minStart := 0
	if nowOffset > 0 {
		minStart = ((nowOffset + SlotStepMinutes - 1) / SlotStepMinutes) * SlotStepMinutes
	}

	var free []int
	for _, off := range offsets {
		if off < minStart {
			continue
		}
		if hasConflict(existing, off, duration, buffer, windowStart, "") {
			continue
		}
		free = append(free, off)
	}
	return free
}

// AvailableSlots composes the time grid with the stall's existing appointments
// and returns the bookable candidates for one date. The check is advisory:
// Book re-validates inside its transaction.
func (s *DefaultSchedulingService) AvailableSlots(ctx context.Context, stallID, date string, now time.Time) ([]models.TimeSlot, error) {
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

	day, err := time.ParseInLocation("2006-01-02", date, now.Location())
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}
	nowOffset := int(now.Sub(day).Minutes())

	offsets, err := gridOffsets(trailer.Hours)
	if err != nil {
		return nil, err
	}
	windowStart, err := ParseHHMM(trailer.Hours.StartTime)
	if err != nil {
		return nil, err
	}

	existing, err := s.Appointments.ListByStallAndDate(ctx, stallID, date)
	if err != nil {
		return nil, err
	}

	free := filterAvailable(offsets, existing, stall.Duration, stall.BufferTime, windowStart, nowOffset)
	slots := make([]models.TimeSlot, 0, len(free))
	for _, off := range free {
		slots = append(slots, models.TimeSlot{
			StallID:    stall.ID,
			TrailerID:  trailer.ID,
			Date:       date,
			StartTime:  FormatHHMM(off),
			Duration:   stall.Duration,
			BufferTime: stall.BufferTime,
		})
	}
	return slots, nil
}
