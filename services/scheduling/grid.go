package scheduling

import (
	"fmt"
	"time"

	"github.com/bcart01v/beheardqueue-server/models"
)

// SlotStepMinutes is the fixed spacing of the bookable time grid.
const SlotStepMinutes = 30

const minutesPerDay = 24 * 60

// ParseHHMM converts an "HH:MM" string to minutes from midnight.
func ParseHHMM(s string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time %q: out of range", s)
	}
	return h*60 + m, nil
}

// FormatHHMM renders a minute offset as a wall-clock "HH:MM" string. Offsets
// past midnight wrap around.
func FormatHHMM(minutes int) string {
	minutes = ((minutes % minutesPerDay) + minutesPerDay) % minutesPerDay
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// gridOffsets produces the ordered start offsets of a trailer's bookable grid,
// in minutes from the target date's midnight. When the window spans midnight
// the end bound is pushed one day out, so offsets past 1439 denote early-hours
// slots of the following calendar day.
func gridOffsets(hours models.OperatingHours) ([]int, error) {
	start, err := ParseHHMM(hours.StartTime)
	if err != nil {
		return nil, fmt.Errorf("operating hours start: %w", err)
	}
	end, err := ParseHHMM(hours.EndTime)
	if err != nil {
		return nil, fmt.Errorf("operating hours end: %w", err)
	}
	if end <= start {
		// Overnight operation: the window runs into the next day.
		end += minutesPerDay
	}

	var offsets []int
	for t := start; t < end; t += SlotStepMinutes {
		offsets = append(offsets, t)
	}
	return offsets, nil
}

// slotOnGrid reports whether a normalized start offset is one of the grid's
// bookable starts.
func slotOnGrid(offsets []int, start int) bool {
	for _, off := range offsets {
		if off == start {
			return true
		}
	}
	return false
}

// dayAfter returns the calendar date one day past a "2006-01-02" date.
func dayAfter(date string) (string, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", date, err)
	}
	return day.AddDate(0, 0, 1).Format("2006-01-02"), nil
}

// GenerateSlots returns the ordered bookable start times for one date given a
// trailer's operating hours, stepping every SlotStepMinutes. The date must be
// a valid "2006-01-02" calendar date.
func (s *DefaultSchedulingService) GenerateSlots(hours models.OperatingHours, date string) ([]string, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}
	offsets, err := gridOffsets(hours)
	if err != nil {
		return nil, err
	}
	slots := make([]string, 0, len(offsets))
	for _, off := range offsets {
		slots = append(slots, FormatHHMM(off))
	}
	return slots, nil
}
