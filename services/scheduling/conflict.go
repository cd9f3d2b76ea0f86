package scheduling

import "github.com/bcart01v/beheardqueue-server/models"

// interval is a half-open [start, end) span in minutes from the target date's
// midnight.
type interval struct {
	start int
	end   int
}

func (iv interval) overlaps(other interval) bool {
	return iv.start < other.end && other.start < iv.end
}

// paddedInterval extends a booking by the mandatory buffer on both sides. Only
// the candidate is padded when testing against existing bookings: padding both
// sides would double the required gap, and the contract is exactly bufferTime
// idle minutes between consecutive bookings (a 10:00 booking with 30m duration
// and 15m buffer blocks up to but not including 10:45).
func paddedInterval(start, duration, buffer int) interval {
	return interval{start: start - buffer, end: start + duration + buffer}
}

// normalizeToWindow places a wall-clock minute offset onto the trailer's
// bookable window. For overnight windows, times before the window start belong
// to the early hours of the following day.
func normalizeToWindow(offset, windowStart int) int {
	if offset < windowStart {
		return offset + minutesPerDay
	}
	return offset
}

// hasConflict reports whether a candidate start would collide with any
// existing non-cancelled appointment on the same (stall, date). excludeID
// skips the appointment being reassigned; pass "" when booking.
func hasConflict(existing []models.Appointment, start, duration, buffer, windowStart int, excludeID string) bool {
	candidate := paddedInterval(start, duration, buffer)
	for _, appt := range existing {
		if appt.ID == excludeID || appt.Status == models.StatusCancelled {
			continue
		}
		apptStart, err := ParseHHMM(appt.StartTime)
		if err != nil {
			continue
		}
		apptStart = normalizeToWindow(apptStart, windowStart)
		occupied := interval{start: apptStart, end: apptStart + appt.Duration}
		if candidate.overlaps(occupied) {
			return true
		}
	}
	return false
}
