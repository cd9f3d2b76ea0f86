package scheduling

import (
	"fmt"

	"github.com/bcart01v/beheardqueue-server/models"
)

// ResourceUnavailableError reports a booking or reassignment conflict. It is an
// expected outcome; callers recover by choosing a different slot or stall.
type ResourceUnavailableError struct {
	StallID   string
	Date      string
	StartTime string
}

func (e *ResourceUnavailableError) Error() string {
	return fmt.Sprintf("stall %s is unavailable on %s at %s: the requested time conflicts with an existing appointment",
		e.StallID, e.Date, e.StartTime)
}

// InvalidSlotError reports a requested start time that is not one of the
// trailer's bookable grid starts for the date.
type InvalidSlotError struct {
	StallID   string
	Date      string
	StartTime string
}

func (e *InvalidSlotError) Error() string {
	if e.Date == "" {
		return fmt.Sprintf("%s is not a bookable start time for stall %s", e.StartTime, e.StallID)
	}
	return fmt.Sprintf("%s is not a bookable start time for stall %s on %s",
		e.StartTime, e.StallID, e.Date)
}

// InvalidTransitionError reports a status change that violates the lifecycle
// state machine. It indicates a caller bug and is never retried.
type InvalidTransitionError struct {
	AppointmentID string
	From          models.AppointmentStatus
	To            models.AppointmentStatus
}

func (e *InvalidTransitionError) Error() string {
	if e.From == e.To {
		return fmt.Sprintf("appointment %s is %s and can no longer be modified", e.AppointmentID, e.From)
	}
	return fmt.Sprintf("appointment %s cannot move from %q to %q", e.AppointmentID, e.From, e.To)
}

// NotFoundError reports a missing appointment, stall, trailer, or subject.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// TransientStoreError reports store contention that persisted through the
// engine's bounded retries. The whole operation may be retried by the caller.
type TransientStoreError struct {
	Err error
}

func (e *TransientStoreError) Error() string {
	return fmt.Sprintf("store contention, please retry: %v", e.Err)
}

func (e *TransientStoreError) Unwrap() error { return e.Err }
