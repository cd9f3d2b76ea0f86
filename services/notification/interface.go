package notification

import "context"

// NotificationService delivers fire-and-forget messages to subjects. Delivery
// failure must never roll back the appointment mutation that triggered it.
type NotificationService interface {
	Notify(ctx context.Context, subjectID, message, severity string) error
}
