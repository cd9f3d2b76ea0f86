package models

import (
	"strings"
	"time"
)

// AppointmentStatus is the canonical lifecycle status of an appointment.
// Hyphenated forms are canonical; ParseAppointmentStatus accepts legacy
// underscore variants at the serialization boundary.
type AppointmentStatus string

const (
	StatusScheduled  AppointmentStatus = "scheduled"
	StatusCheckedIn  AppointmentStatus = "checked-in"
	StatusInProgress AppointmentStatus = "in-progress"
	StatusCompleted  AppointmentStatus = "completed"
	StatusCancelled  AppointmentStatus = "cancelled"
	StatusMissed     AppointmentStatus = "missed"
)

// Terminal reports whether no further transition is allowed from s.
func (s AppointmentStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusMissed
}

// ParseAppointmentStatus normalizes a raw status string to its canonical enum value.
func ParseAppointmentStatus(raw string) (AppointmentStatus, bool) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(raw)), "_", "-")
	switch AppointmentStatus(normalized) {
	case StatusScheduled, StatusCheckedIn, StatusInProgress, StatusCompleted, StatusCancelled, StatusMissed:
		return AppointmentStatus(normalized), true
	}
	return "", false
}

// Appointment is a live booking of a stall by a subject.
type Appointment struct {
	ID        string            `bson:"id" json:"id"`
	SubjectID string            `bson:"subject_id" json:"subjectId"`
	StallID   string            `bson:"stall_id" json:"stallId"`
	TrailerID string            `bson:"trailer_id" json:"trailerId"`
	Category  ServiceCategory   `bson:"category" json:"category"`
	Date      string            `bson:"date" json:"date"`            // opening calendar date, "2006-01-02"
	StartTime string            `bson:"start_time" json:"startTime"` // "HH:MM"
	EndTime   string            `bson:"end_time" json:"endTime"`     // StartTime + Duration, wall clock
	EndDate   string            `bson:"end_date" json:"endDate"`     // calendar date EndTime falls on
	Duration  int               `bson:"duration" json:"duration"`    // minutes, fixed at creation
	Status    AppointmentStatus `bson:"status" json:"status"`
	CreatedAt time.Time         `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time         `bson:"updated_at" json:"updatedAt"`
}

// ArchiveReason tags why an appointment was moved to history.
type ArchiveReason string

const (
	ReasonCompleted ArchiveReason = "completed"
	ReasonCancelled ArchiveReason = "cancelled"
	ReasonMissed    ArchiveReason = "missed"
	ReasonPastDate  ArchiveReason = "past_date"
)

// HistoricalAppointment is an immutable archived copy of a terminated appointment.
type HistoricalAppointment struct {
	ID          string        `bson:"id" json:"id"`
	OriginalID  string        `bson:"original_id" json:"originalId"`
	Appointment Appointment   `bson:"appointment" json:"appointment"`
	Reason      ArchiveReason `bson:"reason" json:"reason"`
	ArchivedAt  time.Time     `bson:"archived_at" json:"archivedAt"`
}

// SweepResult aggregates the outcome of one archival sweep run.
type SweepResult struct {
	ArchivedCount int      `json:"archivedCount"`
	Errors        []string `json:"errors,omitempty"`
}
