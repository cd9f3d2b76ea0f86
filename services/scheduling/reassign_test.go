package scheduling

import (
	"context"
	"errors"
	"testing"

	"github.com/bcart01v/beheardqueue-server/models"
)

func TestReassign_MovesAppointmentKeepingDuration(t *testing.T) {
	store := newFakeStore()
	store.seedTrailer("t1", "09:00", "17:00")
	store.seedTrailer("t2", "08:00", "16:00")
	store.seedStall("s1", "t1", models.CategoryShower, 30, 0)
	// Destination stall is configured for 45m sessions; the move must not pick
	// that up.
	store.seedStall("s2", "t2", models.CategoryShower, 45, 0)
	svc := newTestService(store)

	appt := mustBook(t, svc, "subj1", "s1", "2025-06-02", "10:00")

	moved, err := svc.Reassign(context.Background(), appt.ID, "s2", "14:00")
	if err != nil {
		t.Fatalf("Reassign: %v", err)
	}
	if moved.StallID != "s2" || moved.TrailerID != "t2" {
		t.Errorf("moved to stall %s / trailer %s, want s2 / t2", moved.StallID, moved.TrailerID)
	}
	if moved.StartTime != "14:00" || moved.EndTime != "14:30" {
		t.Errorf("moved window %s-%s, want 14:00-14:30 (original 30m duration)", moved.StartTime, moved.EndTime)
	}
	if moved.Duration != 30 {
		t.Errorf("duration = %d, want 30", moved.Duration)
	}
	if moved.EndDate != "2025-06-02" {
		t.Errorf("end date = %s, want 2025-06-02", moved.EndDate)
	}
	if got := store.scheduleVersion("s2", "2025-06-02"); got != 1 {
		t.Errorf("destination schedule version = %d, want 1", got)
	}

	persisted, _ := store.appointment(appt.ID)
	if persisted.StallID != "s2" || persisted.StartTime != "14:00" {
		t.Errorf("persisted state not updated: %+v", persisted)
	}
}

func TestReassign_RejectedMoveLeavesAppointmentUntouched(t *testing.T) {
	store := newFakeStore()
	store.seedTrailer("t1", "09:00", "17:00")
	store.seedStall("s1", "t1", models.CategoryShower, 30, 15)
	store.seedStall("s2", "t1", models.CategoryShower, 30, 15)
	svc := newTestService(store)

	appt := mustBook(t, svc, "subj1", "s1", "2025-06-02", "10:00")
	mustBook(t, svc, "subj2", "s2", "2025-06-02", "14:00")

	// 14:30 starts inside the buffered tail of the 14:00 booking.
	_, err := svc.Reassign(context.Background(), appt.ID, "s2", "14:30")
	var unavailable *ResourceUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected ResourceUnavailableError, got %v", err)
	}

	persisted, _ := store.appointment(appt.ID)
	if persisted.StallID != "s1" || persisted.StartTime != "10:00" {
		t.Errorf("rejected move mutated the appointment: %+v", persisted)
	}
}

func TestReassign_SameStallDifferentTime(t *testing.T) {
	store := newFakeStore()
	store.seedTrailer("t1", "09:00", "17:00")
	store.seedStall("s1", "t1", models.CategoryShower, 30, 15)
	svc := newTestService(store)

	appt := mustBook(t, svc, "subj1", "s1", "2025-06-02", "10:00")

	// Moving within the same stall must not collide with the appointment's own
	// old slot.
	moved, err := svc.Reassign(context.Background(), appt.ID, "s1", "10:30")
	if err != nil {
		t.Fatalf("Reassign within same stall: %v", err)
	}
	if moved.StartTime != "10:30" || moved.EndTime != "11:00" {
		t.Errorf("moved window %s-%s, want 10:30-11:00", moved.StartTime, moved.EndTime)
	}
}

func TestReassign_RejectsOffGridStart(t *testing.T) {
	store := newFakeStore()
	store.seedTrailer("t1", "09:00", "17:00")
	store.seedStall("s1", "t1", models.CategoryShower, 30, 0)
	store.seedStall("s2", "t1", models.CategoryShower, 30, 0)
	svc := newTestService(store)

	appt := mustBook(t, svc, "subj1", "s1", "2025-06-02", "10:00")

	for _, start := range []string{"14:10", "05:00", "17:00"} {
		_, err := svc.Reassign(context.Background(), appt.ID, "s2", start)
		var invalid *InvalidSlotError
		if !errors.As(err, &invalid) {
			t.Errorf("Reassign to %s: expected InvalidSlotError, got %v", start, err)
		}
	}

	persisted, _ := store.appointment(appt.ID)
	if persisted.StallID != "s1" || persisted.StartTime != "10:00" {
		t.Errorf("rejected move mutated the appointment: %+v", persisted)
	}
}

func TestReassign_TerminalAppointment(t *testing.T) {
	store := newFakeStore()
	store.seedTrailer("t1", "09:00", "17:00")
	store.seedStall("s1", "t1", models.CategoryShower, 30, 0)
	svc := newTestService(store)

	appt := mustBook(t, svc, "subj1", "s1", "2025-06-02", "10:00")
	mustTransition(t, svc, appt.ID, models.StatusCancelled)

	_, err := svc.Reassign(context.Background(), appt.ID, "s1", "14:00")
	var invalid *InvalidTransitionError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidTransitionError, got %v", err)
	}
}

func TestReassign_UnknownTargets(t *testing.T) {
	store := newFakeStore()
	store.seedTrailer("t1", "09:00", "17:00")
	store.seedStall("s1", "t1", models.CategoryShower, 30, 0)
	svc := newTestService(store)

	appt := mustBook(t, svc, "subj1", "s1", "2025-06-02", "10:00")

	var notFound *NotFoundError
	if _, err := svc.Reassign(context.Background(), appt.ID, "ghost", "14:00"); !errors.As(err, &notFound) {
		t.Errorf("unknown destination stall: expected NotFoundError, got %v", err)
	}
	if _, err := svc.Reassign(context.Background(), "ghost", "s1", "14:00"); !errors.As(err, &notFound) {
		t.Errorf("unknown appointment: expected NotFoundError, got %v", err)
	}
}
