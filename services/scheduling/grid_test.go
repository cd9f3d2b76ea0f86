package scheduling

import (
	"testing"

	"github.com/bcart01v/beheardqueue-server/models"
)

func TestParseHHMM(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:00", 540, false},
		{"16:30", 990, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"09:60", 0, true},
		{"morning", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseHHMM(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseHHMM(%q): expected error, got %d", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseHHMM(%q): unexpected error %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseHHMM(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestFormatHHMM_WrapsPastMidnight(t *testing.T) {
	if got := FormatHHMM(1470); got != "00:30" {
		t.Errorf("FormatHHMM(1470) = %q, want 00:30", got)
	}
	if got := FormatHHMM(540); got != "09:00" {
		t.Errorf("FormatHHMM(540) = %q, want 09:00", got)
	}
}

func TestGenerateSlots_DayWindow(t *testing.T) {
	svc := &DefaultSchedulingService{}
	hours := models.OperatingHours{StartTime: "09:00", EndTime: "17:00"}

	slots, err := svc.GenerateSlots(hours, "2025-06-02")
	if err != nil {
		t.Fatalf("GenerateSlots: %v", err)
	}
	if len(slots) != 16 {
		t.Fatalf("expected 16 slots, got %d: %v", len(slots), slots)
	}
	if slots[0] != "09:00" {
		t.Errorf("first slot = %q, want 09:00", slots[0])
	}
	if slots[len(slots)-1] != "16:30" {
		t.Errorf("last slot = %q, want 16:30", slots[len(slots)-1])
	}
}

func TestGenerateSlots_OvernightWindow(t *testing.T) {
	svc := &DefaultSchedulingService{}
	hours := models.OperatingHours{StartTime: "22:00", EndTime: "02:00"}

	slots, err := svc.GenerateSlots(hours, "2025-06-02")
	if err != nil {
		t.Fatalf("GenerateSlots: %v", err)
	}
	if len(slots) == 0 {
		t.Fatal("overnight window produced no slots")
	}
	want := []string{"22:00", "22:30", "23:00", "23:30", "00:00", "00:30", "01:00", "01:30"}
	if len(slots) != len(want) {
		t.Fatalf("expected %d slots, got %d: %v", len(want), len(slots), slots)
	}
	for i, w := range want {
		if slots[i] != w {
			t.Errorf("slot[%d] = %q, want %q", i, slots[i], w)
		}
	}
}

func TestGenerateSlots_InvalidInputs(t *testing.T) {
	svc := &DefaultSchedulingService{}

	if _, err := svc.GenerateSlots(models.OperatingHours{StartTime: "09:00", EndTime: "17:00"}, "not-a-date"); err == nil {
		t.Error("expected error for invalid date")
	}
	if _, err := svc.GenerateSlots(models.OperatingHours{StartTime: "25:00", EndTime: "17:00"}, "2025-06-02"); err == nil {
		t.Error("expected error for invalid start time")
	}
}
