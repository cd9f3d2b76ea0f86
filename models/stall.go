package models

import "strings"

// ServiceCategory identifies the kind of service a stall provides.
type ServiceCategory string

const (
	CategoryShower  ServiceCategory = "shower"
	CategoryLaundry ServiceCategory = "laundry"
	CategoryHaircut ServiceCategory = "haircut"
)

// StallStatus is the canonical operational status of a stall. Underscored
// forms are canonical; ParseStallStatus accepts legacy hyphen variants.
type StallStatus string

const (
	StallAvailable     StallStatus = "available"
	StallInUse         StallStatus = "in_use"
	StallNeedsCleaning StallStatus = "needs_cleaning"
	StallOutOfOrder    StallStatus = "out_of_order"
)

// ParseStallStatus normalizes a raw stall status string to its canonical enum value.
func ParseStallStatus(raw string) (StallStatus, bool) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(raw)), "-", "_")
	switch StallStatus(normalized) {
	case StallAvailable, StallInUse, StallNeedsCleaning, StallOutOfOrder:
		return StallStatus(normalized), true
	}
	return "", false
}

// Stall is a single bookable unit belonging to a trailer.
type Stall struct {
	ID         string          `bson:"id" json:"id"`
	TrailerID  string          `bson:"trailer_id" json:"trailerId"`
	Name       string          `bson:"name" json:"name"`
	Category   ServiceCategory `bson:"category" json:"category"`
	Duration   int             `bson:"duration" json:"duration"`     // configured service minutes
	BufferTime int             `bson:"buffer_time" json:"bufferTime"` // idle minutes either side of a booking
	Status     StallStatus     `bson:"status" json:"status"`
}
