package models

// TimeSlot is an ephemeral bookable candidate produced by the availability
// filter. It has no identity beyond its tuple and is never persisted.
type TimeSlot struct {
	StallID    string `json:"stallId"`
	TrailerID  string `json:"trailerId"`
	Date       string `json:"date"`      // "2006-01-02"
	StartTime  string `json:"startTime"` // "HH:MM"
	Duration   int    `json:"duration"`  // minutes
	BufferTime int    `json:"bufferTime"`
}
