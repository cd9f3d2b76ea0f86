package models

// OperatingHours bounds a trailer's bookable day. EndTime numerically earlier
// than StartTime means the window spans midnight into the next calendar day.
type OperatingHours struct {
	StartTime string `bson:"start_time" json:"startTime"` // "HH:MM"
	EndTime   string `bson:"end_time" json:"endTime"`     // "HH:MM"
}

// Trailer is a named collection of stalls sharing operating hours and a location.
type Trailer struct {
	ID        string         `bson:"id" json:"id"`
	Name      string         `bson:"name" json:"name"`
	CompanyID string         `bson:"company_id" json:"companyId"`
	Hours     OperatingHours `bson:"hours" json:"hours"`
	Location  string         `bson:"location,omitempty" json:"location,omitempty"`
}
