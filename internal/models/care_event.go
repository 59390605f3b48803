package models

import "time"

// Care event types recorded in the log.
const (
	EventFeed    = "feed"
	EventCalcium = "calcium"
	EventVitamin = "vitamin"
	EventUvbOn   = "uvb_on"
	EventUvbOff  = "uvb_off"
	EventHeatOn  = "heat_on"
	EventHeatOff = "heat_off"
	EventClean   = "clean"
	EventWeigh   = "weigh"
)

// SubtypeD3 marks a calcium event that carried vitamin D3.
const SubtypeD3 = "d3"

// CareEvent is a single immutable care-log fact.
type CareEvent struct {
	ID         string    `json:"id"`
	PetID      string    `json:"pet_id"`
	Type       string    `json:"type"`
	Subtype    string    `json:"subtype,omitempty"` // e.g. feed category, "d3"
	Value      *float64  `json:"value,omitempty"`   // grams, °C, g weight...
	Unit       string    `json:"unit,omitempty"`
	Note       string    `json:"note,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EnvReading is one enclosure temperature sample for a named zone.
type EnvReading struct {
	ID         string    `json:"id"`
	PetID      string    `json:"pet_id"`
	Zone       string    `json:"zone"`
	TempC      float64   `json:"temp_c"`
	OccurredAt time.Time `json:"occurred_at"`
}

// KnownEventType reports whether t is one of the recorded care event types.
func KnownEventType(t string) bool {
	switch t {
	case EventFeed, EventCalcium, EventVitamin, EventUvbOn, EventUvbOff,
		EventHeatOn, EventHeatOff, EventClean, EventWeigh:
		return true
	}
	return false
}
