package models

import "time"

// UvbCompliance reports lit UVB hours against the configured photoperiod,
// both scaled to the report window.
type UvbCompliance struct {
	LitHours       float64  `json:"lit_hours"`
	TargetMinHours *float64 `json:"target_min_hours,omitempty"`
	TargetMaxHours *float64 `json:"target_max_hours,omitempty"`
	Pass           *bool    `json:"pass"`
	Note           string   `json:"note,omitempty"`
}

// SupplementCompliance reports in-window supplement counts against the
// species' textual dosing rule scaled to the window length.
type SupplementCompliance struct {
	D3Count       int      `json:"d3_count"`
	CalciumCount  int      `json:"calcium_count"`
	VitaminCount  int      `json:"vitamin_count"`
	Rule          string   `json:"rule,omitempty"`
	ExpectedCount *float64 `json:"expected_count,omitempty"`
	Pass          *bool    `json:"pass"`
	Note          string   `json:"note,omitempty"`
}

// DietCompliance compares the actual feed-gram split per category against
// the species' target split.
type DietCompliance struct {
	ActualSplit map[string]float64 `json:"actual_split"`
	TargetSplit map[string]float64 `json:"target_split,omitempty"`
	Deviation   map[string]float64 `json:"deviation,omitempty"`
	TotalGrams  float64            `json:"total_grams"`
	Pass        *bool              `json:"pass"`
	Note        string             `json:"note,omitempty"`
}

// ZoneCompliance is the fraction of environment readings inside a zone's
// configured band.
type ZoneCompliance struct {
	Zone         string   `json:"zone"`
	MinC         float64  `json:"min_c"`
	MaxC         float64  `json:"max_c"`
	SampleCount  int      `json:"sample_count"`
	InRangeRatio *float64 `json:"in_range_ratio,omitempty"`
	Pass         *bool    `json:"pass"`
	Note         string   `json:"note,omitempty"`
}

// ComplianceReport aggregates the weekly-window compliance sub-reports for
// one pet over [From, To).
type ComplianceReport struct {
	PetID       string               `json:"pet_id"`
	From        time.Time            `json:"from"`
	To          time.Time            `json:"to"`
	WindowDays  float64              `json:"window_days"`
	UVB         UvbCompliance        `json:"uvb"`
	Supplements SupplementCompliance `json:"supplements"`
	Diet        DietCompliance       `json:"diet"`
	Temperature []ZoneCompliance     `json:"temperature"`
}
