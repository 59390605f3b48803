package models

// ZoneRange is a named enclosure zone with its acceptable temperature band.
type ZoneRange struct {
	Zone string  `json:"zone"` // e.g. "basking", "cool", "ambient"
	MinC float64 `json:"min_c"`
	MaxC float64 `json:"max_c"`
}

// SpeciesTarget holds the configured acceptable ranges/intervals for one
// (species, life stage) pair. Every field is optional; a nil min/max pair
// means the corresponding dimension cannot be evaluated.
type SpeciesTarget struct {
	Species   string `json:"species"`
	LifeStage string `json:"life_stage"`

	AmbientTempCMin *float64 `json:"ambient_temp_c_min,omitempty"`
	AmbientTempCMax *float64 `json:"ambient_temp_c_max,omitempty"`

	UviMin *float64 `json:"uvi_min,omitempty"`
	UviMax *float64 `json:"uvi_max,omitempty"`

	FeedIntervalHoursMin *float64 `json:"feed_interval_h_min,omitempty"`
	FeedIntervalHoursMax *float64 `json:"feed_interval_h_max,omitempty"`

	CalciumEveryMeals *int `json:"calcium_every_meals,omitempty"`

	D3IntervalDaysMin *float64 `json:"d3_interval_days_min,omitempty"`
	D3IntervalDaysMax *float64 `json:"d3_interval_days_max,omitempty"`

	PhotoperiodHoursMin *float64 `json:"photoperiod_h_min,omitempty"`
	PhotoperiodHoursMax *float64 `json:"photoperiod_h_max,omitempty"`

	// SupplementRule is a textual dosing rule: "per_week:N", "per_2_weeks:N"
	// or "every_meal". Empty means no rule configured.
	SupplementRule string `json:"supplement_rule,omitempty"`

	// DietSplit maps a feed subtype category to its target share of total
	// grams (values sum to 1). Decoded from the stored JSON column at the
	// repository boundary.
	DietSplit map[string]float64 `json:"diet_split,omitempty"`

	// TempZones lists configured enclosure zones. Decoded at the
	// repository boundary.
	TempZones []ZoneRange `json:"temp_zones,omitempty"`
}

// EffectiveTarget is a SpeciesTarget resolved for a concrete pet, recording
// which life stage actually supplied the row (it may differ from the pet's
// own stage when the fallback was taken).
type EffectiveTarget struct {
	SpeciesTarget
	PetID         string `json:"pet_id"`
	ResolvedStage string `json:"resolved_stage"`
}
