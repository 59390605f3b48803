package models

// TempRiskKind classifies one forecast hour against the ambient
// temperature band.
type TempRiskKind string

const (
	TempOK      TempRiskKind = "ok"
	TempTooCold TempRiskKind = "too_cold"
	TempTooHot  TempRiskKind = "too_hot"
	TempUnknown TempRiskKind = "unknown"
)

// UvbRiskKind classifies one forecast hour against the UV index band.
// Kept distinct from TempRiskKind: the value domains differ even though
// the segment-merging algorithm is shared.
type UvbRiskKind string

const (
	UvbOK      UvbRiskKind = "ok"
	UvbTooLow  UvbRiskKind = "too_low"
	UvbTooHigh UvbRiskKind = "too_high"
	UvbUnknown UvbRiskKind = "unknown"
)

// HourlySample is one forecast-derived reading, produced by the weather
// subsystem and consumed read-only here. Value is nil when the provider
// had no reading for that hour.
type HourlySample struct {
	HourOffset int      `json:"hour_offset"` // 0 = current hour
	LocalHour  int      `json:"local_hour"`  // 0–23
	LocalISO   string   `json:"local_iso,omitempty"`
	Value      *float64 `json:"value,omitempty"` // °C or UV index
}

// HourRisk is the per-hour classification of a sample.
type HourRisk[K ~string] struct {
	HourOffset int      `json:"hour_offset"`
	LocalHour  int      `json:"local_hour"`
	Value      *float64 `json:"value,omitempty"`
	Risk       K        `json:"risk"`
}

// RiskSegment is a maximal run of consecutive hour offsets sharing one
// risk label. Segments partition the classified hours exactly.
type RiskSegment[K ~string] struct {
	Risk           K   `json:"risk"`
	StartOffset    int `json:"start_offset"`
	EndOffset      int `json:"end_offset"`
	StartLocalHour int `json:"start_local_hour"`
	EndLocalHour   int `json:"end_local_hour"`
}

// TempRiskResult is the ambient-temperature forecast verdict for the next
// 24 hours. Hours are exposed alongside segments so segment derivation
// stays observable.
type TempRiskResult struct {
	Hours      []HourRisk[TempRiskKind]    `json:"hours"`
	Segments   []RiskSegment[TempRiskKind] `json:"segments"`
	HasTooCold bool                        `json:"has_too_cold"`
	HasTooHot  bool                        `json:"has_too_hot"`
	ShouldWarn bool                        `json:"should_warn"`
}

// UvbRiskResult is the UVB forecast verdict for the next 24 hours.
type UvbRiskResult struct {
	Hours      []HourRisk[UvbRiskKind]    `json:"hours"`
	Segments   []RiskSegment[UvbRiskKind] `json:"segments"`
	HasTooLow  bool                       `json:"has_too_low"`
	HasTooHigh bool                       `json:"has_too_high"`
	ShouldWarn bool                       `json:"should_warn"`
}
