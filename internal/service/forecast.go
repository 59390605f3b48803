package service

import (
	"context"
	"math"
	"time"

	"herptrack/internal/models"
)

// ForecastService classifies hourly forecast series against the pet's
// configured bands. The series itself comes from the caller (the weather
// subsystem is outside this core); the service only resolves the target
// and runs the classification arithmetic.
type ForecastService struct {
	targets Targets
	now     func() time.Time
}

func NewForecastService(targets Targets) *ForecastService {
	return &ForecastService{targets: targets, now: time.Now}
}

// EvaluateTempNext24h classifies the next-24h ambient temperature series.
// Returns nil unless both ambient bounds are configured, regardless of the
// series contents. Local hours derive from the device clock:
// (currentHour + offset) mod 24.
func (s *ForecastService) EvaluateTempNext24h(ctx context.Context, petID string, samples []models.HourlySample) (*models.TempRiskResult, error) {
	target, err := s.targets.Resolve(ctx, petID)
	if err != nil {
		return nil, err
	}
	if target == nil || target.AmbientTempCMin == nil || target.AmbientTempCMax == nil {
		return nil, nil
	}
	min, max := *target.AmbientTempCMin, *target.AmbientTempCMax
	baseHour := s.now().Hour()

	hours := make([]models.HourRisk[models.TempRiskKind], 0, len(samples))
	res := &models.TempRiskResult{}
	for _, sm := range samples {
		risk := classifyValue(sm.Value, min, max, models.TempTooCold, models.TempTooHot, models.TempOK, models.TempUnknown)
		switch risk {
		case models.TempTooCold:
			res.HasTooCold = true
		case models.TempTooHot:
			res.HasTooHot = true
		}
		hours = append(hours, models.HourRisk[models.TempRiskKind]{
			HourOffset: sm.HourOffset,
			LocalHour:  (baseHour + sm.HourOffset) % 24,
			Value:      sm.Value,
			Risk:       risk,
		})
	}

	res.Hours = hours
	res.Segments = mergeSegments(hours)
	res.ShouldWarn = res.HasTooCold || res.HasTooHot
	return res, nil
}

// EvaluateUvbNext24h classifies the next-24h UV index series. Returns nil
// unless both UVI bounds are configured. Local hours are parsed from each
// sample's local ISO string (the series carries the enclosure's timezone),
// falling back to the sample's own local_hour field.
func (s *ForecastService) EvaluateUvbNext24h(ctx context.Context, petID string, samples []models.HourlySample) (*models.UvbRiskResult, error) {
	target, err := s.targets.Resolve(ctx, petID)
	if err != nil {
		return nil, err
	}
	if target == nil || target.UviMin == nil || target.UviMax == nil {
		return nil, nil
	}
	min, max := *target.UviMin, *target.UviMax

	hours := make([]models.HourRisk[models.UvbRiskKind], 0, len(samples))
	res := &models.UvbRiskResult{}
	for _, sm := range samples {
		risk := classifyValue(sm.Value, min, max, models.UvbTooLow, models.UvbTooHigh, models.UvbOK, models.UvbUnknown)
		switch risk {
		case models.UvbTooLow:
			res.HasTooLow = true
		case models.UvbTooHigh:
			res.HasTooHigh = true
		}
		hours = append(hours, models.HourRisk[models.UvbRiskKind]{
			HourOffset: sm.HourOffset,
			LocalHour:  localHourFromISO(sm.LocalISO, sm.LocalHour),
			Value:      sm.Value,
			Risk:       risk,
		})
	}

	res.Hours = hours
	res.Segments = mergeSegments(hours)
	res.ShouldWarn = res.HasTooLow || res.HasTooHigh
	return res, nil
}

// classifyValue buckets one sample value against [min, max]. A nil or
// non-finite value is unknown, never an error; the rest of the series
// still gets classified.
func classifyValue[K ~string](value *float64, min, max float64, low, high, ok, unknown K) K {
	if value == nil || math.IsNaN(*value) || math.IsInf(*value, 0) {
		return unknown
	}
	switch {
	case *value < min:
		return low
	case *value > max:
		return high
	default:
		return ok
	}
}

// localHourFromISO extracts the hour component of a local ISO timestamp
// like "2026-08-29T14:00". On any parse failure the fallback hour is used.
func localHourFromISO(iso string, fallback int) int {
	for _, layout := range []string{"2006-01-02T15:04", "2006-01-02T15:04:05", time.RFC3339} {
		if t, err := time.Parse(layout, iso); err == nil {
			return t.Hour()
		}
	}
	return fallback
}

// mergeSegments collapses classified hours into maximal contiguous
// same-risk segments. A new segment starts when the risk label changes or
// when the hour offset is not exactly one past the previous segment's last
// offset: a gap breaks contiguity even under an unchanged label. The
// produced segments partition the input exactly.
func mergeSegments[K ~string](hours []models.HourRisk[K]) []models.RiskSegment[K] {
	segments := make([]models.RiskSegment[K], 0, len(hours))
	for _, h := range hours {
		if n := len(segments); n > 0 {
			last := &segments[n-1]
			if last.Risk == h.Risk && h.HourOffset == last.EndOffset+1 {
				last.EndOffset = h.HourOffset
				last.EndLocalHour = h.LocalHour
				continue
			}
		}
		segments = append(segments, models.RiskSegment[K]{
			Risk:           h.Risk,
			StartOffset:    h.HourOffset,
			EndOffset:      h.HourOffset,
			StartLocalHour: h.LocalHour,
			EndLocalHour:   h.LocalHour,
		})
	}
	return segments
}
