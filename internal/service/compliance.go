package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"herptrack/internal/models"
	"herptrack/internal/repository"
)

const (
	// uvbLookback is scanned before the report window to catch a lamp
	// that was switched on before the window started.
	uvbLookback = 24 * time.Hour

	// dietDeviationTolerance bounds the per-category deviation for a
	// passing diet split.
	dietDeviationTolerance = 0.15

	// tempZonePassRatio is the minimum in-range sample fraction for a
	// passing temperature zone.
	tempZonePassRatio = 0.8

	daysPerWeek = 7.0
)

var errInvalidWindow = errors.New("invalid report window: from must be before to")

// ComplianceService computes the longer-window husbandry report. Every
// sub-computation that lacks target configuration degrades to a nil pass
// state plus a note; only store failures surface as errors.
type ComplianceService struct {
	targets     Targets
	eventRepo   repository.EventRepo
	readingRepo repository.ReadingRepo
}

func NewComplianceService(targets Targets, eventRepo repository.EventRepo, readingRepo repository.ReadingRepo) *ComplianceService {
	return &ComplianceService{targets: targets, eventRepo: eventRepo, readingRepo: readingRepo}
}

// Report aggregates UVB, supplement, diet and temperature compliance for
// one pet over the half-open window [from, to).
func (s *ComplianceService) Report(ctx context.Context, petID string, from, to time.Time) (*models.ComplianceReport, error) {
	if !from.Before(to) {
		return nil, errInvalidWindow
	}
	from, to = from.UTC(), to.UTC()
	windowDays := to.Sub(from).Hours() / hoursPerDay

	target, err := s.targets.Resolve(ctx, petID)
	if err != nil {
		return nil, err
	}

	report := &models.ComplianceReport{
		PetID:      petID,
		From:       from,
		To:         to,
		WindowDays: windowDays,
	}

	if report.UVB, err = s.uvbCompliance(ctx, petID, target, from, to, windowDays); err != nil {
		return nil, err
	}
	if report.Supplements, err = s.supplementCompliance(ctx, petID, target, from, to, windowDays); err != nil {
		return nil, err
	}
	if report.Diet, err = s.dietCompliance(ctx, petID, target, from, to); err != nil {
		return nil, err
	}
	if report.Temperature, err = s.temperatureCompliance(ctx, petID, target, from, to); err != nil {
		return nil, err
	}
	return report, nil
}

// uvbCompliance sums clipped uvb_on→uvb_off durations inside the window
// and compares them against photoperiod bounds scaled by window days.
func (s *ComplianceService) uvbCompliance(ctx context.Context, petID string, target *models.EffectiveTarget, from, to time.Time, windowDays float64) (models.UvbCompliance, error) {
	events, err := s.eventRepo.List(ctx, petID,
		[]string{models.EventUvbOn, models.EventUvbOff},
		from.Add(-uvbLookback), to)
	if err != nil {
		return models.UvbCompliance{}, err
	}

	lit := litDuration(events, from, to)
	out := models.UvbCompliance{LitHours: lit.Hours()}

	if target == nil || (target.PhotoperiodHoursMin == nil && target.PhotoperiodHoursMax == nil) {
		out.Note = "no photoperiod target configured for this species/stage"
		return out, nil
	}

	pass := true
	if target.PhotoperiodHoursMin != nil {
		min := *target.PhotoperiodHoursMin * windowDays
		out.TargetMinHours = &min
		if out.LitHours < min {
			pass = false
		}
	}
	if target.PhotoperiodHoursMax != nil {
		max := *target.PhotoperiodHoursMax * windowDays
		out.TargetMaxHours = &max
		if out.LitHours > max {
			pass = false
		}
	}
	out.Pass = &pass
	return out, nil
}

// litDuration pairs on/off events into lit intervals clipped to [from, to).
// An off closes the pending on; a second on while one is pending is
// ignored (the lamp is already lit); an off without a pending on is
// ignored; an unmatched trailing on counts up to the window end.
func litDuration(events []models.CareEvent, from, to time.Time) time.Duration {
	var (
		total   time.Duration
		pending *time.Time
	)
	for _, e := range events {
		switch e.Type {
		case models.EventUvbOn:
			if pending == nil {
				t := e.OccurredAt
				pending = &t
			}
		case models.EventUvbOff:
			if pending != nil {
				total += clippedSpan(*pending, e.OccurredAt, from, to)
				pending = nil
			}
		}
	}
	if pending != nil {
		total += clippedSpan(*pending, to, from, to)
	}
	return total
}

// clippedSpan returns the overlap of [start, end] with the window.
func clippedSpan(start, end, from, to time.Time) time.Duration {
	if start.Before(from) {
		start = from
	}
	if end.After(to) {
		end = to
	}
	if !start.Before(end) {
		return 0
	}
	return end.Sub(start)
}

// supplementCompliance counts in-window supplement events and compares the
// D3 count against the species' textual dosing rule scaled to the window.
func (s *ComplianceService) supplementCompliance(ctx context.Context, petID string, target *models.EffectiveTarget, from, to time.Time, windowDays float64) (models.SupplementCompliance, error) {
	events, err := s.eventRepo.List(ctx, petID,
		[]string{models.EventCalcium, models.EventVitamin},
		from, to)
	if err != nil {
		return models.SupplementCompliance{}, err
	}

	out := models.SupplementCompliance{}
	for _, e := range events {
		switch {
		case e.Type == models.EventVitamin:
			out.VitaminCount++
			out.D3Count++
		case e.Subtype == models.SubtypeD3:
			out.D3Count++
		default:
			out.CalciumCount++
		}
	}

	if target == nil || target.SupplementRule == "" {
		out.Note = "no supplement rule configured for this species/stage"
		return out, nil
	}
	out.Rule = target.SupplementRule

	expected, err := expectedSupplementCount(ctx, s.eventRepo, petID, target.SupplementRule, from, to, windowDays)
	if err != nil {
		var parseErr *ruleParseError
		if errors.As(err, &parseErr) {
			out.Note = parseErr.Error()
			return out, nil
		}
		return models.SupplementCompliance{}, err
	}

	out.ExpectedCount = &expected
	pass := float64(out.D3Count) >= expected
	out.Pass = &pass
	return out, nil
}

// ruleParseError marks a malformed supplement rule; it degrades the
// sub-report instead of failing it.
type ruleParseError struct {
	rule string
}

func (e *ruleParseError) Error() string {
	return fmt.Sprintf("unrecognized supplement rule %q", e.rule)
}

// expectedSupplementCount converts a dosing rule to the expected number of
// doses in the actual window: "per_week:N" and "per_2_weeks:N" scale
// proportionally to the window length; "every_meal" expects one dose per
// in-window feed.
func expectedSupplementCount(ctx context.Context, events repository.EventRepo, petID, rule string, from, to time.Time, windowDays float64) (float64, error) {
	rule = strings.TrimSpace(rule)
	if rule == "every_meal" {
		feeds, err := events.List(ctx, petID, []string{models.EventFeed}, from, to)
		if err != nil {
			return 0, err
		}
		return float64(len(feeds)), nil
	}

	var nativeDays float64
	switch {
	case strings.HasPrefix(rule, "per_week:"):
		nativeDays = daysPerWeek
	case strings.HasPrefix(rule, "per_2_weeks:"):
		nativeDays = 2 * daysPerWeek
	default:
		return 0, &ruleParseError{rule: rule}
	}

	n, err := strconv.Atoi(rule[strings.Index(rule, ":")+1:])
	if err != nil || n < 0 {
		return 0, &ruleParseError{rule: rule}
	}
	return float64(n) * windowDays / nativeDays, nil
}

// dietCompliance normalizes in-window feed grams per subtype category and
// reports the absolute deviation from the species' target split.
func (s *ComplianceService) dietCompliance(ctx context.Context, petID string, target *models.EffectiveTarget, from, to time.Time) (models.DietCompliance, error) {
	feeds, err := s.eventRepo.List(ctx, petID, []string{models.EventFeed}, from, to)
	if err != nil {
		return models.DietCompliance{}, err
	}

	grams := make(map[string]float64)
	for _, e := range feeds {
		if e.Subtype == "" || e.Value == nil {
			continue
		}
		grams[e.Subtype] += *e.Value
	}
	// Drop non-positive sums before normalizing.
	var total float64
	for cat, g := range grams {
		if g <= 0 {
			delete(grams, cat)
			continue
		}
		total += g
	}

	out := models.DietCompliance{
		ActualSplit: make(map[string]float64, len(grams)),
		TotalGrams:  total,
	}
	if total > 0 {
		for cat, g := range grams {
			out.ActualSplit[cat] = g / total
		}
	}

	if target == nil || len(target.DietSplit) == 0 {
		out.Note = "no diet split target configured for this species/stage"
		return out, nil
	}
	out.TargetSplit = target.DietSplit

	out.Deviation = make(map[string]float64, len(target.DietSplit))
	pass := true
	for cat, want := range target.DietSplit {
		dev := out.ActualSplit[cat] - want
		if dev < 0 {
			dev = -dev
		}
		out.Deviation[cat] = dev
		if dev > dietDeviationTolerance {
			pass = false
		}
	}
	out.Pass = &pass
	return out, nil
}

// temperatureCompliance computes, per configured zone, the fraction of
// in-window environment readings inside the zone's band.
func (s *ComplianceService) temperatureCompliance(ctx context.Context, petID string, target *models.EffectiveTarget, from, to time.Time) ([]models.ZoneCompliance, error) {
	if target == nil || len(target.TempZones) == 0 {
		return []models.ZoneCompliance{}, nil
	}

	readings, err := s.readingRepo.List(ctx, petID, from, to)
	if err != nil {
		return nil, err
	}

	byZone := make(map[string][]models.EnvReading)
	for _, rd := range readings {
		byZone[rd.Zone] = append(byZone[rd.Zone], rd)
	}

	out := make([]models.ZoneCompliance, 0, len(target.TempZones))
	for _, zone := range target.TempZones {
		zc := models.ZoneCompliance{
			Zone: zone.Zone,
			MinC: zone.MinC,
			MaxC: zone.MaxC,
		}
		samples := byZone[zone.Zone]
		zc.SampleCount = len(samples)
		if len(samples) == 0 {
			zc.Note = "no readings recorded for this zone in the window"
			out = append(out, zc)
			continue
		}

		inRange := 0
		for _, rd := range samples {
			if rd.TempC >= zone.MinC && rd.TempC <= zone.MaxC {
				inRange++
			}
		}
		ratio := float64(inRange) / float64(len(samples))
		pass := ratio >= tempZonePassRatio
		zc.InRangeRatio = &ratio
		zc.Pass = &pass
		out = append(out, zc)
	}
	return out, nil
}
