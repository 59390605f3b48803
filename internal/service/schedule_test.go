package service

import (
	"context"
	"testing"
	"time"

	"herptrack/internal/models"
)

var scheduleNow = time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

func newScheduleService(target *models.EffectiveTarget, events []models.CareEvent) *ScheduleService {
	svc := NewScheduleService(&stubTargets{target: target}, &stubEventRepo{events: events})
	svc.now = func() time.Time { return scheduleNow }
	return svc
}

func feedTarget(minH, maxH *float64) *models.EffectiveTarget {
	return &models.EffectiveTarget{
		SpeciesTarget: models.SpeciesTarget{FeedIntervalHoursMin: minH, FeedIntervalHoursMax: maxH},
		PetID:         "p1",
	}
}

func feedEvent(at time.Time) models.CareEvent {
	return models.CareEvent{PetID: "p1", Type: models.EventFeed, OccurredAt: at}
}

func TestEvaluateFeeding(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		target     *models.EffectiveTarget
		events     []models.CareEvent
		wantNil    bool
		wantRisk   models.ScheduleRisk
		wantNoLast bool
		wantUntil  *float64
	}{
		{
			name:    "absent without any interval config",
			target:  feedTarget(nil, nil),
			wantNil: true,
		},
		{
			name:    "absent without a resolvable target",
			target:  nil,
			wantNil: true,
		},
		{
			name:       "no history is due_soon with no countdown",
			target:     feedTarget(fptr(24), fptr(48)),
			wantRisk:   models.ScheduleDueSoon,
			wantNoLast: true,
		},
		{
			name:     "overdue past the max bound",
			target:   feedTarget(nil, fptr(48)),
			events:   []models.CareEvent{feedEvent(scheduleNow.Add(-50 * time.Hour))},
			wantRisk: models.ScheduleOverdue,
		},
		{
			name:      "due_soon inside the max bound with countdown",
			target:    feedTarget(fptr(24), fptr(48)),
			events:    []models.CareEvent{feedEvent(scheduleNow.Add(-40 * time.Hour))},
			wantRisk:  models.ScheduleDueSoon,
			wantUntil: fptr(8),
		},
		{
			name:      "future-dated feed clamps the countdown math",
			target:    feedTarget(nil, fptr(48)),
			events:    []models.CareEvent{feedEvent(scheduleNow.Add(2 * time.Hour))},
			wantRisk:  models.ScheduleDueSoon,
			wantUntil: fptr(50),
		},
		{
			name:     "min-only config still evaluates but never overdue",
			target:   feedTarget(fptr(24), nil),
			events:   []models.CareEvent{feedEvent(scheduleNow.Add(-500 * time.Hour))},
			wantRisk: models.ScheduleDueSoon,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc := newScheduleService(tc.target, tc.events)
			got, err := svc.EvaluateFeeding(context.Background(), "p1")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tc.wantNil {
				if got != nil {
					t.Fatalf("want absent result, got %+v", got)
				}
				return
			}
			if got == nil {
				t.Fatal("want a result, got nil")
			}
			if !got.ShouldWarn {
				t.Error("ShouldWarn must be true whenever a result is produced")
			}
			if got.Risk != tc.wantRisk {
				t.Errorf("Risk: want %q, got %q", tc.wantRisk, got.Risk)
			}
			if tc.wantNoLast && got.LastFedAt != nil {
				t.Errorf("LastFedAt: want nil, got %v", got.LastFedAt)
			}
			if tc.wantUntil != nil {
				if got.HoursUntilNext == nil {
					t.Fatalf("HoursUntilNext: want %v, got nil", *tc.wantUntil)
				}
				if diff := *got.HoursUntilNext - *tc.wantUntil; diff > 1e-9 || diff < -1e-9 {
					t.Errorf("HoursUntilNext: want %v, got %v", *tc.wantUntil, *got.HoursUntilNext)
				}
			}
			if got.HoursUntilNext != nil && *got.HoursUntilNext < 0 {
				t.Errorf("HoursUntilNext must never be negative, got %v", *got.HoursUntilNext)
			}
		})
	}
}

// Once now passes lastFeedAt+maxHours the verdict flips to overdue and
// stays there as now keeps advancing.
func TestEvaluateFeeding_OverdueMonotonic(t *testing.T) {
	t.Parallel()

	lastFed := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	const maxHours = 48.0

	svc := NewScheduleService(
		&stubTargets{target: feedTarget(nil, fptr(maxHours))},
		&stubEventRepo{events: []models.CareEvent{feedEvent(lastFed)}},
	)

	flipped := false
	for h := 0.0; h <= 96; h += 0.5 {
		now := lastFed.Add(time.Duration(h * float64(time.Hour)))
		svc.now = func() time.Time { return now }

		got, err := svc.EvaluateFeeding(context.Background(), "p1")
		if err != nil {
			t.Fatalf("unexpected error at %v: %v", h, err)
		}
		overdue := got.Risk == models.ScheduleOverdue
		if h <= maxHours && overdue {
			t.Fatalf("flipped to overdue too early at %.1fh", h)
		}
		if flipped && !overdue {
			t.Fatalf("flipped back to due_soon at %.1fh", h)
		}
		if overdue {
			flipped = true
		}
	}
	if !flipped {
		t.Fatal("never became overdue past the max bound")
	}
}

func calciumTarget(every int) *models.EffectiveTarget {
	return &models.EffectiveTarget{
		SpeciesTarget: models.SpeciesTarget{CalciumEveryMeals: iptr(every)},
		PetID:         "p1",
	}
}

func TestEvaluateCalcium(t *testing.T) {
	t.Parallel()

	calciumAt := scheduleNow.Add(-72 * time.Hour)

	cases := []struct {
		name          string
		target        *models.EffectiveTarget
		events        []models.CareEvent
		wantNil       bool
		wantRisk      models.ScheduleRisk
		wantMeals     *int
		wantRemaining *int
	}{
		{
			name:    "absent without calcium cadence config",
			target:  &models.EffectiveTarget{},
			wantNil: true,
		},
		{
			name:     "no history is overdue",
			target:   calciumTarget(3),
			wantRisk: models.ScheduleOverdue,
		},
		{
			name:   "two meals since calcium leaves one remaining",
			target: calciumTarget(3),
			events: []models.CareEvent{
				{PetID: "p1", Type: models.EventCalcium, OccurredAt: calciumAt},
				feedEvent(calciumAt.Add(12 * time.Hour)),
				feedEvent(calciumAt.Add(36 * time.Hour)),
			},
			wantRisk:      models.ScheduleDueSoon,
			wantMeals:     iptr(2),
			wantRemaining: iptr(1),
		},
		{
			name:   "meals before the calcium event do not count",
			target: calciumTarget(3),
			events: []models.CareEvent{
				feedEvent(calciumAt.Add(-2 * time.Hour)),
				{PetID: "p1", Type: models.EventCalcium, OccurredAt: calciumAt},
				feedEvent(calciumAt.Add(12 * time.Hour)),
			},
			wantRisk:      models.ScheduleDueSoon,
			wantMeals:     iptr(1),
			wantRemaining: iptr(2),
		},
		{
			name:   "past the cadence is overdue",
			target: calciumTarget(3),
			events: []models.CareEvent{
				{PetID: "p1", Type: models.EventCalcium, OccurredAt: calciumAt},
				feedEvent(calciumAt.Add(6 * time.Hour)),
				feedEvent(calciumAt.Add(18 * time.Hour)),
				feedEvent(calciumAt.Add(30 * time.Hour)),
				feedEvent(calciumAt.Add(42 * time.Hour)),
			},
			wantRisk:  models.ScheduleOverdue,
			wantMeals: iptr(4),
		},
		{
			name:   "exactly at the cadence stays due_soon with zero remaining",
			target: calciumTarget(3),
			events: []models.CareEvent{
				{PetID: "p1", Type: models.EventCalcium, OccurredAt: calciumAt},
				feedEvent(calciumAt.Add(6 * time.Hour)),
				feedEvent(calciumAt.Add(18 * time.Hour)),
				feedEvent(calciumAt.Add(30 * time.Hour)),
			},
			wantRisk:      models.ScheduleDueSoon,
			wantMeals:     iptr(3),
			wantRemaining: iptr(0),
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc := newScheduleService(tc.target, tc.events)
			got, err := svc.EvaluateCalcium(context.Background(), "p1")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tc.wantNil {
				if got != nil {
					t.Fatalf("want absent result, got %+v", got)
				}
				return
			}
			if got == nil {
				t.Fatal("want a result, got nil")
			}
			if !got.ShouldWarn {
				t.Error("ShouldWarn must be true whenever a result is produced")
			}
			if got.Risk != tc.wantRisk {
				t.Errorf("Risk: want %q, got %q", tc.wantRisk, got.Risk)
			}
			if tc.wantMeals != nil {
				if got.MealsSinceLast == nil || *got.MealsSinceLast != *tc.wantMeals {
					t.Errorf("MealsSinceLast: want %d, got %v", *tc.wantMeals, got.MealsSinceLast)
				}
			}
			if tc.wantRemaining != nil {
				if got.MealsRemainingUntilNext == nil || *got.MealsRemainingUntilNext != *tc.wantRemaining {
					t.Errorf("MealsRemainingUntilNext: want %d, got %v", *tc.wantRemaining, got.MealsRemainingUntilNext)
				}
			}
			if got.MealsRemainingUntilNext != nil && *got.MealsRemainingUntilNext < 0 {
				t.Errorf("MealsRemainingUntilNext must never be negative, got %d", *got.MealsRemainingUntilNext)
			}
		})
	}
}

func d3Target(maxDays float64) *models.EffectiveTarget {
	return &models.EffectiveTarget{
		SpeciesTarget: models.SpeciesTarget{D3IntervalDaysMax: fptr(maxDays)},
		PetID:         "p1",
	}
}

func TestEvaluateVitaminD3(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		target   *models.EffectiveTarget
		events   []models.CareEvent
		wantNil  bool
		wantRisk models.ScheduleRisk
		wantLast *time.Time
	}{
		{
			name:    "absent without D3 interval config",
			target:  &models.EffectiveTarget{},
			wantNil: true,
		},
		{
			name:     "no history is overdue",
			target:   d3Target(14),
			wantRisk: models.ScheduleOverdue,
		},
		{
			name:   "vitamin event qualifies",
			target: d3Target(14),
			events: []models.CareEvent{
				{PetID: "p1", Type: models.EventVitamin, OccurredAt: scheduleNow.Add(-3 * 24 * time.Hour)},
			},
			wantRisk: models.ScheduleDueSoon,
		},
		{
			name:   "calcium with d3 subtype qualifies",
			target: d3Target(14),
			events: []models.CareEvent{
				{PetID: "p1", Type: models.EventCalcium, Subtype: models.SubtypeD3, OccurredAt: scheduleNow.Add(-3 * 24 * time.Hour)},
			},
			wantRisk: models.ScheduleDueSoon,
		},
		{
			name:   "plain calcium does not qualify",
			target: d3Target(14),
			events: []models.CareEvent{
				{PetID: "p1", Type: models.EventCalcium, OccurredAt: scheduleNow.Add(-1 * 24 * time.Hour)},
			},
			wantRisk: models.ScheduleOverdue,
		},
		{
			name:   "merged timeline prefers the newer of vitamin and calcium-d3",
			target: d3Target(14),
			events: []models.CareEvent{
				{PetID: "p1", Type: models.EventVitamin, OccurredAt: scheduleNow.Add(-10 * 24 * time.Hour)},
				{PetID: "p1", Type: models.EventCalcium, Subtype: models.SubtypeD3, OccurredAt: scheduleNow.Add(-2 * 24 * time.Hour)},
			},
			wantRisk: models.ScheduleDueSoon,
			wantLast: tptr(scheduleNow.Add(-2 * 24 * time.Hour)),
		},
		{
			name:   "overdue past the max bound",
			target: d3Target(14),
			events: []models.CareEvent{
				{PetID: "p1", Type: models.EventVitamin, OccurredAt: scheduleNow.Add(-15 * 24 * time.Hour)},
			},
			wantRisk: models.ScheduleOverdue,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc := newScheduleService(tc.target, tc.events)
			got, err := svc.EvaluateVitaminD3(context.Background(), "p1")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tc.wantNil {
				if got != nil {
					t.Fatalf("want absent result, got %+v", got)
				}
				return
			}
			if got == nil {
				t.Fatal("want a result, got nil")
			}
			if !got.ShouldWarn {
				t.Error("ShouldWarn must be true whenever a result is produced")
			}
			if got.Risk != tc.wantRisk {
				t.Errorf("Risk: want %q, got %q", tc.wantRisk, got.Risk)
			}
			if tc.wantLast != nil {
				if got.LastD3At == nil || !got.LastD3At.Equal(*tc.wantLast) {
					t.Errorf("LastD3At: want %v, got %v", tc.wantLast, got.LastD3At)
				}
			}
			if got.DaysUntilNext != nil && *got.DaysUntilNext < 0 {
				t.Errorf("DaysUntilNext must never be negative, got %v", *got.DaysUntilNext)
			}
		})
	}
}

func tptr(t time.Time) *time.Time { return &t }
