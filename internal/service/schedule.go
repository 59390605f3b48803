package service

import (
	"context"
	"time"

	"herptrack/internal/models"
	"herptrack/internal/repository"
)

const hoursPerDay = 24.0

// ScheduleService computes the interval-based care reminders (feeding,
// calcium, vitamin D3). Each evaluation is a pure function of the resolved
// target and the pet's event history; nothing is cached between calls.
type ScheduleService struct {
	targets   Targets
	eventRepo repository.EventRepo
	now       func() time.Time
}

func NewScheduleService(targets Targets, eventRepo repository.EventRepo) *ScheduleService {
	return &ScheduleService{
		targets:   targets,
		eventRepo: eventRepo,
		now:       time.Now,
	}
}

// EvaluateFeeding classifies the pet's feeding urgency. Returns nil when
// the species has no feeding interval configured. With no prior feed event
// the verdict is due_soon with no countdown; once the elapsed hours exceed
// the max bound it becomes overdue. The result always warns once produced:
// a configured target always yields a reminder, never a silent all-good.
func (s *ScheduleService) EvaluateFeeding(ctx context.Context, petID string) (*models.FeedingSchedule, error) {
	target, err := s.targets.Resolve(ctx, petID)
	if err != nil {
		return nil, err
	}
	if target == nil || (target.FeedIntervalHoursMin == nil && target.FeedIntervalHoursMax == nil) {
		return nil, nil
	}

	last, err := s.eventRepo.Latest(ctx, petID, []string{models.EventFeed})
	if err != nil {
		return nil, err
	}

	res := &models.FeedingSchedule{
		Risk:       models.ScheduleDueSoon,
		MaxHours:   target.FeedIntervalHoursMax,
		ShouldWarn: true,
	}
	if last == nil {
		// Never fed on record: remind without a countdown.
		return res, nil
	}

	fedAt := last.OccurredAt
	elapsed := s.now().Sub(fedAt).Hours()
	res.LastFedAt = &fedAt
	res.HoursSinceLast = &elapsed

	if target.FeedIntervalHoursMax != nil {
		max := *target.FeedIntervalHoursMax
		if elapsed > max {
			res.Risk = models.ScheduleOverdue
		} else {
			remaining := max - elapsed
			if remaining < 0 {
				remaining = 0
			}
			res.HoursUntilNext = &remaining
		}
	}
	return res, nil
}

// EvaluateCalcium classifies calcium dusting urgency by meals elapsed since
// the last calcium event. Returns nil without a calcium_every_meals config.
// Unlike feeding, no prior calcium event classifies as overdue.
func (s *ScheduleService) EvaluateCalcium(ctx context.Context, petID string) (*models.CalciumSchedule, error) {
	target, err := s.targets.Resolve(ctx, petID)
	if err != nil {
		return nil, err
	}
	if target == nil || target.CalciumEveryMeals == nil {
		return nil, nil
	}
	every := *target.CalciumEveryMeals

	last, err := s.eventRepo.Latest(ctx, petID, []string{models.EventCalcium})
	if err != nil {
		return nil, err
	}

	res := &models.CalciumSchedule{
		EveryMeals: every,
		ShouldWarn: true,
	}
	if last == nil {
		res.Risk = models.ScheduleOverdue
		return res, nil
	}

	// Meals strictly after the last calcium event's timestamp.
	meals, err := s.eventRepo.CountSince(ctx, petID, models.EventFeed, last.OccurredAt)
	if err != nil {
		return nil, err
	}

	calciumAt := last.OccurredAt
	res.LastCalciumAt = &calciumAt
	res.MealsSinceLast = &meals

	if meals > every {
		res.Risk = models.ScheduleOverdue
		return res, nil
	}
	res.Risk = models.ScheduleDueSoon
	remaining := every - meals
	if remaining < 0 {
		remaining = 0
	}
	res.MealsRemainingUntilNext = &remaining
	return res, nil
}

// EvaluateVitaminD3 classifies D3 supplementation urgency in days. Both
// plain vitamin events and calcium events carrying the d3 subtype qualify;
// the merged timeline's most recent entry wins. No prior event is overdue.
func (s *ScheduleService) EvaluateVitaminD3(ctx context.Context, petID string) (*models.VitaminD3Schedule, error) {
	target, err := s.targets.Resolve(ctx, petID)
	if err != nil {
		return nil, err
	}
	if target == nil || (target.D3IntervalDaysMin == nil && target.D3IntervalDaysMax == nil) {
		return nil, nil
	}

	last, err := s.latestD3Event(ctx, petID)
	if err != nil {
		return nil, err
	}

	res := &models.VitaminD3Schedule{
		MaxDays:    target.D3IntervalDaysMax,
		ShouldWarn: true,
	}
	if last == nil {
		res.Risk = models.ScheduleOverdue
		return res, nil
	}

	d3At := last.OccurredAt
	elapsedDays := s.now().Sub(d3At).Hours() / hoursPerDay
	res.LastD3At = &d3At
	res.DaysSinceLast = &elapsedDays

	res.Risk = models.ScheduleDueSoon
	if target.D3IntervalDaysMax != nil {
		max := *target.D3IntervalDaysMax
		if elapsedDays > max {
			res.Risk = models.ScheduleOverdue
		} else {
			remaining := max - elapsedDays
			if remaining < 0 {
				remaining = 0
			}
			res.DaysUntilNext = &remaining
		}
	}
	return res, nil
}

// latestD3Event finds the most recent qualifying D3 supplementation event:
// the latest vitamin event, or the latest calcium event whose subtype is
// d3, whichever is newer.
func (s *ScheduleService) latestD3Event(ctx context.Context, petID string) (*models.CareEvent, error) {
	vitamin, err := s.eventRepo.Latest(ctx, petID, []string{models.EventVitamin})
	if err != nil {
		return nil, err
	}

	// The latest calcium row may be a plain dusting; scan the recent
	// history for the newest d3-subtyped one instead.
	calcium, err := s.eventRepo.List(ctx, petID, []string{models.EventCalcium}, time.Time{}, time.Time{})
	if err != nil {
		return nil, err
	}
	var calciumD3 *models.CareEvent
	for i := len(calcium) - 1; i >= 0; i-- {
		if calcium[i].Subtype == models.SubtypeD3 {
			calciumD3 = &calcium[i]
			break
		}
	}

	switch {
	case vitamin == nil:
		return calciumD3, nil
	case calciumD3 == nil:
		return vitamin, nil
	case calciumD3.OccurredAt.After(vitamin.OccurredAt):
		return calciumD3, nil
	default:
		return vitamin, nil
	}
}
