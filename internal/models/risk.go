package models

import "time"

// ScheduleRisk is the two-tier urgency classification for interval-based
// care actions.
type ScheduleRisk string

const (
	ScheduleDueSoon ScheduleRisk = "due_soon"
	ScheduleOverdue ScheduleRisk = "overdue"
)

// FeedingSchedule is the feeding evaluator's verdict. A nil result (not a
// zero value) means the species has no feeding interval configured.
type FeedingSchedule struct {
	Risk           ScheduleRisk `json:"risk"`
	LastFedAt      *time.Time   `json:"last_fed_at,omitempty"`
	HoursSinceLast *float64     `json:"hours_since_last,omitempty"`
	HoursUntilNext *float64     `json:"hours_until_next,omitempty"`
	MaxHours       *float64     `json:"max_hours,omitempty"`
	ShouldWarn     bool         `json:"should_warn"`
}

// CalciumSchedule is the calcium evaluator's verdict.
type CalciumSchedule struct {
	Risk                    ScheduleRisk `json:"risk"`
	LastCalciumAt           *time.Time   `json:"last_calcium_at,omitempty"`
	MealsSinceLast          *int         `json:"meals_since_last,omitempty"`
	MealsRemainingUntilNext *int         `json:"meals_remaining_until_next,omitempty"`
	EveryMeals              int          `json:"every_meals"`
	ShouldWarn              bool         `json:"should_warn"`
}

// VitaminD3Schedule is the vitamin D3 evaluator's verdict.
type VitaminD3Schedule struct {
	Risk          ScheduleRisk `json:"risk"`
	LastD3At      *time.Time   `json:"last_d3_at,omitempty"`
	DaysSinceLast *float64     `json:"days_since_last,omitempty"`
	DaysUntilNext *float64     `json:"days_until_next,omitempty"`
	MaxDays       *float64     `json:"max_days,omitempty"`
	ShouldWarn    bool         `json:"should_warn"`
}
