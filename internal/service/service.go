package service

import (
	"context"
	"time"

	"herptrack/internal/models"
	"herptrack/internal/repository"
)

type Authorization interface {
	SignUp(username, password string) (int, error)
	GenerateToken(username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Targets resolves the effective per-species thresholds for a pet.
// A (nil, nil) result means the pet or its target rows do not exist; that
// is a valid outcome, not an error.
type Targets interface {
	Resolve(ctx context.Context, petID string) (*models.EffectiveTarget, error)
}

// Schedule evaluates the interval-based care reminders. Each evaluator
// returns nil when the species has no configuration for that dimension.
type Schedule interface {
	EvaluateFeeding(ctx context.Context, petID string) (*models.FeedingSchedule, error)
	EvaluateCalcium(ctx context.Context, petID string) (*models.CalciumSchedule, error)
	EvaluateVitaminD3(ctx context.Context, petID string) (*models.VitaminD3Schedule, error)
}

// Forecast classifies an hourly weather series against the pet's target
// bands and merges consecutive same-risk hours into segments.
type Forecast interface {
	EvaluateTempNext24h(ctx context.Context, petID string, samples []models.HourlySample) (*models.TempRiskResult, error)
	EvaluateUvbNext24h(ctx context.Context, petID string, samples []models.HourlySample) (*models.UvbRiskResult, error)
}

// Compliance computes the longer-window husbandry report.
type Compliance interface {
	Report(ctx context.Context, petID string, from, to time.Time) (*models.ComplianceReport, error)
}

// CareLog is the append/list surface over the event history.
type CareLog interface {
	Record(ctx context.Context, e models.CareEvent) (*models.CareEvent, error)
	RecordReading(ctx context.Context, r models.EnvReading) (*models.EnvReading, error)
	List(ctx context.Context, petID string, types []string, from, to time.Time) ([]models.CareEvent, error)
	Latest(ctx context.Context, petID, typ string) (*models.CareEvent, error)
}

type Pets interface {
	Create(ctx context.Context, p models.Pet) (*models.Pet, error)
	Get(ctx context.Context, id string) (*models.Pet, error)
	ListByOwner(ctx context.Context, ownerID int) ([]models.Pet, error)
	Update(ctx context.Context, p models.Pet) error
	Delete(ctx context.Context, id string) error
	SetTarget(ctx context.Context, t models.SpeciesTarget) error
}

type Forum interface {
	Post(ctx context.Context, p models.ForumPost) (*models.ForumPost, error)
	List(ctx context.Context, species string, limit int) ([]models.ForumPost, error)
}

type Products interface {
	Recommend(ctx context.Context, species, category string) ([]models.Product, error)
}

// Monitor runs the background reminder sweep. Stop via context
// cancellation in main() for graceful shutdown.
type Monitor interface {
	Run(ctx context.Context, tick time.Duration)
}

// Service aggregates all sub-services.
type Service struct {
	Targets
	Schedule
	Forecast
	Compliance
	CareLog
	Pets
	Forum
	Products
	Monitor
	Authorization
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository) *Service {
	targets := NewTargetService(repos.Pets, repos.Targets)
	schedule := NewScheduleService(targets, repos.Events)
	return &Service{
		Targets:       targets,
		Schedule:      schedule,
		Forecast:      NewForecastService(targets),
		Compliance:    NewComplianceService(targets, repos.Events, repos.Readings),
		CareLog:       NewCareLogService(repos.Pets, repos.Events, repos.Readings),
		Pets:          NewPetService(repos.Pets, repos.Targets),
		Forum:         NewForumService(repos.Forum),
		Products:      NewProductService(repos.Products),
		Monitor:       NewMonitorService(repos.Pets, schedule),
		Authorization: NewAuthService(repos.Auth),
	}
}
