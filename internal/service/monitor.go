package service

import (
	"context"
	"time"

	"herptrack/internal/logger"
	"herptrack/internal/models"
	"herptrack/internal/repository"
)

// MonitorService periodically sweeps all pets and logs any overdue
// feeding/calcium/D3 reminders, so unattended installs still surface
// missed care in the process log.
type MonitorService struct {
	petRepo  repository.PetRepo
	schedule Schedule
	log      *logger.Logger
}

func NewMonitorService(petRepo repository.PetRepo, schedule Schedule) *MonitorService {
	return &MonitorService{
		petRepo:  petRepo,
		schedule: schedule,
		log:      logger.Get(logger.InfoLevel),
	}
}

// Run sweeps on every tick until the context is cancelled.
func (s *MonitorService) Run(ctx context.Context, tick time.Duration) {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *MonitorService) sweep(ctx context.Context) {
	pets, err := s.petRepo.ListAll(ctx)
	if err != nil {
		s.log.Errorw("monitor_list_pets_failed", "err", err)
		return
	}

	for _, pet := range pets {
		if feeding, err := s.schedule.EvaluateFeeding(ctx, pet.ID); err != nil {
			s.log.Errorw("monitor_feeding_failed", "pet_id", pet.ID, "err", err)
		} else if feeding != nil && feeding.Risk == models.ScheduleOverdue {
			s.log.Warnw("feeding_overdue", "pet_id", pet.ID, "name", pet.Name,
				"hours_since_last", feeding.HoursSinceLast)
		}

		if calcium, err := s.schedule.EvaluateCalcium(ctx, pet.ID); err != nil {
			s.log.Errorw("monitor_calcium_failed", "pet_id", pet.ID, "err", err)
		} else if calcium != nil && calcium.Risk == models.ScheduleOverdue {
			s.log.Warnw("calcium_overdue", "pet_id", pet.ID, "name", pet.Name,
				"meals_since_last", calcium.MealsSinceLast)
		}

		if d3, err := s.schedule.EvaluateVitaminD3(ctx, pet.ID); err != nil {
			s.log.Errorw("monitor_d3_failed", "pet_id", pet.ID, "err", err)
		} else if d3 != nil && d3.Risk == models.ScheduleOverdue {
			s.log.Warnw("vitamin_d3_overdue", "pet_id", pet.ID, "name", pet.Name,
				"days_since_last", d3.DaysSinceLast)
		}
	}
}
