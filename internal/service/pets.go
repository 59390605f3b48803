package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"herptrack/internal/models"
	"herptrack/internal/repository"

	"github.com/google/uuid"
)

var (
	errPetNameRequired    = errors.New("pet name is required")
	errSpeciesRequired    = errors.New("species is required")
	errInvalidLifeStage   = errors.New("life stage must be juvenile or adult")
	errTargetBoundsSwap   = errors.New("target min bound exceeds max bound")
	errTargetStageInvalid = errors.New("target life stage must be juvenile or adult")
)

// PetService manages pet profiles and their species targets.
type PetService struct {
	petRepo    repository.PetRepo
	targetRepo repository.TargetRepo
}

func NewPetService(petRepo repository.PetRepo, targetRepo repository.TargetRepo) *PetService {
	return &PetService{petRepo: petRepo, targetRepo: targetRepo}
}

func validStage(stage string) bool {
	return stage == models.StageJuvenile || stage == models.StageAdult
}

// Create validates and stores a new pet profile.
func (s *PetService) Create(ctx context.Context, p models.Pet) (*models.Pet, error) {
	p.Name = strings.TrimSpace(p.Name)
	p.Species = strings.ToLower(strings.TrimSpace(p.Species))
	p.LifeStage = strings.ToLower(strings.TrimSpace(p.LifeStage))

	if p.Name == "" {
		return nil, errPetNameRequired
	}
	if p.Species == "" {
		return nil, errSpeciesRequired
	}
	if !validStage(p.LifeStage) {
		return nil, errInvalidLifeStage
	}

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	if err := s.petRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Get returns a pet, or nil when it does not exist.
func (s *PetService) Get(ctx context.Context, id string) (*models.Pet, error) {
	return s.petRepo.Get(ctx, id)
}

func (s *PetService) ListByOwner(ctx context.Context, ownerID int) ([]models.Pet, error) {
	return s.petRepo.ListByOwner(ctx, ownerID)
}

// Update rewrites a pet's profile fields after validation.
func (s *PetService) Update(ctx context.Context, p models.Pet) error {
	p.LifeStage = strings.ToLower(strings.TrimSpace(p.LifeStage))
	if !validStage(p.LifeStage) {
		return errInvalidLifeStage
	}
	existing, err := s.petRepo.Get(ctx, p.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return errUnknownPet
	}
	return s.petRepo.Update(ctx, p)
}

func (s *PetService) Delete(ctx context.Context, id string) error {
	return s.petRepo.Delete(ctx, id)
}

// SetTarget validates and upserts a species target row. Paired bounds must
// be ordered when both are present.
func (s *PetService) SetTarget(ctx context.Context, t models.SpeciesTarget) error {
	t.Species = strings.ToLower(strings.TrimSpace(t.Species))
	t.LifeStage = strings.ToLower(strings.TrimSpace(t.LifeStage))
	if t.Species == "" {
		return errSpeciesRequired
	}
	if !validStage(t.LifeStage) {
		return errTargetStageInvalid
	}

	for _, pair := range [][2]*float64{
		{t.AmbientTempCMin, t.AmbientTempCMax},
		{t.UviMin, t.UviMax},
		{t.FeedIntervalHoursMin, t.FeedIntervalHoursMax},
		{t.D3IntervalDaysMin, t.D3IntervalDaysMax},
		{t.PhotoperiodHoursMin, t.PhotoperiodHoursMax},
	} {
		if pair[0] != nil && pair[1] != nil && *pair[0] > *pair[1] {
			return errTargetBoundsSwap
		}
	}
	return s.targetRepo.Upsert(ctx, t)
}
