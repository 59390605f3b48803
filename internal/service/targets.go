package service

import (
	"context"

	"herptrack/internal/models"
	"herptrack/internal/repository"
)

// TargetService resolves a pet's effective species target.
type TargetService struct {
	petRepo    repository.PetRepo
	targetRepo repository.TargetRepo
}

func NewTargetService(petRepo repository.PetRepo, targetRepo repository.TargetRepo) *TargetService {
	return &TargetService{petRepo: petRepo, targetRepo: targetRepo}
}

// Resolve fetches the target row for the pet's exact (species, life stage)
// pair, falling back to the opposite life stage when that row is missing.
// Returns (nil, nil) when the pet does not exist or no target row exists in
// either stage; downstream evaluators treat that as "cannot evaluate".
func (s *TargetService) Resolve(ctx context.Context, petID string) (*models.EffectiveTarget, error) {
	pet, err := s.petRepo.Get(ctx, petID)
	if err != nil {
		return nil, err
	}
	if pet == nil {
		return nil, nil
	}

	stage := pet.LifeStage
	target, err := s.targetRepo.Get(ctx, pet.Species, stage)
	if err != nil {
		return nil, err
	}
	if target == nil {
		stage = models.OtherStage(pet.LifeStage)
		target, err = s.targetRepo.Get(ctx, pet.Species, stage)
		if err != nil {
			return nil, err
		}
	}
	if target == nil {
		return nil, nil
	}

	return &models.EffectiveTarget{
		SpeciesTarget: *target,
		PetID:         pet.ID,
		ResolvedStage: stage,
	}, nil
}
