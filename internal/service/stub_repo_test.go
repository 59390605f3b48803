package service

import (
	"context"
	"sort"
	"time"

	"herptrack/internal/models"
)

// stubEventRepo is an in-memory EventRepo backed by a plain slice, with the
// same filtering semantics as the SQLite implementation.
type stubEventRepo struct {
	events []models.CareEvent
	err    error
}

func (s *stubEventRepo) Append(ctx context.Context, e models.CareEvent) error {
	if s.err != nil {
		return s.err
	}
	s.events = append(s.events, e)
	return nil
}

func matchesType(e models.CareEvent, types []string) bool {
	if len(types) == 0 {
		return true
	}
	for _, t := range types {
		if e.Type == t {
			return true
		}
	}
	return false
}

func (s *stubEventRepo) List(ctx context.Context, petID string, types []string, from, to time.Time) ([]models.CareEvent, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]models.CareEvent, 0, len(s.events))
	for _, e := range s.events {
		if e.PetID != petID || !matchesType(e, types) {
			continue
		}
		if !from.IsZero() && e.OccurredAt.Before(from) {
			continue
		}
		if !to.IsZero() && !e.OccurredAt.Before(to) {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OccurredAt.Before(out[j].OccurredAt) })
	return out, nil
}

func (s *stubEventRepo) Latest(ctx context.Context, petID string, types []string) (*models.CareEvent, error) {
	if s.err != nil {
		return nil, s.err
	}
	var latest *models.CareEvent
	for i := range s.events {
		e := s.events[i]
		if e.PetID != petID || !matchesType(e, types) {
			continue
		}
		if latest == nil || e.OccurredAt.After(latest.OccurredAt) {
			latest = &s.events[i]
		}
	}
	return latest, nil
}

func (s *stubEventRepo) CountSince(ctx context.Context, petID, typ string, after time.Time) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	n := 0
	for _, e := range s.events {
		if e.PetID == petID && e.Type == typ && e.OccurredAt.After(after) {
			n++
		}
	}
	return n, nil
}

// stubReadingRepo is an in-memory ReadingRepo.
type stubReadingRepo struct {
	readings []models.EnvReading
	err      error
}

func (s *stubReadingRepo) Append(ctx context.Context, r models.EnvReading) error {
	if s.err != nil {
		return s.err
	}
	s.readings = append(s.readings, r)
	return nil
}

func (s *stubReadingRepo) List(ctx context.Context, petID string, from, to time.Time) ([]models.EnvReading, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]models.EnvReading, 0, len(s.readings))
	for _, r := range s.readings {
		if r.PetID != petID || r.OccurredAt.Before(from) || !r.OccurredAt.Before(to) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// stubTargets satisfies the Targets interface with a fixed answer.
type stubTargets struct {
	target *models.EffectiveTarget
	err    error
}

func (s *stubTargets) Resolve(ctx context.Context, petID string) (*models.EffectiveTarget, error) {
	return s.target, s.err
}

// stubPetRepo is a minimal PetRepo for resolver and monitor tests.
type stubPetRepo struct {
	pets map[string]*models.Pet
	all  []models.Pet
	err  error
}

func (s *stubPetRepo) Create(ctx context.Context, p models.Pet) error { return s.err }
func (s *stubPetRepo) Get(ctx context.Context, id string) (*models.Pet, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.pets[id], nil
}
func (s *stubPetRepo) ListByOwner(ctx context.Context, ownerID int) ([]models.Pet, error) {
	return s.all, s.err
}
func (s *stubPetRepo) ListAll(ctx context.Context) ([]models.Pet, error) { return s.all, s.err }
func (s *stubPetRepo) Update(ctx context.Context, p models.Pet) error    { return s.err }
func (s *stubPetRepo) Delete(ctx context.Context, id string) error       { return s.err }

// stubTargetRepo keys rows by species/stage.
type stubTargetRepo struct {
	rows map[string]*models.SpeciesTarget // key: species + "/" + stage
	err  error
}

func (s *stubTargetRepo) Get(ctx context.Context, species, lifeStage string) (*models.SpeciesTarget, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.rows[species+"/"+lifeStage], nil
}

func (s *stubTargetRepo) Upsert(ctx context.Context, t models.SpeciesTarget) error { return s.err }

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }
