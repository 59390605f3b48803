package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"herptrack/internal/models"
	"herptrack/internal/repository"

	"github.com/google/uuid"
)

var (
	errUnknownEventType = errors.New("unknown care event type")
	errUnknownPet       = errors.New("pet not found")
	errInvalidTimeRange = errors.New("invalid time range: from must be <= to")
)

// CareLogService validates and appends care events and environment
// readings, and exposes windowed reads over the history.
type CareLogService struct {
	petRepo     repository.PetRepo
	eventRepo   repository.EventRepo
	readingRepo repository.ReadingRepo
}

func NewCareLogService(petRepo repository.PetRepo, eventRepo repository.EventRepo, readingRepo repository.ReadingRepo) *CareLogService {
	return &CareLogService{petRepo: petRepo, eventRepo: eventRepo, readingRepo: readingRepo}
}

// Record validates and stores one care event, filling in ID and timestamp.
func (s *CareLogService) Record(ctx context.Context, e models.CareEvent) (*models.CareEvent, error) {
	e.Type = strings.ToLower(strings.TrimSpace(e.Type))
	e.Subtype = strings.ToLower(strings.TrimSpace(e.Subtype))
	if !models.KnownEventType(e.Type) {
		return nil, fmt.Errorf("%w: %q", errUnknownEventType, e.Type)
	}

	pet, err := s.petRepo.Get(ctx, e.PetID)
	if err != nil {
		return nil, err
	}
	if pet == nil {
		return nil, errUnknownPet
	}

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	} else {
		e.OccurredAt = e.OccurredAt.UTC()
	}

	if err := s.eventRepo.Append(ctx, e); err != nil {
		return nil, err
	}
	return &e, nil
}

// RecordReading stores one enclosure temperature sample.
func (s *CareLogService) RecordReading(ctx context.Context, r models.EnvReading) (*models.EnvReading, error) {
	pet, err := s.petRepo.Get(ctx, r.PetID)
	if err != nil {
		return nil, err
	}
	if pet == nil {
		return nil, errUnknownPet
	}

	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.OccurredAt.IsZero() {
		r.OccurredAt = time.Now().UTC()
	} else {
		r.OccurredAt = r.OccurredAt.UTC()
	}

	if err := s.readingRepo.Append(ctx, r); err != nil {
		return nil, err
	}
	return &r, nil
}

// List returns events in [from, to) filtered by type.
func (s *CareLogService) List(ctx context.Context, petID string, types []string, from, to time.Time) ([]models.CareEvent, error) {
	from, to = normalizeToUTC(from), normalizeToUTC(to)
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return nil, errInvalidTimeRange
	}
	for i, t := range types {
		types[i] = strings.ToLower(strings.TrimSpace(t))
	}
	return s.eventRepo.List(ctx, petID, types, from, to)
}

// Latest returns the most recent event of one type, or nil when none exists.
func (s *CareLogService) Latest(ctx context.Context, petID, typ string) (*models.CareEvent, error) {
	typ = strings.ToLower(strings.TrimSpace(typ))
	if !models.KnownEventType(typ) {
		return nil, fmt.Errorf("%w: %q", errUnknownEventType, typ)
	}
	return s.eventRepo.Latest(ctx, petID, []string{typ})
}

// normalizeToUTC returns t in UTC, preserving zero values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}
