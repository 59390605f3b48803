package repository

import (
	"context"
	"database/sql"
	"time"

	"herptrack/internal/models"
	"herptrack/internal/repository/db"
)

type Authorization interface {
	Create(username, hash string) (int, error)
	GetByUsername(username string) (*models.User, error)
}

type PetRepo interface {
	Create(ctx context.Context, p models.Pet) error
	Get(ctx context.Context, id string) (*models.Pet, error)
	ListByOwner(ctx context.Context, ownerID int) ([]models.Pet, error)
	ListAll(ctx context.Context) ([]models.Pet, error)
	Update(ctx context.Context, p models.Pet) error
	Delete(ctx context.Context, id string) error
}

type TargetRepo interface {
	Get(ctx context.Context, species, lifeStage string) (*models.SpeciesTarget, error)
	Upsert(ctx context.Context, t models.SpeciesTarget) error
}

// EventRepo is the append-only care log. List uses the half-open window
// [from, to); zero times disable the corresponding bound. CountSince uses
// a strict lower bound on occurred_at.
type EventRepo interface {
	Append(ctx context.Context, e models.CareEvent) error
	List(ctx context.Context, petID string, types []string, from, to time.Time) ([]models.CareEvent, error)
	Latest(ctx context.Context, petID string, types []string) (*models.CareEvent, error)
	CountSince(ctx context.Context, petID, typ string, after time.Time) (int, error)
}

type ReadingRepo interface {
	Append(ctx context.Context, r models.EnvReading) error
	List(ctx context.Context, petID string, from, to time.Time) ([]models.EnvReading, error)
}

type ForumRepo interface {
	Create(ctx context.Context, p models.ForumPost) error
	List(ctx context.Context, species string, limit int) ([]models.ForumPost, error)
}

type ProductRepo interface {
	List(ctx context.Context, species, category string) ([]models.Product, error)
}

type Repository struct {
	Auth     Authorization
	Pets     PetRepo
	Targets  TargetRepo
	Events   EventRepo
	Readings ReadingRepo
	Forum    ForumRepo
	Products ProductRepo
}

func NewRepository(sqlDB *sql.DB) *Repository {
	return &Repository{
		Auth:     NewUserRepository(sqlDB),
		Pets:     NewPetSQLite(sqlDB),
		Targets:  NewTargetSQLite(sqlDB),
		Events:   NewEventSQLite(sqlDB),
		Readings: NewReadingSQLite(sqlDB),
		Forum:    NewForumSQLite(sqlDB),
		Products: NewProductSQLite(sqlDB),
	}
}

// InitDB opens the SQLite file and ensures the schema exists.
func InitDB(path string) (*sql.DB, error) {
	return db.InitDB(path)
}
