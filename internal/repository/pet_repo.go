package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"herptrack/internal/models"

	"github.com/google/uuid"
)

type PetSQLite struct {
	db *sql.DB
}

func NewPetSQLite(db *sql.DB) *PetSQLite { return &PetSQLite{db: db} }

const selectPetColumns = `id, owner_id, name, species, life_stage, sex, birth_date, weight_g, note, created_at, updated_at`

// Create inserts a new pet; a missing ID is generated.
func (r *PetSQLite) Create(ctx context.Context, p models.Pet) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = now
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pets (`+selectPetColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		p.ID, p.OwnerID, p.Name, p.Species, p.LifeStage, p.Sex,
		p.BirthDate, p.WeightG, p.Note,
		p.CreatedAt.Format(timestampLayout), p.UpdatedAt.Format(timestampLayout),
	)
	return err
}

// Get returns one pet, or nil when it does not exist.
func (r *PetSQLite) Get(ctx context.Context, id string) (*models.Pet, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+selectPetColumns+` FROM pets WHERE id = ?`, id)
	p, err := scanPet(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *PetSQLite) ListByOwner(ctx context.Context, ownerID int) ([]models.Pet, error) {
	return r.list(ctx, `SELECT `+selectPetColumns+` FROM pets WHERE owner_id = ? ORDER BY created_at ASC`, ownerID)
}

func (r *PetSQLite) ListAll(ctx context.Context) ([]models.Pet, error) {
	return r.list(ctx, `SELECT `+selectPetColumns+` FROM pets ORDER BY created_at ASC`)
}

func (r *PetSQLite) list(ctx context.Context, q string, args ...any) ([]models.Pet, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Pet, 0, 16)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update rewrites the mutable profile fields.
func (r *PetSQLite) Update(ctx context.Context, p models.Pet) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE pets SET name=?, species=?, life_stage=?, sex=?, birth_date=?, weight_g=?, note=?, updated_at=?
		WHERE id=?
	`,
		p.Name, p.Species, p.LifeStage, p.Sex, p.BirthDate, p.WeightG, p.Note,
		time.Now().UTC().Format(timestampLayout),
		p.ID,
	)
	return err
}

func (r *PetSQLite) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM pets WHERE id = ?`, id)
	return err
}

func scanPet(s rowScanner) (models.Pet, error) {
	var (
		p     models.Pet
		sex   sql.NullString
		birth sql.NullTime
		wg    sql.NullFloat64
		note  sql.NullString
	)
	if err := s.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Species, &p.LifeStage,
		&sex, &birth, &wg, &note, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return models.Pet{}, err
	}
	if sex.Valid {
		p.Sex = sex.String
	}
	if birth.Valid {
		t := birth.Time.UTC()
		p.BirthDate = &t
	}
	if wg.Valid {
		v := wg.Float64
		p.WeightG = &v
	}
	if note.Valid {
		p.Note = note.String
	}
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return p, nil
}
