package repository

import (
	"context"
	"database/sql"
	"time"

	"herptrack/internal/models"

	"github.com/google/uuid"
)

type ReadingSQLite struct {
	db *sql.DB
}

func NewReadingSQLite(db *sql.DB) *ReadingSQLite { return &ReadingSQLite{db: db} }

// Append stores one environment sample.
func (r *ReadingSQLite) Append(ctx context.Context, reading models.EnvReading) error {
	if reading.ID == "" {
		reading.ID = uuid.NewString()
	}
	if reading.OccurredAt.IsZero() {
		reading.OccurredAt = time.Now().UTC()
	} else {
		reading.OccurredAt = reading.OccurredAt.UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO env_readings (id, pet_id, zone, temp_c, occurred_at)
		VALUES (?, ?, ?, ?, ?)
	`,
		reading.ID, reading.PetID, reading.Zone, reading.TempC,
		reading.OccurredAt.Format(timestampLayout),
	)
	return err
}

// List returns a pet's readings in [from, to), ordered ascending.
func (r *ReadingSQLite) List(ctx context.Context, petID string, from, to time.Time) ([]models.EnvReading, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, pet_id, zone, temp_c, occurred_at FROM env_readings
		WHERE pet_id = ? AND occurred_at >= ? AND occurred_at < ?
		ORDER BY occurred_at ASC
	`,
		petID,
		from.UTC().Format(timestampLayout),
		to.UTC().Format(timestampLayout),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.EnvReading, 0, 64)
	for rows.Next() {
		var rd models.EnvReading
		if err := rows.Scan(&rd.ID, &rd.PetID, &rd.Zone, &rd.TempC, &rd.OccurredAt); err != nil {
			return nil, err
		}
		rd.OccurredAt = rd.OccurredAt.UTC()
		out = append(out, rd)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
