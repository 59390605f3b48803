package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"herptrack/internal/models"

	"github.com/google/uuid"
)

type EventSQLite struct {
	db *sql.DB
}

func NewEventSQLite(db *sql.DB) *EventSQLite { return &EventSQLite{db: db} }

// timestampLayout is the SQLite TIMESTAMP text format.
const timestampLayout = "2006-01-02 15:04:05"

// Append inserts a new care event. Missing ID and OccurredAt are filled in.
func (r *EventSQLite) Append(ctx context.Context, e models.CareEvent) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	} else {
		e.OccurredAt = e.OccurredAt.UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO care_events (id, pet_id, type, subtype, value, unit, note, occurred_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		e.ID,
		e.PetID,
		strings.ToLower(strings.TrimSpace(e.Type)),
		strings.ToLower(strings.TrimSpace(e.Subtype)),
		e.Value,
		e.Unit,
		e.Note,
		e.OccurredAt.Format(timestampLayout),
	)
	return err
}

// List returns a pet's events restricted to the half-open window [from, to)
// and, when types is non-empty, to the given event types. Ordered by
// occurred_at ascending.
func (r *EventSQLite) List(ctx context.Context, petID string, types []string, from, to time.Time) ([]models.CareEvent, error) {
	conds := []string{"pet_id = ?"}
	args := []any{petID}

	if !from.IsZero() {
		conds = append(conds, "occurred_at >= ?")
		args = append(args, from.UTC().Format(timestampLayout))
	}
	if !to.IsZero() {
		conds = append(conds, "occurred_at < ?")
		args = append(args, to.UTC().Format(timestampLayout))
	}
	if len(types) > 0 {
		placeholders := make([]string, len(types))
		for i, t := range types {
			placeholders[i] = "?"
			args = append(args, strings.ToLower(strings.TrimSpace(t)))
		}
		conds = append(conds, "type IN ("+strings.Join(placeholders, ", ")+")")
	}

	q := `SELECT id, pet_id, type, subtype, value, unit, note, occurred_at FROM care_events WHERE ` +
		strings.Join(conds, " AND ") + ` ORDER BY occurred_at ASC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.CareEvent, 0, 64)
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Latest returns the most recent event of any of the given types, or nil
// when the pet has none.
func (r *EventSQLite) Latest(ctx context.Context, petID string, types []string) (*models.CareEvent, error) {
	conds := []string{"pet_id = ?"}
	args := []any{petID}

	if len(types) > 0 {
		placeholders := make([]string, len(types))
		for i, t := range types {
			placeholders[i] = "?"
			args = append(args, strings.ToLower(strings.TrimSpace(t)))
		}
		conds = append(conds, "type IN ("+strings.Join(placeholders, ", ")+")")
	}

	q := `SELECT id, pet_id, type, subtype, value, unit, note, occurred_at FROM care_events WHERE ` +
		strings.Join(conds, " AND ") + ` ORDER BY occurred_at DESC LIMIT 1`

	row := r.db.QueryRowContext(ctx, q, args...)
	ev, err := scanEventRow(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &ev, nil
}

// CountSince counts events of one type strictly after the given instant.
func (r *EventSQLite) CountSince(ctx context.Context, petID, typ string, after time.Time) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM care_events WHERE pet_id = ? AND type = ? AND occurred_at > ?
	`,
		petID,
		strings.ToLower(strings.TrimSpace(typ)),
		after.UTC().Format(timestampLayout),
	).Scan(&n)
	if err != nil {
		return 0, err
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(rows *sql.Rows) (models.CareEvent, error) {
	return scanEventRow(rows)
}

func scanEventRow(s rowScanner) (models.CareEvent, error) {
	var (
		ev      models.CareEvent
		subtype sql.NullString
		value   sql.NullFloat64
		unit    sql.NullString
		note    sql.NullString
	)
	if err := s.Scan(&ev.ID, &ev.PetID, &ev.Type, &subtype, &value, &unit, &note, &ev.OccurredAt); err != nil {
		return models.CareEvent{}, err
	}
	if subtype.Valid {
		ev.Subtype = subtype.String
	}
	if value.Valid {
		v := value.Float64
		ev.Value = &v
	}
	if unit.Valid {
		ev.Unit = unit.String
	}
	if note.Valid {
		ev.Note = note.String
	}
	ev.OccurredAt = ev.OccurredAt.UTC()
	return ev, nil
}
