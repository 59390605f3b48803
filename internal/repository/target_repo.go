package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"herptrack/internal/models"
)

type TargetSQLite struct {
	db *sql.DB
}

func NewTargetSQLite(db *sql.DB) *TargetSQLite { return &TargetSQLite{db: db} }

const selectTargetSQL = `
	SELECT species, life_stage,
	       ambient_temp_c_min, ambient_temp_c_max,
	       uvi_min, uvi_max,
	       feed_interval_h_min, feed_interval_h_max,
	       calcium_every_meals,
	       d3_interval_days_min, d3_interval_days_max,
	       photoperiod_h_min, photoperiod_h_max,
	       supplement_rule, diet_split, temp_zones
	FROM species_targets WHERE species = ? AND life_stage = ?
`

const upsertTargetSQL = `
	INSERT INTO species_targets (
		species, life_stage,
		ambient_temp_c_min, ambient_temp_c_max,
		uvi_min, uvi_max,
		feed_interval_h_min, feed_interval_h_max,
		calcium_every_meals,
		d3_interval_days_min, d3_interval_days_max,
		photoperiod_h_min, photoperiod_h_max,
		supplement_rule, diet_split, temp_zones
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(species, life_stage) DO UPDATE SET
		ambient_temp_c_min=excluded.ambient_temp_c_min,
		ambient_temp_c_max=excluded.ambient_temp_c_max,
		uvi_min=excluded.uvi_min,
		uvi_max=excluded.uvi_max,
		feed_interval_h_min=excluded.feed_interval_h_min,
		feed_interval_h_max=excluded.feed_interval_h_max,
		calcium_every_meals=excluded.calcium_every_meals,
		d3_interval_days_min=excluded.d3_interval_days_min,
		d3_interval_days_max=excluded.d3_interval_days_max,
		photoperiod_h_min=excluded.photoperiod_h_min,
		photoperiod_h_max=excluded.photoperiod_h_max,
		supplement_rule=excluded.supplement_rule,
		diet_split=excluded.diet_split,
		temp_zones=excluded.temp_zones
`

// marshalDietSplit encodes the split map, returning nil for an empty map so
// the column stays NULL.
func marshalDietSplit(m map[string]float64) (*string, error) {
	if len(m) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal diet split: %w", err)
	}
	s := string(b)
	return &s, nil
}

func marshalTempZones(zones []models.ZoneRange) (*string, error) {
	if len(zones) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(zones)
	if err != nil {
		return nil, fmt.Errorf("marshal temp zones: %w", err)
	}
	s := string(b)
	return &s, nil
}

// Get fetches the target row for an exact (species, life stage) pair. The
// JSON columns are decoded here so callers only ever see typed fields.
func (r *TargetSQLite) Get(ctx context.Context, species, lifeStage string) (*models.SpeciesTarget, error) {
	row := r.db.QueryRowContext(ctx, selectTargetSQL, species, lifeStage)

	var (
		t         models.SpeciesTarget
		rule      sql.NullString
		dietJSON  sql.NullString
		zonesJSON sql.NullString
	)
	err := row.Scan(
		&t.Species, &t.LifeStage,
		&t.AmbientTempCMin, &t.AmbientTempCMax,
		&t.UviMin, &t.UviMax,
		&t.FeedIntervalHoursMin, &t.FeedIntervalHoursMax,
		&t.CalciumEveryMeals,
		&t.D3IntervalDaysMin, &t.D3IntervalDaysMax,
		&t.PhotoperiodHoursMin, &t.PhotoperiodHoursMax,
		&rule, &dietJSON, &zonesJSON,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if rule.Valid {
		t.SupplementRule = rule.String
	}
	if dietJSON.Valid && dietJSON.String != "" {
		if err := json.Unmarshal([]byte(dietJSON.String), &t.DietSplit); err != nil {
			return nil, fmt.Errorf("decode diet split for %s/%s: %w", species, lifeStage, err)
		}
	}
	if zonesJSON.Valid && zonesJSON.String != "" {
		if err := json.Unmarshal([]byte(zonesJSON.String), &t.TempZones); err != nil {
			return nil, fmt.Errorf("decode temp zones for %s/%s: %w", species, lifeStage, err)
		}
	}
	return &t, nil
}

// Upsert inserts or replaces one target row.
func (r *TargetSQLite) Upsert(ctx context.Context, t models.SpeciesTarget) error {
	dietStr, err := marshalDietSplit(t.DietSplit)
	if err != nil {
		return err
	}
	zonesStr, err := marshalTempZones(t.TempZones)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, upsertTargetSQL,
		t.Species, t.LifeStage,
		t.AmbientTempCMin, t.AmbientTempCMax,
		t.UviMin, t.UviMax,
		t.FeedIntervalHoursMin, t.FeedIntervalHoursMax,
		t.CalciumEveryMeals,
		t.D3IntervalDaysMin, t.D3IntervalDaysMax,
		t.PhotoperiodHoursMin, t.PhotoperiodHoursMax,
		nullableString(t.SupplementRule), dietStr, zonesStr,
	)
	return err
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
