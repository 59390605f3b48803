package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const sqliteDriverName = "sqlite"

// InitDB opens/creates the SQLite file and ensures all tables exist.
func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open(sqliteDriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %q: %w", path, err)
	}

	// SQLite tolerates at most one writer; keep the pool tiny.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA foreign_keys = ON;",
		"PRAGMA busy_timeout = 5000;",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return db, nil
}

const schemaUsers = `
CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    username TEXT UNIQUE NOT NULL,
    password_hash TEXT NOT NULL
);
`

const schemaPets = `
CREATE TABLE IF NOT EXISTS pets (
    id TEXT PRIMARY KEY,
    owner_id INTEGER NOT NULL REFERENCES users(id),
    name TEXT NOT NULL,
    species TEXT NOT NULL,
    life_stage TEXT NOT NULL,
    sex TEXT,
    birth_date TIMESTAMP,
    weight_g REAL,
    note TEXT,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);
`

const schemaSpeciesTargets = `
CREATE TABLE IF NOT EXISTS species_targets (
    species TEXT NOT NULL,
    life_stage TEXT NOT NULL,
    ambient_temp_c_min REAL,
    ambient_temp_c_max REAL,
    uvi_min REAL,
    uvi_max REAL,
    feed_interval_h_min REAL,
    feed_interval_h_max REAL,
    calcium_every_meals INTEGER,
    d3_interval_days_min REAL,
    d3_interval_days_max REAL,
    photoperiod_h_min REAL,
    photoperiod_h_max REAL,
    supplement_rule TEXT,
    diet_split TEXT,
    temp_zones TEXT,
    PRIMARY KEY (species, life_stage)
);
`

const schemaCareEvents = `
CREATE TABLE IF NOT EXISTS care_events (
    id TEXT PRIMARY KEY,
    pet_id TEXT NOT NULL REFERENCES pets(id),
    type TEXT NOT NULL,
    subtype TEXT,
    value REAL,
    unit TEXT,
    note TEXT,
    occurred_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_care_events_pet_time ON care_events(pet_id, occurred_at);
`

const schemaEnvReadings = `
CREATE TABLE IF NOT EXISTS env_readings (
    id TEXT PRIMARY KEY,
    pet_id TEXT NOT NULL REFERENCES pets(id),
    zone TEXT NOT NULL,
    temp_c REAL NOT NULL,
    occurred_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_env_readings_pet_time ON env_readings(pet_id, occurred_at);
`

const schemaForumPosts = `
CREATE TABLE IF NOT EXISTS forum_posts (
    id TEXT PRIMARY KEY,
    author_id INTEGER NOT NULL REFERENCES users(id),
    species TEXT,
    title TEXT NOT NULL,
    body TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);
`

const schemaProducts = `
CREATE TABLE IF NOT EXISTS products (
    id TEXT PRIMARY KEY,
    species TEXT,
    category TEXT,
    name TEXT NOT NULL,
    url TEXT,
    note TEXT
);
`

func ensureSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for i, stmt := range []string{
		schemaUsers,
		schemaPets,
		schemaSpeciesTargets,
		schemaCareEvents,
		schemaEnvReadings,
		schemaForumPosts,
		schemaProducts,
	} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema transaction: %w", err)
	}
	return nil
}
