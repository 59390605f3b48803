package repository

import (
	"context"
	"database/sql"
	"time"

	"herptrack/internal/models"

	"github.com/google/uuid"
)

type ForumSQLite struct {
	db *sql.DB
}

func NewForumSQLite(db *sql.DB) *ForumSQLite { return &ForumSQLite{db: db} }

const defaultForumLimit = 50

// Create inserts a new forum post.
func (r *ForumSQLite) Create(ctx context.Context, p models.ForumPost) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	} else {
		p.CreatedAt = p.CreatedAt.UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO forum_posts (id, author_id, species, title, body, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		p.ID, p.AuthorID, nullableString(p.Species), p.Title, p.Body,
		p.CreatedAt.Format(timestampLayout),
	)
	return err
}

// List returns newest-first posts, optionally filtered by species.
func (r *ForumSQLite) List(ctx context.Context, species string, limit int) ([]models.ForumPost, error) {
	if limit <= 0 {
		limit = defaultForumLimit
	}

	q := `SELECT id, author_id, species, title, body, created_at FROM forum_posts`
	args := []any{}
	if species != "" {
		q += ` WHERE species = ?`
		args = append(args, species)
	}
	q += ` ORDER BY created_at DESC LIMIT ?`
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.ForumPost, 0, limit)
	for rows.Next() {
		var (
			p  models.ForumPost
			sp sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.AuthorID, &sp, &p.Title, &p.Body, &p.CreatedAt); err != nil {
			return nil, err
		}
		if sp.Valid {
			p.Species = sp.String
		}
		p.CreatedAt = p.CreatedAt.UTC()
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
