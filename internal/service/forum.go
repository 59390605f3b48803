package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"herptrack/internal/models"
	"herptrack/internal/repository"

	"github.com/google/uuid"
)

var errPostIncomplete = errors.New("forum post needs a title and a body")

// ForumService is the keeper forum.
type ForumService struct {
	forumRepo repository.ForumRepo
}

func NewForumService(forumRepo repository.ForumRepo) *ForumService {
	return &ForumService{forumRepo: forumRepo}
}

// Post validates and stores a new forum post.
func (s *ForumService) Post(ctx context.Context, p models.ForumPost) (*models.ForumPost, error) {
	p.Title = strings.TrimSpace(p.Title)
	p.Body = strings.TrimSpace(p.Body)
	p.Species = strings.ToLower(strings.TrimSpace(p.Species))
	if p.Title == "" || p.Body == "" {
		return nil, errPostIncomplete
	}

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.CreatedAt = time.Now().UTC()

	if err := s.forumRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns newest-first posts, optionally scoped to one species.
func (s *ForumService) List(ctx context.Context, species string, limit int) ([]models.ForumPost, error) {
	return s.forumRepo.List(ctx, strings.ToLower(strings.TrimSpace(species)), limit)
}
