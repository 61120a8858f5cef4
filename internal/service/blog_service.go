package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/abim/abim-backend/internal/model"
	"github.com/abim/abim-backend/internal/repository"
	"github.com/rs/zerolog"
)

// BlogService handles blog post business logic.
type BlogService struct {
	repo       BlogStore
	activities ActivityLogger
	log        zerolog.Logger
}

// NewBlogService creates a new BlogService.
func NewBlogService(repo BlogStore, activities ActivityLogger, log zerolog.Logger) *BlogService {
	return &BlogService{
		repo:       repo,
		activities: activities,
		log:        log.With().Str("component", "blog_service").Logger(),
	}
}

// List returns every post, newest first.
func (s *BlogService) List(ctx context.Context) ([]model.Blog, error) {
	return s.repo.List(ctx)
}

// Get returns one post.
func (s *BlogService) Get(ctx context.Context, id int) (*model.Blog, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, blogErr(err)
	}
	return b, nil
}

// Create publishes a new post.
func (s *BlogService) Create(ctx context.Context, req *model.BlogRequest) (*model.Blog, error) {
	b := blogFromRequest(req)
	if strings.TrimSpace(b.Title) == "" {
		return nil, &ValidationError{Fields: map[string]string{"title": "title is a required field"}}
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("create blog: %w", err)
	}
	s.record(ctx, model.ActivityBlog, fmt.Sprintf("Yeni blog yazısı yayınlandı: <strong>%s</strong>", b.Title))
	return b, nil
}

// Update overwrites every editable field of a post.
func (s *BlogService) Update(ctx context.Context, id int, req *model.BlogRequest) (*model.Blog, error) {
	b := blogFromRequest(req)
	b.ID = id
	if strings.TrimSpace(b.Title) == "" {
		return nil, &ValidationError{Fields: map[string]string{"title": "title is a required field"}}
	}
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, blogErr(err)
	}
	s.record(ctx, model.ActivityBlogUpdated, fmt.Sprintf("<strong>%s</strong> blog yazısı güncellendi", b.Title))
	return b, nil
}

// Delete removes a post. Deletions are not written to the activity feed.
func (s *BlogService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return blogErr(err)
	}
	return nil
}

func (s *BlogService) record(ctx context.Context, kind model.ActivityType, message string) {
	if err := s.activities.Log(ctx, kind, message); err != nil {
		s.log.Error().Err(err).Str("type", string(kind)).Msg("Failed to record activity")
	}
}

func blogFromRequest(req *model.BlogRequest) *model.Blog {
	return &model.Blog{
		Title:    strings.TrimSpace(req.Title),
		Content:  req.Content,
		Summary:  req.Summary,
		Author:   req.Author,
		Category: req.Category,
		ImageURL: req.ImageURL,
		ReadTime: req.ReadTime,
	}
}

func blogErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrBlogNotFound
	}
	return err
}
