package category

import (
	"context"
	"fmt"
	"strings"

	"github.com/gosimple/slug"
	"marketplace-api/internal/domain"
	categoryrepo "marketplace-api/internal/repository/category"
)

type Service struct {
	repo categoryrepo.Repository
}

func New(repo categoryrepo.Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput carries the fields accepted on category creation. Slug is
// derived from the title when absent.
type CreateInput struct {
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

// UpdateInput carries partial category updates. The slug only changes when
// explicitly provided.
type UpdateInput struct {
	Title *string `json:"title"`
	Slug  *string `json:"slug"`
}

func (s *Service) List(ctx context.Context) ([]domain.Category, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Category, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Category, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title required", domain.ErrInvalidInput)
	}
	slugValue := strings.TrimSpace(in.Slug)
	if slugValue == "" {
		slugValue = slug.Make(title)
	}
	return s.repo.Create(ctx, domain.Category{Title: title, Slug: slugValue})
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*domain.Category, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title required", domain.ErrInvalidInput)
		}
		existing.Title = title
	}
	if in.Slug != nil {
		slugValue := strings.TrimSpace(*in.Slug)
		if slugValue == "" {
			slugValue = slug.Make(existing.Title)
		}
		existing.Slug = slugValue
	}
	return s.repo.Update(ctx, *existing)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
