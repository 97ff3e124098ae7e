package obra

import (
	"context"
)

// Service provides obra-related business logic.
type Service struct {
	repo Repository
}

// NewService creates a new obra service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and persists a new obra.
func (s *Service) Create(ctx context.Context, in Input) (Obra, error) {
	if err := ValidateInput(in); err != nil {
		return Obra{}, err
	}
	return s.repo.Create(ctx, in)
}

// List returns all obras.
func (s *Service) List(ctx context.Context) ([]Obra, error) {
	return s.repo.List(ctx)
}

// Update overwrites the mutable fields of an existing obra.
// The id and created_at of the stored record never change.
func (s *Service) Update(ctx context.Context, id int64, in Input) (Obra, error) {
	if err := ValidateInput(in); err != nil {
		return Obra{}, err
	}
	return s.repo.Update(ctx, id, in)
}

// Delete removes an obra permanently.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
