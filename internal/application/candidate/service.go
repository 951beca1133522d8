package candidate

import (
	"context"

	"github.com/bewertung/backend/internal/domain/candidate"
	"github.com/bewertung/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Service handles candidate record operations
type Service struct {
	repo   candidate.Repository
	logger *zap.Logger
}

// NewService creates a new candidate Service
func NewService(repo candidate.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// List returns the lightweight listing of all candidates
func (s *Service) List(ctx context.Context) ([]candidate.Summary, error) {
	return s.repo.List(ctx)
}

// Create inserts a blank candidate record and returns it. The generated
// ID is not checked for uniqueness up front; a collision fails the
// insert and is surfaced as a creation error.
func (s *Service) Create(ctx context.Context) (*candidate.Candidate, error) {
	c := candidate.NewBlank()
	if err := s.repo.Create(ctx, c); err != nil {
		s.logger.Error("failed to create candidate",
			zap.String("candidate_id", c.ID),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("candidate created", zap.String("candidate_id", c.ID))
	return c, nil
}

// Get fetches the full candidate record
func (s *Service) Get(ctx context.Context, id string) (*candidate.Candidate, error) {
	return s.repo.FindByID(ctx, id)
}

// Update applies a partial update to the named record. A command that
// names no recognized field is rejected; an unknown ID is not found.
func (s *Service) Update(ctx context.Context, id string, u candidate.Update) error {
	if u.IsEmpty() {
		return shared.ErrNoValidFields
	}
	if err := s.repo.Update(ctx, id, u); err != nil {
		return err
	}

	s.logger.Info("candidate updated", zap.String("candidate_id", id))
	return nil
}

// Delete removes the record. Deleting a nonexistent ID succeeds with no
// effect.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("candidate deleted", zap.String("candidate_id", id))
	return nil
}
