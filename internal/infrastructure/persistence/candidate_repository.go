package persistence

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/bewertung/backend/internal/domain/candidate"
	"github.com/bewertung/backend/internal/domain/shared"
	"github.com/bewertung/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCandidateRepository implements candidate.Repository using GORM
type GormCandidateRepository struct {
	db *gorm.DB
}

// NewGormCandidateRepository creates a new GormCandidateRepository
func NewGormCandidateRepository(db *gorm.DB) *GormCandidateRepository {
	return &GormCandidateRepository{db: db}
}

// List returns the lightweight listing of all candidates in insertion order
func (r *GormCandidateRepository) List(ctx context.Context) ([]candidate.Summary, error) {
	var rows []struct {
		ID        string
		CreatedAt string
		Consented bool
	}

	err := r.db.WithContext(ctx).
		Model(&models.CandidateModel{}).
		Select("id", "created_at", "consented").
		Order("rowid"). // SQLite insertion order, stable across identical data
		Find(&rows).Error
	if err != nil {
		return nil, shared.NewDomainError(shared.CodeStore, "failed to list candidates: "+err.Error())
	}

	summaries := make([]candidate.Summary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, candidate.Summary{
			ID:        row.ID,
			CreatedAt: row.CreatedAt,
			Consented: row.Consented,
		})
	}
	return summaries, nil
}

// Create inserts a new candidate record
func (r *GormCandidateRepository) Create(ctx context.Context, c *candidate.Candidate) error {
	model, err := models.CandidateModelFromDomain(c)
	if err != nil {
		return shared.NewDomainError(shared.CodeStore, "failed to serialize candidate: "+err.Error())
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.NewDomainError(shared.CodeStore, "candidate ID collision: "+c.ID)
		}
		return shared.NewDomainError(shared.CodeStore, "failed to create candidate: "+err.Error())
	}
	return nil
}

// FindByID fetches the full candidate record
func (r *GormCandidateRepository) FindByID(ctx context.Context, id string) (*candidate.Candidate, error) {
	var model models.CandidateModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, shared.NewDomainError(shared.CodeStore, "failed to fetch candidate: "+err.Error())
	}
	return model.ToDomain(), nil
}

// Update applies a partial update. An empty command is rejected; an
// unknown ID is reported as not found.
func (r *GormCandidateRepository) Update(ctx context.Context, id string, u candidate.Update) error {
	updates, err := updateColumns(u)
	if err != nil {
		return shared.NewDomainError(shared.CodeStore, "failed to serialize ratings: "+err.Error())
	}
	if len(updates) == 0 {
		return shared.ErrNoValidFields
	}

	result := r.db.WithContext(ctx).
		Model(&models.CandidateModel{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return shared.NewDomainError(shared.CodeStore, "failed to update candidate: "+result.Error.Error())
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes the record. Deleting a nonexistent ID is not an error.
func (r *GormCandidateRepository) Delete(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Delete(&models.CandidateModel{}, "id = ?", id).Error
	if err != nil {
		return shared.NewDomainError(shared.CodeStore, "failed to delete candidate: "+err.Error())
	}
	return nil
}

// updateColumns converts an update command into a column map for GORM.
// Ratings are serialized to their JSON text representation.
func updateColumns(u candidate.Update) (map[string]any, error) {
	updates := make(map[string]any)
	if u.SelfReflection != nil {
		updates["self_reflection"] = *u.SelfReflection
	}
	if u.Ratings != nil {
		raw, err := json.Marshal(u.Ratings)
		if err != nil {
			return nil, err
		}
		updates["ratings"] = string(raw)
	}
	if u.Conclusion != nil {
		updates["conclusion"] = *u.Conclusion
	}
	if u.Notes != nil {
		updates["notes"] = *u.Notes
	}
	if u.StarNotes != nil {
		updates["star_notes"] = *u.StarNotes
	}
	if u.VesierNotes != nil {
		updates["vesier_notes"] = *u.VesierNotes
	}
	if u.ReflectionConsistency != nil {
		updates["reflection_consistency"] = *u.ReflectionConsistency
	}
	if u.Consented != nil {
		updates["consented"] = *u.Consented
	}
	if u.ConsentDate != nil {
		updates["consent_date"] = *u.ConsentDate
	}
	return updates, nil
}

// Ensure GormCandidateRepository implements candidate.Repository
var _ candidate.Repository = (*GormCandidateRepository)(nil)
