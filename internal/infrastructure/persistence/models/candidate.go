package models

import (
	"encoding/json"

	"github.com/bewertung/backend/internal/domain/candidate"
	"go.uber.org/zap"
)

// CandidateModel is the persistence model for candidate evaluation records.
// Ratings are stored as a serialized JSON text blob; consented is an
// integer-backed boolean, as in the original schema.
type CandidateModel struct {
	ID                    string  `gorm:"type:text;primaryKey"`
	CreatedAt             string  `gorm:"type:text;not null"`
	SelfReflection        *string `gorm:"type:text"`
	RatingsJSON           *string `gorm:"column:ratings;type:text"`
	Conclusion            *string `gorm:"type:text"`
	Notes                 *string `gorm:"type:text"`
	StarNotes             *string `gorm:"type:text"`
	VesierNotes           *string `gorm:"type:text"`
	ReflectionConsistency *string `gorm:"type:text"`
	Consented             bool    `gorm:"not null;default:false"`
	ConsentDate           *string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (CandidateModel) TableName() string {
	return "candidates"
}

// ToDomain converts the persistence model to a domain Candidate.
func (m *CandidateModel) ToDomain() *candidate.Candidate {
	c := &candidate.Candidate{
		ID:                    m.ID,
		CreatedAt:             m.CreatedAt,
		SelfReflection:        m.SelfReflection,
		Conclusion:            m.Conclusion,
		Notes:                 m.Notes,
		StarNotes:             m.StarNotes,
		VesierNotes:           m.VesierNotes,
		ReflectionConsistency: m.ReflectionConsistency,
		Consented:             m.Consented,
		ConsentDate:           m.ConsentDate,
	}

	if m.RatingsJSON != nil && *m.RatingsJSON != "" {
		var ratings candidate.Ratings
		if err := json.Unmarshal([]byte(*m.RatingsJSON), &ratings); err != nil {
			zap.L().Named("persistence.models").Warn("failed to parse ratings JSON",
				zap.String("candidate_id", m.ID),
				zap.Error(err))
		} else {
			c.Ratings = ratings
		}
	}

	return c
}

// CandidateModelFromDomain converts a domain Candidate to its persistence model.
func CandidateModelFromDomain(c *candidate.Candidate) (*CandidateModel, error) {
	m := &CandidateModel{
		ID:                    c.ID,
		CreatedAt:             c.CreatedAt,
		SelfReflection:        c.SelfReflection,
		Conclusion:            c.Conclusion,
		Notes:                 c.Notes,
		StarNotes:             c.StarNotes,
		VesierNotes:           c.VesierNotes,
		ReflectionConsistency: c.ReflectionConsistency,
		Consented:             c.Consented,
		ConsentDate:           c.ConsentDate,
	}

	if c.Ratings != nil {
		raw, err := json.Marshal(c.Ratings)
		if err != nil {
			return nil, err
		}
		s := string(raw)
		m.RatingsJSON = &s
	}

	return m, nil
}
