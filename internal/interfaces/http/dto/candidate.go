package dto

import "github.com/bewertung/backend/internal/domain/candidate"

// CandidateSummaryResponse is a single entry in the candidate list.
type CandidateSummaryResponse struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`
	Consented bool   `json:"consented"`
}

// CandidateListResponse wraps the candidate list.
type CandidateListResponse struct {
	Candidates []CandidateSummaryResponse `json:"candidates"`
}

// CreateCandidateResponse is returned after creating a blank record.
type CreateCandidateResponse struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`
}

// CandidateResponse is the full record returned by GET /candidates/:id.
// Fields that were never filled in are serialized as JSON null.
type CandidateResponse struct {
	ID                    string             `json:"id"`
	CreatedAt             string             `json:"created_at"`
	SelfReflection        *string            `json:"self_reflection"`
	Ratings               map[string]float64 `json:"ratings"`
	Conclusion            *string            `json:"conclusion"`
	Notes                 *string            `json:"notes"`
	StarNotes             *string            `json:"star_notes"`
	VesierNotes           *string            `json:"vesier_notes"`
	ReflectionConsistency *string            `json:"reflection_consistency"`
	Consented             bool               `json:"consented"`
	ConsentDate           *string            `json:"consent_date"`
}

// StatusResponse is the body for update and delete acknowledgements.
type StatusResponse struct {
	Status string `json:"status"`
}

// ErrorResponse carries a single human-readable error message.
type ErrorResponse struct {
	Error string `json:"error"`
}

// UpdateCandidateRequest is the PUT /candidates/:id body. Every field is
// optional; only fields present in the JSON are applied.
type UpdateCandidateRequest struct {
	SelfReflection        *string             `json:"self_reflection"`
	Ratings               *map[string]float64 `json:"ratings"`
	Conclusion            *string             `json:"conclusion"`
	Notes                 *string             `json:"notes"`
	StarNotes             *string             `json:"star_notes"`
	VesierNotes           *string             `json:"vesier_notes"`
	ReflectionConsistency *string             `json:"reflection_consistency"`
	Consented             *bool               `json:"consented"`
	ConsentDate           *string             `json:"consent_date"`
}

// ToUpdate converts the request into a domain update command.
func (r *UpdateCandidateRequest) ToUpdate() candidate.Update {
	upd := candidate.Update{
		SelfReflection:        r.SelfReflection,
		Conclusion:            r.Conclusion,
		Notes:                 r.Notes,
		StarNotes:             r.StarNotes,
		VesierNotes:           r.VesierNotes,
		ReflectionConsistency: r.ReflectionConsistency,
		Consented:             r.Consented,
		ConsentDate:           r.ConsentDate,
	}
	if r.Ratings != nil {
		upd.Ratings = candidate.Ratings(*r.Ratings)
	}
	return upd
}

// NewCandidateListResponse maps domain summaries into the list payload.
func NewCandidateListResponse(summaries []candidate.Summary) CandidateListResponse {
	out := CandidateListResponse{Candidates: make([]CandidateSummaryResponse, 0, len(summaries))}
	for _, s := range summaries {
		out.Candidates = append(out.Candidates, CandidateSummaryResponse{
			ID:        s.ID,
			CreatedAt: s.CreatedAt,
			Consented: s.Consented,
		})
	}
	return out
}

// NewCandidateResponse maps a domain candidate into the full record payload.
// Never-written ratings serialize as null, like every other optional field.
func NewCandidateResponse(c *candidate.Candidate) CandidateResponse {
	return CandidateResponse{
		ID:                    c.ID,
		CreatedAt:             c.CreatedAt,
		SelfReflection:        c.SelfReflection,
		Ratings:               c.Ratings,
		Conclusion:            c.Conclusion,
		Notes:                 c.Notes,
		StarNotes:             c.StarNotes,
		VesierNotes:           c.VesierNotes,
		ReflectionConsistency: c.ReflectionConsistency,
		Consented:             c.Consented,
		ConsentDate:           c.ConsentDate,
	}
}
