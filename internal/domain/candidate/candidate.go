package candidate

import "time"

// Ratings maps an evaluation dimension name to its score.
// Scores are expected in the 1-5 range but are not validated here.
type Ratings map[string]float64

// Candidate is an anonymised applicant evaluation record.
// All free-text fields are optional; nil means "no data", which is
// distinct from an empty string.
type Candidate struct {
	ID                    string
	CreatedAt             string // ISO 8601 UTC, set once at creation
	SelfReflection        *string
	Ratings               Ratings // nil when never rated
	Conclusion            *string
	Notes                 *string
	StarNotes             *string
	VesierNotes           *string
	ReflectionConsistency *string
	Consented             bool
	ConsentDate           *string
}

// Summary is the lightweight listing projection of a candidate.
// Free-text and rating fields are deliberately excluded.
type Summary struct {
	ID        string
	CreatedAt string
	Consented bool
}

// NewBlank creates a blank candidate record with a freshly generated ID.
// Only ID and CreatedAt are populated; every other field starts empty.
func NewBlank() *Candidate {
	return &Candidate{
		ID:        NewID(),
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

// Update is a partial-update command. Each pointer corresponds to one
// mutable candidate field; nil means "leave untouched". ID and CreatedAt
// are immutable and therefore absent.
type Update struct {
	SelfReflection        *string
	Ratings               Ratings
	Conclusion            *string
	Notes                 *string
	StarNotes             *string
	VesierNotes           *string
	ReflectionConsistency *string
	Consented             *bool
	ConsentDate           *string
}

// IsEmpty reports whether the command names no field at all.
func (u Update) IsEmpty() bool {
	return u.SelfReflection == nil &&
		u.Ratings == nil &&
		u.Conclusion == nil &&
		u.Notes == nil &&
		u.StarNotes == nil &&
		u.VesierNotes == nil &&
		u.ReflectionConsistency == nil &&
		u.Consented == nil &&
		u.ConsentDate == nil
}

// Apply copies the named fields onto the candidate.
func (u Update) Apply(c *Candidate) {
	if u.SelfReflection != nil {
		c.SelfReflection = u.SelfReflection
	}
	if u.Ratings != nil {
		c.Ratings = u.Ratings
	}
	if u.Conclusion != nil {
		c.Conclusion = u.Conclusion
	}
	if u.Notes != nil {
		c.Notes = u.Notes
	}
	if u.StarNotes != nil {
		c.StarNotes = u.StarNotes
	}
	if u.VesierNotes != nil {
		c.VesierNotes = u.VesierNotes
	}
	if u.ReflectionConsistency != nil {
		c.ReflectionConsistency = u.ReflectionConsistency
	}
	if u.Consented != nil {
		c.Consented = *u.Consented
	}
	if u.ConsentDate != nil {
		c.ConsentDate = u.ConsentDate
	}
}
