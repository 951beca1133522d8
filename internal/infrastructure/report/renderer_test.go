package report

import (
	"strings"
	"testing"

	"github.com/bewertung/backend/internal/domain/candidate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCandidate() *candidate.Candidate {
	return &candidate.Candidate{
		ID:        "BW-2025-00042",
		CreatedAt: "2025-03-01T10:00:00Z",
	}
}

func TestRenderer_BlankCandidate(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	html, err := r.Render(newTestCandidate())
	require.NoError(t, err)

	assert.Contains(t, html, "BW-2025-00042")
	assert.Contains(t, html, "<title>Bewerberauswertung BW-2025-00042</title>")
	assert.Contains(t, html, "2025-03-01T10:00:00Z")
	// Absent text fields render the visible placeholder, never an
	// unresolved template expression.
	assert.Contains(t, html, "–")
	assert.NotContains(t, html, "{{")
	// Empty ratings render an empty table body, not an error.
	assert.Contains(t, html, "<table>")
	assert.NotContains(t, html, "<td>")
}

func TestRenderer_FullCandidate(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	c := newTestCandidate()
	reflection := "Ich arbeite gern im Team"
	conclusion := "Empfehlung"
	consentDate := "2025-02-28"
	c.SelfReflection = &reflection
	c.Conclusion = &conclusion
	c.Consented = true
	c.ConsentDate = &consentDate
	c.Ratings = candidate.Ratings{"Kommunikation": 4, "Analytik": 3.5}

	html, err := r.Render(c)
	require.NoError(t, err)

	assert.Contains(t, html, "Ich arbeite gern im Team")
	assert.Contains(t, html, "Empfehlung")
	assert.Contains(t, html, "Einwilligung erteilt am 2025-02-28")
	assert.Contains(t, html, "<td>Kommunikation</td>")
	assert.Contains(t, html, "<td>4</td>")
	assert.Contains(t, html, "<td>3.5</td>")
	// Rows are sorted by dimension name.
	assert.Less(t, strings.Index(html, "Analytik"), strings.Index(html, "Kommunikation"))
}

func TestRenderer_EscapesUntrustedText(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	c := newTestCandidate()
	hostile := `<script>alert("x")</script>`
	c.Notes = &hostile

	html, err := r.Render(c)
	require.NoError(t, err)

	assert.NotContains(t, html, "<script>alert")
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestRenderer_Deterministic(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	c := newTestCandidate()
	c.Ratings = candidate.Ratings{"A": 1, "B": 2, "C": 3, "D": 4, "E": 5}

	first, err := r.Render(c)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		again, err := r.Render(c)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
