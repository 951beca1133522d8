package report

import (
	"bytes"
	"fmt"
	"html/template"
	"sort"

	"github.com/bewertung/backend/internal/domain/candidate"
)

// Renderer converts a candidate record into the styled HTML evaluation
// report. Rendering is pure: no I/O, and identical input yields identical
// output. All candidate-supplied text passes through html/template's
// contextual auto-escaping, so free-text fields cannot inject markup into
// the PDF rendering context.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer creates a report renderer with the built-in template
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("report").Funcs(template.FuncMap{
		"orDash": orDash,
	}).Parse(reportTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse report template: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// ratingRow is one line of the ratings table
type ratingRow struct {
	Dimension string
	Score     float64
}

// reportData is the template input
type reportData struct {
	ID                    string
	CreatedAt             string
	SelfReflection        *string
	Ratings               []ratingRow
	Notes                 *string
	StarNotes             *string
	VesierNotes           *string
	ReflectionConsistency *string
	Conclusion            *string
	Consented             bool
	ConsentDate           *string
}

// Render produces the HTML evaluation report for a candidate
func (r *Renderer) Render(c *candidate.Candidate) (string, error) {
	data := reportData{
		ID:                    c.ID,
		CreatedAt:             c.CreatedAt,
		SelfReflection:        c.SelfReflection,
		Ratings:               sortedRatings(c.Ratings),
		Notes:                 c.Notes,
		StarNotes:             c.StarNotes,
		VesierNotes:           c.VesierNotes,
		ReflectionConsistency: c.ReflectionConsistency,
		Conclusion:            c.Conclusion,
		Consented:             c.Consented,
		ConsentDate:           c.ConsentDate,
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	return buf.String(), nil
}

// sortedRatings orders ratings by dimension name so the table is
// deterministic; map iteration order is not.
func sortedRatings(ratings candidate.Ratings) []ratingRow {
	rows := make([]ratingRow, 0, len(ratings))
	for dim, score := range ratings {
		rows = append(rows, ratingRow{Dimension: dim, Score: score})
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Dimension < rows[j].Dimension
	})
	return rows
}

// orDash substitutes the visible placeholder for absent text
func orDash(s *string) string {
	if s == nil || *s == "" {
		return "–"
	}
	return *s
}

const reportTemplate = `<!DOCTYPE html>
<html lang="de">
<head>
    <meta charset="utf-8" />
    <style>
        body { font-family: Arial, sans-serif; padding: 40px; }
        h1 { color: #2563eb; }
        table { width: 100%; border-collapse: collapse; margin-top: 20px; }
        th, td { border: 1px solid #ddd; padding: 8px; }
        th { background-color: #f2f2f2; text-align: left; }
        .section { margin-top: 30px; }
    </style>
    <title>Bewerberauswertung {{ .ID }}</title>
</head>
<body>
    <h1>Auswertung für Bewerber {{ .ID }}</h1>
    <p>Erstellt am {{ .CreatedAt }}</p>

    <div class="section">
        <h2>Selbstreflexion</h2>
        <p>{{ orDash .SelfReflection }}</p>
    </div>
    <div class="section">
        <h2>Bewertung (1–5)</h2>
        <table>
            <tr>
                <th>Dimension</th>
                <th>Bewertung</th>
            </tr>
            {{- range .Ratings }}
            <tr>
                <td>{{ .Dimension }}</td>
                <td>{{ .Score }}</td>
            </tr>
            {{- end }}
        </table>
    </div>
    <div class="section">
        <h2>Notizen</h2>
        <p>{{ orDash .Notes }}</p>
    </div>
    <div class="section">
        <h2>STAR-Notizen</h2>
        <p>{{ orDash .StarNotes }}</p>
    </div>
    <div class="section">
        <h2>VeSiEr-Notizen</h2>
        <p>{{ orDash .VesierNotes }}</p>
    </div>
    <div class="section">
        <h2>Reflexions-Konsistenz</h2>
        <p>{{ orDash .ReflectionConsistency }}</p>
    </div>
    <div class="section">
        <h2>Fazit</h2>
        <p>{{ orDash .Conclusion }}</p>
    </div>
    <div class="section">
        <h2>Einwilligung</h2>
        <p>{{ if .Consented }}Einwilligung erteilt am {{ orDash .ConsentDate }}{{ else }}Keine Einwilligung dokumentiert{{ end }}</p>
    </div>
</body>
</html>
`
