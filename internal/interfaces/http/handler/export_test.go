package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	exportapp "github.com/bewertung/backend/internal/application/export"
	"github.com/bewertung/backend/internal/infrastructure/printing"
	"github.com/bewertung/backend/internal/infrastructure/report"
	"github.com/bewertung/backend/internal/interfaces/http/router"
)

// stubPDFRenderer returns a fixed PDF body without spawning anything.
type stubPDFRenderer struct {
	err error
}

func (s *stubPDFRenderer) Render(ctx context.Context, req *printing.RenderRequest) (*printing.RenderResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &printing.RenderResult{PDFData: []byte("%PDF-1.4\nstub\n%%EOF"), PageCount: 1}, nil
}

func (s *stubPDFRenderer) Close() error { return nil }

// recordingMetrics captures export outcomes.
type recordingMetrics struct {
	outcomes []string
}

func (r *recordingMetrics) ObserveExport(outcome string) {
	r.outcomes = append(r.outcomes, outcome)
}

func setupExportRouter(t *testing.T, pdf printing.PDFRenderer) (*gin.Engine, *fakeCandidateRepository, *recordingMetrics) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := newFakeCandidateRepository()
	htmlRenderer, err := report.NewRenderer()
	require.NoError(t, err)

	service := exportapp.NewService(repo, htmlRenderer, pdf, 5*time.Second, zap.NewNop())
	metrics := &recordingMetrics{}

	engine := gin.New()
	router.NewRouter(engine).
		Register(NewExportHandler(service, metrics)).
		Setup()
	return engine, repo, metrics
}

func TestExportHandler_Export(t *testing.T) {
	engine, repo, metrics := setupExportRouter(t, &stubPDFRenderer{})
	c := seedCandidate(t, repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/candidates/"+c.ID+"/export", nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="`+c.ID+`.pdf"`, w.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF"))
	assert.Equal(t, []string{"success"}, metrics.outcomes)
}

func TestExportHandler_Export_NotFound(t *testing.T) {
	engine, _, metrics := setupExportRouter(t, &stubPDFRenderer{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/candidates/BW-2026-00001/export", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, []string{"failure"}, metrics.outcomes)
}

func TestExportHandler_Export_RendererUnavailable(t *testing.T) {
	engine, repo, _ := setupExportRouter(t, &printing.UnavailableRenderer{Reason: errors.New("chromium not installed")})
	c := seedCandidate(t, repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/candidates/"+c.ID+"/export", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "error")
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
}

func TestExportHandler_Export_RenderFailure(t *testing.T) {
	engine, repo, metrics := setupExportRouter(t, &stubPDFRenderer{
		err: &printing.RenderError{Code: printing.ErrCodeRenderFailed, Message: "renderer crashed"},
	})
	c := seedCandidate(t, repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/candidates/"+c.ID+"/export", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, []string{"failure"}, metrics.outcomes)
}
