package export

import (
	"context"
	"errors"
	"time"

	"github.com/bewertung/backend/internal/domain/candidate"
	"github.com/bewertung/backend/internal/domain/shared"
	"github.com/bewertung/backend/internal/infrastructure/printing"
	"github.com/bewertung/backend/internal/infrastructure/report"
	"go.uber.org/zap"
)

// Result is a finished PDF export
type Result struct {
	// PDFData is the raw PDF file content
	PDFData []byte
	// Filename is the suggested download filename
	Filename string
}

// Service drives the export pipeline: fetch the candidate, render the
// HTML report, and hand it to the PDF engine. Each export runs its own
// renderer invocation; nothing mutable is shared between concurrent
// exports.
type Service struct {
	repo          candidate.Repository
	renderer      *report.Renderer
	pdfRenderer   printing.PDFRenderer
	renderTimeout time.Duration
	logger        *zap.Logger
}

// NewService creates a new export Service
func NewService(
	repo candidate.Repository,
	renderer *report.Renderer,
	pdfRenderer printing.PDFRenderer,
	renderTimeout time.Duration,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:          repo,
		renderer:      renderer,
		pdfRenderer:   pdfRenderer,
		renderTimeout: renderTimeout,
		logger:        logger,
	}
}

// Export produces the PDF evaluation report for a candidate. An unknown
// ID is reported as not found without touching the PDF engine.
func (s *Service) Export(ctx context.Context, id string) (*Result, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// A candidate without ratings still exports; the table is empty.
	if c.Ratings == nil {
		c.Ratings = candidate.Ratings{}
	}

	html, err := s.renderer.Render(c)
	if err != nil {
		s.logger.Error("failed to render report HTML",
			zap.String("candidate_id", id),
			zap.Error(err))
		return nil, shared.NewDomainError(shared.CodeRenderFailed, "failed to render report: "+err.Error())
	}

	result, err := s.pdfRenderer.Render(ctx, &printing.RenderRequest{
		HTML:    html,
		Timeout: s.renderTimeout,
	})
	if err != nil {
		s.logger.Error("PDF rendering failed",
			zap.String("candidate_id", id),
			zap.Error(err))
		return nil, mapRenderError(err)
	}

	s.logger.Info("candidate exported",
		zap.String("candidate_id", id),
		zap.Int("pdf_bytes", len(result.PDFData)),
		zap.Duration("render_duration", result.RenderDuration))

	return &Result{
		PDFData:  result.PDFData,
		Filename: id + ".pdf",
	}, nil
}

// mapRenderError translates renderer failures into the domain taxonomy:
// a missing engine is "unavailable", everything else "failed".
func mapRenderError(err error) error {
	var renderErr *printing.RenderError
	if errors.As(err, &renderErr) {
		switch renderErr.Code {
		case printing.ErrCodeBinaryNotFound:
			return shared.NewDomainError(shared.CodeRenderUnavailable,
				"PDF generation unavailable: "+renderErr.Message)
		default:
			return shared.NewDomainError(shared.CodeRenderFailed,
				"PDF generation failed: "+renderErr.Error())
		}
	}
	return shared.NewDomainError(shared.CodeRenderFailed, "PDF generation failed: "+err.Error())
}
