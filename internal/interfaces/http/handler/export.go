package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	exportapp "github.com/bewertung/backend/internal/application/export"
)

// ExportMetrics counts export attempts by outcome.
type ExportMetrics interface {
	ObserveExport(outcome string)
}

// ExportHandler serves the PDF export endpoint.
type ExportHandler struct {
	service *exportapp.Service
	metrics ExportMetrics
}

// NewExportHandler creates a new export handler. metrics may be nil.
func NewExportHandler(service *exportapp.Service, metrics ExportMetrics) *ExportHandler {
	return &ExportHandler{service: service, metrics: metrics}
}

func (h *ExportHandler) observe(outcome string) {
	if h.metrics != nil {
		h.metrics.ObserveExport(outcome)
	}
}

// RegisterRoutes registers export routes on the given group.
func (h *ExportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/candidates/:id/export", h.Export)
}

// Export renders the candidate report and streams the PDF back as an
// attachment download.
func (h *ExportHandler) Export(c *gin.Context) {
	result, err := h.service.Export(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.observe("failure")
		respondError(c, err)
		return
	}
	h.observe("success")

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, "application/pdf", result.PDFData)
}
