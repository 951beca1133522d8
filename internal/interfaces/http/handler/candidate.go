package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	candidateapp "github.com/bewertung/backend/internal/application/candidate"
	"github.com/bewertung/backend/internal/infrastructure/logger"
	"github.com/bewertung/backend/internal/interfaces/http/dto"
)

// CandidateHandler serves the candidate record CRUD endpoints.
type CandidateHandler struct {
	service *candidateapp.Service
}

// NewCandidateHandler creates a new candidate handler.
func NewCandidateHandler(service *candidateapp.Service) *CandidateHandler {
	return &CandidateHandler{service: service}
}

// RegisterRoutes registers candidate routes on the given group.
func (h *CandidateHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/candidates", h.List)
	rg.POST("/candidates", h.Create)
	rg.GET("/candidates/:id", h.Get)
	rg.PUT("/candidates/:id", h.Update)
	rg.DELETE("/candidates/:id", h.Delete)
}

// List returns summaries of all candidates in insertion order.
func (h *CandidateHandler) List(c *gin.Context) {
	summaries, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCandidateListResponse(summaries))
}

// Create creates a blank candidate record with a fresh ID.
func (h *CandidateHandler) Create(c *gin.Context) {
	created, err := h.service.Create(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.CreateCandidateResponse{
		ID:        created.ID,
		CreatedAt: created.CreatedAt,
	})
}

// Get returns the full candidate record.
func (h *CandidateHandler) Get(c *gin.Context) {
	cand, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCandidateResponse(cand))
}

// Update applies the fields present in the request body to the record.
func (h *CandidateHandler) Update(c *gin.Context) {
	var req dto.UpdateCandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.GetGinLogger(c).Warn("malformed update body", zap.Error(err))
		respondBadRequest(c, "Invalid request body")
		return
	}

	if err := h.service.Update(c.Request.Context(), c.Param("id"), req.ToUpdate()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.StatusResponse{Status: "updated"})
}

// Delete removes the record. Deleting an unknown ID still succeeds.
func (h *CandidateHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.StatusResponse{Status: "deleted"})
}
