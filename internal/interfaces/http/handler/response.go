package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bewertung/backend/internal/domain/shared"
	"github.com/bewertung/backend/internal/infrastructure/logger"
	"github.com/bewertung/backend/internal/interfaces/http/dto"
)

// statusForCode maps a domain error code to an HTTP status.
func statusForCode(code string) int {
	switch code {
	case shared.CodeNotFound:
		return http.StatusNotFound
	case shared.CodeValidation:
		return http.StatusBadRequest
	case shared.CodeRenderUnavailable, shared.CodeRenderFailed:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error as a small JSON body. Domain errors keep
// their message; anything else becomes an opaque 500.
func respondError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		c.JSON(statusForCode(domainErr.Code), dto.ErrorResponse{Error: domainErr.Message})
		return
	}

	logger.GetGinLogger(c).Error("unhandled error", zap.Error(err))
	c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal server error"})
}

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: message})
}
