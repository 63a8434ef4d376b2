package controllers

import (
	"errors"
	"net/http"

	"github.com/Bigmatrix2/Dreammaker/application/ports/outbound"
	"github.com/Bigmatrix2/Dreammaker/domain"
	"github.com/Bigmatrix2/Dreammaker/infrastructure/gin_interface/dto"
	"github.com/gin-gonic/gin"
)

const internalServerError = "internal server error"

// errorStatus maps a stage failure to the status and detail returned to the caller.
// Upstream responses pass through unmodified.
func errorStatus(err error) (int, string) {
	var upstreamErr *domain.UpstreamError
	var credentialErr *domain.MissingCredentialError
	var maxBytesErr *http.MaxBytesError

	switch {
	case errors.As(err, &upstreamErr):
		return upstreamErr.Status, upstreamErr.Body
	case errors.As(err, &credentialErr):
		return http.StatusInternalServerError, credentialErr.Error()
	case errors.Is(err, domain.ErrEmptyAudio):
		return http.StatusBadRequest, err.Error()
	case errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge, "audio upload is too large"
	default:
		return http.StatusInternalServerError, internalServerError
	}
}

func abortWithError(c *gin.Context, logger outbound.LoggerPort, err error) {
	status, detail := errorStatus(err)
	if status >= http.StatusInternalServerError {
		logger.ErrorWithFields(err, "Request failed", map[string]interface{}{
			"path":   c.FullPath(),
			"status": status,
		})
	}
	c.AbortWithStatusJSON(status, dto.ErrorResponse{Detail: detail})
}
