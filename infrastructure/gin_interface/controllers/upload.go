package controllers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/Bigmatrix2/Dreammaker/application/ports/outbound"
	"github.com/Bigmatrix2/Dreammaker/infrastructure/gin_interface/dto"
	"github.com/gin-gonic/gin"
)

const uploadField = "file"

// openUpload returns the multipart audio file. The caller closes it.
func openUpload(c *gin.Context, maxBytes int64) (multipart.File, string, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)

	header, err := c.FormFile(uploadField)
	if err != nil {
		return nil, "", err
	}

	file, err := header.Open()
	if err != nil {
		return nil, "", fmt.Errorf("failed to open uploaded file: %w", err)
	}

	return file, header.Filename, nil
}

func closeUpload(c *gin.Context, file multipart.File) {
	if err := file.Close(); err != nil {
		_ = c.Error(err)
	}
}

func abortWithBadUpload(c *gin.Context, logger outbound.LoggerPort, err error) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		abortWithError(c, logger, err)
		return
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{Detail: "an audio file is required in the 'file' field"})
}
