package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/Bigmatrix2/Dreammaker/application/ports/inbound"
	"github.com/Bigmatrix2/Dreammaker/application/ports/outbound"
	"github.com/Bigmatrix2/Dreammaker/infrastructure/gin_interface/dto"
	"github.com/Bigmatrix2/Dreammaker/middleware"
	"github.com/gin-gonic/gin"
)

type DreamController interface {
	DreamToImage(c *gin.Context)
	StreamDream(c *gin.Context)
	RegisterRoutes(g *gin.Engine)
}

type dreamController struct {
	logger         outbound.LoggerPort
	pipeline       inbound.DreamPipelinePort
	maxUploadBytes int64
	keepAlive      time.Duration
}

func NewDreamController(logger outbound.LoggerPort, pipeline inbound.DreamPipelinePort, maxUploadBytes int64,
	keepAlive time.Duration) DreamController {
	return &dreamController{
		logger:         logger,
		pipeline:       pipeline,
		maxUploadBytes: maxUploadBytes,
		keepAlive:      keepAlive,
	}
}

func (d *dreamController) DreamToImage(c *gin.Context) {
	file, filename, err := openUpload(c, d.maxUploadBytes)
	if err != nil {
		abortWithBadUpload(c, d.logger, err)
		return
	}
	defer closeUpload(c, file)

	result, err := d.pipeline.Run(c.Request.Context(), inbound.RunPipelineParams{
		Filename: filename,
		Audio:    file,
	})
	if err != nil {
		abortWithError(c, d.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewDreamResponse(result))
}

// StreamDream sends one server-sent event per stage as the pipeline progresses.
func (d *dreamController) StreamDream(c *gin.Context) {
	file, filename, err := openUpload(c, d.maxUploadBytes)
	if err != nil {
		c.Status(http.StatusBadRequest)
		c.SSEvent(dto.EventError, dto.ErrorPayload{Status: http.StatusBadRequest, Detail: err.Error()})
		return
	}
	defer closeUpload(c, file)

	debug := c.Query("debug") == "true"

	newCtx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	events, errCh := d.pipeline.Stream(newCtx, inbound.RunPipelineParams{
		Filename: filename,
		Audio:    file,
	})

	ticker := time.NewTicker(d.keepAlive)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				if err := <-errCh; err != nil {
					status, detail := errorStatus(err)
					d.logger.ErrorWithFields(err, "Streamed pipeline failed", map[string]interface{}{
						"status": status,
					})
					c.SSEvent(dto.EventError, dto.ErrorPayload{Status: status, Detail: detail})
					c.Writer.Flush()
				}
				return
			}
			name, payload := dto.NewStreamEvent(event, debug)
			c.SSEvent(name, payload)
			c.Writer.Flush()
		case <-ticker.C:
			if _, err := c.Writer.WriteString(": keep-alive\n\n"); err != nil {
				return
			}
			c.Writer.Flush()
		case <-newCtx.Done():
			d.logger.Debug("Stream client went away")
			return
		}
	}
}

func (d *dreamController) RegisterRoutes(g *gin.Engine) {
	g.POST("/dream-to-image", d.DreamToImage)
	g.POST("/dream-to-image/stream", middleware.SSEMiddleware(), d.StreamDream)
}
