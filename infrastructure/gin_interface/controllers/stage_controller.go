package controllers

import (
	"net/http"

	"github.com/Bigmatrix2/Dreammaker/application/ports/inbound"
	"github.com/Bigmatrix2/Dreammaker/application/ports/outbound"
	"github.com/Bigmatrix2/Dreammaker/infrastructure/gin_interface/dto"
	"github.com/gin-gonic/gin"
)

type StageController interface {
	TranscribeAudio(c *gin.Context)
	AnalyzeEmotion(c *gin.Context)
	GenerateImagePrompt(c *gin.Context)
	GenerateMistralPrompt(c *gin.Context)
	GenerateImage(c *gin.Context)
	RegisterRoutes(g *gin.Engine)
}

type stageController struct {
	logger         outbound.LoggerPort
	stageRunner    inbound.StageRunnerPort
	maxUploadBytes int64
}

func NewStageController(logger outbound.LoggerPort, stageRunner inbound.StageRunnerPort, maxUploadBytes int64) StageController {
	return &stageController{
		logger:         logger,
		stageRunner:    stageRunner,
		maxUploadBytes: maxUploadBytes,
	}
}

func (s *stageController) TranscribeAudio(c *gin.Context) {
	file, filename, err := openUpload(c, s.maxUploadBytes)
	if err != nil {
		abortWithBadUpload(c, s.logger, err)
		return
	}
	defer closeUpload(c, file)

	transcript, err := s.stageRunner.Transcribe(c.Request.Context(), filename, file)
	if err != nil {
		abortWithError(c, s.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.TranscriptionResponse{Transcription: string(transcript)})
}

func (s *stageController) AnalyzeEmotion(c *gin.Context) {
	var payload dto.TextPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Detail: err.Error()})
		return
	}

	emotion, err := s.stageRunner.ClassifyEmotion(c.Request.Context(), *payload.Text)
	if err != nil {
		abortWithError(c, s.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.EmotionResponse{Emotion: string(emotion)})
}

func (s *stageController) GenerateImagePrompt(c *gin.Context) {
	s.generatePrompt(c, inbound.PromptSourceGroq)
}

func (s *stageController) GenerateMistralPrompt(c *gin.Context) {
	s.generatePrompt(c, inbound.PromptSourceMistral)
}

func (s *stageController) generatePrompt(c *gin.Context, source inbound.PromptSource) {
	var payload dto.TextPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Detail: err.Error()})
		return
	}

	prompt, err := s.stageRunner.GenerateImagePrompt(c.Request.Context(), *payload.Text, source)
	if err != nil {
		abortWithError(c, s.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.PromptResponse{Prompt: string(prompt)})
}

func (s *stageController) GenerateImage(c *gin.Context) {
	var payload dto.PromptPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Detail: err.Error()})
		return
	}

	image, err := s.stageRunner.GenerateImage(c.Request.Context(), *payload.Prompt)
	if err != nil {
		abortWithError(c, s.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ImageResponse{Image: image.DataURI()})
}

func (s *stageController) RegisterRoutes(g *gin.Engine) {
	g.POST("/transcribe-audio", s.TranscribeAudio)
	g.POST("/analyze-emotion", s.AnalyzeEmotion)
	g.POST("/generate-image-prompt", s.GenerateImagePrompt)
	g.POST("/generate-mistral-prompt", s.GenerateMistralPrompt)
	g.POST("/generate-image", s.GenerateImage)
}
