package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/Bigmatrix2/Dreammaker/application/ports/inbound"
	"github.com/Bigmatrix2/Dreammaker/application/ports/outbound"
	"github.com/Bigmatrix2/Dreammaker/infrastructure/gin_interface/dto"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const webSocketWriteWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WebSocketController interface {
	StreamDream(c *gin.Context)
	RegisterRoutes(g *gin.Engine)
}

type webSocketController struct {
	logger         outbound.LoggerPort
	pipeline       inbound.DreamPipelinePort
	maxUploadBytes int64
}

func NewWebSocketController(logger outbound.LoggerPort, pipeline inbound.DreamPipelinePort, maxUploadBytes int64) WebSocketController {
	return &webSocketController{
		logger:         logger,
		pipeline:       pipeline,
		maxUploadBytes: maxUploadBytes,
	}
}

// StreamDream expects an audio header message followed by one binary message holding the clip,
// and answers with the pipeline events as JSON messages.
func (w *webSocketController) StreamDream(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		w.logger.Error(err, "Failed to upgrade connection")
		return
	}
	defer func() {
		if err := conn.Close(); err != nil {
			w.logger.Error(err, "Failed to close websocket")
		}
	}()

	conn.SetReadLimit(w.maxUploadBytes)
	debug := c.Query("debug") == "true"

	var header dto.WebSocketMessage
	if err := conn.ReadJSON(&header); err != nil {
		w.logger.Error(err, "Failed to read audio header")
		return
	}
	if header.Type != dto.WebSocketAudioHeader || header.Filename == "" {
		w.sendError(conn, http.StatusBadRequest, "expected an audio header with a filename")
		return
	}

	messageType, audio, err := conn.NextReader()
	if err != nil {
		w.logger.Error(err, "Failed to read audio message")
		return
	}
	if messageType != websocket.BinaryMessage {
		w.sendError(conn, http.StatusBadRequest, "audio must be sent as a binary message")
		return
	}

	newCtx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	events, errCh := w.pipeline.Stream(newCtx, inbound.RunPipelineParams{
		Filename: header.Filename,
		Audio:    audio,
	})

	for event := range events {
		name, payload := dto.NewStreamEvent(event, debug)
		if err := w.send(conn, dto.WebSocketMessage{Type: name, Data: payload}); err != nil {
			w.logger.Error(err, "Failed to write websocket event")
			cancel()
		}
	}

	if err := <-errCh; err != nil {
		status, detail := errorStatus(err)
		w.sendError(conn, status, detail)
		return
	}

	closeMsg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	if err := conn.WriteControl(websocket.CloseMessage, closeMsg, time.Now().Add(webSocketWriteWait)); err != nil {
		w.logger.Debug("Failed to send close frame")
	}
}

func (w *webSocketController) send(conn *websocket.Conn, msg dto.WebSocketMessage) error {
	if err := conn.SetWriteDeadline(time.Now().Add(webSocketWriteWait)); err != nil {
		return err
	}
	return conn.WriteJSON(msg)
}

func (w *webSocketController) sendError(conn *websocket.Conn, status int, detail string) {
	if err := w.send(conn, dto.WebSocketMessage{Type: dto.EventError, Status: status, Error: detail}); err != nil {
		w.logger.Error(err, "Failed to write websocket error")
	}
}

func (w *webSocketController) RegisterRoutes(g *gin.Engine) {
	g.GET("/ws/dream-to-image", w.StreamDream)
}
