package dto

const WebSocketAudioHeader = "audio"

type WebSocketMessage struct {
	Type     string      `json:"type"`
	Filename string      `json:"filename,omitempty"`
	Data     interface{} `json:"data,omitempty"`
	Status   int         `json:"status,omitempty"`
	Error    string      `json:"error,omitempty"`
}
