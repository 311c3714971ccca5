package websocket

const (
	// Client frame types.
	FrameHello   = "hello"
	FrameMessage = "message"
	FrameStop    = "stop"
	FrameClear   = "clear"

	// Server frame types.
	FrameChunk   = "chunk"
	FrameDone    = "done"
	FrameError   = "error"
	FrameCleared = "cleared"
)

type ClientFrame struct {
	Type      string `json:"type"`
	SessionID string `json:"sessionId,omitempty"`
	Text      string `json:"text,omitempty"`
}

type ServerFrame struct {
	Type           string `json:"type"`
	Text           string `json:"text,omitempty"`
	ConversationID string `json:"conversationId,omitempty"`
	Message        string `json:"message,omitempty"`
}
