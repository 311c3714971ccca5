package dto

type AssistantMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type AssistantRequest struct {
	Messages []AssistantMessage `json:"messages"`
}

type ChatLogRequest struct {
	SessionID      string `json:"sessionId,omitempty"`
	ConversationID string `json:"conversationId"`
	UserMessage    string `json:"userMessage"`
	AIResponse     string `json:"aiResponse,omitempty"`
	Referrer       string `json:"referrer,omitempty"`
}

type ChatLogResponse struct {
	Success bool    `json:"success"`
	ID      string  `json:"id"`
	Country *string `json:"country"`
	City    *string `json:"city"`
}

type ChatLogListResponse struct {
	Logs []ChatLogEntry `json:"logs"`
}

type ChatLogEntry struct {
	ID             string  `json:"id"`
	SessionID      *string `json:"sessionId"`
	ConversationID string  `json:"conversationId"`
	UserMessage    string  `json:"userMessage"`
	AIResponse     *string `json:"aiResponse"`
	Country        *string `json:"country"`
	City           *string `json:"city"`
	IPAddress      string  `json:"ipAddress"`
	UserAgent      string  `json:"userAgent"`
	Referrer       *string `json:"referrer"`
	CreatedAt      string  `json:"createdAt"`
}
