package endpoints

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"portfolio-backend/internal/assistant"
	"portfolio-backend/internal/dto"
	chatlogservice "portfolio-backend/internal/service/chatlog"
	"portfolio-backend/utils"
)

type AssistantEndpoints interface {
	Stream(http.ResponseWriter, *http.Request) error
	Log(http.ResponseWriter, *http.Request) error
}

type assistantEndpoints struct {
	assistantService *assistant.Service
	logService       *chatlogservice.Service
}

func NewAssistantEndpoints(assistantService *assistant.Service, logService *chatlogservice.Service) AssistantEndpoints {
	return &assistantEndpoints{
		assistantService: assistantService,
		logService:       logService,
	}
}

func (h *assistantEndpoints) Stream(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodPost: h.handleStream,
	})
}

func (h *assistantEndpoints) Log(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodPost: h.handleLog,
	})
}

// handleStream forwards the conversation to the hosted model and relays its
// output as a chunked plain-text stream. Once the first chunk is on the wire
// errors can no longer change the status code; they end the stream instead.
func (h *assistantEndpoints) handleStream(w http.ResponseWriter, r *http.Request) error {
	var req dto.AssistantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    "Messages array is required",
			ErrorLog:   fmt.Errorf("decode assistant request: %w", err),
		}
	}

	turns := make([]assistant.Turn, len(req.Messages))
	for i, msg := range req.Messages {
		turns[i] = assistant.Turn{Role: msg.Role, Content: msg.Content}
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		return &HTTPError{
			StatusCode: http.StatusInternalServerError,
			Message:    "Streaming unsupported",
			ErrorLog:   fmt.Errorf("response writer does not implement http.Flusher"),
		}
	}

	wroteAny := false
	err := h.assistantService.Stream(r.Context(), turns, func(chunk string) error {
		if !wroteAny {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.Header().Set("Cache-Control", "no-cache")
			w.WriteHeader(http.StatusOK)
			wroteAny = true
		}
		if _, err := w.Write([]byte(chunk)); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	})

	if err != nil {
		if errors.Is(err, context.Canceled) {
			// Caller hung up mid-stream; nothing left to write.
			return nil
		}
		if wroteAny {
			log.Printf("assistant stream aborted after partial response: %v", err)
			return nil
		}
		return mapAssistantServiceError(err)
	}
	return nil
}

func (h *assistantEndpoints) handleLog(w http.ResponseWriter, r *http.Request) error {
	var req dto.ChatLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    "Invalid request payload",
			ErrorLog:   fmt.Errorf("decode chat log request: %w", err),
		}
	}

	result, err := h.logService.Write(r.Context(), chatlogservice.WriteParams{
		SessionID:      req.SessionID,
		ConversationID: req.ConversationID,
		UserMessage:    req.UserMessage,
		AIResponse:     req.AIResponse,
		Referrer:       req.Referrer,
		IPAddress:      utils.RealClientIP(r),
		UserAgent:      utils.UserAgent(r),
	})
	if err != nil {
		return mapChatLogServiceError(err)
	}

	return WriteJSON(w, http.StatusCreated, dto.ChatLogResponse{
		Success: true,
		ID:      result.ID,
		Country: result.Location.Country,
		City:    result.Location.City,
	})
}

func mapAssistantServiceError(err error) error {
	var svcErr *assistant.Error
	if errors.As(err, &svcErr) {
		status := http.StatusInternalServerError
		if svcErr.Code == assistant.ErrorCodeValidation {
			status = http.StatusBadRequest
		}
		return &HTTPError{
			StatusCode: status,
			Message:    svcErr.Message,
			ErrorLog:   svcErr.Err,
		}
	}

	return &HTTPError{
		StatusCode: http.StatusInternalServerError,
		Message:    "Internal server error",
		ErrorLog:   err,
	}
}

func mapChatLogServiceError(err error) error {
	var svcErr *chatlogservice.Error
	if errors.As(err, &svcErr) {
		status := http.StatusInternalServerError
		if svcErr.Code == chatlogservice.ErrorCodeValidation {
			status = http.StatusBadRequest
		}
		return &HTTPError{
			StatusCode: status,
			Message:    svcErr.Message,
			ErrorLog:   svcErr.Err,
		}
	}

	return &HTTPError{
		StatusCode: http.StatusInternalServerError,
		Message:    "Internal server error",
		ErrorLog:   err,
	}
}
