package endpoints

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"portfolio-backend/internal/dto"
	authservice "portfolio-backend/internal/service/auth"
	chatlogservice "portfolio-backend/internal/service/chatlog"
	contactservice "portfolio-backend/internal/service/contact"
)

type AdminEndpoints interface {
	Login(http.ResponseWriter, *http.Request) error
	Refresh(http.ResponseWriter, *http.Request) error
	ListContacts(http.ResponseWriter, *http.Request) error
	ListChatLogs(http.ResponseWriter, *http.Request) error
}

type adminEndpoints struct {
	authService    *authservice.Service
	contactService *contactservice.Service
	chatlogService *chatlogservice.Service
}

func NewAdminEndpoints(authService *authservice.Service, contactService *contactservice.Service, chatlogService *chatlogservice.Service) AdminEndpoints {
	return &adminEndpoints{
		authService:    authService,
		contactService: contactService,
		chatlogService: chatlogService,
	}
}

func (h *adminEndpoints) Login(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodPost: h.handleLogin,
	})
}

func (h *adminEndpoints) Refresh(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodPost: h.handleRefresh,
	})
}

func (h *adminEndpoints) ListContacts(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodGet: h.handleListContacts,
	})
}

func (h *adminEndpoints) ListChatLogs(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodGet: h.handleListChatLogs,
	})
}

func (h *adminEndpoints) handleLogin(w http.ResponseWriter, r *http.Request) error {
	var req dto.AdminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    "Invalid request payload",
			ErrorLog:   fmt.Errorf("decode login request: %w", err),
		}
	}

	result, err := h.authService.Login(r.Context(), authservice.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return mapAuthServiceError(err)
	}

	return WriteJSON(w, http.StatusOK, dto.AdminLoginResponse{
		AccessToken:  result.Tokens.AccessToken,
		RefreshToken: result.Tokens.RefreshToken,
		Name:         result.Admin.Name,
	})
}

func (h *adminEndpoints) handleRefresh(w http.ResponseWriter, r *http.Request) error {
	var req dto.AdminRefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    "Invalid request payload",
			ErrorLog:   fmt.Errorf("decode refresh request: %w", err),
		}
	}

	accessToken, err := h.authService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		return mapAuthServiceError(err)
	}

	return WriteJSON(w, http.StatusOK, dto.AdminRefreshResponse{
		AccessToken: accessToken,
	})
}

func (h *adminEndpoints) handleListContacts(w http.ResponseWriter, r *http.Request) error {
	submissions, err := h.contactService.List(r.Context(), queryLimit(r))
	if err != nil {
		return mapContactServiceError(err)
	}

	contacts := make([]dto.ContactEntry, len(submissions))
	for i, submission := range submissions {
		contacts[i] = dto.ContactEntry{
			ID:        submission.ID,
			Name:      submission.Name,
			Email:     submission.Email,
			Company:   submission.Company,
			Phone:     submission.Phone,
			Message:   submission.Message,
			Source:    submission.Source,
			CreatedAt: submission.CreatedAt,
		}
	}

	return WriteJSON(w, http.StatusOK, dto.ContactListResponse{Contacts: contacts})
}

func (h *adminEndpoints) handleListChatLogs(w http.ResponseWriter, r *http.Request) error {
	logs, err := h.chatlogService.List(r.Context(), r.URL.Query().Get("conversationId"), queryLimit(r))
	if err != nil {
		return mapChatLogServiceError(err)
	}

	entries := make([]dto.ChatLogEntry, len(logs))
	for i, entry := range logs {
		entries[i] = dto.ChatLogEntry{
			ID:             entry.ID,
			SessionID:      entry.SessionID,
			ConversationID: entry.ConversationID,
			UserMessage:    entry.UserMessage,
			AIResponse:     entry.AIResponse,
			Country:        entry.Country,
			City:           entry.City,
			IPAddress:      entry.IPAddress,
			UserAgent:      entry.UserAgent,
			Referrer:       entry.Referrer,
			CreatedAt:      entry.CreatedAt,
		}
	}

	return WriteJSON(w, http.StatusOK, dto.ChatLogListResponse{Logs: entries})
}

func queryLimit(r *http.Request) int {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil {
		return 0
	}
	return limit
}

func mapAuthServiceError(err error) error {
	var svcErr *authservice.Error
	if errors.As(err, &svcErr) {
		status := http.StatusInternalServerError
		switch svcErr.Code {
		case authservice.ErrorCodeValidation:
			status = http.StatusBadRequest
		case authservice.ErrorCodeUnauthorized:
			status = http.StatusUnauthorized
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
