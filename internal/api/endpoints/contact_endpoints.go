package endpoints

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"portfolio-backend/internal/dto"
	contactservice "portfolio-backend/internal/service/contact"
)

type ContactEndpoints interface {
	Contact(http.ResponseWriter, *http.Request) error
}

type contactEndpoints struct {
	service *contactservice.Service
}

func NewContactEndpoints(service *contactservice.Service) ContactEndpoints {
	return &contactEndpoints{
		service: service,
	}
}

func (h *contactEndpoints) Contact(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodPost: h.handleSubmit,
	})
}

func (h *contactEndpoints) handleSubmit(w http.ResponseWriter, r *http.Request) error {
	var req dto.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    "Invalid request payload",
			ErrorLog:   fmt.Errorf("decode contact request: %w", err),
		}
	}

	result, err := h.service.Submit(r.Context(), contactservice.SubmitParams{
		Name:    req.Name,
		Email:   req.Email,
		Company: req.Company,
		Phone:   req.Phone,
		Message: req.Message,
	})
	if err != nil {
		return mapContactServiceError(err)
	}

	return WriteJSON(w, http.StatusCreated, dto.ContactResponse{
		Success:   true,
		Message:   "Thank you for your message! I'll get back to you soon.",
		ID:        result.ID,
		CreatedAt: result.CreatedAt.Format(time.RFC3339),
	})
}

func mapContactServiceError(err error) error {
	var svcErr *contactservice.Error
	if errors.As(err, &svcErr) {
		status := http.StatusInternalServerError
		if svcErr.Code == contactservice.ErrorCodeValidation {
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
