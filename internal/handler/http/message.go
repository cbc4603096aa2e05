package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Ahmedezz570/SkillSwap/internal/service"
	"github.com/Ahmedezz570/SkillSwap/pkg/httputil"
	"github.com/Ahmedezz570/SkillSwap/pkg/validator"
)

// MessageHandler handles HTTP requests for messaging endpoints.
type MessageHandler struct {
	service *service.MessageService
	logger  *slog.Logger
}

// NewMessageHandler creates a new message HTTP handler.
func NewMessageHandler(svc *service.MessageService, logger *slog.Logger) *MessageHandler {
	return &MessageHandler{
		service: svc,
		logger:  logger,
	}
}

// SendMessageRequest is the JSON request body for sending a message.
type SendMessageRequest struct {
	SenderID   string `json:"sender_id" validate:"required,uuid"`
	ReceiverID string `json:"receiver_id" validate:"required,uuid"`
	Content    string `json:"content" validate:"required,max=5000"`
}

// SendMessage handles POST /api/v1/messages
func (h *MessageHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	message, err := h.service.SendMessage(r.Context(), service.SendMessageInput{
		SenderID:   req.SenderID,
		ReceiverID: req.ReceiverID,
		Content:    req.Content,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: message})
}

// ListConversations handles GET /api/v1/users/{id}/conversations
func (h *MessageHandler) ListConversations(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	conversations, err := h.service.ListConversations(r.Context(), id.String())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: conversations})
}

// GetThread handles GET /api/v1/users/{id}/conversations/{otherID}
func (h *MessageHandler) GetThread(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	otherID, ok := httputil.ParseUUID(w, chi.URLParam(r, "otherID"))
	if !ok {
		return
	}

	messages, err := h.service.GetThread(r.Context(), id.String(), otherID.String())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: messages})
}
