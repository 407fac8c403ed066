package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/AlenesK/howudoin/application/services"
	"github.com/AlenesK/howudoin/pkg/auth"
	"github.com/AlenesK/howudoin/pkg/common"
	pkgerrors "github.com/AlenesK/howudoin/pkg/errors"
	"github.com/AlenesK/howudoin/pkg/utils"
)

// MessageHandler handles direct-message HTTP requests
type MessageHandler struct {
	messageService *services.MessageService
	errors         *pkgerrors.ErrorHandler
	logger         *zap.Logger
}

// NewMessageHandler creates a new message handler
func NewMessageHandler(messageService *services.MessageService, errorHandler *pkgerrors.ErrorHandler, logger *zap.Logger) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
		errors:         errorHandler,
		logger:         logger,
	}
}

// SendMessageRequest represents the request body for sending a direct message
type SendMessageRequest struct {
	ToEmail string `json:"toEmail" validate:"required,email"`
	Content string `json:"content" validate:"required"`
}

// Send handles POST /messages/send
func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError("invalid request body"))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError(err.Error()))
		return
	}

	message, err := h.messageService.SendMessage(r.Context(), userCtx.Email, req.ToEmail, req.Content)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, newMessageResponse(message))
}

// GetConversation handles GET /messages?otherEmail=...
func (h *MessageHandler) GetConversation(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	otherEmail := r.URL.Query().Get("otherEmail")
	if otherEmail == "" {
		h.errors.Handle(w, r, pkgerrors.NewValidationError("otherEmail query parameter is required"))
		return
	}

	messages, err := h.messageService.GetConversationHistory(r.Context(), userCtx.Email, otherEmail)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, newMessageResponses(messages))
}

// MarkRead handles POST /messages/{messageID}/read
func (h *MessageHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	messageID := chi.URLParam(r, "messageID")

	message, err := h.messageService.MarkMessageAsRead(r.Context(), messageID, userCtx.Email)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, newMessageResponse(message))
}

// Delete handles DELETE /messages/{messageID}
func (h *MessageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	messageID := chi.URLParam(r, "messageID")

	if err := h.messageService.DeleteMessage(r.Context(), messageID, userCtx.Email); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UnreadCount handles GET /messages/unread/count
func (h *MessageHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	count, err := h.messageService.GetUnreadMessageCount(r.Context(), userCtx.Email)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]int64{
		"count": count,
	})
}

// Unread handles GET /messages/unread
func (h *MessageHandler) Unread(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	messages, err := h.messageService.GetUnreadMessages(r.Context(), userCtx.Email)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, newMessageResponses(messages))
}

// Recent handles GET /messages/recent
func (h *MessageHandler) Recent(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	messages, err := h.messageService.GetRecentConversations(r.Context(), userCtx.Email)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, newMessageResponses(messages))
}
