package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/AlenesK/howudoin/application/services"
	"github.com/AlenesK/howudoin/pkg/auth"
	"github.com/AlenesK/howudoin/pkg/common"
	pkgerrors "github.com/AlenesK/howudoin/pkg/errors"
	"github.com/AlenesK/howudoin/pkg/utils"
)

// FriendHandler handles friend-request and friend-list HTTP requests
type FriendHandler struct {
	friendService *services.FriendService
	errors        *pkgerrors.ErrorHandler
	logger        *zap.Logger
}

// NewFriendHandler creates a new friend handler
func NewFriendHandler(friendService *services.FriendService, errorHandler *pkgerrors.ErrorHandler, logger *zap.Logger) *FriendHandler {
	return &FriendHandler{
		friendService: friendService,
		errors:        errorHandler,
		logger:        logger,
	}
}

// SendFriendRequestRequest represents the request body for sending a friend request
type SendFriendRequestRequest struct {
	ToEmail string `json:"toEmail" validate:"required,email"`
}

// AcceptFriendRequestRequest represents the request body for accepting a friend request
type AcceptFriendRequestRequest struct {
	FromEmail string `json:"fromEmail" validate:"required,email"`
}

// SendRequest handles POST /friends/add
func (h *FriendHandler) SendRequest(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	var req SendFriendRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError("invalid request body"))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError(err.Error()))
		return
	}

	request, err := h.friendService.SendFriendRequest(r.Context(), userCtx.Email, req.ToEmail)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, newFriendRequestResponse(request))
}

// AcceptRequest handles POST /friends/accept
func (h *FriendHandler) AcceptRequest(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	var req AcceptFriendRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError("invalid request body"))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError(err.Error()))
		return
	}

	if err := h.friendService.AcceptFriendRequest(r.Context(), userCtx.Email, req.FromEmail); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]string{
		"message": "friend request accepted",
	})
}

// ListFriends handles GET /friends
func (h *FriendHandler) ListFriends(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	friends, err := h.friendService.GetFriendList(r.Context(), userCtx.Email)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	responses := make([]UserResponse, 0, len(friends))
	for _, friend := range friends {
		responses = append(responses, newUserResponse(friend))
	}

	common.RespondJSON(w, http.StatusOK, responses)
}

// ListPendingRequests handles GET /friends/pending
func (h *FriendHandler) ListPendingRequests(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	requests, err := h.friendService.GetPendingRequests(r.Context(), userCtx.Email)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	responses := make([]FriendRequestResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, newFriendRequestResponse(request))
	}

	common.RespondJSON(w, http.StatusOK, responses)
}
