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

// GroupHandler handles group-related HTTP requests
type GroupHandler struct {
	groupService *services.GroupService
	errors       *pkgerrors.ErrorHandler
	logger       *zap.Logger
}

// NewGroupHandler creates a new group handler
func NewGroupHandler(groupService *services.GroupService, errorHandler *pkgerrors.ErrorHandler, logger *zap.Logger) *GroupHandler {
	return &GroupHandler{
		groupService: groupService,
		errors:       errorHandler,
		logger:       logger,
	}
}

// CreateGroupRequest represents the request body for creating a group
type CreateGroupRequest struct {
	Name    string   `json:"name" validate:"required,min=1,max=100"`
	Members []string `json:"members" validate:"omitempty,dive,email"`
}

// SendGroupMessageRequest represents the request body for posting to a group
type SendGroupMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

// CreateGroup handles POST /groups/create
func (h *GroupHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	var req CreateGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError("invalid request body"))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError(err.Error()))
		return
	}

	group, err := h.groupService.CreateGroup(r.Context(), userCtx.Email, req.Name, req.Members)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, newGroupResponse(group))
}

// AddMember handles POST /groups/{groupID}/add-member
func (h *GroupHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupID")
	memberEmail := r.URL.Query().Get("memberEmail")
	if memberEmail == "" {
		h.errors.Handle(w, r, pkgerrors.NewValidationError("memberEmail query parameter is required"))
		return
	}

	group, err := h.groupService.AddMember(r.Context(), groupID, memberEmail)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, newGroupResponse(group))
}

// SendMessage handles POST /groups/{groupID}/send
func (h *GroupHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	groupID := chi.URLParam(r, "groupID")

	var req SendGroupMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError("invalid request body"))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError(err.Error()))
		return
	}

	message, err := h.groupService.SendGroupMessage(r.Context(), groupID, userCtx.Email, req.Content)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, newMessageResponse(message))
}

// GetMessages handles GET /groups/{groupID}/messages
func (h *GroupHandler) GetMessages(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	groupID := chi.URLParam(r, "groupID")

	messages, err := h.groupService.GetGroupMessages(r.Context(), groupID, userCtx.Email)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, newMessageResponses(messages))
}

// GetMembers handles GET /groups/{groupID}/members
func (h *GroupHandler) GetMembers(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	groupID := chi.URLParam(r, "groupID")

	members, err := h.groupService.GetGroupMembers(r.Context(), groupID, userCtx.Email)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string][]string{
		"members": members,
	})
}

// GetDetails handles GET /groups/{groupID}
func (h *GroupHandler) GetDetails(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	groupID := chi.URLParam(r, "groupID")

	group, err := h.groupService.GetGroupDetails(r.Context(), groupID, userCtx.Email)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, newGroupResponse(group))
}

// ListGroups handles GET /groups
func (h *GroupHandler) ListGroups(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	groups, err := h.groupService.GetUserGroups(r.Context(), userCtx.Email)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	responses := make([]GroupResponse, 0, len(groups))
	for _, group := range groups {
		responses = append(responses, newGroupResponse(group))
	}

	common.RespondJSON(w, http.StatusOK, responses)
}
