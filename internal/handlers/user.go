package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/masarhq/masar-backend/internal/logger"
	"github.com/masarhq/masar-backend/internal/services"
)

type UserHandler struct {
	log         *logger.Logger
	userService services.UserService
}

func NewUserHandler(log *logger.Logger, userService services.UserService) *UserHandler {
	return &UserHandler{
		log:         log.With("handler", "UserHandler"),
		userService: userService,
	}
}

type createUserRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if req.Email == "" {
		RespondError(c, http.StatusBadRequest, "missing_fields", errors.New("email is required"))
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), nil, req.Email, req.FirstName, req.LastName)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			RespondError(c, http.StatusConflict, "email_taken", err)
			return
		}
		h.log.Error("Create user failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "create_user_failed", errors.New("failed to create user"))
		return
	}
	RespondCreated(c, gin.H{"user": user})
}

func (h *UserHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	user, err := h.userService.GetByID(c.Request.Context(), nil, id)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			RespondError(c, http.StatusNotFound, "user_not_found", err)
			return
		}
		h.log.Error("Get user failed", "error", err, "user_id", id)
		RespondError(c, http.StatusInternalServerError, "load_user_failed", errors.New("failed to load user"))
		return
	}
	RespondOK(c, gin.H{"user": user})
}
