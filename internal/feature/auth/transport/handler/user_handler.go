package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hrm_backend/internal/api"
	"hrm_backend/internal/feature/auth/domain/entity"
	"hrm_backend/internal/feature/auth/transport/http/dto"
	"hrm_backend/internal/feature/auth/usecase"
)

// UserUsecase defines the user-management operations consumed by the handler.
type UserUsecase interface {
	List(ctx context.Context) ([]entity.User, error)
	Get(ctx context.Context, id uint) (*entity.User, error)
	Update(ctx context.Context, id uint, in usecase.UpdateUserInput) (*entity.User, error)
	Delete(ctx context.Context, id uint) error
}

// UserHandler serves the /api/users routes.
type UserHandler struct {
	users UserUsecase
}

// NewUserHandler はUserHandlerの新しいインスタンスを生成します。
func NewUserHandler(users UserUsecase) *UserHandler {
	return &UserHandler{users: users}
}

// List returns every registered user.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		slog.Error("user list failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.Error("something went very wrong"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "results": len(users), "users": users})
}

// Get returns a single user by ID.
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	user, err := h.users.Get(c.Request.Context(), id)
	if err != nil {
		respondUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "user": user})
}

// Update applies a partial update to a user.
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.UpdateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.Fail("invalid request body"))
		return
	}
	user, err := h.users.Update(c.Request.Context(), id, usecase.UpdateUserInput{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		Role:  req.Role,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "user": user})
}

// Delete removes a user.
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		respondUserError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// respondUserError maps usecase errors onto the response envelope.
func respondUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrUserNotFound):
		c.JSON(http.StatusNotFound, api.Fail("user not found"))
	case errors.Is(err, usecase.ErrInvalidEmail),
		errors.Is(err, usecase.ErrInvalidRole),
		errors.Is(err, usecase.ErrEmailAlreadyExists):
		c.JSON(http.StatusBadRequest, api.Fail(err.Error()))
	default:
		slog.Error("user operation failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.Error("something went very wrong"))
	}
}

// parseID reads the :id path parameter. On failure it writes a 404 and
// reports false; an unparseable id can never reference a record.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, api.Fail("user not found"))
		return 0, false
	}
	return uint(id), true
}
