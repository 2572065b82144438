// Package handler はemployeeフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hrm_backend/internal/api"
	"hrm_backend/internal/feature/employee/domain/entity"
	"hrm_backend/internal/feature/employee/transport/http/dto"
	"hrm_backend/internal/feature/employee/usecase"
)

// EmployeeUsecase は従業員ディレクトリのユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type EmployeeUsecase interface {
	List(ctx context.Context, f usecase.Filter) ([]entity.Employee, error)
	Get(ctx context.Context, id uint) (*entity.Employee, error)
	Update(ctx context.Context, id uint, in usecase.UpdateInput) (*entity.Employee, error)
	AssignRole(ctx context.Context, id uint, role string) (*entity.Employee, error)
	Delete(ctx context.Context, id uint) error
}

// EmployeeHandler は従業員関連のHTTPリクエストを処理します。
type EmployeeHandler struct {
	uc EmployeeUsecase
}

// NewEmployeeHandler はEmployeeHandlerの新しいインスタンスを生成します。
func NewEmployeeHandler(uc EmployeeUsecase) *EmployeeHandler {
	return &EmployeeHandler{uc: uc}
}

// List はフィルタ付きの従業員一覧を返します。
func (h *EmployeeHandler) List(c *gin.Context) {
	f := usecase.Filter{
		Position: c.Query("position"),
		Search:   c.Query("search"),
	}
	employees, err := h.uc.List(c.Request.Context(), f)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "success",
		"results":   len(employees),
		"employees": employees,
	})
}

// Get はIDで従業員を返します。
func (h *EmployeeHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	emp, err := h.uc.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "employee": emp})
}

// Update は従業員のディレクトリ属性の更新を処理します。
// name・email・phone・department・positionはすべて必須です。
func (h *EmployeeHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	var req dto.UpdateEmployeeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest,
			api.Fail("name, email, phone, department, and position are required"))
		return
	}
	emp, err := h.uc.Update(c.Request.Context(), id, usecase.UpdateInput{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Department: req.Department,
		Position:   req.Position,
		Role:       req.Role,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "employee": emp})
}

// AssignRole は従業員へのロール割り当てを処理します。
func (h *EmployeeHandler) AssignRole(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	var req dto.AssignRoleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.Fail("role is required"))
		return
	}
	emp, err := h.uc.AssignRole(c.Request.Context(), id, req.Role)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "employee": emp})
}

// Delete は従業員を削除します。参照する勤怠・休暇レコードも同時に削除されます。
func (h *EmployeeHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	if err := h.uc.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	slog.Info("employee deleted", "id", id)
	c.Status(http.StatusNoContent)
}

// respondError はユースケースのエラーをレスポンスエンベロープへ変換します。
func (h *EmployeeHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrEmployeeNotFound):
		c.JSON(http.StatusNotFound, api.Fail(err.Error()))
	case errors.Is(err, usecase.ErrEmailAlreadyExists):
		c.JSON(http.StatusBadRequest, api.Fail(err.Error()))
	default:
		slog.Error("employee operation failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.Error("something went very wrong"))
	}
}

func (h *EmployeeHandler) parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, api.Fail("employee not found"))
		return 0, false
	}
	return uint(id), true
}
