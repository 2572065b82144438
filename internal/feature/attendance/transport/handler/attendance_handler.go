// Package handler はattendanceフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hrm_backend/internal/api"
	"hrm_backend/internal/feature/attendance/domain/entity"
	"hrm_backend/internal/feature/attendance/transport/http/dto"
	"hrm_backend/internal/feature/attendance/usecase"
)

// AttendanceUsecase は勤怠台帳のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AttendanceUsecase interface {
	List(ctx context.Context, f usecase.Filter) ([]entity.Row, error)
	SetStatusByEmployee(ctx context.Context, employeeID uint, status string) (*usecase.Marked, error)
	SetStatusByID(ctx context.Context, attendanceID uint, status string) (*usecase.Marked, error)
}

// AttendanceHandler は勤怠関連のHTTPリクエストを処理します。
type AttendanceHandler struct {
	uc AttendanceUsecase
}

// NewAttendanceHandler はAttendanceHandlerの新しいインスタンスを生成します。
func NewAttendanceHandler(uc AttendanceUsecase) *AttendanceHandler {
	return &AttendanceHandler{uc: uc}
}

// List はフィルタ付きの勤怠一覧を返します。
func (h *AttendanceHandler) List(c *gin.Context) {
	f := usecase.Filter{
		Status: c.Query("status"),
		Search: c.Query("search"),
	}
	rows, err := h.uc.List(c.Request.Context(), f)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":     "success",
		"results":    len(rows),
		"attendance": rows,
	})
}

// UpsertByEmployee は従業員IDをキーとした勤怠ステータスの記録を処理します。
func (h *AttendanceHandler) UpsertByEmployee(c *gin.Context) {
	var req dto.UpsertByEmployeeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.Fail("employee ID and status are required"))
		return
	}
	marked, err := h.uc.SetStatusByEmployee(c.Request.Context(), req.EmployeeID, req.Status)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "attendance": marked})
}

// UpdateByID はレコードIDによるステータス更新を処理します。
// 書き込みはUpsertByEmployeeと同一の検証・upsert経路を通ります。
func (h *AttendanceHandler) UpdateByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, api.Fail("attendance record not found"))
		return
	}
	var req dto.UpdateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.Fail("status is required"))
		return
	}
	marked, err := h.uc.SetStatusByID(c.Request.Context(), uint(id), req.Status)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "attendance": marked})
}

// respondError はユースケースのエラーをレスポンスエンベロープへ変換します。
func (h *AttendanceHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrAttendanceNotFound):
		c.JSON(http.StatusNotFound, api.Fail(err.Error()))
	case errors.Is(err, usecase.ErrInvalidStatus),
		errors.Is(err, usecase.ErrEmployeeNotPresent):
		c.JSON(http.StatusBadRequest, api.Fail(err.Error()))
	default:
		slog.Error("attendance operation failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.Error("something went very wrong"))
	}
}
