// Package handler はcandidateフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	"hrm_backend/internal/api"
	"hrm_backend/internal/feature/candidate/domain/entity"
	"hrm_backend/internal/feature/candidate/transport/http/dto"
	"hrm_backend/internal/feature/candidate/usecase"
	empentity "hrm_backend/internal/feature/employee/domain/entity"
	"hrm_backend/internal/infrastructure/storage"
)

// CandidateUsecase は採用パイプラインのユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type CandidateUsecase interface {
	Create(ctx context.Context, in usecase.CreateInput) (*entity.Candidate, error)
	List(ctx context.Context, f usecase.Filter) ([]entity.Candidate, error)
	Get(ctx context.Context, id uint) (*entity.Candidate, error)
	UpdateStatus(ctx context.Context, id uint, status string) (*entity.Candidate, *empentity.Employee, error)
	MoveToEmployee(ctx context.Context, id uint) (*empentity.Employee, error)
	Delete(ctx context.Context, id uint) error
}

// FileStore abstracts the upload store consumed by this handler.
type FileStore interface {
	Save(file *multipart.FileHeader) (string, error)
	Exists(path string) bool
	Remove(path string) error
}

// CandidateHandler は候補者関連のHTTPリクエストを処理します。
type CandidateHandler struct {
	uc    CandidateUsecase
	files FileStore
}

// NewCandidateHandler はCandidateHandlerの新しいインスタンスを生成します。
func NewCandidateHandler(uc CandidateUsecase, files FileStore) *CandidateHandler {
	return &CandidateHandler{uc: uc, files: files}
}

// Create は候補者登録APIエンドポイントを処理します。
// multipartフォームの必須フィールドと履歴書ファイル（2MiB以下）を検証し、
// 保存したファイルのパスとともに候補者を作成します。
func (h *CandidateHandler) Create(c *gin.Context) {
	var req dto.CreateCandidateReq
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest,
			api.Fail("name, email, phone, position, and experience are required"))
		return
	}

	file, err := c.FormFile("resume")
	if err != nil {
		c.JSON(http.StatusBadRequest, api.Fail("resume file is required"))
		return
	}
	if file.Size > storage.MaxUploadSize {
		c.JSON(http.StatusBadRequest, api.Fail("resume file must not exceed 2MB"))
		return
	}

	path, err := h.files.Save(file)
	if err != nil {
		slog.Error("resume save failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.Error("something went very wrong"))
		return
	}

	cand, err := h.uc.Create(c.Request.Context(), usecase.CreateInput{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Position:   req.Position,
		Experience: req.Experience,
		Resume:     path,
	})
	if err != nil {
		// 作成に失敗した場合、保存済みファイルを残さない（ベストエフォート）
		if rmErr := h.files.Remove(path); rmErr != nil {
			slog.Warn("orphaned resume cleanup failed", "path", path, "error", rmErr)
		}
		h.respondError(c, err)
		return
	}

	slog.Info("candidate created", "id", cand.ID, "email", cand.Email)
	c.JSON(http.StatusCreated, gin.H{"status": "success", "candidate": cand})
}

// List はフィルタ付きの候補者一覧を返します。
func (h *CandidateHandler) List(c *gin.Context) {
	f := usecase.Filter{
		Status:   c.Query("status"),
		Position: c.Query("position"),
		Search:   c.Query("search"),
	}
	candidates, err := h.uc.List(c.Request.Context(), f)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":     "success",
		"results":    len(candidates),
		"candidates": candidates,
	})
}

// Get はIDで候補者を返します。
func (h *CandidateHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	cand, err := h.uc.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "candidate": cand})
}

// UpdateStatus は候補者のステータス更新を処理します。
// Selectedへの遷移では作成された従業員（なければnull）もレスポンスに含めます。
func (h *CandidateHandler) UpdateStatus(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	var req dto.UpdateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.Fail("status is required"))
		return
	}

	cand, emp, err := h.uc.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if emp != nil {
		slog.Info("candidate selected, employee created",
			"candidate_id", cand.ID, "employee_id", emp.ID, "email", emp.Email)
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "candidate": cand, "employee": emp})
}

// MoveToEmployee はSelected状態の候補者の従業員への昇格を処理します。
func (h *CandidateHandler) MoveToEmployee(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	emp, err := h.uc.MoveToEmployee(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	slog.Info("candidate moved to employee", "candidate_id", id, "employee_id", emp.ID)
	c.JSON(http.StatusCreated, gin.H{"status": "success", "employee": emp})
}

// Delete は候補者を削除します。
func (h *CandidateHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	if err := h.uc.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DownloadResume は保存済み履歴書をファイル添付として返します。
func (h *CandidateHandler) DownloadResume(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	cand, err := h.uc.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if cand.Resume == "" || !h.files.Exists(cand.Resume) {
		c.JSON(http.StatusNotFound, api.Fail(usecase.ErrResumeNotFound.Error()))
		return
	}
	c.FileAttachment(cand.Resume, filepath.Base(cand.Resume))
}

// respondError はユースケースのエラーをレスポンスエンベロープへ変換します。
func (h *CandidateHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrCandidateNotFound):
		c.JSON(http.StatusNotFound, api.Fail(err.Error()))
	case errors.Is(err, usecase.ErrCandidateExists),
		errors.Is(err, usecase.ErrInvalidStatus),
		errors.Is(err, usecase.ErrDuplicateCandidateEmail),
		errors.Is(err, usecase.ErrNotSelected),
		errors.Is(err, usecase.ErrEmployeeExists):
		c.JSON(http.StatusBadRequest, api.Fail(err.Error()))
	default:
		slog.Error("candidate operation failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.Error("something went very wrong"))
	}
}

// parseID は:idパスパラメータを読み取ります。解析できないIDはレコードを
// 参照できないため404を返します。
func (h *CandidateHandler) parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, api.Fail("candidate not found"))
		return 0, false
	}
	return uint(id), true
}
