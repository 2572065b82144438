// Package handler はleaveフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	"hrm_backend/internal/api"
	authentity "hrm_backend/internal/feature/auth/domain/entity"
	"hrm_backend/internal/feature/leave/domain/entity"
	"hrm_backend/internal/feature/leave/transport/http/dto"
	"hrm_backend/internal/feature/leave/usecase"
	jwtmw "hrm_backend/internal/infrastructure/jwt"
	"hrm_backend/internal/infrastructure/storage"
)

// LeaveUsecase は休暇ワークフローのユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type LeaveUsecase interface {
	Create(ctx context.Context, actor *authentity.User, in usecase.CreateInput) (*entity.Leave, error)
	List(ctx context.Context, f usecase.Filter) ([]entity.Leave, error)
	Get(ctx context.Context, id uint) (*entity.Leave, error)
	UpdateStatus(ctx context.Context, id uint, status string) (*entity.Leave, error)
	Delete(ctx context.Context, id uint) error
}

// FileStore abstracts the upload store consumed by this handler.
type FileStore interface {
	Save(file *multipart.FileHeader) (string, error)
	Exists(path string) bool
	Remove(path string) error
}

// leaveItem is a list/detail projection that adds a download URL for the
// attached document when one exists.
type leaveItem struct {
	entity.Leave
	DocsDownloadURL string `json:"docsDownloadUrl,omitempty"`
}

// LeaveHandler は休暇関連のHTTPリクエストを処理します。
type LeaveHandler struct {
	uc    LeaveUsecase
	files FileStore
}

// NewLeaveHandler はLeaveHandlerの新しいインスタンスを生成します。
func NewLeaveHandler(uc LeaveUsecase, files FileStore) *LeaveHandler {
	return &LeaveHandler{uc: uc, files: files}
}

// Create は休暇申請APIエンドポイントを処理します。
// multipartフォームを受け取り、添付ドキュメント（必須、2MiB以下）を保存した
// うえで申請を登録します。
func (h *LeaveHandler) Create(c *gin.Context) {
	var req dto.CreateLeaveReq
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.Fail(usecase.ErrMissingFields.Error()))
		return
	}

	file, err := c.FormFile("docs")
	if err != nil {
		c.JSON(http.StatusBadRequest, api.Fail("docs file is required"))
		return
	}
	if file.Size > storage.MaxUploadSize {
		c.JSON(http.StatusBadRequest, api.Fail("docs file must not exceed 2MB"))
		return
	}
	docsPath, err := h.files.Save(file)
	if err != nil {
		slog.Error("docs save failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.Error("something went very wrong"))
		return
	}

	leave, err := h.uc.Create(c.Request.Context(), jwtmw.CurrentUser(c), usecase.CreateInput{
		EmployeeID:   req.Employee,
		EmployeeName: req.EmployeeName,
		FromDate:     req.FromDate,
		Reason:       req.Reason,
		Designation:  req.Designation,
		Docs:         docsPath,
	})
	if err != nil {
		// 作成に失敗した場合、保存済みファイルを残さない（ベストエフォート）
		if docsPath != "" {
			if rmErr := h.files.Remove(docsPath); rmErr != nil {
				slog.Warn("orphaned docs cleanup failed", "path", docsPath, "error", rmErr)
			}
		}
		h.respondError(c, err)
		return
	}

	slog.Info("leave created", "id", leave.ID, "employee_id", leave.EmployeeID)
	c.JSON(http.StatusCreated, gin.H{"status": "success", "leave": h.item(c, leave)})
}

// List はフィルタ付きの休暇一覧を返します。
// calendar=trueはカレンダー表示用にapprovedのみへ絞り込みます。
func (h *LeaveHandler) List(c *gin.Context) {
	f := usecase.Filter{
		Status:       c.Query("status"),
		Search:       c.Query("search"),
		CalendarOnly: c.Query("calendar") == "true",
	}
	if v := c.Query("employee"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.Fail("employee must be a numeric id"))
			return
		}
		f.EmployeeID = uint(id)
	}
	if v := c.Query("fromDate"); v != "" {
		t, err := usecase.ParseFromDate(v)
		if err != nil {
			h.respondError(c, err)
			return
		}
		f.FromDate = &t
	}

	leaves, err := h.uc.List(c.Request.Context(), f)
	if err != nil {
		h.respondError(c, err)
		return
	}

	items := make([]leaveItem, 0, len(leaves))
	for i := range leaves {
		items = append(items, h.item(c, &leaves[i]))
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"results": len(items),
		"leaves":  items,
	})
}

// Get はIDで休暇申請を返します。
func (h *LeaveHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	leave, err := h.uc.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "leave": h.item(c, leave)})
}

// UpdateStatus は休暇申請のステータスのみを更新します。
// ステータス以外のフィールドを含むペイロードは拒否されます（休暇申請は
// ステータス以外不変のため）。
func (h *LeaveHandler) UpdateStatus(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var payload map[string]json.RawMessage
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, api.Fail("status is required"))
		return
	}
	for key := range payload {
		if key != "status" {
			c.JSON(http.StatusBadRequest, api.Fail("only the status field can be updated"))
			return
		}
	}
	var status string
	if raw, ok := payload["status"]; !ok || json.Unmarshal(raw, &status) != nil || status == "" {
		c.JSON(http.StatusBadRequest, api.Fail("status is required"))
		return
	}

	leave, err := h.uc.UpdateStatus(c.Request.Context(), id, status)
	if err != nil {
		h.respondError(c, err)
		return
	}
	slog.Info("leave status updated", "id", leave.ID, "status", leave.Status)
	c.JSON(http.StatusOK, gin.H{"status": "success", "leave": h.item(c, leave)})
}

// Delete は休暇申請を削除します。
func (h *LeaveHandler) Delete(c *gin.Context) {
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

// DownloadDocs は保存済み添付ドキュメントをファイル添付として返します。
func (h *LeaveHandler) DownloadDocs(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	leave, err := h.uc.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if leave.Docs == "" || !h.files.Exists(leave.Docs) {
		c.JSON(http.StatusNotFound, api.Fail(usecase.ErrDocsNotFound.Error()))
		return
	}
	c.FileAttachment(leave.Docs, filepath.Base(leave.Docs))
}

// item wraps a leave with its document download URL, derived from the
// request host so the link works behind any binding.
func (h *LeaveHandler) item(c *gin.Context, l *entity.Leave) leaveItem {
	item := leaveItem{Leave: *l}
	if l.Docs != "" {
		scheme := "http"
		if c.Request.TLS != nil {
			scheme = "https"
		}
		item.DocsDownloadURL = fmt.Sprintf("%s://%s/api/leaves/%d/docs", scheme, c.Request.Host, l.ID)
	}
	return item
}

// respondError はユースケースのエラーをレスポンスエンベロープへ変換します。
func (h *LeaveHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrLeaveNotFound):
		c.JSON(http.StatusNotFound, api.Fail(err.Error()))
	case errors.Is(err, usecase.ErrForbidden):
		c.JSON(http.StatusForbidden, api.Fail(err.Error()))
	case errors.Is(err, usecase.ErrMissingFields),
		errors.Is(err, usecase.ErrEmployeeNameNotFound),
		errors.Is(err, usecase.ErrInvalidDate),
		errors.Is(err, usecase.ErrEmployeeNotPresent),
		errors.Is(err, usecase.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, api.Fail(err.Error()))
	default:
		slog.Error("leave operation failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.Error("something went very wrong"))
	}
}

// parseID は:idパスパラメータを読み取ります。解析できないIDはレコードを
// 参照できないため404を返します。
func (h *LeaveHandler) parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, api.Fail("leave not found"))
		return 0, false
	}
	return uint(id), true
}
