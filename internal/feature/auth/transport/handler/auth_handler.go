// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"hrm_backend/internal/api"
	"hrm_backend/internal/feature/auth/domain/entity"
	"hrm_backend/internal/feature/auth/transport/http/dto"
	"hrm_backend/internal/feature/auth/usecase"
	jwtmw "hrm_backend/internal/infrastructure/jwt"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Register は新規ユーザーを登録し、トークンとユーザーを返します。
	Register(ctx context.Context, in usecase.RegisterInput) (string, *entity.User, error)
	// Login はユーザーを認証し、成功時にトークンとユーザーを返します。
	Login(ctx context.Context, email, password string) (string, *entity.User, error)
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register はユーザー登録APIエンドポイントを処理します。
// - 必須フィールド欠落時は400を返却
// - パスワード要件違反・メール形式違反時は400を返却
// - メール・電話番号重複時は400を返却
// - 成功時はトークンと公開プロジェクション付きで201を返却
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest,
			api.Fail("name, email, password, and confirmPassword are required"))
		return
	}

	token, user, err := h.auth.Register(c.Request.Context(), usecase.RegisterInput{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Role:            req.Role,
		Phone:           req.Phone,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrPasswordTooShort),
			errors.Is(err, usecase.ErrPasswordMismatch),
			errors.Is(err, usecase.ErrInvalidEmail),
			errors.Is(err, usecase.ErrInvalidRole),
			errors.Is(err, usecase.ErrEmailAlreadyExists),
			errors.Is(err, usecase.ErrPhoneAlreadyExists):
			slog.Warn("register failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
			c.JSON(http.StatusBadRequest, api.Fail(err.Error()))
		default:
			slog.Error("register failed", "error", err, "remote_addr", c.ClientIP())
			c.JSON(http.StatusInternalServerError, api.Error("something went very wrong"))
		}
		return
	}

	slog.Info("user registered", "email", user.Email, "role", user.Role, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.AuthResponse{Status: "success", Token: token, User: user.Public()})
}

// Login はユーザーログインAPIエンドポイントを処理します。
// フィールド欠落・未知のメール・パスワード不一致はすべて同一の汎用メッセージで
// 401を返却し、ユーザー列挙を防止します。
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnauthorized, api.Fail("incorrect email or password"))
		return
	}

	token, user, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			// ユーザー列挙攻撃を防止するため、実際のエラーを公開しない
			slog.Warn("login failed", "email", req.Email, "remote_addr", c.ClientIP())
			c.JSON(http.StatusUnauthorized, api.Fail("incorrect email or password"))
			return
		}
		slog.Error("login failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.Error("something went very wrong"))
		return
	}

	slog.Info("user login successful", "email", user.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.AuthResponse{Status: "success", Token: token, User: user.Public()})
}

// Protected はトークン検証の導通確認用エンドポイントです。
func (h *AuthHandler) Protected(c *gin.Context) {
	user := jwtmw.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, api.Fail("you are not logged in"))
		return
	}
	c.JSON(http.StatusOK, api.Message(
		fmt.Sprintf("Hello, %s. You have accessed a protected route!", user.Name)))
}
