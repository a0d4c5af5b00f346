// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"nutrilens_backend/internal/api"
	"nutrilens_backend/internal/feature/auth/domain/entity"
	"nutrilens_backend/internal/feature/auth/usecase"
	sessionmw "nutrilens_backend/internal/platform/session"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Register は新規ユーザーを登録し、セッションを発行します。
	Register(ctx context.Context, in usecase.RegisterInput, meta usecase.SessionMeta) (*entity.User, *entity.Session, error)
	// Login はユーザーを認証し、成功時に新しいセッションを返します。
	Login(ctx context.Context, username, password string, meta usecase.SessionMeta) (*entity.User, *entity.Session, error)
	// Logout は指定されたセッションを失効させます。
	Logout(ctx context.Context, sessionID string) error
	// CurrentUser はIDでユーザーを取得します。
	CurrentUser(ctx context.Context, userID uint) (*entity.User, error)
	// UpdateProfile は表示名とプロフィール画像を部分更新します。
	UpdateProfile(ctx context.Context, userID uint, in usecase.ProfileInput) (*entity.User, error)
}

// TokenSigner は発行済みセッションをCookie値として署名します。
type TokenSigner interface {
	GenerateSessionToken(sessionID string, expiresAt time.Time) (string, error)
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
type AuthHandler struct {
	auth          AuthUsecase
	tokens        TokenSigner
	secureCookies bool
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタで、外部からAuthUsecaseを注入します。
func NewAuthHandler(auth AuthUsecase, tokens TokenSigner, secureCookies bool) *AuthHandler {
	return &AuthHandler{auth: auth, tokens: tokens, secureCookies: secureCookies}
}

// Register はユーザー登録APIエンドポイントを処理します。
// - バリデーションエラーおよびパスワード不一致時は400を返却
// - ユーザー名重複時は409を返却
// - 成功時はセッションCookieを設定し、201でサニタイズ済みユーザーを返却
func (h *AuthHandler) Register(c *gin.Context) {
	var req api.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		return
	}

	user, session, err := h.auth.Register(c.Request.Context(), usecase.RegisterInput{
		Username:        req.Username,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		DisplayName:     req.DisplayName,
		ProfilePicture:  req.ProfilePicture,
	}, sessionMeta(c))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrPasswordMismatch):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "Passwords do not match"})
		case errors.Is(err, usecase.ErrUsernameTaken):
			slog.Warn("register conflict", "username", req.Username, "remote_addr", c.ClientIP())
			c.JSON(http.StatusConflict, api.ErrorResponse{Message: "Username already exists"})
		default:
			slog.Error("register failed", "error", err)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "Error creating user"})
		}
		return
	}

	if err := h.issueSessionCookie(c, session); err != nil {
		slog.Error("failed to sign session cookie", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "Error creating session"})
		return
	}
	slog.Info("user registered", "username", user.Username, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, toUserResponse(user))
}

// Login はユーザーログインAPIエンドポイントを処理します。
// - バリデーションエラー時は400を返却
// - 認証失敗時は401を返却
// - 成功時はセッションCookieを設定し、200でサニタイズ済みユーザーを返却
func (h *AuthHandler) Login(c *gin.Context) {
	var req api.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		return
	}

	user, session, err := h.auth.Login(c.Request.Context(), req.Username, req.Password, sessionMeta(c))
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			// ユーザー列挙攻撃を防止するため、実際のエラーを公開しない
			slog.Warn("login failed", "username", req.Username, "remote_addr", c.ClientIP())
			c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "Invalid username or password"})
			return
		}
		slog.Error("login failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "Error logging in"})
		return
	}

	if err := h.issueSessionCookie(c, session); err != nil {
		slog.Error("failed to sign session cookie", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "Error creating session"})
		return
	}
	slog.Info("user login successful", "username", user.Username, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, toUserResponse(user))
}

// Logout は現在のセッションを失効させ、Cookieを破棄します。
func (h *AuthHandler) Logout(c *gin.Context) {
	if sessionID, ok := sessionmw.SessionID(c); ok {
		if err := h.auth.Logout(c.Request.Context(), sessionID); err != nil && !errors.Is(err, usecase.ErrSessionNotFound) {
			slog.Error("logout failed", "error", err)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "Error logging out"})
			return
		}
	}
	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Logged out successfully"})
}

// Me は現在の認証済みユーザーを返します。
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := sessionmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "Not authenticated"})
		return
	}

	user, err := h.auth.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			// セッションはあるがユーザーが消えている場合は未認証として扱う
			h.clearSessionCookie(c)
			c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "Not authenticated"})
			return
		}
		slog.Error("failed to load current user", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "Error fetching user"})
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

// UpdateProfile はプロフィール更新APIエンドポイントを処理します。
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, ok := sessionmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "Not authenticated"})
		return
	}

	var req api.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("profile update validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		return
	}

	user, err := h.auth.UpdateProfile(c.Request.Context(), userID, usecase.ProfileInput{
		DisplayName:    req.DisplayName,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		slog.Error("profile update failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "Error updating profile"})
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

// issueSessionCookie はセッションを署名付きCookieとしてレスポンスへ添付します。
func (h *AuthHandler) issueSessionCookie(c *gin.Context, s *entity.Session) error {
	token, err := h.tokens.GenerateSessionToken(s.ID, s.ExpiresAt)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionmw.CookieName, token, int(time.Until(s.ExpiresAt).Seconds()), "/", "", h.secureCookies, true)
	return nil
}

// clearSessionCookie はセッションCookieを破棄します。
func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionmw.CookieName, "", -1, "/", "", h.secureCookies, true)
}

// sessionMeta はリクエストから監査用のクライアント情報を抽出します。
func sessionMeta(c *gin.Context) usecase.SessionMeta {
	return usecase.SessionMeta{
		UserAgent: c.Request.UserAgent(),
		IPAddress: c.ClientIP(),
	}
}

// toUserResponse はユーザーをサニタイズ済みレスポンスへ変換します。
// パスワードハッシュは含まれません。
func toUserResponse(u *entity.User) api.UserResponse {
	return api.UserResponse{
		ID:                    u.ID,
		Username:              u.Username,
		DisplayName:           u.DisplayName,
		ProfilePicture:        u.ProfilePicture,
		CreatedAt:             u.CreatedAt,
		SubscriptionStatus:    u.SubscriptionStatus,
		SubscriptionExpiresAt: u.SubscriptionExpiresAt,
	}
}
