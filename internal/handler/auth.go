package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/frontdesk/internal/auth"
	"github.com/iliyamo/frontdesk/internal/middleware"
	"github.com/iliyamo/frontdesk/internal/utils"
)

// Authenticator signs staff in and out.
type Authenticator interface {
	SignIn(ctx context.Context, username, password string) (auth.Session, utils.AccessToken, error)
	SignOut(ctx context.Context, s *auth.Session) error
}

// AuthHandler serves the sign-in lifecycle.
type AuthHandler struct {
	Auth Authenticator
	Log  *zap.Logger
}

func NewAuthHandler(a Authenticator, log *zap.Logger) *AuthHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthHandler{Auth: a, Log: log}
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userPart struct {
	ID                uint64        `json:"id"`
	Username          string        `json:"username"`
	Name              string        `json:"name"`
	Role              string        `json:"role"`
	Screens           []auth.Screen `json:"screens"`
	CanEditBookings   bool          `json:"canEditBookings"`
	CanViewFinancials bool          `json:"canViewFinancials"`
	IsHousekeeping    bool          `json:"isHousekeeping"`
}

func userOf(s *auth.Session) userPart {
	return userPart{
		ID:                s.UserID,
		Username:          s.Username,
		Name:              s.Name,
		Role:              s.Role,
		Screens:           s.Screens(),
		CanEditBookings:   s.CanEditBookings(),
		CanViewFinancials: s.CanViewFinancials(),
		IsHousekeeping:    s.IsHousekeeping(),
	}
}

// Login handles POST /v1/auth/login.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	s, tok, err := h.Auth.SignIn(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid username or password"})
		}
		h.Log.Error("sign in failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "sign in failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"user":    userOf(&s),
		"token":   tok.Token,
		"expires": tok.Exp,
	})
}

// Logout handles POST /v1/auth/logout (session required).
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.Auth.SignOut(c.Request().Context(), middleware.SessionFrom(c)); err != nil {
		h.Log.Error("sign out failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "logout failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Me handles GET /v1/me.
func (h *AuthHandler) Me(c echo.Context) error {
	s := middleware.SessionFrom(c)
	if s == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	return c.JSON(http.StatusOK, echo.Map{"user": userOf(s), "expires": s.ExpiresAt})
}
